package flowstate

import "time"

// Condition names the five flow sub-conditions.
type Condition string

const (
	ConditionDuration    Condition = "duration"
	ConditionGap         Condition = "gap"
	ConditionSuccessRate Condition = "success_rate"
	ConditionToolVariety Condition = "tool_variety"
	ConditionOutput      Condition = "output"
)

// FlowState is the result of one detection pass. Recomputed on every
// evaluation, never persisted.
type FlowState struct {
	IsActive bool `json:"is_active"`

	DurationMet    bool `json:"duration_met"`
	GapMet         bool `json:"gap_met"`
	SuccessRateMet bool `json:"success_rate_met"`
	ToolVarietyMet bool `json:"tool_variety_met"`
	OutputMet      bool `json:"output_met"`

	TriggerReason string `json:"trigger_reason"`

	// Only set while active
	StartedAt       *time.Time `json:"started_at,omitempty"`
	DurationMinutes float64    `json:"duration_minutes,omitempty"`
}

// ConditionProgress reports one condition's progress toward its threshold,
// for UI display.
type ConditionProgress struct {
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
	Met      bool    `json:"met"`
}

// Progress holds per-condition progress keyed by condition name.
type Progress map[Condition]ConditionProgress
