package activity

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ToolUsage counts how many times each tool category was invoked during a
// coding session.
type ToolUsage struct {
	Read   int `json:"read"`
	Write  int `json:"write"`
	Bash   int `json:"bash"`
	Search int `json:"search"`
}

// Total returns the combined invocation count across all tools.
func (t ToolUsage) Total() int {
	return t.Read + t.Write + t.Bash + t.Search
}

// Variety returns how many distinct tool categories were used (0-4).
func (t ToolUsage) Variety() int {
	variety := 0
	for _, count := range []int{t.Read, t.Write, t.Bash, t.Search} {
		if count > 0 {
			variety++
		}
	}
	return variety
}

// QualityMetrics captures the per-activity quality signals reported by the
// ingestion adapter.
type QualityMetrics struct {
	SuccessRate    float64   `json:"success_rate"`
	IterationCount int       `json:"iteration_count"`
	LinesChanged   int       `json:"lines_changed"`
	FilesAffected  int       `json:"files_affected"`
	Languages      []string  `json:"languages"`
	ToolUsage      ToolUsage `json:"tool_usage"`
}

// Activity is one coding session's worth of telemetry. It is created at
// session start, mutated on progress ticks, and immutable once EndedAt is set.
type Activity struct {
	SessionID          snowflake.ID   `json:"session_id"`
	StartedAt          time.Time      `json:"started_at"`
	EndedAt            *time.Time     `json:"ended_at,omitempty"`
	ConsecutiveMinutes float64        `json:"consecutive_minutes"`
	ConsecutiveDays    int            `json:"consecutive_days"`
	Quality            QualityMetrics `json:"quality"`
	IsInFlowState      bool           `json:"is_in_flow_state"`
}

// DurationMinutes returns the session length in minutes, or 0 when the
// session has no end time yet.
func (a Activity) DurationMinutes() float64 {
	if a.EndedAt == nil {
		return 0
	}
	return a.EndedAt.Sub(a.StartedAt).Minutes()
}
