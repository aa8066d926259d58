package flowstate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
	"github.com/vibequest/vibequest/vibequest/utils"
)

const flowTriggerReason = "Sustained focus, high success rate, diverse tooling and strong output"

// Detector evaluates whether a session qualifies as flow state. Pure given
// its arguments; the clock is only read to anchor the flow start time of
// in-progress sessions.
type Detector struct {
	config *Config
	clock  utils.Clock
}

func NewDetector(config *Config, clock utils.Clock) *Detector {
	return &Detector{config: config, clock: clock}
}

// Detect evaluates all five flow conditions for the activity. A nil gap means
// the caller has no interaction-gap signal and the gap condition passes.
func (d *Detector) Detect(act activity.Activity, lastInteractionGap *time.Duration) FlowState {
	return d.DetectWithDuration(act, act.DurationMinutes(), lastInteractionGap)
}

// DetectWithDuration evaluates flow with an externally supplied duration, for
// in-progress sessions that have no end time yet.
func (d *Detector) DetectWithDuration(act activity.Activity, duration float64, lastInteractionGap *time.Duration) FlowState {
	outputRate := 0.0
	if duration > 0 {
		outputRate = float64(act.Quality.LinesChanged) / duration * 30.0
	}

	state := FlowState{
		DurationMet:    act.ConsecutiveMinutes >= d.config.MinDurationMinutes,
		GapMet:         lastInteractionGap == nil || *lastInteractionGap <= d.config.MaxInteractionGap,
		SuccessRateMet: act.Quality.SuccessRate >= d.config.MinSuccessRate,
		ToolVarietyMet: act.Quality.ToolUsage.Variety() >= d.config.MinToolVariety,
		OutputMet:      duration > 0 && outputRate >= d.config.MinOutputRate,
	}
	state.IsActive = state.DurationMet && state.GapMet && state.SuccessRateMet &&
		state.ToolVarietyMet && state.OutputMet

	if state.IsActive {
		state.TriggerReason = flowTriggerReason

		anchor := d.clock.Now()
		if act.EndedAt != nil {
			anchor = *act.EndedAt
		}
		overshoot := act.ConsecutiveMinutes - d.config.MinDurationMinutes
		startedAt := anchor.Add(-time.Duration(overshoot * float64(time.Minute)))
		state.StartedAt = &startedAt
		state.DurationMinutes = act.ConsecutiveMinutes
		return state
	}

	var reasons []string
	if !state.DurationMet {
		reasons = append(reasons, fmt.Sprintf("needs %.0f+ uninterrupted minutes", d.config.MinDurationMinutes))
	}
	if !state.GapMet {
		reasons = append(reasons, fmt.Sprintf("interaction gap exceeds %.0fs", d.config.MaxInteractionGap.Seconds()))
	}
	if !state.SuccessRateMet {
		reasons = append(reasons, fmt.Sprintf("success rate below %.0f%%", d.config.MinSuccessRate*100))
	}
	if !state.ToolVarietyMet {
		reasons = append(reasons, fmt.Sprintf("needs %d+ distinct tools", d.config.MinToolVariety))
	}
	if !state.OutputMet {
		reasons = append(reasons, fmt.Sprintf("output below %.0f lines per 30 minutes", d.config.MinOutputRate))
	}
	state.TriggerReason = strings.Join(reasons, "; ")

	return state
}

// Progress reports how close the activity is to each flow condition. The gap
// condition is omitted because the activity itself carries no gap signal.
func (d *Detector) Progress(act activity.Activity) Progress {
	duration := act.DurationMinutes()
	outputRate := 0.0
	if duration > 0 {
		outputRate = float64(act.Quality.LinesChanged) / duration * 30.0
	}

	return Progress{
		ConditionDuration: conditionProgress(
			act.ConsecutiveMinutes, d.config.MinDurationMinutes),
		ConditionSuccessRate: conditionProgress(
			act.Quality.SuccessRate, d.config.MinSuccessRate),
		ConditionToolVariety: conditionProgress(
			float64(act.Quality.ToolUsage.Variety()), float64(d.config.MinToolVariety)),
		ConditionOutput: conditionProgress(
			outputRate, d.config.MinOutputRate),
	}
}

func conditionProgress(current, target float64) ConditionProgress {
	progress := 1.0
	if target > 0 {
		progress = math.Min(current/target, 1.0)
	}
	return ConditionProgress{
		Current:  current,
		Target:   target,
		Progress: progress,
		Met:      current >= target,
	}
}
