package flowstate

import (
	"strings"
	"testing"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
	"github.com/vibequest/vibequest/vibequest/utils"
)

func sessionActivity(durationMinutes, consecutiveMinutes float64, q activity.QualityMetrics) activity.Activity {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationMinutes * float64(time.Minute)))
	return activity.Activity{
		StartedAt:          start,
		EndedAt:            &end,
		ConsecutiveMinutes: consecutiveMinutes,
		Quality:            q,
	}
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(NewDefaultConfig(), utils.SystemClock())

	t.Run("all conditions met", func(t *testing.T) {
		act := sessionActivity(60, 60, activity.QualityMetrics{
			SuccessRate:    0.9,
			IterationCount: 3,
			LinesChanged:   250,
			Languages:      []string{"go", "sql"},
			ToolUsage:      activity.ToolUsage{Read: 4, Write: 3, Bash: 2, Search: 1},
		})

		state := d.Detect(act, nil)
		if !state.IsActive {
			t.Fatalf("expected flow, got inactive: %s", state.TriggerReason)
		}
		if state.StartedAt == nil {
			t.Fatal("active flow must carry a start time")
		}
		// 60 consecutive minutes, 45 minimum: flow began 15 minutes before
		// the session end
		wantStart := act.EndedAt.Add(-15 * time.Minute)
		if !state.StartedAt.Equal(wantStart) {
			t.Errorf("StartedAt = %v, want %v", state.StartedAt, wantStart)
		}
		if state.DurationMinutes != 60 {
			t.Errorf("DurationMinutes = %v, want 60", state.DurationMinutes)
		}
	})

	t.Run("weak session flags the unmet conditions", func(t *testing.T) {
		act := sessionActivity(20, 20, activity.QualityMetrics{
			SuccessRate:    0.5,
			IterationCount: 10,
			LinesChanged:   30,
			Languages:      []string{"go"},
			ToolUsage:      activity.ToolUsage{Read: 2, Write: 1},
		})

		state := d.Detect(act, nil)
		if state.IsActive {
			t.Fatal("expected inactive flow state")
		}
		if state.DurationMet || state.SuccessRateMet || state.ToolVarietyMet || state.OutputMet {
			t.Errorf("expected duration, success rate, tool variety and output unmet: %+v", state)
		}
		if !state.GapMet {
			t.Error("gap must pass when no gap is supplied")
		}
		for _, clause := range []string{"45", "80%", "3+", "100"} {
			if !strings.Contains(state.TriggerReason, clause) {
				t.Errorf("trigger reason %q missing clause %q", state.TriggerReason, clause)
			}
		}
		if state.StartedAt != nil {
			t.Error("inactive flow must not carry a start time")
		}
	})

	t.Run("gap breaks flow", func(t *testing.T) {
		act := sessionActivity(60, 60, activity.QualityMetrics{
			SuccessRate:  0.9,
			LinesChanged: 250,
			ToolUsage:    activity.ToolUsage{Read: 1, Write: 1, Bash: 1},
		})

		gap := 400 * time.Second
		state := d.Detect(act, &gap)
		if state.IsActive || state.GapMet {
			t.Errorf("expected gap condition to fail: %+v", state)
		}

		gap = 200 * time.Second
		if state := d.Detect(act, &gap); !state.GapMet {
			t.Errorf("expected 200s gap to pass: %+v", state)
		}
	})

	t.Run("zero duration fails output", func(t *testing.T) {
		act := activity.Activity{
			StartedAt:          time.Now(),
			ConsecutiveMinutes: 60,
			Quality: activity.QualityMetrics{
				SuccessRate:  1,
				LinesChanged: 500,
				ToolUsage:    activity.ToolUsage{Read: 1, Write: 1, Bash: 1},
			},
		}
		if state := d.Detect(act, nil); state.OutputMet {
			t.Error("output condition must fail with no measurable duration")
		}
	})
}

func TestDetector_InProgressStartTimeUsesClock(t *testing.T) {
	now := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	d := NewDetector(NewDefaultConfig(), utils.FixedClock(now))

	act := activity.Activity{
		StartedAt:          now.Add(-60 * time.Minute),
		ConsecutiveMinutes: 50,
		Quality: activity.QualityMetrics{
			SuccessRate:  0.95,
			LinesChanged: 400,
			ToolUsage:    activity.ToolUsage{Read: 2, Write: 2, Bash: 2, Search: 2},
		},
	}

	// Session still open: the adapter supplies the elapsed duration and the
	// flow start anchors on the injected clock
	state := d.DetectWithDuration(act, 60, nil)
	if !state.IsActive {
		t.Fatalf("expected flow: %s", state.TriggerReason)
	}
	wantStart := now.Add(-5 * time.Minute)
	if !state.StartedAt.Equal(wantStart) {
		t.Errorf("StartedAt = %v, want %v", state.StartedAt, wantStart)
	}
}

func TestDetector_Progress(t *testing.T) {
	d := NewDetector(NewDefaultConfig(), utils.SystemClock())

	act := sessionActivity(30, 22.5, activity.QualityMetrics{
		SuccessRate:  0.4,
		LinesChanged: 50,
		ToolUsage:    activity.ToolUsage{Read: 1, Write: 1},
	})

	progress := d.Progress(act)

	duration := progress[ConditionDuration]
	if duration.Progress != 0.5 || duration.Met {
		t.Errorf("duration progress = %+v, want 0.5 unmet", duration)
	}

	output := progress[ConditionOutput]
	// 50 lines over 30 minutes normalizes to 50 per 30 minutes
	if output.Current != 50 || output.Progress != 0.5 || output.Met {
		t.Errorf("output progress = %+v, want current 50, progress 0.5", output)
	}

	variety := progress[ConditionToolVariety]
	if variety.Current != 2 || variety.Met {
		t.Errorf("tool variety progress = %+v, want current 2 unmet", variety)
	}
}
