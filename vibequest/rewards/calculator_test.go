package rewards

import (
	"math"
	"testing"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
)

// stubRand pins drop rolls so reward tests stay deterministic.
type stubRand struct {
	float float64
	intn  int
}

func (s stubRand) Float64() float64 { return s.float }
func (s stubRand) Intn(n int) int   { return s.intn % n }

func newTestCalculator() *Calculator {
	// Float64 of 1.0 never wins a drop roll
	return NewCalculator(NewDefaultConfig(), stubRand{float: 1.0})
}

func completedActivity(durationMinutes float64) activity.Activity {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(durationMinutes * float64(time.Minute)))
	return activity.Activity{
		StartedAt: start,
		EndedAt:   &end,
	}
}

func TestCalculator_TimeBonus(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		minutes float64
		want    float64
	}{
		{0, 1.0},
		{60, 1.1},
		{120, 1.2},
		{600, 2.0},
		{1200, 2.0},
	}

	for _, tt := range tests {
		if got := c.TimeBonus(tt.minutes); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TimeBonus(%v) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}

func TestCalculator_QualityScore(t *testing.T) {
	c := newTestCalculator()

	t.Run("zero metrics", func(t *testing.T) {
		got := c.QualityScore(activity.QualityMetrics{})
		if math.Abs(got-0.5) > 1e-9 {
			t.Errorf("QualityScore(zero) = %v, want 0.5", got)
		}
	})

	t.Run("iteration efficiency", func(t *testing.T) {
		// 0.15 * max(0, 1 - n/10), only for activities with iterations
		tests := []struct {
			iterations int
			want       float64
		}{
			{0, 0.5},
			{1, 0.635},
			{3, 0.605},
			{10, 0.5},
			{15, 0.5},
		}

		for _, tt := range tests {
			got := c.QualityScore(activity.QualityMetrics{IterationCount: tt.iterations})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("QualityScore(iterations=%d) = %v, want %v", tt.iterations, got, tt.want)
			}
		}
	})

	t.Run("maximal metrics caps at 1.0", func(t *testing.T) {
		got := c.QualityScore(activity.QualityMetrics{
			SuccessRate:    1.0,
			IterationCount: 1,
			LinesChanged:   500,
			Languages:      []string{"go", "sql", "bash"},
			ToolUsage:      activity.ToolUsage{Read: 5, Write: 5, Bash: 5, Search: 5},
		})
		if math.Abs(got-1.0) > 1e-9 {
			t.Errorf("QualityScore(maximal) = %v, want 1.0", got)
		}
	})
}

func TestCalculator_QualityBonus(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		score float64
		want  float64
	}{
		{0, 0.5},
		{0.5, 1.0},
		{1.0, 1.5},
	}

	for _, tt := range tests {
		if got := c.QualityBonus(tt.score); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("QualityBonus(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCalculator_StreakBonus(t *testing.T) {
	c := newTestCalculator()

	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{10, 1.5},
		{20, 2.0},
		{100, 6.0},
	}

	for _, tt := range tests {
		if got := c.StreakBonus(tt.days); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("StreakBonus(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestCalculator_FlowMultipliesEnergy(t *testing.T) {
	c := newTestCalculator()

	act := completedActivity(90)
	act.ConsecutiveMinutes = 90
	act.ConsecutiveDays = 3
	act.Quality = activity.QualityMetrics{
		SuccessRate:    0.9,
		IterationCount: 2,
		LinesChanged:   200,
		Languages:      []string{"go"},
		ToolUsage:      activity.ToolUsage{Read: 3, Write: 2, Bash: 1},
	}

	normal := c.Calculate(act)

	act.IsInFlowState = true
	flowed := c.Calculate(act)

	want := int(math.Floor(normal.Breakdown.Base *
		normal.Breakdown.TimeBonus *
		normal.Breakdown.QualityBonus *
		normal.Breakdown.StreakBonus * 1.5))
	if flowed.VibeEnergy != want {
		t.Errorf("flow energy = %d, want %d", flowed.VibeEnergy, want)
	}
	if flowed.Breakdown.FlowBonus != 1.5 {
		t.Errorf("flow bonus = %v, want 1.5", flowed.Breakdown.FlowBonus)
	}
}

func TestCalculator_ZeroDuration(t *testing.T) {
	c := newTestCalculator()

	reward := c.Calculate(activity.Activity{
		StartedAt: time.Now(),
	})

	if reward.VibeEnergy != 0 || reward.Experience != 0 || reward.CodeEssence != 0 {
		t.Errorf("zero-duration reward = %+v, want all zero", reward)
	}
}

func TestCalculator_ZeroEnergyEssenceRoll(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.EssenceOnZeroEnergy = true

	// Float64 of 0 always wins the roll
	c := NewCalculator(cfg, stubRand{float: 0})

	reward := c.Calculate(activity.Activity{StartedAt: time.Now()})
	if reward.CodeEssence != 1 {
		t.Errorf("zero-energy essence = %d, want 1 when enabled", reward.CodeEssence)
	}
}

func TestCalculator_EssenceAmounts(t *testing.T) {
	tests := []struct {
		name   string
		energy int
		intn   int
		want   int
	}{
		{"low energy", 400, 0, 1},
		{"mid energy low roll", 600, 0, 1},
		{"mid energy high roll", 600, 1, 2},
		{"high energy low roll", 1500, 0, 2},
		{"high energy high roll", 1500, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalculator(NewDefaultConfig(), stubRand{float: 0, intn: tt.intn})
			if got := c.rollEssence(tt.energy, false); got != tt.want {
				t.Errorf("rollEssence(%d) = %d, want %d", tt.energy, got, tt.want)
			}
		})
	}
}

func TestCalculator_Estimate(t *testing.T) {
	c := newTestCalculator()

	// 60 minutes at base rate with neutral bonuses: 600 * 1.1 * 1.0 * 1.0
	got := c.Estimate(60, 60, 0.5, 0, false)
	if got != 660 {
		t.Errorf("Estimate = %d, want 660", got)
	}

	if got := c.Estimate(0, 0, 1, 10, true); got != 0 {
		t.Errorf("Estimate with zero duration = %d, want 0", got)
	}
}
