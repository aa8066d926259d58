package rewards

import (
	"math"

	"github.com/vibequest/vibequest/vibequest/activity"
	"github.com/vibequest/vibequest/vibequest/utils"
)

// Calculator converts activity telemetry into vibe energy, experience, and
// code essence. Deterministic given its inputs and the injected random source.
type Calculator struct {
	config *Config
	rng    utils.Rand
}

func NewCalculator(config *Config, rng utils.Rand) *Calculator {
	return &Calculator{config: config, rng: rng}
}

// Calculate computes the full reward for a completed activity.
func (c *Calculator) Calculate(act activity.Activity) VibeReward {
	return c.CalculateWithDuration(act, act.DurationMinutes())
}

// CalculateWithDuration computes the reward with an externally supplied
// duration, for activities whose end time has not been recorded yet.
func (c *Calculator) CalculateWithDuration(act activity.Activity, duration float64) VibeReward {
	if duration <= 0 {
		reward := VibeReward{
			Breakdown: EnergyBreakdown{
				TimeBonus:    1.0,
				QualityBonus: 1.0,
				StreakBonus:  1.0,
				FlowBonus:    1.0,
			},
		}
		if c.config.EssenceOnZeroEnergy {
			reward.CodeEssence = c.rollEssence(0, act.IsInFlowState)
		}
		return reward
	}

	base := duration * c.config.BaseRatePerMinute
	timeBonus := c.TimeBonus(act.ConsecutiveMinutes)
	qualityBonus := c.QualityBonus(c.QualityScore(act.Quality))
	streakBonus := c.StreakBonus(act.ConsecutiveDays)
	flowBonus := 1.0
	if act.IsInFlowState {
		flowBonus = c.config.FlowMultiplier
	}

	energy := int(math.Floor(base * timeBonus * qualityBonus * streakBonus * flowBonus))

	return VibeReward{
		VibeEnergy:  energy,
		Experience:  int(math.Floor(float64(energy) * 0.1)),
		CodeEssence: c.rollEssence(energy, act.IsInFlowState),
		Breakdown: EnergyBreakdown{
			Base:         base,
			TimeBonus:    timeBonus,
			QualityBonus: qualityBonus,
			StreakBonus:  streakBonus,
			FlowBonus:    flowBonus,
		},
	}
}

// Estimate previews the energy payout without a full activity, for UI use.
func (c *Calculator) Estimate(durationMinutes, consecutiveMinutes, qualityScore float64, consecutiveDays int, inFlow bool) int {
	if durationMinutes <= 0 {
		return 0
	}

	base := durationMinutes * c.config.BaseRatePerMinute
	flowBonus := 1.0
	if inFlow {
		flowBonus = c.config.FlowMultiplier
	}

	return int(math.Floor(base *
		c.TimeBonus(consecutiveMinutes) *
		c.QualityBonus(qualityScore) *
		c.StreakBonus(consecutiveDays) *
		flowBonus))
}

// TimeBonus rewards sustained, uninterrupted coding. 10% extra per full hour,
// capped at MaxTimeMultiplier.
func (c *Calculator) TimeBonus(consecutiveMinutes float64) float64 {
	bonus := 1.0 + (math.Max(consecutiveMinutes, 0)/60.0)*0.1
	return math.Min(bonus, c.config.MaxTimeMultiplier)
}

// QualityScore condenses the quality metrics into a [0.5, 1.0] score.
// Every activity starts at 0.5; the signals can add up to another 0.5.
func (c *Calculator) QualityScore(q activity.QualityMetrics) float64 {
	successRate := math.Max(0, math.Min(q.SuccessRate, 1))

	score := 0.5
	score += math.Min(successRate*0.2, 0.2)
	if q.IterationCount >= 1 {
		score += math.Max(0, 1.0-float64(q.IterationCount)/10.0) * 0.15
	}
	score += math.Min(float64(q.LinesChanged)/500.0, 1.0) * 0.1
	score += math.Min(float64(q.ToolUsage.Variety())*0.025, 0.1)
	score += math.Min(float64(len(q.Languages))*0.02, 0.05)

	return math.Min(score, 1.0)
}

// QualityBonus maps a quality score onto the [0.5, MaxQualityMultiplier] band.
func (c *Calculator) QualityBonus(qualityScore float64) float64 {
	score := math.Max(0, math.Min(qualityScore, 1))
	bonus := 0.5 + score*(c.config.MaxQualityMultiplier-0.5)
	return math.Min(bonus, c.config.MaxQualityMultiplier)
}

// StreakBonus grows 5% per consecutive day with no upper bound.
func (c *Calculator) StreakBonus(consecutiveDays int) float64 {
	if consecutiveDays < 0 {
		consecutiveDays = 0
	}
	return 1.0 + float64(consecutiveDays)*0.05
}

// rollEssence rolls for the rare code essence drop. Flow state triples the
// base chance, and high-energy sessions add up to EssenceBonusCap extra.
func (c *Calculator) rollEssence(energy int, inFlow bool) int {
	chance := c.config.EssenceBaseChance
	if inFlow {
		chance = c.config.EssenceFlowChance
	}
	chance += math.Min(float64(energy)*c.config.EssenceEnergyBonus, c.config.EssenceBonusCap)

	if c.rng.Float64() >= chance {
		return 0
	}

	switch {
	case energy >= 1000:
		return 2 + c.rng.Intn(2)
	case energy >= 500:
		return 1 + c.rng.Intn(2)
	default:
		return 1
	}
}
