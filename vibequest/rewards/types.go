package rewards

// EnergyBreakdown shows how each multiplier contributed to the final energy.
type EnergyBreakdown struct {
	Base         float64 `json:"base"`
	TimeBonus    float64 `json:"time_bonus"`
	QualityBonus float64 `json:"quality_bonus"`
	StreakBonus  float64 `json:"streak_bonus"`
	FlowBonus    float64 `json:"flow_bonus"`
}

// VibeReward is the full payout for one activity.
type VibeReward struct {
	VibeEnergy  int             `json:"vibe_energy"`
	Experience  int             `json:"experience"`
	CodeEssence int             `json:"code_essence"`
	Breakdown   EnergyBreakdown `json:"breakdown"`
}
