package rewards

type Config struct {
	// Energy earned per minute of activity
	BaseRatePerMinute float64

	// Multiplier caps
	MaxTimeMultiplier    float64
	MaxQualityMultiplier float64
	FlowMultiplier       float64

	// Code essence drop tuning
	EssenceBaseChance  float64
	EssenceFlowChance  float64
	EssenceEnergyBonus float64 // extra chance per 10000 energy, capped
	EssenceBonusCap    float64

	// Whether a zero-energy activity may still roll for essence
	EssenceOnZeroEnergy bool
}

func NewDefaultConfig() *Config {
	return &Config{
		BaseRatePerMinute:    10,
		MaxTimeMultiplier:    2.0,
		MaxQualityMultiplier: 1.5,
		FlowMultiplier:       1.5,
		EssenceBaseChance:    0.05,
		EssenceFlowChance:    0.15,
		EssenceEnergyBonus:   1.0 / 10000.0,
		EssenceBonusCap:      0.1,
		EssenceOnZeroEnergy:  false,
	}
}
