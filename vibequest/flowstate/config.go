package flowstate

import "time"

type Config struct {
	// Minimum uninterrupted minutes before flow can start
	MinDurationMinutes float64

	// Maximum gap between interactions that still counts as continuous
	MaxInteractionGap time.Duration

	// Minimum success rate across iterations
	MinSuccessRate float64

	// Minimum distinct tool categories in use
	MinToolVariety int

	// Minimum lines changed per 30 minutes of activity
	MinOutputRate float64
}

func NewDefaultConfig() *Config {
	return &Config{
		MinDurationMinutes: 45,
		MaxInteractionGap:  300 * time.Second,
		MinSuccessRate:     0.8,
		MinToolVariety:     3,
		MinOutputRate:      100,
	}
}
