package vibequest

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/vibequest/vibequest/vibequest/checkin"
	"github.com/vibequest/vibequest/vibequest/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	DB      database.DBConfig `toml:"db"`
	Rewards RewardsConfig     `toml:"rewards"`
	Flow    FlowConfig        `toml:"flow"`
	CheckIn CheckInConfig     `toml:"checkin"`
	Economy EconomyConfig     `toml:"economy"`
	Pricing PricingConfig     `toml:"pricing"`
	Archive ArchiveConfig     `toml:"archive"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type RewardsConfig struct {
	BaseRatePerMinute    float64 `toml:"base_rate_per_minute"`
	MaxTimeMultiplier    float64 `toml:"max_time_multiplier"`
	MaxQualityMultiplier float64 `toml:"max_quality_multiplier"`
	FlowMultiplier       float64 `toml:"flow_multiplier"`
	EssenceOnZeroEnergy  bool    `toml:"essence_on_zero_energy"`
	RandomSeed           int64   `toml:"random_seed"`
}

type FlowConfig struct {
	MinDurationMinutes float64 `toml:"min_duration_minutes"`
	MaxGapSeconds      int     `toml:"max_gap_seconds"`
	MinSuccessRate     float64 `toml:"min_success_rate"`
	MinToolVariety     int     `toml:"min_tool_variety"`
	MinOutputRate      float64 `toml:"min_output_rate"`
}

type CheckInConfig struct {
	BaseEnergy        int                `toml:"base_energy"`
	StreakBonusPerDay int                `toml:"streak_bonus_per_day"`
	MaxStreakBonus    int                `toml:"max_streak_bonus"`
	Milestones        []CheckInMilestone `toml:"milestones"`
}

type CheckInMilestone struct {
	Days int    `toml:"days"`
	Item string `toml:"item"`
	Gold int    `toml:"gold"`
}

// LedgerConfig maps the TOML check-in section onto a ledger config. An empty
// milestones table keeps the standard milestone rewards.
func (c CheckInConfig) LedgerConfig() *checkin.Config {
	out := checkin.NewDefaultConfig()
	out.BaseEnergy = c.BaseEnergy
	out.StreakBonusPerDay = c.StreakBonusPerDay
	out.MaxStreakBonus = c.MaxStreakBonus
	if len(c.Milestones) > 0 {
		out.Milestones = make(map[int]checkin.MilestoneReward, len(c.Milestones))
		for _, m := range c.Milestones {
			out.Milestones[m.Days] = checkin.MilestoneReward{Item: m.Item, Gold: m.Gold}
		}
	}
	return out
}

type EconomyConfig struct {
	BaseTaxRate        float64 `toml:"base_tax_rate"`
	BaseListingFeeRate float64 `toml:"base_listing_fee_rate"`
	BaseAuctionFeeRate float64 `toml:"base_auction_fee_rate"`
	InflationHigh      float64 `toml:"inflation_high"`
	InflationLow       float64 `toml:"inflation_low"`
	CycleMinutes       int     `toml:"cycle_minutes"`
}

type PricingConfig struct {
	EventDiscount      float64 `toml:"event_discount"`
	BulkThreshold      int     `toml:"bulk_threshold"`
	CacheExpirySeconds int     `toml:"cache_expiry_seconds"`
}

type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"`
	Key     string `toml:"key"`
	Secret  string `toml:"secret"`
	Region  string `toml:"region"`
	Bucket  string `toml:"bucket"`
	Prefix  string `toml:"prefix"`
}

// DefaultConfig carries the tuned defaults; the config file only needs to
// override what differs.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Rewards: RewardsConfig{
			BaseRatePerMinute:    10,
			MaxTimeMultiplier:    2.0,
			MaxQualityMultiplier: 1.5,
			FlowMultiplier:       1.5,
		},
		Flow: FlowConfig{
			MinDurationMinutes: 45,
			MaxGapSeconds:      300,
			MinSuccessRate:     0.8,
			MinToolVariety:     3,
			MinOutputRate:      100,
		},
		CheckIn: CheckInConfig{
			BaseEnergy:        50,
			StreakBonusPerDay: 10,
			MaxStreakBonus:    100,
		},
		Economy: EconomyConfig{
			BaseTaxRate:        0.03,
			BaseListingFeeRate: 0.03,
			BaseAuctionFeeRate: 0.05,
			InflationHigh:      0.1,
			InflationLow:       -0.05,
			CycleMinutes:       15,
		},
		Pricing: PricingConfig{
			EventDiscount:      0.9,
			BulkThreshold:      10,
			CacheExpirySeconds: 300,
		},
	}
}
