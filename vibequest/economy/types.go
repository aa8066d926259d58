package economy

import "time"

// Policy tags which adjustment branch the controller took.
type Policy string

const (
	PolicyTightening Policy = "TIGHTENING"
	PolicyEasing     Policy = "EASING"
	PolicyStable     Policy = "STABLE"
)

// Snapshot is one immutable reading of the economy's health.
type Snapshot struct {
	TotalMoneySupply  int64     `json:"total_money_supply"`
	AvgPlayerWealth   int64     `json:"avg_player_wealth"`
	TransactionVolume int64     `json:"transaction_volume"`
	InflationRate     float64   `json:"inflation_rate"`
	HealthScore       float64   `json:"health_score"`
	RecordedAt        time.Time `json:"recorded_at"`
}

// RateSet is the controller's full rate state after an adjustment.
type RateSet struct {
	TaxRate          float64 `json:"tax_rate"`
	ListingFeeRate   float64 `json:"listing_fee_rate"`
	AuctionFeeRate   float64 `json:"auction_fee_rate"`
	NPCPriceModifier float64 `json:"npc_price_modifier"`
	RewardModifier   float64 `json:"reward_modifier"`
	Policy           Policy  `json:"policy"`
}
