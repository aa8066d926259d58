package models

import (
	"time"

	"github.com/uptrace/bun"
)

type EconomySnapshot struct {
	bun.BaseModel `bun:"table:economy_snapshots,alias:es"`

	ID                int64     `bun:"id,pk,autoincrement"`
	TotalMoneySupply  int64     `bun:"total_money_supply,notnull"`
	AvgPlayerWealth   int64     `bun:"avg_player_wealth,notnull"`
	TransactionVolume int64     `bun:"transaction_volume,notnull"`
	InflationRate     float64   `bun:"inflation_rate,notnull"`
	HealthScore       float64   `bun:"health_score,notnull"`
	Policy            string    `bun:"policy"`
	TaxRate           float64   `bun:"tax_rate,notnull"`
	ListingFeeRate    float64   `bun:"listing_fee_rate,notnull"`
	NPCPriceModifier  float64   `bun:"npc_price_modifier,notnull"`
	RewardModifier    float64   `bun:"reward_modifier,notnull"`
	RecordedAt        time.Time `bun:"recorded_at,notnull"`
}
