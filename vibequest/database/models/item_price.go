package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ItemPrice tracks the reference price and latest computed price of a shop
// item.
type ItemPrice struct {
	bun.BaseModel `bun:"table:item_prices,alias:ip"`

	ID             int64     `bun:"id,pk,autoincrement"`
	ItemID         string    `bun:"item_id,notnull,unique"`
	Name           string    `bun:"name,notnull"`
	BasePrice      int64     `bun:"base_price,notnull"`
	CurrentPrice   int64     `bun:"current_price,notnull"`
	ReferencePrice int64     `bun:"reference_price,notnull,default:0"`
	Trend          float64   `bun:"trend,notnull,default:0"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}
