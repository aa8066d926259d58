package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID         int64  `bun:"id,pk,autoincrement"`
	ExternalID string `bun:"external_id,notnull,unique"`
	Username   string `bun:"username,notnull"`

	// Reward balances
	VibeEnergy  int64 `bun:"vibe_energy,notnull,default:0"`
	Experience  int64 `bun:"experience,notnull,default:0"`
	CodeEssence int64 `bun:"code_essence,notnull,default:0"`
	Gold        int64 `bun:"gold,notnull,default:0"`

	// Check-in streak state
	ConsecutiveDays int64      `bun:"consecutive_days,notnull,default:0"`
	LastCheckInDate *time.Time `bun:"last_check_in_date"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
