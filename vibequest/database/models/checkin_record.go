package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CheckInRecord is the audit log of daily check-ins.
type CheckInRecord struct {
	bun.BaseModel `bun:"table:checkin_records,alias:cr"`

	ID          int64     `bun:"id,pk,autoincrement"`
	PlayerID    string    `bun:"player_id,notnull"`
	Day         time.Time `bun:"day,notnull"`
	Streak      int       `bun:"streak,notnull"`
	TotalEnergy int       `bun:"total_energy,notnull"`
	Gold        int       `bun:"gold,notnull"`
	SpecialItem string    `bun:"special_item"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
