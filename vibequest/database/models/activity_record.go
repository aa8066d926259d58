package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ActivityRecord persists one processed coding session and its payout.
type ActivityRecord struct {
	bun.BaseModel `bun:"table:activity_records,alias:ar"`

	ID        int64  `bun:"id,pk,autoincrement"`
	SessionID int64  `bun:"session_id,notnull,unique"`
	PlayerID  string `bun:"player_id,notnull"`

	StartedAt          time.Time  `bun:"started_at,notnull"`
	EndedAt            *time.Time `bun:"ended_at"`
	ConsecutiveMinutes float64    `bun:"consecutive_minutes,notnull"`

	// Quality metrics stored as JSONB
	Quality []byte `bun:"quality,type:jsonb"`

	IsInFlowState bool `bun:"is_in_flow_state,notnull,default:false"`

	// Payout
	VibeEnergy  int `bun:"vibe_energy,notnull"`
	Experience  int `bun:"experience,notnull"`
	CodeEssence int `bun:"code_essence,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
