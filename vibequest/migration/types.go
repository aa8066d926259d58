package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacyStreaks holds the streak counters of the retired tracker. Counters
// were stored as doubles.
type LegacyStreaks struct {
	Daily    float64 `bson:"daily"`
	BestEver float64 `bson:"bestever"`
}

// LegacyToolCounts mirrors the per-tool counters of the old session schema.
type LegacyToolCounts struct {
	Read   float64 `bson:"read"`
	Write  float64 `bson:"write"`
	Bash   float64 `bson:"bash"`
	Search float64 `bson:"search"`
}

// LegacyPlayer is a player document in the retired Mongo tracker.
type LegacyPlayer struct {
	ID          primitive.ObjectID `bson:"_id"`
	ExternalID  string             `bson:"external_id"`
	Username    string             `bson:"username"`
	Energy      float64            `bson:"energy"` // doubles in old schema
	Exp         float64            `bson:"exp"`
	Essence     float64            `bson:"essence"`
	Gold        float64            `bson:"gold"`
	Streaks     LegacyStreaks      `bson:"streaks"`
	LastCheckIn time.Time          `bson:"lastcheckin"`
	Joined      time.Time          `bson:"joined"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// LegacySession is a coding session document in the retired Mongo tracker.
type LegacySession struct {
	ID          primitive.ObjectID `bson:"_id"`
	SessionID   int64              `bson:"session_id"`
	PlayerID    string             `bson:"player_id"`
	Started     time.Time          `bson:"started"`
	Ended       *time.Time         `bson:"ended"`
	Minutes     float64            `bson:"minutes"`
	SuccessRate float64            `bson:"successrate"`
	Iterations  float64            `bson:"iterations"` // Changed to float64
	Lines       float64            `bson:"lines"`
	Languages   []string           `bson:"languages"`
	Tools       LegacyToolCounts   `bson:"tools"`
	Flow        bool               `bson:"flow"`
	Energy      float64            `bson:"energy"`
	Exp         float64            `bson:"exp"`
	Essence     float64            `bson:"essence"`
}

// MigrationStats tracks migration progress and issues
type MigrationStats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

// TableStats tracks stats for individual tables
type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records"`
}

// SkippedRecord tracks why a record was skipped
type SkippedRecord struct {
	Reason    string    `json:"reason"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
