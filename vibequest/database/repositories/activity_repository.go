package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"github.com/vibequest/vibequest/vibequest/database/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, record *models.ActivityRecord) error
	GetBySessionID(ctx context.Context, sessionID int64) (*models.ActivityRecord, error)
	GetRecentByPlayer(ctx context.Context, playerID string, limit int) ([]*models.ActivityRecord, error)

	// TransactionVolumeSince counts processed sessions for the economy
	// monitor's activity signal.
	TransactionVolumeSince(ctx context.Context, since time.Time) (int64, error)
}

type activityRepository struct {
	db *bun.DB
}

func NewActivityRepository(db *bun.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	record.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return &RepositoryError{Operation: "create", Entity: "activity_record", Err: err}
	}
	return nil
}

func (r *activityRepository) GetBySessionID(ctx context.Context, sessionID int64) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	err := r.db.NewSelect().
		Model(&record).
		Where("session_id = ?", sessionID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *activityRepository) GetRecentByPlayer(ctx context.Context, playerID string, limit int) ([]*models.ActivityRecord, error) {
	var records []*models.ActivityRecord
	err := r.db.NewSelect().
		Model(&records).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *activityRepository) TransactionVolumeSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.db.NewSelect().
		Model((*models.ActivityRecord)(nil)).
		Where("created_at >= ?", since).
		Count(ctx)
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}
