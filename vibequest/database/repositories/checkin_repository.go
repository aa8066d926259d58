package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"github.com/vibequest/vibequest/vibequest/database/models"
)

type CheckInRepository interface {
	Create(ctx context.Context, record *models.CheckInRecord) error
	GetRecentByPlayer(ctx context.Context, playerID string, limit int) ([]*models.CheckInRecord, error)
}

type checkInRepository struct {
	db *bun.DB
}

func NewCheckInRepository(db *bun.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, record *models.CheckInRecord) error {
	record.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return &RepositoryError{Operation: "create", Entity: "checkin_record", Err: err}
	}
	return nil
}

func (r *checkInRepository) GetRecentByPlayer(ctx context.Context, playerID string, limit int) ([]*models.CheckInRecord, error) {
	var records []*models.CheckInRecord
	err := r.db.NewSelect().
		Model(&records).
		Where("player_id = ?", playerID).
		Order("day DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}
