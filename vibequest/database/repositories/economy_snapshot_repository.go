package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/vibequest/vibequest/vibequest/database/models"
)

type EconomySnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.EconomySnapshot) error
	GetLatest(ctx context.Context) (*models.EconomySnapshot, error)
	GetRecent(ctx context.Context, limit int) ([]*models.EconomySnapshot, error)
}

type economySnapshotRepository struct {
	db *bun.DB
}

func NewEconomySnapshotRepository(db *bun.DB) EconomySnapshotRepository {
	return &economySnapshotRepository{db: db}
}

func (r *economySnapshotRepository) Create(ctx context.Context, snapshot *models.EconomySnapshot) error {
	_, err := r.db.NewInsert().
		Model(snapshot).
		Exec(ctx)
	if err != nil {
		return &RepositoryError{Operation: "create", Entity: "economy_snapshot", Err: err}
	}
	return nil
}

func (r *economySnapshotRepository) GetLatest(ctx context.Context) (*models.EconomySnapshot, error) {
	var snapshot models.EconomySnapshot
	err := r.db.NewSelect().
		Model(&snapshot).
		Order("recorded_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *economySnapshotRepository) GetRecent(ctx context.Context, limit int) ([]*models.EconomySnapshot, error) {
	var snapshots []*models.EconomySnapshot
	err := r.db.NewSelect().
		Model(&snapshots).
		Order("recorded_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
