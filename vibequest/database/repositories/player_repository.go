package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/vibequest/vibequest/vibequest/database/models"
)

type PlayerRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Player, error)
	GetAll(ctx context.Context) ([]*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error

	// Aggregates for the economy monitor
	TotalMoneySupply(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

type playerRepository struct {
	db *bun.DB
}

func NewPlayerRepository(db *bun.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	var player models.Player
	err := r.db.NewSelect().
		Model(&player).
		Where("external_id = ?", externalID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "player", ID: externalID}
		}
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetAll(ctx context.Context) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.NewSelect().
		Model(&players).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) Create(ctx context.Context, player *models.Player) error {
	player.CreatedAt = time.Now()
	player.UpdatedAt = player.CreatedAt
	_, err := r.db.NewInsert().
		Model(player).
		Exec(ctx)
	return err
}

func (r *playerRepository) Update(ctx context.Context, player *models.Player) error {
	player.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(player).
		WherePK().
		Exec(ctx)
	return err
}

func (r *playerRepository) TotalMoneySupply(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := r.db.NewSelect().
		Model((*models.Player)(nil)).
		ColumnExpr("COALESCE(SUM(gold), 0)").
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (r *playerRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*models.Player)(nil)).
		Count(ctx)
}
