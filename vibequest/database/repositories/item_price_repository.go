package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/vibequest/vibequest/vibequest/database/models"
	"github.com/vibequest/vibequest/vibequest/logger"
)

type ItemPriceRepository interface {
	GetByItemID(ctx context.Context, itemID string) (*models.ItemPrice, error)
	GetAll(ctx context.Context) ([]*models.ItemPrice, error)
	Upsert(ctx context.Context, price *models.ItemPrice) error
}

type itemPriceRepository struct {
	db *bun.DB
}

func NewItemPriceRepository(db *bun.DB) ItemPriceRepository {
	return &itemPriceRepository{db: db}
}

func (r *itemPriceRepository) GetByItemID(ctx context.Context, itemID string) (*models.ItemPrice, error) {
	var price models.ItemPrice
	err := r.db.NewSelect().
		Model(&price).
		Where("item_id = ?", itemID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "item_price", ID: itemID}
		}
		return nil, err
	}
	return &price, nil
}

func (r *itemPriceRepository) GetAll(ctx context.Context) ([]*models.ItemPrice, error) {
	var prices []*models.ItemPrice
	err := r.db.NewSelect().
		Model(&prices).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *itemPriceRepository) Upsert(ctx context.Context, price *models.ItemPrice) error {
	price.UpdatedAt = time.Now()
	start := time.Now()
	_, err := r.db.NewInsert().
		Model(price).
		On("CONFLICT (item_id) DO UPDATE").
		Set("current_price = EXCLUDED.current_price").
		Set("reference_price = EXCLUDED.reference_price").
		Set("trend = EXCLUDED.trend").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	logger.LogQuery("upsert item_price", time.Since(start), err)
	if err != nil {
		return &RepositoryError{Operation: "upsert", Entity: "item_price", Err: err}
	}
	return nil
}
