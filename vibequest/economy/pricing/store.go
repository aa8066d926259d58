package pricing

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vibequest/vibequest/vibequest/database/models"
	"github.com/vibequest/vibequest/vibequest/database/repositories"
	"github.com/vibequest/vibequest/vibequest/utils"
)

const cacheSize = 10000

type cachedPrice struct {
	price     int64
	timestamp time.Time
}

// Store persists computed prices and reference EMAs, with a bounded cache in
// front of the repository to skip redundant writes.
type Store struct {
	repo        repositories.ItemPriceRepository
	engine      *Engine
	cache       *lru.Cache
	clock       utils.Clock
	cacheExpiry time.Duration
}

func NewStore(repo repositories.ItemPriceRepository, engine *Engine, clock utils.Clock, cacheExpiry time.Duration) *Store {
	cache, _ := lru.New(cacheSize)
	return &Store{
		repo:        repo,
		engine:      engine,
		cache:       cache,
		clock:       clock,
		cacheExpiry: cacheExpiry,
	}
}

// CurrentPrice computes the item's current price and persists it unless the
// cached value is still fresh.
func (s *Store) CurrentPrice(ctx context.Context, itemID string, currentStock, maxStock *int) (int64, error) {
	record, err := s.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to load item price: %w", err)
	}

	price := s.engine.Price(record.BasePrice, itemID, currentStock, maxStock)

	cacheKey := fmt.Sprintf("price:%s", itemID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if c, ok := cached.(cachedPrice); ok {
			if c.price == price && s.clock.Now().Sub(c.timestamp) < s.cacheExpiry {
				return price, nil
			}
		}
	}

	record.CurrentPrice = price
	record.Trend = s.engine.Trend(itemID)
	if ref, ok := s.engine.ReferencePrice(itemID); ok {
		record.ReferencePrice = ref
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to store item price: %w", err)
	}

	s.cache.Add(cacheKey, cachedPrice{price: price, timestamp: s.clock.Now()})
	return price, nil
}

// RecordListing folds a listing price into the item's reference EMA and
// persists the new reference.
func (s *Store) RecordListing(ctx context.Context, itemID string, price int64) (int64, error) {
	record, err := s.repo.GetByItemID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to load item price: %w", err)
	}

	// Seed the engine's EMA from the persisted reference on first touch
	if _, ok := s.engine.ReferencePrice(itemID); !ok && record.ReferencePrice > 0 {
		s.engine.RecordListing(itemID, record.ReferencePrice)
	}

	reference := s.engine.RecordListing(itemID, price)
	record.ReferencePrice = reference
	if err := s.repo.Upsert(ctx, record); err != nil {
		return 0, fmt.Errorf("failed to store reference price: %w", err)
	}
	return reference, nil
}

// Load primes the engine's per-item state from the persisted price table,
// for process restarts.
func (s *Store) Load(ctx context.Context) error {
	prices, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load item prices: %w", err)
	}

	for _, p := range prices {
		s.engine.SetTrend(p.ItemID, p.Trend)
		if p.ReferencePrice > 0 {
			s.engine.RecordListing(p.ItemID, p.ReferencePrice)
		}
	}
	return nil
}

// Items returns the persisted price records, for search and display.
func (s *Store) Items(ctx context.Context) ([]*models.ItemPrice, error) {
	return s.repo.GetAll(ctx)
}
