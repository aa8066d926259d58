package pricing

import (
	"math"
	"sync"
	"time"

	"github.com/vibequest/vibequest/vibequest/utils"
)

type Config struct {
	// Overall multiplier bounds
	MinMultiplier float64
	MaxMultiplier float64

	// Discount applied on weekends and during active events
	EventDiscount float64

	// Weight of the price trend in the final multiplier
	TrendWeight float64

	// Bulk purchase discount tiers
	BulkThreshold int
}

func NewDefaultConfig() *Config {
	return &Config{
		MinMultiplier: 0.5,
		MaxMultiplier: 2.0,
		EventDiscount: 0.9,
		TrendWeight:   0.1,
		BulkThreshold: 10,
	}
}

type itemState struct {
	supply float64
	demand float64
	trend  float64
}

// Engine computes dynamic item prices from supply/demand, events, and price
// trends. Per-item state is guarded by a mutex; reads and writes are
// serialized.
type Engine struct {
	mu     sync.Mutex
	config *Config
	clock  utils.Clock

	items     map[string]*itemState
	events    map[string]struct{}
	reference map[string]int64
}

func NewEngine(config *Config, clock utils.Clock) *Engine {
	return &Engine{
		config:    config,
		clock:     clock,
		items:     make(map[string]*itemState),
		events:    make(map[string]struct{}),
		reference: make(map[string]int64),
	}
}

// Price computes the current price of an item. When stock and maxStock are
// both supplied the live stock ratio drives the supply/demand step, otherwise
// the cached per-item supply and demand do (both default to 1.0).
func (e *Engine) Price(basePrice int64, itemID string, currentStock, maxStock *int) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ratio := 1.0
	if currentStock != nil && maxStock != nil && *maxStock > 0 {
		ratio = float64(*currentStock) / float64(*maxStock)
	} else if state, ok := e.items[itemID]; ok {
		demand := math.Max(state.demand, 0.01)
		ratio = state.supply / demand
	}

	multiplier := supplyDemandStep(ratio)

	if e.isWeekend() || len(e.events) > 0 {
		multiplier *= e.config.EventDiscount
	}

	if state, ok := e.items[itemID]; ok {
		multiplier *= 1.0 + state.trend*e.config.TrendWeight
	}

	multiplier = math.Max(e.config.MinMultiplier, math.Min(multiplier, e.config.MaxMultiplier))

	price := int64(math.Floor(float64(basePrice) * multiplier))
	if price < 1 {
		price = 1
	}
	return price
}

// supplyDemandStep maps the supply/demand ratio onto a deliberate step
// function. The breakpoints are load-bearing; downstream prices depend on the
// exact bands.
func supplyDemandStep(ratio float64) float64 {
	switch {
	case ratio > 2.0:
		return 0.7
	case ratio > 1.5:
		return 0.85
	case ratio < 0.3:
		return 1.5
	case ratio < 0.5:
		return 1.3
	case ratio < 0.8:
		return 1.15
	default:
		return 1.0
	}
}

// SetSupplyDemand updates the cached supply and demand levels for an item.
func (e *Engine) SetSupplyDemand(itemID string, supply, demand float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state := e.state(itemID)
	state.supply = math.Max(supply, 0)
	state.demand = math.Max(demand, 0)
}

// SetTrend records the item's price trend, clamped to [-1, 1].
func (e *Engine) SetTrend(itemID string, trend float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state(itemID).trend = math.Max(-1, math.Min(trend, 1))
}

// Trend returns the clamped trend for an item (0 when unknown).
func (e *Engine) Trend(itemID string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if state, ok := e.items[itemID]; ok {
		return state.trend
	}
	return 0
}

// AddEvent activates a named pricing event. Idempotent.
func (e *Engine) AddEvent(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events[name] = struct{}{}
}

// RemoveEvent deactivates a named pricing event. A no-op when not present.
func (e *Engine) RemoveEvent(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.events, name)
}

// ActiveEvents lists the currently active pricing events.
func (e *Engine) ActiveEvents() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.events))
	for name := range e.events {
		names = append(names, name)
	}
	return names
}

// RecordListing folds a new listing price into the item's reference price
// using a 70/30 EMA. The first listing sets the reference directly.
func (e *Engine) RecordListing(itemID string, price int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.reference[itemID]
	if !ok {
		e.reference[itemID] = price
		return price
	}
	updated := int64(math.Floor(float64(ref)*0.7 + float64(price)*0.3))
	e.reference[itemID] = updated
	return updated
}

// ReferencePrice returns the EMA reference price for an item.
func (e *Engine) ReferencePrice(itemID string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ref, ok := e.reference[itemID]
	return ref, ok
}

// BulkDiscount prices a bulk purchase. Quantities at 1x, 2x, and 5x the
// threshold earn 5%, 8%, and 15% off.
func (e *Engine) BulkDiscount(unitPrice int64, quantity int) int64 {
	if quantity < 0 {
		quantity = 0
	}
	total := unitPrice * int64(quantity)

	threshold := e.config.BulkThreshold
	var discount float64
	switch {
	case threshold > 0 && quantity >= 5*threshold:
		discount = 0.15
	case threshold > 0 && quantity >= 2*threshold:
		discount = 0.08
	case threshold > 0 && quantity >= threshold:
		discount = 0.05
	}

	return int64(math.Floor(float64(total) * (1 - discount)))
}

func (e *Engine) state(itemID string) *itemState {
	if state, ok := e.items[itemID]; ok {
		return state
	}
	state := &itemState{supply: 1.0, demand: 1.0}
	e.items[itemID] = state
	return state
}

func (e *Engine) isWeekend() bool {
	switch e.clock.Now().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
