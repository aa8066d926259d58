package economy

import (
	"log/slog"
	"math"
	"sync"

	"github.com/vibequest/vibequest/vibequest/utils"
)

type Config struct {
	BaseTaxRate        float64
	BaseListingFeeRate float64
	BaseAuctionFeeRate float64

	// Policy selection thresholds on the inflation rate
	InflationHigh float64
	InflationLow  float64

	HistoryCapacity int
}

func NewDefaultConfig() *Config {
	return &Config{
		BaseTaxRate:        0.03,
		BaseListingFeeRate: 0.03,
		BaseAuctionFeeRate: 0.05,
		InflationHigh:      0.1,
		InflationLow:       -0.05,
		HistoryCapacity:    100,
	}
}

// Rate bounds and stable-policy step sizes.
const (
	minTaxRate     = 0.01
	maxTaxRate     = 0.1
	minListingFee  = 0.01
	maxListingFee  = 0.1
	minNPCModifier = 0.5
	maxNPCModifier = 1.5
	minRewardMod   = 0.5
	maxRewardMod   = 2.0

	feeStep       = 0.01
	npcStep       = 0.05
	rewardStep    = 0.1
	feeRelax      = 0.005
	npcRelax      = 0.02
	rewardRelax   = 0.05
	baseNPCMod    = 1.0
	baseRewardMod = 1.0
)

// Controller keeps the virtual economy stable: it monitors money supply and
// activity, and steps fees and modifiers through a bounded feedback loop.
// All state access is serialized behind a mutex.
type Controller struct {
	mu      sync.Mutex
	config  *Config
	clock   utils.Clock
	history *snapshotRing

	taxRate          float64
	listingFeeRate   float64
	auctionFeeRate   float64
	npcPriceModifier float64
	rewardModifier   float64
}

func NewController(config *Config, clock utils.Clock) *Controller {
	return &Controller{
		config:           config,
		clock:            clock,
		history:          newSnapshotRing(config.HistoryCapacity),
		taxRate:          config.BaseTaxRate,
		listingFeeRate:   config.BaseListingFeeRate,
		auctionFeeRate:   config.BaseAuctionFeeRate,
		npcPriceModifier: baseNPCMod,
		rewardModifier:   baseRewardMod,
	}
}

// MonitorHealth scores the economy from aggregate figures and records the
// snapshot. prevSupply of zero or below means no previous reading exists.
func (c *Controller) MonitorHealth(totalSupply int64, playerCount int, txVolume int64, prevSupply int64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	players := int64(playerCount)
	if players < 1 {
		players = 1
	}

	inflation := 0.0
	if prevSupply > 0 {
		inflation = float64(totalSupply-prevSupply) / float64(prevSupply)
	}

	health := 100.0
	switch abs := math.Abs(inflation); {
	case abs > 0.2:
		health -= 40
	case abs > 0.1:
		health -= 25
	case abs > 0.05:
		health -= 10
	}

	txPerPlayer := float64(txVolume) / float64(players)
	if txPerPlayer >= 5 {
		health += 10
	} else if txPerPlayer < 1 {
		health -= 15
	}
	health = math.Max(0, math.Min(health, 100))

	snapshot := Snapshot{
		TotalMoneySupply:  totalSupply,
		AvgPlayerWealth:   totalSupply / players,
		TransactionVolume: txVolume,
		InflationRate:     inflation,
		HealthScore:       health,
		RecordedAt:        c.clock.Now(),
	}
	c.history.push(snapshot)

	if health < 50 {
		slog.Warn("Economy health degraded",
			slog.Float64("health_score", health),
			slog.Float64("inflation_rate", inflation))
	}

	return snapshot
}

// Adjust selects a policy from the snapshot's inflation rate and steps the
// rates accordingly. Returns the resulting rate set.
func (c *Controller) Adjust(snapshot Snapshot) RateSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	var policy Policy
	switch {
	case snapshot.InflationRate > c.config.InflationHigh:
		policy = PolicyTightening
		c.taxRate = math.Min(c.taxRate+feeStep, maxTaxRate)
		c.listingFeeRate = math.Min(c.listingFeeRate+feeStep, maxListingFee)
		c.npcPriceModifier = math.Max(c.npcPriceModifier-npcStep, minNPCModifier)
		c.rewardModifier = math.Max(c.rewardModifier-rewardStep, minRewardMod)

	case snapshot.InflationRate < c.config.InflationLow:
		policy = PolicyEasing
		c.taxRate = math.Max(c.taxRate-feeStep, minTaxRate)
		c.listingFeeRate = math.Max(c.listingFeeRate-feeStep, minListingFee)
		c.npcPriceModifier = math.Min(c.npcPriceModifier+npcStep, maxNPCModifier)
		c.rewardModifier = math.Min(c.rewardModifier+rewardStep, maxRewardMod)

	default:
		policy = PolicyStable
		c.taxRate = stepToward(c.taxRate, c.config.BaseTaxRate, feeRelax)
		c.listingFeeRate = stepToward(c.listingFeeRate, c.config.BaseListingFeeRate, feeRelax)
		c.npcPriceModifier = stepToward(c.npcPriceModifier, baseNPCMod, npcRelax)
		c.rewardModifier = stepToward(c.rewardModifier, baseRewardMod, rewardRelax)
	}

	rates := RateSet{
		TaxRate:          c.taxRate,
		ListingFeeRate:   c.listingFeeRate,
		AuctionFeeRate:   c.auctionFeeRate,
		NPCPriceModifier: c.npcPriceModifier,
		RewardModifier:   c.rewardModifier,
		Policy:           policy,
	}

	slog.Debug("Economy rates adjusted",
		slog.String("policy", string(policy)),
		slog.Float64("inflation_rate", snapshot.InflationRate),
		slog.Float64("tax_rate", rates.TaxRate),
		slog.Float64("reward_modifier", rates.RewardModifier))

	return rates
}

// stepToward moves current one step toward target without overshooting.
func stepToward(current, target, step float64) float64 {
	if current > target {
		return math.Max(current-step, target)
	}
	if current < target {
		return math.Min(current+step, target)
	}
	return current
}

// Rates returns the current rate set without adjusting anything.
func (c *Controller) Rates() RateSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RateSet{
		TaxRate:          c.taxRate,
		ListingFeeRate:   c.listingFeeRate,
		AuctionFeeRate:   c.auctionFeeRate,
		NPCPriceModifier: c.npcPriceModifier,
		RewardModifier:   c.rewardModifier,
	}
}

// History returns the recorded snapshots oldest-first.
func (c *Controller) History() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.items()
}

// LatestSnapshot returns the most recent snapshot, if any.
func (c *Controller) LatestSnapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.latest()
}

// ListingFee computes the fee for listing an item at the given total price.
// Never less than 1.
func (c *Controller) ListingFee(total int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	fee := int64(math.Floor(float64(total) * c.listingFeeRate))
	if fee < 1 {
		fee = 1
	}
	return fee
}

// AuctionFee computes the fee on a finished auction's final price. Never less
// than 1.
func (c *Controller) AuctionFee(finalPrice int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	fee := int64(math.Floor(float64(finalPrice) * c.auctionFeeRate))
	if fee < 1 {
		fee = 1
	}
	return fee
}

// Tax computes the transaction tax on amount. Never negative.
func (c *Controller) Tax(amount int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	tax := int64(math.Floor(float64(amount) * c.taxRate))
	if tax < 0 {
		tax = 0
	}
	return tax
}
