package economy

import (
	"math"
	"testing"
	"time"

	"github.com/vibequest/vibequest/vibequest/utils"
)

func newTestController() *Controller {
	clock := utils.FixedClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewController(NewDefaultConfig(), clock)
}

func TestController_MonitorHealth(t *testing.T) {
	t.Run("exact ten percent inflation", func(t *testing.T) {
		c := newTestController()
		snap := c.MonitorHealth(110000, 100, 500, 100000)
		if math.Abs(snap.InflationRate-0.10) > 1e-12 {
			t.Errorf("InflationRate = %v, want 0.10", snap.InflationRate)
		}
	})

	t.Run("no previous supply means zero inflation", func(t *testing.T) {
		c := newTestController()
		snap := c.MonitorHealth(100000, 100, 500, 0)
		if snap.InflationRate != 0 {
			t.Errorf("InflationRate = %v, want 0", snap.InflationRate)
		}
	})

	t.Run("severe inflation drags health down", func(t *testing.T) {
		c := newTestController()
		snap := c.MonitorHealth(150000, 100, 500, 100000)
		if snap.HealthScore > 70 {
			t.Errorf("HealthScore = %v, want <= 70 at 50%% inflation", snap.HealthScore)
		}
	})

	t.Run("zero players divides safely", func(t *testing.T) {
		c := newTestController()
		snap := c.MonitorHealth(5000, 0, 0, 0)
		if snap.AvgPlayerWealth != 5000 {
			t.Errorf("AvgPlayerWealth = %d, want 5000", snap.AvgPlayerWealth)
		}
	})

	t.Run("active trading lifts health", func(t *testing.T) {
		c := newTestController()
		busy := c.MonitorHealth(100000, 100, 600, 100000)
		quiet := c.MonitorHealth(100000, 100, 50, 100000)
		if busy.HealthScore <= quiet.HealthScore {
			t.Errorf("busy health %v should exceed quiet health %v", busy.HealthScore, quiet.HealthScore)
		}
		if busy.HealthScore > 100 {
			t.Errorf("HealthScore = %v, must stay within [0,100]", busy.HealthScore)
		}
	})
}

func TestController_HistoryBounded(t *testing.T) {
	c := newTestController()

	for i := 0; i < 150; i++ {
		c.MonitorHealth(int64(100000+i), 100, 500, 100000)
	}

	history := c.History()
	if len(history) != 100 {
		t.Fatalf("history length = %d, want 100", len(history))
	}
	// Oldest 50 snapshots evicted
	if history[0].TotalMoneySupply != 100050 {
		t.Errorf("oldest supply = %d, want 100050", history[0].TotalMoneySupply)
	}
	if latest, ok := c.LatestSnapshot(); !ok || latest.TotalMoneySupply != 100149 {
		t.Errorf("latest supply = %d, want 100149", latest.TotalMoneySupply)
	}
}

func TestController_AdjustTightening(t *testing.T) {
	c := newTestController()

	rates := c.Adjust(Snapshot{InflationRate: 0.15})
	if rates.Policy != PolicyTightening {
		t.Fatalf("policy = %s, want TIGHTENING", rates.Policy)
	}
	if rates.TaxRate <= NewDefaultConfig().BaseTaxRate {
		t.Errorf("TaxRate = %v, want above baseline", rates.TaxRate)
	}
	if rates.NPCPriceModifier >= 1.0 {
		t.Errorf("NPCPriceModifier = %v, want below 1.0", rates.NPCPriceModifier)
	}
	if rates.RewardModifier >= 1.0 {
		t.Errorf("RewardModifier = %v, want below 1.0", rates.RewardModifier)
	}
}

func TestController_AdjustEasing(t *testing.T) {
	c := newTestController()

	rates := c.Adjust(Snapshot{InflationRate: -0.1})
	if rates.Policy != PolicyEasing {
		t.Fatalf("policy = %s, want EASING", rates.Policy)
	}
	if rates.TaxRate >= NewDefaultConfig().BaseTaxRate {
		t.Errorf("TaxRate = %v, want below baseline", rates.TaxRate)
	}
	if rates.NPCPriceModifier <= 1.0 {
		t.Errorf("NPCPriceModifier = %v, want above 1.0", rates.NPCPriceModifier)
	}
	if rates.RewardModifier <= 1.0 {
		t.Errorf("RewardModifier = %v, want above 1.0", rates.RewardModifier)
	}
}

func TestController_RatesStayBounded(t *testing.T) {
	c := newTestController()

	for i := 0; i < 50; i++ {
		c.Adjust(Snapshot{InflationRate: 0.5})
	}
	rates := c.Rates()
	if rates.TaxRate < 0.01 || rates.TaxRate > 0.1 {
		t.Errorf("TaxRate = %v, out of [0.01, 0.1]", rates.TaxRate)
	}
	if rates.NPCPriceModifier < 0.5 || rates.NPCPriceModifier > 1.5 {
		t.Errorf("NPCPriceModifier = %v, out of [0.5, 1.5]", rates.NPCPriceModifier)
	}
	if rates.RewardModifier < 0.5 || rates.RewardModifier > 2.0 {
		t.Errorf("RewardModifier = %v, out of [0.5, 2.0]", rates.RewardModifier)
	}

	for i := 0; i < 50; i++ {
		c.Adjust(Snapshot{InflationRate: -0.5})
	}
	rates = c.Rates()
	if rates.TaxRate < 0.01 || rates.NPCPriceModifier > 1.5 || rates.RewardModifier > 2.0 {
		t.Errorf("rates escaped bounds after prolonged easing: %+v", rates)
	}
}

func TestController_StableRelaxesTowardBaseline(t *testing.T) {
	c := newTestController()

	// Perturb well away from baseline
	for i := 0; i < 10; i++ {
		c.Adjust(Snapshot{InflationRate: 0.5})
	}

	prev := c.Rates()
	for i := 0; i < 100; i++ {
		rates := c.Adjust(Snapshot{InflationRate: 0.0})
		if rates.Policy != PolicyStable {
			t.Fatalf("policy = %s, want STABLE", rates.Policy)
		}
		if rates.TaxRate > prev.TaxRate {
			t.Fatalf("TaxRate moved away from baseline: %v -> %v", prev.TaxRate, rates.TaxRate)
		}
		if rates.TaxRate < NewDefaultConfig().BaseTaxRate {
			t.Fatalf("TaxRate overshot baseline: %v", rates.TaxRate)
		}
		if rates.RewardModifier > prev.RewardModifier && prev.RewardModifier >= 1.0 {
			t.Fatalf("RewardModifier moved away from baseline: %v -> %v", prev.RewardModifier, rates.RewardModifier)
		}
		prev = rates
	}

	final := c.Rates()
	if math.Abs(final.TaxRate-0.03) > 1e-9 || math.Abs(final.NPCPriceModifier-1.0) > 1e-9 ||
		math.Abs(final.RewardModifier-1.0) > 1e-9 {
		t.Errorf("rates did not settle on baselines: %+v", final)
	}
}

func TestController_Fees(t *testing.T) {
	c := newTestController()

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"listing fee", c.ListingFee(1000), 30},
		{"listing fee floor", c.ListingFee(10), 1},
		{"auction fee", c.AuctionFee(1000), 50},
		{"auction fee floor", c.AuctionFee(5), 1},
		{"tax", c.Tax(1000), 30},
		{"tax on zero", c.Tax(0), 0},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}
