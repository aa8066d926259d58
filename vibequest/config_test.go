package vibequest

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vibequest/vibequest/vibequest/checkin"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"

[checkin]
base_energy = 75
streak_bonus_per_day = 5
max_streak_bonus = 50

[[checkin.milestones]]
days = 3
item = "syntax_sugar_cube"
gold = 40

[[checkin.milestones]]
days = 21
item = "monad_terrarium"
gold = 300
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("Log.Level = %v, want %v", cfg.Log.Level, slog.LevelDebug)
	}

	ledgerCfg := cfg.CheckIn.LedgerConfig()
	if ledgerCfg.BaseEnergy != 75 {
		t.Errorf("BaseEnergy = %d, want 75", ledgerCfg.BaseEnergy)
	}
	if ledgerCfg.StreakBonusPerDay != 5 {
		t.Errorf("StreakBonusPerDay = %d, want 5", ledgerCfg.StreakBonusPerDay)
	}
	if ledgerCfg.MaxStreakBonus != 50 {
		t.Errorf("MaxStreakBonus = %d, want 50", ledgerCfg.MaxStreakBonus)
	}

	want := map[int]checkin.MilestoneReward{
		3:  {Item: "syntax_sugar_cube", Gold: 40},
		21: {Item: "monad_terrarium", Gold: 300},
	}
	if len(ledgerCfg.Milestones) != len(want) {
		t.Fatalf("len(Milestones) = %d, want %d", len(ledgerCfg.Milestones), len(want))
	}
	for days, reward := range want {
		if got := ledgerCfg.Milestones[days]; got != reward {
			t.Errorf("Milestones[%d] = %+v, want %+v", days, got, reward)
		}
	}
}

func TestCheckInConfig_LedgerConfig_Defaults(t *testing.T) {
	// Without a milestones table the standard milestone rewards stay in place
	ledgerCfg := DefaultConfig().CheckIn.LedgerConfig()

	if ledgerCfg.BaseEnergy != 50 {
		t.Errorf("BaseEnergy = %d, want 50", ledgerCfg.BaseEnergy)
	}
	if got := ledgerCfg.Milestones[7]; got.Item != "function_flower_seed" || got.Gold != 100 {
		t.Errorf("Milestones[7] = %+v, want function_flower_seed/100", got)
	}
	if got := ledgerCfg.Milestones[60]; got.Item != "quantum_rubber_duck" || got.Gold != 1000 {
		t.Errorf("Milestones[60] = %+v, want quantum_rubber_duck/1000", got)
	}
}
