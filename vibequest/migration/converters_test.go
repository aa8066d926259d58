package migration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
)

func TestConvertPlayer(t *testing.T) {
	joined := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	lastCheckIn := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)

	lp := LegacyPlayer{
		ExternalID:  "player-42",
		Username:    "grace",
		Energy:      12345.0,
		Exp:         678.0,
		Essence:     9.0,
		Gold:        250.0,
		Streaks:     LegacyStreaks{Daily: 14, BestEver: 30},
		LastCheckIn: lastCheckIn,
		Joined:      joined,
	}

	p := convertPlayer(lp)
	if p.ExternalID != "player-42" {
		t.Errorf("external id = %q, want player-42", p.ExternalID)
	}
	if p.VibeEnergy != 12345 || p.Experience != 678 || p.CodeEssence != 9 || p.Gold != 250 {
		t.Errorf("balances = %d/%d/%d/%d, want 12345/678/9/250",
			p.VibeEnergy, p.Experience, p.CodeEssence, p.Gold)
	}
	if p.ConsecutiveDays != 14 {
		t.Errorf("streak = %d, want 14", p.ConsecutiveDays)
	}
	if p.LastCheckInDate == nil || !p.LastCheckInDate.Equal(lastCheckIn) {
		t.Errorf("last check-in = %v, want %v", p.LastCheckInDate, lastCheckIn)
	}
}

func TestConvertPlayerZeroCheckIn(t *testing.T) {
	p := convertPlayer(LegacyPlayer{ExternalID: "player-1"})
	if p.LastCheckInDate != nil {
		t.Errorf("zero legacy check-in should map to nil, got %v", p.LastCheckInDate)
	}
}

func TestConvertSession(t *testing.T) {
	started := time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC)
	ended := started.Add(50 * time.Minute)

	ls := LegacySession{
		SessionID:   987654,
		PlayerID:    "player-42",
		Started:     started,
		Ended:       &ended,
		Minutes:     50,
		SuccessRate: 0.85,
		Iterations:  3.0,
		Lines:       420.0,
		Languages:   []string{"go", "sql"},
		Tools:       LegacyToolCounts{Read: 10, Write: 5, Bash: 2},
		Flow:        true,
		Energy:      800.0,
		Exp:         80.0,
		Essence:     1.0,
	}

	record, err := convertSession(ls)
	if err != nil {
		t.Fatalf("convertSession returned error: %v", err)
	}
	if record.SessionID != 987654 || record.PlayerID != "player-42" {
		t.Errorf("identity = %d/%q, want 987654/player-42", record.SessionID, record.PlayerID)
	}
	if !record.IsInFlowState {
		t.Error("flow flag was dropped")
	}
	if record.VibeEnergy != 800 || record.Experience != 80 || record.CodeEssence != 1 {
		t.Errorf("payout = %d/%d/%d, want 800/80/1",
			record.VibeEnergy, record.Experience, record.CodeEssence)
	}

	var quality activity.QualityMetrics
	if err := json.Unmarshal(record.Quality, &quality); err != nil {
		t.Fatalf("quality did not round-trip: %v", err)
	}
	if quality.SuccessRate != 0.85 || quality.IterationCount != 3 || quality.LinesChanged != 420 {
		t.Errorf("quality = %+v", quality)
	}
	if quality.ToolUsage.Variety() != 3 {
		t.Errorf("tool variety = %d, want 3", quality.ToolUsage.Variety())
	}
}
