package migration

import (
	"encoding/json"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
	"github.com/vibequest/vibequest/vibequest/database/models"
)

func convertPlayer(lp LegacyPlayer) *models.Player {
	var lastCheckIn *time.Time
	if !lp.LastCheckIn.IsZero() {
		t := lp.LastCheckIn
		lastCheckIn = &t
	}

	return &models.Player{
		ExternalID:      lp.ExternalID,
		Username:        lp.Username,
		VibeEnergy:      int64(lp.Energy),
		Experience:      int64(lp.Exp),
		CodeEssence:     int64(lp.Essence),
		Gold:            int64(lp.Gold),
		ConsecutiveDays: int64(lp.Streaks.Daily),
		LastCheckInDate: lastCheckIn,
		CreatedAt:       lp.Joined,
		UpdatedAt:       lp.UpdatedAt,
	}
}

func convertSession(ls LegacySession) (*models.ActivityRecord, error) {
	quality := activity.QualityMetrics{
		SuccessRate:    ls.SuccessRate,
		IterationCount: int(ls.Iterations),
		LinesChanged:   int(ls.Lines),
		Languages:      ls.Languages,
		ToolUsage: activity.ToolUsage{
			Read:   int(ls.Tools.Read),
			Write:  int(ls.Tools.Write),
			Bash:   int(ls.Tools.Bash),
			Search: int(ls.Tools.Search),
		},
	}
	encoded, err := json.Marshal(quality)
	if err != nil {
		return nil, err
	}

	return &models.ActivityRecord{
		SessionID:          ls.SessionID,
		PlayerID:           ls.PlayerID,
		StartedAt:          ls.Started,
		EndedAt:            ls.Ended,
		ConsecutiveMinutes: ls.Minutes,
		Quality:            encoded,
		IsInFlowState:      ls.Flow,
		VibeEnergy:         int(ls.Energy),
		Experience:         int(ls.Exp),
		CodeEssence:        int(ls.Essence),
	}, nil
}
