package checkin

import (
	"fmt"
	"sort"
	"time"
)

// MilestoneReward is the extra payout granted when a streak hits a milestone
// day exactly.
type MilestoneReward struct {
	Item string
	Gold int
}

type Config struct {
	BaseEnergy        int
	StreakBonusPerDay int
	MaxStreakBonus    int
	Gold              int
	Experience        int
	Milestones        map[int]MilestoneReward
}

func NewDefaultConfig() *Config {
	return &Config{
		BaseEnergy:        50,
		StreakBonusPerDay: 10,
		MaxStreakBonus:    100,
		Gold:              10,
		Experience:        20,
		Milestones: map[int]MilestoneReward{
			7:  {Item: "function_flower_seed", Gold: 100},
			14: {Item: "recursion_sapling", Gold: 200},
			30: {Item: "golden_mechanical_keyboard", Gold: 500},
			60: {Item: "quantum_rubber_duck", Gold: 1000},
		},
	}
}

// Ledger computes daily check-in outcomes. Pure: the caller persists the
// resulting streak and check-in date.
type Ledger struct {
	config *Config
}

func NewLedger(config *Config) *Ledger {
	return &Ledger{config: config}
}

// CheckIn evaluates a check-in attempt for today given the persisted state.
// A nil lastCheckIn means the player has never checked in.
func (l *Ledger) CheckIn(lastCheckIn *time.Time, currentStreak int, today time.Time) Result {
	if currentStreak < 0 {
		currentStreak = 0
	}

	if lastCheckIn != nil && sameDay(*lastCheckIn, today) {
		return Result{
			Status:    StatusAlreadyChecked,
			IsSuccess: false,
			NewStreak: currentStreak,
			Message:   "Already checked in today",
		}
	}

	status := StatusSuccess
	broken := false
	newStreak := 1

	switch {
	case lastCheckIn == nil:
		// First check-in ever: a fresh streak, not a broken one
	case daysBetween(*lastCheckIn, today) == 1:
		newStreak = currentStreak + 1
	default:
		status = StatusStreakBroken
		broken = true
	}

	reward := l.reward(newStreak)
	message := fmt.Sprintf("Checked in: +%d vibe energy (day %d)", reward.TotalEnergy, newStreak)
	if broken {
		message = fmt.Sprintf("Streak broken, starting over: +%d vibe energy", reward.TotalEnergy)
	}
	if reward.SpecialItem != "" {
		message = fmt.Sprintf("%s — %d-day milestone! Received %s and %d bonus gold",
			message, newStreak, reward.SpecialItem, reward.BonusGold)
	}

	return Result{
		Status:       status,
		IsSuccess:    true,
		NewStreak:    newStreak,
		StreakBroken: broken,
		Reward:       reward,
		Message:      message,
	}
}

// Status reports the player's standing without consuming today's check-in.
func (l *Ledger) Status(lastCheckIn *time.Time, currentStreak int, today time.Time) StatusReport {
	if currentStreak < 0 {
		currentStreak = 0
	}

	report := StatusReport{
		CurrentStreak: currentStreak,
	}

	nextStreak := 1
	switch {
	case lastCheckIn == nil:
	case sameDay(*lastCheckIn, today):
		report.CheckedToday = true
		nextStreak = currentStreak + 1
	case daysBetween(*lastCheckIn, today) == 1:
		nextStreak = currentStreak + 1
	default:
		report.WouldBreakStreak = true
	}

	nextReward := l.reward(nextStreak)
	report.NextTotalEnergy = nextReward.TotalEnergy
	report.NextStreakBonus = nextReward.StreakBonus

	reference := nextStreak
	if report.CheckedToday {
		reference = currentStreak
	}
	if milestone, ok := l.nextMilestone(reference); ok {
		report.NextMilestone = milestone
		report.DaysToMilestone = milestone - reference
	}

	return report
}

func (l *Ledger) reward(streak int) Reward {
	bonus := (streak - 1) * l.config.StreakBonusPerDay
	if bonus > l.config.MaxStreakBonus {
		bonus = l.config.MaxStreakBonus
	}
	if bonus < 0 {
		bonus = 0
	}

	reward := Reward{
		BaseEnergy:  l.config.BaseEnergy,
		StreakBonus: bonus,
		TotalEnergy: l.config.BaseEnergy + bonus,
		Gold:        l.config.Gold,
		Experience:  l.config.Experience,
	}

	if milestone, ok := l.config.Milestones[streak]; ok {
		reward.SpecialItem = milestone.Item
		reward.BonusGold = milestone.Gold
	}

	return reward
}

func (l *Ledger) nextMilestone(streak int) (int, bool) {
	days := make([]int, 0, len(l.config.Milestones))
	for day := range l.config.Milestones {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		if day > streak {
			return day, true
		}
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
