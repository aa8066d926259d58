package checkin

// Status tags the outcome of a check-in attempt.
type Status string

const (
	StatusSuccess        Status = "SUCCESS"
	StatusAlreadyChecked Status = "ALREADY_CHECKED"
	StatusStreakBroken   Status = "STREAK_BROKEN"
)

// Reward is the payout for one daily check-in.
type Reward struct {
	BaseEnergy  int    `json:"base_energy"`
	StreakBonus int    `json:"streak_bonus"`
	TotalEnergy int    `json:"total_energy"`
	Gold        int    `json:"gold"`
	Experience  int    `json:"experience"`
	SpecialItem string `json:"special_item,omitempty"`
	BonusGold   int    `json:"bonus_gold,omitempty"`
}

// Result is the full outcome of a check-in attempt. The caller persists the
// new streak and date; the ledger itself holds no state.
type Result struct {
	Status       Status `json:"status"`
	IsSuccess    bool   `json:"is_success"`
	NewStreak    int    `json:"new_streak"`
	StreakBroken bool   `json:"streak_broken"`
	Reward       Reward `json:"reward"`
	Message      string `json:"message"`
}

// StatusReport is the read-only view of a player's check-in standing.
type StatusReport struct {
	CheckedToday     bool `json:"checked_today"`
	CurrentStreak    int  `json:"current_streak"`
	NextMilestone    int  `json:"next_milestone,omitempty"`
	DaysToMilestone  int  `json:"days_to_milestone,omitempty"`
	NextTotalEnergy  int  `json:"next_total_energy"`
	NextStreakBonus  int  `json:"next_streak_bonus"`
	WouldBreakStreak bool `json:"would_break_streak"`
}
