package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vibequest/vibequest/vibequest/activity"
	"github.com/vibequest/vibequest/vibequest/checkin"
	"github.com/vibequest/vibequest/vibequest/database/models"
	"github.com/vibequest/vibequest/vibequest/database/repositories"
	"github.com/vibequest/vibequest/vibequest/economy"
	"github.com/vibequest/vibequest/vibequest/economy/pricing"
	"github.com/vibequest/vibequest/vibequest/flowstate"
	"github.com/vibequest/vibequest/vibequest/logger"
	"github.com/vibequest/vibequest/vibequest/rewards"
	"github.com/vibequest/vibequest/vibequest/utils"
)

// GameService owns one instance of each core component and coordinates them
// against the persistence layer.
type GameService struct {
	playerRepo   repositories.PlayerRepository
	activityRepo repositories.ActivityRepository
	snapshotRepo repositories.EconomySnapshotRepository
	checkInRepo  repositories.CheckInRepository

	calculator *rewards.Calculator
	detector   *flowstate.Detector
	ledger     *checkin.Ledger
	controller *economy.Controller
	priceStore *pricing.Store
	clock      utils.Clock

	economyCycle time.Duration
}

type GameServiceConfig struct {
	EconomyCycle time.Duration
}

func NewGameService(
	playerRepo repositories.PlayerRepository,
	activityRepo repositories.ActivityRepository,
	snapshotRepo repositories.EconomySnapshotRepository,
	checkInRepo repositories.CheckInRepository,
	calculator *rewards.Calculator,
	detector *flowstate.Detector,
	ledger *checkin.Ledger,
	controller *economy.Controller,
	priceStore *pricing.Store,
	clock utils.Clock,
	config GameServiceConfig,
) *GameService {
	cycle := config.EconomyCycle
	if cycle <= 0 {
		cycle = 15 * time.Minute
	}
	return &GameService{
		playerRepo:   playerRepo,
		activityRepo: activityRepo,
		snapshotRepo: snapshotRepo,
		checkInRepo:  checkInRepo,
		calculator:   calculator,
		detector:     detector,
		ledger:       ledger,
		controller:   controller,
		priceStore:   priceStore,
		clock:        clock,
		economyCycle: cycle,
	}
}

// ProcessActivity runs the full reward pipeline for one session: flow
// detection, reward calculation, the controller's reward modifier, and
// persistence of both the payout and the session record.
func (s *GameService) ProcessActivity(ctx context.Context, playerID string, act activity.Activity, gap *time.Duration) (*rewards.VibeReward, *flowstate.FlowState, error) {
	state := s.detector.Detect(act, gap)
	act.IsInFlowState = state.IsActive

	reward := s.calculator.Calculate(act)

	// The economy controller scales payouts during corrections
	modifier := s.controller.Rates().RewardModifier
	reward.VibeEnergy = int(math.Floor(float64(reward.VibeEnergy) * modifier))
	reward.Experience = int(math.Floor(float64(reward.VibeEnergy) * 0.1))

	player, err := s.playerRepo.GetByExternalID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load player: %w", err)
	}

	player.VibeEnergy += int64(reward.VibeEnergy)
	player.Experience += int64(reward.Experience)
	player.CodeEssence += int64(reward.CodeEssence)
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, nil, fmt.Errorf("failed to update player: %w", err)
	}

	quality, err := json.Marshal(act.Quality)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode quality metrics: %w", err)
	}
	record := &models.ActivityRecord{
		SessionID:          int64(act.SessionID),
		PlayerID:           playerID,
		StartedAt:          act.StartedAt,
		EndedAt:            act.EndedAt,
		ConsecutiveMinutes: act.ConsecutiveMinutes,
		Quality:            quality,
		IsInFlowState:      state.IsActive,
		VibeEnergy:         reward.VibeEnergy,
		Experience:         reward.Experience,
		CodeEssence:        reward.CodeEssence,
	}
	if err := s.activityRepo.Create(ctx, record); err != nil {
		return nil, nil, err
	}

	slog.Debug("Activity processed",
		slog.String("type", "engine"),
		slog.String("player_id", playerID),
		slog.Int("vibe_energy", reward.VibeEnergy),
		slog.Bool("flow", state.IsActive))

	return &reward, &state, nil
}

// DailyCheckIn evaluates today's check-in for the player and persists the
// outcome.
func (s *GameService) DailyCheckIn(ctx context.Context, playerID string) (checkin.Result, error) {
	player, err := s.playerRepo.GetByExternalID(ctx, playerID)
	if err != nil {
		return checkin.Result{}, fmt.Errorf("failed to load player: %w", err)
	}

	today := s.clock.Now()
	result := s.ledger.CheckIn(player.LastCheckInDate, int(player.ConsecutiveDays), today)
	if !result.IsSuccess {
		return result, nil
	}

	player.ConsecutiveDays = int64(result.NewStreak)
	player.LastCheckInDate = &today
	player.VibeEnergy += int64(result.Reward.TotalEnergy)
	player.Gold += int64(result.Reward.Gold + result.Reward.BonusGold)
	player.Experience += int64(result.Reward.Experience)
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return checkin.Result{}, fmt.Errorf("failed to update player: %w", err)
	}

	record := &models.CheckInRecord{
		PlayerID:    playerID,
		Day:         today,
		Streak:      result.NewStreak,
		TotalEnergy: result.Reward.TotalEnergy,
		Gold:        result.Reward.Gold + result.Reward.BonusGold,
		SpecialItem: result.Reward.SpecialItem,
	}
	if err := s.checkInRepo.Create(ctx, record); err != nil {
		return checkin.Result{}, err
	}

	return result, nil
}

// CheckInStatus reports the player's streak standing without consuming the
// daily check-in.
func (s *GameService) CheckInStatus(ctx context.Context, playerID string) (checkin.StatusReport, error) {
	player, err := s.playerRepo.GetByExternalID(ctx, playerID)
	if err != nil {
		return checkin.StatusReport{}, fmt.Errorf("failed to load player: %w", err)
	}
	return s.ledger.Status(player.LastCheckInDate, int(player.ConsecutiveDays), s.clock.Now()), nil
}

// RunEconomyCycle gathers aggregate figures, scores economy health, adjusts
// the rates, and persists the snapshot.
func (s *GameService) RunEconomyCycle(ctx context.Context) (_ economy.Snapshot, _ economy.RateSet, err error) {
	start := time.Now()
	defer func() { logger.LogEngine("economy_cycle", time.Since(start), err) }()

	totalSupply, err := s.playerRepo.TotalMoneySupply(ctx)
	if err != nil {
		return economy.Snapshot{}, economy.RateSet{}, fmt.Errorf("failed to total money supply: %w", err)
	}
	playerCount, err := s.playerRepo.Count(ctx)
	if err != nil {
		return economy.Snapshot{}, economy.RateSet{}, fmt.Errorf("failed to count players: %w", err)
	}
	txVolume, err := s.activityRepo.TransactionVolumeSince(ctx, s.clock.Now().Add(-24*time.Hour))
	if err != nil {
		return economy.Snapshot{}, economy.RateSet{}, fmt.Errorf("failed to measure transaction volume: %w", err)
	}

	var prevSupply int64
	if prev, err := s.snapshotRepo.GetLatest(ctx); err != nil {
		return economy.Snapshot{}, economy.RateSet{}, fmt.Errorf("failed to load previous snapshot: %w", err)
	} else if prev != nil {
		prevSupply = prev.TotalMoneySupply
	}

	snapshot := s.controller.MonitorHealth(totalSupply, playerCount, txVolume, prevSupply)
	rates := s.controller.Adjust(snapshot)

	record := &models.EconomySnapshot{
		TotalMoneySupply:  snapshot.TotalMoneySupply,
		AvgPlayerWealth:   snapshot.AvgPlayerWealth,
		TransactionVolume: snapshot.TransactionVolume,
		InflationRate:     snapshot.InflationRate,
		HealthScore:       snapshot.HealthScore,
		Policy:            string(rates.Policy),
		TaxRate:           rates.TaxRate,
		ListingFeeRate:    rates.ListingFeeRate,
		NPCPriceModifier:  rates.NPCPriceModifier,
		RewardModifier:    rates.RewardModifier,
		RecordedAt:        snapshot.RecordedAt,
	}
	if err := s.snapshotRepo.Create(ctx, record); err != nil {
		return economy.Snapshot{}, economy.RateSet{}, err
	}

	slog.Info("Economy cycle completed",
		slog.String("type", "engine"),
		slog.String("policy", string(rates.Policy)),
		slog.Float64("health_score", snapshot.HealthScore),
		slog.Float64("inflation_rate", snapshot.InflationRate))

	return snapshot, rates, nil
}

// NPCItemPrice computes the NPC shop price of an item: the dynamic price
// scaled by the controller's NPC modifier.
func (s *GameService) NPCItemPrice(ctx context.Context, itemID string, currentStock, maxStock *int) (int64, error) {
	price, err := s.priceStore.CurrentPrice(ctx, itemID, currentStock, maxStock)
	if err != nil {
		return 0, err
	}

	modifier := s.controller.Rates().NPCPriceModifier
	adjusted := int64(math.Floor(float64(price) * modifier))
	if adjusted < 1 {
		adjusted = 1
	}
	return adjusted, nil
}

// RecordListing applies the listing fee and folds the price into the item's
// reference EMA. Returns the fee charged.
func (s *GameService) RecordListing(ctx context.Context, itemID string, price int64) (int64, error) {
	if _, err := s.priceStore.RecordListing(ctx, itemID, price); err != nil {
		return 0, err
	}
	return s.controller.ListingFee(price), nil
}

// SettleAuction returns the fee due on a finished auction.
func (s *GameService) SettleAuction(finalPrice int64) int64 {
	return s.controller.AuctionFee(finalPrice)
}

// TransactionTax returns the tax due on a direct trade.
func (s *GameService) TransactionTax(amount int64) int64 {
	return s.controller.Tax(amount)
}

// SearchItems finds priced items by ID or fuzzy name match.
func (s *GameService) SearchItems(ctx context.Context, query string) ([]*models.ItemPrice, error) {
	items, err := s.priceStore.Items(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.SearchItems(items, query), nil
}

// EstimateReward previews the energy payout for the given parameters.
func (s *GameService) EstimateReward(durationMinutes, consecutiveMinutes, qualityScore float64, consecutiveDays int, inFlow bool) int {
	return s.calculator.Estimate(durationMinutes, consecutiveMinutes, qualityScore, consecutiveDays, inFlow)
}

// FlowProgress reports per-condition flow progress for display.
func (s *GameService) FlowProgress(act activity.Activity) flowstate.Progress {
	return s.detector.Progress(act)
}

// Start runs the periodic economy cycle until the context is cancelled.
func (s *GameService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.economyCycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, _, err := s.RunEconomyCycle(ctx); err != nil {
				slog.Error("Economy cycle failed", slog.Any("error", err))
			}
		}
	}
}
