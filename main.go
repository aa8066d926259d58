package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vibequest/vibequest/vibequest"
	"github.com/vibequest/vibequest/vibequest/checkin"
	"github.com/vibequest/vibequest/vibequest/database"
	"github.com/vibequest/vibequest/vibequest/database/repositories"
	"github.com/vibequest/vibequest/vibequest/economy"
	"github.com/vibequest/vibequest/vibequest/economy/pricing"
	"github.com/vibequest/vibequest/vibequest/flowstate"
	"github.com/vibequest/vibequest/vibequest/logger"
	"github.com/vibequest/vibequest/vibequest/rewards"
	"github.com/vibequest/vibequest/vibequest/services"
	"github.com/vibequest/vibequest/vibequest/utils"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting VibeQuest reward engine",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldLoadPrices := flag.Bool("load-prices", false, "Whether to prime the price store from the database on startup")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := vibequest.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	customHandler.SetLevel(cfg.Log.Level)
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	clock := utils.SystemClock()

	playerRepo := repositories.NewPlayerRepository(db.BunDB())
	activityRepo := repositories.NewActivityRepository(db.BunDB())
	snapshotRepo := repositories.NewEconomySnapshotRepository(db.BunDB())
	checkInRepo := repositories.NewCheckInRepository(db.BunDB())
	itemPriceRepo := repositories.NewItemPriceRepository(db.BunDB())

	rewardsConfig := rewards.NewDefaultConfig()
	rewardsConfig.BaseRatePerMinute = cfg.Rewards.BaseRatePerMinute
	rewardsConfig.MaxTimeMultiplier = cfg.Rewards.MaxTimeMultiplier
	rewardsConfig.MaxQualityMultiplier = cfg.Rewards.MaxQualityMultiplier
	rewardsConfig.FlowMultiplier = cfg.Rewards.FlowMultiplier
	rewardsConfig.EssenceOnZeroEnergy = cfg.Rewards.EssenceOnZeroEnergy

	seed := cfg.Rewards.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	calculator := rewards.NewCalculator(rewardsConfig, utils.NewRand(seed))

	flowConfig := flowstate.NewDefaultConfig()
	flowConfig.MinDurationMinutes = cfg.Flow.MinDurationMinutes
	flowConfig.MaxInteractionGap = time.Duration(cfg.Flow.MaxGapSeconds) * time.Second
	flowConfig.MinSuccessRate = cfg.Flow.MinSuccessRate
	flowConfig.MinToolVariety = cfg.Flow.MinToolVariety
	flowConfig.MinOutputRate = cfg.Flow.MinOutputRate
	detector := flowstate.NewDetector(flowConfig, clock)

	ledger := checkin.NewLedger(cfg.CheckIn.LedgerConfig())

	economyConfig := economy.NewDefaultConfig()
	economyConfig.BaseTaxRate = cfg.Economy.BaseTaxRate
	economyConfig.BaseListingFeeRate = cfg.Economy.BaseListingFeeRate
	economyConfig.BaseAuctionFeeRate = cfg.Economy.BaseAuctionFeeRate
	economyConfig.InflationHigh = cfg.Economy.InflationHigh
	economyConfig.InflationLow = cfg.Economy.InflationLow
	controller := economy.NewController(economyConfig, clock)

	pricingConfig := pricing.NewDefaultConfig()
	pricingConfig.EventDiscount = cfg.Pricing.EventDiscount
	pricingConfig.BulkThreshold = cfg.Pricing.BulkThreshold
	engine := pricing.NewEngine(pricingConfig, clock)
	priceStore := pricing.NewStore(itemPriceRepo, engine, clock,
		time.Duration(cfg.Pricing.CacheExpirySeconds)*time.Second)

	if *shouldLoadPrices {
		slog.Info("Priming price store from database...")
		if err := priceStore.Load(ctx); err != nil {
			slog.Error("Failed to prime price store", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	svc := services.NewGameService(
		playerRepo, activityRepo, snapshotRepo, checkInRepo,
		calculator, detector, ledger, controller, priceStore, clock,
		services.GameServiceConfig{
			EconomyCycle: time.Duration(cfg.Economy.CycleMinutes) * time.Minute,
		},
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		return svc.Start(gctx)
	})

	if cfg.Archive.Enabled {
		archive, err := services.NewArchiveService(
			cfg.Archive.Key,
			cfg.Archive.Secret,
			cfg.Archive.Region,
			cfg.Archive.Bucket,
			cfg.Archive.Prefix,
		)
		if err != nil {
			slog.Error("Failed to initialize snapshot archive", slog.Any("error", err))
			os.Exit(-1)
		}

		g.Go(func() error {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-ticker.C:
					snapshots, err := snapshotRepo.GetRecent(gctx, 100)
					if err != nil {
						slog.Error("Failed to load snapshots for archive", slog.Any("error", err))
						continue
					}
					if len(snapshots) == 0 {
						continue
					}
					url, err := archive.ArchiveSnapshots(gctx, clock.Now(), snapshots)
					if err != nil {
						slog.Error("Snapshot archive upload failed", slog.Any("error", err))
						continue
					}
					slog.Info("Snapshot history archived", slog.String("url", url))
				}
			}
		})
	}

	logger.LogSystem("Engine is running. Press CTRL-C to exit.")
	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.LogError("Engine stopped", err)
		os.Exit(-1)
	}
	logger.LogSystem("Shutting down...")
}
