package main

import (
	"os"
	"time"

	"teachfi/internal/handlers/business"
	"teachfi/internal/models"
	dbconfig "teachfi/pkg/config"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// getZeroSecondTime truncates a time to the minute
func getZeroSecondTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// latestTokenPrice derives the TEACH/USD price from the most recently
// updated liquidity pool. Returns zero when no pool has reserves yet.
func latestTokenPrice() decimal.Decimal {
	var pool models.LiquidityPool
	err := dbconfig.DB.Where("is_active = ?", true).
		Order("reserves_updated DESC").
		First(&pool).Error
	if err != nil {
		logger.Warnf("> no active liquidity pool for price derivation: %v", err)
		return decimal.Zero
	}
	return pool.CurrentPrice().Mul(pool.Token1PriceUsd)
}

// totalSupply reads the fixed token supply from the environment.
func totalSupply() decimal.Decimal {
	raw := os.Getenv("TOKEN_TOTAL_SUPPLY")
	if raw == "" {
		raw = "1000000000" // 1B TEACH
	}
	supply, err := decimal.NewFromString(raw)
	if err != nil {
		logger.Errorf("> invalid TOKEN_TOTAL_SUPPLY %q: %v", raw, err)
		return decimal.Zero
	}
	return supply
}

// RecordSnapshots records the periodic snapshot series: analytics,
// supply, and one snapshot per liquidity pool. Treasury and burn
// snapshots are event-driven and recorded through the API instead.
func RecordSnapshots() error {
	now := getZeroSecondTime(time.Now().UTC())
	logger.Info("> recording periodic snapshots")

	price := latestTokenPrice()
	supply := totalSupply()

	if _, err := business.RecordAnalyticsSnapshot(dbconfig.DB, price, supply, now); err != nil {
		logger.Errorf("> analytics snapshot failed: %v", err)
		return err
	}

	if _, err := business.RecordSupplySnapshot(dbconfig.DB, supply, now); err != nil {
		logger.Errorf("> supply snapshot failed: %v", err)
		return err
	}

	poolSnaps, err := business.RecordLiquidityPoolSnapshots(dbconfig.DB, now)
	if err != nil {
		logger.Errorf("> liquidity pool snapshots failed: %v", err)
		return err
	}

	logger.Infof("> snapshots recorded (pools: %d)", len(poolSnaps))
	return nil
}

func main() {
	os.MkdirAll("logs", 0755)
	file, err := os.OpenFile("logs/snapshot_record.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		logger.SetOutput(file)
	} else {
		logger.Warn("cannot open log file, logging to stdout")
	}

	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logger.InfoLevel)
	logger.Info("> initializing snapshot recorder...")

	dbconfig.InitDB()
	logger.Info("> database connection ready")

	c := cron.New(cron.WithSeconds())

	// every 15 minutes
	_, err = c.AddFunc("0 */15 * * * *", func() {
		if err := RecordSnapshots(); err != nil {
			logger.Errorf("> snapshot run failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("> failed to schedule snapshot job: %v", err)
	}

	logger.Info("> snapshot job scheduled every 15 minutes")

	c.Start()

	select {}
}
