package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/config"
	"github.com/DevLabStudio/goldquest-ledger/internal/logging"
	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
	kafkanotify "github.com/DevLabStudio/goldquest-ledger/internal/notify/kafka"
	"github.com/DevLabStudio/goldquest-ledger/internal/repair"
	"github.com/DevLabStudio/goldquest-ledger/internal/service"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage/memory"
	mongostore "github.com/DevLabStudio/goldquest-ledger/internal/storage/mongo"
	pgstore "github.com/DevLabStudio/goldquest-ledger/internal/storage/postgres"
)

// The binary runs one maintenance pass against the configured store and
// exits. RECALC_MODE=full rebuilds every account from history;
// RECALC_MODE=drift rescans for drifted accounts and rebuilds only those.
// Deployments run it after restores, migrations, or suspected drift.
func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logging.SetupLogging("info").WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("goldquest-ledger starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, envConfig, logger); err != nil {
		logger.WithError(err).Error("goldquest-ledger failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, envConfig *config.Config, logger *logrus.Logger) error {
	records, err := openRecordStore(ctx, envConfig)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer func() {
		if err := records.Close(); err != nil {
			logger.WithError(err).Warn("main.records.Close")
		}
	}()
	store := &storage.Storage{Records: records}

	var events notify.Publisher = notify.NewBus()
	if len(envConfig.KafkaBrokers) > 0 {
		kafkaPublisher := kafkanotify.NewPublisher(envConfig.KafkaBrokers, envConfig.KafkaTopic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.WithError(err).Warn("main.kafka.Close")
			}
		}()
		events = notify.Multi{events, kafkaPublisher}
	}

	svc := service.NewService(store, logger, events, nil)

	switch envConfig.RecalcMode {
	case "", "full":
		return recalculateAll(ctx, svc, logger)
	case "drift":
		return repairDrifted(ctx, svc, envConfig.RepairWorkers, logger)
	default:
		return fmt.Errorf("unknown recalc mode %q", envConfig.RecalcMode)
	}
}

func openRecordStore(ctx context.Context, envConfig *config.Config) (storage.IRecordStore, error) {
	switch envConfig.StorageDriver {
	case "", "memory":
		return memory.NewStore(), nil
	case "postgres":
		return pgstore.NewStore(envConfig.PostgresURL())
	case "mongo":
		return mongostore.NewStore(ctx, envConfig.MongoURI, envConfig.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", envConfig.StorageDriver)
	}
}

func recalculateAll(ctx context.Context, svc *service.Service, logger *logrus.Logger) error {
	operation := logging.OperationWrapper("RecalculateAll", logger, func(ctx context.Context, data *logging.LogData) error {
		report, err := svc.Recalc.RecalculateAll(ctx)
		if report != nil {
			data.AddData("accountsProcessed", report.AccountsProcessed)
			data.AddData("accountsRemaining", report.AccountsRemaining)
			data.AddData("orphanedTransactions", len(report.Orphaned))
			data.AddData("consistencyErrors", len(report.Errors))
		}
		return err
	})
	return operation(ctx)
}

// repairDrifted scans every account for drift and pushes the drifted ones
// through the repair queue, so rebuilds run at the configured concurrency
// instead of one full-history scan per account in sequence.
func repairDrifted(ctx context.Context, svc *service.Service, workers int, logger *logrus.Logger) error {
	queue := repair.NewQueue(svc.Recalc, workers, logger)
	queue.Start()
	defer queue.Stop()

	operation := logging.OperationWrapper("RepairDrifted", logger, func(ctx context.Context, data *logging.LogData) error {
		accounts, err := svc.Accounts.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}

		var drifted []uuid.UUID
		for _, account := range accounts {
			hasDrift, err := svc.Recalc.DetectDrift(ctx, account.ID)
			if err != nil {
				return fmt.Errorf("detect drift on account %s: %w", account.ID, err)
			}
			if hasDrift {
				drifted = append(drifted, account.ID)
			}
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			failures []error
		)
		for _, accountID := range drifted {
			wg.Add(1)
			go func(accountID uuid.UUID) {
				defer wg.Done()
				if err := queue.Enqueue(ctx, accountID); err != nil {
					mu.Lock()
					failures = append(failures, fmt.Errorf("repair account %s: %w", accountID, err))
					mu.Unlock()
				}
			}(accountID)
		}
		wg.Wait()

		data.AddData("accountsScanned", len(accounts))
		data.AddData("accountsDrifted", len(drifted))
		data.AddData("accountsRepaired", len(drifted)-len(failures))
		return errors.Join(failures...)
	})
	return operation(ctx)
}
