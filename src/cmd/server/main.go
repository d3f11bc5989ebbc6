package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/savings-account-processor/src/internal/adapter/repository/postgres"
	"github.com/api-sage/savings-account-processor/src/internal/config"
	"github.com/api-sage/savings-account-processor/src/internal/logger"
	"github.com/api-sage/savings-account-processor/src/internal/usecase/services"
	"github.com/robfig/cron/v3"
)

// application bundles the wired service graph. The deposit/withdrawal entry
// points are driven by the platform's request layer; this binary hosts the
// schema migrations and the recurring charge schedule scan.
type application struct {
	Transactions   *services.SavingsAccountTransactionService
	ChargeSchedule *services.ChargeScheduleService
	AppUsers       *services.AppUserService
}

func buildApplication(db *sql.DB, cfg config.Config) *application {
	accountRepo := postgres.NewSavingsAccountRepository(db)
	transactionRepo := postgres.NewSavingsAccountTransactionRepository(db)
	loanRepo := postgres.NewLoanRepository(db)
	guarantorRepo := postgres.NewGuarantorRepository(db, accountRepo)
	fundingRepo := postgres.NewGuarantorFundingRepository(db)
	onHoldRepo := postgres.NewOnHoldTransactionRepository(db)

	guarantorRelease := services.NewGuarantorReleaseService(guarantorRepo, fundingRepo, onHoldRepo)

	return &application{
		Transactions: services.NewSavingsAccountTransactionService(
			accountRepo,
			transactionRepo,
			loanRepo,
			postgres.NewTxRunner(db),
			cfg,
			postgres.NewJournalBridgeWriter(db),
			guarantorRelease,
		),
		ChargeSchedule: services.NewChargeScheduleService(postgres.NewChargeRepository(db)),
		AppUsers:       services.NewAppUserService(postgres.NewAppUserRepository(db)),
	}
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Println("initial migrations completed successfully")

	db, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open postgres connection: %v", err)
	}
	defer db.Close()

	app := buildApplication(db, cfg)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ChargeScanSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := app.ChargeSchedule.ScanDueCharges(ctx, time.Now().UTC()); err != nil {
			logger.Error("charge scan job failed", err, nil)
		}
	}); err != nil {
		log.Fatalf("schedule charge scan: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("savings account processor started", logger.Fields{
		"chargeScanSchedule": cfg.ChargeScanSchedule,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")
}
