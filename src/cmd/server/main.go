package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/cache"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/controller"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/router"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/implementations"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/memory"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/config"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/jobs"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/services"
	"github.com/redis/go-redis/v9"
)

type repositories struct {
	registers    repo_interfaces.RegisterRepository
	bankAccounts repo_interfaces.BankAccountRepository
	sessions     repo_interfaces.RegisterSessionRepository
	ledger       repo_interfaces.LedgerRepository
	contracts    repo_interfaces.ContractRepository
	installments repo_interfaces.InstallmentRepository
	payments     repo_interfaces.PaymentRepository
	quotes       repo_interfaces.QuoteRepository
	parameters   repo_interfaces.ParameterRepository
	audit        repo_interfaces.AuditRepository
	expenses     repo_interfaces.ExpenseRepository
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, db, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	idempotencyStore, closeRedis := openIdempotencyStore(ctx, cfg)
	defer closeRedis()

	publisher := openPublisher(cfg)
	defer publisher.Close()

	tokens := capability.NewSessionTokens(cfg.SessionSigningKey, time.Duration(cfg.SessionTTLHours)*time.Hour)

	auditService := services.NewAuditService(repos.audit, publisher)
	parameterService := services.NewParameterService(repos.parameters, cfg.DailyLateRate)
	quoteService := services.NewQuoteService(repos.quotes)
	accountService := services.NewAccountService(repos.registers, repos.bankAccounts, repos.ledger)
	registerService := services.NewRegisterService(repos.registers, repos.sessions, repos.ledger, tokens, auditService)
	depositService := services.NewDepositService(repos.bankAccounts, repos.ledger, auditService)
	transferService := services.NewTransferService(repos.bankAccounts, repos.ledger, quoteService, auditService)
	scheduleService := services.NewScheduleService(repos.contracts, repos.installments, auditService)
	settlementService := services.NewSettlementService(
		repos.contracts,
		repos.installments,
		repos.ledger,
		parameterService,
		auditService,
		cfg.LateFeeGraceDays,
		cfg.PaymentTolerance,
	)
	documentService := services.NewDocumentService(repos.contracts, repos.installments, repos.payments, parameterService)
	expenseService := services.NewExpenseService(repos.expenses, repos.ledger, auditService)

	handler := router.New(router.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		Auth:           middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash),
		Session:        middleware.RegisterSession(tokens),
		Idempotency:    middleware.Idempotency(idempotencyStore, time.Duration(cfg.IdempotencyTTLMinutes)*time.Minute),
	},
		controller.NewRegisterController(accountService, registerService),
		controller.NewBankAccountController(accountService, depositService, transferService),
		controller.NewContractController(scheduleService, settlementService),
		controller.NewQuoteController(quoteService),
		controller.NewAdminController(parameterService, auditService),
		controller.NewDocumentController(documentService),
		controller.NewExpenseController(expenseService),
	)

	scheduler := jobs.NewScheduler(scheduleService, cfg.OverdueJobSchedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", logger.Fields{"port": cfg.ServerPort, "storage": cfg.StorageDriver})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped unexpectedly", err, nil)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("scheduler did not stop before shutdown deadline", nil)
	}
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, *sql.DB, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		logger.Warn("using in-memory storage, data is lost on restart", nil)
		return repositories{
			registers:    store.Registers(),
			bankAccounts: store.BankAccounts(),
			sessions:     store.Sessions(),
			ledger:       store.Ledger(),
			contracts:    store.Contracts(),
			installments: store.Installments(),
			payments:     store.Payments(),
			quotes:       store.Quotes(),
			parameters:   store.Parameters(),
			audit:        store.Audit(),
			expenses:     store.Expenses(),
		}, nil, nil
	}

	db, err := implementations.Open(ctx, cfg.DatabaseDSN, implementations.DefaultPoolConfig())
	if err != nil {
		return repositories{}, nil, err
	}

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := implementations.RunMigrations(migrateCtx, db, cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return repositories{}, nil, err
	}
	logger.Info("initial migrations completed successfully", nil)

	return repositories{
		registers:    implementations.NewRegisterRepository(db),
		bankAccounts: implementations.NewBankAccountRepository(db),
		sessions:     implementations.NewRegisterSessionRepository(db),
		ledger:       implementations.NewLedgerRepository(db),
		contracts:    implementations.NewContractRepository(db),
		installments: implementations.NewInstallmentRepository(db),
		payments:     implementations.NewPaymentRepository(db),
		quotes:       implementations.NewQuoteRepository(db),
		parameters:   implementations.NewParameterRepository(db),
		audit:        implementations.NewAuditRepository(db),
		expenses:     implementations.NewExpenseRepository(db),
	}, db, nil
}

func openIdempotencyStore(ctx context.Context, cfg config.Config) (middleware.IdempotencyStore, func()) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		logger.Warn("REDIS_URL not set, idempotency keys kept in process memory", nil)
		return cache.NewMemoryIdempotencyStore(), func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid REDIS_URL, idempotency keys kept in process memory", err, nil)
		return cache.NewMemoryIdempotencyStore(), func() {}
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("redis unreachable, idempotency keys kept in process memory", err, nil)
		_ = client.Close()
		return cache.NewMemoryIdempotencyStore(), func() {}
	}

	logger.Info("redis idempotency store connected", logger.Fields{"prefix": cfg.IdempotencyPrefix})
	return cache.NewRedisIdempotencyStore(client, cfg.IdempotencyPrefix), func() { _ = client.Close() }
}

func openPublisher(cfg config.Config) events.Publisher {
	if strings.TrimSpace(cfg.RabbitMQURL) == "" {
		logger.Warn("RABBITMQ_URL not set, ledger events are not published", nil)
		return &events.EventProducerFallback{}
	}

	producer, err := events.NewEventProducer(cfg.RabbitMQURL, cfg.LedgerEventExchange)
	if err != nil {
		logger.Error("rabbitmq unreachable, ledger events are not published", err, nil)
		return &events.EventProducerFallback{}
	}

	logger.Info("ledger event producer connected", logger.Fields{"exchange": cfg.LedgerEventExchange})
	return producer
}
