// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cinelog/cmd"
	"cinelog/internal/data/repository"
	"cinelog/internal/localstore"
	"cinelog/internal/wire"
	"cinelog/pkg/database"
	"cinelog/pkg/mailer"
	"cinelog/pkg/utils"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	if n, err := repos.Session.CleanExpiredSessions(ctx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	} else if n > 0 {
		logger.Info("Expired sessions removed", zap.Int64("count", n))
	}

	guestStore, closeGuestStore, err := openGuestStore(ctx, config.Guest, logger)
	if err != nil {
		logger.Fatal("Failed to open guest store", zap.Error(err))
	}
	defer closeGuestStore()

	mail, err := mailer.New(config.Email, logger)
	if err != nil {
		logger.Fatal("Failed to configure mailer", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, guestStore, mail, config, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.HTTP.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// openGuestStore opens the badger-backed guest store, or an in-memory one
// when GUEST_STORE_PATH is empty. Value-log GC runs until ctx is done or the
// returned close func is called; close waits for it before closing badger.
func openGuestStore(ctx context.Context, config utils.GuestConfig, logger *zap.Logger) (localstore.Backend, func(), error) {
	if config.StorePath == "" {
		logger.Warn("GUEST_STORE_PATH is empty, guest data will not survive restarts")
		return localstore.NewMemoryStorage(), func() {}, nil
	}

	bdb, err := badger.Open(badger.DefaultOptions(config.StorePath).WithLogger(nil))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Guest store opened", zap.String("path", config.StorePath))

	gcCtx, stopGC := context.WithCancel(ctx)
	gcDone := localstore.RunValueLogGC(gcCtx, bdb, 10*time.Minute)

	closeFn := func() {
		stopGC()
		<-gcDone
		if err := bdb.Close(); err != nil {
			logger.Warn("Failed to close guest store", zap.Error(err))
		}
	}
	return localstore.NewBadgerStorage(bdb), closeFn, nil
}
