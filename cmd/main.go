package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wejv/cmd/config"
	migration "wejv/cmd/database/migrate"
	"wejv/internal/utils"
	"wejv/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	log := logger.New(logger.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	defer func() { _ = log.Sync() }()

	db, err := config.ConnectDB(config.CredentialsFromConfig())
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	app, err := config.NewApp(db, log, config.AppOptionsFromConfig())
	if err != nil {
		log.Fatal("build app", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	port := utils.GetConfig("APP_PORT")
	log.Info("listening", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
