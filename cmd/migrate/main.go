package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventhub/config"
	"eventhub/internal/repository/postgres"
)

// Applies the embedded schema and exits. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("").Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if err := migrate(cfg.DBUrl); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}
	logger.Info("schema up to date")
}

func migrate(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return postgres.Migrate(ctx, db)
}
