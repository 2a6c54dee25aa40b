package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"foodgram/internal/app/shoppinglist"
	"foodgram/internal/config"
	"foodgram/internal/logging"
	"foodgram/internal/store"
)

// shoppinglist prints a user's consolidated shopping list: every
// ingredient of every recipe in their cart, grouped and summed. The web
// layer serves the same text as the download endpoint.
func main() {
	userID := flag.Int64("user", 0, "user whose shopping cart to aggregate")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: shoppinglist -user <id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	ctx := logging.WithCorrelationID(context.Background())

	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	svc := shoppinglist.New(store.New(db))

	report, err := svc.Report(ctx, *userID)
	if err != nil {
		ctxLogger := logging.FromContext(ctx, logger)
		ctxLogger.Fatal().Err(err).Int64("user_id", *userID).Msg("build shopping list")
	}

	fmt.Print(report)
}
