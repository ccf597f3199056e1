package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
	classifyStore "github.com/MrJamesThe3rd/spendtrack/internal/classify/store"
	"github.com/MrJamesThe3rd/spendtrack/internal/config"
	"github.com/MrJamesThe3rd/spendtrack/internal/database"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	spendtrackHttp "github.com/MrJamesThe3rd/spendtrack/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/spendtrack/internal/http/budget"
	cardHandler "github.com/MrJamesThe3rd/spendtrack/internal/http/card"
	dashboardHandler "github.com/MrJamesThe3rd/spendtrack/internal/http/dashboard"
	referenceHandler "github.com/MrJamesThe3rd/spendtrack/internal/http/reference"
	txHandler "github.com/MrJamesThe3rd/spendtrack/internal/http/transaction"
	ledgerStore "github.com/MrJamesThe3rd/spendtrack/internal/ledger/store"
	"github.com/MrJamesThe3rd/spendtrack/internal/notify"
	notifyAmqp "github.com/MrJamesThe3rd/spendtrack/internal/notify/amqp"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The reference table comes from a file when one is configured, from the
	// database otherwise. Only the database table accepts writes.
	refStore := classifyStore.New(db)

	var (
		tableSource classify.Repository     = refStore
		refWriter   referenceHandler.Writer = refStore
	)

	if cfg.Classify.TablePath != "" {
		tableSource = classify.FileSource{Path: cfg.Classify.TablePath}
		refWriter = nil
	}

	classifier := classify.NewService(tableSource)
	if err := classifier.Reload(ctx); err != nil {
		slog.Error("failed to load reference table", "error", err)
		os.Exit(1)
	}

	notifier := notify.Multi{notify.NewLog(slog.Default())}

	if cfg.AMQP.URL != "" {
		client, err := notifyAmqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			slog.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		notifier = append(notifier, client)
	}

	var gen *engine.Generator

	if pool, err := engine.LoadDescriptions(cfg.Generator.PoolPath); err != nil {
		slog.Warn("transaction generator disabled", "error", err)
	} else if gen, err = engine.NewGenerator(pool, nil); err != nil {
		slog.Warn("transaction generator disabled", "error", err)
	}

	engineService := engine.NewService(ledgerStore.New(db), classifier, notifier, gen, nil)

	var (
		transactionH = txHandler.NewHandler(engineService)
		cardH        = cardHandler.NewHandler(engineService)
		budgetH      = budgetHandler.NewHandler(engineService)
		dashboardH   = dashboardHandler.NewHandler(engineService)
		referenceH   = referenceHandler.NewHandler(classifier, refWriter)
	)

	router := spendtrackHttp.New(transactionH, cardH, budgetH, dashboardH, referenceH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
