// Command templates maintains the recurring-template store: list templates,
// record a new amount observation, or classify a candidate amount against a
// template's observed range.
package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/recurring"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage(logger)
	}

	cfg := common.LoadConfig()
	store, err := recurring.Open(cfg.Templates.Path)
	if err != nil {
		logger.Error("open template store", "path", cfg.Templates.Path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	switch os.Args[1] {
	case "list":
		templates, err := store.List()
		if err != nil {
			logger.Error("list templates", "error", err)
			os.Exit(1)
		}
		printJSON(templates, logger)

	case "create":
		if len(os.Args) != 4 {
			usage(logger)
		}
		amount, err := decimal.NewFromString(os.Args[3])
		if err != nil {
			logger.Error("invalid amount", "arg", os.Args[3], "error", err)
			os.Exit(2)
		}
		t, err := store.Create(os.Args[2], "", amount)
		if err != nil {
			logger.Error("create template", "error", err)
			os.Exit(1)
		}
		printJSON(t, logger)

	case "observe":
		id, amount := parseIDAmount(logger)
		t, err := store.ObserveAmount(id, amount)
		if err != nil {
			logger.Error("observe amount", "template_id", id, "error", err)
			os.Exit(1)
		}
		printJSON(t, logger)

	case "classify":
		id, amount := parseIDAmount(logger)
		t, err := store.Get(id)
		if err != nil {
			logger.Error("load template", "template_id", id, "error", err)
			os.Exit(1)
		}
		category := recurring.NewClassifier(store, logger).Classify(t, amount)
		printJSON(map[string]string{"category": string(category)}, logger)

	default:
		usage(logger)
	}
}

func parseIDAmount(logger *slog.Logger) (uuid.UUID, decimal.Decimal) {
	if len(os.Args) != 4 {
		usage(logger)
	}
	id, err := uuid.Parse(os.Args[2])
	if err != nil {
		logger.Error("invalid template id (must be UUID)", "arg", os.Args[2], "error", err)
		os.Exit(2)
	}
	amount, err := decimal.NewFromString(os.Args[3])
	if err != nil {
		logger.Error("invalid amount", "arg", os.Args[3], "error", err)
		os.Exit(2)
	}
	return id, amount
}

func printJSON(v any, logger *slog.Logger) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func usage(logger *slog.Logger) {
	logger.Error("usage", "cmd", "templates list | create <vendor> <amount> | observe <id> <amount> | classify <id> <amount>")
	os.Exit(2)
}
