// Command analyze runs document analysis over one or more recognized-text
// files and prints the results as JSON. Remote escalation is enabled when
// REMOTE_EXTRACT_URL is configured; otherwise analysis stays local. Set
// OUTPUT_XLSX to additionally write an XLSX workbook of the results.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/batch"
	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/export"
	"github.com/thepesz/dueasy-sub004/internal/extract"
	"github.com/thepesz/dueasy-sub004/internal/quota"
	"github.com/thepesz/dueasy-sub004/internal/remote"
	"github.com/thepesz/dueasy-sub004/internal/router"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "analyze <text-file> [more-files...]")
		os.Exit(2)
	}
	paths := os.Args[1:]
	userID := envOr("ANALYZE_USER_ID", "local-user")

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	engine := extract.NewEngine(logger)

	var remoteClient router.RemoteExtractor
	var quotaSvc quota.Service
	if cfg.Remote.Endpoint != "" {
		if cfg.Quota.DSN == "" {
			logger.Error("QUOTA_DB_DSN required when REMOTE_EXTRACT_URL is set")
			os.Exit(1)
		}
		db, err := sql.Open(cfg.Quota.Driver, cfg.Quota.DSN)
		if err != nil {
			logger.Error("open quota db", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		store, err := quota.NewStore(ctx, db, cfg.Quota.Driver, cfg.Quota.MonthlyLimit, logger)
		if err != nil {
			logger.Error("init quota store", "error", err)
			os.Exit(1)
		}
		quotaSvc = store
		remoteClient = remote.NewClient(cfg.Remote, logger)
	}

	rt := router.New(engine, remoteClient, quotaSvc, cfg.Router, logger)

	docType := constants.CanonicalDocumentType(os.Getenv("DOC_TYPE"))
	langHints := splitList(os.Getenv("LANGUAGE_HINTS"))
	currencyHints := splitList(os.Getenv("CURRENCY_HINTS"))

	var mu sync.Mutex
	outcomes := make([]batch.Outcome, 0, len(paths))
	queue := batch.NewQueue(rt, func(o batch.Outcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	}, logger, batch.WithWorkers(4), batch.WithQueueSize(len(paths)+1))

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read input", "path", path, "error", err)
			os.Exit(1)
		}
		_ = queue.Enqueue(ctx, batch.Job{
			DocumentID: uuid.New(),
			Name:       filepath.Base(path),
			Request: extract.Request{
				OCRText:       string(text),
				DocumentType:  docType,
				LanguageHints: langHints,
				CurrencyHints: currencyHints,
			},
			UserID:      userID,
			SubmittedAt: time.Now(),
		})
	}
	queue.Shutdown(ctx)

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Job.Name < outcomes[j].Job.Name })

	failed := false
	printed := make(map[string]json.RawMessage, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			logger.Error("analysis failed", "name", o.Job.Name, "error", o.Err)
			failed = true
			continue
		}
		raw, err := json.Marshal(o.Result)
		if err != nil {
			logger.Error("encode result", "name", o.Job.Name, "error", err)
			failed = true
			continue
		}
		printed[o.Job.Name] = raw
	}

	out, err := json.MarshalIndent(printed, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))

	if xlsxPath := os.Getenv("OUTPUT_XLSX"); xlsxPath != "" {
		if err := writeWorkbook(xlsxPath, outcomes, logger); err != nil {
			logger.Error("write workbook", "path", xlsxPath, "error", err)
			os.Exit(1)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func writeWorkbook(path string, outcomes []batch.Outcome, logger *slog.Logger) error {
	results := make([]*entity.DocumentAnalysisResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil && o.Result != nil {
			results = append(results, o.Result)
		}
	}
	buf, err := export.NewService(logger).ResultsXLSX(results)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
