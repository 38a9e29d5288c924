package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/omerbh/quotex/constants"
	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/extract"
	"github.com/omerbh/quotex/internal/normalize"
	"github.com/omerbh/quotex/internal/vision"
)

type fileResult struct {
	Filename string                  `json:"filename"`
	Result   entity.ExtractionResult `json:"result"`
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "quotex-batch <directory>")
		os.Exit(2)
	}
	dir := os.Args[1]

	docs, err := loadDocuments(dir)
	if err != nil {
		logger.Error("load documents", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		logger.Error("no supported documents found", "dir", dir)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		logger.Error("configure pipeline", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	results := orch.ExtractAll(ctx, docs, cfg.Extraction.BatchWorkers)

	enc := json.NewEncoder(os.Stdout)
	succeeded := 0
	for i, res := range results {
		if res.Success {
			succeeded++
		}
		if err := enc.Encode(fileResult{Filename: docs[i].Filename, Result: res}); err != nil {
			logger.Error("encode result", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch done",
		"documents", len(docs),
		"succeeded", succeeded,
		"failed", len(docs)-succeeded,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if succeeded < len(docs) {
		os.Exit(1)
	}
}

func loadDocuments(dir string) ([]entity.RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var docs []entity.RawDocument
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if constants.MapExtToType(ext) == constants.Unsupported {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, entity.RawDocument{
			Filename: e.Name(),
			MIMEType: mime.TypeByExtension(ext),
			Data:     data,
		})
	}
	return docs, nil
}

func buildOrchestrator(cfg *common.Config, logger *slog.Logger) (*extract.Orchestrator, error) {
	rates := normalize.NewRates(cfg.Rates.USDToILS, cfg.Rates.EURToILS, cfg.Rates.EURToUSD)
	if cfg.Rates.File != "" {
		r, err := normalize.LoadRatesFile(cfg.Rates.File)
		if err != nil {
			return nil, err
		}
		rates = r
	}

	var overrides map[string][]string
	if cfg.Extraction.CategoriesFile != "" {
		o, err := normalize.LoadCategoryOverridesFile(cfg.Extraction.CategoriesFile)
		if err != nil {
			return nil, err
		}
		overrides = o
	}

	normalizer := normalize.NewNormalizer(rates, normalize.NewCategoryMap(overrides))

	tabular := extract.NewTabularParser(logger)
	spreadsheet := extract.NewSpreadsheetStrategy(tabular, logger)
	pdf := extract.NewPDFStrategy(extract.NewTextParser(tabular, logger), logger)

	visionClient := vision.NewClient(vision.Config{
		APIKey:        cfg.Vision.APIKey,
		BaseURL:       cfg.Vision.BaseURL,
		Model:         cfg.Vision.Model,
		Temperature:   cfg.Vision.Temperature,
		Timeout:       cfg.Vision.Timeout,
		MaxDocumentMB: cfg.Vision.MaxDocumentMB,
	}, logger)
	image := vision.NewAdapter(visionClient, logger)

	return extract.NewOrchestrator(normalizer, spreadsheet, pdf, image, logger), nil
}
