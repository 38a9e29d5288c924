package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/omerbh/quotex/internal/common"
	"github.com/omerbh/quotex/internal/entity"
	"github.com/omerbh/quotex/internal/extract"
	"github.com/omerbh/quotex/internal/normalize"
	"github.com/omerbh/quotex/internal/vision"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "quotex <document-path>")
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read document", "path", path, "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	orch, err := buildOrchestrator(cfg, logger)
	if err != nil {
		logger.Error("configure pipeline", "error", err)
		os.Exit(1)
	}

	doc := entity.RawDocument{
		Filename: filepath.Base(path),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := orch.Extract(ctx, doc)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(append(out, '\n'))

	if !res.Success {
		os.Exit(1)
	}
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
