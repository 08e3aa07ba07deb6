package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"deckview/internal/assets"
	"deckview/internal/catalog"
	"deckview/internal/config"
	"deckview/internal/names"
)

// app wires the core components the way the presentation layer is
// meant to use them: one catalog, one tracker, one preloader per
// process, consumed only through their public operations.
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	tracker  *assets.Tracker
	preload  *assets.Preloader
	assetDir string
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %v", err)
	}

	assetDir := cfg.AssetDir
	if assetDirFlag != "" {
		assetDir = assetDirFlag
	}

	logger := slog.Default()

	resolver := names.NewResolver(cfg.NamesFile, logger)
	resolver.Load()
	cat := catalog.New(catalog.WithNamer(resolver))

	var storeOpts []assets.DirStoreOption
	if d := cfg.ReadDelay(); d > 0 {
		storeOpts = append(storeOpts, assets.WithReadDelay(d))
	}
	store := assets.NewDirStore(assetDir, storeOpts...)
	tracker := assets.NewTracker(store, cat, logger)

	var preOpts []assets.PreloaderOption
	if cfg.PreloadBatchSize > 0 {
		preOpts = append(preOpts, assets.WithBatchSize(cfg.PreloadBatchSize))
	}
	if p := cfg.PreloadPause(); p >= 0 {
		preOpts = append(preOpts, assets.WithBatchPause(p))
	}
	preloader := assets.NewPreloader(tracker, cat, logger, preOpts...)

	return &app{
		cfg:      cfg,
		catalog:  cat,
		tracker:  tracker,
		preload:  preloader,
		assetDir: assetDir,
	}, nil
}

// assetFilePath maps a store key ("images/ha.png") to a path on disk.
func assetFilePath(assetDir, storePath string) string {
	return filepath.Join(assetDir, filepath.FromSlash(storePath))
}
