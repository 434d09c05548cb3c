package main

import (
	"context"
	"fmt"
	"os"

	"github.com/relationhq/relmig/internal/application/handlers"
	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/domain/services"
	"github.com/relationhq/relmig/internal/infrastructure/config"
	"github.com/relationhq/relmig/internal/infrastructure/store/sqlite"
)

// internalDeps holds the wired dependencies commands build handlers from.
type internalDeps struct {
	cfg        *config.Config
	store      *sqlite.Repository
	normalizer *services.Normalizer
	resolver   *services.Resolver
}

// withInternalDeps loads config, opens the store and builds the shared
// services, then calls the provided function. Cleanup is automatic.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	normalizer := services.NewNormalizer(cfg.MergedAliases(entities.DefaultAliases))

	return fn(&internalDeps{
		cfg:        cfg,
		store:      store,
		normalizer: normalizer,
		resolver:   services.NewResolver(normalizer),
	})
}

// withOfferImportHandler creates an OfferImportHandler and calls fn with it.
func withOfferImportHandler(prefix string, fn func(*handlers.OfferImportHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		if prefix == "" {
			prefix = d.cfg.Company.NumberPrefix
		}
		assigner := services.NewSequenceAssigner(prefix)
		responsibles := d.cfg.MergedResponsibles(entities.DefaultResponsibles)
		service := services.NewOfferImportService(d.store, d.resolver, assigner, responsibles, d.cfg.Company.ID)
		return fn(handlers.NewOfferImportHandler(service))
	})
}

// withCustomerImportHandler creates a CustomerImportHandler and calls fn.
func withCustomerImportHandler(fn func(*handlers.CustomerImportHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		service := services.NewCustomerImportService(d.store)
		return fn(handlers.NewCustomerImportHandler(service))
	})
}

// withAnalyzeHandler creates an AnalyzeHandler and calls fn with it.
func withAnalyzeHandler(fn func(*handlers.AnalyzeHandler) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		service := services.NewMatchAnalysisService(d.store, d.normalizer)
		return fn(handlers.NewAnalyzeHandler(service))
	})
}
