package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relationhq/relmig/internal/application/handlers"
	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/domain/services"
	"github.com/relationhq/relmig/internal/infrastructure/config"
	"github.com/relationhq/relmig/internal/infrastructure/store/sqlite"
)

const customersExport = `Kundenavn,Org.nr.,Epost,Mobil,Telefon,Adresse,Poststed,Postnr.,Land,Hovedkontakt,Inaktiv,Kundeklasse,Kredittgrense,Internkunde,Kommune,Fylke
Veidekke Entreprenør AS,910000001,post@veidekke.no,90000000,,Skabos vei 4,Oslo,661,,Kari Nordmann,,A,500000,,Oslo,Oslo
Peab Bygg AS,910000002,,,,,,,,,,,,,,
Kopperud Murtnes Bygg AS,910000003,,,,,,,,,,,,,,
`

const offersExport = `Prosjekt,Kunde / Byggherre,Status,Ansvarlig,Beliggenhet,Beskrivelse / siste nytt,Tilbudspris,DB,Sendt,Vedståelses frist,Sist oppdatert
22000 Hjalmar Bjørges vei 105,Veidekke AS,Tilbud,HSK,Oslo,Nytt tak,1200000,200000,2024-03-01,2024-04-01,2024-03-05
Ridehall Mysen,Peab,Ordre,KL,Mysen,,800000,100000,2024-01-15,,
Lagerhall Askim,,Tilbud,HSK,Askim,,300000,,2024-02-01,,
Gammel jobb,Veidekke AS,UTGÅR,HSK,,,100000,,2020-01-01,,
Nytt prosjekt,Totalt Ukjent Firma,Tilbud,AB,,,50000,,2024-05-01,,
`

// TestMigrationPipeline runs the full flow against a file-backed database:
// customer import, offer import with numbering and resolution, then the
// match analysis over the same export.
func TestMigrationPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "relmig.db")

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	customersPath := filepath.Join(tmpDir, "customers.csv")
	require.NoError(t, os.WriteFile(customersPath, []byte(customersExport), 0o644))
	offersPath := filepath.Join(tmpDir, "offers.csv")
	require.NoError(t, os.WriteFile(offersPath, []byte(offersExport), 0o644))

	// Step 1: customers.
	customerHandler := handlers.NewCustomerImportHandler(services.NewCustomerImportService(repo))
	customerResult, err := customerHandler.Handle(ctx, customersPath, handlers.CustomerImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, customerResult.Imported)

	count, err := repo.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Step 2: offers, resolved against the customers just imported.
	normalizer := services.NewNormalizer(entities.DefaultAliases)
	offerService := services.NewOfferImportService(
		repo,
		services.NewResolver(normalizer),
		services.NewSequenceAssigner("TK"),
		entities.DefaultResponsibles,
		"tak",
	)
	offerHandler := handlers.NewOfferImportHandler(offerService)

	skippedPath := filepath.Join(tmpDir, "skipped_offers.csv")
	offerResult, err := offerHandler.Handle(ctx, offersPath, handlers.OfferImportOptions{SkippedPath: skippedPath})
	require.NoError(t, err)

	// Veidekke, Peab and the blank row (via the Ukjent kunde placeholder
	// alias) resolve; the expired row is dropped; the unknown company goes
	// to the side file.
	assert.Equal(t, 3, offerResult.Imported)
	assert.Equal(t, 1, offerResult.SkippedExpired)
	require.Len(t, offerResult.Unresolved, 1)
	assert.Equal(t, "Totalt Ukjent Firma", offerResult.Unresolved[0].CustomerName)

	data, err := os.ReadFile(skippedPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Totalt Ukjent Firma")

	stored, err := repo.CountOffersByCompany(ctx, "tak")
	require.NoError(t, err)
	assert.Equal(t, 3, stored)

	// Numbering is chronological within the year regardless of row order.
	assert.Equal(t, map[int]int{2024: 4}, offerResult.YearCounts)

	// Step 3: the analysis report over the same export, fresh store read.
	analyzeHandler := handlers.NewAnalyzeHandler(services.NewMatchAnalysisService(repo, normalizer))
	reportPath := filepath.Join(tmpDir, "report.md")
	analysis, err := analyzeHandler.Handle(ctx, offersPath, handlers.AnalyzeOptions{Output: reportPath})
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.StoreCount)
	require.Len(t, analysis.Confident, 2, "veidekke and peab resolve via aliases")

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Totalt Ukjent Firma")
}

// TestMigrationPipeline_Rerun covers the clear-and-reimport flow used when an
// export is corrected and imported again.
func TestMigrationPipeline_Rerun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: filepath.Join(tmpDir, "relmig.db")})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	customersPath := filepath.Join(tmpDir, "customers.csv")
	require.NoError(t, os.WriteFile(customersPath, []byte(customersExport), 0o644))
	offersPath := filepath.Join(tmpDir, "offers.csv")
	require.NoError(t, os.WriteFile(offersPath, []byte(offersExport), 0o644))

	customerHandler := handlers.NewCustomerImportHandler(services.NewCustomerImportService(repo))
	_, err = customerHandler.Handle(ctx, customersPath, handlers.CustomerImportOptions{})
	require.NoError(t, err)

	newOfferHandler := func() *handlers.OfferImportHandler {
		return handlers.NewOfferImportHandler(services.NewOfferImportService(
			repo,
			services.NewResolver(services.NewNormalizer(entities.DefaultAliases)),
			services.NewSequenceAssigner("TK"),
			entities.DefaultResponsibles,
			"tak",
		))
	}

	first, err := newOfferHandler().Handle(ctx, offersPath, handlers.OfferImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Imported)

	second, err := newOfferHandler().Handle(ctx, offersPath, handlers.OfferImportOptions{Clear: true})
	require.NoError(t, err)
	assert.Equal(t, 3, second.Cleared)
	assert.Equal(t, 3, second.Imported)

	count, err := repo.CountOffersByCompany(ctx, "tak")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "rerun does not double up offers")
}
