package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/relationhq/relmig/internal/domain/services"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// AnalyzeHandler runs the customer match analysis and renders its markdown
// report.
type AnalyzeHandler struct {
	service *services.MatchAnalysisService
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(service *services.MatchAnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

// AnalyzeOptions controls the analysis run.
type AnalyzeOptions struct {
	Format string // "csv", "json", or "auto"
	Output string // Report file path ("" writes to stdout)
}

// Handle analyzes customer names in an offer export against the store and
// writes the markdown report.
func (h *AnalyzeHandler) Handle(ctx context.Context, filePath string, opts AnalyzeOptions) (*services.AnalysisResult, error) {
	var parser parsers.OfferParser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.OffersForFile(filePath)
	} else {
		parser = parsers.OffersForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parser.ParseOffers(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	result, err := h.service.Analyze(ctx, rows)
	if err != nil {
		return nil, err
	}

	out := io.Writer(os.Stdout)
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeReport(out, result); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	return result, nil
}

// writeReport renders the analysis as a markdown document with one section
// per match band.
func writeReport(w io.Writer, result *services.AnalysisResult) error {
	p := &reportPrinter{w: w}

	p.printf("# Customer Mapping Analysis\n\n")
	p.printf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	p.printf("- Incoming customers: %d\n", result.IncomingCount)
	p.printf("- Database customers: %d\n\n", result.StoreCount)
	p.printf("---\n\n")

	p.printf("## 1. Exact Matches (Confident)\n\n")
	p.printf("These customers match exactly or nearly exactly. No action needed.\n\n")
	p.printf("| Incoming Name | Database Name | Offers | Score |\n")
	p.printf("|---------------|---------------|--------|-------|\n")
	for _, m := range result.Confident {
		p.printf("| %s | %s | %d | %.0f%% |\n", m.IncomingName, m.Match.DisplayName, m.OfferCount, m.Score*100)
	}
	p.printf("\n**Total: %d customers**\n\n---\n\n", len(result.Confident))

	p.printf("## 2. Probable Matches (Please Verify)\n\n")
	p.printf("These customers have a good match but may need verification.\n\n")
	p.printf("| Incoming Name | Database Name | Offers | Score |\n")
	p.printf("|---------------|---------------|--------|-------|\n")
	for _, m := range result.Probable {
		p.printf("| %s | %s | %d | %.0f%% |\n", m.IncomingName, m.Match.DisplayName, m.OfferCount, m.Score*100)
	}
	p.printf("\n**Total: %d customers**\n\n---\n\n", len(result.Probable))

	p.printf("## 3. Needs Attention (No Good Match)\n\n")
	p.printf("Add alias entries or create the customers before importing.\n\n")
	p.printf("| Incoming Name | Closest Name | Offers | Score |\n")
	p.printf("|---------------|--------------|--------|-------|\n")
	for _, m := range result.NeedsReview {
		closest := m.Match.DisplayName
		if closest == "" {
			closest = "NO MATCH FOUND"
		}
		p.printf("| %s | %s | %d | %.0f%% |\n", m.IncomingName, closest, m.OfferCount, m.Score*100)
	}
	p.printf("\n**Total: %d customers**\n", len(result.NeedsReview))

	return p.err
}

// reportPrinter accumulates the first write error instead of checking every
// printf call site.
type reportPrinter struct {
	w   io.Writer
	err error
}

func (p *reportPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
