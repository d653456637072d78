package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Ragbaje/FrameMe/internal/export"
	"github.com/Ragbaje/FrameMe/internal/observability"
	"github.com/Ragbaje/FrameMe/internal/rendering"
	"github.com/Ragbaje/FrameMe/internal/types"
)

var (
	renderInput    string
	renderOut      string
	renderTemplate string
	renderPDF      bool
	renderChrome   string
	renderVerbose  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a saved CV record to HTML or PDF",
	Long: `Render a CV record from a JSON file without starting the server.
With --template both, every layout variant is rendered in parallel.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to the CV record JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "modern", "Layout variant: modern, creative or both")
	renderCmd.Flags().BoolVar(&renderPDF, "pdf", false, "Export PDF instead of HTML (requires Chrome)")
	renderCmd.Flags().StringVar(&renderChrome, "chrome-path", "", "Path to the Chrome binary (optional, defaults to CHROME_PATH env var)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print a summary of the record")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	record, err := loadRecord(renderInput)
	if err != nil {
		return err
	}

	if renderVerbose {
		observability.NewPrinter(os.Stdout).PrintRecordSummary(record)
	}

	variants, err := resolveVariants(renderTemplate)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter := export.NewExporter(renderChrome)

	g, ctx := errgroup.WithContext(context.Background())
	for _, variant := range variants {
		variant := variant
		g.Go(func() error {
			path, err := renderOne(ctx, exporter, record, variant)
			if err != nil {
				return fmt.Errorf("%s: %w", variant, err)
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		})
	}
	return g.Wait()
}

func renderOne(ctx context.Context, exporter *export.Exporter, record types.ResumeRecord, variant rendering.Variant) (string, error) {
	html, err := rendering.Render(record, variant)
	if err != nil {
		return "", err
	}

	name := export.Filename(record.PersonalDetails.FullName, variant)
	if !renderPDF {
		name = strings.TrimSuffix(name, ".pdf") + ".html"
		path := filepath.Join(renderOut, name)
		return path, os.WriteFile(path, []byte(html), 0o644)
	}

	pdf, err := exporter.ExportPDF(ctx, html)
	if err != nil {
		return "", err
	}
	path := filepath.Join(renderOut, name)
	return path, os.WriteFile(path, pdf, 0o644)
}

// loadRecord reads a CV record from a JSON file.
func loadRecord(path string) (types.ResumeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to read record file %s: %w", path, err)
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return types.ResumeRecord{}, fmt.Errorf("failed to parse record JSON: %w", err)
	}
	return record, nil
}

// resolveVariants expands the --template flag into concrete variants.
func resolveVariants(name string) ([]rendering.Variant, error) {
	if name == "both" {
		return rendering.Variants(), nil
	}
	variant, err := rendering.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return []rendering.Variant{variant}, nil
}
