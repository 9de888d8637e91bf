// Command samplecheck validates a Discrete Sample Summary sheet against
// the canonical schema and prints the QC report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/reedan88/ooicgsn-data-tools/adapters/tabular"
	"github.com/reedan88/ooicgsn-data-tools/app"
	"github.com/reedan88/ooicgsn-data-tools/internal"
	"github.com/reedan88/ooicgsn-data-tools/internal/config"
	"github.com/reedan88/ooicgsn-data-tools/internal/profiling"
	"github.com/reedan88/ooicgsn-data-tools/internal/report"
)

func main() {
	// A local .env is optional; the environment wins either way.
	_ = godotenv.Load()

	var (
		file    = flag.String("file", "", "summary sheet to validate (.csv or .xlsx)")
		cruises = flag.String("cruises", "", "accepted cruise list file (overrides CRUISE_FILE)")
		format  = flag.String("format", "text", "output format: text, markdown, html, json")
	)
	flag.Parse()

	logger := internal.NewDefaultLogger()
	if err := run(*file, *cruises, *format, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(2)
	}
}

func run(file, cruiseFile, format string, logger *internal.Logger) error {
	if file == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cruiseFile == "" {
		cruiseFile = cfg.Data.CruiseFile
	}
	if cruiseFile == "" {
		return fmt.Errorf("no cruise list: pass -cruises or set CRUISE_FILE")
	}
	accepted, err := config.LoadCruiseList(cruiseFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded %d accepted cruise identifiers", len(accepted))

	service, err := app.NewValidationService(accepted, cfg.Data.Workers, logger)
	if err != nil {
		return err
	}

	table, err := tabular.NewReader(file).Read()
	if err != nil {
		return err
	}

	findings, err := service.Run(context.Background(), table)
	if err != nil {
		return err
	}

	var profiles []profiling.ColumnSummary
	if cfg.Data.Profile {
		profiles = profiling.Summarize(table)
	}
	doc := report.New(filepath.Base(file), findings, profiles)

	switch format {
	case "text":
		fmt.Print(doc.Text())
	case "markdown":
		fmt.Print(doc.Markdown())
	case "html":
		os.Stdout.Write(doc.HTML())
	case "json":
		body, err := doc.JSON()
		if err != nil {
			return err
		}
		os.Stdout.Write(body)
		fmt.Println()
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if !doc.Passed() {
		os.Exit(1)
	}
	return nil
}
