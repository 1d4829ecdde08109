package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/citelab/cvet/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	importFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the citation sources CSV file",
		Required: true,
	}

	importCmd = &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import citation sources from a CSV file",
		UsageText: `cvet import --file mixed_citation_sources.csv
   cvet import -f public_citation_sources.csv`,
		Action: cmdImport,
		Flags: []cli.Flag{
			importFileFlag,
		},
	}
)

// ImportResult summarizes a citation import.
type ImportResult struct {
	File     string `json:"file" yaml:"file"`
	Imported int    `json:"imported" yaml:"imported"`
	Total    int    `json:"total" yaml:"total"`
	Duration string `json:"duration" yaml:"duration"`
}

func cmdImport(c *cli.Context) error {
	start := time.Now()
	file := c.String(importFileFlag.Name)
	cfg := getConfig(c)

	citations, err := data.ReadCitationsCSV(file)
	if err != nil {
		return fmt.Errorf("reading citations: %w", err)
	}

	slog.Info("citations loaded", "file", file, "records", len(citations))

	if err := data.SaveCitations(cfg.DB, citations); err != nil {
		return fmt.Errorf("saving citations: %w", err)
	}

	total, err := data.CountCitations(cfg.DB)
	if err != nil {
		return fmt.Errorf("counting citations: %w", err)
	}

	return encode(&ImportResult{
		File:     file,
		Imported: len(citations),
		Total:    total,
		Duration: time.Since(start).String(),
	})
}
