package cli

import (
	"fmt"

	"github.com/citelab/cvet/pkg/data"
	"github.com/urfave/cli/v2"
)

const queryResultLimitDefault = 500

var (
	queryLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: queryResultLimitDefault,
	}

	citationLikeQueryFlag = &cli.StringFlag{
		Name:     "like",
		Usage:    "Fuzzy search citations by domain, category, or URL",
		Required: true,
	}

	runIDFlag = &cli.Int64Flag{
		Name:  "run",
		Usage: "Simulation run ID (default: latest run)",
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "List data query operations",
		Subcommands: []*cli.Command{
			{
				Name:    "citations",
				Usage:   "List imported citations",
				Aliases: []string{"c"},
				Action:  cmdQueryCitations,
				Flags: []cli.Flag{
					citationLikeQueryFlag,
					queryLimitFlag,
				},
			},
			{
				Name:    "episodes",
				Usage:   "List the scored episodes of a simulation run",
				Aliases: []string{"e"},
				Action:  cmdQueryEpisodes,
				Flags: []cli.Flag{
					runIDFlag,
					queryLimitFlag,
				},
			},
			{
				Name:    "summary",
				Usage:   "Summarize a simulation run",
				Aliases: []string{"s"},
				Action:  cmdQuerySummary,
				Flags: []cli.Flag{
					runIDFlag,
				},
			},
			{
				Name:    "distribution",
				Usage:   "Score distribution of a simulation run in ten-point buckets",
				Aliases: []string{"d"},
				Action:  cmdQueryDistribution,
				Flags: []cli.Flag{
					runIDFlag,
				},
			},
		},
	}
)

func resolveRunID(c *cli.Context) (int64, error) {
	if c.IsSet(runIDFlag.Name) {
		return c.Int64(runIDFlag.Name), nil
	}
	run, err := data.GetLatestRun(getConfig(c).DB)
	if err != nil {
		return 0, fmt.Errorf("resolving run: %w", err)
	}
	return run.ID, nil
}

func cmdQueryCitations(c *cli.Context) error {
	cfg := getConfig(c)

	list, err := data.QueryCitations(cfg.DB, c.String(citationLikeQueryFlag.Name), c.Int(queryLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("querying citations: %w", err)
	}

	return encode(list)
}

func cmdQueryEpisodes(c *cli.Context) error {
	runID, err := resolveRunID(c)
	if err != nil {
		return err
	}

	list, err := data.GetEpisodes(getConfig(c).DB, runID, c.Int(queryLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("querying episodes: %w", err)
	}

	return encode(list)
}

func cmdQuerySummary(c *cli.Context) error {
	runID, err := resolveRunID(c)
	if err != nil {
		return err
	}

	s, err := data.GetRunSummary(getConfig(c).DB, runID)
	if err != nil {
		return fmt.Errorf("querying run summary: %w", err)
	}

	return encode(s)
}

func cmdQueryDistribution(c *cli.Context) error {
	runID, err := resolveRunID(c)
	if err != nil {
		return err
	}

	d, err := data.GetScoreDistribution(getConfig(c).DB, runID)
	if err != nil {
		return fmt.Errorf("querying score distribution: %w", err)
	}

	return encode(d)
}
