package cli

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/citelab/cvet/pkg/data"
	"github.com/citelab/cvet/pkg/sim"
	"github.com/urfave/cli/v2"
)

var (
	episodesFlag = &cli.IntFlag{
		Name:  "episodes",
		Usage: fmt.Sprintf("Number of simulation episodes (default: %d, or config value)", sim.EpisodesDefault),
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed for reproducible citation sampling (default: config value)",
	}

	outFileFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Write episode results to a CSV file (optional)",
	}

	simulateCmd = &cli.Command{
		Name:    "simulate",
		Aliases: []string{"sim"},
		Usage:   "Run scoring episodes over the imported citations",
		UsageText: `cvet simulate                              # defaults from config
   cvet simulate --episodes 100 --seed 42 --out results.csv
   cvet simulate --threshold 75`,
		Action: cmdSimulate,
		Flags: []cli.Flag{
			episodesFlag,
			seedFlag,
			thresholdFlag,
			outFileFlag,
		},
	}
)

// SimulateResult is the persisted-run summary printed after a run.
type SimulateResult struct {
	RunID     int64   `json:"run_id" yaml:"runId"`
	Seed      int64   `json:"seed" yaml:"seed"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Episodes  int     `json:"episodes" yaml:"episodes"`
	Accepted  int     `json:"accepted" yaml:"accepted"`
	Rejected  int     `json:"rejected" yaml:"rejected"`
	Errors    int     `json:"errors" yaml:"errors"`
	AvgScore  float64 `json:"avg_score" yaml:"avgScore"`
	MinScore  float64 `json:"min_score" yaml:"minScore"`
	MaxScore  float64 `json:"max_score" yaml:"maxScore"`
	Duration  string  `json:"duration" yaml:"duration"`
	OutFile   string  `json:"out_file,omitempty" yaml:"outFile,omitempty"`
}

func cmdSimulate(c *cli.Context) error {
	cfg := getConfig(c)

	opts := sim.Options{
		Episodes:  cfg.Conf.Episodes,
		Seed:      cfg.Conf.Seed,
		Threshold: resolveThreshold(c),
	}
	if c.IsSet(episodesFlag.Name) {
		opts.Episodes = c.Int(episodesFlag.Name)
	}
	if c.IsSet(seedFlag.Name) {
		opts.Seed = c.Int64(seedFlag.Name)
	}

	sampler, err := data.NewCitationSampler(cfg.DB)
	if err != nil {
		return fmt.Errorf("creating sampler: %w", err)
	}

	slog.Info("starting simulation", "episodes", opts.Episodes, "seed", opts.Seed, "threshold", opts.Threshold)

	res, err := sim.Run(sampler, opts)
	if err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	runID, err := saveRun(cfg, res)
	if err != nil {
		return err
	}

	out := c.String(outFileFlag.Name)
	if out != "" {
		if err := writeResultsCSV(out, res); err != nil {
			return fmt.Errorf("writing results file: %w", err)
		}
		slog.Info("results written", "file", out)
	}

	return encode(&SimulateResult{
		RunID:     runID,
		Seed:      res.Seed,
		Threshold: res.Threshold,
		Episodes:  len(res.Episodes),
		Accepted:  res.Accepted,
		Rejected:  res.Rejected,
		Errors:    res.Errors,
		AvgScore:  res.AvgScore,
		MinScore:  res.MinScore,
		MaxScore:  res.MaxScore,
		Duration:  res.Duration,
		OutFile:   out,
	})
}

func saveRun(cfg *appConfig, res *sim.Result) (int64, error) {
	runID, err := data.InsertRun(cfg.DB, res.Seed, res.Threshold, len(res.Episodes))
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}

	rows := make([]*data.EpisodeRow, 0, len(res.Episodes))
	for _, e := range res.Episodes {
		accepted := 0
		if e.Accepted {
			accepted = 1
		}
		rows = append(rows, &data.EpisodeRow{
			Episode:  e.Episode,
			URL:      e.URL,
			Domain:   e.Domain,
			Category: e.Category,
			AgeDays:  e.AgeDays,
			Score:    e.Score,
			Accepted: accepted,
		})
	}

	if err := data.SaveEpisodes(cfg.DB, runID, rows); err != nil {
		return 0, fmt.Errorf("saving episodes: %w", err)
	}

	return runID, nil
}

func writeResultsCSV(path string, res *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"episode", "url", "domain", "category", "age_days", "score", "accepted"}); err != nil {
		return err
	}

	for _, e := range res.Episodes {
		accepted := "0"
		if e.Accepted {
			accepted = "1"
		}
		row := []string{
			strconv.Itoa(e.Episode),
			e.URL,
			e.Domain,
			e.Category,
			strconv.Itoa(e.AgeDays),
			strconv.FormatFloat(e.Score, 'f', 2, 64),
			accepted,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
