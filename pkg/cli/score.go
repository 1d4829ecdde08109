package cli

import (
	"fmt"

	"github.com/citelab/cvet/pkg/data"
	"github.com/citelab/cvet/pkg/sim"
	"github.com/citelab/cvet/pkg/trust"
	"github.com/urfave/cli/v2"
)

var (
	scoreCategoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Citation category (e.g. 'Academic Research')",
	}

	scoreDomainFlag = &cli.StringFlag{
		Name:  "domain",
		Usage: "Source domain (e.g. harvard.edu)",
	}

	scoreURLFlag = &cli.StringFlag{
		Name:  "url",
		Usage: "Full citation URL (optional)",
	}

	scoreAgeFlag = &cli.IntFlag{
		Name:  "age",
		Usage: "Age of the source in days",
	}

	scoreDescFlag = &cli.StringFlag{
		Name:  "desc",
		Usage: "Trustworthiness description used for keyword matching",
	}

	thresholdFlag = &cli.Float64Flag{
		Name:  "threshold",
		Usage: fmt.Sprintf("Acceptance threshold (default: %.0f, or config value)", trust.DefaultThreshold),
	}

	scoreBatchFileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Score every record of a citations CSV file",
	}

	scoreWorkersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent scoring workers for batch mode (default: NumCPU)",
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Score a single citation, or a whole CSV file",
		UsageText: `cvet score --category "Academic Research" --domain harvard.edu --age 50 --desc "leading university"
   cvet score --file mixed_citation_sources.csv --workers 4`,
		Action: cmdScore,
		Flags: []cli.Flag{
			scoreCategoryFlag,
			scoreDomainFlag,
			scoreURLFlag,
			scoreAgeFlag,
			scoreDescFlag,
			thresholdFlag,
			scoreBatchFileFlag,
			scoreWorkersFlag,
		},
	}
)

// ScoreResult is the single-citation score output.
type ScoreResult struct {
	Citation  trust.Citation `json:"citation" yaml:"citation"`
	Score     float64        `json:"score" yaml:"score"`
	Threshold float64        `json:"threshold" yaml:"threshold"`
	Accepted  bool           `json:"accepted" yaml:"accepted"`
}

func resolveThreshold(c *cli.Context) float64 {
	if c.IsSet(thresholdFlag.Name) {
		return c.Float64(thresholdFlag.Name)
	}
	if cfg := getConfig(c); cfg.Conf != nil && cfg.Conf.Threshold > 0 {
		return cfg.Conf.Threshold
	}
	return trust.DefaultThreshold
}

func cmdScore(c *cli.Context) error {
	if c.IsSet(scoreBatchFileFlag.Name) {
		return cmdScoreBatch(c)
	}

	if !c.IsSet(scoreDomainFlag.Name) || !c.IsSet(scoreCategoryFlag.Name) {
		return cli.ShowSubcommandHelp(c)
	}

	citation := trust.Citation{
		Category:         c.String(scoreCategoryFlag.Name),
		URL:              c.String(scoreURLFlag.Name),
		Domain:           c.String(scoreDomainFlag.Name),
		AgeDays:          c.Int(scoreAgeFlag.Name),
		TrustDescription: c.String(scoreDescFlag.Name),
	}

	engine := trust.NewEngine()
	score, err := engine.Score(citation)
	if err != nil {
		return fmt.Errorf("scoring citation: %w", err)
	}

	threshold := resolveThreshold(c)
	policy := trust.Policy{Threshold: threshold}

	return encode(&ScoreResult{
		Citation:  citation,
		Score:     score,
		Threshold: threshold,
		Accepted:  policy.Decide(score),
	})
}

func cmdScoreBatch(c *cli.Context) error {
	file := c.String(scoreBatchFileFlag.Name)

	citations, err := data.ReadCitationsCSV(file)
	if err != nil {
		return fmt.Errorf("reading citations: %w", err)
	}

	outcomes, err := sim.ScoreAll(c.Context, citations, resolveThreshold(c), c.Int(scoreWorkersFlag.Name))
	if err != nil {
		return fmt.Errorf("batch scoring: %w", err)
	}

	return encode(outcomes)
}
