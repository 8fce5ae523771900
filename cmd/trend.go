package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/outwriter"
	"github.com/spf13/cobra"
)

// trendCmd labels a series given on the command line.
var trendCmd = &cobra.Command{
	Use:   "trend value...",
	Short: "Label the trend of the last three values of a series.",
	Long: `Classify the last three finite values, oldest first, into one of
nine trend labels. Fewer than three values yield Incomplete.

Examples:
  pivotrend trend 10 20 15
  pivotrend trend 3 2 1 --output json`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		values, err := parseValues(args)
		if err != nil {
			contract.LogFatal("Cannot parse values", err)
		}
		if err := core.ExecuteTrend(rootCtx, cfg, values, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot classify trend", err)
		}
	},
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", a)
		}
		values[i] = v
	}
	return values, nil
}
