package cmd

import (
	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/spf13/cobra"
)

// boxplotCmd summarizes wide-layout samples per area.
var boxplotCmd = &cobra.Command{
	Use:   "boxplot [input]",
	Short: "Summarize score distributions per area as boxplots.",
	Long: `Read a wide dataset (area column first, one value column per series)
and compute quartiles, mean, fences and outliers for every area.

Three partitions are reported: every series, the dip series (group names
with an SI part) and the remaining series. Threshold lines and per-area
colors come from the config file.

Examples:
  pivotrend boxplot scores.csv --threshold-lines 2
  pivotrend boxplot scores.csv --output html --output-file scores.html`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: boxplotSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWithSource(core.ExecuteBoxplot); err != nil {
			contract.LogFatal("Cannot build boxplot summary", err)
		}
	},
}
