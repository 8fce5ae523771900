package cmd

import (
	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/internal/outwriter"
	"github.com/spf13/cobra"
)

// tableCmd builds the pivot table of a long-layout dataset.
var tableCmd = &cobra.Command{
	Use:   "table [input]",
	Short: "Render the pivot table with subtotals, totals and trends.",
	Long: `Group observations by category path and period, newest period first.

Each top-level group alternates its band parity. Subtotal rows follow every
group at the depths named by --subtotal-depths, and the Total and External
total rows close the table: external rows are the groups whose name does not
contain a local token.

Examples:
  # Pivot a long CSV with per-row trends
  pivotrend table enrolled.csv --show-trend-by-program

  # Subtotal both the region and the school levels
  pivotrend table enrolled.csv --subtotal-depths 0,1

  # Read a stored dataset and export a workbook
  pivotrend table --source-backend sqlite --source-db-connect pivot.db \
    --dataset enrolled --output xlsx --output-file enrolled.xlsx`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWithSource(core.ExecutePivotTable); err != nil {
			contract.LogFatal("Cannot build pivot table", err)
		}
	},
}

// runWithSource opens the configured dataset source and runs exec on it.
func runWithSource(exec core.ExecutorFunc) error {
	src, closer, err := dataset.Open(rootCtx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer() }()
	return exec(rootCtx, cfg, src, outwriter.NewOutWriter())
}
