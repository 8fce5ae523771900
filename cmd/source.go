package cmd

import (
	"fmt"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sourceCmd is the parent of the dataset storage commands.
var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage the database tables datasets are read from.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// sourceMigrateCmd applies the observation table migrations.
var sourceMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or roll back the observation tables.",
	Long: `Apply the embedded migrations that create pivot_observations and
boxplot_samples on the configured --source-backend.

Examples:
  pivotrend source migrate --source-backend sqlite --source-db-connect pivot.db
  pivotrend source migrate --source-backend postgresql \
    --source-db-connect "host=localhost dbname=pivot" --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := dataset.Migrate(rootCtx, cfg.SourceBackend, cfg.SourceConnect, target); err != nil {
			contract.LogFatal("Cannot migrate source tables", err)
		}
		cmd.Println("Migrations applied")
	},
}

// sourceImportCmd stores a dataset file under --dataset.
var sourceImportCmd = &cobra.Command{
	Use:   "import input",
	Short: "Load a dataset file into the observation tables.",
	Long: `Decode a dataset file and store it under the --dataset name, replacing
rows previously stored under that name. Long-layout input goes to
pivot_observations; with --samples, wide-layout input goes to boxplot_samples.

Examples:
  pivotrend source import enrolled.csv --dataset enrolled \
    --source-backend sqlite --source-db-connect pivot.db`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(cmd, args); err != nil {
			return err
		}
		if viper.GetBool("samples") {
			cfg.Layout = schema.WideLayout
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		n, err := importDataset()
		if err != nil {
			contract.LogFatal("Cannot import dataset", err)
		}
		cmd.Printf("Imported %d rows into dataset %s\n", n, cfg.Dataset)
	},
}

func importDataset() (int, error) {
	if cfg.SourceBackend == schema.NoneBackend {
		return 0, fmt.Errorf("--source-backend is required for import")
	}
	if cfg.Dataset == "" {
		return 0, fmt.Errorf("--dataset is required for import")
	}

	src := &dataset.FileSource{Path: cfg.Input, Opts: dataset.OptionsFromConfig(cfg)}
	ds, err := src.Load(rootCtx)
	if err != nil {
		return 0, err
	}

	db, err := dataset.OpenDB(rootCtx, cfg.SourceBackend, cfg.SourceConnect)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	if cfg.Layout == schema.WideLayout {
		return dataset.ImportSamples(rootCtx, db, cfg.SourceBackend, cfg.Dataset, ds)
	}
	return dataset.ImportObservations(rootCtx, db, cfg.SourceBackend, cfg.Dataset, ds)
}
