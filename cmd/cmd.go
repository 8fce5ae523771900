// Package cmd defines the command-line interface for pivotrend.
package cmd

import (
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(boxplotCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the source subcommands to the parent source command
	sourceCmd.AddCommand(sourceMigrateCmd)
	sourceCmd.AddCommand(sourceImportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Dataset file (.json, .yaml, .csv, .parquet) or s3://bucket/key")
	rootCmd.PersistentFlags().String("source-backend", string(schema.NoneBackend), "Dataset backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("query", "", "SQL query returning category columns followed by the value column")
	rootCmd.PersistentFlags().String("dataset", "", "Stored dataset name for the default query")
	rootCmd.PersistentFlags().Int("levels", contract.DefaultLevels, "Category levels below the period selected by the default query")
	rootCmd.PersistentFlags().String("value-column", "", "Header of the value column in long CSV input (default: last column)")
	rootCmd.PersistentFlags().String("columns", "", "Comma-separated display names of the period and category columns of parquet input")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet or xlsx or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal digits for values (-1 = shortest exact form)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("locale", "", "BCP 47 tag used to collate category values (default: root collation)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Table toggles are persistent so serve, worker and mcp share them as request defaults.
	rootCmd.PersistentFlags().String("subtotal-depths", contract.DefaultSubtotals, "Comma-separated hierarchy depths that get subtotal rows")
	rootCmd.PersistentFlags().String("missing", string(schema.MissingBlank), "Placeholder for missing values: blank or zero")
	rootCmd.PersistentFlags().String("local-tokens", contract.DefaultLocalTokens, "Comma-separated tokens marking a top-level group as local")
	rootCmd.PersistentFlags().Bool("show-total-table", true, "Append the Total and External total rows")
	rootCmd.PersistentFlags().Bool("show-trend", false, "Show the trend of the synthetic total rows")
	rootCmd.PersistentFlags().Bool("show-trend-by-program", false, "Show a trend cell on every leaf and subtotal row")
	rootCmd.PersistentFlags().Bool("show-logo", false, "Show the logo in HTML output")
	rootCmd.PersistentFlags().Int("logo-size", contract.DefaultLogoSize, "Logo width in pixels")
	rootCmd.PersistentFlags().String("logo-url", "", "Logo image URL for HTML output")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of boxplotCmd to Viper
	boxplotCmd.Flags().Int("threshold-lines", 0, "Number of threshold lines to draw (0 to 4)")
	if err := viper.BindPFlags(boxplotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding boxplot flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "HTTP listen address")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of workerCmd to Viper
	workerCmd.Flags().String("amqp-url", contract.DefaultAMQPURL, "RabbitMQ connection URL")
	workerCmd.Flags().String("request-queue", contract.DefaultRequestQ, "Queue requests are consumed from")
	workerCmd.Flags().String("result-queue", contract.DefaultResultQ, "Queue responses go to when a request has no reply-to")
	if err := viper.BindPFlags(workerCmd.Flags()); err != nil {
		contract.LogFatal("Error binding worker flags", err)
	}

	// Bind all flags of sourceMigrateCmd to Viper
	sourceMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(sourceMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding source migrate flags", err)
	}

	// Bind all flags of sourceImportCmd to Viper
	sourceImportCmd.Flags().Bool("samples", false, "Import wide-layout boxplot samples instead of observations")
	if err := viper.BindPFlags(sourceImportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding source import flags", err)
	}
}
