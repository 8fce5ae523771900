package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations. sharedSetup attaches the logger.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profilePrefix is non-empty when profiling was requested.
var profilePrefix string

// startProfiling starts CPU profiling if enabled.
func startProfiling() error {
	if profilePrefix == "" {
		return nil
	}
	cpuFile, err := os.Create(profilePrefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profilePrefix, profilePrefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if profilePrefix == "" {
		return nil
	}
	pprof.StopCPUProfile()

	memFile, err := os.Create(profilePrefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "pivotrend",
	Short:              "Pivot tabular observations into span tables with totals and trends.",
	Long:               `Pivotrend groups observations by period and category, emits a row-span table with subtotals and totals, labels three-period trends and summarizes score distributions as boxplots.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".pivotrend")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("PIVOTREND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("source-backend", schema.NoneBackend)
	viper.SetDefault("levels", contract.DefaultLevels)
	viper.SetDefault("subtotal-depths", contract.DefaultSubtotals)
	viper.SetDefault("missing", schema.MissingBlank)
	viper.SetDefault("local-tokens", contract.DefaultLocalTokens)
	viper.SetDefault("logo-size", contract.DefaultLogoSize)
	viper.SetDefault("show-total-table", true)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("amqp-url", contract.DefaultAMQPURL)
	viper.SetDefault("request-queue", contract.DefaultRequestQ)
	viper.SetDefault("result-queue", contract.DefaultResultQ)
}

// sharedSetup unmarshals config, runs validation and installs the logger.
func sharedSetup(_ *cobra.Command, args []string) error {
	profilePrefix = viper.GetString("profile")
	if err := startProfiling(); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. A positional argument overrides --input.
	if len(args) == 1 {
		input.Input = args[0]
	}

	// 4. Run all validation and complex parsing into the global 'cfg'.
	if err := contract.ProcessAndValidate(rootCtx, cfg, input); err != nil {
		return err
	}

	// 5. Log to stderr so stdout stays clean for results and the MCP protocol.
	logger := contract.NewLogger(os.Stderr, cfg.LogLevel, true)
	contract.SetLogger(logger)
	rootCtx = logger.WithContext(rootCtx)
	return nil
}

// boxplotSetup runs sharedSetup for commands that read wide-layout input.
func boxplotSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(cmd, args); err != nil {
		return err
	}
	cfg.Layout = schema.WideLayout
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
