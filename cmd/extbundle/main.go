package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/extbundle/internal/app"
	"github.com/quantmind-br/extbundle/internal/config"
	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/tui"
	"github.com/quantmind-br/extbundle/internal/utils"
	"github.com/quantmind-br/extbundle/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "extbundle",
	Short: "Extract, bundle and collect browser extension scripts",
	Long: `extbundle processes a directory of browser extension archives.

Each archive is extracted, the background and content scripts named in its
manifest.json are bundled with esbuild, and the bundles of every archive that
built cleanly are copied to the output directory.`,
	Version:      version.Short(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract archives from the input directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, app.StageExtract)
	},
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Bundle the scripts of every extracted archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, app.StageBundle)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy non-empty bundle directories to the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, app.StageCopy)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration file interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.ConfigFilePath()
		}
		accessible, _ := cmd.Flags().GetBool("accessible")

		return tui.Run(tui.Options{
			Config:     cfg,
			Path:       path,
			Accessible: accessible,
			SaveFunc: func(c *config.Config) error {
				return config.Save(c, path)
			},
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.extbundle/config.yaml)")
	flags.StringP("input", "i", config.DefaultInputDir, "Directory containing extension archives")
	flags.String("archives", config.DefaultArchivesDir, "Directory archives are extracted into")
	flags.String("bundled", config.DefaultBundledDir, "Directory bundles are written to")
	flags.StringP("output", "o", config.DefaultOutputDir, "Final output directory (must not exist)")
	flags.IntP("limit", "l", config.DefaultLimit, "Max archives to extract (0=unlimited)")
	flags.Bool("clean", false, "Remove stage output directories before running")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bundle flags
	flags.Bool("minify", false, "Minify bundles")
	flags.Bool("sourcemap", false, "Write linked source maps")

	// Report flags
	flags.String("report", "", "Write a YAML run report to this path")

	bindFlags()

	// Add subcommands
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	configCmd.Flags().Bool("accessible", false, "Use plain prompts suitable for screen readers")
}

// bindFlags binds persistent flags to their config keys
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("paths.input", flags.Lookup("input"))
	_ = viper.BindPFlag("paths.archives", flags.Lookup("archives"))
	_ = viper.BindPFlag("paths.bundled", flags.Lookup("bundled"))
	_ = viper.BindPFlag("paths.output", flags.Lookup("output"))
	_ = viper.BindPFlag("extract.limit", flags.Lookup("limit"))
	_ = viper.BindPFlag("bundle.minify", flags.Lookup("minify"))
	_ = viper.BindPFlag("bundle.sourcemap", flags.Lookup("sourcemap"))
	_ = viper.BindPFlag("report.path", flags.Lookup("report"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// runStages loads configuration and runs the named stages (all of them when
// none are given). Configuration errors fail the command; a stage that
// aborts is reported on the console only.
func runStages(cmd *cobra.Command, stages ...string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})

	// Create context with cancellation
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	clean, _ := cmd.Flags().GetBool("clean")

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose: verbose,
			Clean:   clean,
		},
		Config: cfg,
		Logger: log,
		Progress: &utils.ProgressOptions{
			Output:   cmd.OutOrStdout(),
			Disabled: !cfg.Logging.Progress || logLevel == "debug",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	if _, err := orchestrator.RunStages(ctx, stages...); err != nil {
		log.Error().Err(err).Msg("Run finished with stage errors")
	}
	return nil
}
