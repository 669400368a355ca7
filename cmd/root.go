// Package cmd defines the CLI commands for gleanctl.
package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/config"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/sync"
	"github.com/donaldgifford/gleanctl/internal/ui"
)

var (
	verbose      bool
	noColor      bool
	cfgFile      string
	envFile      string
	instanceName string
)

// rootCmd is the base command for the gleanctl CLI.
var rootCmd = &cobra.Command{
	Use:   "gleanctl",
	Short: "Manage Glean custom datasource configurations",
	Long: `Gleanctl assembles a custom datasource configuration from environment
variables and local files, pushes it to a Glean instance through the
indexing API, and exports remote configurations back to local files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command. Errors are printed here because the root
// command silences cobra's own reporting.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.NewWriter(noColor).Errorf("%v", err)
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gleanctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load settings from (default is ./.env)")
	rootCmd.PersistentFlags().StringVar(&instanceName, "instance", "", "Glean instance, as a config alias or a literal instance name")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadSettings reads the datasource settings from the environment and the
// configured env file, then resolves the --instance flag and the user
// config file into them.
func loadSettings() (*assemble.Settings, error) {
	settings, err := assemble.LoadSettings(assemble.LoadOpts{Dir: ".", EnvFile: envFile})
	if err != nil {
		return nil, err
	}

	if err := applyInstanceOverrides(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// applyInstanceOverrides merges the --instance flag and the user config
// file into settings. An explicit flag wins over the environment; the
// config file's default instance only fills gaps.
func applyInstanceOverrides(settings *assemble.Settings) error {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.DefaultConfigDir(), "config.yaml")
	}

	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return err
	}

	if instanceName != "" {
		inst, err := cfg.FindInstance(instanceName)
		if err != nil {
			// Not a config alias; take the flag as a literal instance name.
			settings.Instance = instanceName

			return nil
		}

		settings.Instance = inst.Instance
		if key := inst.ResolveAPIKey(); key != "" {
			settings.APIKey = key
		}

		return nil
	}

	if settings.Instance != "" {
		return nil
	}

	inst, err := cfg.FindInstance("")
	if err != nil {
		// No config file and no environment: downstream commands prompt
		// or fail with their own guidance.
		return nil
	}

	settings.Instance = inst.Instance

	if settings.APIKey == "" {
		settings.APIKey = inst.ResolveAPIKey()
	}

	return nil
}

func newClient(instance, token string) sync.Client {
	return glean.NewClient(instance, token)
}

func newUI() *ui.Writer {
	return ui.NewWriter(noColor)
}
