package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/export"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/info"
)

var (
	configSave      bool
	configOutputDir string
	configOutput    string
)

var configCmd = &cobra.Command{
	Use:   "config <datasource-id>",
	Short: "Fetch a datasource configuration from Glean",
	Long: `Fetch the configuration of a datasource from the Glean instance and
display it. With --save, the configuration is also exported to local files
that a later setup run can assemble the same datasource from: an env file,
object type and quick link definitions, and the icons. The indexing API key
is never written to the exported files.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configSave, "save", false, "export the configuration to local files")
	configCmd.Flags().StringVar(&configOutputDir, "output-dir", "", "parent directory for the exported files (default is the current directory)")
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	id := args[0]

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if settings.APIKey == "" || settings.Instance == "" {
		return errors.New("credentials are required: set GLEAN_INDEXING_API_KEY and GLEAN_INSTANCE_NAME, or configure an instance")
	}

	client := glean.NewClient(settings.Instance, settings.APIKey)

	remote, err := client.GetDatasourceConfig(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetching datasource %q: %w", id, err)
	}

	if err := info.Run(&info.Opts{
		Remote:       remote,
		DatasourceID: id,
		Writer:       os.Stdout,
		OutputFormat: configOutput,
	}); err != nil {
		return err
	}

	w := newUI()

	if !configSave {
		if configOutput != "json" {
			w.Info("Tip: export this configuration with the --save flag")
		}

		return nil
	}

	manifest, err := export.Run(remote, &export.Opts{
		Dir:      configOutputDir,
		Instance: settings.Instance,
		Logger:   slog.Default(),
	})

	var partial *export.PartialError
	if err != nil && !errors.As(err, &partial) {
		return err
	}

	for _, failure := range partialFailures(partial) {
		w.Warningf("Could not save %s: %v", failure.Artifact, failure.Err)
	}

	w.Successf("Configuration saved to %s/", manifest.Dir)

	for _, name := range manifest.Files() {
		w.Infof("  - %s", name)
	}

	return nil
}

func partialFailures(err *export.PartialError) []*export.ArtifactError {
	if err == nil {
		return nil
	}

	return err.Failures
}
