package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/check"
	"github.com/donaldgifford/gleanctl/internal/glean"
)

var (
	checkDatasource   string
	checkOutputFormat string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the local configuration for drift against the remote datasource",
	Long: `Assemble the local configuration the same way setup would and compare it
field by field against the datasource currently on the Glean instance.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDatasource, "datasource", "", "remote datasource ID to compare against (default is the configured ID)")
	checkCmd.Flags().StringVarP(&checkOutputFormat, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if settings.APIKey == "" || settings.Instance == "" {
		return errors.New("credentials are required: set GLEAN_INDEXING_API_KEY and GLEAN_INSTANCE_NAME, or configure an instance")
	}

	w := newUI()

	assembled, err := assemble.Run(cmd.Context(), assemble.Opts{
		Settings: settings,
		Dir:      ".",
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}

	if checkOutputFormat != "json" {
		for _, warning := range assembled.Warnings {
			w.Warning(warning)
		}
	}

	client := glean.NewClient(settings.Instance, settings.APIKey)

	res, err := check.Run(cmd.Context(), &check.Opts{
		Config:       assembled.Config,
		Client:       client,
		DatasourceID: checkDatasource,
		OutputFormat: checkOutputFormat,
		Writer:       os.Stdout,
		Logger:       slog.Default(),
	})
	if err != nil {
		return err
	}

	if checkOutputFormat == "json" {
		return nil
	}

	switch {
	case !res.Exists:
		w.Warningf("Datasource %q has not been created yet. Run \"gleanctl setup\" to create it.", res.DatasourceID)
	case res.InSync:
		w.Success("Local configuration is in sync with the remote datasource")
	default:
		w.Warning("Local configuration differs from the remote datasource. Run \"gleanctl setup --force\" to push it.")
	}

	return nil
}
