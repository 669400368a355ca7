package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/prompt"
	"github.com/donaldgifford/gleanctl/internal/setup"
	"github.com/donaldgifford/gleanctl/internal/sync"
)

var (
	setupSilent bool
	setupForce  bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or update a datasource on a Glean instance",
	Long: `Set up a custom datasource: assemble the configuration from environment
variables, local definition files, and icons, then push it to the Glean
indexing API. Missing settings are collected interactively unless --silent
is set.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupSilent, "silent", false, "run without prompts (requires all env vars)")
	setupCmd.Flags().BoolVarP(&setupForce, "force", "f", false, "overwrite an existing datasource without confirmation")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	w := newUI()

	opts := &setup.Opts{
		EnvFile:   envFile,
		Silent:    setupSilent,
		Force:     setupForce,
		Settings:  settings,
		Prompter:  prompt.New(os.Stdin, os.Stdout),
		UI:        w,
		Out:       os.Stdout,
		NewClient: newClient,
		Logger:    slog.Default(),
	}

	res, err := setup.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if res.Outcome == sync.OutcomeAborted {
		return nil
	}

	w.Successf("Successfully %s datasource %q", res.Outcome, res.Config.ID)
	w.Infof("View the connector configuration in the Glean UI at: %s", res.AdminURL)

	if res.Config.IsTestMode && len(res.Config.TestUserEmails) > 0 {
		w.Infof("Note: test users (%d) can be managed in the Glean admin interface", len(res.Config.TestUserEmails))
	}

	return nil
}
