// Package setup orchestrates datasource creation end to end: load settings
// from the environment, fill the gaps interactively, assemble and validate
// the configuration, summarize it, and push it to the Glean instance.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/icon"
	"github.com/donaldgifford/gleanctl/internal/prompt"
	"github.com/donaldgifford/gleanctl/internal/sync"
	"github.com/donaldgifford/gleanctl/internal/ui"
)

// Opts holds the options for the setup command.
type Opts struct {
	// Dir is the directory searched for conventional files (icons,
	// auxiliary definitions, .env). Empty means the current directory.
	Dir string

	// EnvFile is an explicit env file to load settings from.
	EnvFile string

	// Silent skips all prompts. Every required setting must come from the
	// environment, and an existing datasource is an error without Force.
	Silent bool

	// Force overwrites an existing datasource without confirmation.
	Force bool

	// Settings bypasses environment loading when set. Used in tests.
	Settings *assemble.Settings

	// Prompter supplies interactive input. Required unless Silent.
	Prompter *prompt.Prompter

	// UI receives user-facing progress messages. Defaults to a writer on
	// stdout/stderr.
	UI *ui.Writer

	// Out is the destination for the configuration summary and the
	// category list. Defaults to stdout.
	Out io.Writer

	// Fetcher downloads URL-sourced icons. Nil means a default fetcher.
	Fetcher *icon.Fetcher

	// NewClient builds the indexing API client once credentials are known.
	NewClient func(instance, token string) sync.Client

	// Logger for debug output.
	Logger *slog.Logger
}

// Result holds the outcome of a completed setup.
type Result struct {
	Config   *datasource.Config
	Outcome  sync.Outcome
	Warnings []string

	// AdminURL points at the datasource page in the Glean admin console.
	// Empty when the push was aborted.
	AdminURL string
}

// Run executes the setup workflow.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := opts.UI
	if w == nil {
		w = ui.NewWriter(false)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.NewClient == nil {
		return nil, errors.New("client factory is required")
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	settings := opts.Settings
	if settings == nil {
		loaded, err := assemble.LoadSettings(assemble.LoadOpts{Dir: dir, EnvFile: opts.EnvFile})
		if err != nil {
			return nil, err
		}

		settings = loaded
	}

	missing := missingSettings(settings)

	if opts.Silent {
		return runSilent(ctx, opts, settings, missing, w, out, dir, logger)
	}

	return runInteractive(ctx, opts, settings, missing, w, out, dir, logger)
}

// missingSettings names the environment variables silent mode cannot proceed
// without. The remaining settings all have fallbacks.
func missingSettings(s *assemble.Settings) []string {
	var missing []string

	checks := []struct {
		key   string
		value string
	}{
		{assemble.EnvAPIKey, s.APIKey},
		{assemble.EnvInstance, s.Instance},
		{assemble.EnvDisplayName, s.DisplayName},
		{assemble.EnvID, s.ID},
		{assemble.EnvHomeURL, s.HomeURL},
	}

	for _, c := range checks {
		if c.value == "" {
			missing = append(missing, c.key)
		}
	}

	return missing
}

func runSilent(
	ctx context.Context,
	opts *Opts,
	settings *assemble.Settings,
	missing []string,
	w *ui.Writer,
	out io.Writer,
	dir string,
	logger *slog.Logger,
) (*Result, error) {
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"missing required environment variables: %s (run \"gleanctl generate env\" to create a template)",
			strings.Join(missing, ", "),
		)
	}

	w.Success("Loaded configuration from environment variables")

	assembled, err := assemble.Run(ctx, assemble.Opts{Settings: settings, Dir: dir, Fetcher: opts.Fetcher, Logger: logger})
	if err != nil {
		return nil, err
	}

	for _, warning := range assembled.Warnings {
		w.Warning(warning)
	}

	if err := writeSummary(out, assembled); err != nil {
		return nil, err
	}

	client := opts.NewClient(settings.Instance, settings.APIKey)

	// Silent mode never overwrites implicitly: absent Force, an existing
	// datasource stops the run before the upsert.
	if !opts.Force {
		existing, err := client.GetDatasourceConfig(ctx, assembled.Config.ID)
		if err != nil {
			logger.Debug("existence check failed, treating as not found", "datasource", assembled.Config.ID, "error", err)
		}

		if err == nil && existing != nil {
			return nil, fmt.Errorf("datasource %q already exists. Use --force to overwrite", assembled.Config.ID)
		}
	}

	pushed, err := sync.Run(ctx, &sync.Opts{Config: assembled.Config, Client: client, Force: true, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Result{
		Config:   assembled.Config,
		Outcome:  pushed.Outcome,
		Warnings: assembled.Warnings,
		AdminURL: glean.AdminURL(assembled.Config.ID),
	}, nil
}

func runInteractive(
	ctx context.Context,
	opts *Opts,
	settings *assemble.Settings,
	missing []string,
	w *ui.Writer,
	out io.Writer,
	dir string,
	logger *slog.Logger,
) (*Result, error) {
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required for interactive setup")
	}

	if len(missing) == 0 {
		w.Success("Loaded configuration from environment variables")
	} else {
		w.Info("Running interactive setup...")

		collected, err := runWizard(opts.Prompter, w, out, settings, dir)
		if err != nil {
			return nil, err
		}

		settings = collected
	}

	assembled, err := assemble.Run(ctx, assemble.Opts{Settings: settings, Dir: dir, Fetcher: opts.Fetcher, Logger: logger})
	if err != nil {
		return nil, err
	}

	for _, warning := range assembled.Warnings {
		w.Warning(warning)
	}

	if err := writeSummary(out, assembled); err != nil {
		return nil, err
	}

	proceed, err := opts.Prompter.Confirm("Proceed with creating the datasource?", true)
	if err != nil {
		return nil, err
	}

	if !proceed {
		w.Info("Setup cancelled")

		return &Result{Config: assembled.Config, Outcome: sync.OutcomeAborted, Warnings: assembled.Warnings}, nil
	}

	client := opts.NewClient(settings.Instance, settings.APIKey)

	pushed, err := sync.Run(ctx, &sync.Opts{
		Config: assembled.Config,
		Client: client,
		Force:  opts.Force,
		Confirm: func(msg string) (bool, error) {
			return opts.Prompter.Confirm(msg, false)
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Config: assembled.Config, Outcome: pushed.Outcome, Warnings: assembled.Warnings}

	if pushed.Outcome == sync.OutcomeAborted {
		w.Info("Aborted")

		return result, nil
	}

	result.AdminURL = glean.AdminURL(assembled.Config.ID)

	return result, nil
}
