// Package sync pushes an assembled datasource configuration to the Glean
// indexing API. Create and update are the same idempotent upsert on the
// remote side; the difference only decides whether the user is asked before
// overwriting.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
)

// Client is the slice of the indexing API the synchronizer needs.
type Client interface {
	GetDatasourceConfig(ctx context.Context, datasource string) (*glean.CustomDatasourceConfig, error)
	AddDatasource(ctx context.Context, cfg *glean.CustomDatasourceConfig) error
}

// ConfirmFn asks the user to approve overwriting an existing datasource.
// Implementations return what the user answered; an error means the answer
// could not be obtained.
type ConfirmFn func(prompt string) (bool, error)

// Outcome classifies a completed push.
type Outcome string

// Push outcomes. Aborted is a successful no-op reflecting the user's
// choice, not an error.
const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeAborted Outcome = "aborted"
)

// Opts configures a push.
type Opts struct {
	// Config is the assembled local configuration to push.
	Config *datasource.Config

	// DatasourceID names the remote record to synchronize against. Empty
	// means Config.ID. Setting it pushes the configuration under a
	// different identifier, for promoting a config between datasources.
	DatasourceID string

	// Client talks to the indexing API.
	Client Client

	// Force overwrites an existing datasource without confirmation.
	Force bool

	// Confirm is consulted before overwriting an existing datasource when
	// Force is unset. A nil Confirm counts as answering no, which lets
	// non-interactive callers fail safe.
	Confirm ConfirmFn

	// Logger for debug output.
	Logger *slog.Logger
}

// Result holds the outcome of a push.
type Result struct {
	Outcome Outcome

	// Existed reports whether a remote record was already present under
	// the configuration's ID.
	Existed bool
}

// Run pushes the configuration to the remote instance.
//
// The existence probe treats any fetch error as "not found": the API
// signals absence with an error rather than a typed empty result, and
// proceeding lets creation go ahead on ambiguous failures. The upsert that
// follows reports its own errors either way.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}

	if opts.Client == nil {
		return nil, errors.New("client is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := opts.Config.ID
	if opts.DatasourceID != "" {
		id = opts.DatasourceID
	}

	existing, err := opts.Client.GetDatasourceConfig(ctx, id)
	exists := err == nil && existing != nil

	if err != nil {
		logger.Debug("existence check failed, treating as not found", "datasource", id, "error", err)
	}

	if exists && !opts.Force {
		overwrite := false

		if opts.Confirm != nil {
			prompt := fmt.Sprintf("Datasource %q already exists. Overwrite the existing configuration?", id)

			overwrite, err = opts.Confirm(prompt)
			if err != nil {
				return nil, fmt.Errorf("confirming overwrite: %w", err)
			}
		}

		if !overwrite {
			logger.Debug("push aborted by user", "datasource", id)

			return &Result{Outcome: OutcomeAborted, Existed: true}, nil
		}
	}

	wire := ToWire(opts.Config)
	wire.Name = id

	if err := opts.Client.AddDatasource(ctx, wire); err != nil {
		return nil, fmt.Errorf("pushing datasource %s: %w", id, err)
	}

	outcome := OutcomeCreated
	if exists {
		outcome = OutcomeUpdated
	}

	logger.Debug("push complete", "datasource", id, "outcome", string(outcome))

	return &Result{Outcome: outcome, Existed: exists}, nil
}
