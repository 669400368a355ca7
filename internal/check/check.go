// Package check compares the assembled local configuration against the
// remote datasource record and reports drift field by field.
package check

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"text/tabwriter"

	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/sync"
)

// Opts configures the check operation.
type Opts struct {
	// Config is the assembled local configuration.
	Config *datasource.Config
	// Client fetches the remote record.
	Client sync.Client
	// DatasourceID names the remote record to compare against. Empty means
	// Config.ID.
	DatasourceID string
	// OutputFormat is "text" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
	// Logger for debug output.
	Logger *slog.Logger
}

// FieldStatus indicates the drift state of one configuration field.
type FieldStatus string

// Field drift statuses.
const (
	StatusInSync     FieldStatus = "in-sync"
	StatusDrifted    FieldStatus = "drifted"
	StatusLocalOnly  FieldStatus = "local-only"
	StatusRemoteOnly FieldStatus = "remote-only"
)

// FieldDrift describes the drift state of a single field. Local and Remote
// hold display values, truncated for bulky fields like icon data URLs.
type FieldDrift struct {
	Field  string      `json:"field"`
	Status FieldStatus `json:"status"`
	Local  string      `json:"local,omitempty"`
	Remote string      `json:"remote,omitempty"`
}

// Result holds the comparison outcome.
type Result struct {
	DatasourceID string       `json:"datasource_id"`
	Exists       bool         `json:"exists"`
	InSync       bool         `json:"in_sync"`
	Fields       []FieldDrift `json:"fields,omitempty"`
}

// Run fetches the remote record and compares it against the local
// configuration. A missing remote record is not an error: the result
// reports Exists false and every comparison is skipped.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Config == nil {
		return nil, fmt.Errorf("local configuration is required")
	}

	id := opts.Config.ID
	if opts.DatasourceID != "" {
		id = opts.DatasourceID
	}

	result := &Result{DatasourceID: id}

	remote, err := opts.Client.GetDatasourceConfig(ctx, id)
	if err != nil {
		logger.Debug("fetch failed, treating datasource as absent", "datasource", id, "error", err)
	}

	if err != nil || remote == nil {
		return result, render(opts.Writer, opts.OutputFormat, result)
	}

	result.Exists = true

	local := sync.ToWire(opts.Config)
	local.Name = id

	result.Fields = compareConfigs(local, remote)
	result.InSync = true

	for i := range result.Fields {
		if result.Fields[i].Status != StatusInSync {
			result.InSync = false

			break
		}
	}

	return result, render(opts.Writer, opts.OutputFormat, result)
}

func compareConfigs(local, remote *glean.CustomDatasourceConfig) []FieldDrift {
	return []FieldDrift{
		compareString("Datasource ID", local.Name, remote.Name),
		compareString("Display Name", local.DisplayName, remote.DisplayName),
		compareString("Category", local.DatasourceCategory, remote.DatasourceCategory),
		compareString("Home URL", local.HomeURL, remote.HomeURL),
		compareString("URL Regex", local.URLRegex, remote.URLRegex),
		compareString("Suggestion Text", local.SuggestionText, remote.SuggestionText),
		compareIcon("Light Mode Icon", local.IconURL, remote.IconURL),
		compareIcon("Dark Mode Icon", local.IconDarkURL, remote.IconDarkURL),
		compareBool("User Referenced By Email", local.IsUserReferencedByEmail, remote.IsUserReferencedByEmail),
		compareBool("Test Mode", local.IsTestDatasource, remote.IsTestDatasource),
		compareObjects(local.ObjectDefinitions, remote.ObjectDefinitions),
		compareQuicklinks(local.Quicklinks, remote.Quicklinks),
	}
}

func compareString(field, local, remote string) FieldDrift {
	return FieldDrift{
		Field:  field,
		Status: driftStatus(local == remote, local != "", remote != ""),
		Local:  local,
		Remote: remote,
	}
}

// compareIcon compares icon data URLs by full equality but reports them
// truncated: base64 image payloads run to kilobytes.
func compareIcon(field, local, remote string) FieldDrift {
	return FieldDrift{
		Field:  field,
		Status: driftStatus(local == remote, local != "", remote != ""),
		Local:  truncate(local, displayWidth),
		Remote: truncate(remote, displayWidth),
	}
}

func compareBool(field string, local, remote bool) FieldDrift {
	status := StatusInSync
	if local != remote {
		status = StatusDrifted
	}

	return FieldDrift{
		Field:  field,
		Status: status,
		Local:  strconv.FormatBool(local),
		Remote: strconv.FormatBool(remote),
	}
}

func compareObjects(local, remote []glean.ObjectDefinition) FieldDrift {
	// A nil slice and an empty one are the same absence of definitions.
	equal := len(local) == 0 && len(remote) == 0 || reflect.DeepEqual(local, remote)

	return FieldDrift{
		Field:  "Object Types",
		Status: driftStatus(equal, len(local) > 0, len(remote) > 0),
		Local:  countLabel(len(local)),
		Remote: countLabel(len(remote)),
	}
}

func compareQuicklinks(local, remote []glean.Quicklink) FieldDrift {
	equal := len(local) == 0 && len(remote) == 0 || reflect.DeepEqual(local, remote)

	return FieldDrift{
		Field:  "Quick Links",
		Status: driftStatus(equal, len(local) > 0, len(remote) > 0),
		Local:  countLabel(len(local)),
		Remote: countLabel(len(remote)),
	}
}

func driftStatus(equal, localSet, remoteSet bool) FieldStatus {
	switch {
	case equal:
		return StatusInSync
	case localSet && !remoteSet:
		return StatusLocalOnly
	case !localSet && remoteSet:
		return StatusRemoteOnly
	default:
		return StatusDrifted
	}
}

func countLabel(n int) string {
	if n == 0 {
		return ""
	}

	return fmt.Sprintf("%d defined", n)
}

const displayWidth = 40

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}

	return s[:width] + "..."
}

func render(w io.Writer, format string, result *Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	default:
		return renderText(w, result)
	}
}

func renderText(w io.Writer, result *Result) error {
	if !result.Exists {
		_, err := fmt.Fprintf(w, "Datasource %q does not exist on the remote instance.\n", result.DatasourceID)

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "FIELD\tSTATUS\tLOCAL\tREMOTE"); err != nil {
		return err
	}

	for i := range result.Fields {
		f := &result.Fields[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Field, statusIcon(f.Status), orDash(f.Local), orDash(f.Remote)); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func statusIcon(s FieldStatus) string {
	switch s {
	case StatusInSync:
		return "ok"
	case StatusDrifted:
		return "DRIFT"
	case StatusLocalOnly:
		return "local-only"
	case StatusRemoteOnly:
		return "remote-only"
	default:
		return string(s)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
