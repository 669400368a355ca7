// Package info displays a datasource configuration fetched from the remote
// instance.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/gleanctl/internal/glean"
)

// iconWidth bounds how much of an icon data URL is shown; the base64
// payloads run to kilobytes.
const iconWidth = 40

// Opts configures the info command.
type Opts struct {
	// Remote is the fetched wire configuration.
	Remote *glean.CustomDatasourceConfig
	// DatasourceID is the ID the record was fetched under.
	DatasourceID string
	// Writer is the output destination.
	Writer io.Writer
	// OutputFormat is "text" or "json".
	OutputFormat string
}

// Run displays the fetched configuration.
func Run(opts *Opts) error {
	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, opts.Remote)
	default:
		return renderText(opts.Writer, opts)
	}
}

func renderText(w io.Writer, opts *Opts) error {
	if _, err := fmt.Fprintf(w, "Datasource Configuration: %s\n\n", opts.DatasourceID); err != nil {
		return err
	}

	if err := renderHeader(w, opts.Remote); err != nil {
		return err
	}

	if len(opts.Remote.ObjectDefinitions) > 0 {
		if _, err := fmt.Fprintln(w, "\nObject Definitions:"); err != nil {
			return err
		}

		if err := renderObjectDefinitions(w, opts.Remote.ObjectDefinitions); err != nil {
			return err
		}
	}

	return nil
}

func renderHeader(w io.Writer, cfg *glean.CustomDatasourceConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := []struct {
		label string
		value string
	}{
		{"Display Name", orNA(cfg.DisplayName)},
		{"Datasource ID", orNA(cfg.Name)},
		{"Category", orNA(cfg.DatasourceCategory)},
		{"Home URL", orNA(cfg.HomeURL)},
		{"URL Regex", orNA(cfg.URLRegex)},
		{"Suggestion Text", orNA(cfg.SuggestionText)},
		{"Icon URL (Light)", orNA(truncate(cfg.IconURL))},
		{"Icon URL (Dark)", orNA(truncate(cfg.IconDarkURL))},
		{"Test Mode", yesNo(cfg.IsTestDatasource)},
		{"User Reference", userReference(cfg.IsUserReferencedByEmail)},
		{"Object Types", strconv.Itoa(len(cfg.ObjectDefinitions))},
		{"Quick Links", strconv.Itoa(len(cfg.Quicklinks))},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row.label, row.value); err != nil {
			return err
		}
	}

	if len(cfg.CrawlerSeedURLs) > 0 {
		if _, err := fmt.Fprintf(tw, "Crawler Seed URLs:\t%s\n", strings.Join(cfg.CrawlerSeedURLs, ", ")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderObjectDefinitions(w io.Writer, objects []glean.ObjectDefinition) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "  NAME\tDISPLAY LABEL\tCATEGORY\tPROPERTIES\tGROUPS\tSUMMARIZABLE"); err != nil {
		return err
	}

	for i := range objects {
		obj := &objects[i]

		label := obj.DisplayLabel
		if label == "" {
			label = obj.Name
		}

		if _, err := fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			obj.Name,
			label,
			orNA(obj.DocCategory),
			orDash(len(obj.PropertyDefinitions)),
			orDash(len(obj.PropertyGroups)),
			yesNo(obj.Summarizable),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// renderJSON emits the wire document as the API returned it.
func renderJSON(w io.Writer, cfg *glean.CustomDatasourceConfig) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(cfg)
}

func truncate(s string) string {
	if len(s) <= iconWidth {
		return s
	}

	return s[:iconWidth] + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}

	return strconv.Itoa(n)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

func userReference(byEmail bool) string {
	if byEmail {
		return "Email"
	}

	return "ID"
}
