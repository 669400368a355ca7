// Package categories implements the category listing command.
package categories

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/gleanctl/internal/datasource"
)

// Opts configures the categories operation.
type Opts struct {
	// All includes the categories that cannot be selected for new custom
	// datasources.
	All bool
	// OutputFormat is "table" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
}

// CategoryInfo represents one category in list output.
type CategoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Selectable  bool   `json:"selectable"`
}

// Run lists the datasource categories.
func Run(opts *Opts) error {
	infos := collect(opts.All)

	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, infos)
	default:
		return renderTable(opts.Writer, infos)
	}
}

func collect(all bool) []CategoryInfo {
	cats := datasource.UsableCategories()
	if all {
		cats = datasource.Categories()
	}

	infos := make([]CategoryInfo, 0, len(cats))

	for _, cat := range cats {
		infos = append(infos, CategoryInfo{
			Name:        cat.String(),
			Description: cat.Description(),
			Selectable:  !cat.Disallowed(),
		})
	}

	return infos
}

func renderTable(w io.Writer, infos []CategoryInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "CATEGORY\tDESCRIPTION"); err != nil {
		return err
	}

	for i := range infos {
		info := &infos[i]

		name := info.Name
		if !info.Selectable {
			name += " (not selectable)"
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\n", name, info.Description); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, infos []CategoryInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(infos)
}
