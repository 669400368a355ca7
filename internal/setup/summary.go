package setup

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/gleanctl/internal/assemble"
)

// writeSummary renders the assembled configuration as an aligned two-column
// table so the user can check every resolved value before it is pushed.
func writeSummary(w io.Writer, assembled *assemble.Result) error {
	cfg := assembled.Config

	if _, err := fmt.Fprintln(w, "\nConfiguration Summary"); err != nil {
		return err
	}

	userRef := "by ID (not email)"
	if cfg.UserReferencedByEmail {
		userRef = "by email"
	}

	testMode := "no (live)"
	if cfg.IsTestMode {
		testMode = "yes (test users only)"
	}

	rows := []struct {
		name  string
		value string
	}{
		{"Display Name", cfg.DisplayName},
		{"Datasource ID", cfg.ID},
		{"Category", cfg.Category.String()},
		{"Home URL", cfg.HomeURL},
		{"URL Regex", cfg.URLRegex},
		{"Suggestion Text", cfg.SuggestionText},
		{"User Reference", userRef},
		{"Test Mode", testMode},
		{"Light Mode Icon", assembled.IconLightSource},
		{"Dark Mode Icon", assembled.IconDarkSource},
		{"Object Types", strconv.Itoa(len(cfg.ObjectTypes))},
		{"Quick Links", strconv.Itoa(len(cfg.QuickLinks))},
	}

	if len(cfg.TestUserEmails) > 0 {
		rows = append(rows, struct{ name, value string }{"Test Users", strings.Join(cfg.TestUserEmails, ", ")})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "  %s:\t%s\n", row.name, row.value); err != nil {
			return err
		}
	}

	return tw.Flush()
}
