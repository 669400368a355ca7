package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/prompt"
	"github.com/donaldgifford/gleanctl/internal/ui"
)

// Legacy underscore-named icon files from older setups are still offered
// when found next to the conventional ones.
const (
	legacyLightIconGlob = "icon_lightmode.*"
	legacyDarkIconGlob  = "icon_darkmode.*"
)

// runWizard walks the user through every datasource question and returns a
// settings copy with the answers filled in. Fields with assembly-time
// fallbacks (URL regex, suggestion text) are left empty unless the user
// overrides them; credentials are only asked for when the environment did
// not provide them.
func runWizard(p *prompt.Prompter, w *ui.Writer, out io.Writer, base *assemble.Settings, dir string) (*assemble.Settings, error) {
	s := *base

	for {
		name, err := p.AskRequired(`What is the name of the datasource? This will be shown to users in the UI, e.g. "Intranet" or "Backstage Catalog"`)
		if err != nil {
			return nil, err
		}

		if err := datasource.ValidateDisplayName(name); err != nil {
			w.Error(err.Error())

			continue
		}

		s.DisplayName = name

		break
	}

	id, err := collectID(p, w, s.DisplayName)
	if err != nil {
		return nil, err
	}

	s.ID = id

	category, err := selectCategory(p, out)
	if err != nil {
		return nil, err
	}

	s.Category = category.String()

	if err := collectIcons(p, w, &s, dir); err != nil {
		return nil, err
	}

	for {
		homeURL, err := p.AskRequired("What is the URL of the home page of the app, e.g. https://myapp.com/dashboard")
		if err != nil {
			return nil, err
		}

		if err := datasource.ValidateHomeURL(homeURL); err != nil {
			w.Error(err.Error())

			continue
		}

		s.HomeURL = homeURL

		break
	}

	sameDomain, err := p.Confirm("Are documents in this datasource accessed at the same domain as the home page?", true)
	if err != nil {
		return nil, err
	}

	// The same-domain answer keeps URLRegex empty so assembly derives the
	// pattern from the home URL's origin.
	if !sameDomain {
		baseURL, err := p.AskRequired("Enter the base URL for documents")
		if err != nil {
			return nil, err
		}

		if strings.HasSuffix(baseURL, "/*") {
			s.URLRegex = baseURL
		} else {
			s.URLRegex = baseURL + "/.*"
		}
	}

	byEmail, err := p.Confirm("Are users referenced by email in this data source?", true)
	if err != nil {
		return nil, err
	}

	s.UserReferencedByEmail = byEmail

	testMode, err := p.Confirm("Start in test mode, visible to test users only (recommended)?", true)
	if err != nil {
		return nil, err
	}

	s.IsTestMode = testMode

	if testMode {
		emails, err := p.Ask("Test user emails (comma-separated, or press Enter to skip)")
		if err != nil {
			return nil, err
		}

		s.TestUserEmails = emails
	}

	if s.APIKey == "" {
		w.Warningf("%s not found in environment", assemble.EnvAPIKey)

		key, err := p.AskRequired("Enter your Glean indexing API token")
		if err != nil {
			return nil, err
		}

		s.APIKey = key
	}

	if s.Instance == "" {
		w.Warningf("%s not found in environment", assemble.EnvInstance)

		instance, err := p.AskRequired("Enter your Glean instance name, e.g. mycompany")
		if err != nil {
			return nil, err
		}

		s.Instance = instance
	}

	return &s, nil
}

// collectID suggests the normalized display name as the datasource ID and
// lets the user replace it with a custom slug.
func collectID(p *prompt.Prompter, w *ui.Writer, displayName string) (string, error) {
	suggested := datasource.NormalizeID(displayName)
	w.Infof("The following ID will be used to reference the datasource in the index: %s", suggested)

	ok, err := p.Confirm("Is this OK?", true)
	if err != nil {
		return "", err
	}

	if ok {
		return suggested, nil
	}

	for {
		id, err := p.AskRequired("Enter a custom datasource ID (lowercase letters, numbers, and hyphens only)")
		if err != nil {
			return "", err
		}

		if err := datasource.ValidateID(id); err != nil {
			w.Error(err.Error())

			continue
		}

		return id, nil
	}
}

func selectCategory(p *prompt.Prompter, out io.Writer) (datasource.Category, error) {
	usable := datasource.UsableCategories()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "What category best describes the datasource?")
	fmt.Fprintln(out)

	for i, cat := range usable {
		fmt.Fprintf(out, "%2d. %s\n", i+1, cat)
		fmt.Fprintf(out, "    %s\n\n", cat.Description())
	}

	choice, err := p.AskInt(fmt.Sprintf("Select a category (1-%d)", len(usable)), 1, len(usable), 1)
	if err != nil {
		return "", err
	}

	return usable[choice-1], nil
}

// collectIcons offers conventional and legacy icon files found in dir, then
// falls back to asking for URLs. Accepting a conventional file stores
// nothing: assembly picks it up on its own.
func collectIcons(p *prompt.Prompter, w *ui.Writer, s *assemble.Settings, dir string) error {
	configured, err := offerIconFiles(p, w, dir, assemble.DefaultLightIconFile, legacyLightIconGlob, &s.IconFileLight)
	if err != nil {
		return err
	}

	if !configured {
		w.Warning("No light mode icon file found.")

		answer, err := p.Ask("Enter light mode icon URL (or press Enter to skip)")
		if err != nil {
			return err
		}

		switch {
		case answer == "":
		case strings.HasPrefix(answer, "http"):
			s.IconURLLight = answer
			configured = true
		default:
			w.Error("Invalid URL format. Must start with http:// or https://")
		}

		if !configured {
			w.Warningf(
				"No icon configured. Provide one of: a %q file in the working directory, %s, or %s",
				assemble.DefaultLightIconFile, assemble.EnvIconFileLight, assemble.EnvIconURLLight,
			)
		}
	}

	configured, err = offerIconFiles(p, w, dir, assemble.DefaultDarkIconFile, legacyDarkIconGlob, &s.IconFileDark)
	if err != nil {
		return err
	}

	if !configured {
		answer, err := p.Ask("Dark mode icon URL (or press Enter to use the light mode icon)")
		if err != nil {
			return err
		}

		switch {
		case answer == "":
		case strings.HasPrefix(answer, "http"):
			s.IconURLDark = answer
		default:
			w.Error("Invalid URL. Dark mode will use the light mode icon.")
		}
	}

	return nil
}

// offerIconFiles checks for the conventional icon file and then legacy
// underscore-named ones, asking before using either. The conventional file
// needs no setting; a legacy file is stored into target.
func offerIconFiles(p *prompt.Prompter, w *ui.Writer, dir, defaultFile, legacyGlob string, target *string) (bool, error) {
	if fileExists(filepath.Join(dir, defaultFile)) {
		use, err := p.Confirm(fmt.Sprintf("Found default icon file: %s. Use this?", defaultFile), true)
		if err != nil {
			return false, err
		}

		if use {
			w.Successf("Using default file: %s", defaultFile)

			return true, nil
		}

		return false, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, legacyGlob))
	if err != nil || len(matches) == 0 {
		return false, nil
	}

	name := filepath.Base(matches[0])

	use, err := p.Confirm(fmt.Sprintf("Found icon file: %s. Use this?", name), true)
	if err != nil {
		return false, err
	}

	if !use {
		return false, nil
	}

	*target = name
	w.Successf("Using file: %s", name)

	return true, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
