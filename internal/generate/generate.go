// Package generate writes starter configuration files: an example env file
// and sample object type and quick link definitions shaped like the files
// the assembler reads.
package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/donaldgifford/gleanctl/internal/assemble"
	"github.com/donaldgifford/gleanctl/internal/datasource"
)

// ExampleEnvFileName is the name of the generated env template. The suffix
// keeps it from being picked up as a real .env file until the user renames
// it.
const ExampleEnvFileName = ".env.setup.example"

// Opts configures the generate operation.
type Opts struct {
	// Dir is the directory to write into. Empty means the current
	// directory.
	Dir string
	// Force overwrites an existing file instead of failing.
	Force bool
}

const envTemplate = `# Glean API Authentication
GLEAN_INSTANCE_NAME=your-glean-instance-name  # e.g. mycompany-prod, if your Glean backend domain is https://mycompany-prod-be.glean.com
GLEAN_INDEXING_API_KEY=your-glean-indexing-api-token


# Datasource Configuration
GLEAN_DATASOURCE_DISPLAY_NAME=My Application
GLEAN_DATASOURCE_ID=my-application
GLEAN_DATASOURCE_CATEGORY=KNOWLEDGE_HUB
GLEAN_DATASOURCE_HOME_URL=https://myapp.com/dashboard
GLEAN_DATASOURCE_URL_REGEX=https://myapp.com/.*

# Icon Configuration
# Default: Place icon-lightmode.png and icon-darkmode.png in current directory
# Or use one of these options:
# GLEAN_DATASOURCE_ICON_FILENAME_LIGHTMODE=path/to/icon-light.png
# GLEAN_DATASOURCE_ICON_URL_LIGHTMODE=https://myapp.com/logo.png
# GLEAN_DATASOURCE_ICON_FILENAME_DARKMODE=path/to/icon-dark.png
# GLEAN_DATASOURCE_ICON_URL_DARKMODE=https://myapp.com/logo-dark.png

# Identity Configuration
GLEAN_DATASOURCE_USER_REFERENCED_BY_EMAIL=true

# Test Mode Configuration
GLEAN_DATASOURCE_IS_TEST_MODE=true
GLEAN_DATASOURCE_TEST_USER_EMAILS=user1@company.com,user2@company.com

# Optional Settings
GLEAN_DATASOURCE_SUGGESTION_TEXT=Search for engineering docs...
`

// EnvFile writes the example env template and returns its path.
func EnvFile(opts *Opts) (string, error) {
	path, err := targetPath(opts, ExampleEnvFileName)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(envTemplate), 0o644); err != nil { //nolint:gosec // template holds no secrets
		return "", fmt.Errorf("writing %s: %w", ExampleEnvFileName, err)
	}

	return path, nil
}

// ObjectTypes writes a sample object_types.json and returns its path.
func ObjectTypes(opts *Opts) (string, error) {
	path, err := targetPath(opts, assemble.ObjectTypesFileName)
	if err != nil {
		return "", err
	}

	if err := writeJSON(path, sampleObjectTypes()); err != nil {
		return "", fmt.Errorf("writing %s: %w", assemble.ObjectTypesFileName, err)
	}

	return path, nil
}

// QuickLinks writes a sample quick_links.json and returns its path.
func QuickLinks(opts *Opts) (string, error) {
	path, err := targetPath(opts, assemble.QuickLinksFileName)
	if err != nil {
		return "", err
	}

	if err := writeJSON(path, sampleQuickLinks()); err != nil {
		return "", fmt.Errorf("writing %s: %w", assemble.QuickLinksFileName, err)
	}

	return path, nil
}

// targetPath joins dir and name, creating dir as needed, and fails when the
// file already exists unless Force is set.
func targetPath(opts *Opts, name string) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	return path, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	data = append(data, '\n')

	return os.WriteFile(path, data, 0o644) //nolint:gosec // sample definitions are not sensitive
}

// sampleObjectTypes covers the common content types of an intranet-style
// datasource, including one fully specified object with custom properties.
func sampleObjectTypes() datasource.ObjectTypesFile {
	return datasource.ObjectTypesFile{
		ObjectTypes: []datasource.ObjectDefinition{
			{
				Name:         "article",
				DisplayLabel: "News/Articles",
				DocCategory:  "PUBLISHED_CONTENT",
				Summarizable: true,
				PropertyDefinitions: []datasource.PropertyDefinition{
					{Name: "author", DisplayLabel: "Author", PropertyType: "USERID"},
					{Name: "publishDate", DisplayLabel: "Publish Date", PropertyType: "DATE"},
					{Name: "category", DisplayLabel: "Category", PropertyType: "PICKLIST", UIOptions: "SEARCH_RESULT"},
					{Name: "tags", DisplayLabel: "Tags", DisplayLabelPlural: "Tags", PropertyType: "TEXTLIST"},
				},
				PropertyGroups: []datasource.PropertyGroup{
					{Name: "metadata", DisplayLabel: "Article Metadata"},
				},
			},
			{Name: "site", DisplayLabel: "Site", DocCategory: "KNOWLEDGE_HUB"},
			{Name: "page", DisplayLabel: "Page", DocCategory: "KNOWLEDGE_HUB"},
			{Name: "event", DisplayLabel: "Event", DocCategory: "PUBLISHED_CONTENT", Summarizable: true},
			{Name: "announcement", DisplayLabel: "Announcement", DocCategory: "PUBLISHED_CONTENT"},
			{Name: "question", DisplayLabel: "FAQ", DocCategory: "QUESTION_ANSWER", Summarizable: true},
			{Name: "ticket", DisplayLabel: "Ticket", DocCategory: "TICKETS", Summarizable: true},
			{Name: "document", DisplayLabel: "Files", DocCategory: "COLLABORATIVE_CONTENT", Summarizable: true},
			{Name: "folder", DisplayLabel: "Repository", DocCategory: "COLLABORATIVE_CONTENT"},
		},
	}
}

func sampleQuickLinks() datasource.QuickLinksFile {
	return datasource.QuickLinksFile{
		QuickLinks: []datasource.QuickLink{
			{
				Name:       "Create New Issue",
				ShortName:  "New Issue",
				URL:        "https://backstage.example.com/catalog/create",
				ID:         "create-issue",
				IconConfig: &datasource.IconConfig{IconType: "GLYPH", Name: "plus-circle", Color: "#343CED"},
				Scopes:     []string{"APP_CARD", "AUTOCOMPLETE_EXACT_MATCH"},
			},
			{
				Name:       "View All Entities",
				ShortName:  "All Entities",
				URL:        "https://backstage.example.com/catalog",
				ID:         "view-all",
				IconConfig: &datasource.IconConfig{IconType: "GLYPH", Name: "list", Color: "#28A745"},
				Scopes:     []string{"APP_CARD", "AUTOCOMPLETE_FUZZY_MATCH", "NEW_TAB_PAGE"},
			},
			{
				Name:       "Search Documentation",
				ShortName:  "Search Docs",
				URL:        "https://backstage.example.com/docs/search",
				ID:         "search-docs",
				IconConfig: &datasource.IconConfig{IconType: "GLYPH", Name: "search", Color: "#6C757D"},
				Scopes:     []string{"AUTOCOMPLETE_ZERO_QUERY", "AUTOCOMPLETE_FUZZY_MATCH"},
			},
		},
	}
}
