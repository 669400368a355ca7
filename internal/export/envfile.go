package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/donaldgifford/gleanctl/internal/datasource"
)

// envFileTemplate lays the exported variables out in the same sections the
// generated .env example uses, so a pulled file can be edited and fed
// straight back into setup. The API key is never exported; the blank value
// with the trailing comment parses as an empty string.
const envFileTemplate = `# Glean API Authentication
GLEAN_INSTANCE_NAME={{.Instance}}
GLEAN_INDEXING_API_KEY=  # redacted

# Datasource Configuration
GLEAN_DATASOURCE_DISPLAY_NAME={{.DisplayName}}
GLEAN_DATASOURCE_ID={{.ID}}
GLEAN_DATASOURCE_CATEGORY={{.Category}}
GLEAN_DATASOURCE_HOME_URL={{.HomeURL}}
GLEAN_DATASOURCE_URL_REGEX={{.URLRegex}}

# Icon Configuration
GLEAN_DATASOURCE_ICON_FILENAME_LIGHTMODE={{.IconLightFile}}
GLEAN_DATASOURCE_ICON_FILENAME_DARKMODE={{.IconDarkFile}}

# Identity Configuration
GLEAN_DATASOURCE_USER_REFERENCED_BY_EMAIL={{.UserReferencedByEmail}}

# Test Mode Configuration
GLEAN_DATASOURCE_IS_TEST_MODE={{.IsTestMode}}
# GLEAN_DATASOURCE_TEST_USER_EMAILS={{.TestUserEmails}}

# Optional Settings
GLEAN_DATASOURCE_SUGGESTION_TEXT={{.SuggestionText}}
`

type envFileData struct {
	Instance              string
	DisplayName           string
	ID                    string
	Category              string
	HomeURL               string
	URLRegex              string
	IconLightFile         string
	IconDarkFile          string
	UserReferencedByEmail bool
	IsTestMode            bool
	TestUserEmails        string
	SuggestionText        string
}

func renderEnvFile(cfg *datasource.Config, instance, iconLight, iconDark string) ([]byte, error) {
	tmpl, err := template.New("envfile").Parse(envFileTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing env file template: %w", err)
	}

	data := envFileData{
		Instance:              instance,
		DisplayName:           cfg.DisplayName,
		ID:                    cfg.ID,
		Category:              cfg.Category.RemoteTag(),
		HomeURL:               cfg.HomeURL,
		URLRegex:              cfg.URLRegex,
		IconLightFile:         iconLight,
		IconDarkFile:          iconDark,
		UserReferencedByEmail: cfg.UserReferencedByEmail,
		IsTestMode:            cfg.IsTestMode,
		TestUserEmails:        strings.Join(cfg.TestUserEmails, ","),
		SuggestionText:        cfg.SuggestionText,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering env file: %w", err)
	}

	return buf.Bytes(), nil
}
