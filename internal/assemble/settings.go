package assemble

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables read by LoadSettings. The GLEAN_DATASOURCE_ prefix
// marks per-datasource fields; the two unprefixed keys are API credentials.
const (
	EnvAPIKey      = "GLEAN_INDEXING_API_KEY"
	EnvInstance    = "GLEAN_INSTANCE_NAME"
	EnvDisplayName = "GLEAN_DATASOURCE_DISPLAY_NAME"
	EnvID          = "GLEAN_DATASOURCE_ID"
	EnvCategory    = "GLEAN_DATASOURCE_CATEGORY"
	EnvHomeURL     = "GLEAN_DATASOURCE_HOME_URL"
	EnvURLRegex    = "GLEAN_DATASOURCE_URL_REGEX"

	EnvIconFileLight = "GLEAN_DATASOURCE_ICON_FILENAME_LIGHTMODE"
	EnvIconURLLight  = "GLEAN_DATASOURCE_ICON_URL_LIGHTMODE"
	EnvIconFileDark  = "GLEAN_DATASOURCE_ICON_FILENAME_DARKMODE"
	EnvIconURLDark   = "GLEAN_DATASOURCE_ICON_URL_DARKMODE"

	EnvUserReferencedByEmail = "GLEAN_DATASOURCE_USER_REFERENCED_BY_EMAIL"
	EnvIsTestMode            = "GLEAN_DATASOURCE_IS_TEST_MODE"
	EnvTestUserEmails        = "GLEAN_DATASOURCE_TEST_USER_EMAILS"
	EnvSuggestionText        = "GLEAN_DATASOURCE_SUGGESTION_TEXT"
)

var envKeys = []string{
	EnvAPIKey,
	EnvInstance,
	EnvDisplayName,
	EnvID,
	EnvCategory,
	EnvHomeURL,
	EnvURLRegex,
	EnvIconFileLight,
	EnvIconURLLight,
	EnvIconFileDark,
	EnvIconURLDark,
	EnvUserReferencedByEmail,
	EnvIsTestMode,
	EnvTestUserEmails,
	EnvSuggestionText,
}

// EnvKeys returns every environment variable LoadSettings reads.
func EnvKeys() []string {
	keys := make([]string, len(envKeys))
	copy(keys, envKeys)

	return keys
}

// Settings is the raw environment view of a datasource configuration,
// before validation and fallback resolution.
type Settings struct {
	APIKey   string
	Instance string

	DisplayName string
	ID          string
	Category    string
	HomeURL     string
	URLRegex    string

	IconFileLight string
	IconURLLight  string
	IconFileDark  string
	IconURLDark   string

	UserReferencedByEmail bool
	IsTestMode            bool
	TestUserEmails        string
	SuggestionText        string
}

// LoadOpts configures settings loading.
type LoadOpts struct {
	// Dir is the directory holding conventional files. Empty means the
	// current directory.
	Dir string

	// EnvFile is an explicit env file to load. When empty, a ".env" in Dir
	// is loaded if present. An explicit file that cannot be read is an
	// error; a missing conventional one is not.
	EnvFile string
}

// LoadSettings reads raw settings from the process environment and an env
// file. Variables already set in the environment win over file values:
// godotenv never overwrites an existing variable.
func LoadSettings(opts LoadOpts) (*Settings, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", opts.EnvFile, err)
		}
	} else {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}

	v := viper.New()
	v.AutomaticEnv()

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetDefault(EnvUserReferencedByEmail, true)
	v.SetDefault(EnvIsTestMode, true)

	return &Settings{
		APIKey:   v.GetString(EnvAPIKey),
		Instance: v.GetString(EnvInstance),

		DisplayName: v.GetString(EnvDisplayName),
		ID:          v.GetString(EnvID),
		Category:    v.GetString(EnvCategory),
		HomeURL:     v.GetString(EnvHomeURL),
		URLRegex:    v.GetString(EnvURLRegex),

		IconFileLight: v.GetString(EnvIconFileLight),
		IconURLLight:  v.GetString(EnvIconURLLight),
		IconFileDark:  v.GetString(EnvIconFileDark),
		IconURLDark:   v.GetString(EnvIconURLDark),

		UserReferencedByEmail: v.GetBool(EnvUserReferencedByEmail),
		IsTestMode:            v.GetBool(EnvIsTestMode),
		TestUserEmails:        v.GetString(EnvTestUserEmails),
		SuggestionText:        v.GetString(EnvSuggestionText),
	}, nil
}
