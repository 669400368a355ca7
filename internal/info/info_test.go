package info_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/info"
)

func sampleRemote() *glean.CustomDatasourceConfig {
	return &glean.CustomDatasourceConfig{
		Name:                    "backstage",
		DisplayName:             "Backstage",
		DatasourceCategory:      "KNOWLEDGE_HUB",
		HomeURL:                 "https://backstage.example.com",
		URLRegex:                "https://backstage.example.com/.*",
		SuggestionText:          "Search for anything in Backstage...",
		IconURL:                 "data:image/png;base64," + strings.Repeat("A", 100),
		IsUserReferencedByEmail: true,
		IsTestDatasource:        true,
		ObjectDefinitions: []glean.ObjectDefinition{
			{
				Name:         "service",
				DisplayLabel: "Service",
				DocCategory:  "KNOWLEDGE_HUB",
				Summarizable: true,
				PropertyDefinitions: []glean.PropertyDefinition{
					{Name: "owner", DisplayLabel: "Owner", PropertyType: "USERID"},
				},
			},
			{Name: "api"},
		},
		Quicklinks: []glean.Quicklink{
			{Name: "Create", ID: "create", URL: "https://backstage.example.com/create"},
		},
	}
}

func TestRun_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := &info.Opts{
		Remote:       sampleRemote(),
		DatasourceID: "backstage",
		Writer:       &buf,
		OutputFormat: "text",
	}

	err := info.Run(opts)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Datasource Configuration: backstage")
	assert.Contains(t, output, "Backstage")
	assert.Contains(t, output, "KNOWLEDGE_HUB")
	assert.Contains(t, output, "https://backstage.example.com/.*")
	assert.Contains(t, output, "Test Mode:")
	assert.Contains(t, output, "Email")
	assert.Contains(t, output, "Object Definitions:")
	assert.Contains(t, output, "service")
	assert.NotContains(t, output, strings.Repeat("A", 50), "icon data URLs are truncated")
	assert.Contains(t, output, "...")
}

func TestRun_TextDefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := &info.Opts{
		Remote:       &glean.CustomDatasourceConfig{Name: "bare"},
		DatasourceID: "bare",
		Writer:       &buf,
		OutputFormat: "text",
	}

	err := info.Run(opts)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "N/A")
	assert.Contains(t, output, "Test Mode:")
	assert.NotContains(t, output, "Object Definitions:")
}

func TestRun_ObjectTableFallbacks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := &info.Opts{
		Remote:       sampleRemote(),
		DatasourceID: "backstage",
		Writer:       &buf,
		OutputFormat: "text",
	}

	require.NoError(t, info.Run(opts))

	// The "api" object has no display label, doc category, or properties.
	lines := strings.Split(buf.String(), "\n")

	var apiRow string

	for _, line := range lines {
		if strings.Contains(line, "api") && !strings.Contains(line, "service") {
			apiRow = line

			break
		}
	}

	require.NotEmpty(t, apiRow)
	assert.Contains(t, apiRow, "N/A")
	assert.Contains(t, apiRow, "-")
	assert.Contains(t, apiRow, "No")
}

func TestRun_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := &info.Opts{
		Remote:       sampleRemote(),
		DatasourceID: "backstage",
		Writer:       &buf,
		OutputFormat: "json",
	}

	err := info.Run(opts)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "backstage", result["name"])
	assert.Equal(t, "Backstage", result["displayName"])
	assert.Equal(t, true, result["isTestDatasource"])

	// JSON mode emits the full wire document, icons untruncated.
	icon, ok := result["iconUrl"].(string)
	require.True(t, ok)
	assert.Contains(t, icon, strings.Repeat("A", 100))
}
