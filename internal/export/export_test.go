package export_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/export"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/icon"
)

func remoteConfig() *glean.CustomDatasourceConfig {
	return &glean.CustomDatasourceConfig{
		Name:                    "backstage",
		DisplayName:             "Backstage",
		DatasourceCategory:      "TICKETS",
		URLRegex:                "https://backstage.example.com/.*",
		IconURL:                 icon.DataURL(icon.MIMEPNG, []byte("light")),
		IconDarkURL:             icon.DataURL(icon.MIMESVG, []byte("<svg/>")),
		HomeURL:                 "https://backstage.example.com",
		SuggestionText:          "Search for anything in Backstage...",
		IsUserReferencedByEmail: true,
		IsTestDatasource:        true,
	}
}

func TestFromWire_MapsFields(t *testing.T) {
	t.Parallel()

	cfg, err := export.FromWire(remoteConfig())
	require.NoError(t, err)

	assert.Equal(t, "backstage", cfg.ID)
	assert.Equal(t, "Backstage", cfg.DisplayName)
	assert.Equal(t, datasource.CategoryTickets, cfg.Category)
	assert.Equal(t, "https://backstage.example.com", cfg.HomeURL)
	assert.Equal(t, "https://backstage.example.com/.*", cfg.URLRegex)
	assert.Equal(t, icon.DataURL(icon.MIMEPNG, []byte("light")), cfg.IconLightmode)
	assert.True(t, cfg.UserReferencedByEmail)
	assert.True(t, cfg.IsTestMode)
	assert.Empty(t, cfg.TestUserEmails, "test emails are not carried on the wire")
}

func TestFromWire_EmptyCategoryDefaults(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.DatasourceCategory = ""

	cfg, err := export.FromWire(remote)
	require.NoError(t, err)
	assert.Equal(t, datasource.CategoryKnowledgeHub, cfg.Category)
}

func TestFromWire_UnknownCategoryTag(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.DatasourceCategory = "HOLOGRAMS"

	_, err := export.FromWire(remote)

	var mapErr *datasource.MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, "HOLOGRAMS", mapErr.Tag)
}

func TestFromWire_UnknownDocCategoryTag(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.ObjectDefinitions = []glean.ObjectDefinition{{Name: "Thing", DocCategory: "HOLOGRAMS"}}

	_, err := export.FromWire(remote)

	var mapErr *datasource.MappingError
	require.ErrorAs(t, err, &mapErr)
}

func TestFromWire_ObjectDefaults(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.ObjectDefinitions = []glean.ObjectDefinition{
		{Name: "Article"},
		{Name: "Page", DisplayLabel: "Wiki Page", DocCategory: "PUBLISHED_CONTENT", Summarizable: true},
	}

	cfg, err := export.FromWire(remote)
	require.NoError(t, err)
	require.Len(t, cfg.ObjectTypes, 2)

	assert.Equal(t, "Article", cfg.ObjectTypes[0].DisplayLabel, "display label defaults to name")
	assert.Equal(t, "KNOWLEDGE_HUB", cfg.ObjectTypes[0].DocCategory)
	assert.False(t, cfg.ObjectTypes[0].Summarizable)

	assert.Equal(t, "Wiki Page", cfg.ObjectTypes[1].DisplayLabel)
	assert.Equal(t, "PUBLISHED_CONTENT", cfg.ObjectTypes[1].DocCategory)
	assert.True(t, cfg.ObjectTypes[1].Summarizable)
}

func TestFromWire_DropsEmptyQuickLinks(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.Quicklinks = []glean.Quicklink{
		{},
		{IconConfig: &glean.IconConfig{}},
		{Name: "Docs", URL: "https://backstage.example.com/docs"},
	}

	cfg, err := export.FromWire(remote)
	require.NoError(t, err)
	require.Len(t, cfg.QuickLinks, 1)
	assert.Equal(t, "Docs", cfg.QuickLinks[0].Name)
	assert.Nil(t, cfg.QuickLinks[0].IconConfig)
}

func TestRun_WritesAllArtifacts(t *testing.T) {
	t.Parallel()

	order := 1
	masked := true
	remote := remoteConfig()
	remote.ObjectDefinitions = []glean.ObjectDefinition{
		{
			Name:         "Article",
			DisplayLabel: "Article",
			DocCategory:  "PUBLISHED_CONTENT",
			Summarizable: true,
			PropertyDefinitions: []glean.PropertyDefinition{
				{Name: "author", DisplayLabel: "Author", PropertyType: "USERID", UIFacetOrder: &order},
			},
			PropertyGroups: []glean.PropertyGroup{{Name: "people", DisplayLabel: "People"}},
		},
	}
	remote.Quicklinks = []glean.Quicklink{
		{
			Name:       "Create Ticket",
			ShortName:  "ticket",
			URL:        "https://backstage.example.com/new",
			ID:         "create-ticket",
			IconConfig: &glean.IconConfig{IconType: "GLYPH", Name: "plus", Masked: &masked},
			Scopes:     []string{"APP_CARD"},
		},
	}

	parent := t.TempDir()

	manifest, err := export.Run(remote, &export.Opts{Dir: parent, Instance: "mycompany"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(parent, "backstage-config"), manifest.Dir)
	assert.Equal(t, "backstage.env", manifest.EnvFile)
	assert.Equal(t, "object_types.json", manifest.ObjectTypesFile)
	assert.Equal(t, "quick_links.json", manifest.QuickLinksFile)
	assert.Equal(t, "icon-lightmode.png", manifest.IconLightFile)
	assert.Equal(t, "icon-darkmode.svg", manifest.IconDarkFile)
	assert.Equal(t, []string{
		"backstage.env", "object_types.json", "quick_links.json", "icon-lightmode.png", "icon-darkmode.svg",
	}, manifest.Files())

	lightBytes, err := os.ReadFile(filepath.Join(manifest.Dir, "icon-lightmode.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("light"), lightBytes, "icons are decoded back to raw bytes")

	var objDoc datasource.ObjectTypesFile

	objBytes, err := os.ReadFile(filepath.Join(manifest.Dir, "object_types.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(objBytes, &objDoc))
	require.Len(t, objDoc.ObjectTypes, 1)
	assert.Equal(t, "PUBLISHED_CONTENT", objDoc.ObjectTypes[0].DocCategory)
	require.NotNil(t, objDoc.ObjectTypes[0].PropertyDefinitions[0].UIFacetOrder)
	assert.Equal(t, 1, *objDoc.ObjectTypes[0].PropertyDefinitions[0].UIFacetOrder)

	var qlDoc datasource.QuickLinksFile

	qlBytes, err := os.ReadFile(filepath.Join(manifest.Dir, "quick_links.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(qlBytes, &qlDoc))
	require.Len(t, qlDoc.QuickLinks, 1)
	assert.Equal(t, "create-ticket", qlDoc.QuickLinks[0].ID)
	require.NotNil(t, qlDoc.QuickLinks[0].IconConfig)
	require.NotNil(t, qlDoc.QuickLinks[0].IconConfig.Masked)
	assert.True(t, *qlDoc.QuickLinks[0].IconConfig.Masked)
}

func TestRun_EnvFileRedactsAPIKey(t *testing.T) {
	t.Parallel()

	manifest, err := export.Run(remoteConfig(), &export.Opts{Dir: t.TempDir(), Instance: "mycompany"})
	require.NoError(t, err)

	vars, err := godotenv.Read(filepath.Join(manifest.Dir, manifest.EnvFile))
	require.NoError(t, err)

	assert.Empty(t, vars["GLEAN_INDEXING_API_KEY"], "the API key never leaves the environment")
	assert.Equal(t, "mycompany", vars["GLEAN_INSTANCE_NAME"])
	assert.Equal(t, "Backstage", vars["GLEAN_DATASOURCE_DISPLAY_NAME"])
	assert.Equal(t, "backstage", vars["GLEAN_DATASOURCE_ID"])
	assert.Equal(t, "TICKETS", vars["GLEAN_DATASOURCE_CATEGORY"])
	assert.Equal(t, "icon-lightmode.png", vars["GLEAN_DATASOURCE_ICON_FILENAME_LIGHTMODE"])
	assert.Equal(t, "icon-darkmode.svg", vars["GLEAN_DATASOURCE_ICON_FILENAME_DARKMODE"])
	assert.Equal(t, "true", vars["GLEAN_DATASOURCE_IS_TEST_MODE"])
	assert.NotContains(t, vars, "GLEAN_DATASOURCE_TEST_USER_EMAILS", "emails line stays commented out")
}

func TestRun_OmitsEmptyAuxiliaryFiles(t *testing.T) {
	t.Parallel()

	manifest, err := export.Run(remoteConfig(), &export.Opts{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, manifest.ObjectTypesFile)
	assert.Empty(t, manifest.QuickLinksFile)
	assert.NoFileExists(t, filepath.Join(manifest.Dir, "object_types.json"))
	assert.NoFileExists(t, filepath.Join(manifest.Dir, "quick_links.json"))
}

func TestRun_MappingErrorBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.DatasourceCategory = "HOLOGRAMS"
	parent := t.TempDir()

	manifest, err := export.Run(remote, &export.Opts{Dir: parent})

	var mapErr *datasource.MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Nil(t, manifest)
	assert.NoDirExists(t, filepath.Join(parent, "backstage-config"))
}

func TestRun_BadIconIsIsolated(t *testing.T) {
	t.Parallel()

	remote := remoteConfig()
	remote.IconURL = "data:image/png;base64,!!!not-base64!!!"

	manifest, err := export.Run(remote, &export.Opts{Dir: t.TempDir()})
	require.Error(t, err)

	var partial *export.PartialError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Failures, 1)
	assert.Equal(t, "lightmode icon", partial.Failures[0].Artifact)

	// Everything else still lands, and the env file falls back to the
	// conventional light icon name.
	require.NotNil(t, manifest)
	assert.Empty(t, manifest.IconLightFile)
	assert.Equal(t, "icon-darkmode.svg", manifest.IconDarkFile)
	assert.Equal(t, "backstage.env", manifest.EnvFile)

	vars, err := godotenv.Read(filepath.Join(manifest.Dir, manifest.EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "icon-lightmode.png", vars["GLEAN_DATASOURCE_ICON_FILENAME_LIGHTMODE"])
}

func TestRun_OverwriteIsIdempotent(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()

	first, err := export.Run(remoteConfig(), &export.Opts{Dir: parent, Instance: "mycompany"})
	require.NoError(t, err)

	second, err := export.Run(remoteConfig(), &export.Opts{Dir: parent, Instance: "mycompany"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstEnv, err := os.ReadFile(filepath.Join(first.Dir, first.EnvFile))
	require.NoError(t, err)

	secondEnv, err := os.ReadFile(filepath.Join(second.Dir, second.EnvFile))
	require.NoError(t, err)
	assert.Equal(t, firstEnv, secondEnv)
}

func TestRun_NilRemote(t *testing.T) {
	t.Parallel()

	_, err := export.Run(nil, &export.Opts{Dir: t.TempDir()})
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*export.PartialError)))
}
