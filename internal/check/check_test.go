package check_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/gleanctl/internal/check"
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
	"github.com/donaldgifford/gleanctl/internal/sync"
)

type fakeClient struct {
	remote *glean.CustomDatasourceConfig
	getErr error

	probedID string
}

func (f *fakeClient) GetDatasourceConfig(_ context.Context, id string) (*glean.CustomDatasourceConfig, error) {
	f.probedID = id

	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.remote, nil
}

func (f *fakeClient) AddDatasource(_ context.Context, _ *glean.CustomDatasourceConfig) error {
	return nil
}

func localConfig() *datasource.Config {
	return &datasource.Config{
		DisplayName:           "Backstage",
		ID:                    "backstage",
		Category:              datasource.CategoryKnowledgeHub,
		HomeURL:               "https://backstage.example.com",
		URLRegex:              "https://backstage.example.com/.*",
		IconLightmode:         "data:image/png;base64,bGlnaHQ=",
		IconDarkmode:          "data:image/png;base64,ZGFyaw==",
		SuggestionText:        "Search for anything in Backstage...",
		UserReferencedByEmail: true,
		IsTestMode:            true,
		ObjectTypes: []datasource.ObjectDefinition{
			{Name: "service", DisplayLabel: "Service", Summarizable: true},
		},
	}
}

func fieldByName(t *testing.T, fields []check.FieldDrift, name string) check.FieldDrift {
	t.Helper()

	for _, f := range fields {
		if f.Field == name {
			return f
		}
	}

	t.Fatalf("field %q not found in result", name)

	return check.FieldDrift{}
}

func TestRun_InSync(t *testing.T) {
	t.Parallel()

	cfg := localConfig()
	client := &fakeClient{remote: sync.ToWire(cfg)}
	out := &bytes.Buffer{}

	res, err := check.Run(context.Background(), &check.Opts{Config: cfg, Client: client, Writer: out})
	require.NoError(t, err)

	assert.True(t, res.Exists)
	assert.True(t, res.InSync)
	assert.Equal(t, "backstage", client.probedID)

	for _, f := range res.Fields {
		assert.Equal(t, check.StatusInSync, f.Status, "field %s", f.Field)
	}

	assert.Contains(t, out.String(), "FIELD")
	assert.NotContains(t, out.String(), "DRIFT")
}

func TestRun_DetectsDrift(t *testing.T) {
	t.Parallel()

	cfg := localConfig()

	remote := sync.ToWire(cfg)
	remote.DisplayName = "Backstage Catalog"
	remote.IsTestDatasource = false
	remote.ObjectDefinitions = nil

	client := &fakeClient{remote: remote}
	out := &bytes.Buffer{}

	res, err := check.Run(context.Background(), &check.Opts{Config: cfg, Client: client, Writer: out})
	require.NoError(t, err)

	assert.True(t, res.Exists)
	assert.False(t, res.InSync)

	name := fieldByName(t, res.Fields, "Display Name")
	assert.Equal(t, check.StatusDrifted, name.Status)
	assert.Equal(t, "Backstage", name.Local)
	assert.Equal(t, "Backstage Catalog", name.Remote)

	mode := fieldByName(t, res.Fields, "Test Mode")
	assert.Equal(t, check.StatusDrifted, mode.Status)
	assert.Equal(t, "true", mode.Local)
	assert.Equal(t, "false", mode.Remote)

	objects := fieldByName(t, res.Fields, "Object Types")
	assert.Equal(t, check.StatusLocalOnly, objects.Status)
	assert.Equal(t, "1 defined", objects.Local)
	assert.Empty(t, objects.Remote)

	assert.Contains(t, out.String(), "DRIFT")
	assert.Contains(t, out.String(), "local-only")
}

func TestRun_MissingRemote(t *testing.T) {
	t.Parallel()

	client := &fakeClient{getErr: &glean.TransportError{
		Operation:  "getdatasourceconfig",
		StatusCode: http.StatusBadRequest,
		Message:    "datasource not found",
	}}
	out := &bytes.Buffer{}

	res, err := check.Run(context.Background(), &check.Opts{Config: localConfig(), Client: client, Writer: out})
	require.NoError(t, err)

	assert.False(t, res.Exists)
	assert.False(t, res.InSync)
	assert.Empty(t, res.Fields)
	assert.Contains(t, out.String(), "does not exist")
}

func TestRun_RemoteOnlySuggestion(t *testing.T) {
	t.Parallel()

	cfg := localConfig()
	cfg.SuggestionText = ""

	remote := sync.ToWire(localConfig())

	client := &fakeClient{remote: remote}

	res, err := check.Run(context.Background(), &check.Opts{Config: cfg, Client: client, Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	suggestion := fieldByName(t, res.Fields, "Suggestion Text")
	assert.Equal(t, check.StatusRemoteOnly, suggestion.Status)
}

func TestRun_IconsCompareFullButDisplayTruncated(t *testing.T) {
	t.Parallel()

	cfg := localConfig()
	cfg.IconLightmode = "data:image/png;base64," + strings.Repeat("A", 200)

	client := &fakeClient{remote: sync.ToWire(cfg)}

	res, err := check.Run(context.Background(), &check.Opts{Config: cfg, Client: client, Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	icon := fieldByName(t, res.Fields, "Light Mode Icon")
	assert.Equal(t, check.StatusInSync, icon.Status, "equality runs on the full value")
	assert.True(t, strings.HasSuffix(icon.Local, "..."))
	assert.LessOrEqual(t, len(icon.Local), 43)
}

func TestRun_DatasourceIDOverride(t *testing.T) {
	t.Parallel()

	cfg := localConfig()

	remote := sync.ToWire(cfg)
	remote.Name = "backstage-staging"

	client := &fakeClient{remote: remote}

	res, err := check.Run(context.Background(), &check.Opts{
		Config:       cfg,
		Client:       client,
		DatasourceID: "backstage-staging",
		Writer:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	assert.Equal(t, "backstage-staging", client.probedID)
	assert.Equal(t, "backstage-staging", res.DatasourceID)

	id := fieldByName(t, res.Fields, "Datasource ID")
	assert.Equal(t, check.StatusInSync, id.Status, "the override names both sides of the comparison")
}

func TestRun_JSONOutput(t *testing.T) {
	t.Parallel()

	cfg := localConfig()
	client := &fakeClient{remote: sync.ToWire(cfg)}
	out := &bytes.Buffer{}

	_, err := check.Run(context.Background(), &check.Opts{
		Config:       cfg,
		Client:       client,
		OutputFormat: "json",
		Writer:       out,
	})
	require.NoError(t, err)

	var decoded check.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.True(t, decoded.InSync)
	assert.Equal(t, "backstage", decoded.DatasourceID)
	assert.NotEmpty(t, decoded.Fields)
}
