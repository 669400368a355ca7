package datasource_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/gleanctl/internal/datasource"
)

func validConfig() *datasource.Config {
	return &datasource.Config{
		DisplayName: "Backstage",
		ID:          "backstage",
		Category:    datasource.CategoryKnowledgeHub,
		HomeURL:     "https://backstage.example.com",
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	require.NoError(t, datasource.Validate(validConfig()))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := &datasource.Config{
		DisplayName: "Backstage/",
		ID:          "Not A Slug",
		Category:    datasource.Category("BOGUS"),
		HomeURL:     "ftp://example.com",
	}

	err := datasource.Validate(cfg)
	require.Error(t, err)

	var errs datasource.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
	assert.Contains(t, err.Error(), "4 validation errors")
}

func TestValidate_DisallowedCategoryAccepted(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Category = datasource.CategoryPeople

	require.NoError(t, datasource.Validate(cfg))
}

func TestValidate_ObjectTypeNameRequired(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.ObjectTypes = []datasource.ObjectDefinition{{DisplayLabel: "Articles"}}

	err := datasource.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object_types[0].name")
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidate_DuplicateObjectTypeName(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.ObjectTypes = []datasource.ObjectDefinition{
		{Name: "Article"},
		{Name: "Article"},
	}

	err := datasource.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate object type name")
}

func TestValidateDisplayName_Valid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Backstage", "My App 2.0", "Wiki (Internal)", "a"} {
		assert.NoError(t, datasource.ValidateDisplayName(name), name)
	}
}

func TestValidateDisplayName_Empty(t *testing.T) {
	t.Parallel()

	err := datasource.ValidateDisplayName("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateDisplayName_TooLong(t *testing.T) {
	t.Parallel()

	err := datasource.ValidateDisplayName(strings.Repeat("x", 51))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "50 characters or fewer")

	assert.NoError(t, datasource.ValidateDisplayName(strings.Repeat("x", 50)))
}

func TestValidateDisplayName_Whitespace(t *testing.T) {
	t.Parallel()

	for _, name := range []string{" Backstage", "Backstage ", "\tBackstage"} {
		err := datasource.ValidateDisplayName(name)
		require.Error(t, err, "%q", name)
		assert.Contains(t, err.Error(), "whitespace")
	}
}

func TestValidateDisplayName_TrailingSymbol(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Backstage/", "Backstage;", "Backstage:", "Backstage,"} {
		err := datasource.ValidateDisplayName(name)
		require.Error(t, err, "%q", name)
		assert.Contains(t, err.Error(), "cannot end with")
	}
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	assert.NoError(t, datasource.ValidateID("backstage"))
	assert.NoError(t, datasource.ValidateID("my-app-20"))

	for _, id := range []string{"", "My App", "UPPER", "under_score", "app!"} {
		assert.Error(t, datasource.ValidateID(id), "%q", id)
	}
}

func TestValidateHomeURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, datasource.ValidateHomeURL("https://app.example.com/dash"))
	assert.NoError(t, datasource.ValidateHomeURL("http://localhost:8080"))

	for _, raw := range []string{"", "ftp://example.com", "example.com", "https:/broken"} {
		assert.Error(t, datasource.ValidateHomeURL(raw), "%q", raw)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, datasource.ValidateEmail("sam.sample@company.com"))
	assert.NoError(t, datasource.ValidateEmail("a+tag@b.co"))

	for _, addr := range []string{"not-an-email", "@nodomain.com", "user@", "user@host", "user @host.com"} {
		assert.Error(t, datasource.ValidateEmail(addr), "%q", addr)
	}
}

func TestFilterEmails(t *testing.T) {
	t.Parallel()

	valid, invalid := datasource.FilterEmails("a@b.com, not-an-email, c@d.co")
	assert.Equal(t, []string{"a@b.com", "c@d.co"}, valid)
	assert.Equal(t, []string{"not-an-email"}, invalid)
}

func TestFilterEmails_BlankEntriesDropped(t *testing.T) {
	t.Parallel()

	valid, invalid := datasource.FilterEmails("a@b.com,,  ,")
	assert.Equal(t, []string{"a@b.com"}, valid)
	assert.Empty(t, invalid)
}

func TestFilterEmails_Empty(t *testing.T) {
	t.Parallel()

	valid, invalid := datasource.FilterEmails("")
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}

func TestValidationError_Unwrapping(t *testing.T) {
	t.Parallel()

	err := datasource.ValidateID("Bad ID")

	var ve *datasource.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "id", ve.Field)
	assert.Equal(t, "Bad ID", ve.Value)
}
