package datasource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/gleanctl/internal/datasource"
)

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Backstage":        "backstage",
		"My App 2.0":       "my-app-20",
		"  Hello   World ": "hello-world",
		"Ops/Infra (v2)":   "opsinfra-v2",
		"a --- b":          "a-b",
		"-lead-and-trail-": "lead-and-trail",
		"Résumé Hub":       "rsum-hub",
		"!!!":              "",
	}

	for input, want := range cases {
		assert.Equal(t, want, datasource.NormalizeID(input), "%q", input)
	}
}

func TestNormalizeID_ProducesValidID(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"Backstage", "My App 2.0", "Team: Search & Discovery"} {
		id := datasource.NormalizeID(input)
		assert.NoError(t, datasource.ValidateID(id), "%q -> %q", input, id)
	}
}
