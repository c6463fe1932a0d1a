package spec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalwork/asyncgen/errors"
)

const minimalSpec = `
asyncapi: 3.0.0
info:
  title: Minimal API
  version: 1.0.0
channels: {}
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asyncapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSpecNotFound))
	assert.True(t, errors.IsAccessError(err))
}

func TestLoadDirectory(t *testing.T) {
	_, _, err := Load(t.TempDir(), 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotRegularFile))
	assert.True(t, errors.IsAccessError(err))
}

func TestLoadOversizedFile(t *testing.T) {
	path := writeSpec(t, strings.Repeat("# padding\n", 100))

	_, _, err := Load(path, 64)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSpecTooLarge))
	assert.True(t, errors.IsAccessError(err))
	assert.Contains(t, err.Error(), "limit 64")
}

func TestLoadMinimalDocument(t *testing.T) {
	path := writeSpec(t, minimalSpec)

	doc, issues, err := Load(path, 0)

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Minimal API", doc.Title)
	assert.Equal(t, "1.0.0", doc.Version)
	assert.Empty(t, Errors(issues))
}

func TestParseAcceptsJSON(t *testing.T) {
	doc, _, err := Parse([]byte(`{"asyncapi":"3.0.0","info":{"title":"J","version":"2.0.0"},"channels":{}}`))

	require.NoError(t, err)
	assert.Equal(t, "J", doc.Title)
	assert.Equal(t, "2.0.0", doc.Version)
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n", "just a scalar"} {
		_, _, err := Parse([]byte(input))
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, errors.ErrEmptySpec), "input %q", input)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, _, err := Parse([]byte("asyncapi: [unclosed\n  bad"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSpec))
}

func TestParseAggregatesValidationErrors(t *testing.T) {
	// The structural failure and the version failure both report;
	// validation collects the full set before aborting rather than
	// stopping at the first problem.
	_, issues, err := Parse([]byte("asyncapi: 2.0.0\nother: true\n"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSpec))
	assert.True(t, errors.IsValidationError(err))
	assert.GreaterOrEqual(t, len(Errors(issues)), 2)
}

func TestParseWarningsDoNotBlock(t *testing.T) {
	doc, issues, err := Parse([]byte(`
asyncapi: 3.0.0
info:
  title: Warny API
  version: 1.0.0
channels:
  bare: {}
`))

	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Len(t, doc.Channels, 1)

	warnings := Warnings(issues)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "no address")
	assert.Equal(t, "#/channels/bare", warnings[0].Location)
}
