package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalwork/asyncgen/errors"
)

func findIssue(issues []Issue, location string) (Issue, bool) {
	for _, issue := range issues {
		if issue.Location == location {
			return issue, true
		}
	}
	return Issue{}, false
}

func TestValidateRejectsVersionTwo(t *testing.T) {
	_, issues, err := Parse([]byte(`
asyncapi: 2.6.0
info:
  title: Legacy API
  version: 1.0.0
channels: {}
`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSpec))

	issue, ok := findIssue(issues, "#/asyncapi")
	require.True(t, ok)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Contains(t, issue.Message, "only 3.x is supported")
}

func TestValidateRejectsGarbageVersionMarker(t *testing.T) {
	_, issues, err := Parse([]byte(`
asyncapi: banana
info:
  title: Bad API
  version: 1.0.0
channels: {}
`))

	require.Error(t, err)
	issue, ok := findIssue(issues, "#/asyncapi")
	require.True(t, ok)
	assert.Contains(t, issue.Message, "invalid version marker")
}

func TestValidateAcceptsPatchVersions(t *testing.T) {
	for _, marker := range []string{"3.0.0", "3.1.0", "3.0.2"} {
		_, _, err := Parse([]byte(`
asyncapi: "` + marker + `"
info:
  title: OK
  version: 1.0.0
channels: {}
`))
		assert.NoError(t, err, "marker %s", marker)
	}
}

func TestValidateRejectsBadOperationAction(t *testing.T) {
	_, issues, err := Parse([]byte(`
asyncapi: 3.0.0
info:
  title: Pub API
  version: 1.0.0
channels:
  events:
    address: events
operations:
  onEvent:
    action: subscribe
    channel:
      $ref: '#/channels/events'
`))

	require.Error(t, err)
	assert.True(t, HasErrors(issues))
}

func TestValidateReportsMissingInfoFields(t *testing.T) {
	_, issues, err := Parse([]byte(`
asyncapi: 3.0.0
info:
  title: No Version
channels: {}
`))

	require.Error(t, err)
	require.True(t, HasErrors(issues))
	found := false
	for _, issue := range Errors(issues) {
		if issue.Location == "#/info" {
			found = true
			assert.Contains(t, issue.Message, "version")
		}
	}
	assert.True(t, found, "expected an error located at #/info")
}
