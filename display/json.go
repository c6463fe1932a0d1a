package display

import (
	json "github.com/goccy/go-json"
)

// MarshalJSON renders v as indented JSON for machine consumption of
// diagnostics (`--json` mode).
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
