package spec

import (
	"bytes"
	_ "embed"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	json "github.com/goccy/go-json"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/signalwork/asyncgen/logger"
)

//go:embed asyncapi3.schema.json
var asyncapi3Schema []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// metaSchema compiles the embedded structural schema once per process.
func metaSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("asyncapi3.schema.json", bytes.NewReader(asyncapi3Schema)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("asyncapi3.schema.json")
	})
	return compiledSchema, compileErr
}

// Validate checks the raw document against the embedded AsyncAPI v3
// structural schema plus the version marker. All failures are collected
// into one issue set; the caller decides whether errors abort.
func Validate(raw *yaml.Node) []Issue {
	var issues []Issue

	schema, err := metaSchema()
	if err != nil {
		// A broken embedded schema is a build defect, not a user error.
		logger.Errorw("embedded schema failed to compile", "error", err)
		return []Issue{{Severity: SeverityError, Message: "internal: embedded schema failed to compile"}}
	}

	instance, err := genericInstance(raw)
	if err != nil {
		return []Issue{{Severity: SeverityError, Message: "document could not be decoded: " + err.Error()}}
	}

	if err := schema.Validate(instance); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			issues = append(issues, collectValidationIssues(ve)...)
		} else {
			issues = append(issues, Issue{Severity: SeverityError, Message: err.Error()})
		}
	}

	issues = append(issues, checkVersionMarker(raw)...)

	return issues
}

// genericInstance converts the raw yaml tree into the generic JSON shape
// the validator expects. Round-tripping through JSON normalizes YAML's
// native scalar types.
func genericInstance(raw *yaml.Node) (interface{}, error) {
	var decoded interface{}
	if err := raw.Decode(&decoded); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		return nil, err
	}
	var instance interface{}
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// checkVersionMarker enforces that the document declares AsyncAPI major
// version 3. Semver parsing gives a clearer message than a regex pattern
// for 2.x documents.
func checkVersionMarker(raw *yaml.Node) []Issue {
	marker := stringField(raw, "asyncapi")
	if marker == "" {
		// The structural schema already reports the missing field.
		return nil
	}
	v, err := semver.NewVersion(marker)
	if err != nil {
		return []Issue{{
			Severity: SeverityError,
			Location: "#/asyncapi",
			Message:  "invalid version marker " + marker,
		}}
	}
	if v.Major() != 3 {
		return []Issue{{
			Severity: SeverityError,
			Location: "#/asyncapi",
			Message:  "unsupported AsyncAPI version " + marker + " (only 3.x is supported)",
		}}
	}
	return nil
}

// collectValidationIssues flattens the validator's cause tree into leaf
// issues so every concrete failure is reported once.
func collectValidationIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location != "" && !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			issues = append(issues, Issue{
				Severity: SeverityError,
				Location: location,
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
