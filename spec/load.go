package spec

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/signalwork/asyncgen/errors"
	"github.com/signalwork/asyncgen/logger"
)

// DefaultMaxSpecBytes bounds input size so a hostile or accidental huge
// file cannot exhaust memory. Real-world AsyncAPI documents are well under
// a megabyte.
const DefaultMaxSpecBytes int64 = 3 << 20

// Load reads, validates and extracts an AsyncAPI v3 document.
//
// Access and validity errors abort the load and are reported through the
// returned error; the issue slice carries the full diagnostic detail in
// both the success and failure cases. Warnings never block extraction.
func Load(path string, maxBytes int64) (*Document, []Issue, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSpecBytes
	}

	data, err := readSpecFile(path, maxBytes)
	if err != nil {
		return nil, nil, err
	}

	return Parse(data)
}

// Parse validates and extracts a document from raw bytes. YAML and JSON
// input are both accepted; JSON is a subset of YAML.
func Parse(data []byte) (*Document, []Issue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, errors.Wrap(errors.ErrInvalidSpec, err.Error())
	}

	raw := documentRoot(&root)
	if raw == nil || raw.Kind != yaml.MappingNode {
		return nil, nil, errors.WithHint(
			errors.ErrEmptySpec,
			"the document must be a YAML or JSON mapping with asyncapi, info and channels keys")
	}

	issues := Validate(raw)
	if HasErrors(issues) {
		return nil, issues, errors.Wrapf(errors.ErrInvalidSpec,
			"%d validation error(s)", len(Errors(issues)))
	}

	doc, extractionIssues := extractDocument(raw)
	issues = append(issues, extractionIssues...)

	logger.Debugw("extracted document",
		"title", doc.Title,
		"channels", len(doc.Channels),
		"messages", len(doc.Messages),
		"schemas", len(doc.SchemaNames))

	return doc, issues, nil
}

// readSpecFile performs the access checks in a fixed order so every failure
// mode yields its own specific error: missing file, non-regular path,
// oversized input, unreadable file.
func readSpecFile(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrSpecNotFound, "%s", path)
		}
		if os.IsPermission(err) {
			return nil, errors.Wrapf(errors.ErrSpecForbidden, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	if !info.Mode().IsRegular() {
		return nil, errors.Wrapf(errors.ErrNotRegularFile, "%s", path)
	}

	if info.Size() > maxBytes {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrSpecTooLarge, "%s is %d bytes (limit %d)", path, info.Size(), maxBytes),
			"raise parser.max_spec_bytes if this is intentional")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrapf(errors.ErrSpecForbidden, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return data, nil
}

// documentRoot unwraps the yaml document node down to its content mapping.
func documentRoot(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return resolveAlias(root.Content[0])
	}
	return resolveAlias(root)
}
