// Package spec reads AsyncAPI v3 documents and exposes a normalized model
// of channels, operations, messages and component schemas.
//
// The extractor walks the raw YAML node tree rather than a resolved view,
// so $ref pointers survive at every nesting depth. Reference resolution is
// the compiler's job; this package only resolves the structural refs that
// glue the document together (channel and message pointers).
package spec

// SchemaNode describes one JSON-Schema-like shape.
//
// A reference node carries only Ref; when Ref is set it is the sole source
// of truth for that position and no other field is populated.
type SchemaNode struct {
	Ref string

	Type        string
	Description string

	// Properties keeps source insertion order, which determines emitted
	// field order.
	Properties []Property
	Required   []string

	Items                *SchemaNode
	AdditionalProperties *AdditionalProperties

	Enum []string

	AllOf []*SchemaNode
	AnyOf []*SchemaNode
	OneOf []*SchemaNode
}

// Property is one named entry in an object schema.
type Property struct {
	Name   string
	Schema *SchemaNode
}

// AdditionalProperties models the three-valued additionalProperties field:
// a nil *AdditionalProperties means absent, Allowed=false means explicitly
// disallowed, Allowed=true with a nil Schema means any value, and a non-nil
// Schema constrains the values.
type AdditionalProperties struct {
	Allowed bool
	Schema  *SchemaNode
}

// IsRequired reports whether the named property is in the required set.
func (s *SchemaNode) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// IsRef reports whether this node is a pure reference.
func (s *SchemaNode) IsRef() bool {
	return s != nil && s.Ref != ""
}

// Message is one message definition with its payload and optional headers.
type Message struct {
	Name        string
	Description string
	Payload     *SchemaNode
	Headers     *SchemaNode
}

// Operation binds a send or receive action to a channel and its messages.
type Operation struct {
	Action      string // "send" or "receive"
	Channel     string
	Description string
	Messages    []Message
}

// Channel is a named communication path.
type Channel struct {
	Name        string
	Address     string
	Description string

	// Messages are the channel-level message definitions, in source order.
	Messages []Message

	// Send and Receive hold the operations bound to this channel, split by
	// direction, in document order.
	Send    []Operation
	Receive []Operation
}

// Document is the normalized AsyncAPI document handed to the compiler.
// It is immutable input: the compiler only reads it.
type Document struct {
	Title       string
	Version     string
	Description string

	Channels []Channel

	// Messages holds the component-level (global) messages in source order.
	Messages []Message

	// SchemaNames preserves the component schema declaration order.
	// Schemas is keyed by the original source keys, casing and punctuation
	// included; sanitized names are a presentation concern applied at
	// emission time only.
	SchemaNames []string
	Schemas     map[string]*SchemaNode
}

// Severity classifies a diagnostic raised during loading.
type Severity string

const (
	// SeverityError blocks extraction when present
	SeverityError Severity = "error"
	// SeverityWarning is reported but never blocks extraction
	SeverityWarning Severity = "warning"
)

// Issue is a single diagnostic with its location in the document.
type Issue struct {
	Severity Severity `json:"severity"`
	Location string   `json:"location,omitempty"`
	Message  string   `json:"message"`
}

// HasErrors reports whether any issue in the set is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings filters the issue set down to warnings.
func Warnings(issues []Issue) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}

// Errors filters the issue set down to errors.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}
