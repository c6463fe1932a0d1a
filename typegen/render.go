package typegen

import (
	"fmt"
	"strings"

	"github.com/signalwork/asyncgen/spec"
	"github.com/signalwork/asyncgen/typegen/util"
)

// renderState holds the bookkeeping for one Generate call. Nothing in here
// outlives the call and the input document is never mutated.
type renderState struct {
	doc  *spec.Document
	opts Options

	// decls accumulates finished top-level declarations in emission order.
	// A referenced declaration completes before its referrer, so targets
	// always precede the declarations that name them.
	decls []string

	// emitted tracks declaration names that are done; a name in this set
	// is never re-emitted, later references just use it in type position.
	emitted map[string]bool

	// rendering is the recursion guard, keyed by the original schema key
	// of the declaration whose structural body is currently being built.
	// A key enters this set only when its own body starts rendering,
	// never at the moment a reference to it is resolved.
	rendering map[string]bool

	warnings []string
}

func newRenderState(doc *spec.Document, opts Options) *renderState {
	return &renderState{
		doc:       doc,
		opts:      opts,
		emitted:   map[string]bool{},
		rendering: map[string]bool{},
	}
}

func (s *renderState) renderDocument() *Result {
	header := s.headerComment()

	for _, key := range s.doc.SchemaNames {
		s.declareSchema(key)
	}

	for _, msg := range s.doc.Messages {
		s.declareMessage(msg)
	}

	for i := range s.doc.Channels {
		ch := &s.doc.Channels[i]
		for _, msg := range ch.Messages {
			s.declareMessage(msg)
		}
		s.declareChannelUnion(ch, "Send", ch.Send)
		s.declareChannelUnion(ch, "Receive", ch.Receive)
	}

	parts := append([]string{header}, s.decls...)
	return &Result{
		Source:   strings.Join(parts, "\n\n") + "\n",
		Warnings: s.warnings,
	}
}

func (s *renderState) warnf(format string, args ...interface{}) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func (s *renderState) fallbackType() string {
	return string(s.opts.Fallback)
}

func (s *renderState) exportPrefix() string {
	if s.opts.Export {
		return "export "
	}
	return ""
}

// declareSchema renders the component schema stored under key as a
// top-level declaration, guarding against reference cycles through it.
// It returns the sanitized declaration name.
func (s *renderState) declareSchema(key string) string {
	name := util.SanitizeTypeName(key)
	if s.emitted[name] {
		return name
	}

	node := s.doc.Schemas[key]

	s.rendering[key] = true
	s.declare(name, node)
	delete(s.rendering, key)

	return name
}

// refExpr resolves a $ref pointer to a declaration name, hoisting the
// target to top level if it has not been rendered yet.
//
// Lookup runs against the original component key exactly as written in the
// source; sanitized names are never used as lookup keys. The recursion
// guard is consulted for the resolved target only — the referring
// declaration's own name plays no part, so a property that happens to share
// a name with some schema can never be mistaken for a cycle.
func (s *renderState) refExpr(ref string) string {
	key, found := strings.CutPrefix(ref, spec.RefSchemaPrefix)
	if !found {
		s.warnf("unsupported reference %q, using %s", ref, s.fallbackType())
		return s.fallbackType()
	}

	if _, ok := s.doc.Schemas[key]; !ok {
		s.warnf("unresolved reference %q, using %s", ref, s.fallbackType())
		return s.fallbackType()
	}

	if s.rendering[key] {
		// True cycle: break the back edge with the fallback type. The
		// outer occurrence still completes its declaration once the
		// recursion unwinds.
		return s.fallbackType()
	}

	return s.declareSchema(key)
}

// declare emits node as a top-level declaration under name. This is the
// isTopLevelDeclaration branch of renderType: shapes that are expressions
// in nested positions become alias declarations here.
func (s *renderState) declare(name string, node *spec.SchemaNode) {
	if s.emitted[name] {
		return
	}

	var text string
	switch {
	case node == nil:
		text = s.aliasDecl(name, s.fallbackType(), "")

	case node.IsRef():
		// A purely referential declaration must still produce an alias;
		// emitting the bare resolved identifier is not a declaration.
		text = s.aliasDecl(name, s.refExpr(node.Ref), "")

	case isEnum(node):
		text = s.enumDecl(name, node)

	case isComposition(node):
		text = s.aliasDecl(name, s.compositionExpr(name, node), node.Description)

	case isArray(node):
		text = s.aliasDecl(name, s.arrayExpr(name, node), node.Description)

	case isObject(node):
		text = s.interfaceDecl(name, node)

	default:
		text = s.aliasDecl(name, s.primitiveExpr(node), node.Description)
	}

	s.decls = append(s.decls, text)
	s.emitted[name] = true
}

// typeExpr renders node as a nested type expression for use in a field,
// item or branch position. Object-shaped nodes are never inlined: they are
// hoisted as their own declarations under declName and referenced by name.
func (s *renderState) typeExpr(declName string, node *spec.SchemaNode) string {
	switch {
	case node == nil:
		return s.fallbackType()

	case node.IsRef():
		return s.refExpr(node.Ref)

	case isEnum(node):
		if s.opts.EnumStyle == EnumNamed {
			s.declare(declName, node)
			return declName
		}
		return s.enumUnionExpr(node)

	case isComposition(node):
		return s.compositionExpr(declName, node)

	case isArray(node):
		return s.arrayExpr(declName, node)

	case isObject(node):
		s.declare(declName, node)
		return declName

	default:
		return s.primitiveExpr(node)
	}
}

func isEnum(node *spec.SchemaNode) bool {
	return len(node.Enum) > 0 && (node.Type == "" || node.Type == "string")
}

func isComposition(node *spec.SchemaNode) bool {
	return len(node.AllOf) > 0 || len(node.AnyOf) > 0 || len(node.OneOf) > 0
}

func isArray(node *spec.SchemaNode) bool {
	return node.Items != nil || node.Type == "array"
}

func isObject(node *spec.SchemaNode) bool {
	return node.Type == "object" || len(node.Properties) > 0 || node.AdditionalProperties != nil
}

func (s *renderState) primitiveExpr(node *spec.SchemaNode) string {
	switch node.Type {
	case "string":
		return "string"
	case "number", "integer":
		return "number"
	case "boolean":
		return "boolean"
	case "null":
		return "null"
	case "":
		return s.fallbackType()
	default:
		s.warnf("unknown schema type %q, using %s", node.Type, s.fallbackType())
		return s.fallbackType()
	}
}

// compositionExpr joins the branches of an allOf/anyOf/oneOf node.
// Branches render as nested expressions under synthesized part names so
// anonymous object branches get hoisted declarations.
func (s *renderState) compositionExpr(declName string, node *spec.SchemaNode) string {
	branches := node.AllOf
	operator := " & "
	if len(branches) == 0 {
		branches = node.AnyOf
		operator = " | "
	}
	if len(branches) == 0 {
		branches = node.OneOf
		operator = " | "
	}

	exprs := make([]string, 0, len(branches))
	for i, branch := range branches {
		exprs = append(exprs, s.typeExpr(fmt.Sprintf("%sPart%d", declName, i), branch))
	}
	return strings.Join(exprs, operator)
}

func (s *renderState) arrayExpr(declName string, node *spec.SchemaNode) string {
	item := s.typeExpr(declName+"Item", node.Items)
	// Union and intersection item expressions need grouping before [].
	if strings.Contains(item, " | ") || strings.Contains(item, " & ") {
		item = "(" + item + ")"
	}
	return item + "[]"
}

func (s *renderState) enumUnionExpr(node *spec.SchemaNode) string {
	literals := make([]string, 0, len(node.Enum))
	for _, value := range node.Enum {
		literals = append(literals, util.QuoteLiteral(value))
	}
	return strings.Join(literals, " | ")
}

func (s *renderState) enumDecl(name string, node *spec.SchemaNode) string {
	var sb strings.Builder
	writeDocComment(&sb, node.Description, "")

	if s.opts.EnumStyle == EnumNamed {
		sb.WriteString(s.exportPrefix())
		sb.WriteString("enum ")
		sb.WriteString(name)
		sb.WriteString(" {\n")
		for _, value := range node.Enum {
			sb.WriteString("  ")
			sb.WriteString(util.EnumMemberName(value))
			sb.WriteString(" = ")
			sb.WriteString(util.QuoteLiteral(value))
			sb.WriteString(",\n")
		}
		sb.WriteString("}")
		return sb.String()
	}

	sb.WriteString(s.exportPrefix())
	sb.WriteString("type ")
	sb.WriteString(name)
	sb.WriteString(" = ")
	sb.WriteString(s.enumUnionExpr(node))
	sb.WriteString(";")
	return sb.String()
}

func (s *renderState) aliasDecl(name, expr, description string) string {
	var sb strings.Builder
	writeDocComment(&sb, description, "")
	sb.WriteString(s.exportPrefix())
	sb.WriteString("type ")
	sb.WriteString(name)
	sb.WriteString(" = ")
	sb.WriteString(expr)
	sb.WriteString(";")
	return sb.String()
}

// interfaceDecl renders an object schema as a structured record. Fields
// follow source insertion order; each nested object property hoists its own
// declaration named after the parent and the property.
func (s *renderState) interfaceDecl(name string, node *spec.SchemaNode) string {
	// Render fields before assembling so hoisted declarations land ahead
	// of this one in the output.
	type field struct {
		doc      string
		key      string
		optional bool
		expr     string
	}

	fields := make([]field, 0, len(node.Properties))
	for _, prop := range node.Properties {
		childName := name + util.ToPascalCase(prop.Name)
		fields = append(fields, field{
			doc:      propertyDescription(prop.Schema),
			key:      util.PropertyKey(prop.Name),
			optional: !node.IsRequired(prop.Name),
			expr:     s.typeExpr(childName, prop.Schema),
		})
	}

	indexExpr := ""
	if ap := node.AdditionalProperties; ap != nil && ap.Allowed {
		if ap.Schema != nil {
			indexExpr = s.typeExpr(name+"AdditionalProperties", ap.Schema)
		} else {
			indexExpr = s.fallbackType()
		}
	}

	var sb strings.Builder
	writeDocComment(&sb, node.Description, "")
	sb.WriteString(s.exportPrefix())
	sb.WriteString("interface ")
	sb.WriteString(name)
	sb.WriteString(" {\n")
	for _, f := range fields {
		writeDocComment(&sb, f.doc, "  ")
		sb.WriteString("  ")
		sb.WriteString(f.key)
		if f.optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(f.expr)
		sb.WriteString(";\n")
	}
	if indexExpr != "" {
		sb.WriteString("  [key: string]: ")
		sb.WriteString(indexExpr)
		sb.WriteString(";\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// propertyDescription pulls the doc text for a field. A reference node
// carries no description of its own by invariant.
func propertyDescription(node *spec.SchemaNode) string {
	if node == nil || node.IsRef() {
		return ""
	}
	return node.Description
}

// declareMessage emits the payload declaration, the optional headers
// declaration and the message-shape declaration for one message. Returns
// the message-shape name for use in channel unions.
func (s *renderState) declareMessage(msg spec.Message) string {
	base := util.SanitizeTypeName(msg.Name)
	shapeName := base + "Message"
	if s.emitted[shapeName] {
		return shapeName
	}

	payloadName := base + "Payload"
	s.declare(payloadName, msg.Payload)

	headersName := ""
	if msg.Headers != nil {
		headersName = base + "Headers"
		s.declare(headersName, msg.Headers)
	}

	var sb strings.Builder
	writeDocComment(&sb, msg.Description, "")
	sb.WriteString(s.exportPrefix())
	sb.WriteString("interface ")
	sb.WriteString(shapeName)
	sb.WriteString(" {\n")
	sb.WriteString("  payload: ")
	sb.WriteString(payloadName)
	sb.WriteString(";\n")
	if headersName != "" {
		sb.WriteString("  headers?: ")
		sb.WriteString(headersName)
		sb.WriteString(";\n")
	}
	sb.WriteString("}")

	s.decls = append(s.decls, sb.String())
	s.emitted[shapeName] = true
	return shapeName
}

// declareChannelUnion emits the per-direction union of message-shape names
// for one channel. Members keep channel/operation/message encounter order,
// deduplicated by name; an empty direction emits nothing.
func (s *renderState) declareChannelUnion(ch *spec.Channel, direction string, ops []spec.Operation) {
	var members []string
	seen := map[string]bool{}
	for _, op := range ops {
		for _, msg := range op.Messages {
			name := s.declareMessage(msg)
			if seen[name] {
				continue
			}
			seen[name] = true
			members = append(members, name)
		}
	}
	if len(members) == 0 {
		return
	}

	name := util.SanitizeTypeName(ch.Name) + direction + "Messages"
	if s.emitted[name] {
		return
	}
	s.decls = append(s.decls, s.aliasDecl(name, strings.Join(members, " | "), ""))
	s.emitted[name] = true
}

// headerComment renders the file header naming the source spec.
func (s *renderState) headerComment() string {
	title := strings.TrimSpace(s.doc.Title + " " + s.doc.Version)
	lines := []string{escapeComment(title)}
	if s.doc.Description != "" {
		lines = append(lines, escapeComment(s.doc.Description))
	}
	return "/**\n * " + strings.Join(lines, "\n * ") + "\n */"
}

// writeDocComment emits a single-block doc comment above a declaration or
// field. Nothing is written for empty text.
func writeDocComment(sb *strings.Builder, text, indent string) {
	if text == "" {
		return
	}
	sb.WriteString(indent)
	sb.WriteString("/** ")
	sb.WriteString(escapeComment(text))
	sb.WriteString(" */\n")
}

// escapeComment keeps description text from breaking out of its comment
// block: the terminator sequence is escaped and embedded newlines collapse
// to single spaces.
func escapeComment(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "*/", `*\/`)
	return text
}
