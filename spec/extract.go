package spec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// RefSchemaPrefix is the pointer prefix for component schema references.
	RefSchemaPrefix = "#/components/schemas/"
	// refMessagePrefix points at component-level message definitions.
	refMessagePrefix = "#/components/messages/"
	// refChannelPrefix points at channel definitions.
	refChannelPrefix = "#/channels/"
)

// buildSchemaNode converts a raw schema mapping into a SchemaNode, keeping
// $ref pointers intact at every depth. A mapping carrying $ref becomes a
// pure reference node: the pointer is the sole source of truth and any
// sibling fields are ignored.
func buildSchemaNode(n *yaml.Node) *SchemaNode {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	if ref := stringField(n, "$ref"); ref != "" {
		return &SchemaNode{Ref: ref}
	}

	node := &SchemaNode{
		Type:        stringField(n, "type"),
		Description: stringField(n, "description"),
		Required:    stringList(n, "required"),
		Enum:        stringList(n, "enum"),
	}

	eachEntry(mapValue(n, "properties"), func(name string, value *yaml.Node) {
		node.Properties = append(node.Properties, Property{
			Name:   name,
			Schema: buildSchemaNode(value),
		})
	})

	if items := mapValue(n, "items"); items != nil {
		node.Items = buildSchemaNode(items)
	}

	if ap := mapValue(n, "additionalProperties"); ap != nil {
		if allowed, ok := boolScalar(ap); ok {
			node.AdditionalProperties = &AdditionalProperties{Allowed: allowed}
		} else if ap.Kind == yaml.MappingNode {
			node.AdditionalProperties = &AdditionalProperties{
				Allowed: true,
				Schema:  buildSchemaNode(ap),
			}
		}
	}

	node.AllOf = buildSchemaList(n, "allOf")
	node.AnyOf = buildSchemaList(n, "anyOf")
	node.OneOf = buildSchemaList(n, "oneOf")

	return node
}

func buildSchemaList(n *yaml.Node, key string) []*SchemaNode {
	var out []*SchemaNode
	eachItem(mapValue(n, key), func(item *yaml.Node) {
		out = append(out, buildSchemaNode(item))
	})
	return out
}

// extractDocument builds the normalized Document from the raw root mapping.
// Channel and message pointers are resolved here; schema $refs are left for
// the compiler.
func extractDocument(raw *yaml.Node) (*Document, []Issue) {
	var issues []Issue
	warn := func(location, format string, args ...interface{}) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Location: location,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	info := mapValue(raw, "info")
	doc := &Document{
		Title:       stringField(info, "title"),
		Version:     stringField(info, "version"),
		Description: stringField(info, "description"),
		Schemas:     map[string]*SchemaNode{},
	}

	components := mapValue(raw, "components")

	eachEntry(mapValue(components, "schemas"), func(key string, value *yaml.Node) {
		doc.SchemaNames = append(doc.SchemaNames, key)
		doc.Schemas[key] = buildSchemaNode(value)
	})

	eachEntry(mapValue(components, "messages"), func(key string, value *yaml.Node) {
		msg := buildMessage(key, value)
		if msg.Payload == nil {
			warn("#/components/messages/"+key, "message %q has no payload", key)
		}
		doc.Messages = append(doc.Messages, msg)
	})

	// Channels first, then operations: operations point back into channels
	// by reference, so the channel index must exist before resolving them.
	channelIndex := map[string]int{}
	rawChannels := mapValue(raw, "channels")
	eachEntry(rawChannels, func(name string, value *yaml.Node) {
		ch := Channel{
			Name:        name,
			Address:     stringField(value, "address"),
			Description: stringField(value, "description"),
		}
		if ch.Address == "" {
			warn(refChannelPrefix+name, "channel %q has no address", name)
		}

		eachEntry(mapValue(value, "messages"), func(msgKey string, msgValue *yaml.Node) {
			msg, ok := resolveMessage(components, msgKey, msgValue)
			if !ok {
				warn(refChannelPrefix+name+"/messages/"+msgKey,
					"message reference %q could not be resolved", stringField(msgValue, "$ref"))
				return
			}
			if msg.Payload == nil {
				warn(refChannelPrefix+name+"/messages/"+msgKey, "message %q has no payload", msg.Name)
			}
			ch.Messages = append(ch.Messages, msg)
		})

		channelIndex[name] = len(doc.Channels)
		doc.Channels = append(doc.Channels, ch)
	})

	eachEntry(mapValue(raw, "operations"), func(opName string, value *yaml.Node) {
		op := Operation{
			Action:      stringField(value, "action"),
			Description: stringField(value, "description"),
		}

		channelRef := stringField(mapValue(value, "channel"), "$ref")
		op.Channel = strings.TrimPrefix(channelRef, refChannelPrefix)
		idx, ok := channelIndex[op.Channel]
		if !ok {
			warn("#/operations/"+opName, "operation %q references unknown channel %q", opName, op.Channel)
			return
		}
		ch := &doc.Channels[idx]

		if msgs := mapValue(value, "messages"); msgs != nil {
			eachItem(msgs, func(item *yaml.Node) {
				ref := stringField(item, "$ref")
				msg, ok := lookupChannelMessage(ch, rawChannels, components, ref)
				if !ok {
					warn("#/operations/"+opName, "operation %q references unknown message %q", opName, ref)
					return
				}
				op.Messages = append(op.Messages, msg)
			})
		} else {
			// No explicit message list: the operation carries every message
			// of its channel.
			op.Messages = append(op.Messages, ch.Messages...)
		}

		switch op.Action {
		case "send":
			ch.Send = append(ch.Send, op)
		case "receive":
			ch.Receive = append(ch.Receive, op)
		default:
			warn("#/operations/"+opName, "operation %q has unknown action %q", opName, op.Action)
		}
	})

	return doc, issues
}

// buildMessage extracts one message definition. The payload and headers
// keep their $ref pointers so the compiler can reference component schemas
// by name instead of inlining them.
func buildMessage(key string, n *yaml.Node) Message {
	name := stringField(n, "name")
	if name == "" {
		name = key
	}
	msg := Message{
		Name:        name,
		Description: stringField(n, "description"),
	}
	if payload := mapValue(n, "payload"); payload != nil {
		msg.Payload = buildSchemaNode(payload)
	}
	if headers := mapValue(n, "headers"); headers != nil {
		msg.Headers = buildSchemaNode(headers)
	}
	return msg
}

// resolveMessage handles a channel message entry that is either an inline
// definition or a $ref into components.messages.
func resolveMessage(components *yaml.Node, key string, n *yaml.Node) (Message, bool) {
	ref := stringField(n, "$ref")
	if ref == "" {
		return buildMessage(key, n), true
	}
	if !strings.HasPrefix(ref, refMessagePrefix) {
		return Message{}, false
	}
	target := mapValue(mapValue(components, "messages"), strings.TrimPrefix(ref, refMessagePrefix))
	if target == nil {
		return Message{}, false
	}
	return buildMessage(strings.TrimPrefix(ref, refMessagePrefix), target), true
}

// lookupChannelMessage resolves an operation message pointer of the form
// #/channels/<channel>/messages/<key> against the already-extracted channel
// or, for indirection through components, against the raw tree.
func lookupChannelMessage(ch *Channel, rawChannels, components *yaml.Node, ref string) (Message, bool) {
	rest, found := strings.CutPrefix(ref, refChannelPrefix+ch.Name+"/messages/")
	if !found || rest == "" || strings.Contains(rest, "/") {
		return Message{}, false
	}

	raw := mapValue(mapValue(mapValue(rawChannels, ch.Name), "messages"), rest)
	if raw == nil {
		return Message{}, false
	}
	msg, ok := resolveMessage(components, rest, raw)
	if !ok {
		return Message{}, false
	}
	return msg, true
}
