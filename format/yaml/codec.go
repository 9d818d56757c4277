// Package yaml provides the YAML codec for settings documents.
//
// Decoding produces plain map[string]any values. Patch operates on the
// yaml.Node AST instead, so writing one key keeps the rest of the file
// (comments, key order, quoting) as it was.
package yaml

import (
	"bytes"

	"github.com/samber/oops"
	"github.com/yacchi/kasane/document"
	"gopkg.in/yaml.v3"
)

// indent is the number of spaces used for nested block collections.
const indent = 2

// Codec implements document.Codec and document.Patcher for YAML.
type Codec struct{}

// Ensure Codec implements the document interfaces.
var (
	_ document.Codec   = Codec{}
	_ document.Patcher = Codec{}
)

// New returns a YAML codec.
//
// Example:
//
//	store, err := kasane.New(ctx, kasane.WithCodec(yaml.New()))
func New() Codec {
	return Codec{}
}

// Format returns document.FormatYAML.
func (Codec) Format() document.Format {
	return document.FormatYAML
}

// Decode parses YAML data into a top-level mapping.
// Empty input and documents holding only whitespace, comments or null decode
// to an empty, non-nil map.
func (Codec) Decode(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.
			In("yaml").
			Code("decode").
			Wrapf(err, "failed to parse YAML")
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// Encode serializes m as block-style YAML. Keys are emitted in sorted order.
func (Codec) Encode(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	return encode(m)
}

// Patch sets key to value on the root mapping of current and re-encodes the
// document. Existing keys keep their position and comments; a new key is
// appended at the end. Aliases elsewhere in the document that refer to an
// anchor inside the replaced value are expanded in place.
func (Codec) Patch(current []byte, key string, value any) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(current, &root); err != nil {
		return nil, oops.
			In("yaml").
			Code("decode").
			Wrapf(err, "failed to parse YAML")
	}

	mapping, err := rootMapping(&root)
	if err != nil {
		return nil, err
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return nil, oops.
			In("yaml").
			Code("encode").
			With("key", key).
			Wrapf(err, "failed to encode value")
	}

	if old := lookupKey(mapping, key); old != nil {
		inlineAliases(&root, old)
	}
	setKey(mapping, key, &valueNode)
	return encode(&root)
}

// rootMapping returns the mapping node at the top of root, creating one when
// the document is empty or null. It fails when the document holds anything
// other than a mapping.
func rootMapping(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
	}
	if len(root.Content) == 0 {
		root.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	node := root.Content[0]
	switch {
	case node.Kind == yaml.MappingNode:
		return node, nil
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		mapping := &yaml.Node{
			Kind:        yaml.MappingNode,
			Tag:         "!!map",
			HeadComment: node.HeadComment,
			FootComment: node.FootComment,
		}
		root.Content[0] = mapping
		return mapping, nil
	default:
		return nil, oops.
			In("yaml").
			Code("decode").
			With("kind", kindString(node.Kind)).
			Errorf("document root is not a mapping")
	}
}

// lookupKey returns the value node of key in mapping, or nil.
func lookupKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// inlineAliases replaces every alias outside old that refers to an anchor
// defined inside old with a copy of the anchored node, so dropping old does
// not leave dangling aliases behind.
func inlineAliases(root, old *yaml.Node) {
	anchored := make(map[*yaml.Node]bool)
	walkNodes(old, func(n *yaml.Node) bool {
		if n.Anchor != "" {
			anchored[n] = true
		}
		return true
	})
	if len(anchored) == 0 {
		return
	}

	walkNodes(root, func(n *yaml.Node) bool {
		if n == old {
			return false
		}
		if n.Kind == yaml.AliasNode && anchored[n.Alias] {
			head, line, foot := n.HeadComment, n.LineComment, n.FootComment
			*n = *copyNode(n.Alias, anchored)
			n.HeadComment, n.LineComment, n.FootComment = head, line, foot
		}
		return true
	})
}

// walkNodes calls fn for n and its descendants, depth first. Children are
// skipped when fn returns false. Alias targets are not followed.
func walkNodes(n *yaml.Node, fn func(*yaml.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Content {
		walkNodes(c, fn)
	}
}

// copyNode deep-copies n without the anchors in anchored, expanding aliases
// to those anchors along the way.
func copyNode(n *yaml.Node, anchored map[*yaml.Node]bool) *yaml.Node {
	if n.Kind == yaml.AliasNode && anchored[n.Alias] {
		return copyNode(n.Alias, anchored)
	}

	c := *n
	if anchored[n] {
		c.Anchor = ""
	}
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = copyNode(child, anchored)
		}
	}
	return &c
}

// setKey replaces the value of key in mapping or appends a new pair.
// Comments attached to a replaced scalar carry over to its successor.
func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}
		old := mapping.Content[i+1]
		if value.LineComment == "" {
			value.LineComment = old.LineComment
		}
		if value.HeadComment == "" {
			value.HeadComment = old.HeadComment
		}
		if value.FootComment == "" {
			value.FootComment = old.FootComment
		}
		mapping.Content[i+1] = value
		return
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, oops.
			In("yaml").
			Code("encode").
			Wrapf(err, "failed to marshal YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, oops.
			In("yaml").
			Code("encode").
			Wrapf(err, "failed to marshal YAML")
	}
	return buf.Bytes(), nil
}

// kindString returns a human-readable string for a node kind.
func kindString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
