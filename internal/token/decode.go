package token

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeDocument reads a token document - the YAML interchange form written
// by the grammar parser - and returns its top-level module-definition tokens.
//
// A tagged token is a mapping with a "tag" key and an optional "elems"
// sequence; any scalar is a Literal. In flow style, one assignment reads:
//
//	[{tag: TypeAssignment, elems: [MyInt, "::=", {tag: Type, elems: [{tag: SimpleType, elems: [INTEGER]}]}]}]
func DecodeDocument(r io.Reader) ([]*Token, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode token document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("token document: expected a top-level sequence, got %s at line %d", kindName(root.Kind), root.Line)
	}

	tokens := make([]*Token, 0, len(root.Content))
	for _, n := range root.Content {
		el, err := decodeElement(n)
		if err != nil {
			return nil, err
		}
		tok, ok := el.(*Token)
		if !ok {
			return nil, fmt.Errorf("token document: top-level element at line %d is not a tagged node", n.Line)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func decodeElement(n *yaml.Node) (Element, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Literal(n.Value), nil
	case yaml.AliasNode:
		return decodeElement(n.Alias)
	case yaml.MappingNode:
		return decodeToken(n)
	default:
		return nil, fmt.Errorf("token document: unsupported %s at line %d", kindName(n.Kind), n.Line)
	}
}

func decodeToken(n *yaml.Node) (*Token, error) {
	tok := &Token{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "tag":
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("token document: tag at line %d is not a scalar", value.Line)
			}
			tok.Tag = value.Value
		case "elems":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("token document: elems at line %d is not a sequence", value.Line)
			}
			for _, child := range value.Content {
				el, err := decodeElement(child)
				if err != nil {
					return nil, err
				}
				tok.Elements = append(tok.Elements, el)
			}
		default:
			return nil, fmt.Errorf("token document: unknown key %q at line %d", key.Value, key.Line)
		}
	}
	if tok.Tag == "" {
		return nil, fmt.Errorf("token document: tagged node at line %d has no tag", n.Line)
	}
	return tok, nil
}

func kindName(k yaml.Kind) string {
	switch k {
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
	}
	return "unknown node"
}
