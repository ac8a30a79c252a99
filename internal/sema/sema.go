// Package sema builds a semantic model of ASN.1 definitions from the tagged
// token tree produced by an external grammar parser.
//
// Concepts of the ASN.1 notation are mirrored as a small object model:
// modules, assignments, type expressions, value expressions and constraints.
// Node and member names typically follow the ASN.1 terminology.
//
// The model also captures the dependency graph between declarations, so a
// code generator can emit definitions in dependency order. Nodes that can
// be referenced implement ReferenceName; nodes that refer to other
// declarations implement References, returning the referenced names. Both
// capabilities feed internal/depsort.
//
// All nodes are built bottom-up in a single pass and are immutable
// afterwards, except a Module's lazily computed user-type index.
package sema

import (
	"fmt"

	"github.com/funvibe/asnsema/internal/config"
	"github.com/funvibe/asnsema/internal/token"
)

// Node is the base interface for all semantic nodes. Every node renders a
// canonical ASN.1-like form of itself via String; the rendering is
// structural and does not reproduce original source formatting.
type Node interface {
	fmt.Stringer
	semaNode()
}

// Type is a Node that can appear in type position.
type Type interface {
	Node
	typeNode()
	References() []string
}

// Component is a Node usable as a member of a constructed type.
type Component interface {
	Node
	References() []string
}

// Value is a value-position operand: a *ValueReference or a Literal.
type Value interface {
	fmt.Stringer
	valueOperand()
}

// Literal is a raw scalar value carried verbatim from the source, such as a
// number or a named constant like MIN.
type Literal string

func (Literal) valueOperand() {}

func (l Literal) String() string { return string(l) }

// Declaration is a top-level module declaration that can be ordered by
// dependency: a type or value assignment.
type Declaration interface {
	Node
	ReferenceName() string
	References() []string
}

// typeNamed is implemented by type nodes that carry a type keyword or name.
type typeNamed interface {
	typeName() string
}

// BuildSemanticModel builds the semantic model from parser token trees, one
// Module per module-definition token, in input order.
//
// Synthesized names for unnamed members are scoped to one call: a fresh
// build always starts over at unnamed1.
func BuildSemanticModel(tokens []*token.Token) ([]*Module, error) {
	b := &builder{}
	modules := make([]*Module, 0, len(tokens))
	for _, tok := range tokens {
		node, err := b.createNode(tok)
		if err != nil {
			return nil, err
		}
		mod, ok := node.(*Module)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "top-level token is not a module definition"}
		}
		modules = append(modules, mod)
	}
	return modules, nil
}

// builder constructs semantic nodes from tokens. It owns the counter behind
// synthesized member names, so concurrent builds never share state.
type builder struct {
	unnamed int
}

func (b *builder) nextUnnamed() string {
	b.unnamed++
	return fmt.Sprintf("%s%d", config.UnnamedPrefix, b.unnamed)
}

// createNode dispatches one token to its node constructor.
func (b *builder) createNode(tok *token.Token) (Node, error) {
	switch tok.Tag {
	case "ModuleDefinition":
		return b.newModule(tok)
	case "TypeAssignment":
		return b.newTypeAssignment(tok)
	case "ValueAssignment":
		return b.newValueAssignment(tok)
	case "ValueReference":
		return newValueReference(tok)
	case "ComponentType":
		return b.newComponentType(tok)
	case "NamedType":
		return b.newNamedType(tok)
	case "ValueListType":
		return b.newValueListType(tok)
	case "BitStringType":
		return b.newBitStringType(tok)
	case "NamedValue":
		return newNamedValue(tok)
	case "Type":
		// Type tokens carry the specific type category as their first element.
		sub, ok := tok.Sub(0)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a nested type token"}
		}
		return b.createNode(sub)
	case "SimpleType":
		return b.newSimpleType(tok)
	case "ReferencedType":
		return newUserDefinedType(tok)
	case "TaggedType":
		return b.newTaggedType(tok)
	case "SequenceType":
		ct, err := b.newConstructedType(tok)
		if err != nil {
			return nil, err
		}
		return &SequenceType{ConstructedType: *ct}, nil
	case "ChoiceType":
		ct, err := b.newConstructedType(tok)
		if err != nil {
			return nil, err
		}
		return &ChoiceType{ConstructedType: *ct}, nil
	case "SequenceOfType":
		name, elem, err := b.newElementOf(tok)
		if err != nil {
			return nil, err
		}
		return &SequenceOfType{TypeName: name, TypeDecl: elem}, nil
	case "SetOfType":
		name, elem, err := b.newElementOf(tok)
		if err != nil {
			return nil, err
		}
		return &SetOfType{TypeName: name, TypeDecl: elem}, nil
	}

	return nil, &UnknownNodeKindError{Tag: tok.Tag}
}

// createType builds a node and requires it to be usable in type position.
func (b *builder) createType(tok *token.Token) (Type, error) {
	node, err := b.createNode(tok)
	if err != nil {
		return nil, err
	}
	t, ok := node.(Type)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "not a type declaration"}
	}
	return t, nil
}

// createValue builds a value operand from a literal element or a
// value-reference token.
func (b *builder) createValue(tag string, el token.Element) (Value, error) {
	switch e := el.(type) {
	case token.Literal:
		return Literal(e), nil
	case *token.Token:
		node, err := b.createNode(e)
		if err != nil {
			return nil, err
		}
		ref, ok := node.(*ValueReference)
		if !ok {
			return nil, &InvalidShapeError{Tag: tag, Reason: "value must be a literal or a value reference"}
		}
		return ref, nil
	}
	return nil, &InvalidShapeError{Tag: tag, Reason: "value must be a literal or a value reference"}
}
