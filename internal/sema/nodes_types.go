package sema

import (
	"strings"

	"github.com/funvibe/asnsema/internal/token"
)

// SimpleType is a built-in or named type, optionally range-constrained.
type SimpleType struct {
	TypeName   string
	Constraint *Constraint
}

func (b *builder) newSimpleType(tok *token.Token) (*SimpleType, error) {
	name, ok := tok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type name is not a literal"}
	}
	st := &SimpleType{TypeName: name}
	if sub, ok := tok.Sub(1); ok && sub.Tag == "Constraint" {
		constraint, err := b.newConstraint(sub)
		if err != nil {
			return nil, err
		}
		st.Constraint = constraint
	}
	return st, nil
}

func (s *SimpleType) ReferenceName() string { return s.TypeName }

func (s *SimpleType) References() []string {
	refs := []string{s.TypeName}
	if s.Constraint != nil {
		refs = append(refs, s.Constraint.References()...)
	}
	return refs
}

func (*SimpleType) semaNode() {}

func (*SimpleType) typeNode() {}

func (s *SimpleType) typeName() string { return s.TypeName }

func (s *SimpleType) String() string {
	if s.Constraint == nil {
		return s.TypeName
	}
	return s.TypeName + " " + s.Constraint.String()
}

// UserDefinedType is an unresolved forward reference to another type. It is
// a use of a name, not a definition, so it has no reference name of its own.
type UserDefinedType struct {
	TypeName string
}

func newUserDefinedType(tok *token.Token) (*UserDefinedType, error) {
	name, ok := tok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type name is not a literal"}
	}
	return &UserDefinedType{TypeName: name}, nil
}

func (u *UserDefinedType) References() []string { return []string{u.TypeName} }

func (*UserDefinedType) semaNode() {}

func (*UserDefinedType) typeNode() {}

func (u *UserDefinedType) typeName() string { return u.TypeName }

func (u *UserDefinedType) String() string { return u.TypeName }

// Constraint is a value range. Bounds are literals or value references;
// referenced bound names participate in declaration ordering.
type Constraint struct {
	Min Value
	Max Value
}

func (b *builder) newConstraint(tok *token.Token) (*Constraint, error) {
	if len(tok.Elements) != 2 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a min and a max bound"}
	}
	min, err := b.createValue(tok.Tag, tok.Elements[0])
	if err != nil {
		return nil, err
	}
	max, err := b.createValue(tok.Tag, tok.Elements[1])
	if err != nil {
		return nil, err
	}
	return &Constraint{Min: min, Max: max}, nil
}

func (c *Constraint) References() []string {
	var refs []string
	if ref, ok := c.Min.(*ValueReference); ok {
		refs = append(refs, ref.ReferenceName())
	}
	if ref, ok := c.Max.(*ValueReference); ok {
		refs = append(refs, ref.ReferenceName())
	}
	return refs
}

func (*Constraint) semaNode() {}

func (c *Constraint) String() string {
	return "(" + c.Min.String() + ".." + c.Max.String() + ")"
}

// TaggedType overrides the wire tag of the type it wraps. Naming and
// dependencies delegate to the wrapped type.
type TaggedType struct {
	ClassName   string
	ClassNumber string
	Implicit    bool
	TypeDecl    Type
}

func (b *builder) newTaggedType(tok *token.Token) (*TaggedType, error) {
	if len(tok.Elements) < 2 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a tag and a type"}
	}
	tagTok, ok := tok.Sub(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "tag is not a tagged node"}
	}

	tt := &TaggedType{}
	var typeTok *token.Token
	if sub, ok := tok.Sub(1); ok {
		typeTok = sub
	} else {
		marker, ok := tok.Lit(1)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected IMPLICIT/EXPLICIT or a type"}
		}
		tt.Implicit = marker == "IMPLICIT"
		typeTok, ok = tok.Sub(2)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type is not a tagged node"}
		}
	}

	for _, el := range tagTok.Elements {
		part, ok := el.(*token.Token)
		if !ok {
			return nil, &InvalidShapeError{Tag: tagTok.Tag, Reason: "tag element is not a tagged node"}
		}
		switch part.Tag {
		case "TagClassNumber":
			tt.ClassNumber, _ = part.Lit(0)
		case "TagClass":
			tt.ClassName, _ = part.Lit(0)
		default:
			return nil, &InvalidShapeError{Tag: tagTok.Tag, Reason: "unknown tag element: " + part.Tag}
		}
	}

	decl, err := b.createType(typeTok)
	if err != nil {
		return nil, err
	}
	tt.TypeDecl = decl
	return tt, nil
}

func (t *TaggedType) ReferenceName() string { return t.typeName() }

func (t *TaggedType) References() []string { return t.TypeDecl.References() }

func (*TaggedType) semaNode() {}

func (*TaggedType) typeNode() {}

func (t *TaggedType) typeName() string {
	if named, ok := t.TypeDecl.(typeNamed); ok {
		return named.typeName()
	}
	return ""
}

func (t *TaggedType) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if t.ClassName != "" {
		sb.WriteString(t.ClassName)
		sb.WriteByte(' ')
	}
	sb.WriteString(t.ClassNumber)
	sb.WriteString("] ")
	if t.Implicit {
		sb.WriteString("IMPLICIT ")
	}
	sb.WriteString(t.TypeDecl.String())
	return sb.String()
}

// ConstructedType is the common shape of SEQUENCE and CHOICE types: an
// ordered list of component declarations.
type ConstructedType struct {
	TypeName   string
	Components []Component
}

// A constructed-type token holds the type keyword followed by its component
// tokens.
func (b *builder) newConstructedType(tok *token.Token) (*ConstructedType, error) {
	name, ok := tok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type keyword is not a literal"}
	}
	ct := &ConstructedType{TypeName: name}
	for _, el := range tok.Elements[1:] {
		compTok, ok := el.(*token.Token)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "component is not a tagged node"}
		}
		node, err := b.createNode(compTok)
		if err != nil {
			return nil, err
		}
		comp, ok := node.(Component)
		if !ok {
			return nil, &InvalidShapeError{Tag: compTok.Tag, Reason: "not a component declaration"}
		}
		ct.Components = append(ct.Components, comp)
	}
	return ct, nil
}

// References is the union of all component references, in component order.
// Duplicates are allowed.
func (c *ConstructedType) References() []string {
	var refs []string
	for _, comp := range c.Components {
		refs = append(refs, comp.References()...)
	}
	return refs
}

func (*ConstructedType) semaNode() {}

func (*ConstructedType) typeNode() {}

func (c *ConstructedType) typeName() string { return c.TypeName }

func (c *ConstructedType) String() string {
	parts := make([]string, 0, len(c.Components))
	for _, comp := range c.Components {
		parts = append(parts, comp.String())
	}
	return c.TypeName + " { " + strings.Join(parts, ", ") + " }"
}

// SequenceType is an ordered constructed type.
type SequenceType struct {
	ConstructedType
}

// ChoiceType is a constructed type of alternatives.
type ChoiceType struct {
	ConstructedType
}

// SequenceOfType wraps a single element type.
type SequenceOfType struct {
	TypeName string
	TypeDecl Type
}

func (b *builder) newElementOf(tok *token.Token) (string, Type, error) {
	if len(tok.Elements) != 2 {
		return "", nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a keyword and an element type"}
	}
	name, ok := tok.Lit(0)
	if !ok {
		return "", nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type keyword is not a literal"}
	}
	elemTok, ok := tok.Sub(1)
	if !ok {
		return "", nil, &InvalidShapeError{Tag: tok.Tag, Reason: "element type is not a tagged node"}
	}
	decl, err := b.createType(elemTok)
	if err != nil {
		return "", nil, err
	}
	return name, decl, nil
}

func (s *SequenceOfType) References() []string { return s.TypeDecl.References() }

func (*SequenceOfType) semaNode() {}

func (*SequenceOfType) typeNode() {}

func (s *SequenceOfType) typeName() string { return s.TypeName }

func (s *SequenceOfType) String() string {
	return s.TypeName + " " + s.TypeDecl.String()
}

// SetOfType wraps a single element type.
type SetOfType struct {
	TypeName string
	TypeDecl Type
}

func (s *SetOfType) References() []string { return s.TypeDecl.References() }

func (*SetOfType) semaNode() {}

func (*SetOfType) typeNode() {}

func (s *SetOfType) typeName() string { return s.TypeName }

func (s *SetOfType) String() string {
	return s.TypeName + " " + s.TypeDecl.String()
}

// ComponentType is one member of a SEQUENCE. Unnamed members get a
// synthesized identifier from the build's name generator.
type ComponentType struct {
	Identifier string
	TypeDecl   Type
	Optional   bool
	Default    Value // nil when the member has no DEFAULT
}

func (b *builder) newComponentType(tok *token.Token) (*ComponentType, error) {
	first, ok := tok.Sub(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected an identifier or type"}
	}

	ct := &ComponentType{}
	var typeTok *token.Token
	var rest []token.Element
	switch first.Tag {
	case "Type":
		// An unnamed member.
		typeTok = first
		ct.Identifier = b.nextUnnamed()
		rest = tok.Elements[1:]
	case "Identifier":
		ident, ok := first.Lit(0)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "identifier has no name"}
		}
		ct.Identifier = ident
		typeTok, ok = tok.Sub(1)
		if !ok {
			return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type is not a tagged node"}
		}
		rest = tok.Elements[2:]
	default:
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected an identifier or type, got " + first.Tag}
	}

	if len(rest) > 0 {
		mod, ok := rest[0].(*token.Token)
		if ok && mod.Tag == "ComponentOptional" {
			ct.Optional = true
		}
		if ok && mod.Tag == "ComponentDefault" {
			if marker, _ := mod.Lit(0); marker != "DEFAULT" || len(mod.Elements) != 2 {
				return nil, &InvalidShapeError{Tag: mod.Tag, Reason: "expected a DEFAULT marker and a value"}
			}
			value, err := b.createValue(mod.Tag, mod.Elements[1])
			if err != nil {
				return nil, err
			}
			ct.Default = value
		}
	}

	decl, err := b.createType(typeTok)
	if err != nil {
		return nil, err
	}
	ct.TypeDecl = decl
	return ct, nil
}

// References delegates to the member's type.
// TODO: track value references appearing in DEFAULT values.
func (c *ComponentType) References() []string { return c.TypeDecl.References() }

func (*ComponentType) semaNode() {}

func (c *ComponentType) String() string {
	var sb strings.Builder
	sb.WriteString(c.Identifier)
	sb.WriteByte(' ')
	sb.WriteString(c.TypeDecl.String())
	if c.Optional {
		sb.WriteString(" OPTIONAL")
	}
	if c.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(c.Default.String())
	}
	return sb.String()
}

// NamedType is a named alternative of a CHOICE.
type NamedType struct {
	Identifier string
	TypeDecl   Type
}

func (b *builder) newNamedType(tok *token.Token) (*NamedType, error) {
	identTok, ok := tok.Sub(0)
	if !ok || identTok.Tag != "Identifier" {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected an Identifier token"}
	}
	ident, ok := identTok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "identifier has no name"}
	}
	typeTok, ok := tok.Sub(1)
	if !ok || typeTok.Tag != "Type" {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a Type token"}
	}
	decl, err := b.createType(typeTok)
	if err != nil {
		return nil, err
	}
	return &NamedType{Identifier: ident, TypeDecl: decl}, nil
}

func (n *NamedType) References() []string { return n.TypeDecl.References() }

func (*NamedType) semaNode() {}

func (n *NamedType) String() string {
	return n.Identifier + " " + n.TypeDecl.String()
}

// ValueListType is an enumeration-style type: a base type name with an
// optional list of named values.
type ValueListType struct {
	TypeName    string
	NamedValues []*NamedValue // nil when the type has no value list
}

func (b *builder) newValueListType(tok *token.Token) (*ValueListType, error) {
	name, values, err := b.newNamedList(tok)
	if err != nil {
		return nil, err
	}
	return &ValueListType{TypeName: name, NamedValues: values}, nil
}

// References is empty for now.
// TODO: track value references appearing in the named value list.
func (v *ValueListType) References() []string { return nil }

func (*ValueListType) semaNode() {}

func (*ValueListType) typeNode() {}

func (v *ValueListType) typeName() string { return v.TypeName }

func (v *ValueListType) String() string { return namedListString(v.TypeName, v.NamedValues) }

// BitStringType is a BIT STRING with an optional list of named bits.
type BitStringType struct {
	TypeName  string
	NamedBits []*NamedValue // nil when the type has no named bits
}

func (b *builder) newBitStringType(tok *token.Token) (*BitStringType, error) {
	name, bits, err := b.newNamedList(tok)
	if err != nil {
		return nil, err
	}
	return &BitStringType{TypeName: name, NamedBits: bits}, nil
}

// References is empty for now.
// TODO: track value references appearing in the named bit list.
func (b *BitStringType) References() []string { return nil }

func (*BitStringType) semaNode() {}

func (*BitStringType) typeNode() {}

func (b *BitStringType) typeName() string { return b.TypeName }

func (b *BitStringType) String() string { return namedListString(b.TypeName, b.NamedBits) }

// newNamedList parses a type name followed by zero or more NamedValue
// tokens, the shared shape of value-list and bit-string types.
func (b *builder) newNamedList(tok *token.Token) (string, []*NamedValue, error) {
	name, ok := tok.Lit(0)
	if !ok {
		return "", nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type name is not a literal"}
	}
	var values []*NamedValue
	for _, el := range tok.Elements[1:] {
		valueTok, ok := el.(*token.Token)
		if !ok {
			return "", nil, &InvalidShapeError{Tag: tok.Tag, Reason: "named value is not a tagged node"}
		}
		value, err := newNamedValue(valueTok)
		if err != nil {
			return "", nil, err
		}
		values = append(values, value)
	}
	return name, values, nil
}

func namedListString(name string, values []*NamedValue) string {
	if len(values) == 0 {
		return name
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.String())
	}
	return name + " { " + strings.Join(parts, ", ") + " }"
}
