package sema

import (
	"strings"

	"github.com/funvibe/asnsema/internal/token"
)

// Module is a named collection of type and value declarations.
type Module struct {
	Name         string
	Declarations []Declaration

	userTypes map[string]Type // lazy name -> type declaration index
}

// A ModuleDefinition token has six elements: the module reference, the
// DEFINITIONS and "::=" markers, BEGIN, the module body and END.
func (b *builder) newModule(tok *token.Token) (*Module, error) {
	if len(tok.Elements) != 6 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected six elements"}
	}
	ref, ok := tok.Sub(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "module reference is not a tagged node"}
	}
	name, ok := ref.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "module reference has no name"}
	}
	body, ok := tok.Sub(4)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "module body is not a tagged node"}
	}

	mod := &Module{Name: name}
	for _, el := range body.Elements {
		declTok, ok := el.(*token.Token)
		if !ok {
			return nil, &InvalidShapeError{Tag: body.Tag, Reason: "declaration is not a tagged node"}
		}
		node, err := b.createNode(declTok)
		if err != nil {
			return nil, err
		}
		decl, ok := node.(Declaration)
		if !ok {
			return nil, &InvalidShapeError{Tag: declTok.Tag, Reason: "not a module declaration"}
		}
		mod.Declarations = append(mod.Declarations, decl)
	}
	return mod, nil
}

// UserTypes returns the module's type declarations indexed by name. The
// index is computed from Declarations on first use and cached for the
// module's lifetime. A duplicate type name silently overwrites the earlier
// entry (last wins).
func (m *Module) UserTypes() map[string]Type {
	if m.userTypes == nil {
		m.userTypes = make(map[string]Type)
		for _, decl := range m.Declarations {
			if ta, ok := decl.(*TypeAssignment); ok {
				m.userTypes[ta.TypeName] = ta.TypeDecl
			}
		}
	}
	return m.userTypes
}

// ResolveTypeDecl recursively resolves a forward type reference to its
// structural declaration. Declarations that are already structural are
// returned unchanged, so resolving twice is a no-op.
func (m *Module) ResolveTypeDecl(decl Type) (Type, error) {
	userTypes := m.UserTypes()
	visited := make(map[string]bool)
	var chain []string

	for {
		ref, ok := decl.(*UserDefinedType)
		if !ok {
			return decl, nil
		}
		if visited[ref.TypeName] {
			return nil, &ResolutionCycleError{Names: append(chain, ref.TypeName)}
		}
		visited[ref.TypeName] = true
		chain = append(chain, ref.TypeName)

		next, ok := userTypes[ref.TypeName]
		if !ok {
			return nil, &UnresolvedTypeError{Name: ref.TypeName}
		}
		decl = next
	}
}

func (*Module) semaNode() {}

func (m *Module) String() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteString(" DEFINITIONS ::=\nBEGIN\n")
	for _, decl := range m.Declarations {
		sb.WriteString(decl.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("END\n")
	return sb.String()
}

// TypeAssignment binds a type name to a type declaration.
type TypeAssignment struct {
	TypeName string
	TypeDecl Type
}

func (b *builder) newTypeAssignment(tok *token.Token) (*TypeAssignment, error) {
	if len(tok.Elements) != 3 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected three elements"}
	}
	name, ok := tok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type name is not a literal"}
	}
	declTok, ok := tok.Sub(2)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type declaration is not a tagged node"}
	}
	decl, err := b.createType(declTok)
	if err != nil {
		return nil, err
	}
	return &TypeAssignment{TypeName: name, TypeDecl: decl}, nil
}

func (t *TypeAssignment) ReferenceName() string { return t.TypeName }

func (t *TypeAssignment) References() []string { return t.TypeDecl.References() }

func (*TypeAssignment) semaNode() {}

func (t *TypeAssignment) String() string {
	return t.TypeName + " ::= " + t.TypeDecl.String()
}

// ValueAssignment binds a value name to a value of some type. Value holds
// either a Literal or a *ValueReference to another value.
type ValueAssignment struct {
	ValueName *ValueReference
	TypeDecl  Type
	Value     Value
}

func (b *builder) newValueAssignment(tok *token.Token) (*ValueAssignment, error) {
	if len(tok.Elements) != 4 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected four elements"}
	}
	nameTok, ok := tok.Sub(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "value name is not a tagged node"}
	}
	// The first token is always a value reference.
	name, err := newValueReference(nameTok)
	if err != nil {
		return nil, err
	}
	typeTok, ok := tok.Sub(1)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "type is not a tagged node"}
	}
	decl, err := b.createType(typeTok)
	if err != nil {
		return nil, err
	}
	value, err := b.createValue(tok.Tag, tok.Elements[3])
	if err != nil {
		return nil, err
	}
	return &ValueAssignment{ValueName: name, TypeDecl: decl, Value: value}, nil
}

func (v *ValueAssignment) ReferenceName() string { return v.ValueName.ReferenceName() }

// References lists the type name and, when the value is itself a reference,
// the referenced value name. Literal values do not affect declaration order.
func (v *ValueAssignment) References() []string {
	var refs []string
	if named, ok := v.TypeDecl.(typeNamed); ok {
		refs = append(refs, named.typeName())
	}
	if ref, ok := v.Value.(*ValueReference); ok {
		refs = append(refs, ref.ReferenceName())
	}
	return refs
}

func (*ValueAssignment) semaNode() {}

func (v *ValueAssignment) String() string {
	return v.ValueName.String() + " " + v.TypeDecl.String() + " ::= " + v.Value.String()
}

// ValueReference is a use of another value by name.
type ValueReference struct {
	Name string
}

func newValueReference(tok *token.Token) (*ValueReference, error) {
	name, ok := tok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected a name literal"}
	}
	return &ValueReference{Name: name}, nil
}

func (v *ValueReference) ReferenceName() string { return v.Name }

func (v *ValueReference) References() []string { return nil }

func (*ValueReference) semaNode() {}

func (*ValueReference) valueOperand() {}

func (v *ValueReference) String() string { return v.Name }

// NamedValue is one name/number pair in an enumeration or named bit list.
type NamedValue struct {
	Identifier string
	Value      string
}

func newNamedValue(tok *token.Token) (*NamedValue, error) {
	if len(tok.Elements) != 2 {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "expected two elements"}
	}
	identTok, ok := tok.Sub(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "identifier is not a tagged node"}
	}
	ident, ok := identTok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "identifier has no name"}
	}
	valueTok, ok := tok.Sub(1)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "value is not a tagged node"}
	}
	value, ok := valueTok.Lit(0)
	if !ok {
		return nil, &InvalidShapeError{Tag: tok.Tag, Reason: "value is not a literal"}
	}
	return &NamedValue{Identifier: ident, Value: value}, nil
}

func (n *NamedValue) References() []string { return nil }

func (*NamedValue) semaNode() {}

func (n *NamedValue) String() string {
	return n.Identifier + " (" + n.Value + ")"
}
