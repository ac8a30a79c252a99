package sema

import (
	"strings"
	"testing"

	"github.com/funvibe/asnsema/internal/depsort"
	"github.com/funvibe/asnsema/internal/token"
)

func TestRender_SimpleTypeWithConstraint(t *testing.T) {
	constraint := token.New("Constraint", token.Literal("0"), token.Literal("127"))
	mod := buildModule(t, moduleTok("M",
		typeAssignTok("X", simpleTypeTok("MyInt", constraint)),
	))
	rendered := mod.UserTypes()["X"].String()
	if rendered != "MyInt (0..127)" {
		t.Errorf("Expected %q, got %q", "MyInt (0..127)", rendered)
	}
}

func TestRender_TaggedType(t *testing.T) {
	tagged := token.New("TaggedType",
		token.New("Tag",
			token.New("TagClass", token.Literal("APPLICATION")),
			token.New("TagClassNumber", token.Literal("1"))),
		token.Literal("IMPLICIT"),
		typeTok(simpleTypeTok("INTEGER")))
	mod := buildModule(t, moduleTok("M", typeAssignTok("T", tagged)))
	rendered := mod.UserTypes()["T"].String()
	if rendered != "[APPLICATION 1] IMPLICIT INTEGER" {
		t.Errorf("Unexpected rendering: %q", rendered)
	}
}

func TestRender_ContextTagWithoutClass(t *testing.T) {
	tagged := token.New("TaggedType",
		token.New("Tag", token.New("TagClassNumber", token.Literal("0"))),
		typeTok(refTypeTok("Other")))
	mod := buildModule(t, moduleTok("M", typeAssignTok("T", tagged)))
	rendered := mod.UserTypes()["T"].String()
	if rendered != "[0] Other" {
		t.Errorf("Unexpected rendering: %q", rendered)
	}
}

func TestRender_Sequence(t *testing.T) {
	mod := buildModule(t, moduleTok("M",
		typeAssignTok("Foo", sequenceTok(
			componentTok("a", simpleTypeTok("INTEGER")),
			componentTok("b", refTypeTok("Bar")),
		)),
	))
	rendered := mod.Declarations[0].String()
	if rendered != "Foo ::= SEQUENCE { a INTEGER, b Bar }" {
		t.Errorf("Unexpected rendering: %q", rendered)
	}
}

func TestRender_ChoiceWithNamedTypes(t *testing.T) {
	choice := token.New("ChoiceType",
		token.Literal("CHOICE"),
		token.New("NamedType",
			token.New("Identifier", token.Literal("num")),
			typeTok(simpleTypeTok("INTEGER"))),
		token.New("NamedType",
			token.New("Identifier", token.Literal("str")),
			typeTok(simpleTypeTok("IA5String"))))
	mod := buildModule(t, moduleTok("M", typeAssignTok("V", choice)))
	rendered := mod.UserTypes()["V"].String()
	if rendered != "CHOICE { num INTEGER, str IA5String }" {
		t.Errorf("Unexpected rendering: %q", rendered)
	}
}

func TestRender_SequenceOf(t *testing.T) {
	seqOf := token.New("SequenceOfType", token.Literal("SEQUENCE OF"), typeTok(refTypeTok("Item")))
	mod := buildModule(t, moduleTok("M", typeAssignTok("Items", seqOf)))
	decl := mod.UserTypes()["Items"]
	if decl.String() != "SEQUENCE OF Item" {
		t.Errorf("Unexpected rendering: %q", decl.String())
	}
	refs := decl.References()
	if len(refs) != 1 || refs[0] != "Item" {
		t.Errorf("Expected the element type reference, got %v", refs)
	}
}

func TestRender_SetOf(t *testing.T) {
	setOf := token.New("SetOfType", token.Literal("SET OF"), typeTok(refTypeTok("Member")))
	mod := buildModule(t, moduleTok("M", typeAssignTok("Members", setOf)))
	decl := mod.UserTypes()["Members"]
	if _, ok := decl.(*SetOfType); !ok {
		t.Fatalf("Expected a *SetOfType, got %T", decl)
	}
	if decl.String() != "SET OF Member" {
		t.Errorf("Unexpected rendering: %q", decl.String())
	}
	refs := decl.References()
	if len(refs) != 1 || refs[0] != "Member" {
		t.Errorf("Expected the element type reference, got %v", refs)
	}
}

func TestRender_ValueListType(t *testing.T) {
	enum := token.New("ValueListType",
		token.Literal("INTEGER"),
		token.New("NamedValue",
			token.New("Identifier", token.Literal("red")),
			token.New("Number", token.Literal("0"))),
		token.New("NamedValue",
			token.New("Identifier", token.Literal("green")),
			token.New("Number", token.Literal("1"))))
	mod := buildModule(t, moduleTok("M", typeAssignTok("Color", enum)))
	rendered := mod.UserTypes()["Color"].String()
	if rendered != "INTEGER { red (0), green (1) }" {
		t.Errorf("Unexpected rendering: %q", rendered)
	}
}

func TestRender_BitStringWithoutNamedBits(t *testing.T) {
	bits := token.New("BitStringType", token.Literal("BIT STRING"))
	mod := buildModule(t, moduleTok("M", typeAssignTok("Flags", bits)))
	if got := mod.UserTypes()["Flags"].String(); got != "BIT STRING" {
		t.Errorf("Unexpected rendering: %q", got)
	}
}

func TestRender_ComponentModifiers(t *testing.T) {
	optional := token.New("ComponentType",
		token.New("Identifier", token.Literal("a")),
		typeTok(simpleTypeTok("INTEGER")),
		token.New("ComponentOptional", token.Literal("OPTIONAL")))
	defaulted := token.New("ComponentType",
		token.New("Identifier", token.Literal("b")),
		typeTok(simpleTypeTok("INTEGER")),
		token.New("ComponentDefault", token.Literal("DEFAULT"), token.Literal("5")))
	mod := buildModule(t, moduleTok("M",
		typeAssignTok("S", token.New("SequenceType", token.Literal("SEQUENCE"), optional, defaulted)),
	))
	rendered := mod.Declarations[0].String()
	if !strings.Contains(rendered, "a INTEGER OPTIONAL") {
		t.Errorf("Expected OPTIONAL rendering, got %q", rendered)
	}
	if !strings.Contains(rendered, "b INTEGER DEFAULT 5") {
		t.Errorf("Expected DEFAULT rendering, got %q", rendered)
	}
}

func TestRender_Module(t *testing.T) {
	mod := buildModule(t, moduleTok("MyModule",
		typeAssignTok("A", simpleTypeTok("INTEGER")),
	))
	rendered := mod.String()
	want := "MyModule DEFINITIONS ::=\nBEGIN\nA ::= INTEGER\nEND\n"
	if rendered != want {
		t.Errorf("Expected %q, got %q", want, rendered)
	}
}

func TestRender_ValueAssignment(t *testing.T) {
	va := token.New("ValueAssignment",
		token.New("ValueReference", token.Literal("answer")),
		typeTok(simpleTypeTok("INTEGER")),
		token.Literal("::="),
		token.Literal("42"))
	mod := buildModule(t, moduleTok("M", va))
	if got := mod.Declarations[0].String(); got != "answer INTEGER ::= 42" {
		t.Errorf("Unexpected rendering: %q", got)
	}
}

func TestValueAssignment_UserDefinedTypeDependency(t *testing.T) {
	// defaultFoo MyInt ::= 7 depends on MyInt even though MyInt arrives as a
	// forward reference rather than a built-in type token.
	va := token.New("ValueAssignment",
		token.New("ValueReference", token.Literal("defaultFoo")),
		typeTok(refTypeTok("MyInt")),
		token.Literal("::="),
		token.Literal("7"))
	mod := buildModule(t, moduleTok("M",
		va,
		typeAssignTok("MyInt", simpleTypeTok("INTEGER")),
	))

	refs := mod.Declarations[0].References()
	if len(refs) != 1 || refs[0] != "MyInt" {
		t.Fatalf("Expected [MyInt], got %v", refs)
	}

	sorted, err := depsort.Sort(mod.Declarations)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if sorted[0].ReferenceName() != "MyInt" || sorted[1].ReferenceName() != "defaultFoo" {
		t.Errorf("Expected [MyInt defaultFoo], got [%s %s]",
			sorted[0].ReferenceName(), sorted[1].ReferenceName())
	}
}

func TestDeclarationOrder_EndToEnd(t *testing.T) {
	// Foo ::= SEQUENCE { a INTEGER, b Bar }, Bar ::= INTEGER
	mod := buildModule(t, moduleTok("M",
		typeAssignTok("Foo", sequenceTok(
			componentTok("a", simpleTypeTok("INTEGER")),
			componentTok("b", refTypeTok("Bar")),
		)),
		typeAssignTok("Bar", simpleTypeTok("INTEGER")),
	))
	sorted, err := depsort.Sort(mod.Declarations)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	if sorted[0].ReferenceName() != "Bar" || sorted[1].ReferenceName() != "Foo" {
		t.Errorf("Expected [Bar Foo], got [%s %s]", sorted[0].ReferenceName(), sorted[1].ReferenceName())
	}
}
