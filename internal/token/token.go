// Package token defines the tagged token tree handed to the semantic layer
// by an external ASN.1 grammar parser.
//
// A tree is a sequence of tagged tokens whose children are either nested
// tokens or raw literal scalars. The semantic layer treats trees as
// immutable and never modifies them.
package token

// Element is one child of a Token: either a nested *Token or a Literal.
type Element interface {
	element()
}

// Literal is a raw scalar carried verbatim from the source text, such as a
// type keyword, an identifier or a number.
type Literal string

func (Literal) element() {}

func (l Literal) String() string { return string(l) }

// Token is one tagged node of the parse tree.
type Token struct {
	Tag      string
	Elements []Element
}

func (*Token) element() {}

// New constructs a tagged token. Tests and in-process parsers use it to
// assemble trees without going through the document form.
func New(tag string, elems ...Element) *Token {
	return &Token{Tag: tag, Elements: elems}
}

// Sub returns the i-th element as a nested token.
func (t *Token) Sub(i int) (*Token, bool) {
	if i < 0 || i >= len(t.Elements) {
		return nil, false
	}
	sub, ok := t.Elements[i].(*Token)
	return sub, ok
}

// Lit returns the i-th element as a literal scalar.
func (t *Token) Lit(i int) (string, bool) {
	if i < 0 || i >= len(t.Elements) {
		return "", false
	}
	lit, ok := t.Elements[i].(Literal)
	return string(lit), ok
}
