package sema

import (
	"fmt"
	"strings"
)

// UnknownNodeKindError indicates a token tag the node factory does not
// recognize.
type UnknownNodeKindError struct {
	Tag string
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("unknown node kind: %s", e.Tag)
}

// InvalidShapeError indicates a token whose elements do not match the shape
// its tag requires. The grammar parser never emits such tokens, so this is a
// contract violation by the caller, not bad user input.
type InvalidShapeError struct {
	Tag    string
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid %s token: %s", e.Tag, e.Reason)
}

// UnresolvedTypeError indicates a type reference whose target is not
// declared in the module.
type UnresolvedTypeError struct {
	Name string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unresolved type reference: %s", e.Name)
}

// ResolutionCycleError indicates a chain of type references that leads back
// to itself. Names appear in the order they were visited.
type ResolutionCycleError struct {
	Names []string
}

func (e *ResolutionCycleError) Error() string {
	return fmt.Sprintf("cyclic type reference: %s", strings.Join(e.Names, " -> "))
}
