package pipeline

import (
	"io"

	"github.com/google/uuid"

	"github.com/funvibe/asnsema/internal/sema"
	"github.com/funvibe/asnsema/internal/token"
)

// Context carries the state of one build through the pipeline stages.
type Context struct {
	// BuildID identifies this build invocation in diagnostics.
	BuildID uuid.UUID
	// Source names the input for error messages (file path or "<stdin>").
	Source string
	// Input is the token document to decode.
	Input io.Reader

	Tokens  []*token.Token
	Modules []*sema.Module
	// Sorted holds each module's declarations in dependency-first order,
	// keyed by module name.
	Sorted map[string][]sema.Declaration

	Errors []error
}

func NewContext(source string, input io.Reader) *Context {
	return &Context{
		BuildID: uuid.New(),
		Source:  source,
		Input:   input,
		Sorted:  make(map[string][]sema.Declaration),
	}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}
