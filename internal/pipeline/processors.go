package pipeline

import (
	"fmt"

	"github.com/funvibe/asnsema/internal/depsort"
	"github.com/funvibe/asnsema/internal/sema"
	"github.com/funvibe/asnsema/internal/token"
)

// DecodeProcessor decodes the parser's token document into token trees.
type DecodeProcessor struct{}

func (DecodeProcessor) Process(ctx *Context) *Context {
	tokens, err := token.DecodeDocument(ctx.Input)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Tokens = tokens
	return ctx
}

// SemaProcessor builds the semantic model from the decoded token trees.
type SemaProcessor struct{}

func (SemaProcessor) Process(ctx *Context) *Context {
	if ctx.Tokens == nil {
		return ctx
	}
	modules, err := sema.BuildSemanticModel(ctx.Tokens)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Modules = modules
	return ctx
}

// SortProcessor orders each module's declarations dependency-first.
type SortProcessor struct{}

func (SortProcessor) Process(ctx *Context) *Context {
	for _, mod := range ctx.Modules {
		sorted, err := depsort.Sort(mod.Declarations)
		if err != nil {
			ctx.Errors = append(ctx.Errors, fmt.Errorf("module %s: %w", mod.Name, err))
			continue
		}
		ctx.Sorted[mod.Name] = sorted
	}
	return ctx
}
