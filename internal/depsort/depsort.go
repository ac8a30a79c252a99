// Package depsort orders declarations so that every declaration comes after
// the declarations it depends on.
//
// It works on anything that can name itself and list the names it references,
// which in practice is a module's type and value assignments. Referenced
// names with no matching declaration (built-in types, imported names) are
// treated as already satisfied and never block sorting.
package depsort

import (
	"fmt"
	"sort"
	"strings"
)

// Nameable is an entity that can be referenced by name.
type Nameable interface {
	ReferenceName() string
}

// Dependent is an entity that references other entities by name.
type Dependent interface {
	References() []string
}

// Declaration is an entity the sorter can order: it has a name of its own
// and a list of names it depends on.
type Declaration interface {
	Nameable
	Dependent
}

// CycleError reports declarations that cannot be ordered because they
// reference each other, directly or transitively.
type CycleError struct {
	// Remaining maps each unsortable name to its still-unsatisfied
	// dependency names.
	Remaining map[string][]string
}

func (e *CycleError) Error() string {
	names := make([]string, 0, len(e.Remaining))
	for name := range e.Remaining {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s -> [%s]", name, strings.Join(e.Remaining[name], ", ")))
	}
	return "cyclic references: " + strings.Join(parts, "; ")
}

// Sort returns the declarations reordered dependency-first: every
// declaration appears after all declarations it references. The input is not
// modified; the result holds the same declarations.
//
// The order is deterministic for a given input order. Ties follow the stack
// discipline of the removal pass below, not alphabetical or breadth-first
// order.
func Sort[T Declaration](decls []T) ([]T, error) {
	// Graph of name -> dependency names, keyed in input order.
	graph := make(map[string][]string, len(decls))
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		name := d.ReferenceName()
		if _, ok := graph[name]; !ok {
			names = append(names, name)
		}
		graph[name] = dedup(d.References())
	}

	hasPredecessor := func(name string) bool {
		for _, key := range names {
			deps, ok := graph[key]
			if !ok {
				continue // already removed
			}
			for _, dep := range deps {
				if dep == name {
					return true
				}
			}
		}
		return false
	}

	// Start from the names nothing depends on and peel the graph from the
	// dependent end: popping a name frees the names it references, so names
	// popped later are closer to the leaves.
	var stack []string
	for _, name := range names {
		if !hasPredecessor(name) {
			stack = append(stack, name)
		}
	}

	popped := make([]string, 0, len(names))
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		successors := graph[top]
		delete(graph, top)
		for _, succ := range successors {
			if !hasPredecessor(succ) {
				stack = append(stack, succ)
			}
		}
		popped = append(popped, top)
	}

	if len(graph) > 0 {
		remaining := make(map[string][]string, len(graph))
		for name, deps := range graph {
			remaining[name] = deps
		}
		return nil, &CycleError{Remaining: remaining}
	}

	// Reverse pop order: dependencies first, dependents last.
	rank := make(map[string]int, len(popped))
	for i, name := range popped {
		rank[name] = len(popped) - 1 - i
	}

	sorted := make([]T, len(decls))
	copy(sorted, decls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank[sorted[i].ReferenceName()] < rank[sorted[j].ReferenceName()]
	})
	return sorted, nil
}

// dedup removes duplicate names, preserving first-occurrence order so the
// sort stays deterministic.
func dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
