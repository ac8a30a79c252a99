// Package cli implements the asnsema command: it reads token documents
// written by an ASN.1 grammar parser, builds the semantic model and prints
// each module's canonical rendering and, on request, its declarations in
// dependency-first order.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/asnsema/internal/config"
	"github.com/funvibe/asnsema/internal/diagnostics"
	"github.com/funvibe/asnsema/internal/pipeline"
)

// Options holds the parsed command flags.
type Options struct {
	Sort    bool
	Verbose bool
	NoColor bool
}

// isTokenDocument checks if a path has a recognized token document extension
func isTokenDocument(path string) bool {
	for _, ext := range config.TokenDocExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run executes the command with the given arguments and returns the process
// exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asnsema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := Options{}
	fs.BoolVar(&opts.Sort, "sort", false, "print declaration names in dependency-first order")
	fs.BoolVar(&opts.Verbose, "verbose", false, "print build details")
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored diagnostics")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "usage: asnsema [flags] <module%s>...\n", config.TokenDocExt)
		fs.PrintDefaults()
		return 2
	}

	reporter := diagnostics.NewReporter(stderr, opts.NoColor)
	exit := 0
	for _, path := range paths {
		if code := runOne(path, opts, stdout, reporter); code != 0 {
			exit = code
		}
	}
	return exit
}

func runOne(path string, opts Options, stdout io.Writer, reporter *diagnostics.Reporter) int {
	var input io.Reader
	source := path
	if path == "-" {
		input = os.Stdin
		source = "<stdin>"
	} else {
		if !isTokenDocument(path) && opts.Verbose {
			reporter.Notef("%s: unrecognized extension, reading anyway", path)
		}
		f, err := os.Open(path)
		if err != nil {
			reporter.Report(path, err)
			return 1
		}
		defer f.Close()
		input = f
	}

	ctx := pipeline.NewContext(source, input)
	p := pipeline.New(
		pipeline.DecodeProcessor{},
		pipeline.SemaProcessor{},
		pipeline.SortProcessor{},
	)
	ctx = p.Run(ctx)

	if opts.Verbose {
		reporter.Notef("build %s: %s (%d modules)", ctx.BuildID, source, len(ctx.Modules))
	}

	for _, mod := range ctx.Modules {
		fmt.Fprint(stdout, mod.String())
		if opts.Sort {
			if sorted, ok := ctx.Sorted[mod.Name]; ok {
				fmt.Fprintf(stdout, "-- %s dependency order:", mod.Name)
				for _, decl := range sorted {
					fmt.Fprintf(stdout, " %s", decl.ReferenceName())
				}
				fmt.Fprintln(stdout)
			}
		}
	}

	if len(ctx.Errors) > 0 {
		for _, err := range ctx.Errors {
			reporter.Report(source, err)
		}
		return 1
	}
	return 0
}
