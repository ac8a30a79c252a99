package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureDoc = `
- tag: ModuleDefinition
  elems:
    - tag: ModuleReference
      elems: [TestModule]
    - DEFINITIONS
    - "::="
    - BEGIN
    - tag: ModuleBody
      elems:
        - tag: TypeAssignment
          elems:
            - Foo
            - "::="
            - tag: Type
              elems:
                - tag: SequenceType
                  elems:
                    - SEQUENCE
                    - tag: ComponentType
                      elems:
                        - tag: Identifier
                          elems: [b]
                        - tag: Type
                          elems:
                            - tag: ReferencedType
                              elems: [Bar]
        - tag: TypeAssignment
          elems:
            - Bar
            - "::="
            - tag: Type
              elems:
                - tag: SimpleType
                  elems: [INTEGER]
    - END
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestRun_PrintsCanonicalRendering(t *testing.T) {
	path := writeFixture(t, "mod.tokens.yaml", fixtureDoc)
	var stdout, stderr bytes.Buffer
	code := Run([]string{path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "TestModule DEFINITIONS ::=") {
		t.Errorf("Expected the module rendering, got %q", out)
	}
	if !strings.Contains(out, "Foo ::= SEQUENCE { b Bar }") {
		t.Errorf("Expected the sequence rendering, got %q", out)
	}
}

func TestRun_SortPrintsDependencyOrder(t *testing.T) {
	path := writeFixture(t, "mod.tokens.yaml", fixtureDoc)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-sort", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "-- TestModule dependency order: Bar Foo") {
		t.Errorf("Expected Bar before Foo in dependency order, got %q", out)
	}
}

func TestRun_MalformedDocument(t *testing.T) {
	path := writeFixture(t, "bad.tokens.yaml", "tag: NotASequence")
	var stdout, stderr bytes.Buffer
	code := Run([]string{path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("Expected an error report on stderr, got %q", stderr.String())
	}
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{filepath.Join(t.TempDir(), "nope.tokens.yaml")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("Expected exit 1, got %d", code)
	}
}

func TestRun_NoArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("Expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Errorf("Expected usage on stderr, got %q", stderr.String())
	}
}

func TestIsTokenDocument(t *testing.T) {
	cases := map[string]bool{
		"mod.tokens.yaml": true,
		"mod.yaml":        true,
		"mod.yml":         true,
		"mod.asn1":        false,
	}
	for path, want := range cases {
		if got := isTokenDocument(path); got != want {
			t.Errorf("isTokenDocument(%q) = %v, want %v", path, got, want)
		}
	}
}
