package config

// TokenDocExt is the default extension for parser token documents.
const TokenDocExt = ".tokens.yaml"

// TokenDocExtensions are all recognized token document extensions
var TokenDocExtensions = []string{".tokens.yaml", ".yaml", ".yml"}

// UnnamedPrefix is the prefix used when synthesizing identifiers for
// unnamed members of constructed types.
const UnnamedPrefix = "unnamed"
