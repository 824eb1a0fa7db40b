// Package codeblock implements the pluggable code-block strategy
// system of spec.md §4.2: a registry of per-language processors that
// each turn raw code plus a processing configuration into a
// ProcessedCodeBlock, plus the built-in strategies (default, Rust,
// Bash, Note).
package codeblock

import (
	"mdocx/ast"
	"mdocx/internal/config"
)

// Strategy is the capability set every code-block processor exposes.
// Implementations are compared only by behavior, never by identity;
// new strategies can be registered at runtime without touching this
// package (open for extension, per §4.2).
type Strategy interface {
	// Process transforms code into a ProcessedCodeBlock. It must
	// never panic; any internal failure should be surfaced as a
	// ProcessingError on the returned value (or, if Process itself
	// returns an error, the caller substitutes the default strategy
	// and records a warning — see Registry.Lookup callers).
	Process(code string, cfg config.LanguageProcessing) (*ast.ProcessedCodeBlock, error)

	// SupportsLanguage reports whether name (already lowercased) is
	// this strategy's primary name or one of its aliases.
	SupportsLanguage(name string) bool

	// PrimaryLanguageName is the canonical key this strategy is
	// registered under.
	PrimaryLanguageName() string

	// Priority ranks strategies when more than one claims the same
	// language; higher wins. The built-in language strategies use 100;
	// DefaultStrategy, which never matches by name, uses 0.
	Priority() uint8

	Version() string
	Description() string
}
