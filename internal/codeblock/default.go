package codeblock

import (
	"time"

	"mdocx/ast"
	"mdocx/internal/config"
)

// DefaultStrategy leaves code untouched: it is the always-registered
// fallback used for any language with no dedicated strategy, and for
// code blocks with no language tag at all.
type DefaultStrategy struct{}

// NewDefaultStrategy returns the fallback strategy.
func NewDefaultStrategy() *DefaultStrategy { return &DefaultStrategy{} }

func (d *DefaultStrategy) Process(code string, _ config.LanguageProcessing) (*ast.ProcessedCodeBlock, error) {
	start := time.Now()
	return &ast.ProcessedCodeBlock{
		OriginalCode:  code,
		ProcessedCode: nil,
		Metadata: ast.ProcessingMetadata{
			SyntaxValid:      true,
			ProcessingTimeNS: time.Since(start).Nanoseconds(),
			ProcessorVersion: d.Version(),
		},
	}, nil
}

// SupportsLanguage always reports false: the default strategy is never
// picked by alias matching, only via the registry's explicit fallback.
func (d *DefaultStrategy) SupportsLanguage(name string) bool { return false }
func (d *DefaultStrategy) PrimaryLanguageName() string       { return "default" }
func (d *DefaultStrategy) Priority() uint8                   { return 0 }
func (d *DefaultStrategy) Version() string                   { return "1.0.0" }
func (d *DefaultStrategy) Description() string {
	return "Leaves code untouched; the fallback for unknown or absent language tags."
}
