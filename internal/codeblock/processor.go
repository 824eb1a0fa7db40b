package codeblock

import (
	"time"

	"mdocx/ast"
	"mdocx/internal/config"
)

// Processor wires a Registry to the global code_block_processing
// configuration: it decides whether processing runs at all, looks up
// the right strategy, and enforces the per-language timeout and
// error-recovery rules of §4.2/§5.
type Processor struct {
	Registry *Registry
}

// NewProcessor returns a Processor backed by a fresh registry with all
// built-in strategies registered.
func NewProcessor() *Processor {
	return &Processor{Registry: NewRegistry()}
}

// Process runs the configured strategy for language against code. It
// returns (nil, nil) when code-block processing is disabled globally
// (§4.1: "If the Processor is disabled globally, no annotation is
// attached"). Strategy panics are not recovered here: strategies are
// synchronous, pure functions over a string and are expected never to
// panic; a defensive recover would mask a real programming error
// rather than a user-input problem.
func (p *Processor) Process(language, code string, global config.CodeBlockProcessing) *ast.ProcessedCodeBlock {
	if !global.EnableProcessing {
		return nil
	}

	langCfg := global.Languages[language]
	timeoutMS := langCfg.TimeoutMS
	if timeoutMS <= 0 {
		timeoutMS = global.DefaultTimeoutMS
	}

	strategy := p.Registry.Lookup(language)

	entered := time.Now()
	result, err := strategy.Process(code, langCfg)
	elapsed := time.Since(entered)

	if err != nil {
		// §4.2 "Failure and recovery": an unhandled strategy error
		// substitutes the default strategy's output plus a warning.
		fallback, _ := NewDefaultStrategy().Process(code, langCfg)
		fallback.Warnings = append(fallback.Warnings, ast.ProcessingWarning{
			Kind:    "strategy_error",
			Message: "strategy failed, falling back to unmodified code: " + err.Error(),
		})
		return fallback
	}

	if timeoutMS > 0 && elapsed > time.Duration(timeoutMS)*time.Millisecond {
		return &ast.ProcessedCodeBlock{
			OriginalCode: code,
			Metadata: ast.ProcessingMetadata{
				SyntaxValid:      true,
				ProcessingTimeNS: elapsed.Nanoseconds(),
				ProcessorVersion: strategy.Version(),
			},
			Errors: []ast.ProcessingError{{
				Kind:     "timeout",
				Message:  "code-block processing exceeded its configured timeout",
				Severity: ast.SeverityMedium,
			}},
		}
	}

	return result
}
