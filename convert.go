// Package mdocx converts CommonMark/GFM Markdown into an OOXML .docx
// document: parse, run code-block strategies, auto-number headings,
// then emit the package. Each stage accumulates non-fatal problems
// into the returned []Warning rather than aborting the conversion.
package mdocx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"mdocx/ast"
	"mdocx/internal/config"
	"mdocx/internal/docx"
	"mdocx/internal/markdown"
	"mdocx/internal/numbering"
)

// Sentinel errors for the handful of terminal (non-recoverable)
// failure modes. Everything else degrades to a Warning.
var (
	ErrMalformedUTF8 = errors.New("mdocx: markdown source is not valid UTF-8")
	ErrInvalidConfig = errors.New("mdocx: configuration failed validation")
	ErrEmit          = errors.New("mdocx: failed to emit docx package")
)

// Warning is a single non-fatal problem surfaced by any pipeline
// stage. Stage is one of "parse", "codeblock", "numbering", "emit",
// "config".
type Warning struct {
	Stage   string
	Kind    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Kind, w.Message)
}

// Convert turns a Markdown source string into a complete .docx package.
// A nil cfg uses config.Default(). Convert never panics on malformed
// input; it returns ErrMalformedUTF8, wrapped, instead.
func Convert(source string, cfg *config.Config) ([]byte, []Warning, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	var warnings []Warning

	doc, err := markdown.NewParser().Parse(source, cfg.CodeBlockProcessing)
	if err != nil {
		var pe *markdown.ParseError
		if errors.As(err, &pe) && pe.Kind == "invalid_utf8" {
			return nil, warnings, fmt.Errorf("%w: %s", ErrMalformedUTF8, pe.Message)
		}
		return nil, warnings, fmt.Errorf("mdocx: parsing markdown: %w", err)
	}
	warnings = append(warnings, codeBlockWarnings(doc.Blocks)...)

	formats := numberingFormats(cfg)
	for _, w := range numbering.Number(doc, formats) {
		warnings = append(warnings, Warning{Stage: "numbering", Kind: "numbering", Message: w.Message})
	}

	pkg, emitWarnings, err := docx.Emit(doc, cfg)
	for _, w := range emitWarnings {
		warnings = append(warnings, Warning{Stage: "emit", Kind: w.Kind, Message: w.Message})
	}
	if err != nil {
		return nil, warnings, fmt.Errorf("%w: %v", ErrEmit, err)
	}

	return pkg, warnings, nil
}

// ConvertFile reads a Markdown file from path and converts it.
func ConvertFile(path string, cfg *config.Config) ([]byte, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mdocx: reading %s: %w", path, err)
	}
	return Convert(string(data), cfg)
}

// ConvertReader reads Markdown from r in full and converts it.
func ConvertReader(r io.Reader, cfg *config.Config) ([]byte, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("mdocx: reading source: %w", err)
	}
	return Convert(string(data), cfg)
}

// LoadConfig decodes and validates a YAML configuration document,
// wrapping a hard validation failure in ErrInvalidConfig.
func LoadConfig(yamlDoc []byte) (*config.Config, []Warning, error) {
	cfg, problems, err := config.Load(yamlDoc)
	var warnings []Warning
	for _, p := range problems {
		warnings = append(warnings, Warning{Stage: "config", Kind: "validation", Message: p})
	}
	if err != nil {
		return nil, warnings, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, warnings, nil
}

func numberingFormats(cfg *config.Config) map[int]string {
	formats := map[int]string{}
	for level, style := range cfg.Styles.Headings {
		if style.Numbering != "" {
			formats[level] = style.Numbering
		}
	}
	return formats
}

// codeBlockWarnings walks every block (recursing into lists,
// blockquotes and table cells have no blocks of their own) collecting
// the Errors/Warnings a code-block strategy attached, surfaced at the
// top level alongside every other stage's problems.
func codeBlockWarnings(blocks []ast.Block) []Warning {
	var out []Warning
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.CodeBlock:
			if n.Processed == nil {
				continue
			}
			for _, e := range n.Processed.Errors {
				out = append(out, Warning{Stage: "codeblock", Kind: e.Kind, Message: e.Message})
			}
			for _, w := range n.Processed.Warnings {
				out = append(out, Warning{Stage: "codeblock", Kind: w.Kind, Message: w.Message})
			}
		case *ast.List:
			for _, item := range n.Items {
				out = append(out, codeBlockWarnings(item)...)
			}
		case *ast.BlockQuote:
			out = append(out, codeBlockWarnings(n.Blocks)...)
		}
	}
	return out
}
