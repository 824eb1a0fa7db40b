package codeblock

import (
	"regexp"
	"strings"
	"time"

	"mdocx/ast"
	"mdocx/internal/config"
)

// BashStrategy italicizes "#"-prefixed comments and flags a couple of
// obvious quality nits. It never validates syntax (§4.2: "No syntax
// validation").
type BashStrategy struct{}

// NewBashStrategy returns the built-in Bash/sh/zsh strategy.
func NewBashStrategy() *BashStrategy { return &BashStrategy{} }

var bashHashPattern = regexp.MustCompile(`#`)

func (b *BashStrategy) Process(code string, cfg config.LanguageProcessing) (*ast.ProcessedCodeBlock, error) {
	start := time.Now()
	out := &ast.ProcessedCodeBlock{OriginalCode: code}
	out.Metadata.SyntaxValid = true

	if cfg.EnableFormatting {
		lines := strings.Split(code, "\n")
		for i, line := range lines {
			idx := bashHashPattern.FindStringIndex(line)
			if idx == nil {
				continue
			}
			lines[i] = line[:idx[0]] + "[ITALIC]" + line[idx[0]:] + "[/ITALIC]"
		}
		formatted := strings.Join(lines, "\n")
		out.ProcessedCode = &formatted
		out.Metadata.IsFormatted = true
		out.Warnings = append(out.Warnings, bashQualityWarnings(code)...)
	}

	out.Metadata.ProcessingTimeNS = time.Since(start).Nanoseconds()
	out.Metadata.ProcessorVersion = b.Version()
	return out, nil
}

func bashQualityWarnings(code string) []ast.ProcessingWarning {
	var warnings []ast.ProcessingWarning
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lineNo := i + 1
		if strings.Contains(line, "rm -rf") {
			ln := lineNo
			warnings = append(warnings, ast.ProcessingWarning{
				Kind:    "code_quality",
				Message: "rm -rf is destructive; double-check the target path",
				Line:    &ln,
			})
		}
		if len(line) > 120 {
			ln := lineNo
			warnings = append(warnings, ast.ProcessingWarning{
				Kind:    "code_quality",
				Message: "line exceeds 120 characters",
				Line:    &ln,
			})
		}
	}
	return warnings
}

func (b *BashStrategy) SupportsLanguage(name string) bool {
	switch name {
	case "bash", "sh", "shell", "zsh":
		return true
	default:
		return false
	}
}
func (b *BashStrategy) PrimaryLanguageName() string { return "bash" }
func (b *BashStrategy) Priority() uint8             { return 100 }
func (b *BashStrategy) Version() string             { return "1.0.0" }
func (b *BashStrategy) Description() string {
	return "Italicizes # comments and flags destructive or over-long shell lines."
}
