package codeblock

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"mdocx/ast"
	"mdocx/internal/config"
)

// rustKeywords is the ~70-identifier set spec.md §4.2 enumerates:
// control-flow, declaration, visibility, async and reserved keywords,
// plus common primitive and standard-library type names.
var rustKeywords = []string{
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
	"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
	"self", "Self", "static", "struct", "super", "trait", "true", "type",
	"unsafe", "use", "where", "while", "abstract", "become", "box", "do",
	"final", "macro", "override", "priv", "typeof", "unsized", "virtual",
	"yield", "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16",
	"u32", "u64", "u128", "usize", "f32", "f64", "bool", "char", "str",
	"String", "Vec", "Option", "Result", "Box", "Rc", "Arc",
}

var rustKeywordPattern = regexp.MustCompile(
	`\b(` + strings.Join(escapeKeywords(rustKeywords), "|") + `)\b`,
)

func escapeKeywords(keywords []string) []string {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return escaped
}

// RustStrategy validates and formats Rust code blocks. It never
// rejects a block outright: a validation failure is recorded as a
// "syntax" ProcessingError on the result, and the block is still
// rendered (§4.2 "Failure and recovery").
type RustStrategy struct{}

// NewRustStrategy returns the built-in Rust strategy.
func NewRustStrategy() *RustStrategy { return &RustStrategy{} }

func (r *RustStrategy) Process(code string, cfg config.LanguageProcessing) (*ast.ProcessedCodeBlock, error) {
	start := time.Now()
	out := &ast.ProcessedCodeBlock{OriginalCode: code}
	out.Metadata.SyntaxValid = true

	if cfg.EnableSyntaxValidation {
		out.Metadata.IsValidated = true
		if err := validateRustBraces(code); err != nil {
			out.Metadata.SyntaxValid = false
			line := err.line
			out.Errors = append(out.Errors, ast.ProcessingError{
				Kind:     "syntax",
				Message:  err.Error(),
				Line:     &line,
				Severity: ast.SeverityMedium,
			})
		}
	}

	if cfg.EnableFormatting {
		// Formatting runs regardless of syntax validity (§4.2: even a
		// bare snippet like "pub mod bajie;" should still format).
		formatted := code
		formatted = italicizeRustComments(formatted)
		formatted = boldRustKeywords(formatted)
		out.ProcessedCode = &formatted
		out.Metadata.IsFormatted = true

		out.Warnings = append(out.Warnings, rustQualityWarnings(code)...)
	}

	out.Metadata.ProcessingTimeNS = time.Since(start).Nanoseconds()
	out.Metadata.ProcessorVersion = r.Version()
	return out, nil
}

type rustSyntaxError struct {
	line int
	msg  string
}

func (e *rustSyntaxError) Error() string { return e.msg }

// validateRustBraces does a best-effort balance check over
// {}, (), [] across the whole snippet, reporting the line of the first
// unmatched closer or, at EOF, the line of the innermost (most
// recently opened) delimiter still open. This is deliberately shallow: spec.md §4.2 only asks for
// "attempt to parse... record syntax validity," not a full parser.
func validateRustBraces(code string) *rustSyntaxError {
	type opener struct {
		ch   byte
		line int
	}
	var stack []opener
	pairs := map[byte]byte{'}': '{', ')': '(', ']': '['}
	line := 1

	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case '\n':
			line++
		case '{', '(', '[':
			stack = append(stack, opener{c, line})
		case '}', ')', ']':
			if len(stack) == 0 || stack[len(stack)-1].ch != pairs[c] {
				return &rustSyntaxError{line: line, msg: fmt.Sprintf("unmatched %q", string(c))}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &rustSyntaxError{line: top.line, msg: fmt.Sprintf("unclosed %q", string(top.ch))}
	}
	return nil
}

// rustCommentPattern finds the first "//" on a line, with no awareness
// of whether it falls inside a string literal. This is the naive
// search spec.md §9 flags as a known limitation of the source
// behavior (it will falsely italicize a "//" inside a string, e.g. a
// URL); it is kept exactly as described rather than fixed, per the
// instruction not to guess intent beyond what's written.
var rustCommentPattern = regexp.MustCompile(`//`)

func italicizeRustComments(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		idx := rustCommentPattern.FindStringIndex(line)
		if idx == nil {
			continue
		}
		lines[i] = line[:idx[0]] + "[ITALIC]" + line[idx[0]:] + "[/ITALIC]"
	}
	return strings.Join(lines, "\n")
}

var italicRegionPattern = regexp.MustCompile(`\[ITALIC\].*?\[/ITALIC\]`)

// boldRustKeywords wraps whole-word keyword occurrences in [BOLD]
// markers. It must run after italicizeRustComments, and it treats
// already-tagged [ITALIC]...[/ITALIC] regions as opaque (§4.2 ordering
// rule) so a keyword inside a commented-out line doesn't also get a
// nested [BOLD] tag.
func boldRustKeywords(code string) string {
	var b strings.Builder
	last := 0
	for _, span := range italicRegionPattern.FindAllStringIndex(code, -1) {
		b.WriteString(rustKeywordPattern.ReplaceAllString(code[last:span[0]], "[BOLD]$1[/BOLD]"))
		b.WriteString(code[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(rustKeywordPattern.ReplaceAllString(code[last:], "[BOLD]$1[/BOLD]"))
	return b.String()
}

var (
	unwrapPattern = regexp.MustCompile(`\.unwrap\(\)`)
	panicPattern  = regexp.MustCompile(`\bpanic!`)
	todoPattern   = regexp.MustCompile(`\bTODO\b`)
	fixmePattern  = regexp.MustCompile(`\bFIXME\b`)
)

func rustQualityWarnings(code string) []ast.ProcessingWarning {
	var warnings []ast.ProcessingWarning
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lineNo := i + 1
		for _, check := range []struct {
			pattern *regexp.Regexp
			kind    string
			message string
		}{
			{unwrapPattern, "code_quality", "unwrap() can panic; consider handling the error"},
			{panicPattern, "code_quality", "panic! aborts the program; consider returning a Result"},
			{todoPattern, "code_quality", "TODO left in code"},
			{fixmePattern, "code_quality", "FIXME left in code"},
		} {
			if check.pattern.MatchString(line) {
				ln := lineNo
				warnings = append(warnings, ast.ProcessingWarning{
					Kind:    check.kind,
					Message: check.message,
					Line:    &ln,
				})
			}
		}
	}
	return warnings
}

func (r *RustStrategy) SupportsLanguage(name string) bool {
	return name == "rust" || name == "rs"
}
func (r *RustStrategy) PrimaryLanguageName() string { return "rust" }
func (r *RustStrategy) Priority() uint8             { return 100 }
func (r *RustStrategy) Version() string             { return "1.0.0" }
func (r *RustStrategy) Description() string {
	return "Validates brace balance and annotates comments/keywords in Rust code blocks."
}
