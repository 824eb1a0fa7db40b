package codeblock

import (
	"strings"
	"testing"

	"mdocx/internal/config"
)

func TestRustStrategyFormatsSnippetWithoutValidSyntax(t *testing.T) {
	r := NewRustStrategy()
	cfg := config.LanguageProcessing{EnableFormatting: true}

	out, err := r.Process("pub mod bajie;", cfg)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out.ProcessedCode == nil {
		t.Fatal("expected formatting to run even on a bare snippet")
	}
	if !strings.Contains(*out.ProcessedCode, "[BOLD]pub[/BOLD]") {
		t.Errorf("expected pub to be bolded, got %q", *out.ProcessedCode)
	}
	if !strings.Contains(*out.ProcessedCode, "[BOLD]mod[/BOLD]") {
		t.Errorf("expected mod to be bolded, got %q", *out.ProcessedCode)
	}
}

func TestRustStrategyCommentBeforeKeyword(t *testing.T) {
	r := NewRustStrategy()
	cfg := config.LanguageProcessing{EnableFormatting: true}

	out, _ := r.Process("let x = 1; // let this stay commented", cfg)
	got := *out.ProcessedCode
	// The comment region must be wrapped in ITALIC before BOLD runs so
	// "let" inside the comment doesn't get its own nested BOLD marker.
	italicStart := strings.Index(got, "[ITALIC]")
	boldInsideComment := strings.Index(got[italicStart:], "[BOLD]let[/BOLD]")
	if boldInsideComment != -1 {
		t.Errorf("keyword inside comment should not be separately bolded: %q", got)
	}
}

func TestRustStrategyValidation(t *testing.T) {
	r := NewRustStrategy()
	cfg := config.LanguageProcessing{EnableSyntaxValidation: true}

	valid, _ := r.Process("fn main() { println!(\"hi\"); }", cfg)
	if !valid.Metadata.SyntaxValid {
		t.Errorf("expected balanced braces to validate")
	}

	invalid, _ := r.Process("fn main() { println!(\"hi\";", cfg)
	if invalid.Metadata.SyntaxValid {
		t.Errorf("expected unbalanced braces to fail validation")
	}
	if len(invalid.Errors) != 1 || invalid.Errors[0].Kind != "syntax" {
		t.Errorf("expected one syntax error, got %v", invalid.Errors)
	}
}

func TestRustStrategyQualityWarnings(t *testing.T) {
	r := NewRustStrategy()
	cfg := config.LanguageProcessing{EnableFormatting: true}

	out, _ := r.Process("let v = maybe.unwrap();\n// TODO: fix this\npanic!(\"no\");", cfg)
	if len(out.Warnings) != 3 {
		t.Fatalf("expected 3 quality warnings, got %d: %v", len(out.Warnings), out.Warnings)
	}
}

func TestRustStrategyOriginalCodePreserved(t *testing.T) {
	r := NewRustStrategy()
	cfg := config.LanguageProcessing{EnableFormatting: true, EnableSyntaxValidation: true}
	code := "    fn f() {\n        1\n    }"

	out, _ := r.Process(code, cfg)
	if out.OriginalCode != code {
		t.Errorf("OriginalCode mutated: got %q, want %q", out.OriginalCode, code)
	}
}
