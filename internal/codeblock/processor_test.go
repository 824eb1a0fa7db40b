package codeblock

import (
	"testing"

	"mdocx/internal/config"
)

func TestProcessorDisabledGlobally(t *testing.T) {
	p := NewProcessor()
	out := p.Process("rust", "fn main() {}", config.CodeBlockProcessing{EnableProcessing: false})
	if out != nil {
		t.Errorf("expected nil annotation when processing is disabled, got %+v", out)
	}
}

func TestProcessorDefaultLanguage(t *testing.T) {
	p := NewProcessor()
	out := p.Process("", "plain text", config.CodeBlockProcessing{EnableProcessing: true})
	if out == nil {
		t.Fatal("expected an annotation")
	}
	if out.ProcessedCode != nil {
		t.Errorf("default strategy should never set ProcessedCode, got %q", *out.ProcessedCode)
	}
}

func TestProcessorUsesPerLanguageConfig(t *testing.T) {
	p := NewProcessor()
	global := config.CodeBlockProcessing{
		EnableProcessing: true,
		Languages: map[string]config.LanguageProcessing{
			"rust": {EnableFormatting: true},
		},
	}
	out := p.Process("rust", "pub fn f() {}", global)
	if out.ProcessedCode == nil {
		t.Fatal("expected rust formatting to run")
	}
}
