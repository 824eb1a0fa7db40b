package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetFinalCodeFallsBackToSourceWhenUnprocessed(t *testing.T) {
	cb := &CodeBlock{Source: "let x = 1;"}
	if got := cb.GetFinalCode(); got != "let x = 1;" {
		t.Errorf("GetFinalCode() = %q, want Source", got)
	}
}

func TestGetFinalCodePrefersProcessedCode(t *testing.T) {
	processed := "let x: i32 = 1;"
	cb := &CodeBlock{
		Source:    "let x = 1;",
		Processed: &ProcessedCodeBlock{OriginalCode: "let x = 1;", ProcessedCode: &processed},
	}
	if got := cb.GetFinalCode(); got != processed {
		t.Errorf("GetFinalCode() = %q, want %q", got, processed)
	}
}

// TestDocumentDeepEquality exercises go-cmp over a tree mixing every
// block and inline kind, confirming two independently-built documents
// with identical content compare equal and that a single differing
// leaf (here, a Bold run's text) is reported.
func TestDocumentDeepEquality(t *testing.T) {
	build := func(boldText string) *Document {
		width := 200
		return &Document{Blocks: []Block{
			&Heading{Level: 1, Prefix: "1. ", Inlines: []Inline{&Text{Value: "Title"}}},
			&Paragraph{Inlines: []Inline{
				&Text{Value: "see "},
				&Bold{Value: boldText},
				&Link{Text: "docs", URL: "https://example.com"},
			}},
			&Table{
				Header: []TableCell{{Inlines: []Inline{&Text{Value: "A"}}}},
				Rows:   [][]TableCell{{{Inlines: []Inline{&Text{Value: "1"}}}}},
			},
			&List{Ordered: true, Items: [][]Block{
				{&Paragraph{Inlines: []Inline{&Text{Value: "item"}}}},
			}},
			&BlockQuote{Blocks: []Block{&Paragraph{Inlines: []Inline{&Text{Value: "quoted"}}}}},
			&HorizontalRule{},
			&Image{Alt: "diagram", URL: "pic.png", Width: &width},
		}}
	}

	a, b := build("warning"), build("warning")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical documents should compare equal (-want +got):\n%s", diff)
	}

	c := build("danger")
	diff := cmp.Diff(a, c)
	if diff == "" {
		t.Fatalf("expected a diff between documents with different Bold text")
	}
}

func TestProcessedCodeBlockDeepEquality(t *testing.T) {
	line := 3
	a := &ProcessedCodeBlock{
		OriginalCode: "x",
		Metadata:     ProcessingMetadata{SyntaxValid: true, ProcessorVersion: "1.0.0"},
		Errors:       []ProcessingError{{Kind: "timeout", Message: "too slow", Line: &line, Severity: SeverityMedium}},
		Warnings:     []ProcessingWarning{{Kind: "code_quality", Message: "avoid unwrap()"}},
	}
	b := &ProcessedCodeBlock{
		OriginalCode: "x",
		Metadata:     ProcessingMetadata{SyntaxValid: true, ProcessorVersion: "1.0.0"},
		Errors:       []ProcessingError{{Kind: "timeout", Message: "too slow", Line: &line, Severity: SeverityMedium}},
		Warnings:     []ProcessingWarning{{Kind: "code_quality", Message: "avoid unwrap()"}},
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("equivalent ProcessedCodeBlock values should compare equal (-want +got):\n%s", diff)
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityLow:      "low",
		SeverityMedium:   "medium",
		SeverityHigh:     "high",
		SeverityCritical: "critical",
		Severity(99):     "unknown",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
