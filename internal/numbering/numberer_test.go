package numbering

import (
	"testing"

	"mdocx/ast"
)

func headingText(h *ast.Heading) string {
	if len(h.Inlines) == 0 {
		return ""
	}
	t, ok := h.Inlines[0].(*ast.Text)
	if !ok {
		return ""
	}
	return t.Value
}

func TestNumberCounters(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Heading{Level: 1, Inlines: []ast.Inline{&ast.Text{Value: "A"}}},
			&ast.Heading{Level: 2, Inlines: []ast.Inline{&ast.Text{Value: "A.1"}}},
			&ast.Heading{Level: 2, Inlines: []ast.Inline{&ast.Text{Value: "A.2"}}},
			&ast.Heading{Level: 1, Inlines: []ast.Inline{&ast.Text{Value: "B"}}},
			&ast.Heading{Level: 2, Inlines: []ast.Inline{&ast.Text{Value: "B.1"}}},
		},
	}

	warnings := Number(doc, map[int]string{1: "%1.", 2: "%1.%2."})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []string{"1. ", "1.1. ", "1.2. ", "2. ", "2.1. "}
	for i, b := range doc.Blocks {
		h := b.(*ast.Heading)
		if h.Prefix != want[i] {
			t.Errorf("heading %d prefix = %q, want %q", i, h.Prefix, want[i])
		}
		if headingText(h) != h.Prefix {
			t.Errorf("heading %d first inline = %q, want prefix %q", i, headingText(h), h.Prefix)
		}
	}
}

func TestNumberSkipLevel(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Heading{Level: 1, Inlines: []ast.Inline{&ast.Text{Value: "A"}}},
			&ast.Heading{Level: 3, Inlines: []ast.Inline{&ast.Text{Value: "A.x.1"}}},
		},
	}

	Number(doc, map[int]string{1: "%1.", 2: "%1.%2.", 3: "%1.%2.%3."})

	h3 := doc.Blocks[1].(*ast.Heading)
	if h3.Prefix != "1.0.1. " {
		t.Errorf("skip-level prefix = %q, want %q", h3.Prefix, "1.0.1. ")
	}
}

func TestNumberInvalidFormatDegrades(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Heading{Level: 1, Inlines: []ast.Inline{&ast.Text{Value: "A"}}},
			&ast.Heading{Level: 2, Inlines: []ast.Inline{&ast.Text{Value: "A.1"}}},
		},
	}

	warnings := Number(doc, map[int]string{1: "no placeholder", 2: "%1.%2."})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}

	h1 := doc.Blocks[0].(*ast.Heading)
	if h1.Prefix != "" {
		t.Errorf("level 1 should be unprefixed, got %q", h1.Prefix)
	}
	h2 := doc.Blocks[1].(*ast.Heading)
	if h2.Prefix != "1.1. " {
		t.Errorf("level 2 prefix = %q, want %q", h2.Prefix, "1.1. ")
	}
}
