package markdown

import (
	"testing"

	"mdocx/ast"
	"mdocx/internal/config"
)

func parse(t *testing.T, source string) *ast.Document {
	t.Helper()
	doc, err := NewParser().Parse(source, config.CodeBlockProcessing{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestParseHeadingAndParagraph(t *testing.T) {
	doc := parse(t, "# Title\n\nSome body text.\n")
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	h, ok := doc.Blocks[0].(*ast.Heading)
	if !ok || h.Level != 1 {
		t.Fatalf("expected level-1 heading, got %+v", doc.Blocks[0])
	}
	if len(h.Inlines) != 1 || h.Inlines[0].(*ast.Text).Value != "Title" {
		t.Errorf("unexpected heading text: %+v", h.Inlines)
	}
	p, ok := doc.Blocks[1].(*ast.Paragraph)
	if !ok || p.Inlines[0].(*ast.Text).Value != "Some body text." {
		t.Fatalf("unexpected paragraph: %+v", doc.Blocks[1])
	}
}

func TestParseEmphasisNesting(t *testing.T) {
	// §4.1: nested Strong regions such as **a****b****c** must not loop
	// forever; each is its own flat Bold run.
	doc := parse(t, "**a****b****c**")
	p := doc.Blocks[0].(*ast.Paragraph)
	if len(p.Inlines) != 3 {
		t.Fatalf("expected 3 bold runs, got %d: %+v", len(p.Inlines), p.Inlines)
	}
	for i, want := range []string{"a", "b", "c"} {
		b, ok := p.Inlines[i].(*ast.Bold)
		if !ok || b.Value != want {
			t.Errorf("inline %d = %+v, want Bold(%q)", i, p.Inlines[i], want)
		}
	}
}

func TestParseHardBreakAndLiteralBR(t *testing.T) {
	doc := parse(t, "line one  \nline two\n")
	p := doc.Blocks[0].(*ast.Paragraph)
	joined := ""
	for _, in := range p.Inlines {
		joined += in.(*ast.Text).Value
	}
	if joined != "line one\nline two" {
		t.Errorf("got %q, want %q", joined, "line one\nline two")
	}

	doc = parse(t, "a<br />b")
	p = doc.Blocks[0].(*ast.Paragraph)
	if len(p.Inlines) != 1 || p.Inlines[0].(*ast.Text).Value != "a\nb" {
		t.Errorf("literal <br /> not folded to \\n: %+v", p.Inlines)
	}
}

func TestParseSoftBreakBecomesSpace(t *testing.T) {
	doc := parse(t, "line one\nline two\n")
	p := doc.Blocks[0].(*ast.Paragraph)
	joined := ""
	for _, in := range p.Inlines {
		joined += in.(*ast.Text).Value
	}
	if joined != "line one line two" {
		t.Errorf("got %q, want soft break collapsed to a space", joined)
	}
}

func TestParseImageQueryParams(t *testing.T) {
	doc := parse(t, "![alt text](pic.png?width=200&height=100&bogus=x)\n")
	img, ok := doc.Blocks[0].(*ast.Image)
	if !ok {
		t.Fatalf("expected standalone block image, got %+v", doc.Blocks[0])
	}
	if img.URL != "pic.png" {
		t.Errorf("URL = %q, want pic.png", img.URL)
	}
	if img.Width == nil || *img.Width != 200 {
		t.Errorf("Width = %v, want 200", img.Width)
	}
	if img.Height == nil || *img.Height != 100 {
		t.Errorf("Height = %v, want 100", img.Height)
	}
}

func TestParseImageTitle(t *testing.T) {
	doc := parse(t, `![alt text](pic.png "a caption")`+"\n")
	img, ok := doc.Blocks[0].(*ast.Image)
	if !ok {
		t.Fatalf("expected standalone block image, got %+v", doc.Blocks[0])
	}
	if img.Title != "a caption" {
		t.Errorf("Title = %q, want %q", img.Title, "a caption")
	}

	doc = parse(t, `before ![alt](pic.png "inline caption") after`+"\n")
	p := doc.Blocks[0].(*ast.Paragraph)
	var found *ast.InlineImage
	for _, in := range p.Inlines {
		if im, ok := in.(*ast.InlineImage); ok {
			found = im
		}
	}
	if found == nil || found.Title != "inline caption" {
		t.Fatalf("expected inline image with Title %q, got %+v", "inline caption", found)
	}
}

func TestParseImageUnparseableDimensionIgnored(t *testing.T) {
	doc := parse(t, "![alt](pic.png?width=abc&height=50)\n")
	img := doc.Blocks[0].(*ast.Image)
	if img.Width != nil {
		t.Errorf("expected Width to stay nil for unparseable value, got %v", *img.Width)
	}
	if img.Height == nil || *img.Height != 50 {
		t.Errorf("Height = %v, want 50", img.Height)
	}
}

func TestParseInlineImageKeepsSurroundingText(t *testing.T) {
	doc := parse(t, "before ![alt](pic.png) after\n")
	p := doc.Blocks[0].(*ast.Paragraph)
	var sawImage bool
	for _, in := range p.Inlines {
		if img, ok := in.(*ast.InlineImage); ok {
			sawImage = true
			if img.URL != "pic.png" {
				t.Errorf("URL = %q", img.URL)
			}
		}
	}
	if !sawImage {
		t.Fatalf("expected an inline image among %+v", p.Inlines)
	}
}

func TestParseTaskListCheckbox(t *testing.T) {
	doc := parse(t, "- [ ] todo\n- [x] done\n")
	l := doc.Blocks[0].(*ast.List)
	first := l.Items[0][0].(*ast.Paragraph)
	if first.Inlines[0].(*ast.Text).Value != "☐ " {
		t.Errorf("unchecked box = %q, want ☐", first.Inlines[0].(*ast.Text).Value)
	}
	second := l.Items[1][0].(*ast.Paragraph)
	if second.Inlines[0].(*ast.Text).Value != "☑ " {
		t.Errorf("checked box = %q, want ☑", second.Inlines[0].(*ast.Text).Value)
	}
}

func TestParseTable(t *testing.T) {
	doc := parse(t, "| A | B |\n|---|---|\n| 1 | 2 |\n")
	tbl, ok := doc.Blocks[0].(*ast.Table)
	if !ok {
		t.Fatalf("expected table, got %+v", doc.Blocks[0])
	}
	if len(tbl.Header) != 2 || len(tbl.Rows) != 1 || len(tbl.Rows[0]) != 2 {
		t.Fatalf("unexpected table shape: %+v", tbl)
	}
	if tbl.Header[0].Inlines[0].(*ast.Text).Value != "A" {
		t.Errorf("header cell 0 = %+v", tbl.Header[0])
	}
}

func TestParseStrikethrough(t *testing.T) {
	doc := parse(t, "this is ~~gone~~ text\n")
	p := doc.Blocks[0].(*ast.Paragraph)
	var found bool
	for _, in := range p.Inlines {
		if s, ok := in.(*ast.Strikethrough); ok {
			found = true
			if s.Value != "gone" {
				t.Errorf("strikethrough value = %q", s.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected a strikethrough run among %+v", p.Inlines)
	}
}

func TestParseCodeBlockAttachesProcessedAnnotation(t *testing.T) {
	doc, err := NewParser().Parse("```rust\nlet x = 1;\n```\n", config.CodeBlockProcessing{
		EnableProcessing: true,
		Languages:        map[string]config.LanguageProcessing{"rust": {EnableFormatting: true}},
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cb, ok := doc.Blocks[0].(*ast.CodeBlock)
	if !ok {
		t.Fatalf("expected code block, got %+v", doc.Blocks[0])
	}
	if cb.Language != "rust" {
		t.Errorf("Language = %q, want rust", cb.Language)
	}
	if cb.Processed == nil || cb.Processed.ProcessedCode == nil {
		t.Fatalf("expected processed code to be attached")
	}
}

func TestParseCodeBlockNoAnnotationWhenDisabled(t *testing.T) {
	doc := parse(t, "```rust\nlet x = 1;\n```\n")
	cb := doc.Blocks[0].(*ast.CodeBlock)
	if cb.Processed != nil {
		t.Errorf("expected nil Processed when processing is disabled globally, got %+v", cb.Processed)
	}
}

func TestParseBlockquoteAndHorizontalRule(t *testing.T) {
	doc := parse(t, "> quoted\n\n---\n")
	if _, ok := doc.Blocks[0].(*ast.BlockQuote); !ok {
		t.Errorf("expected blockquote, got %+v", doc.Blocks[0])
	}
	if _, ok := doc.Blocks[1].(*ast.HorizontalRule); !ok {
		t.Errorf("expected horizontal rule, got %+v", doc.Blocks[1])
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := NewParser().Parse(string([]byte{0xff, 0xfe, 0x00}), config.CodeBlockProcessing{})
	if err == nil {
		t.Fatal("expected an error for invalid UTF-8")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != "invalid_utf8" {
		t.Errorf("got %v, want ParseError{Kind: invalid_utf8}", err)
	}
}
