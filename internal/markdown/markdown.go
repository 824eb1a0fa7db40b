// Package markdown turns a Markdown source string into the document
// model defined by package ast, walking a goldmark-parsed tree with
// GFM tables, strikethrough, task lists and hard breaks enabled.
package markdown

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"mdocx/ast"
	"mdocx/internal/codeblock"
	"mdocx/internal/config"
)

// ParseError reports a malformed-input condition detected while
// walking the parsed tree. Kind is one of "invalid_utf8" or
// "inconsistent_events" per §4.1's failure semantics.
type ParseError struct {
	Kind    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("markdown: %s: %s", e.Kind, e.Message)
}

// Parser walks goldmark's parsed tree into an *ast.Document, invoking
// a code-block Processor on every fenced/indented code block it
// encounters.
type Parser struct {
	md        goldmark.Markdown
	processor *codeblock.Processor
}

// NewParser returns a Parser backed by a fresh code-block Processor
// with every built-in strategy registered.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
			),
		),
		processor: codeblock.NewProcessor(),
	}
}

// Parse converts a Markdown source string into an *ast.Document,
// running code-block processing per cfg. It never panics on malformed
// input; irregularities are returned as a *ParseError.
func (p *Parser) Parse(source string, cfg config.CodeBlockProcessing) (doc *ast.Document, err error) {
	raw := []byte(source)
	if !utf8.Valid(raw) {
		return nil, &ParseError{Kind: "invalid_utf8", Message: "source is not valid UTF-8"}
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ParseError{Kind: "inconsistent_events", Message: fmt.Sprintf("%v", r)}
		}
	}()

	reader := text.NewReader(raw)
	root := p.md.Parser().Parse(reader)

	w := &walker{source: raw, cfg: cfg, processor: p.processor}
	out := &ast.Document{}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if b := w.block(child); b != nil {
			out.Blocks = append(out.Blocks, b)
		}
	}
	return out, nil
}

type walker struct {
	source    []byte
	cfg       config.CodeBlockProcessing
	processor *codeblock.Processor
}

// block converts a single top-level or nested block node. It returns
// nil for nodes with no representation in the document model (raw
// HTML blocks, for instance).
func (w *walker) block(n gast.Node) ast.Block {
	switch node := n.(type) {
	case *gast.Heading:
		return &ast.Heading{Level: node.Level, Inlines: w.inlines(node)}

	case *gast.Paragraph:
		// A paragraph containing nothing but a single image is a
		// block-level image (§3: "one that stands alone in its own
		// paragraph"), not an inline run.
		if img, ok := soleImage(node); ok {
			url, width, height := parseImageURL(string(img.Destination))
			return &ast.Image{Alt: w.plainText(img), URL: url, Title: string(img.Title), Width: width, Height: height}
		}
		return &ast.Paragraph{Inlines: w.inlines(node)}

	case *gast.TextBlock:
		return &ast.Paragraph{Inlines: w.inlines(node)}

	case *gast.FencedCodeBlock:
		return w.codeBlock(node, node.Language(w.source))

	case *gast.CodeBlock:
		return w.codeBlock(node, nil)

	case *extast.Table:
		return w.table(node)

	case *gast.List:
		return w.list(node)

	case *gast.Blockquote:
		var blocks []ast.Block
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if b := w.block(child); b != nil {
				blocks = append(blocks, b)
			}
		}
		return &ast.BlockQuote{Blocks: blocks}

	case *gast.ThematicBreak:
		return &ast.HorizontalRule{}

	case *gast.HTMLBlock:
		// Raw HTML blocks have no place in the document model beyond
		// the literal <br /> handling done inline; the block itself
		// carries no renderable content.
		return nil

	default:
		// Images standing alone in their own paragraph are turned into
		// *ast.Image by the Paragraph case above (via soleImage), so an
		// unrecognized block type is simply skipped.
		return nil
	}
}

// codeBlock extracts literal source text and invokes the code-block
// processor per §4.1's "code-block integration" rule.
func (w *walker) codeBlock(n gast.Node, language []byte) *ast.CodeBlock {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}
	source := b.String()

	lang := ""
	if language != nil {
		lang = strings.ToLower(string(language))
	}

	cb := &ast.CodeBlock{Language: lang, Source: source}
	cb.Processed = w.processor.Process(lang, source, w.cfg)
	return cb
}

func (w *walker) table(n *extast.Table) *ast.Table {
	t := &ast.Table{}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []ast.TableCell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if c, ok := cell.(*extast.TableCell); ok {
				cells = append(cells, ast.TableCell{Inlines: w.inlines(c)})
			}
		}
		switch row.(type) {
		case *extast.TableHeader:
			t.Header = cells
		case *extast.TableRow:
			t.Rows = append(t.Rows, cells)
		}
	}
	return t
}

func (w *walker) list(n *gast.List) *ast.List {
	l := &ast.List{Ordered: n.IsOrdered()}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*gast.ListItem)
		if !ok {
			continue
		}
		var blocks []ast.Block
		for child := li.FirstChild(); child != nil; child = child.NextSibling() {
			if b := w.block(child); b != nil {
				blocks = append(blocks, b)
			}
		}
		l.Items = append(l.Items, blocks)
	}
	return l
}

// inlines accumulates the inline content of a block-level node,
// tracking per-tag nesting depth the way goldmark's already-resolved
// tree does implicitly: Emphasis/Strikethrough/Link nodes nest as
// ordinary children, so a straightforward recursive walk reproduces
// the depth-tracked accumulation §4.1 describes without needing an
// explicit counter.
func (w *walker) inlines(n gast.Node) []ast.Inline {
	var out []ast.Inline
	mergeNext := false
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		converted := w.inline(child)
		_, isRaw := child.(*gast.RawHTML)
		// A literal <br /> is its own RawHTML node: fold its '\n', and
		// the Text right after it, into the preceding Text inline.
		if (isRaw || mergeNext) && len(converted) == 1 && len(out) > 0 {
			prev, prevOK := out[len(out)-1].(*ast.Text)
			cur, curOK := converted[0].(*ast.Text)
			if prevOK && curOK {
				prev.Value += cur.Value
				mergeNext = isRaw
				continue
			}
		}
		mergeNext = isRaw
		out = append(out, converted...)
	}
	return out
}

func (w *walker) inline(n gast.Node) []ast.Inline {
	switch node := n.(type) {
	case *gast.Text:
		value := string(node.Segment.Value(w.source))
		if node.SoftLineBreak() {
			value += " "
		}
		if node.HardLineBreak() {
			value += "\n"
		}
		return splitLiteralBreaks(value)

	case *gast.String:
		return splitLiteralBreaks(string(node.Value))

	case *gast.Emphasis:
		text := w.plainText(node)
		if node.Level >= 2 {
			return []ast.Inline{&ast.Bold{Value: text}}
		}
		return []ast.Inline{&ast.Italic{Value: text}}

	case *extast.Strikethrough:
		return []ast.Inline{&ast.Strikethrough{Value: w.plainText(node)}}

	case *gast.CodeSpan:
		return []ast.Inline{&ast.Code{Value: w.plainText(node)}}

	case *gast.Link:
		return []ast.Inline{&ast.Link{Text: w.plainText(node), URL: string(node.Destination)}}

	case *gast.AutoLink:
		url := string(node.URL(w.source))
		return []ast.Inline{&ast.Link{Text: url, URL: url}}

	case *gast.Image:
		url, width, height := parseImageURL(string(node.Destination))
		return []ast.Inline{&ast.InlineImage{
			Alt: w.plainText(node), URL: url, Title: string(node.Title), Width: width, Height: height,
		}}

	case *extast.TaskCheckBox:
		box := "☐ "
		if node.IsChecked {
			box = "☑ "
		}
		return []ast.Inline{&ast.Text{Value: box}}

	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(w.source))
		}
		return splitLiteralBreaks(b.String())

	default:
		return w.inlines(node)
	}
}

// plainText flattens an inline subtree to its literal text content,
// used for spans (bold/italic/strikethrough/code/link) that the
// document model stores as flat strings rather than nested inlines.
func (w *walker) plainText(n gast.Node) string {
	var b strings.Builder
	var walk func(gast.Node)
	walk = func(n gast.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *gast.Text:
				b.Write(t.Segment.Value(w.source))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
				if t.HardLineBreak() {
					b.WriteByte('\n')
				}
			case *gast.String:
				b.Write(t.Value)
			default:
				walk(child)
			}
		}
	}
	walk(n)
	return b.String()
}

// soleImage reports whether n's only child is a single *gast.Image,
// the shape that marks a block-level (rather than inline) image.
func soleImage(n gast.Node) (*gast.Image, bool) {
	first := n.FirstChild()
	if first == nil || first.NextSibling() != nil {
		return nil, false
	}
	img, ok := first.(*gast.Image)
	return img, ok
}

// literalBreakMarker is the inline-HTML spelling of a hard line break
// that §4.1 requires be folded into Text the same way a CommonMark
// HardBreak event is: as an embedded '\n'.
const literalBreakMarker = "<br />"

func splitLiteralBreaks(s string) []ast.Inline {
	if !strings.Contains(s, literalBreakMarker) {
		return []ast.Inline{&ast.Text{Value: s}}
	}
	parts := strings.Split(s, literalBreakMarker)
	return []ast.Inline{&ast.Text{Value: strings.Join(parts, "\n")}}
}

// parseImageURL splits an image destination on its first '?' and
// parses width/height query parameters per §4.1's exact rule: unknown
// keys are ignored, unparseable integers leave that key ignored, and
// the stored URL is the clean portion before '?'. The image's Title
// comes from goldmark's own node.Title (the `"..."` part of
// `![alt](url "title")`), not from the query string, so callers set it
// separately.
func parseImageURL(dest string) (url string, width, height *int) {
	idx := strings.IndexByte(dest, '?')
	if idx < 0 {
		return dest, nil, nil
	}
	url = dest[:idx]
	query := dest[idx+1:]

	for _, pair := range strings.Split(query, "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		n, err := strconv.Atoi(kv[1])
		if err != nil || n <= 0 {
			continue
		}
		switch kv[0] {
		case "width":
			v := n
			width = &v
		case "height":
			v := n
			height = &v
		}
	}
	return url, width, height
}
