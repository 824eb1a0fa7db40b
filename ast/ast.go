// Package ast defines the Markdown document model produced by the
// parser and consumed, in turn, by the code-block processor, the
// heading numberer and the DOCX emitter. Every node type here is a
// plain value (or pointer-to-struct); nothing in this package knows
// how to parse Markdown or render OOXML.
package ast

// Document is an ordered sequence of top-level block elements.
type Document struct {
	Blocks []Block
}

// Block is the sum type over block-level elements. Concrete types:
// *Heading, *Paragraph, *CodeBlock, *Table, *List, *BlockQuote,
// *HorizontalRule, *Image.
type Block interface {
	blockNode()
}

// Inline is the sum type over inline (text-level) elements. Concrete
// types: *Text, *Bold, *Italic, *Strikethrough, *Code, *Link, *InlineImage.
type Inline interface {
	inlineNode()
}

// Heading is a numbered (1..=6) section title. Prefix is populated by
// the heading numberer after parsing; it is empty until then.
type Heading struct {
	Level   int
	Inlines []Inline
	Prefix  string
}

func (*Heading) blockNode() {}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

func (*Paragraph) blockNode() {}

// CodeBlock is a fenced or indented code block. Language is normalized
// to lowercase at parse time; Source is byte-identical to what appeared
// in the document (leading whitespace on every line is preserved).
// Processed is populated by the code-block processor; it is nil if
// code-block processing is disabled.
type CodeBlock struct {
	Language  string
	Source    string
	Processed *ProcessedCodeBlock
}

func (*CodeBlock) blockNode() {}

// GetFinalCode returns Processed.ProcessedCode if present, else Source.
func (c *CodeBlock) GetFinalCode() string {
	if c.Processed != nil && c.Processed.ProcessedCode != nil {
		return *c.Processed.ProcessedCode
	}
	return c.Source
}

// Table is a GFM table: one header row plus zero or more body rows.
type Table struct {
	Header []TableCell
	Rows   [][]TableCell
}

func (*Table) blockNode() {}

// TableCell is the inline content of a single table cell.
type TableCell struct {
	Inlines []Inline
}

// List is an ordered or unordered (bulleted) list. Each item is itself
// an ordered sequence of blocks, allowing nested lists/paragraphs.
type List struct {
	Ordered bool
	Items   [][]Block
}

func (*List) blockNode() {}

// BlockQuote is a quoted run of blocks.
type BlockQuote struct {
	Blocks []Block
}

func (*BlockQuote) blockNode() {}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (*HorizontalRule) blockNode() {}

// Image is a block-level image: one that stands alone in its own
// paragraph. Width/Height, if present, come from ?width=N&height=M
// query parameters stripped from URL during parsing.
type Image struct {
	Alt    string
	URL    string
	Title  string
	Width  *int
	Height *int
}

func (*Image) blockNode() {}

// Text is a run of literal text. A '\n' inside Value signals a hard
// line break (from a CommonMark HardBreak event or a literal "<br />").
type Text struct {
	Value string
}

func (*Text) inlineNode() {}

// Bold is flat (non-further-formatted) bold text.
type Bold struct {
	Value string
}

func (*Bold) inlineNode() {}

// Italic is flat italic text.
type Italic struct {
	Value string
}

func (*Italic) inlineNode() {}

// Strikethrough is flat strikethrough text (GFM extension).
type Strikethrough struct {
	Value string
}

func (*Strikethrough) inlineNode() {}

// Code is an inline code span.
type Code struct {
	Value string
}

func (*Code) inlineNode() {}

// Link is a hyperlink with display text.
type Link struct {
	Text string
	URL  string
}

func (*Link) inlineNode() {}

// InlineImage has the same shape as Image but appears among other
// inline content rather than alone in a paragraph.
type InlineImage struct {
	Alt    string
	URL    string
	Title  string
	Width  *int
	Height *int
}

func (*InlineImage) inlineNode() {}
