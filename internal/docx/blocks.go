package docx

import (
	"fmt"
	"strconv"
	"strings"

	"mdocx/ast"
	"mdocx/internal/codeblock"
	"mdocx/internal/config"
)

// block renders a single top-level or nested block element. depth is
// the list-nesting depth, used only by List/ListItem.
func (e *Emitter) block(b ast.Block, depth int) string {
	switch n := b.(type) {
	case *ast.Heading:
		return e.heading(n)
	case *ast.Paragraph:
		return e.paragraph(n, e.fontFor(e.cfg.Styles.Paragraph.Font), e.cfg.Styles.Paragraph.Alignment,
			ptToTwips(e.cfg.Styles.Paragraph.SpacingAfter))
	case *ast.CodeBlock:
		return e.codeBlock(n)
	case *ast.Table:
		return e.table(n)
	case *ast.List:
		return e.list(n, depth)
	case *ast.BlockQuote:
		return e.blockQuote(n)
	case *ast.HorizontalRule:
		return e.horizontalRule()
	case *ast.Image:
		return e.blockImage(n)
	default:
		return ""
	}
}

func (e *Emitter) fontFor(f config.Font) fontChoice {
	return fontChoice{
		family:     f.Family,
		sizeHalfPt: ptToHalfPoints(f.SizePt),
		bold:       f.Bold,
		italic:     f.Italic,
		color:      e.resolveColor(f.Color),
	}
}

// heading implements §4.4's Heading rule: a page break before every
// H1 after the first, styled per config.styles.headings[level].
func (e *Emitter) heading(h *ast.Heading) string {
	var b strings.Builder
	if h.Level == 1 {
		if e.firstH1Encountered {
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
		e.firstH1Encountered = true
	}

	style, ok := e.cfg.Styles.Headings[h.Level]
	var font fontChoice
	var align config.Alignment
	var before, after int
	if ok {
		font = e.fontFor(style.Font)
		align = style.Alignment
		before, after = ptToTwips(style.SpacingBefore), ptToTwips(style.SpacingAfter)
	} else {
		font = e.fontFor(e.cfg.Styles.DefaultFont)
	}

	runs := e.renderRuns(e.inlineRuns(h.Inlines, run{}), font)
	b.WriteString(fmt.Sprintf(`<w:p><w:pPr>%s<w:spacing w:before="%d" w:after="%d"/></w:pPr>%s</w:p>`,
		alignmentXML(align), before, after, runs))
	return b.String()
}

// paragraph implements the Text-with-embedded-\n splitting rule: each
// '\n' carried inside a Text inline starts a new sub-paragraph, with
// one non-breaking-space paragraph emitted between consecutive
// sub-paragraphs.
func (e *Emitter) paragraph(p *ast.Paragraph, font fontChoice, align config.Alignment, spacingAfterTwips int) string {
	groups := splitOnEmbeddedBreaks(p.Inlines)
	if len(groups) <= 1 {
		return e.renderParagraph(p.Inlines, font, align, spacingAfterTwips)
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString(nbspParagraph())
		}
		b.WriteString(e.renderParagraph(g, font, align, spacingAfterTwips))
	}
	return b.String()
}

func (e *Emitter) renderParagraph(inlines []ast.Inline, font fontChoice, align config.Alignment, spacingAfterTwips int) string {
	runs := e.renderRuns(e.inlineRuns(inlines, run{}), font)
	spacing := ""
	if spacingAfterTwips > 0 {
		spacing = fmt.Sprintf(`<w:spacing w:after="%d"/>`, spacingAfterTwips)
	}
	return fmt.Sprintf(`<w:p><w:pPr>%s%s</w:pPr>%s</w:p>`, alignmentXML(align), spacing, runs)
}

// splitOnEmbeddedBreaks splits an inline sequence into sub-paragraph
// groups at every '\n' found inside a Text inline, per §4.4.
func splitOnEmbeddedBreaks(inlines []ast.Inline) [][]ast.Inline {
	var groups [][]ast.Inline
	var current []ast.Inline
	for _, in := range inlines {
		text, ok := in.(*ast.Text)
		if !ok || !strings.Contains(text.Value, "\n") {
			current = append(current, in)
			continue
		}
		parts := strings.Split(text.Value, "\n")
		for i, part := range parts {
			if part != "" {
				current = append(current, &ast.Text{Value: part})
			}
			if i < len(parts)-1 {
				groups = append(groups, current)
				current = nil
			}
		}
	}
	groups = append(groups, current)
	return groups
}

func alignmentXML(a config.Alignment) string {
	val := ""
	switch a {
	case config.AlignCenter:
		val = "center"
	case config.AlignRight:
		val = "right"
	case config.AlignJustify:
		val = "both"
	case config.AlignLeft, "":
		val = "left"
	}
	return fmt.Sprintf(`<w:jc w:val="%s"/>`, val)
}

// codeBlock implements §4.4's CodeBlock rule: a note-table when the
// processed code is a sentinel envelope, otherwise a single-cell
// bordered table with whitespace preserved verbatim.
func (e *Emitter) codeBlock(c *ast.CodeBlock) string {
	code := c.GetFinalCode()
	if strings.HasPrefix(strings.TrimSpace(code), codeblock.NoteBlockStart) {
		if title, icon, content, ok := codeblock.ParseNoteEnvelope(code); ok {
			return e.noteTable(title, icon, content)
		}
	}
	return e.codeTable(code)
}

func (e *Emitter) codeTable(code string) string {
	style := e.cfg.Styles.CodeBlock
	size := borderEighths(style.BorderWidth)
	borders := e.tableBordersXML(size)
	shading := ""
	if style.BackgroundColor != "" {
		shading = fmt.Sprintf(`<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, e.resolveColor(style.BackgroundColor))
	}

	font := e.fontFor(style.Font)
	var cellBody strings.Builder
	if style.PreserveLineBreaks {
		for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
			cellBody.WriteString(e.codeLineParagraph(line, font))
		}
	} else {
		cellBody.WriteString(e.codeLineParagraph(code, font))
	}

	return fmt.Sprintf(`<w:tbl>
      <w:tblPr>%s<w:tblW w:w="0" w:type="auto"/></w:tblPr>
      <w:tblGrid><w:gridCol/></w:tblGrid>
      <w:tr><w:tc><w:tcPr>%s</w:tcPr>
      %s
      </w:tc></w:tr>
    </w:tbl>
    <w:p/>`, borders, shading, cellBody.String())
}

// codeLineParagraph renders one verbatim code line as its own
// paragraph, parsing any [BOLD]/[ITALIC] markers the strategy layer
// attached. Empty lines use a non-breaking space so they stay visible.
func (e *Emitter) codeLineParagraph(line string, font fontChoice) string {
	if line == "" {
		return `<w:p><w:pPr><w:spacing w:after="0"/></w:pPr><w:r><w:rPr><w:sz w:val="1"/></w:rPr><w:t xml:space="preserve">&#160;</w:t></w:r></w:p>`
	}
	runs := e.renderRuns(parseMarkers(line, run{}), font)
	return fmt.Sprintf(`<w:p><w:pPr><w:spacing w:after="0"/></w:pPr>%s</w:p>`, runs)
}

func (e *Emitter) tableBordersXML(eighths int) string {
	if eighths <= 0 {
		return ""
	}
	edge := func(tag string) string {
		return fmt.Sprintf(`<w:%s w:val="single" w:sz="%d" w:space="0" w:color="auto"/>`, tag, eighths)
	}
	return "<w:tblBorders>" + edge("top") + edge("left") + edge("bottom") + edge("right") + edge("insideH") + edge("insideV") + "</w:tblBorders>"
}

// noteTable renders the two-column callout described in §4.4's
// "Note-table rendering".
func (e *Emitter) noteTable(title, icon, content string) string {
	bodyFont := e.fontFor(e.cfg.Styles.Paragraph.Font)
	titleFont := bodyFont
	titleFont.bold = true
	titleFont.italic = true
	titleFont.sizeHalfPt = int(float64(bodyFont.sizeHalfPt) * 1.2)

	var left strings.Builder
	if title != "" {
		left.WriteString(fmt.Sprintf(`<w:p>%s</w:p>`, e.renderRuns([]run{{text: title}}, titleFont)))
	}
	for _, line := range strings.Split(content, "\n") {
		left.WriteString(fmt.Sprintf(`<w:p>%s</w:p>`, e.renderRuns(parseMarkers(line, run{}), bodyFont)))
	}

	var right string
	if rID, ok := e.addImageRelationship(icon); ok {
		right = e.drawingXML(rID, 32, 32)
	} else {
		right = e.renderRuns([]run{{text: "\U0001F4A1"}}, bodyFont)
	}

	return fmt.Sprintf(`<w:tbl>
      <w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr>
      <w:tblGrid><w:gridCol w:w="8000"/><w:gridCol w:w="960"/></w:tblGrid>
      <w:tr>
        <w:tc><w:tcPr><w:tcW w:w="8000" w:type="dxa"/></w:tcPr>%s</w:tc>
        <w:tc><w:tcPr><w:tcW w:w="960" w:type="dxa"/></w:tcPr><w:p>%s</w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p/>`, left.String(), right)
}

// table implements §4.4's Table rule.
func (e *Emitter) table(t *ast.Table) string {
	style := e.cfg.Styles.Table
	borders := e.tableBordersXML(borderEighths(style.BorderWidth))

	headerFont := e.fontFor(style.HeaderFont)
	cellFont := e.fontFor(style.CellFont)
	headerShade := ""
	if style.HeaderBackground != "" {
		headerShade = fmt.Sprintf(`<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, e.resolveColor(style.HeaderBackground))
	}

	var rows strings.Builder
	rows.WriteString("<w:tr>")
	for _, cell := range t.Header {
		rows.WriteString(fmt.Sprintf(`<w:tc><w:tcPr>%s</w:tcPr><w:p>%s</w:p></w:tc>`,
			headerShade, e.renderRuns(e.inlineRuns(cell.Inlines, run{}), headerFont)))
	}
	rows.WriteString("</w:tr>")

	for _, row := range t.Rows {
		rows.WriteString("<w:tr>")
		for _, cell := range row {
			rows.WriteString(fmt.Sprintf(`<w:tc><w:p>%s</w:p></w:tc>`,
				e.renderRuns(e.inlineRuns(cell.Inlines, run{}), cellFont)))
		}
		rows.WriteString("</w:tr>")
	}

	grid := strings.Repeat("<w:gridCol/>", len(t.Header))
	return fmt.Sprintf(`<w:tbl>
      <w:tblPr>%s<w:tblW w:w="0" w:type="auto"/></w:tblPr>
      <w:tblGrid>%s</w:tblGrid>
      %s
    </w:tbl>
    <w:p/>`, borders, grid, rows.String())
}

// list implements §4.4's List rule: indentation grows with nesting
// depth, ordered items get "N." prefixes, unordered get "•".
func (e *Emitter) list(l *ast.List, depth int) string {
	indent := ptToTwips(e.cfg.Elements.List.Indent * float64(depth+1))
	font := e.fontFor(e.cfg.Styles.Paragraph.Font)

	var b strings.Builder
	for i, item := range l.Items {
		prefix := "• "
		if l.Ordered {
			prefix = strconv.Itoa(i+1) + ". "
		}
		first := true
		for _, blk := range item {
			if p, ok := blk.(*ast.Paragraph); ok && first {
				inlines := append([]ast.Inline{&ast.Text{Value: prefix}}, p.Inlines...)
				runs := e.renderRuns(e.inlineRuns(inlines, run{}), font)
				b.WriteString(fmt.Sprintf(`<w:p><w:pPr><w:ind w:left="%d"/><w:spacing w:after="%d"/></w:pPr>%s</w:p>`,
					indent, ptToTwips(e.cfg.Elements.List.Spacing), runs))
				first = false
				continue
			}
			if nested, ok := blk.(*ast.List); ok {
				b.WriteString(e.list(nested, depth+1))
				continue
			}
			b.WriteString(e.block(blk, depth+1))
			first = false
		}
	}
	return b.String()
}

// blockQuote implements §4.4's BlockQuote rule: contained paragraphs
// are rendered in italics with a left indent and a left border,
// grounded on the same shape teacher-adjacent converters use for
// quoted text; any other contained block is rendered as it would be
// outside the quote.
const blockQuoteIndentTwips = 720

func (e *Emitter) blockQuote(bq *ast.BlockQuote) string {
	font := e.fontFor(e.cfg.Styles.Paragraph.Font)
	var b strings.Builder
	for _, blk := range bq.Blocks {
		p, ok := blk.(*ast.Paragraph)
		if !ok {
			b.WriteString(e.block(blk, 0))
			continue
		}
		runs := e.renderRuns(e.inlineRuns(p.Inlines, run{italic: true}), font)
		b.WriteString(fmt.Sprintf(`<w:p><w:pPr><w:ind w:left="%d"/><w:pBdr><w:left w:val="single" w:sz="24" w:space="4" w:color="DFE2E5"/></w:pBdr><w:spacing w:after="160"/></w:pPr>%s</w:p>`,
			blockQuoteIndentTwips, runs))
	}
	return b.String()
}

// horizontalRule implements §4.4's HorizontalRule rule: an empty
// paragraph with a bottom border.
func (e *Emitter) horizontalRule() string {
	return `<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="E1E4E8"/></w:pBdr><w:spacing w:before="240" w:after="240"/></w:pPr></w:p>`
}

// blockImage implements §4.4's Image rules for a standalone
// block-level image.
func (e *Emitter) blockImage(img *ast.Image) string {
	width, height := e.resolveImageSize(img.Width, img.Height)

	if isRemoteURL(img.URL) {
		placeholder := fmt.Sprintf("[Image: %s]", img.Alt)
		runs := e.renderRuns([]run{{text: placeholder, italic: true}}, e.fontFor(e.cfg.Styles.Paragraph.Font))
		return fmt.Sprintf(`<w:p>%s%s</w:p>`, alignmentXML(e.cfg.Elements.Image.Alignment), runs)
	}

	rID, ok := e.addImageRelationship(img.URL)
	if !ok {
		placeholder := fmt.Sprintf("[Image: %s]", img.Alt)
		runs := e.renderRuns([]run{{text: placeholder, italic: true}}, e.fontFor(e.cfg.Styles.Paragraph.Font))
		return fmt.Sprintf(`<w:p>%s%s</w:p>`, alignmentXML(e.cfg.Elements.Image.Alignment), runs)
	}

	return fmt.Sprintf(`<w:p>%s%s</w:p>`, alignmentXML(e.cfg.Elements.Image.Alignment), e.drawingXML(rID, width, height))
}

func isRemoteURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// resolveImageSize implements §4.4's sizing rule: explicit dimensions
// win; a missing dimension falls back to the matching config max; if
// neither is set, both config maxima are used.
func (e *Emitter) resolveImageSize(width, height *int) (w, h int) {
	img := e.cfg.Elements.Image
	switch {
	case width != nil && height != nil:
		return *width, *height
	case width != nil:
		return *width, img.MaxHeight
	case height != nil:
		return img.MaxWidth, *height
	default:
		return img.MaxWidth, img.MaxHeight
	}
}
