package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"mdocx/ast"
	"mdocx/internal/codeblock"
)

// run is a single styled span of text, the unit the inline renderer
// and the code-block marker parser both produce before being turned
// into a <w:r> element.
type run struct {
	text          string
	bold          bool
	italic        bool
	strikethrough bool
	code          bool // switches to the code-block font family/size
	color         string
	underline     bool
	hyperlinkID   string
	raw           string // pre-built inner XML (drawing elements), overrides text
}

// markerPattern recognizes the four sentinel tags the code-block
// strategies and (in principle) any Text inline may carry. Unclosed
// markers are handled by the scan loop below falling through to
// end-of-string with whatever toggles are still active.
var markerPattern = regexp.MustCompile(`\[/?(?:BOLD|ITALIC)\]`)

// parseMarkers scans s left to right, toggling bold/italic state on
// [BOLD]/[/BOLD]/[ITALIC]/[/ITALIC] markers, and returns the resulting
// runs with base applied as the starting style for every run (§4.4:
// "markers nest shallowly... at most one of each type active").
func parseMarkers(s string, base run) []run {
	if !strings.Contains(s, "[") {
		if s == "" {
			return nil
		}
		r := base
		r.text = s
		return []run{r}
	}

	var out []run
	bold, italic := base.bold, base.italic
	last := 0
	flush := func(text string) {
		if text == "" {
			return
		}
		r := base
		r.text = text
		r.bold = bold
		r.italic = italic
		out = append(out, r)
	}

	for _, loc := range markerPattern.FindAllStringIndex(s, -1) {
		flush(s[last:loc[0]])
		switch s[loc[0]:loc[1]] {
		case codeblock.BoldOpen:
			bold = true
		case codeblock.BoldClose:
			bold = false
		case codeblock.ItalicOpen:
			italic = true
		case codeblock.ItalicClose:
			italic = false
		}
		last = loc[1]
	}
	flush(s[last:])
	return out
}

// inlineRuns converts an ordered sequence of inline nodes into runs,
// using base as the starting style of every run; link color and
// underline are resolved from the link config here.
func (e *Emitter) inlineRuns(inlines []ast.Inline, base run) []run {
	var out []run
	for _, in := range inlines {
		out = append(out, e.inlineRun(in, base)...)
	}
	return out
}

func (e *Emitter) inlineRun(in ast.Inline, base run) []run {
	switch n := in.(type) {
	case *ast.Text:
		return parseMarkers(n.Value, base)

	case *ast.Bold:
		r := base
		r.bold = true
		r.text = n.Value
		return []run{r}

	case *ast.Italic:
		r := base
		r.italic = true
		r.text = n.Value
		return []run{r}

	case *ast.Strikethrough:
		r := base
		r.strikethrough = true
		r.text = n.Value
		return []run{r}

	case *ast.Code:
		r := base
		r.code = true
		r.text = n.Value
		return []run{r}

	case *ast.Link:
		r := base
		r.color = e.resolveColor(e.cfg.Elements.Link.Color)
		r.underline = e.cfg.Elements.Link.Underline
		r.text = n.Text
		r.hyperlinkID = e.hyperlinkRelationship(n.URL)
		return []run{r}

	case *ast.InlineImage:
		return e.inlineImageRuns(n, base)

	default:
		return nil
	}
}

// renderRuns concatenates the XML for a slice of runs, wrapping any
// run that carries a hyperlinkID in a <w:hyperlink> element.
func (e *Emitter) renderRuns(runs []run, font fontChoice) string {
	var b strings.Builder
	for _, r := range runs {
		xml := e.renderRun(r, font)
		if r.hyperlinkID != "" {
			b.WriteString(fmt.Sprintf(`<w:hyperlink r:id="%s" w:history="1">%s</w:hyperlink>`, r.hyperlinkID, xml))
		} else {
			b.WriteString(xml)
		}
	}
	return b.String()
}

// fontChoice bundles the font metrics a block supplies as the default
// for its runs (paragraph font, heading font, code-block font, ...).
type fontChoice struct {
	family    string
	sizeHalfPt int
	bold      bool
	italic    bool
	color     string
}

func (e *Emitter) renderRun(r run, font fontChoice) string {
	family := font.family
	size := font.sizeHalfPt
	bold := font.bold || r.bold
	italic := font.italic || r.italic
	color := font.color
	if r.color != "" {
		color = r.color
	}

	if r.code {
		cf := e.cfg.Styles.CodeBlock.Font
		family = cf.Family
		size = ptToHalfPoints(cf.SizePt)
		bold = bold || cf.Bold
		italic = italic || cf.Italic
		if cf.Color != "" {
			color = e.resolveColor(cf.Color)
		}
	}

	var rPr strings.Builder
	rPr.WriteString(fmt.Sprintf(`<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, family, family))
	if bold {
		rPr.WriteString("<w:b/>")
	}
	if italic {
		rPr.WriteString("<w:i/>")
	}
	if r.strikethrough {
		rPr.WriteString("<w:strike/>")
	}
	if r.underline {
		rPr.WriteString(`<w:u w:val="single"/>`)
	}
	if color != "" {
		rPr.WriteString(fmt.Sprintf(`<w:color w:val="%s"/>`, color))
	}
	if r.code {
		rPr.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="F6F8FA"/>`)
	}
	rPr.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, size, size))

	if r.raw != "" {
		return fmt.Sprintf(`<w:r><w:rPr>%s</w:rPr>%s</w:r>`, rPr.String(), r.raw)
	}
	return fmt.Sprintf(`<w:r><w:rPr>%s</w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`,
		rPr.String(), escapeXML(r.text))
}

// nbspParagraph is an empty paragraph whose only content is a
// non-breaking space run at size 1, the §4.4-mandated way of
// guaranteeing a visible blank line between split sub-paragraphs.
func nbspParagraph() string {
	return `<w:p><w:r><w:rPr><w:sz w:val="1"/><w:szCs w:val="1"/></w:rPr><w:t xml:space="preserve">&#160;</w:t></w:r></w:p>`
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
