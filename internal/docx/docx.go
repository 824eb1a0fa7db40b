// Package docx walks the final, annotated document model into an
// OOXML wordprocessingml package: a zip archive holding
// [Content_Types].xml, the package/document relationship parts,
// word/document.xml, word/styles.xml and any embedded media. It is
// the only package that knows OOXML specifics (§4.4).
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mdocx/ast"
	"mdocx/internal/colorname"
	"mdocx/internal/config"
)

// Warning is emitted for recoverable emission problems: a missing
// image file, an invalid color code, anything §4.4's "Failure
// semantics" says must degrade gracefully rather than abort the
// document.
type Warning struct {
	Kind    string
	Message string
}

// Emitter carries everything needed to walk one document: the style
// configuration, the page-break-before-subsequent-H1 flag, and the
// growing set of package relationships/media files.
type Emitter struct {
	cfg *config.Config

	firstH1Encountered bool

	warnings []Warning

	media         []mediaFile
	relationships []relationship
	hyperlinkIDs  map[string]string
	nextRelID     int
	nextDocPrID   int
}

type mediaFile struct {
	name string // e.g. "image1.png", relative to word/media/
	ext  string
	data []byte
}

type relationship struct {
	id       string
	relType  string
	target   string
	external bool
}

// Emit walks doc and returns the complete .docx package bytes plus any
// accumulated warnings.
func Emit(doc *ast.Document, cfg *config.Config) ([]byte, []Warning, error) {
	e := &Emitter{
		cfg:          cfg,
		hyperlinkIDs: map[string]string{},
		nextRelID:    2, // rId1 is reserved for the styles.xml relationship
	}

	var body strings.Builder
	for _, block := range doc.Blocks {
		body.WriteString(e.block(block, 0))
	}
	body.WriteString(e.sectPr())

	pkg, err := e.assemble(body.String())
	if err != nil {
		return nil, e.warnings, fmt.Errorf("docx: assembling package: %w", err)
	}
	return pkg, e.warnings, nil
}

func (e *Emitter) warn(kind, message string) {
	e.warnings = append(e.warnings, Warning{Kind: kind, Message: message})
}

// sectPr renders the section properties: page size and margins, in
// twips (1 point = 20 twips).
func (e *Emitter) sectPr() string {
	page := e.cfg.Page
	m := e.cfg.Margins
	return fmt.Sprintf(`<w:sectPr>
      <w:pgSz w:w="%d" w:h="%d"/>
      <w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>
    </w:sectPr>`,
		ptToTwips(page.WidthPt), ptToTwips(page.HeightPt),
		ptToTwips(m.TopPt), ptToTwips(m.RightPt), ptToTwips(m.BottomPt), ptToTwips(m.LeftPt))
}

func ptToTwips(pt float64) int { return int(math.Round(pt * 20)) }
func ptToHalfPoints(pt float64) int { return int(math.Round(pt * 2)) }

// borderEighths converts a border width in points to OOXML's border
// sizing unit, eighths of a point (§4.4: "size = round(width * 8)").
func borderEighths(widthPt float32) int { return int(math.Round(float64(widthPt) * 8)) }

// resolveColor resolves a #RGB/#RRGGBB code or color name through
// colorname.ToHex; an empty value gives black, and an unresolvable one
// falls back to black with a warning, per §4.4's "Invalid color codes"
// failure semantics.
func (e *Emitter) resolveColor(hex string) string {
	if hex == "" {
		return "000000"
	}
	resolved := colorname.ToHex(hex)
	if resolved == "" {
		e.warn("invalid_color", fmt.Sprintf("invalid color %q, using default black", hex))
		return "000000"
	}
	return resolved
}

// assemble builds the full zip package given the rendered body XML of
// word/document.xml.
func (e *Emitter) assemble(bodyXML string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	if err := writePart(w, "[Content_Types].xml", e.contentTypesXML()); err != nil {
		return nil, err
	}
	if err := writePart(w, "_rels/.rels", packageRelsXML); err != nil {
		return nil, err
	}
	if err := writePart(w, "word/_rels/document.xml.rels", e.documentRelsXML()); err != nil {
		return nil, err
	}
	if err := writePart(w, "word/styles.xml", e.stylesXML()); err != nil {
		return nil, err
	}
	if err := writePart(w, "word/document.xml", e.documentXML(bodyXML)); err != nil {
		return nil, err
	}
	for _, m := range e.media {
		f, err := w.Create("word/media/" + m.name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(m.data); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(w *zip.Writer, name, content string) error {
	f, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write([]byte(content))
	return err
}

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func (e *Emitter) contentTypesXML() string {
	var extras strings.Builder
	seen := map[string]bool{}
	for _, m := range e.media {
		ct := imageContentType(m.ext)
		if ct == "" || seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		fmt.Fprintf(&extras, `
  <Default Extension="%s" ContentType="%s"/>`, m.ext, ct)
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>%s
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`, extras.String())
}

func imageContentType(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	default:
		return ""
	}
}

func (e *Emitter) documentRelsXML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)

	for _, r := range e.relationships {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `
  <Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.id, r.relType, r.target, mode)
	}
	b.WriteString("\n</Relationships>")
	return b.String()
}

func (e *Emitter) stylesXML() string {
	f := e.cfg.Styles.DefaultFont
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="%s" w:hAnsi="%s"/>
        <w:sz w:val="%d"/>
        <w:szCs w:val="%d"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
</w:styles>`, f.Family, f.Family, ptToHalfPoints(f.SizePt), ptToHalfPoints(f.SizePt))
}

func (e *Emitter) documentXML(bodyXML string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">
  <w:body>
    %s
  </w:body>
</w:document>`, bodyXML)
}

// addImageRelationship reads path off disk and registers it as a
// word/media part, returning the relationship ID to reference from a
// drawing element. ok is false if the file could not be read.
func (e *Emitter) addImageRelationship(path string) (rID string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.warn("missing_image", fmt.Sprintf("could not read image %q: %v", path, err))
		return "", false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		ext = "png"
	}
	name := fmt.Sprintf("image%d.%s", len(e.media)+1, ext)
	e.media = append(e.media, mediaFile{name: name, ext: ext, data: data})

	id := e.allocRelID()
	e.relationships = append(e.relationships, relationship{
		id:      id,
		relType: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image",
		target:  "media/" + name,
	})
	return id, true
}

// hyperlinkRelationship returns the relationship ID for an external
// hyperlink target, reusing the same ID for a URL seen more than once.
func (e *Emitter) hyperlinkRelationship(url string) string {
	if id, ok := e.hyperlinkIDs[url]; ok {
		return id
	}
	id := e.allocRelID()
	e.hyperlinkIDs[url] = id
	e.relationships = append(e.relationships, relationship{
		id:       id,
		relType:  "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink",
		target:   url,
		external: true,
	})
	return id
}

func (e *Emitter) allocRelID() string {
	id := "rId" + strconv.Itoa(e.nextRelID)
	e.nextRelID++
	return id
}

func (e *Emitter) allocDocPrID() int {
	e.nextDocPrID++
	return e.nextDocPrID
}
