package docx

import (
	"fmt"

	"mdocx/ast"
)

// emuPerPixel assumes the conventional 96 DPI screen resolution OOXML
// drawing extents are conventionally authored against.
const emuPerPixel = 9525

func pxToEMU(px int) int64 { return int64(px) * emuPerPixel }

// drawingXML renders an inline <w:drawing> element referencing the
// image relationship rID, sized widthPx x heightPx.
func (e *Emitter) drawingXML(rID string, widthPx, heightPx int) string {
	id := e.allocDocPrID()
	cx, cy := pxToEMU(widthPx), pxToEMU(heightPx)
	return fmt.Sprintf(`<w:r><w:drawing>
      <wp:inline distT="0" distB="0" distL="0" distR="0">
        <wp:extent cx="%d" cy="%d"/>
        <wp:docPr id="%d" name="Picture %d"/>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">
            <pic:pic>
              <pic:nvPicPr>
                <pic:cNvPr id="%d" name="Picture %d"/>
                <pic:cNvPicPr/>
              </pic:nvPicPr>
              <pic:blipFill>
                <a:blip r:embed="%s"/>
                <a:stretch><a:fillRect/></a:stretch>
              </pic:blipFill>
              <pic:spPr>
                <a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>
                <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
              </pic:spPr>
            </pic:pic>
          </a:graphicData>
        </a:graphic>
      </wp:inline>
    </w:drawing></w:r>`, cx, cy, id, id, id, id, rID, cx, cy)
}

// inlineImageRuns implements §4.4's Image rules for an image appearing
// among other inline content rather than alone in its paragraph.
func (e *Emitter) inlineImageRuns(n *ast.InlineImage, base run) []run {
	if isRemoteURL(n.URL) {
		r := base
		r.italic = true
		r.text = fmt.Sprintf("[Image: %s]", n.Alt)
		return []run{r}
	}

	rID, ok := e.addImageRelationship(n.URL)
	if !ok {
		r := base
		r.italic = true
		r.text = fmt.Sprintf("[Image: %s]", n.Alt)
		return []run{r}
	}

	width, height := e.resolveImageSize(n.Width, n.Height)
	r := base
	r.raw = e.drawingRun(rID, width, height)
	return []run{r}
}

// drawingRun is drawingXML without the enclosing <w:r>, for embedding
// inside a run already being assembled by renderRun.
func (e *Emitter) drawingRun(rID string, widthPx, heightPx int) string {
	full := e.drawingXML(rID, widthPx, heightPx)
	return full[len("<w:r>") : len(full)-len("</w:r>")]
}
