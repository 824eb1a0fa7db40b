package config

import (
	"fmt"
	"strings"

	"mdocx/internal/colorname"
	"mdocx/internal/numbering"
)

// ValidationError collects every problem found in a Config so the
// caller sees the full list at once rather than failing on the first
// field (§4.5: "no partial-application of malformed config").
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Validate checks every §4.5 validation rule against c. Numbering
// format strings that fail validation are not fatal: they are dropped
// (cleared) and reported back as warnings instead, per §4.3's graceful
// degradation policy carried through to config load time.
func (c *Config) Validate() ([]string, error) {
	var problems []string
	var warnings []string

	nonNegative := func(name string, v float64) {
		if v < 0 {
			problems = append(problems, fmt.Sprintf("%s must be non-negative, got %v", name, v))
		}
	}
	positiveSize := func(name string, v float64) {
		if v <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %v", name, v))
		}
	}
	validColor := func(name, v string) {
		if v == "" {
			return
		}
		if !colorname.IsValidHex(v) {
			problems = append(problems, fmt.Sprintf("%s must be a #RRGGBB hex color, got %q", name, v))
		}
	}

	nonNegative("margins.top", c.Margins.TopPt)
	nonNegative("margins.bottom", c.Margins.BottomPt)
	nonNegative("margins.left", c.Margins.LeftPt)
	nonNegative("margins.right", c.Margins.RightPt)
	positiveSize("page.width", c.Page.WidthPt)
	positiveSize("page.height", c.Page.HeightPt)

	positiveSize("styles.default_font.size", c.Styles.DefaultFont.SizePt)
	validColor("styles.default_font.color", c.Styles.DefaultFont.Color)

	for level, hs := range c.Styles.Headings {
		positiveSize(fmt.Sprintf("styles.headings[%d].font.size", level), hs.Font.SizePt)
		validColor(fmt.Sprintf("styles.headings[%d].font.color", level), hs.Font.Color)
		nonNegative(fmt.Sprintf("styles.headings[%d].spacing_before", level), hs.SpacingBefore)
		nonNegative(fmt.Sprintf("styles.headings[%d].spacing_after", level), hs.SpacingAfter)

		if hs.Numbering != "" {
			if err := numbering.ValidateFormat(hs.Numbering); err != nil {
				warnings = append(warnings, fmt.Sprintf("styles.headings[%d].numbering: %s (dropped)", level, err))
				hs.Numbering = ""
				c.Styles.Headings[level] = hs
			}
		}
	}

	positiveSize("styles.paragraph.font.size", c.Styles.Paragraph.Font.SizePt)
	nonNegative("styles.paragraph.spacing_after", c.Styles.Paragraph.SpacingAfter)
	nonNegative("styles.paragraph.line_spacing", c.Styles.Paragraph.LineSpacing)

	positiveSize("styles.code_block.font.size", c.Styles.CodeBlock.Font.SizePt)
	nonNegative("styles.code_block.border_width", float64(c.Styles.CodeBlock.BorderWidth))
	validColor("styles.code_block.background_color", c.Styles.CodeBlock.BackgroundColor)

	positiveSize("styles.table.header_font.size", c.Styles.Table.HeaderFont.SizePt)
	positiveSize("styles.table.cell_font.size", c.Styles.Table.CellFont.SizePt)
	nonNegative("styles.table.border_width", float64(c.Styles.Table.BorderWidth))
	validColor("styles.table.header_background", c.Styles.Table.HeaderBackground)

	nonNegative("elements.image.max_width", float64(c.Elements.Image.MaxWidth))
	nonNegative("elements.image.max_height", float64(c.Elements.Image.MaxHeight))
	nonNegative("elements.list.indent", c.Elements.List.Indent)
	nonNegative("elements.list.spacing", c.Elements.List.Spacing)
	validColor("elements.link.color", c.Elements.Link.Color)

	if len(problems) > 0 {
		return warnings, &ValidationError{Problems: problems}
	}
	return warnings, nil
}
