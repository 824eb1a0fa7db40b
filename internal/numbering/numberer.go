package numbering

import "mdocx/ast"

// Number walks doc's blocks in source order, maintaining one Counters
// state machine for the whole document, and injects a numbering
// prefix into each Heading whose level has a valid format in formats
// (keyed 1..6). Invalid or absent formats leave the heading unprefixed
// but still advance the counters (§4.3 "mixed numbering"). Lists,
// block quotes and other nested blocks are not recursed into: only
// top-level Heading blocks are numbered, matching §4.3's description
// of a flat heading sequence.
func Number(doc *ast.Document, formats map[int]string) []Warning {
	var warnings []Warning
	validated := map[int]bool{}
	for level, format := range formats {
		if err := ValidateFormat(format); err != nil {
			warnings = append(warnings, Warning{Level: level, Message: err.Error()})
			continue
		}
		validated[level] = true
	}

	var counters Counters
	for _, block := range doc.Blocks {
		h, ok := block.(*ast.Heading)
		if !ok {
			continue
		}

		values, overflowWarn := counters.Bump(h.Level)
		if overflowWarn != nil {
			warnings = append(warnings, *overflowWarn)
		}

		format, hasFormat := formats[h.Level]
		if !hasFormat || !validated[h.Level] {
			continue
		}

		h.Prefix = Render(format, values) + " "
		h.Inlines = append([]ast.Inline{&ast.Text{Value: h.Prefix}}, h.Inlines...)
	}

	return warnings
}
