package config

import "gopkg.in/yaml.v3"

// codeBlockStyleWire mirrors CodeBlockStyle but additionally accepts
// the legacy boolean `border` field, so we can decode both forms and
// then apply the migration rule ourselves.
type codeBlockStyleWire struct {
	Font               Font     `yaml:"font"`
	BackgroundColor    string   `yaml:"background_color"`
	BorderWidth        *float32 `yaml:"border_width"`
	Border             *bool    `yaml:"border"`
	PreserveLineBreaks bool     `yaml:"preserve_line_breaks"`
	LineSpacing        float64  `yaml:"line_spacing"`
	ParagraphSpacing   float64  `yaml:"paragraph_spacing"`
}

// UnmarshalYAML implements the §4.5 backward-compatible migration: the
// code-block style historically carried a boolean `border` field; it
// now carries `border_width: f32`. If `border_width` is present in the
// source it always wins (new takes precedence), regardless of whether
// `border` is also present. If only `border` is present, true migrates
// to 1.0pt and false to 0.0pt.
func (s *CodeBlockStyle) UnmarshalYAML(value *yaml.Node) error {
	// Seed the wire struct with the current values so fields the
	// document omits keep them (e.g. from Default()) instead of zeroing.
	wire := codeBlockStyleWire{
		Font:               s.Font,
		BackgroundColor:    s.BackgroundColor,
		PreserveLineBreaks: s.PreserveLineBreaks,
		LineSpacing:        s.LineSpacing,
		ParagraphSpacing:   s.ParagraphSpacing,
	}
	if err := value.Decode(&wire); err != nil {
		return err
	}

	s.Font = wire.Font
	s.BackgroundColor = wire.BackgroundColor
	s.PreserveLineBreaks = wire.PreserveLineBreaks
	s.LineSpacing = wire.LineSpacing
	s.ParagraphSpacing = wire.ParagraphSpacing

	switch {
	case wire.BorderWidth != nil:
		s.BorderWidth = *wire.BorderWidth
	case wire.Border != nil:
		if *wire.Border {
			s.BorderWidth = 1.0
		} else {
			s.BorderWidth = 0.0
		}
	default:
		// Neither field present in this document: leave whatever
		// BorderWidth the struct already carried (e.g. from Default())
		// untouched rather than zeroing it.
	}
	return nil
}
