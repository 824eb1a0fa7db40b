// Package config decodes and validates the YAML style configuration
// that drives heading numbering, code-block processing and the DOCX
// emitter's visual choices (§4.5, §3).
package config

// Alignment is a paragraph/image alignment choice.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// PageSize is the page dimensions in points.
type PageSize struct {
	WidthPt  float64 `yaml:"width"`
	HeightPt float64 `yaml:"height"`
}

// Margins are page margins in points.
type Margins struct {
	TopPt    float64 `yaml:"top"`
	BottomPt float64 `yaml:"bottom"`
	LeftPt   float64 `yaml:"left"`
	RightPt  float64 `yaml:"right"`
}

// Font describes a run's typographic style.
type Font struct {
	Family string  `yaml:"family"`
	SizePt float64 `yaml:"size"`
	Bold   bool    `yaml:"bold"`
	Italic bool    `yaml:"italic"`
	Color  string  `yaml:"color"`
}

// HeadingStyle is the per-level (1..=6) heading style. Numbering, when
// non-empty, is a §4.3 format string; invalid formats are dropped with
// a warning at load time rather than rejected outright.
type HeadingStyle struct {
	Font          Font      `yaml:"font"`
	SpacingBefore float64   `yaml:"spacing_before"`
	SpacingAfter  float64   `yaml:"spacing_after"`
	Alignment     Alignment `yaml:"alignment"`
	Numbering     string    `yaml:"numbering"`
}

// ParagraphStyle is the default body-paragraph style.
type ParagraphStyle struct {
	Font        Font      `yaml:"font"`
	LineSpacing float64   `yaml:"line_spacing"`
	SpacingAfter float64  `yaml:"spacing_after"`
	Alignment   Alignment `yaml:"alignment"`
}

// CodeBlockStyle is the visual style used for rendered code-block
// tables (§4.4). BorderWidth is in points; 0 means "no borders."
//
// The legacy boolean `border` field is migrated into BorderWidth by
// its UnmarshalYAML method (migrate.go): if both `border` and `border_width` are present
// in the source document, `border_width` wins (§4.5, §8 property 4).
type CodeBlockStyle struct {
	Font               Font    `yaml:"font"`
	BackgroundColor    string  `yaml:"background_color"`
	BorderWidth        float32 `yaml:"border_width"`
	PreserveLineBreaks bool    `yaml:"preserve_line_breaks"`
	LineSpacing        float64 `yaml:"line_spacing"`
	ParagraphSpacing   float64 `yaml:"paragraph_spacing"`
}

// TableStyle is the visual style for GFM tables.
type TableStyle struct {
	HeaderFont      Font    `yaml:"header_font"`
	CellFont        Font    `yaml:"cell_font"`
	BorderWidth     float32 `yaml:"border_width"`
	HeaderBackground string `yaml:"header_background"`
}

// ImageConfig bounds image sizing when the Markdown source doesn't
// specify explicit dimensions.
type ImageConfig struct {
	MaxWidth  int       `yaml:"max_width"`
	MaxHeight int       `yaml:"max_height"`
	Alignment Alignment `yaml:"alignment"`
}

// ListConfig controls list indentation and spacing.
type ListConfig struct {
	Indent  float64 `yaml:"indent"`
	Spacing float64 `yaml:"spacing"`
}

// LinkConfig controls hyperlink run styling.
type LinkConfig struct {
	Color     string `yaml:"color"`
	Underline bool   `yaml:"underline"`
}

// Styles bundles every per-element-kind style.
type Styles struct {
	DefaultFont Font                  `yaml:"default_font"`
	Headings    map[int]HeadingStyle  `yaml:"headings"`
	Paragraph   ParagraphStyle        `yaml:"paragraph"`
	CodeBlock   CodeBlockStyle        `yaml:"code_block"`
	Table       TableStyle            `yaml:"table"`
}

// Elements bundles non-text-style element configuration.
type Elements struct {
	Image ImageConfig `yaml:"image"`
	List  ListConfig  `yaml:"list"`
	Link  LinkConfig  `yaml:"link"`
}

// LanguageProcessing is the per-language section of
// code_block_processing (§3, §4.2).
type LanguageProcessing struct {
	EnableSyntaxValidation bool              `yaml:"enable_syntax_validation"`
	EnableFormatting       bool              `yaml:"enable_formatting"`
	EnableOptimization     bool              `yaml:"enable_optimization"`
	TimeoutMS              int               `yaml:"timeout_ms"`
	FormatterOptions       map[string]string `yaml:"formatter_options"`
	QualityChecks          map[string]bool   `yaml:"quality_checks"`
	CustomOptions          map[string]string `yaml:"custom_options"`
}

// CodeBlockProcessing is the code_block_processing configuration
// subtree. EnableProcessing defaults to false (§9 open question:
// processing is opt-in).
type CodeBlockProcessing struct {
	EnableProcessing bool                          `yaml:"enable_processing"`
	DefaultTimeoutMS int                           `yaml:"default_timeout_ms"`
	MaxCacheSize     int                           `yaml:"max_cache_size"`
	Languages        map[string]LanguageProcessing `yaml:"languages"`
}

// Config is the root typed style configuration, the full tree
// described in spec.md §3 under "ConversionConfig".
type Config struct {
	Page                PageSize             `yaml:"page"`
	Margins             Margins              `yaml:"margins"`
	Styles              Styles               `yaml:"styles"`
	Elements            Elements             `yaml:"elements"`
	CodeBlockProcessing CodeBlockProcessing  `yaml:"code_block_processing"`
}

// LanguageConfig looks up the processing configuration for a
// (lowercased) language tag, falling back to the zero value
// (everything disabled) when the language has no dedicated section.
func (c *Config) LanguageConfig(language string) LanguageProcessing {
	if lc, ok := c.CodeBlockProcessing.Languages[language]; ok {
		return lc
	}
	return LanguageProcessing{}
}
