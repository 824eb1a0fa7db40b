package config

// Default returns the configuration used when the caller supplies no
// YAML document at all: US Letter page, 1in margins, a Calibri
// body font, unnumbered headings, and code-block processing disabled
// (§9: the core defaults processing off, same as the source behavior).
func Default() *Config {
	body := Font{Family: "Calibri", SizePt: 11, Color: "#000000"}
	mono := Font{Family: "Consolas", SizePt: 10, Color: "#000000"}

	headings := map[int]HeadingStyle{}
	sizes := map[int]float64{1: 28, 2: 22, 3: 18, 4: 14, 5: 12, 6: 11}
	for level := 1; level <= 6; level++ {
		headings[level] = HeadingStyle{
			Font:          Font{Family: "Calibri Light", SizePt: sizes[level], Bold: level <= 3, Color: "#000000"},
			SpacingBefore: 12,
			SpacingAfter:  6,
			Alignment:     AlignLeft,
		}
	}

	return &Config{
		Page:    PageSize{WidthPt: 612, HeightPt: 792},
		Margins: Margins{TopPt: 72, BottomPt: 72, LeftPt: 72, RightPt: 72},
		Styles: Styles{
			DefaultFont: body,
			Headings:    headings,
			Paragraph: ParagraphStyle{
				Font:         body,
				LineSpacing:  1.15,
				SpacingAfter: 8,
				Alignment:    AlignLeft,
			},
			CodeBlock: CodeBlockStyle{
				Font:               mono,
				BorderWidth:        0.5,
				PreserveLineBreaks: true,
				LineSpacing:        1.0,
				ParagraphSpacing:   0,
			},
			Table: TableStyle{
				HeaderFont:       Font{Family: "Calibri", SizePt: 11, Bold: true, Color: "#000000"},
				CellFont:         body,
				BorderWidth:      0.5,
				HeaderBackground: "#D9D9D9",
			},
		},
		Elements: Elements{
			Image: ImageConfig{MaxWidth: 468, MaxHeight: 648, Alignment: AlignCenter},
			List:  ListConfig{Indent: 24, Spacing: 4},
			Link:  LinkConfig{Color: "#0563C1", Underline: true},
		},
		CodeBlockProcessing: CodeBlockProcessing{
			EnableProcessing: false,
			DefaultTimeoutMS: 2000,
			MaxCacheSize:     256,
			Languages:        map[string]LanguageProcessing{},
		},
	}
}
