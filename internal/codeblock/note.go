package codeblock

import (
	"strings"
	"time"

	"mdocx/ast"
	"mdocx/internal/config"
)

// Sentinel markers exchanged between the code-block strategy layer and
// the DOCX emitter (§4.2, §4.4, §9: "sentinels are private to the
// pipeline; the emitter is the only recognized consumer").
const (
	NoteBlockStart = "[NOTE_BLOCK_START]"
	NoteBlockEnd   = "[NOTE_BLOCK_END]"
	NoteTitleOpen  = "[TITLE]"
	NoteTitleClose = "[/TITLE]"
	NoteIconOpen   = "[ICON]"
	NoteIconClose  = "[/ICON]"
	NoteContentOpen  = "[CONTENT]"
	NoteContentClose = "[/CONTENT]"

	BoldOpen      = "[BOLD]"
	BoldClose     = "[/BOLD]"
	ItalicOpen    = "[ITALIC]"
	ItalicClose   = "[/ITALIC]"

	defaultNoteIconPath = "assets/note-icon.png"
)

// NoteStrategy turns a fenced code block tagged "note" (or one of its
// aliases) into a structured callout envelope rather than an annotated
// code listing (§4.2). The envelope's exact grammar is documented on
// Process.
type NoteStrategy struct {
	iconPath string
}

// NewNoteStrategy returns the built-in note/tip/hint strategy. An
// empty iconPath falls back to defaultNoteIconPath.
func NewNoteStrategy(iconPath string) *NoteStrategy {
	if iconPath == "" {
		iconPath = defaultNoteIconPath
	}
	return &NoteStrategy{iconPath: iconPath}
}

// Process emits:
//
//	[NOTE_BLOCK_START]
//	[TITLE]<first non-empty line>[/TITLE]
//	[ICON]<icon_path>[/ICON]
//	[CONTENT]
//	<remaining lines verbatim>
//	[/CONTENT]
//	[NOTE_BLOCK_END]
//
// The title section is omitted entirely when the first line is empty.
func (n *NoteStrategy) Process(code string, _ config.LanguageProcessing) (*ast.ProcessedCodeBlock, error) {
	start := time.Now()
	lines := strings.Split(code, "\n")

	title := ""
	rest := lines
	if len(lines) > 0 {
		title = strings.TrimSpace(lines[0])
		if title != "" {
			rest = lines[1:]
		}
	}

	var b strings.Builder
	b.WriteString(NoteBlockStart)
	b.WriteString("\n")
	if title != "" {
		b.WriteString(NoteTitleOpen)
		b.WriteString(title)
		b.WriteString(NoteTitleClose)
		b.WriteString("\n")
	}
	b.WriteString(NoteIconOpen)
	b.WriteString(n.iconPath)
	b.WriteString(NoteIconClose)
	b.WriteString("\n")
	b.WriteString(NoteContentOpen)
	b.WriteString("\n")
	b.WriteString(strings.Join(rest, "\n"))
	b.WriteString("\n")
	b.WriteString(NoteContentClose)
	b.WriteString("\n")
	b.WriteString(NoteBlockEnd)

	envelope := b.String()
	return &ast.ProcessedCodeBlock{
		OriginalCode:  code,
		ProcessedCode: &envelope,
		Metadata: ast.ProcessingMetadata{
			SyntaxValid:      true,
			IsFormatted:      true,
			ProcessingTimeNS: time.Since(start).Nanoseconds(),
			ProcessorVersion: n.Version(),
		},
	}, nil
}

func (n *NoteStrategy) SupportsLanguage(name string) bool {
	switch name {
	case "note", "notes", "tip", "tips", "hint":
		return true
	default:
		return false
	}
}
func (n *NoteStrategy) PrimaryLanguageName() string { return "note" }
func (n *NoteStrategy) Priority() uint8             { return 100 }
func (n *NoteStrategy) Version() string             { return "1.0.0" }
func (n *NoteStrategy) Description() string {
	return "Renders a callout table instead of a code listing."
}

// ParseNoteEnvelope extracts the title, icon path and content from a
// processed-code string produced by NoteStrategy.Process. ok is false
// if s is not a well-formed envelope.
func ParseNoteEnvelope(s string) (title, icon, content string, ok bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), NoteBlockStart) {
		return "", "", "", false
	}

	if t, hasTitle := between(s, NoteTitleOpen, NoteTitleClose); hasTitle {
		title = t
	}

	icon, hasIcon := between(s, NoteIconOpen, NoteIconClose)
	if !hasIcon {
		return "", "", "", false
	}

	content, hasContent := between(s, NoteContentOpen, NoteContentClose)
	if !hasContent {
		return "", "", "", false
	}
	content = strings.Trim(content, "\n")

	return title, icon, content, true
}

func between(s, open, close string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(s[start:], close)
	if end < 0 {
		return "", false
	}
	return s[start : start+end], true
}
