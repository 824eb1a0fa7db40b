// Package colorname resolves the color strings accepted by the style
// configuration — #RRGGBB/#RGB hex codes and a small table of CSS/X11
// color names — down to the bare hex digits OOXML run properties
// expect: a <w:color w:val="RRGGBB"/> or <w:shd .../> fill attribute
// never carries the leading '#' a CSS author writes.
package colorname

import (
	"regexp"
	"strings"
)

var (
	shorthandHex = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
	fullHex      = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// IsHexColor reports whether s is a #RGB or #RRGGBB hex color, in
// either case.
func IsHexColor(s string) bool {
	return shorthandHex.MatchString(s) || fullHex.MatchString(s)
}

// namedColorHex maps the CSS/X11 names the style configuration accepts
// to their #RRGGBB form.
var namedColorHex = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"red":     "#FF0000",
	"green":   "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"brown":   "#A52A2A",
	"pink":    "#FFC0CB",
	"lime":    "#00FF00",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"silver":  "#C0C0C0",
}

// ToHex resolves s (a #RGB/#RRGGBB hex code or a CSS/X11 name, case
// and surrounding-space insensitive) to the bare six-digit uppercase
// hex string an OOXML w:color/w:fill w:val attribute expects — no '#'.
// It returns "" for anything it cannot resolve.
func ToHex(s string) string {
	s = strings.TrimSpace(s)
	if shorthandHex.MatchString(s) || fullHex.MatchString(s) {
		return strings.ToUpper(expandShorthand(s[1:]))
	}
	if hex, ok := namedColorHex[strings.ToLower(s)]; ok {
		return hex[1:]
	}
	return ""
}

// expandShorthand widens a 3-digit hex body ("abc") to its 6-digit
// form ("aabbcc") by doubling each digit in place; a 6-digit body
// passes through unchanged.
func expandShorthand(digits string) string {
	if len(digits) != 3 {
		return digits
	}
	out := make([]byte, 0, 6)
	for i := 0; i < 3; i++ {
		out = append(out, digits[i], digits[i])
	}
	return string(out)
}

// IsValidHex reports whether s is a strict #RRGGBB hex color, the only
// form the style configuration accepts once loaded (§4.5 validation
// rejects the shorthand #RGB form and bare names; ToHex is what
// resolves those down to OOXML's bare hex form at emit time).
func IsValidHex(s string) bool {
	return fullHex.MatchString(s)
}
