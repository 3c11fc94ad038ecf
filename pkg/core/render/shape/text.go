package shape

import "unicode/utf8"

// Text metrics are estimated from the font size; no font files are read.
const (
	CharWidthRatio = 0.55 // average glyph advance relative to font size
	MinFontSize    = 6.0
	Ellipsis       = "…"
	maxFitSteps    = 64
)

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * CharWidthRatio
}

// FitLabel shrinks text until it fits into maxWidth.
//
// The font size is lowered in steps of one down to [MinFontSize]. If the
// text is still too wide, characters are dropped from the end and replaced
// by [Ellipsis] until it fits or a single character remains. Both loops are
// bounded, so FitLabel always terminates.
func FitLabel(text string, maxWidth, fontSize float64) (string, float64) {
	if maxWidth <= 0 || text == "" {
		return text, fontSize
	}

	for step := 0; step < maxFitSteps && TextWidth(text, fontSize) > maxWidth && fontSize > MinFontSize; step++ {
		fontSize = max(MinFontSize, fontSize-1)
	}
	if TextWidth(text, fontSize) <= maxWidth {
		return text, fontSize
	}

	runes := []rune(text)
	for n := len(runes) - 1; n >= 1; n-- {
		candidate := string(runes[:n]) + Ellipsis
		if TextWidth(candidate, fontSize) <= maxWidth || n == 1 {
			return candidate, fontSize
		}
	}
	return string(runes[:1]), fontSize
}
