// Package arabic repairs common OCR misreads in Arabic text and scores
// competing OCR outputs for the same page.
package arabic

// specialRanges lists the inclusive Unicode ranges counted as special
// Arabic characters when scoring OCR candidates.
var specialRanges = [][2]rune{
	{0x0600, 0x06FF},   // Arabic
	{0xFB50, 0xFDFF},   // Arabic Presentation Forms-A
	{0xFE70, 0xFEFF},   // Arabic Presentation Forms-B
	{0x0750, 0x077F},   // Arabic Supplement
	{0x08A0, 0x08FF},   // Arabic Extended-A
	{0x0870, 0x089F},   // Arabic Extended-B
	{0x0890, 0x08FF},   // Arabic Extended-C
	{0x10E60, 0x10E7F}, // Rumi Numeral Symbols
	{0x1EE00, 0x1EEFF}, // Arabic Mathematical Alphabetic Symbols
	{0x06E0, 0x06FF},   // Arabic Extended-B (additional)
	{0xFDF0, 0xFDFF},   // Arabic Ligatures
}

// IsSpecialChar reports whether the rune falls in one of the Arabic script
// ranges. It is total over all rune values, including invalid scalar values,
// and is used only as a scoring heuristic, never as a validator.
func IsSpecialChar(r rune) bool {
	for _, rng := range specialRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// SpecialCharCount returns the number of special Arabic characters in s.
func SpecialCharCount(s string) int {
	n := 0
	for _, r := range s {
		if IsSpecialChar(r) {
			n++
		}
	}
	return n
}
