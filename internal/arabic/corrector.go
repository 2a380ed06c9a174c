package arabic

import "strings"

// FixOCRErrors applies the correction rule categories to raw OCR text and
// returns the repaired text. Categories run in a fixed order and each one
// operates on the output of the previous, so a ligature expanded in the
// first category can still be matched by a word pattern in the second.
// The function never fails; the worst case for a broken rule is text left
// unchanged by that rule.
func FixOCRErrors(text string) string {
	return DefaultRules.Apply(text)
}

// Apply runs every rule category of the set against text, exhaustively
// within each category before moving to the next.
func (rs *RuleSet) Apply(text string) string {
	for _, r := range rs.Ligatures {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	for _, r := range rs.WordPatterns {
		text = r.re.ReplaceAllString(text, r.To)
	}
	for _, r := range rs.LetterFixes {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	for _, r := range rs.Phrases {
		text = r.re.ReplaceAllString(text, r.To)
	}
	for _, r := range rs.Symbols {
		text = strings.ReplaceAll(text, r.From, " "+r.To+" ")
	}
	if rs.digitPattern != nil {
		text = rs.digitPattern.ReplaceAllStringFunc(text, func(m string) string {
			return rs.digitMap[m]
		})
	}
	for _, r := range rs.Diacritics {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	for _, r := range rs.TatweelRepair {
		text = r.re.ReplaceAllString(text, r.To)
	}
	return text
}

// SelectBestCandidate corrects each OCR candidate independently and returns
// the corrected text with the strictly greatest special-character count.
// Ties, and the all-zero case, keep the earliest candidate. The empty string
// is returned for an empty candidate list.
func SelectBestCandidate(candidates []string) string {
	best := ""
	bestScore := 0
	for i, cand := range candidates {
		fixed := FixOCRErrors(cand)
		if i == 0 {
			best = fixed
			bestScore = SpecialCharCount(fixed)
			continue
		}
		if score := SpecialCharCount(fixed); score > bestScore {
			best = fixed
			bestScore = score
		}
	}
	return best
}
