package arabic

import (
	"log/slog"
	"regexp"
	"strings"
)

// literalRule is a plain string substitution applied with strings.ReplaceAll.
type literalRule struct {
	From string
	To   string
}

// regexRule is a compiled pattern substitution. Entries whose pattern fails
// to compile are dropped at table construction time and logged; correction
// proceeds with the remaining rules.
type regexRule struct {
	re *regexp.Regexp
	To string
}

// RuleSet holds the ordered correction rule categories. Categories are
// applied strictly in struct-field order; later categories operate on the
// output of earlier ones, so the ordering is part of the contract.
type RuleSet struct {
	Ligatures     []literalRule // presentation-form ligature expansion
	WordPatterns  []regexRule   // common misrecognized word patterns
	LetterFixes   []literalRule // single-character glyph fixes
	Phrases       []regexRule   // religious phrase canonicalization
	Symbols       []literalRule // liturgical symbols, preserved with spacing
	digitPattern  *regexp.Regexp
	digitMap      map[string]string
	Diacritics    []literalRule // identity mappings, intentionally inert
	TatweelRepair []regexRule
}

// Ligature expansions for the lam-alef family. OCR engines frequently emit
// the presentation-form code point instead of the decomposed letter pair.
var ligatureTable = []literalRule{
	{"ﻻ", "لا"}, // ﻻ isolated lam-alef
	{"ﻼ", "لا"}, // ﻼ final lam-alef
	{"ﻵ", "لآ"}, // ﻵ lam-alef with madda
	{"ﻶ", "لآ"}, // ﻶ final form
	{"ﻷ", "لأ"}, // ﻷ lam-alef with hamza above
	{"ﻸ", "لأ"}, // ﻸ final form
	{"ﻹ", "لإ"}, // ﻹ lam-alef with hamza below
	{"ﻺ", "لإ"}, // ﻺ final form
}

// Word patterns tolerate character classes of visually similar misreads,
// e.g. the closing dal/dhal ambiguity in Muhammad and Abd.
var wordPatternTable = []struct{ Pattern, To string }{
	{`اﻟ+`, "ال"},                 // elongated initial-form lam in al-
	{`ﷲ`, "الله"},                 // Allah ligature
	{`ﻣﺤﻤ[ﺪﺩدﺪﺩ]`, "محمد"},        // Muhammad
	{`ﻋﺒ[ﺪﺩدﺪﺩ]`, "عبد"},          // Abd
	{`اﻟ?ﺮﺣﻤ[ﻦﻥن]`, "الرحمن"},     // Al-Rahman
	{`اﻟ?ﺮﺣ[ﻴﻳيﯾ]?[ﻢﻣم]`, "الرحيم"}, // Al-Raheem
	{`اﻹﺳﻼ[ﻡمﻢ]`, "الإسلام"},      // Al-Islam
	{`اﻟﻘﺮ[ﺁآ]ن`, "القرآن"},       // Al-Quran
}

// Single-character fixes. The honorific compatibility ligatures expand to
// their full canonical phrases; the Allah ligature is handled in the word
// pattern category and deliberately not duplicated here.
var letterFixTable = []literalRule{
	{"ھ", "ه"},                     // U+06BE alternate Ha
	{"ی", "ي"},                     // U+06CC Farsi Ya
	{"ۃ", "ة"},                     // U+06C3 Ta-Marbuta variant
	{"ﷺ", "صلى الله عليه وسلم"}, // ﷺ
	{"ﷻ", "جل جلاله"},          // ﷻ
	{"ﷴ", "محمد"},              // ﷴ
}

// Religious phrases, tolerant of optional diacritics and spacing variance
// around the fixed wording. The captured group in the "pleased with"
// pattern preserves the pronoun suffix.
var phraseTable = []struct{ Pattern, To string }{
	{`صل[ىي]\s*[اآ]لله\s*عل[يى]ه\s*[وﻭ]سلم`, "صلى الله عليه وسلم"},
	{`رض[يى]\s*[اآ]لله\s*عن(هما|هم|ها|ه)`, "رضي الله عن$1"},
	{`سبحانه\s*و\s*تعال[ىي]`, "سبحانه وتعالى"},
	{`عز\s*و\s*جل`, "عز وجل"},
	{`عليه\s*السلام`, "عليه السلام"},
	{`بسم\s*[اآ]لله\s*[اآ]لرحمن\s*[اآ]لرحيم`, "بسم الله الرحمن الرحيم"},
}

// Quranic symbols and markers. Each is preserved with one inserted space on
// either side so OCR output cannot fuse it with an adjacent word.
var symbolTable = []literalRule{
	{"۝", "۝"},  // end of ayah
	{"۞", "۞"},  // rub el hizb
	{"۩", "۩"},  // sajdah
	{"﷽", "﷽"},  // bismillah
	{"﴾", "﴾"},  // ornate left parenthesis
	{"﴿", "﴿"},  // ornate right parenthesis
	{"ۖ", "ۖ"},  // small high ligature sad with lam (stop sign)
	{"ۗ", "ۗ"},  // small high qaf
	{"ۘ", "ۘ"},  // small high meem
	{"ۙ", "ۙ"},  // small high lam alef
	{"ۚ", "ۚ"},  // small high jeem
	{"ۛ", "ۛ"},  // small high three dots
	{"ۜ", "ۜ"},  // small high seen
	{"۰", "۰"}, {"۱", "۱"}, {"۲", "۲"}, {"۳", "۳"}, {"۴", "۴"},
	{"۵", "۵"}, {"۶", "۶"}, {"۷", "۷"}, {"۸", "۸"}, {"۹", "۹"},
}

// Arabic-Indic digits and numeric punctuation mapped to Western forms.
// Applied as one combined scan so no replacement output is re-processed.
var digitTable = map[string]string{
	"٠": "0", "١": "1", "٢": "2", "٣": "3", "٤": "4",
	"٥": "5", "٦": "6", "٧": "7", "٨": "8", "٩": "9",
	"٪": "%", // percent sign
	"٫": ".", // decimal separator
	"٬": ",", // thousands separator
}

// Diacritical marks preserved as-is. The identity entries keep the category
// slot in the pipeline in case targeted diacritic repair is added later.
var diacriticTable = []literalRule{
	{"ٰ", "ٰ"}, // superscript alef
	{"ً", "ً"}, // fathatan
	{"ٌ", "ٌ"}, // dammatan
	{"ٍ", "ٍ"}, // kasratan
	{"َ", "َ"}, // fatha
	{"ُ", "ُ"}, // damma
	{"ِ", "ِ"}, // kasra
	{"ّ", "ّ"}, // shadda
	{"ْ", "ْ"}, // sukun
}

// Tatweel repair: strip elongation runs, then collapse the two letter-class
// adjacency patterns the elongation separated.
var tatweelTable = []struct{ Pattern, To string }{
	{`ـ+`, ""},
	{`([ءآأؤإئا])ـ+([ءآأؤإئا])`, "$1$2"},
	{`([بتثجحخسشصضطظعغفقكلمنهي])ـ+([بتثجحخسشصضطظعغفقكلمنهي])`, "$1$2"},
}

// DefaultRules is the process-wide correction rule set, built once at
// package initialization.
var DefaultRules = newRuleSet()

func newRuleSet() *RuleSet {
	rs := &RuleSet{
		Ligatures:     ligatureTable,
		WordPatterns:  compileRules(wordPatternTable, "word_pattern"),
		LetterFixes:   letterFixTable,
		Phrases:       compileRules(phraseTable, "phrase"),
		Symbols:       symbolTable,
		Diacritics:    diacriticTable,
		TatweelRepair: compileRules(tatweelTable, "tatweel"),
		digitMap:      digitTable,
	}

	alts := make([]string, 0, len(digitTable))
	for k := range digitTable {
		alts = append(alts, regexp.QuoteMeta(k))
	}
	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		slog.Warn("Skipping digit normalization rules", "error", err)
	} else {
		rs.digitPattern = re
	}
	return rs
}

func compileRules(entries []struct{ Pattern, To string }, category string) []regexRule {
	rules := make([]regexRule, 0, len(entries))
	for _, e := range entries {
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			slog.Warn("Skipping invalid correction rule",
				"category", category, "pattern", e.Pattern, "error", err)
			continue
		}
		rules = append(rules, regexRule{re: re, To: e.To})
	}
	return rules
}
