package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixOCRErrors_LigatureExpansion(t *testing.T) {
	assert.Equal(t, "لا", FixOCRErrors("ﻻ"))
	assert.Equal(t, "لأ", FixOCRErrors("ﻷ"))
	assert.Equal(t, "الله", FixOCRErrors("ﷲ"))
}

func TestFixOCRErrors_ElongatedAlLam(t *testing.T) {
	// Initial-form lam runs after an alef collapse to canonical al-.
	assert.Equal(t, "ال", FixOCRErrors("اﻟﻟ"))
	assert.Equal(t, "ال", FixOCRErrors("اﻟ"))
}

// A ligature expanded by the first category must still be visible to the
// regex category that runs after it.
func TestFixOCRErrors_CategoryOrdering(t *testing.T) {
	out := FixOCRErrors("ﻻاﻟﻟ")
	assert.Equal(t, "لاال", out)
}

func TestFixOCRErrors_LetterFixes(t *testing.T) {
	assert.Equal(t, "ه", FixOCRErrors("ھ"))
	assert.Equal(t, "ي", FixOCRErrors("ی"))
	assert.Equal(t, "ة", FixOCRErrors("ۃ"))
	assert.Equal(t, "صلى الله عليه وسلم", FixOCRErrors("ﷺ"))
	assert.Equal(t, "جل جلاله", FixOCRErrors("ﷻ"))
}

func TestFixOCRErrors_ReligiousPhrases(t *testing.T) {
	assert.Equal(t, "صلى الله عليه وسلم", FixOCRErrors("صلي آلله  عليه وسلم"))
	// Captured suffix survives canonicalization.
	assert.Equal(t, "رضي الله عنها", FixOCRErrors("رضى آلله عنها"))
	assert.Equal(t, "رضي الله عنهم", FixOCRErrors("رضي الله عنهم"))
	assert.Equal(t, "سبحانه وتعالى", FixOCRErrors("سبحانه و تعالي"))
}

func TestFixOCRErrors_SymbolSpacing(t *testing.T) {
	assert.Equal(t, "كلمة ۝ كلمة", FixOCRErrors("كلمة۝كلمة"))
	assert.Equal(t, " ﷽ ", FixOCRErrors("﷽"))
}

func TestFixOCRErrors_DigitNormalization(t *testing.T) {
	assert.Equal(t, "0123456789", FixOCRErrors("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "50%", FixOCRErrors("٥٠٪"))
	assert.Equal(t, "3.14", FixOCRErrors("٣٫١٤"))
	assert.Equal(t, "1,000", FixOCRErrors("١٬٠٠٠"))
}

func TestFixOCRErrors_TatweelRemoval(t *testing.T) {
	assert.Equal(t, "کتاب", FixOCRErrors("کـــتاب"))
	assert.Equal(t, "كتاب", FixOCRErrors("كـتـاب"))
	assert.Equal(t, "", FixOCRErrors("ـــ"))
}

func TestFixOCRErrors_DiacriticsPreserved(t *testing.T) {
	in := "كَتَبَ الْوَلَدُ"
	assert.Equal(t, in, FixOCRErrors(in))
}

func TestFixOCRErrors_EmptyAndNonArabic(t *testing.T) {
	assert.Equal(t, "", FixOCRErrors(""))
	assert.Equal(t, "hello world\n\n42", FixOCRErrors("hello world\n\n42"))
}

// Canonical text free of liturgical symbols passes through unchanged, so a
// second application is a no-op.
func TestFixOCRErrors_IdempotentOnCanonicalText(t *testing.T) {
	inputs := []string{
		"صلى الله عليه وسلم",
		"بسم الله الرحمن الرحيم",
		"كتاب العلم 123",
		"لا إله إلا الله",
	}
	for _, in := range inputs {
		once := FixOCRErrors(in)
		twice := FixOCRErrors(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestSelectBestCandidate(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "", SelectBestCandidate(nil))
	})

	t.Run("picks candidate with most special characters", func(t *testing.T) {
		got := SelectBestCandidate([]string{"hello", "كتاب العلم", "كتاب"})
		assert.Equal(t, "كتاب العلم", got)
	})

	t.Run("tie keeps first candidate", func(t *testing.T) {
		got := SelectBestCandidate([]string{"كتاب", "علوم"})
		assert.Equal(t, "كتاب", got)
	})

	t.Run("all zero counts keep first", func(t *testing.T) {
		got := SelectBestCandidate([]string{"abc", "defgh"})
		assert.Equal(t, "abc", got)
	})

	t.Run("candidates are corrected before scoring", func(t *testing.T) {
		// The ligature expands to four Arabic letters, beating the
		// three-letter plain candidate.
		got := SelectBestCandidate([]string{"علم", "ﷲ"})
		assert.Equal(t, "الله", got)
	})
}
