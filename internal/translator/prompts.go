package translator

import (
	"fmt"
	"strings"
)

// textPrompt builds the system prompt for chunk translation. Arabic sources
// get a prompt specialized for religious terminology; every other source
// language gets the generic translator prompt.
func textPrompt(sourceLang, targetLang string) string {
	if strings.EqualFold(sourceLang, "Arabic") {
		return fmt.Sprintf(`You are an expert translator specializing in %[1]s to %[2]s translations, with extensive knowledge of Islamic texts and cultural context.

IMPORTANT CONTEXT HANDLING:
1. When encountering unclear or partially extracted words:
   - Analyze the surrounding context carefully
   - Use your knowledge of common %[1]s phrases and expressions
   - Infer the most likely word based on context and religious terminology

2. For Religious Terminology:
   - Keep religious terms in Arabic with translations
   - Use traditional translations for Islamic concepts

3. OUTPUT FORMAT:
   - Maintain paragraph structure
   - Only provide the translation
   - Keep religious terms in Arabic with translations in parentheses`, sourceLang, targetLang)
	}

	return fmt.Sprintf(`You are an expert translator specializing in %[1]s to %[2]s translations.

TRANSLATION GUIDELINES:
1. Maintain the original meaning and tone
2. Use natural %[2]s expressions
3. Preserve technical terms with translations if needed
4. Keep formatting and structure
5. Handle cultural references appropriately

OUTPUT FORMAT:
- Provide only the translation
- Maintain paragraph structure
- Keep original formatting`, sourceLang, targetLang)
}

// imagePrompt builds the prompt used when a whole page image is handed to a
// vision model.
func imagePrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are an expert translator analyzing a document page from %[1]s to %[2]s.
Act as a professional translator.

TRANSLATION REQUIREMENTS:
1. Translate the text from %[1]s to %[2]s
2. Preserve formatting and structure
3. Keep religious/technical terms with translations in parentheses
4. Ensure natural flow in %[2]s

OUTPUT FORMAT:
- Provide ONLY the %[2]s translation
- Maintain paragraph structure
- Use proper %[2]s punctuation
- Do not include the original text`, sourceLang, targetLang)
}
