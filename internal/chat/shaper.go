package chat

import (
	"fmt"
	"strings"
	"unicode"
)

// detailEmojis mark lines that describe an individual listing. Any line
// containing one is dropped even outside a detected list block.
var detailEmojis = []string{"🏠", "📍", "💰", "📋", "💬"}

// minShapedLen is the byte length below which the surviving text is
// considered degenerate and replaced with a synthesized confirmation.
const minShapedLen = 20

// Shape removes an LLM-emitted enumerated listing block from text. The
// caller renders results as cards, so listings in the text are duplicates.
// It is a best-effort textual heuristic, applied only when results exist,
// and must tolerate arbitrary formatting without failing; swap it for a
// structured-output contract if the prompt ever stops being enough.
func Shape(text string, resultCount int) string {
	lines := strings.Split(text, "\n")
	var kept []string
	skipping := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		// A line opening with a digit and carrying list punctuation (or a
		// listing emoji) starts an enumerated block.
		if isListingLine(trimmed) {
			skipping = true
			continue
		}
		if containsAny(line, detailEmojis) {
			continue
		}
		if skipping {
			// The block ends at a blank line or end of text.
			if trimmed == "" || i == len(lines)-1 {
				skipping = false
			}
			continue
		}
		kept = append(kept, line)
	}

	out := strings.TrimSpace(strings.Join(kept, "\n"))
	if out == "" || len(out) < minShapedLen {
		return fmt.Sprintf("✅ Encontré %d propiedades que coinciden con tu búsqueda. Te las muestro abajo:", resultCount)
	}

	low := strings.ToLower(out)
	if !strings.Contains(low, "propiedad") && !strings.Contains(low, "encontré") {
		out += fmt.Sprintf("\n\n📊 **Encontré %d propiedades** - Te las muestro en detalle abajo 👇", resultCount)
	}
	return out
}

func isListingLine(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	if !unicode.IsDigit(r) {
		return false
	}
	return strings.ContainsAny(trimmed, ".)") ||
		strings.Contains(trimmed, "🏠") ||
		strings.Contains(trimmed, "📍")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
