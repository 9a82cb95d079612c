package llm

import (
	"strings"
)

// CleanGenerated converts literal \n sequences to newlines and drops emoji,
// which the PDF core fonts cannot draw. Runs of spaces are left alone since
// indentation is significant to the layout.
func CleanGenerated(text string) (cleaned string) {
	unescaped := strings.ReplaceAll(text, "\\n", "\n")

	var b strings.Builder
	b.Grow(len(unescaped))
	for _, r := range unescaped {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}

	cleaned = strings.TrimSpace(b.String())
	return cleaned
}

func isEmoji(r rune) (emoji bool) {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, transport
		emoji = true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		emoji = true
	case r == 0xFE0F: // variation selector
		emoji = true
	}
	return emoji
}
