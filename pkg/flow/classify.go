package flow

import (
	"strings"
)

// fallbackRule styles lines that no supplied rule accepts.
//
//nolint:gochecknoglobals // immutable default
var fallbackRule = StyleRule{Kind: KindPlain, Size: 11, Weight: Regular}

// match reports whether a trimmed line belongs to kind and returns its display text.
func match(kind Kind, line string) (text string, ok bool) {
	switch kind {
	case KindHeading1:
		text, ok = strings.CutPrefix(line, "# ")
	case KindHeading2:
		text, ok = strings.CutPrefix(line, "## ")
	case KindHeading3:
		text, ok = strings.CutPrefix(line, "### ")
	case KindStrong:
		ok = strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")
		if ok && len(line) >= 4 {
			text = line[2 : len(line)-2]
		}
	case KindBullet:
		var rest string
		rest, ok = strings.CutPrefix(line, "- ")
		if !ok {
			rest, ok = strings.CutPrefix(line, "• ")
		}
		if ok {
			text = BulletPrefix + rest
		}
	case KindPlain:
		text, ok = line, true
	}
	return text, ok
}

// Classify resolves a trimmed, non-blank logical line against rules, first
// match wins, and returns the winning rule with the display text.
func Classify(line string, rules []StyleRule) (rule StyleRule, text string) {
	for _, candidate := range rules {
		var ok bool
		text, ok = match(candidate.Kind, line)
		if ok {
			rule = candidate
			return rule, text
		}
	}

	rule = fallbackRule
	text = line
	return rule, text
}
