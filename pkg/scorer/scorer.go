package scorer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score is the ATS keyword coverage of a generated document.
type Score struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Percent int      `json:"percent"`
}

// Coverage reports which keywords appear in text as whole phrases, ignoring
// case. Blank and duplicate keywords are skipped. An empty keyword list
// scores 0.
func Coverage(text string, keywords []string) (score Score) {
	score = Score{
		Matched: []string{},
		Missing: []string{},
	}

	haystack := strings.ToLower(text)
	seen := make(map[string]bool, len(keywords))

	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		needle := strings.ToLower(keyword)
		if needle == "" || seen[needle] {
			continue
		}
		seen[needle] = true

		if containsPhrase(haystack, needle) {
			score.Matched = append(score.Matched, keyword)
		} else {
			score.Missing = append(score.Missing, keyword)
		}
	}

	total := len(score.Matched) + len(score.Missing)
	if total > 0 {
		score.Percent = len(score.Matched) * 100 / total
	}

	return score
}

// Lessons turns missing keywords into suggestions for the candidate.
func Lessons(score Score) (lessons []string) {
	lessons = []string{}
	for _, keyword := range score.Missing {
		lessons = append(lessons, "Mention "+keyword+" if it reflects your experience")
	}
	return lessons
}

// containsPhrase reports whether needle occurs in haystack with no letter or
// digit directly before or after it.
func containsPhrase(haystack, needle string) (found bool) {
	offset := 0
	for offset <= len(haystack)-len(needle) {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return found
		}
		start := offset + idx
		end := start + len(needle)

		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			found = true
			return found
		}

		_, size := utf8.DecodeRuneInString(haystack[start:])
		offset = start + size
	}
	return found
}

func boundaryBefore(s string, i int) (ok bool) {
	if i == 0 {
		ok = true
		return ok
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	ok = !isWordRune(r)
	return ok
}

func boundaryAfter(s string, i int) (ok bool) {
	if i >= len(s) {
		ok = true
		return ok
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	ok = !isWordRune(r)
	return ok
}

func isWordRune(r rune) (word bool) {
	word = unicode.IsLetter(r) || unicode.IsDigit(r)
	return word
}
