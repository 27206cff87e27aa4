package exercise

import "strings"

// CheckAnswer compares a single submitted string against the item's
// canonical answer. Whitespace is trimmed and comparison is case-insensitive.
// Free-form items are never correct by comparison.
func CheckAnswer(it *Item, submitted string) bool {
	if it.Kind.FreeForm() || it.IsArray() {
		return false
	}
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}
	return strings.EqualFold(submitted, strings.TrimSpace(it.Answer))
}

// CheckAnswers compares an ordered list of submitted values against the
// item's expected answers, element by element. Lengths must match.
func CheckAnswers(it *Item, submitted []string) bool {
	if it.Kind.FreeForm() {
		return false
	}
	if !it.IsArray() {
		if len(submitted) != 1 {
			return false
		}
		return CheckAnswer(it, submitted[0])
	}
	if len(submitted) != len(it.Answers) {
		return false
	}
	for i, want := range it.Answers {
		got := strings.TrimSpace(submitted[i])
		if got == "" || !strings.EqualFold(got, strings.TrimSpace(want)) {
			return false
		}
	}
	return true
}

// SplitParts splits a raw "a | b | c" entry into trimmed parts.
func SplitParts(raw string) []string {
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
