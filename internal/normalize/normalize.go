package normalize

import (
	"strings"
	"unicode"
)

// DefaultSeparators are the grouping characters people type inside card numbers.
const DefaultSeparators = " -."

type Options struct {
	Separators string
	KeepTabs   bool
}

type Result struct {
	Raw        string
	Normalized string
}

// Apply trims input and drops every separator rune. Anything else, including
// letters, is left in place so strict validation can still reject it.
func Apply(input string, opts Options) Result {
	res := Result{Raw: input}

	seps := opts.Separators
	if seps == "" {
		seps = DefaultSeparators
	}

	trimmed := strings.TrimFunc(input, unicode.IsSpace)
	res.Normalized = strings.Map(func(r rune) rune {
		if strings.ContainsRune(seps, r) {
			return -1
		}
		if r == '\t' && !opts.KeepTabs {
			return -1
		}
		return r
	}, trimmed)

	return res
}

// Number normalizes a human-entered card number with the default separators.
func Number(input string) string {
	return Apply(input, Options{}).Normalized
}
