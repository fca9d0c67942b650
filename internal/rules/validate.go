package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

var (
	schemeFormat  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	countryFormat = regexp.MustCompile(`^[A-Z]{2}$`)
	binFormat     = regexp.MustCompile(`^\d{6,8}$`)
)

const publishedPatternTimeout = time.Second

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

// ValidateTable checks a brand table for authoring defects. Problems that would
// change lookup results are returned as a *ValidationError; style issues are
// returned as warnings.
func ValidateTable(t *Table) ([]string, error) {
	v := &ValidationError{}
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if t == nil || t.Len() == 0 {
		v.Add("table has no brands")
		return nil, v
	}

	ids := map[string]struct{}{}
	for i, b := range t.brands {
		name := fmt.Sprintf("brands[%d]", i)
		if b.ID == "" {
			v.Add("%s.scheme is required", name)
		} else {
			name = fmt.Sprintf("brands[%d] %s", i, b.ID)
			if _, exists := ids[b.ID]; exists {
				v.Add("%s: scheme is duplicated", name)
			}
			ids[b.ID] = struct{}{}
			if !schemeFormat.MatchString(b.ID) {
				warn("%s: scheme should be lowercase alphanumeric with hyphens", name)
			}
		}

		if b.DisplayName == "" {
			v.Add("%s: brand is required", name)
		}
		if b.BinPattern == "" {
			v.Add("%s: bin is required", name)
		}

		switch b.Type {
		case TypeCredit, TypeDebit, TypeBoth:
		default:
			warn("%s: type should be credit|debit|both", name)
		}

		for _, c := range b.Countries {
			if c != "GLOBAL" && !countryFormat.MatchString(c) {
				warn("%s: country %q should be ISO 3166-1 alpha-2 or GLOBAL", name, c)
			}
		}

		for _, bin := range b.Bins {
			if !isDigits(bin.Bin) {
				v.Add("%s: bin entry %q must contain only digits", name, bin.Bin)
				continue
			}
			if !binFormat.MatchString(bin.Bin) {
				warn("%s: bin entry %q should be 6-8 digits", name, bin.Bin)
			}
			if bin.Type == "" {
				warn("%s: bin entry %q missing type", name, bin.Bin)
			}
		}

		if cb, err := compileBrand(b); err != nil {
			v.Add("%s: %v", name, err)
		} else {
			validateLengths(v, name, &cb)
			validateCVVLength(v, name, &cb)
		}
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return warnings, v
	}

	engine, err := Compile(t)
	if err != nil {
		v.Add("compile: %v", err)
		return warnings, v
	}
	for i, b := range t.brands {
		name := fmt.Sprintf("brands[%d] %s", i, b.ID)
		validateExamples(v, name, engine, b)
		validatePublishedPattern(v, name, engine.lookup(b.ID), b)
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return warnings, v
	}
	return warnings, nil
}

func validateLengths(v *ValidationError, name string, cb *compiledBrand) {
	for _, n := range cb.brand.NumberLengths {
		if n <= 0 {
			v.Add("%s: length %d must be > 0", name, n)
			continue
		}
		if !cb.admitsLength(n) {
			v.Add("%s: length %d outside full pattern bounds %d..%d", name, n, cb.minLen, cb.maxLen)
		}
	}
}

func validateCVVLength(v *ValidationError, name string, cb *compiledBrand) {
	if cb.brand.CVVLength <= 0 {
		v.Add("%s: cvvLength must be > 0", name)
		return
	}
	if !cb.cvv.MatchString(strings.Repeat("0", cb.brand.CVVLength)) {
		v.Add("%s: cvv pattern rejects a %d digit value", name, cb.brand.CVVLength)
	}
}

func validateExamples(v *ValidationError, name string, engine *Engine, b Brand) {
	for _, ex := range b.Examples {
		got, ok := engine.Identify(ex)
		if !ok {
			v.Add("%s: example %s is not identified", name, ex)
		} else if got != b.ID {
			v.Add("%s: example %s identified as %s", name, ex, got)
		}
	}
	for _, ex := range b.NegativeExamples {
		if got, ok := engine.Identify(ex); ok && got == b.ID {
			v.Add("%s: negative example %s identified as %s", name, ex, got)
		}
	}
}

// validatePublishedPattern evaluates the full pattern as written, lookahead
// included, and requires it to agree with the extracted bounds plus the
// stripped pattern on every example.
func validatePublishedPattern(v *ValidationError, name string, cb *compiledBrand, b Brand) {
	if cb == nil {
		return
	}
	published, err := regexp2.Compile(b.FullPattern, regexp2.ECMAScript)
	if err != nil {
		v.Add("%s: full pattern not valid as published: %v", name, err)
		return
	}
	published.MatchTimeout = publishedPatternTimeout

	samples := append(append([]string(nil), b.Examples...), b.NegativeExamples...)
	for _, s := range samples {
		want, err := published.MatchString(s)
		if err != nil {
			v.Add("%s: evaluate full pattern on %s: %v", name, s, err)
			continue
		}
		got := cb.admitsLength(len(s)) && cb.full.MatchString(s)
		if got != want {
			v.Add("%s: extracted length bounds disagree with full pattern on %s", name, s)
		}
	}
}
