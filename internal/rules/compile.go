package rules

import (
	"fmt"
	"regexp"
	"strconv"
)

// lengthAssertion matches a whole-input length lookahead such as (?=.{15}$),
// (?=.{13,19}$) or (?=.{12,}$).
var lengthAssertion = regexp.MustCompile(`\(\?=\.\{(\d+)(,(\d*))?\}\$\)`)

type compiledBrand struct {
	brand  Brand
	minLen int
	maxLen int
	bin    *regexp.Regexp
	full   *regexp.Regexp
	cvv    *regexp.Regexp
}

// admitsLength reports whether n digits fall within the brand's bounds. A zero
// bound leaves that side unconstrained.
func (c *compiledBrand) admitsLength(n int) bool {
	if c.minLen > 0 && n < c.minLen {
		return false
	}
	if c.maxLen > 0 && n > c.maxLen {
		return false
	}
	return true
}

// ExtractLength removes a length lookahead from pattern and returns the cleaned
// pattern with its bounds. Zero bounds mean no assertion was present on that side.
func ExtractLength(pattern string) (clean string, minLen, maxLen int) {
	m := lengthAssertion.FindStringSubmatch(pattern)
	if m == nil {
		return pattern, 0, 0
	}
	clean = lengthAssertion.ReplaceAllString(pattern, "")

	minLen, _ = strconv.Atoi(m[1])
	switch {
	case m[2] == "":
		maxLen = minLen
	case m[3] != "":
		maxLen, _ = strconv.Atoi(m[3])
	}
	return clean, minLen, maxLen
}

// Compile builds an Engine from t. Every pattern is compiled here and never again.
func Compile(t *Table) (*Engine, error) {
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("brand table is required")
	}

	brands := make([]compiledBrand, 0, t.Len())
	byID := make(map[string]int, t.Len())
	trie := newBinTrie()
	for _, b := range t.brands {
		if b.ID == "" {
			return nil, fmt.Errorf("brand identifier is required")
		}
		if _, exists := byID[b.ID]; exists {
			return nil, fmt.Errorf("brand %s: duplicated identifier", b.ID)
		}
		cb, err := compileBrand(b)
		if err != nil {
			return nil, fmt.Errorf("brand %s: %w", b.ID, err)
		}
		for _, bin := range cb.brand.Bins {
			if err := trie.insert(bin); err != nil {
				return nil, fmt.Errorf("brand %s: %w", b.ID, err)
			}
		}
		byID[b.ID] = len(brands)
		brands = append(brands, cb)
	}

	return &Engine{brands: brands, byID: byID, bins: trie}, nil
}

func compileBrand(b Brand) (compiledBrand, error) {
	if b.FullPattern == "" {
		return compiledBrand{}, fmt.Errorf("full pattern is required")
	}
	if b.CVVPattern == "" {
		return compiledBrand{}, fmt.Errorf("cvv pattern is required")
	}

	clean, minLen, maxLen := ExtractLength(b.FullPattern)
	full, err := regexp.Compile(clean)
	if err != nil {
		return compiledBrand{}, fmt.Errorf("full pattern: %w", err)
	}
	cvv, err := regexp.Compile(b.CVVPattern)
	if err != nil {
		return compiledBrand{}, fmt.Errorf("cvv pattern: %w", err)
	}

	var bin *regexp.Regexp
	if b.BinPattern != "" {
		bin, err = regexp.Compile(b.BinPattern)
		if err != nil {
			return compiledBrand{}, fmt.Errorf("bin pattern: %w", err)
		}
	}

	return compiledBrand{
		brand:  b.clone(),
		minLen: minLen,
		maxLen: maxLen,
		bin:    bin,
		full:   full,
		cvv:    cvv,
	}, nil
}
