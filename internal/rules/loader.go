package rules

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTable parses a brand table from YAML bytes. Missing full and CVV patterns
// are derived from the BIN pattern, lengths and CVV length.
func LoadTable(data []byte) (*Table, error) {
	var file yamlTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse brand table: %w", err)
	}
	if len(file.Brands) == 0 {
		return nil, fmt.Errorf("no brands found in table")
	}

	brands := make([]Brand, 0, len(file.Brands))
	for i, yb := range file.Brands {
		b, err := convertYAMLBrand(yb)
		if err != nil {
			return nil, fmt.Errorf("brands[%d] %s: %w", i, yb.Scheme, err)
		}
		brands = append(brands, b)
	}
	return NewTable(brands)
}

// LoadTableFile loads a brand table from a YAML file path.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brand table %s: %w", path, err)
	}
	return LoadTable(data)
}

func convertYAMLBrand(yb yamlBrand) (Brand, error) {
	b := Brand{
		ID:               strings.TrimSpace(yb.Scheme),
		DisplayName:      yb.Brand,
		Type:             CardType(yb.Type),
		BinPattern:       yb.Bin,
		FullPattern:      yb.Full,
		CVVPattern:       yb.CVV,
		NumberLengths:    sortedLengths(yb.Lengths),
		CVVLength:        yb.CVVLength,
		Luhn:             true,
		Countries:        append([]string(nil), yb.Countries...),
		Examples:         append([]string(nil), yb.Examples...),
		NegativeExamples: append([]string(nil), yb.NegativeExamples...),
	}
	if b.Type == "" {
		b.Type = TypeCredit
	}
	if yb.Luhn != nil {
		b.Luhn = *yb.Luhn
	}
	if b.CVVLength == 0 {
		b.CVVLength = defaultCVVLength
	}
	if b.CVVPattern == "" {
		b.CVVPattern = fmt.Sprintf(`^\d{%d}$`, b.CVVLength)
	}

	if b.FullPattern == "" {
		if b.BinPattern == "" {
			return Brand{}, fmt.Errorf("bin pattern is required")
		}
		if len(b.NumberLengths) == 0 {
			return Brand{}, fmt.Errorf("lengths are required when full pattern is omitted")
		}
		b.FullPattern = FullPattern(b.BinPattern, b.NumberLengths)
	}
	if len(b.NumberLengths) == 0 {
		if _, minLen, maxLen := ExtractLength(b.FullPattern); minLen > 0 && maxLen >= minLen {
			for n := minLen; n <= maxLen; n++ {
				b.NumberLengths = append(b.NumberLengths, n)
			}
		}
	}

	for _, bin := range yb.Bins {
		b.Bins = append(b.Bins, BinInfo{
			Bin:       strings.TrimSpace(bin.Bin),
			Brand:     b.ID,
			Type:      CardType(bin.Type),
			Category:  bin.Category,
			Issuer:    bin.Issuer,
			Countries: append([]string(nil), bin.Countries...),
		})
	}
	return b, nil
}

// FullPattern builds an anchored full-number pattern from a BIN pattern and the
// accepted lengths, embedding the length range as a lookahead assertion.
func FullPattern(binPattern string, lengths []int) string {
	alts := binAlternatives(binPattern)
	minLen, maxLen := lengths[0], lengths[0]
	for _, n := range lengths[1:] {
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}
	if minLen == maxLen {
		return fmt.Sprintf("^(?=.{%d}$)(?:%s)[0-9]*$", minLen, alts)
	}
	return fmt.Sprintf("^(?=.{%d,%d}$)(?:%s)[0-9]*$", minLen, maxLen, alts)
}

// binAlternatives strips the anchor and the outer group from a BIN pattern such
// as ^(4|6367), leaving the bare alternation.
func binAlternatives(pattern string) string {
	p := strings.TrimPrefix(pattern, "^")
	if strings.HasPrefix(p, "(") && strings.HasSuffix(p, ")") && balancedOuterGroup(p) {
		p = p[1 : len(p)-1]
	}
	return p
}

func balancedOuterGroup(p string) bool {
	depth := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(p)-1 {
				return false
			}
		}
	}
	return depth == 0
}

func sortedLengths(lengths []int) []int {
	if len(lengths) == 0 {
		return nil
	}
	out := append([]int(nil), lengths...)
	sort.Ints(out)
	return out
}
