package rules

import "fmt"

type CardType string

const (
	TypeCredit CardType = "credit"
	TypeDebit  CardType = "debit"
	TypeBoth   CardType = "both"
)

const defaultCVVLength = 3

// Brand is the single record describing one issuing network. ID doubles as the
// scheme key for detailed lookups.
type Brand struct {
	ID               string
	DisplayName      string
	Type             CardType
	BinPattern       string
	FullPattern      string
	CVVPattern       string
	NumberLengths    []int
	CVVLength        int
	Luhn             bool
	Countries        []string
	Bins             []BinInfo
	Examples         []string
	NegativeExamples []string
}

// BinInfo is an issuer-level BIN entry.
type BinInfo struct {
	Bin       string
	Brand     string
	Type      CardType
	Category  string
	Issuer    string
	Countries []string
}

func (b Brand) clone() Brand {
	out := b
	out.NumberLengths = append([]int(nil), b.NumberLengths...)
	out.Countries = append([]string(nil), b.Countries...)
	out.Examples = append([]string(nil), b.Examples...)
	out.NegativeExamples = append([]string(nil), b.NegativeExamples...)
	if b.Bins != nil {
		out.Bins = make([]BinInfo, len(b.Bins))
		for i, bin := range b.Bins {
			out.Bins[i] = bin.clone()
		}
	}
	return out
}

func (b BinInfo) clone() BinInfo {
	out := b
	out.Countries = append([]string(nil), b.Countries...)
	return out
}

// Table is the ordered brand list. Order is precedence: when a number satisfies
// more than one brand, the earlier entry wins.
type Table struct {
	brands []Brand
}

func NewTable(brands []Brand) (*Table, error) {
	if len(brands) == 0 {
		return nil, fmt.Errorf("brand table is empty")
	}
	out := make([]Brand, len(brands))
	for i, b := range brands {
		out[i] = b.clone()
	}
	return &Table{brands: out}, nil
}

func (t *Table) Len() int {
	return len(t.brands)
}

// Brands returns a copy of the table in precedence order.
func (t *Table) Brands() []Brand {
	out := make([]Brand, len(t.brands))
	for i, b := range t.brands {
		out[i] = b.clone()
	}
	return out
}

func (t *Table) Brand(id string) (Brand, bool) {
	for _, b := range t.brands {
		if b.ID == id {
			return b.clone(), true
		}
	}
	return Brand{}, false
}

func (t *Table) IDs() []string {
	ids := make([]string, len(t.brands))
	for i, b := range t.brands {
		ids[i] = b.ID
	}
	return ids
}
