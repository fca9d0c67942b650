// Package bincc identifies payment card brands from card numbers.
//
// The package ships a built-in brand table covering Elo, Hipercard, American
// Express, Aura, Diners Club, Discover, Mastercard and Visa. Brands are tried in
// table order and the first one whose length bounds and full pattern accept the
// number wins, so narrower regional schemes are listed ahead of the broad
// networks whose ranges they overlap.
//
// # Basic Usage
//
//	brand, ok := bincc.IdentifyBrand("4012001037141112")
//	if ok && bincc.LuhnValid("4012001037141112") {
//	    fmt.Println(brand) // visa
//	}
//
//	bincc.ValidateCVV("1234", "amex") // true
//
// Callers that need a custom table compile one with the rules package and use
// the returned Engine directly; the package-level functions always use the
// built-in table.
package bincc

import (
	"fmt"
	"sync"

	"github.com/bincc/bincc/internal/rules"
)

// Re-export the record types so callers only need this package.
type (
	// Brand is one entry of the brand table.
	Brand = rules.Brand

	// BinInfo describes a known issuer BIN.
	BinInfo = rules.BinInfo

	// Engine matches numbers against a compiled brand table.
	Engine = rules.Engine

	// CardType classifies a brand as credit, debit or both.
	CardType = rules.CardType
)

const (
	TypeCredit = rules.TypeCredit
	TypeDebit  = rules.TypeDebit
	TypeBoth   = rules.TypeBoth
)

var (
	defaultOnce   sync.Once
	defaultEngine *rules.Engine
)

// Default returns the engine compiled from the built-in table. The table is
// parsed and compiled on first use; a broken built-in table panics since no
// lookup could be answered correctly.
func Default() *Engine {
	defaultOnce.Do(func() {
		e, err := NewEngine()
		if err != nil {
			panic(fmt.Sprintf("bincc: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine
}

// NewEngine compiles a fresh engine from the built-in table.
func NewEngine() (*Engine, error) {
	table, err := rules.Builtin()
	if err != nil {
		return nil, err
	}
	return rules.Compile(table)
}

// LoadEngine compiles an engine from a YAML brand table on disk.
func LoadEngine(path string) (*Engine, error) {
	table, err := rules.LoadTableFile(path)
	if err != nil {
		return nil, err
	}
	return rules.Compile(table)
}

// LuhnValid reports whether number is a non-empty digit string passing the
// Luhn checksum.
func LuhnValid(number string) bool {
	return rules.LuhnValid(number)
}

// IdentifyBrand returns the identifier of the brand that number belongs to.
func IdentifyBrand(number string) (string, bool) {
	return Default().Identify(number)
}

// IdentifyBrandDetailed returns the full brand record for number.
func IdentifyBrandDetailed(number string) (Brand, bool) {
	return Default().IdentifyDetailed(number)
}

// IsSupported reports whether any brand accepts number.
func IsSupported(number string) bool {
	return Default().Supported(number)
}

// ValidateCVV checks cvv against the CVV format of brand.
func ValidateCVV(cvv, brand string) bool {
	return Default().ValidateCVV(cvv, brand)
}

func BrandInfo(id string) (Brand, bool) {
	return Default().BrandInfo(id)
}

func BrandInfoDetailed(scheme string) (Brand, bool) {
	return Default().BrandInfoDetailed(scheme)
}

// ListBrands returns brand identifiers in matching order.
func ListBrands() []string {
	return Default().ListBrands()
}

// IdentifyBIN guesses the brand of a partial number from BIN patterns alone.
func IdentifyBIN(prefix string) (string, bool) {
	return Default().IdentifyBIN(prefix)
}

// LookupBIN returns the issuer entry with the longest BIN prefixing number.
func LookupBIN(number string) (BinInfo, bool) {
	return Default().LookupBIN(number)
}
