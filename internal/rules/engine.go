package rules

// Engine matches card numbers against a compiled brand table. It is immutable
// after Compile and safe for concurrent use.
type Engine struct {
	brands []compiledBrand
	byID   map[string]int
	bins   *binTrie
}

// LuhnValid reports whether number passes the Luhn check.
func (e *Engine) LuhnValid(number string) bool {
	return LuhnValid(number)
}

// Identify returns the identifier of the first brand, in table order, whose
// length bounds and full pattern both accept number.
func (e *Engine) Identify(number string) (string, bool) {
	cb := e.match(number)
	if cb == nil {
		return "", false
	}
	return cb.brand.ID, true
}

// IdentifyDetailed identifies number and returns the matching brand record.
func (e *Engine) IdentifyDetailed(number string) (Brand, bool) {
	id, ok := e.Identify(number)
	if !ok {
		return Brand{}, false
	}
	return e.BrandInfoDetailed(id)
}

func (e *Engine) Supported(number string) bool {
	_, ok := e.Identify(number)
	return ok
}

// ValidateCVV checks cvv against the CVV pattern of brand. Unknown brands and
// empty input never validate.
func (e *Engine) ValidateCVV(cvv, brand string) bool {
	if cvv == "" {
		return false
	}
	cb := e.lookup(brand)
	if cb == nil {
		return false
	}
	return cb.cvv.MatchString(cvv)
}

// IdentifyBIN identifies a brand from a partial number using BIN patterns only.
// No length bounds apply.
func (e *Engine) IdentifyBIN(prefix string) (string, bool) {
	if !isDigits(prefix) {
		return "", false
	}
	for i := range e.brands {
		cb := &e.brands[i]
		if cb.bin != nil && cb.bin.MatchString(prefix) {
			return cb.brand.ID, true
		}
	}
	return "", false
}

// LookupBIN returns the longest issuer BIN entry that prefixes number.
func (e *Engine) LookupBIN(number string) (BinInfo, bool) {
	if !isDigits(number) {
		return BinInfo{}, false
	}
	return e.bins.lookup(number)
}

func (e *Engine) BrandInfo(id string) (Brand, bool) {
	cb := e.lookup(id)
	if cb == nil {
		return Brand{}, false
	}
	return cb.brand.clone(), true
}

// BrandInfoDetailed looks a brand up by scheme. Schemes and identifiers share
// one namespace.
func (e *Engine) BrandInfoDetailed(scheme string) (Brand, bool) {
	return e.BrandInfo(scheme)
}

// ListBrands returns brand identifiers in table order. Each call returns a new slice.
func (e *Engine) ListBrands() []string {
	ids := make([]string, len(e.brands))
	for i := range e.brands {
		ids[i] = e.brands[i].brand.ID
	}
	return ids
}

// Bounds returns the length bounds extracted from the brand's full pattern.
func (e *Engine) Bounds(id string) (minLen, maxLen int, ok bool) {
	cb := e.lookup(id)
	if cb == nil {
		return 0, 0, false
	}
	return cb.minLen, cb.maxLen, true
}

func (e *Engine) match(number string) *compiledBrand {
	if number == "" {
		return nil
	}
	n := len(number)
	for i := range e.brands {
		cb := &e.brands[i]
		if !cb.admitsLength(n) {
			continue
		}
		if cb.full.MatchString(number) {
			return cb
		}
	}
	return nil
}

func (e *Engine) lookup(id string) *compiledBrand {
	idx, ok := e.byID[id]
	if !ok {
		return nil
	}
	return &e.brands[idx]
}
