package rules

import (
	_ "embed"
	"fmt"
)

// builtinTable is the shipped brand table.
//
//go:embed brands.yml
var builtinTable []byte

// Builtin parses the embedded brand table.
func Builtin() (*Table, error) {
	t, err := LoadTable(builtinTable)
	if err != nil {
		return nil, fmt.Errorf("builtin table: %w", err)
	}
	return t, nil
}
