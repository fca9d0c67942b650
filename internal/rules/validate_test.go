package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBrand(id string) Brand {
	return Brand{
		ID:            id,
		DisplayName:   strings.ToUpper(id),
		Type:          TypeCredit,
		BinPattern:    "^(9)",
		FullPattern:   "^(?=.{16}$)(?:9)[0-9]*$",
		CVVPattern:    `^\d{3}$`,
		CVVLength:     3,
		NumberLengths: []int{16},
		Countries:     []string{"GLOBAL"},
	}
}

func problems(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Problems
}

func containsProblem(list []string, substr string) bool {
	for _, p := range list {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func TestValidateBuiltinTable(t *testing.T) {
	table, err := Builtin()
	require.NoError(t, err)

	warnings, err := ValidateTable(table)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateTableDuplicateScheme(t *testing.T) {
	table, err := NewTable([]Brand{validBrand("x"), validBrand("x")})
	require.NoError(t, err)

	_, err = ValidateTable(table)
	require.Error(t, err)
	assert.True(t, containsProblem(problems(t, err), "scheme is duplicated"))
}

func TestValidateTableWarnings(t *testing.T) {
	b := validBrand("Bad_Scheme")
	b.Type = "prepaid"
	b.Countries = []string{"Brazil"}
	b.Bins = []BinInfo{{Bin: "9123"}}

	table, err := NewTable([]Brand{b})
	require.NoError(t, err)

	warnings, err := ValidateTable(table)
	require.NoError(t, err)
	assert.True(t, containsProblem(warnings, "lowercase alphanumeric"))
	assert.True(t, containsProblem(warnings, "credit|debit|both"))
	assert.True(t, containsProblem(warnings, "ISO 3166-1"))
	assert.True(t, containsProblem(warnings, "6-8 digits"))
	assert.True(t, containsProblem(warnings, "missing type"))
}

func TestValidateTableStructuralProblems(t *testing.T) {
	noName := validBrand("a")
	noName.DisplayName = ""

	badLength := validBrand("b")
	badLength.NumberLengths = []int{16, 19}

	badCVV := validBrand("c")
	badCVV.CVVLength = 4

	badRegex := validBrand("d")
	badRegex.FullPattern = "^(?=.{16}$)(?:9[0-9]*$"

	table, err := NewTable([]Brand{noName, badLength, badCVV, badRegex})
	require.NoError(t, err)

	_, err = ValidateTable(table)
	require.Error(t, err)
	list := problems(t, err)
	assert.True(t, containsProblem(list, "brands[0] a: brand is required"))
	assert.True(t, containsProblem(list, "length 19 outside full pattern bounds 16..16"))
	assert.True(t, containsProblem(list, "cvv pattern rejects a 4 digit value"))
	assert.True(t, containsProblem(list, "brands[3] d: full pattern"))
}

func TestValidateTableExamples(t *testing.T) {
	shadowing := validBrand("wide")
	shadowing.BinPattern = "^(9)"
	shadowing.FullPattern = "^(?=.{16}$)(?:9)[0-9]*$"

	narrow := validBrand("narrow")
	narrow.BinPattern = "^(99)"
	narrow.FullPattern = "^(?=.{16}$)(?:99)[0-9]*$"
	narrow.Examples = []string{"9900000000000000"}
	narrow.NegativeExamples = []string{"9100000000000000"}

	table, err := NewTable([]Brand{shadowing, narrow})
	require.NoError(t, err)

	_, err = ValidateTable(table)
	require.Error(t, err)
	assert.True(t, containsProblem(problems(t, err), "example 9900000000000000 identified as wide"))
}

func TestValidateTableNegativeExample(t *testing.T) {
	b := validBrand("x")
	b.NegativeExamples = []string{"9000000000000000"}

	table, err := NewTable([]Brand{b})
	require.NoError(t, err)

	_, err = ValidateTable(table)
	require.Error(t, err)
	assert.True(t, containsProblem(problems(t, err), "negative example 9000000000000000"))
}

func TestValidateTablePublishedPatternDisagrees(t *testing.T) {
	// Only the first length assertion sets the bounds; as published the two
	// assertions can never both hold.
	b := validBrand("x")
	b.FullPattern = "^(?=.{16}$)(?=.{15}$)(?:9)[0-9]*$"
	b.Examples = []string{"9000000000000000"}

	table, err := NewTable([]Brand{b})
	require.NoError(t, err)

	_, err = ValidateTable(table)
	require.Error(t, err)
	assert.True(t, containsProblem(problems(t, err), "disagree with full pattern on 9000000000000000"))
}

func TestValidateTableNil(t *testing.T) {
	_, err := ValidateTable(nil)
	require.Error(t, err)
}
