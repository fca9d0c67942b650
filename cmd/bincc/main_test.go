package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bincc/bincc/internal/rules"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(configEnv, "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestIdentifyCommand(t *testing.T) {
	out, _, err := execute(t, "", "identify", "4012 0010 3714 1112", "378282246310005", "1234")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "401200******1112  visa  luhn ok", lines[0])
	assert.Equal(t, "378282*****0005  amex  luhn ok", lines[1])
	assert.Contains(t, lines[2], "unsupported")
}

func TestIdentifyCommandReadsStdin(t *testing.T) {
	out, _, err := execute(t, "6062827452101536\n\n# comment\n6362970000457013\n", "identify", "--json")
	require.NoError(t, err)

	var results []identifyResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "hipercard", results[0].Brand)
	assert.Equal(t, "elo", results[1].Brand)
	assert.Equal(t, "Elo", results[1].Name)
	assert.NotContains(t, out, "6362970000457013")
}

func TestIdentifyCommandRequiresInput(t *testing.T) {
	_, _, err := execute(t, "", "identify")
	assert.Error(t, err)
}

func TestCVVCommand(t *testing.T) {
	out, _, err := execute(t, "", "cvv", "1234", "amex")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, _, err = execute(t, "", "cvv", "123", "amex")
	require.NoError(t, err)
	assert.Equal(t, "invalid\n", out)

	out, _, err = execute(t, "", "cvv", "123", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, `unknown brand "nope"`)

	_, _, err = execute(t, "", "cvv", "123")
	assert.Error(t, err)
}

func TestBrandsCommand(t *testing.T) {
	out, _, err := execute(t, "", "brands")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "SCHEME"))
	assert.True(t, strings.HasPrefix(lines[1], "elo"))
	assert.True(t, strings.HasPrefix(lines[8], "visa"))

	out, _, err = execute(t, "", "brands", "--json")
	require.NoError(t, err)
	var views []brandView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 8)
	assert.Equal(t, "amex", views[2].Scheme)
	assert.Equal(t, 4, views[2].CVVLength)
}

func TestBINCommand(t *testing.T) {
	out, _, err := execute(t, "", "bin", "606282")
	require.NoError(t, err)
	assert.Contains(t, out, "brand: hipercard")
	assert.Contains(t, out, "issuer: Hipercard")

	out, _, err = execute(t, "", "bin", "9999")
	require.NoError(t, err)
	assert.Equal(t, "unsupported\n", out)
}

func TestBatchCommandKeepsOrder(t *testing.T) {
	input := strings.Join([]string{
		"4012001037141112",
		"4012001037141113",
		"1234567890",
		"5555 5555 5555 4444",
	}, "\n")

	out, _, err := execute(t, input, "batch", "--json", "--workers", "2")
	require.NoError(t, err)

	var results []batchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i+1, r.Line)
	}
	assert.Equal(t, "accept", string(results[0].Action))
	assert.Equal(t, "reject", string(results[1].Action))
	assert.Equal(t, "unsupported", string(results[2].Action))
	assert.Equal(t, "mastercard", results[3].Brand)

	out, _, err = execute(t, input, "batch")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted=2 rejected=1 unsupported=1")

	_, _, err = execute(t, input, "batch", "--fail-on-reject")
	assert.Error(t, err)
}

func TestLookupLogMetricsAndReport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bincc.yaml")
	cfg := `configVersion: 1
logging:
  level: error
  lookupLog: logs/lookups.jsonl
metrics:
  enabled: true
  textfile: bincc.prom
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, "", "--config", cfgPath, "identify", "4012001037141112", "0000")
	require.NoError(t, err)

	logData, err := os.ReadFile(filepath.Join(dir, "logs", "lookups.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(logData), "\n"))
	assert.NotContains(t, string(logData), "4012001037141112")

	prom, err := os.ReadFile(filepath.Join(dir, "bincc.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `bincc_lookups_total{brand="visa",outcome="supported"} 1`)

	out, _, err := execute(t, "", "--config", cfgPath, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Identified: 1")
	assert.Contains(t, out, "Unsupported: 1")
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Equal(t, "table ok (8 brands)\n", out)

	table := filepath.Join(t.TempDir(), "brands.yml")
	data := `brands:
  - scheme: x
    brand: X
    bin: "^(9)"
    lengths: [16]
  - scheme: x
    brand: X again
    bin: "^(8)"
    lengths: [16]
`
	require.NoError(t, os.WriteFile(table, []byte(data), 0o644))

	_, _, err = execute(t, "", "validate", "--table", table)
	require.Error(t, err)
	var verr *rules.ValidationError
	require.True(t, errors.As(err, &verr))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "scheme is duplicated")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "version=dev commit=none buildDate=unknown\n", out)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "401200******1112", mask("4012001037141112"))
	assert.Equal(t, "1234", mask("1234"))
}
