package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLookupLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLookupLogger(&buf)

	luhn := true
	lookup := Lookup{
		Timestamp:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Operation:  OpIdentify,
		BIN:        "4012001037141112",
		Length:     16,
		Brand:      "visa",
		Supported:  true,
		Luhn:       &luhn,
		DurationUS: 12,
	}

	if err := logger.Write(lookup); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := logger.Write(Lookup{Operation: OpIdentify, Length: 4}); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(buf.String(), "4012001037141112") {
		t.Fatalf("full number leaked into log: %s", buf.String())
	}

	var parsed Lookup
	if err := json.Unmarshal([]byte(lines[0]), &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if parsed.BIN != "401200" {
		t.Fatalf("expected bin 401200, got %q", parsed.BIN)
	}
	if parsed.Luhn == nil || !*parsed.Luhn {
		t.Fatalf("expected luhn true, got %v", parsed.Luhn)
	}
	if parsed.CVVValid != nil {
		t.Fatalf("expected no cvv field, got %v", *parsed.CVVValid)
	}
}

func TestNilLookupLoggerDiscards(t *testing.T) {
	var logger *LookupLogger
	if err := logger.Write(Lookup{Operation: OpBIN}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
}

func TestOpenLookupLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lookups.jsonl")

	for i := 0; i < 2; i++ {
		logger, closer, err := OpenLookupLog(path)
		if err != nil {
			t.Fatalf("OpenLookupLog error: %v", err)
		}
		if err := logger.Write(Lookup{Operation: OpCVV, Brand: "amex"}); err != nil {
			t.Fatalf("Write error: %v", err)
		}
		if err := closer(); err != nil {
			t.Fatalf("close error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("expected 2 records, got %d", got)
	}
}
