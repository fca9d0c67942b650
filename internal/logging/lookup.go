package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// binDigits is the longest number prefix a lookup record may carry.
const binDigits = 6

const (
	OpIdentify = "identify"
	OpCVV      = "cvv"
	OpBIN      = "bin"
)

// Lookup is written as a single JSON object per lookup. It never carries a
// full card number.
type Lookup struct {
	Timestamp  time.Time `json:"ts"`
	Operation  string    `json:"op"`
	BIN        string    `json:"bin,omitempty"`
	Length     int       `json:"length"`
	Brand      string    `json:"brand,omitempty"`
	Supported  bool      `json:"supported"`
	Luhn       *bool     `json:"luhn,omitempty"`
	CVVValid   *bool     `json:"cvv_valid,omitempty"`
	Verdict    string    `json:"verdict,omitempty"`
	DurationUS int64     `json:"duration_us"`
}

type LookupLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLookupLogger(w io.Writer) *LookupLogger {
	return &LookupLogger{w: w}
}

func OpenLookupLog(path string) (*LookupLogger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewLookupLogger(file), file.Close, nil
}

// Write appends one record. A nil logger discards it.
func (l *LookupLogger) Write(lookup Lookup) error {
	if l == nil {
		return nil
	}
	lookup.BIN = truncateBIN(lookup.BIN)

	data, err := json.Marshal(lookup)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(data, '\n'))
	return err
}

func truncateBIN(s string) string {
	if len(s) > binDigits {
		return s[:binDigits]
	}
	return s
}
