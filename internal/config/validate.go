package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

const maxWorkers = 256

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

func (c *Config) Validate() error {
	v := &ValidationError{}

	if c.ConfigVersion != 1 {
		v.Add("configVersion must be 1")
	}

	if c.Table != "" {
		if err := requireFile(c.resolvePath(c.Table)); err != nil {
			v.Add("table invalid: %v", err)
		}
	}

	if _, err := log.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		v.Add("logging.level must be debug|info|warn|error|fatal")
	}
	switch c.Logging.Format {
	case FormatText, FormatJSON, FormatLogfmt:
	default:
		v.Add("logging.format must be text|json|logfmt")
	}
	if c.Logging.LookupLog != "" {
		if err := ensureWritable(c.resolvePath(c.Logging.LookupLog)); err != nil {
			v.Add("logging.lookupLog invalid: %v", err)
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Textfile == "" {
			v.Add("metrics.textfile required when metrics.enabled is true")
		} else if err := ensureWritable(c.resolvePath(c.Metrics.Textfile)); err != nil {
			v.Add("metrics.textfile invalid: %v", err)
		}
	}

	if c.Batch.Workers <= 0 || c.Batch.Workers > maxWorkers {
		v.Add("batch.workers must be between 1 and %d", maxWorkers)
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func ensureWritable(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	file, err := os.CreateTemp(dir, "bincc-validate-*")
	if err != nil {
		return err
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
