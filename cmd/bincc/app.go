package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/bincc/bincc/internal/config"
	"github.com/bincc/bincc/internal/logging"
	"github.com/bincc/bincc/internal/observability"
	"github.com/bincc/bincc/internal/rules"
)

// app carries what a command needs once flags are parsed: config, engine,
// diagnostics and the optional lookup log and metrics sinks.
type app struct {
	configPath string
	tablePath  string
	noColor    bool

	cfg      *config.Config
	logger   *log.Logger
	engine   *rules.Engine
	lookups  *logging.LookupLogger
	metrics  *observability.Metrics
	registry *prometheus.Registry
	closers  []func() error
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(a.configPath)
}

// loadTable returns the --table file, else the config's table, else the
// built-in one.
func (a *app) loadTable(cfg *config.Config) (*rules.Table, error) {
	switch {
	case a.tablePath != "":
		return rules.LoadTableFile(a.tablePath)
	case cfg.Table != "":
		return rules.LoadTableFile(cfg.TablePath())
	default:
		return rules.Builtin()
	}
}

func (a *app) open(stderr io.Writer) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(stderr, cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger

	table, err := a.loadTable(cfg)
	if err != nil {
		return err
	}
	engine, err := rules.Compile(table)
	if err != nil {
		return err
	}
	a.engine = engine
	a.logger.Debug("brand table compiled", "brands", table.Len(), "custom", a.tablePath != "" || cfg.Table != "")

	if cfg.Logging.LookupLog != "" {
		lookups, closer, err := logging.OpenLookupLog(cfg.ResolvePath(cfg.Logging.LookupLog))
		if err != nil {
			return err
		}
		a.lookups = lookups
		a.closers = append(a.closers, closer)
	}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = observability.NewMetrics(a.registry)
	}
	return nil
}

func (a *app) close() error {
	var first error
	if a.registry != nil {
		path := a.cfg.ResolvePath(a.cfg.Metrics.Textfile)
		if err := observability.WriteTextfile(path, a.registry); err != nil {
			first = err
		} else {
			a.logger.Debug("metrics written", "path", path)
		}
	}
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// run opens the app, runs fn and always releases the sinks afterwards.
func (a *app) run(stderr io.Writer, fn func() error) (err error) {
	if err := a.open(stderr); err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn()
}

func (a *app) record(lookup logging.Lookup, start time.Time) {
	lookup.Timestamp = start.UTC()
	lookup.DurationUS = time.Since(start).Microseconds()
	if err := a.lookups.Write(lookup); err != nil {
		a.logger.Warn("lookup log write failed", "err", err)
	}
	a.metrics.Observe(lookup)
}

func (a *app) colorEnabled(w io.Writer) bool {
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styles holds the color formatters used for human output.
type styles struct {
	brand *color.Color
	ok    *color.Color
	fail  *color.Color
	warn  *color.Color
	muted *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		brand: color.New(color.Bold, color.FgHiBlue),
		ok:    color.New(color.FgHiGreen),
		fail:  color.New(color.FgRed),
		warn:  color.New(color.FgYellow),
		muted: color.New(color.FgHiBlack),
	}

	if !enabled {
		for _, c := range []*color.Color{s.brand, s.ok, s.fail, s.warn, s.muted} {
			c.DisableColor()
		}
	}
	return s
}

func boolPtr(b bool) *bool {
	return &b
}
