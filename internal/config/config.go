package config

type Config struct {
	ConfigVersion int           `yaml:"configVersion"`
	Table         string        `yaml:"table"`
	Logging       LoggingConfig `yaml:"logging"`
	Metrics       MetricsConfig `yaml:"metrics"`
	Batch         BatchConfig   `yaml:"batch"`

	baseDir string `yaml:"-"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	LookupLog string `yaml:"lookupLog"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

type BatchConfig struct {
	Workers     int  `yaml:"workers"`
	RequireLuhn bool `yaml:"requireLuhn"`
}

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Default returns the configuration used when no file is given: built-in
// table, info level text logs, no lookup log and no metrics.
func Default() *Config {
	return &Config{
		ConfigVersion: 1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
		Batch: BatchConfig{
			Workers:     4,
			RequireLuhn: true,
		},
	}
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}

// TablePath returns the resolved external table path, or "" for the built-in table.
func (c *Config) TablePath() string {
	return c.resolvePath(c.Table)
}
