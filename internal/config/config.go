// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath points at the bundled results file (CSV or XLSX)
	// loaded at startup and on POST /reload. Empty disables the
	// bundled source.
	DataPath string `koanf:"data_path"`

	// DefaultUnit selects the pace display unit when a request does
	// not specify one: "mile" or "kilometer".
	DefaultUnit string `koanf:"default_unit"`

	// MaxUploadBytes bounds the size of an uploaded results file.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// Header names of the four logical columns. Export variants label
	// the duration column "pace" instead of "time"; these make the
	// mapping explicit per deployment.
	RunnerField string `koanf:"runner_field"`
	YearField   string `koanf:"year_field"`
	TimeField   string `koanf:"time_field"`
	EventField  string `koanf:"event_field"`
}

const defaultMaxUploadBytes = 8 << 20 // 8 MiB

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		DataPath:       "",
		DefaultUnit:    "mile",
		MaxUploadBytes: defaultMaxUploadBytes,
		RunnerField:    "runner",
		YearField:      "year",
		TimeField:      "time",
		EventField:     "event",
	}
}
