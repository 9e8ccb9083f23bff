// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - Reference lists (teams, statuses, positions) live here, not in code:
//   the status vocabulary changed between seasons and must be swappable
//   without a rebuild.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite roster database. Empty selects the
	// in-memory store.
	DBPath string `koanf:"db_path"`

	// Teams is the authoritative team list, strongest side first. The
	// order doubles as the grade ranking used by the importer tie-break.
	Teams []string `koanf:"teams"`

	// Statuses enumerates the allowed next-season intent values.
	Statuses []string `koanf:"statuses"`

	// Positions enumerates the allowed playing positions.
	Positions []string `koanf:"positions"`

	// DefaultStatus is assigned to imported players before anyone has
	// spoken to them.
	DefaultStatus string `koanf:"default_status"`
}

// New creates a Config with defaults mirroring the current season's lists.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":9080",
		DBPath:   "",
		Teams:    []string{"PL", "PLR", "PB", "PC", "PE", "Metro"},
		Statuses: []string{
			"Yes, planning to play",
			"Unsure just yet",
			"Unlikely to play",
			"Fill-in / Emergency",
			"New to club/restarting",
			"Not heard from",
			"Not returning",
		},
		Positions: []string{
			"GK",
			"Defender",
			"Defensive Mid",
			"Attacking Mid",
			"Striker",
		},
		DefaultStatus: "Not heard from",
	}
}
