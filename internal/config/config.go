package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CalendarConfig controls what ends up in the generated calendar feed.
type CalendarConfig struct {
	// IncludeReleased, when true, keeps items whose release day is already
	// in the past. Default is to only publish today-or-later entries.
	IncludeReleased bool `yaml:"include_released" json:"include_released"`
}

// ChartConfig controls history chart rendering. Disabled rather than
// Enabled so the zero value of a partial config keeps charts on.
type ChartConfig struct {
	Disabled bool `yaml:"disabled" json:"disabled"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the daemon-mode
// artifact server.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Account is the Steam account: either a numeric steamid64 or a vanity
	// profile name. Required.
	Account string `yaml:"account" json:"account"`

	// IncludeDLC keeps DLC items in the pipeline. Default off.
	IncludeDLC bool `yaml:"include_dlc" json:"include_dlc"`

	// MaxPages bounds wishlist pagination; the storefront serves 100 items
	// per page, so the default of 20 caps a run at 2000 items.
	MaxPages int `yaml:"max_pages" json:"max_pages"`

	// Locale is the storefront locale used when fetching release strings.
	// The normalizer's vocabulary covers "english" and "schinese".
	Locale string `yaml:"locale" json:"locale"`

	// OutputDir is where all run artifacts are written.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Listen is the HTTP listen address for daemon mode.
	Listen string `yaml:"listen" json:"listen"`

	// RefreshCron is the daemon-mode schedule (cron syntax).
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// PageDelaySeconds is the pause between wishlist page fetches.
	PageDelaySeconds int `yaml:"page_delay_seconds" json:"page_delay_seconds"`

	Calendar CalendarConfig `yaml:"calendar" json:"calendar"`
	Chart    ChartConfig    `yaml:"chart" json:"chart"`

	// ExtraNoDatePhrases extends the built-in set of non-committal release
	// strings ("TBA", "Coming soon", ...) treated as "no date given".
	ExtraNoDatePhrases []string `yaml:"extra_no_date_phrases" json:"extra_no_date_phrases"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// daemon-mode endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Account:          "",
		IncludeDLC:       false,
		MaxPages:         20,
		Locale:           "english",
		OutputDir:        "output",
		Listen:           "127.0.0.1:8080",
		RefreshCron:      "0 6 * * *",
		PageDelaySeconds: 3,
		Calendar:         CalendarConfig{IncludeReleased: false},
		Chart:            ChartConfig{Disabled: false},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.MaxPages <= 0 {
		c.MaxPages = 20
	}
	if c.Locale == "" {
		c.Locale = "english"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "0 6 * * *"
	}
	if c.PageDelaySeconds < 0 {
		c.PageDelaySeconds = 0
	}
	if c.ExtraNoDatePhrases == nil {
		c.ExtraNoDatePhrases = []string{}
	}
}

// Validate checks fields that have no usable default.
func (c *Config) Validate() error {
	if c.Account == "" {
		return errors.New("account is required (steamid64 or vanity name)")
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: create parent directory if needed, write a
//     default config with 0600 perms, and return the default config.
//   - If the file exists: read YAML, unmarshal, normalize defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".swcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
