// Package config parses mercearia.toml register configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/LISSTech.Mercearia/internal/sale"
)

// FileName is the configuration file looked up by Load.
const FileName = "mercearia.toml"

// DefaultAccentColor is the default TUI accent color (green).
const DefaultAccentColor = "#2E9E5B"

// hexColorRe matches a 6-digit hex color string like "#2E9E5B".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level mercearia.toml configuration.
type Config struct {
	Store         StoreConfig         `toml:"store"`
	Operator      OperatorConfig      `toml:"operator"`
	Catalog       CatalogConfig       `toml:"catalog"`
	Journal       JournalConfig       `toml:"journal"`
	Promos        []PromoConfig       `toml:"promos"`
	TUI           TUIConfig           `toml:"tui"`
	Notifications NotificationsConfig `toml:"notifications"`
	Log           LogConfig           `toml:"log"`

	// dir is the directory holding the loaded file; relative paths resolve
	// against it.
	dir string
}

// StoreConfig identifies the shop.
type StoreConfig struct {
	Name string `toml:"name"`
}

// OperatorConfig identifies who works the register.
type OperatorConfig struct {
	Name string `toml:"name"`
	Role string `toml:"role"`
}

// CatalogConfig locates the product file.
type CatalogConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"` // reload products.toml when it changes
}

// JournalConfig controls the sale journal.
type JournalConfig struct {
	Dir       string `toml:"dir"`
	Retention int    `toml:"retention"` // number of session files to keep; 0 = unlimited
}

// PromoConfig is one [[promos]] entry.
type PromoConfig struct {
	Name     string    `toml:"name"`
	Percent  float64   `toml:"percent"`
	Priority int       `toml:"priority"`
	Starts   time.Time `toml:"starts"`
	Ends     time.Time `toml:"ends"`
	Active   bool      `toml:"active"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL      string `toml:"url"`
	OnPaid   bool   `toml:"on_paid"`
	OnCancel bool   `toml:"on_cancel"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.Name == "" {
		errs = append(errs, fmt.Errorf("store.name must not be empty"))
	}
	if c.Operator.Name == "" {
		errs = append(errs, fmt.Errorf("operator.name must not be empty"))
	}
	switch sale.Role(c.Operator.Role) {
	case sale.RoleAdmin, sale.RoleManager, sale.RoleStock, sale.RoleOperator:
	default:
		errs = append(errs, fmt.Errorf("operator.role must be one of admin, manager, stock, operator"))
	}

	if c.Catalog.Path == "" {
		errs = append(errs, fmt.Errorf("catalog.path must not be empty"))
	}
	if c.Journal.Dir == "" {
		errs = append(errs, fmt.Errorf("journal.dir must not be empty"))
	}
	if c.Journal.Retention < 0 {
		errs = append(errs, fmt.Errorf("journal.retention must be >= 0 (0 = unlimited)"))
	}

	for i, p := range c.Promos {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("promos[%d].name must not be empty", i))
		}
		if p.Percent <= 0 || p.Percent > 100 {
			errs = append(errs, fmt.Errorf("promos[%d].percent must be in (0, 100]", i))
		}
		if !p.Ends.IsZero() && p.Ends.Before(p.Starts) {
			errs = append(errs, fmt.Errorf("promos[%d].ends must not be before starts", i))
		}
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#2E9E5B\")"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	if !contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s", joinKeys(logLevels)))
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Store: StoreConfig{Name: ""},
		Operator: OperatorConfig{
			Name: "",
			Role: string(sale.RoleOperator),
		},
		Catalog: CatalogConfig{
			Path:  "products.toml",
			Watch: true,
		},
		Journal: JournalConfig{
			Dir:       ".mercearia/journal",
			Retention: 0,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Notifications: NotificationsConfig{
			URL:      "",
			OnPaid:   true,
			OnCancel: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  ".mercearia/mercearia.log",
		},
	}
}

// Load reads mercearia.toml from the given path. If path is empty, it walks
// up from the current working directory looking for mercearia.toml. Returns
// an error if the file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	cfg.dir = filepath.Dir(path)
	if cfg.Store.Name == "" {
		cfg.Store.Name = filepath.Base(absOr(cfg.dir))
	}
	if cfg.Operator.Name == "" {
		cfg.Operator.Name = DetectOperator()
	}

	return &cfg, nil
}

// Resolve returns p relative to the directory of the loaded file. Absolute
// paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// SaleOperator returns the configured operator as a sale.Operator.
func (c *Config) SaleOperator() sale.Operator {
	return sale.Operator{Name: c.Operator.Name, Role: sale.Role(c.Operator.Role)}
}

// SalePromos converts the [[promos]] entries for the sale service.
func (c *Config) SalePromos() []sale.Promo {
	out := make([]sale.Promo, len(c.Promos))
	for i, p := range c.Promos {
		out[i] = sale.Promo{
			Name:     p.Name,
			Percent:  p.Percent,
			Priority: p.Priority,
			Starts:   p.Starts,
			Ends:     p.Ends,
			Active:   p.Active,
		}
	}
	return out
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// findConfig walks up from the current directory looking for mercearia.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: %s not found (searched up from %s)", FileName, dir)
		}
		dir = parent
	}
}

// InitFile writes a default mercearia.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const configTemplate = `# mercearia.toml: register configuration
# Place this file in the directory you run the register from.

[store]
name = ""  # empty = directory name

[operator]
name = ""          # empty = login user
role = "operator"  # admin, manager, stock or operator; stock may not sell

[catalog]
path = "products.toml"
watch = true  # reload products when the file changes

[journal]
dir = ".mercearia/journal"
retention = 0  # number of session files to keep; 0 = unlimited

# [[promos]]
# name = "Semana do cliente"
# percent = 10.0
# priority = 1   # lower wins
# starts = 2026-03-09T00:00:00Z
# ends = 2026-03-15T23:59:59Z
# active = true

[tui]
accent_color = "#2E9E5B"  # hex color for header/accent elements

[notifications]
url = ""          # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_paid = true    # notify when a sale is paid
on_cancel = true  # notify when a sale is canceled

[log]
level = "info"  # trace, debug, info, warn, error, disabled
file = ".mercearia/mercearia.log"
`
