package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListen        = ":5000"
	defaultCalendarID    = "holiday@group.v.calendar.google.com"
	defaultRegion        = "en.usa"
	defaultYearsBack     = 5
	defaultYearsAhead    = 5
	defaultPageSize      = 2500
	defaultHolidayAPIURL = "http://127.0.0.1:5000/api/holidays"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address of the holiday service.
	Listen string `yaml:"listen" json:"listen"`

	// APIKey authenticates calls to the Google Calendar API. When empty,
	// Application Default Credentials are used instead.
	APIKey string `yaml:"api_key" json:"-"`

	// CalendarID is the public holiday calendar suffix; requests go to
	// "{region}#{CalendarID}".
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`

	// DefaultRegion is used when a request does not name a region.
	DefaultRegion string `yaml:"default_region" json:"default_region"`

	// YearsBack and YearsAhead bound the requested event window:
	// Jan 1 of (now - YearsBack) to Dec 31 of (now + YearsAhead).
	YearsBack  int `yaml:"years_back" json:"years_back"`
	YearsAhead int `yaml:"years_ahead" json:"years_ahead"`

	// PageSize is maxResults per events.list page (API maximum 2500).
	PageSize int64 `yaml:"page_size" json:"page_size"`

	// HolidayAPIURL is the base URL region feeds are fetched from
	// ("{HolidayAPIURL}/{region}").
	HolidayAPIURL string `yaml:"holiday_api_url" json:"holiday_api_url"`

	// WeekStart controls the first column of the month grid:
	//   - "sunday" (default)
	//   - "monday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// Timezone is the IANA zone used to read timestamp starts of holiday
	// events. Empty means the process local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        defaultListen,
		CalendarID:    defaultCalendarID,
		DefaultRegion: defaultRegion,
		YearsBack:     defaultYearsBack,
		YearsAhead:    defaultYearsAhead,
		PageSize:      defaultPageSize,
		HolidayAPIURL: defaultHolidayAPIURL,
		WeekStart:     "sunday",
		CORSOrigins:   []string{"*"},
		LogLevel:      "info",
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.CalendarID == "" {
		c.CalendarID = defaultCalendarID
	}
	if c.DefaultRegion == "" {
		c.DefaultRegion = defaultRegion
	}
	if c.YearsBack < 0 {
		c.YearsBack = defaultYearsBack
	}
	if c.YearsAhead < 0 {
		c.YearsAhead = defaultYearsAhead
	}
	if c.PageSize <= 0 || c.PageSize > defaultPageSize {
		c.PageSize = defaultPageSize
	}
	if c.HolidayAPIURL == "" {
		c.HolidayAPIURL = defaultHolidayAPIURL
	}
	c.HolidayAPIURL = strings.TrimRight(c.HolidayAPIURL, "/")

	switch strings.ToLower(c.WeekStart) {
	case "monday":
		c.WeekStart = "monday"
	default:
		// Unknown value; fall back to sunday.
		c.WeekStart = "sunday"
	}
	if c.CORSOrigins == nil {
		c.CORSOrigins = []string{"*"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// FirstWeekday is WeekStart as a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Location resolves Timezone; an empty value yields time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Clock returns the current time in the configured timezone.
func (c *Config) Clock() (func() time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// ApplyEnv overrides file values with the process environment.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CALENDAR_ID"); v != "" {
		c.CalendarID = v
	}
	if v := os.Getenv("CALENDAR_REGION"); v != "" {
		c.DefaultRegion = v
	}
	if v := os.Getenv("HOLIDAY_API_URL"); v != "" {
		c.HolidayAPIURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	c.Normalize()
}

// Load loads configuration from the given YAML path and applies
// environment overrides.
//
// Behavior:
//   - empty path: defaults + environment
//   - missing file: write defaults with 0600 perms, then return them
//   - existing file: unmarshal, normalize
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				cfg.ApplyEnv()
				return cfg, err
			}
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	// Keys absent from the file keep their defaults.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.ApplyEnv()

	return cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions, creating the parent directory if needed.
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

	tmp, err := os.CreateTemp(dir, ".holiday-config-*.tmp")
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

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
