package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	appLog "apptcal/internal/log"
	"apptcal/internal/slots"
	"apptcal/internal/workday"
)

// RunConfig is one contiguous block of bookable slots.
type RunConfig struct {
	// Start is the first slot's clock time, "HH:MM".
	Start string `yaml:"start" json:"start"`
	// Hours is the length of the block.
	Hours float64 `yaml:"hours" json:"hours"`
}

// SlotsConfig controls slot generation and how many are offered per day.
type SlotsConfig struct {
	// Limit caps the positions offered per day. Zero or negative disables the cap.
	Limit int `yaml:"limit" json:"limit"`
	// StepMinutes is the spacing between slot starts.
	StepMinutes int         `yaml:"step_minutes" json:"step_minutes"`
	Runs        []RunConfig `yaml:"runs" json:"runs"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone every calendar computation runs in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart names the first weekday of a grid row: "monday" (default),
	// "sunday", or any other weekday name.
	WeekStart string `yaml:"week_start" json:"week_start"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Workdays is a 5-field cron expression describing open days; weekends
	// are always closed regardless.
	Workdays string `yaml:"workdays" json:"workdays"`

	// Holidays are closed days, "YYYY-MM-DD".
	Holidays []string `yaml:"holidays" json:"holidays"`

	Slots SlotsConfig `yaml:"slots" json:"slots"`

	// Appointments is an optional path to an .ics file with booked appointments.
	Appointments string `yaml:"appointments,omitempty" json:"appointments,omitempty"`

	// HorizonDays widens the recurrence expansion window on both sides of
	// the displayed month.
	HorizonDays int `yaml:"horizon_days" json:"horizon_days"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:  "UTC",
		WeekStart: "monday",
		LogLevel:  "info",
		Workdays:  workday.DefaultSchedule,
		Holidays:  []string{},
		Slots: SlotsConfig{
			Limit:       slots.DefaultLimit,
			StepMinutes: int(slots.DefaultStep / time.Minute),
			Runs: []RunConfig{
				{Start: "08:00", Hours: 4},
				{Start: "13:00", Hours: 4},
			},
		},
		HorizonDays: 7,
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave. Unknown week starts fall back to monday.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if _, ok := weekdayByName[c.WeekStart]; !ok {
		if c.WeekStart != "" {
			appLog.Warn("unknown week_start, using monday", "week_start", c.WeekStart)
		}
		c.WeekStart = def.WeekStart
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(c.Workdays) == "" {
		c.Workdays = def.Workdays
	}
	if c.Holidays == nil {
		c.Holidays = []string{}
	}
	if c.Slots.StepMinutes <= 0 {
		c.Slots.StepMinutes = def.Slots.StepMinutes
	}
	if len(c.Slots.Runs) == 0 {
		c.Slots.Runs = def.Slots.Runs
	}
	if c.HorizonDays < 0 {
		c.HorizonDays = 0
	}
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// FirstWeekday resolves WeekStart.
func (c *Config) FirstWeekday() time.Weekday {
	if wd, ok := weekdayByName[strings.ToLower(c.WeekStart)]; ok {
		return wd
	}
	return time.Monday
}

// Location loads Timezone. Unlike the week start, a bad zone is an error:
// silently switching zones would shift every day boundary.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlotRuns converts the configured runs.
func (c *Config) SlotRuns() ([]slots.Run, error) {
	runs := make([]slots.Run, 0, len(c.Slots.Runs))
	for i, rc := range c.Slots.Runs {
		t, err := time.Parse("15:04", strings.TrimSpace(rc.Start))
		if err != nil {
			return nil, fmt.Errorf("config: slots.runs[%d].start %q: %w", i, rc.Start, err)
		}
		if rc.Hours <= 0 {
			return nil, fmt.Errorf("config: slots.runs[%d].hours must be positive, got %v", i, rc.Hours)
		}
		start := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
		dur := time.Duration(rc.Hours * float64(time.Hour))
		if start+dur > 24*time.Hour {
			return nil, fmt.Errorf("config: slots.runs[%d] %s + %vh runs past midnight", i, rc.Start, rc.Hours)
		}
		runs = append(runs, slots.Run{
			StartHour:   t.Hour(),
			StartMinute: t.Minute(),
			Duration:    dur,
		})
	}
	return runs, nil
}

// SlotStep is the configured slot spacing.
func (c *Config) SlotStep() time.Duration {
	return time.Duration(c.Slots.StepMinutes) * time.Minute
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, the parent directory is created and a
//     default config is written with 0600 perms and returned.
//   - Otherwise the YAML is unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Caller decides whether an unsaved default is acceptable.
				return cfg, err
			}
			appLog.Info("wrote default config", "path", path)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Validate checks the parts Normalize cannot repair: the zone, the slot
// runs and the workday rule.
func (c *Config) Validate() error {
	loc, err := c.Location()
	if err != nil {
		return err
	}
	if _, err := c.SlotRuns(); err != nil {
		return err
	}
	if _, err := workday.NewRule(workday.Options{Location: loc, Schedule: c.Workdays, Holidays: c.Holidays}); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save normalizes and validates cfg, then replaces path with its YAML
// (0600, parent directory created 0700). A config that fails Validate is
// never written.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return writeFileAtomic(path, data, 0o600)
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers see either the old file or the new one.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
