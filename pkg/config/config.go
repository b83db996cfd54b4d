package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/harrisonrobin/takt/pkg/colors"
)

const (
	xdgAppName = "takt"
	configFile = "config.json"
	envPrefix  = "TAKT_"
)

type Config struct {
	// Calendar is the Google Calendar name used by "calendar push".
	Calendar string       `json:"calendar"`
	LogLevel string       `json:"log_level"`
	Palette  []string     `json:"palette"`
	Chart    ChartConfig  `json:"chart"`
	Export   ExportConfig `json:"export"`
}

// ChartConfig sizes the rendered timeline in pixels at scale 1.
type ChartConfig struct {
	DayWidth   int `json:"day_width"`
	LabelWidth int `json:"label_width"`
	RowHeight  int `json:"row_height"`
	Scale      int `json:"scale"`
	MaxDays    int `json:"max_days"` // caps the day columns
}

// ExportConfig holds the default output filenames.
type ExportConfig struct {
	Spreadsheet string `json:"spreadsheet"`
	Image       string `json:"image"`
	PDF         string `json:"pdf"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Calendar: "Tasks",
		LogLevel: "info",
		Chart: ChartConfig{
			DayWidth:   32,
			LabelWidth: 192,
			RowHeight:  24,
			Scale:      2,
			MaxDays:    366,
		},
		Export: ExportConfig{
			Spreadsheet: "gantt-takt-tasks.xlsx",
			Image:       "gantt-chart.png",
			PDF:         "gantt-chart.pdf",
		},
	}
}

// SetDefaults fills empty fields from Default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Calendar == "" {
		c.Calendar = d.Calendar
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Chart.DayWidth == 0 {
		c.Chart.DayWidth = d.Chart.DayWidth
	}
	if c.Chart.LabelWidth == 0 {
		c.Chart.LabelWidth = d.Chart.LabelWidth
	}
	if c.Chart.RowHeight == 0 {
		c.Chart.RowHeight = d.Chart.RowHeight
	}
	if c.Chart.Scale == 0 {
		c.Chart.Scale = d.Chart.Scale
	}
	if c.Chart.MaxDays == 0 {
		c.Chart.MaxDays = d.Chart.MaxDays
	}
	if c.Export.Spreadsheet == "" {
		c.Export.Spreadsheet = d.Export.Spreadsheet
	}
	if c.Export.Image == "" {
		c.Export.Image = d.Export.Image
	}
	if c.Export.PDF == "" {
		c.Export.PDF = d.Export.PDF
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Chart.DayWidth < 1 || c.Chart.LabelWidth < 1 || c.Chart.RowHeight < 1 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	if c.Chart.MaxDays < 1 {
		return fmt.Errorf("chart max_days must be positive")
	}
	if c.Chart.Scale < 1 || c.Chart.Scale > 8 {
		return fmt.Errorf("chart scale %d out of range 1..8", c.Chart.Scale)
	}
	if _, err := colors.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

// Load reads path (or the default location when path is empty) and applies
// TAKT_ environment overrides, e.g. TAKT_CHART__DAY_WIDTH=40. A missing file
// at the default location is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to the default location.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as JSON to path, creating parent directories.
func SaveTo(path string, cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "json"), nil); err != nil {
		return err
	}
	b, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
