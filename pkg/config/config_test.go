package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
  "calendar": "Site B",
  "log_level": "debug",
  "palette": ["teal", "#112233"],
  "chart": {"day_width": 40, "scale": 1},
  "export": {"pdf": "site-b.pdf"}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"calendar", cfg.Calendar, "Site B"},
		{"log_level", cfg.LogLevel, "debug"},
		{"palette", cfg.Palette, []string{"teal", "#112233"}},
		{"day_width", cfg.Chart.DayWidth, 40},
		{"label_width default", cfg.Chart.LabelWidth, 192},
		{"scale", cfg.Chart.Scale, 1},
		{"max_days default", cfg.Chart.MaxDays, 366},
		{"pdf", cfg.Export.PDF, "site-b.pdf"},
		{"image default", cfg.Export.Image, "gantt-chart.png"},
		{"spreadsheet default", cfg.Export.Spreadsheet, "gantt-takt-tasks.xlsx"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"calendar": "File"}`), 0o644))

	t.Setenv("TAKT_CALENDAR", "Env")
	t.Setenv("TAKT_CHART__DAY_WIDTH", "48")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Env", cfg.Calendar)
	assert.Equal(t, 48, cfg.Chart.DayWidth)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Calendar, cfg.Calendar)
	assert.Equal(t, d.LogLevel, cfg.LogLevel)
	assert.Equal(t, d.Chart, cfg.Chart)
	assert.Equal(t, d.Export, cfg.Export)
	assert.Empty(t, cfg.Palette)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax":  `{"calendar": `,
		"scale":   `{"chart": {"scale": 20}}`,
		"palette": `{"palette": ["chartreuse"]}`,
		"maxdays": `{"chart": {"max_days": -5}}`,
	}
	for name, data := range cases {
		path := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Calendar = "Tower B"
	require.NoError(t, Save(&cfg))

	path, err := GetConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Tower B", loaded.Calendar)
	assert.Equal(t, cfg.Chart, loaded.Chart)
}
