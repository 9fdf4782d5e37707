package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facility.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "facility.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 7, cfg.Schedule.DueSoonDays)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: memory
log:
  level: DEBUG
  format: json
schedule:
  due_soon_days: 14
metrics:
  textfile: /tmp/facility.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 14, cfg.Schedule.DueSoonDays)
	assert.Equal(t, "/tmp/facility.prom", cfg.Metrics.Textfile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: memory\n")
	t.Setenv("FACILITY_STORAGE_DRIVER", "sqlite")
	t.Setenv("FACILITY_STORAGE_SQLITE_PATH", "/data/facility.db")
	t.Setenv("FACILITY_SCHEDULE_DUE_SOON_DAYS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/data/facility.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 3, cfg.Schedule.DueSoonDays)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver":   "storage:\n  driver: mongo\n",
		"postgres w/o dsn": "storage:\n  driver: postgres\n",
		"bad log format":   "log:\n  format: xml\n",
		"negative window":  "schedule:\n  due_soon_days: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
