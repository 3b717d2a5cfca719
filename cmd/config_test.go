package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigAppliesDefaultsAndOverrides(t *testing.T) {
	path := writeTestConfig(t, `
[harvest]
portal_base_url = "http://portal.example"
source_id_partition = "teacher_ids"
source_id_column = "cedula"
target_period_label = "2024-1"
max_ids = 50
fetch_max_retries = 5
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://portal.example", cfg.Harvest.PortalBaseURL)
	assert.Equal(t, 50, cfg.Harvest.MaxIDs)
	assert.Equal(t, 5, cfg.Harvest.FetchMaxRetries)
	// untouched fields keep the install defaults
	assert.Equal(t, 100*time.Millisecond, cfg.Harvest.PacingDelay())
	assert.Equal(t, 30*time.Second, cfg.Harvest.FetchTimeout())
}

func TestLoadConfigRejectsMissingPortal(t *testing.T) {
	path := writeTestConfig(t, `
[harvest]
source_id_partition = "teacher_ids"
source_id_column = "cedula"
target_period_label = "2024-1"
`)
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestPeriodLabelPattern(t *testing.T) {
	assert.True(t, periodLabelPattern.MatchString("2024-1"))
	assert.True(t, periodLabelPattern.MatchString("1999-2"))
	assert.False(t, periodLabelPattern.MatchString("2024-3"))
	assert.False(t, periodLabelPattern.MatchString("24-1"))
}
