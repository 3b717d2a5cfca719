package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesRotatedFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	z := DefaultZapConfig
	z.LogInConsole = false
	lg, err := z.InitLogger()
	require.NoError(t, err)
	require.NotNil(t, lg)

	lg.Error("boom")
	require.NoError(t, lg.Sync())

	logDir := filepath.Join(home, WorkDir, z.Directory)
	for _, name := range []string{"harvester.log", "harvester.err.log"} {
		data, err := os.ReadFile(filepath.Join(logDir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "boom")
	}
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	z := DefaultZapConfig
	z.Level = "loudest"
	_, err := z.InitLogger()
	assert.Error(t, err)
}

func TestZapEncodeLevelVariants(t *testing.T) {
	z := DefaultZapConfig
	for _, name := range []string{
		"LowercaseLevelEncoder", "LowercaseColorLevelEncoder",
		"CapitalLevelEncoder", "CapitalColorLevelEncoder", "unknown",
	} {
		z.EncodeLevel = name
		assert.NotNil(t, z.ZapEncodeLevel())
	}
}
