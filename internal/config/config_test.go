package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "yeqown", cfg.QR.Backend)
	assert.Equal(t, 300, cfg.QR.Size)
	assert.Equal(t, "H", cfg.QR.Level)
	assert.Equal(t, "#EAF3FF", cfg.Image.Background)
	assert.Equal(t, 92, cfg.Image.JPEGQuality)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "payqr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  public_base_url: pay.example.com/
qr:
  backend: zxing
  size: 400
cache:
  ttl: 5m
`), 0o600))
	t.Setenv("PAYQR_QR_LEVEL", "H")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zxing", cfg.QR.Backend)
	assert.Equal(t, 400, cfg.QR.Size)
	assert.Equal(t, "H", cfg.QR.Level)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "https://pay.example.com", cfg.Server.PublicBaseURL)
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	t.Setenv("PAYQR_SERVER_ADDR", "127.0.0.1:8000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "")
	cases := map[string]string{
		"PAYQR_QR_LEVEL":               "Z",
		"PAYQR_QR_BACKEND":             "zint",
		"PAYQR_QR_SIZE":                "0",
		"PAYQR_IMAGE_BACKGROUND":       "blue",
		"PAYQR_IMAGE_JPEG_QUALITY":     "101",
		"PAYQR_SERVER_PUBLIC_BASE_URL": "ftp://example.com",
	}
	for env, val := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
