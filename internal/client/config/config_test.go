package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "atscv.db", c.DBPath)
	assert.Equal(t, "gemini-2.5-pro", c.Model)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "exports", c.ExportDir)
	assert.Equal(t, 2*time.Minute, c.RequestTimeout)
	assert.Empty(t, c.APIKey)
	assert.False(t, c.VerifyCredentials)
	assert.False(t, c.BackupEnabled())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := load(nil, envMap(nil))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Env(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"GEMINI_API_KEY":           "g-key",
		"ATSCV_DB_PATH":            "/tmp/x.db",
		"ATSCV_LOG_FORMAT":         "zap",
		"ATSCV_S3_BUCKET":          "cvs",
		"ATSCV_VERIFY_CREDENTIALS": "true",
		"ATSCV_REQUEST_TIMEOUT":    "30s",
	}))
	require.NoError(t, err)

	want := defaults()
	want.APIKey = "g-key"
	want.DBPath = "/tmp/x.db"
	want.LogFormat = "zap"
	want.S3Bucket = "cvs"
	want.VerifyCredentials = true
	want.RequestTimeout = 30 * time.Second
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.True(t, cfg.BackupEnabled())
}

func TestLoad_APIKeyPrefersAPI_KEY(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{"API_KEY": "a", "GEMINI_API_KEY": "g"}))
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.APIKey)
}

func TestLoad_BadEnvValues(t *testing.T) {
	_, err := load(nil, envMap(map[string]string{"ATSCV_VERIFY_CREDENTIALS": "maybe"}))
	assert.Error(t, err)

	_, err = load(nil, envMap(map[string]string{"ATSCV_REQUEST_TIMEOUT": "soon"}))
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "API_KEY=from-file\nATSCV_MODEL=file-model\n")

	cfg, err := load([]string{"-e", path}, envMap(map[string]string{"ATSCV_MODEL": "env-model"}))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "env-model", cfg.Model, "process env wins over the file")
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := load([]string{"-env", filepath.Join(t.TempDir(), "nope.env")}, envMap(nil))
	assert.Error(t, err)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"db_path": "json.db",
		"model": "json-model",
		"s3_bucket": "cvs",
		"verify_credentials": true,
		"request_timeout": "45s"
	}`)

	cfg, err := load([]string{"-config", path}, envMap(map[string]string{"ATSCV_DB_PATH": "env.db"}))
	require.NoError(t, err)
	assert.Equal(t, "json.db", cfg.DBPath, "json wins over env")
	assert.Equal(t, "json-model", cfg.Model)
	assert.Equal(t, "cvs", cfg.S3Bucket)
	assert.True(t, cfg.VerifyCredentials)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel, "absent fields keep earlier values")
}

func TestLoad_JSONErrors(t *testing.T) {
	_, err := load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, envMap(nil))
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", `{"db_path": `)
	_, err = load([]string{"-c", bad}, envMap(nil))
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name:     "all flags",
			args:     []string{"-d", "f.db", "-m", "m1", "-l", "debug", "-o", "out"},
			expected: &Config{DBPath: "f.db", Model: "m1", LogLevel: "debug", ExportDir: "out"},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-d=x.db", "-e", ".env"},
			expected: &Config{DBPath: "x.db"},
		},
		{
			name:     "none",
			args:     nil,
			expected: &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, parseFlags(cfg, tt.args))
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoad_FlagsWinOverJSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"db_path": "json.db", "export_dir": "json-out"}`)

	cfg, err := load([]string{"-c", path, "-d", "flag.db"}, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.Equal(t, "json-out", cfg.ExportDir)
}
