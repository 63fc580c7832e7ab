package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukemcguire/canonurl/dedup"
	"github.com/lukemcguire/canonurl/urlutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canonurl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default().Dedup, cfg.Dedup)
	assert.Equal(t, Default().Logging, cfg.Logging)
	assert.Nil(t, cfg.Normalizer.Fingerprint)
	assert.Nil(t, cfg.Normalizer.Query.WithoutDuplicates)
	assert.Nil(t, cfg.Normalizer.Query.TrackingParams)
	assert.Empty(t, cfg.Handlers.DropPorts)
	assert.False(t, cfg.Handlers.DropFragment)

	n, err := cfg.NewNormalizer()
	require.NoError(t, err)
	assert.Equal(t, urlutil.DefaultConfig(), n.Config())
}

func TestLoad_File(t *testing.T) {
	isolateHome(t)

	path := writeConfig(t, `
normalizer:
  fingerprint: md5
  query:
    withoutTrackingParams: false
    trackingParamsList: [session]
  path:
    withoutTrailingSlash: false
  customFlag: true
handlers:
  drop_ports: [80, 443]
  drop_fragment: true
dedup:
  concurrency: 4
  approximate: true
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Normalizer.Fingerprint)
	assert.Equal(t, "md5", *cfg.Normalizer.Fingerprint)
	require.NotNil(t, cfg.Normalizer.Query.WithoutTrackingParams)
	assert.False(t, *cfg.Normalizer.Query.WithoutTrackingParams)
	assert.Equal(t, []string{"session"}, cfg.Normalizer.Query.TrackingParams)
	require.NotNil(t, cfg.Normalizer.Path.WithoutTrailingSlash)
	assert.False(t, *cfg.Normalizer.Path.WithoutTrailingSlash)
	assert.Nil(t, cfg.Normalizer.Query.WithoutDuplicates)
	assert.Equal(t, true, cfg.Normalizer.Extra["customflag"])

	assert.Equal(t, []int{80, 443}, cfg.Handlers.DropPorts)
	assert.True(t, cfg.Handlers.DropFragment)

	assert.Equal(t, dedup.Config{
		Concurrency:       4,
		Approximate:       true,
		ExpectedItems:     dedup.DefaultExpectedItems,
		FalsePositiveRate: dedup.DefaultFalsePositiveRate,
	}, cfg.RunnerConfig())
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)

	n, err := cfg.NewNormalizer()
	require.NoError(t, err)
	assert.Equal(t, urlutil.MD5, n.Config().Algorithm)

	got, err := n.Normalize("http://example.com:80/a/?utm_source=x&b=1#top")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/a/?b=1&utm_source=x", got)
}

func TestLoad_Env(t *testing.T) {
	isolateHome(t)
	t.Setenv("CANONURL_DEDUP_CONCURRENCY", "3")
	t.Setenv("CANONURL_NORMALIZER_FINGERPRINT", "sha1")
	t.Setenv("CANONURL_LOGGING_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Dedup.Concurrency)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.NotNil(t, cfg.Normalizer.Fingerprint)
	assert.Equal(t, "sha1", *cfg.Normalizer.Fingerprint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "dedup:\n  concurrency: 4\n")
	t.Setenv("CANONURL_DEDUP_CONCURRENCY", "12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Dedup.Concurrency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "logging level", content: "logging:\n  level: verbose\n"},
		{name: "logging format", content: "logging:\n  format: xml\n"},
		{name: "fingerprint", content: "normalizer:\n  fingerprint: whirlpool\n"},
		{name: "drop port", content: "handlers:\n  drop_ports: [70000]\n"},
		{name: "concurrency", content: "dedup:\n  concurrency: 0\n"},
		{name: "false positive rate", content: "dedup:\n  false_positive_rate: 1.5\n"},
		{name: "yaml syntax", content: "dedup: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnsupportedAlgorithmIsClassified(t *testing.T) {
	isolateHome(t)
	_, err := Load(writeConfig(t, "normalizer:\n  fingerprint: whirlpool\n"))
	assert.ErrorIs(t, err, urlutil.ErrUnsupportedAlgorithm)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestComponentHandlers(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.ComponentHandlers().Registered())

	cfg.Handlers = HandlersConfig{DropPorts: []int{443}, DropFragment: true}
	assert.Equal(t,
		[]urlutil.Component{urlutil.ComponentPort, urlutil.ComponentFragment},
		cfg.ComponentHandlers().Registered())
}
