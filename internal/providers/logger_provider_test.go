package providers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlyone/internal/providers"
	"onlyone/internal/structures"
)

func loggerConfig(dir string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  420,
			Dir:   dir,
		},
	}
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	logger, err := providers.NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)
	defer logger.Close()

	for _, name := range []string{"app.log", "access_get.log", "access_post.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestLogProvider_WritesToTypedFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := providers.NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)

	logger.Infof(providers.TypeApp, "daemon started on port %d", 18090)
	logger.Infof(providers.TypeGet, "GET served")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "daemon started on port 18090")
	assert.NotContains(t, string(app), "GET served")

	access, err := os.ReadFile(filepath.Join(dir, "access_get.log"))
	require.NoError(t, err)
	assert.Contains(t, string(access), "GET served")
}

func TestLogProvider_RespectsLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := providers.NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)

	logger.Debugf(providers.TypeApp, "too quiet to appear")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(app), "too quiet to appear")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := loggerConfig(t.TempDir())
	conf.Logger.Level = "loud"
	_, err := providers.NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_UnwritableDir(t *testing.T) {
	conf := loggerConfig(filepath.Join(t.TempDir(), "does", "not", "exist"))
	_, err := providers.NewLogProvider(conf)
	assert.Error(t, err)
}

func TestGetLogTypeByRequestType(t *testing.T) {
	assert.Equal(t, providers.TypePost, providers.GetLogTypeByRequestType(http.MethodPost))
	assert.Equal(t, providers.TypeGet, providers.GetLogTypeByRequestType(http.MethodGet))
	assert.Equal(t, providers.TypeGet, providers.GetLogTypeByRequestType(http.MethodDelete))
}
