package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arena/internal/config"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, app.Server)
	require.NoError(t, app.Manager.LoadLevel(cfg.Game.Level))
	assert.True(t, app.Manager.Snapshot().Loaded)
}

func TestInitializeAppWithoutServer(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Server.Enabled = false

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, app.Server)
}

func TestInitializeAppMissingManifest(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Game.Manifest = "/nonexistent/levels.yaml"

	_, _, err := InitializeApp(cfg)
	require.Error(t, err)
}
