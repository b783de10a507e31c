package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreWritesDefaults(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			store, err := NewStore(NewDriver(path))
			require.NoError(t, err)
			assert.FileExists(t, path)

			cfg, err := store.GetConfig()
			require.NoError(t, err)
			if diff := cmp.Diff(Default(), cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			store, err := NewStore(NewDriver(path))
			require.NoError(t, err)

			require.NoError(t, store.UpdateConfig(func(cfg Config) (Config, error) {
				cfg.Grid.MaxColumns = 4
				cfg.Style.Stroke = "#ff0000"
				cfg.Window = Window{Width: 640, Height: 480}
				return cfg, nil
			}))

			reopened, err := NewStore(NewDriver(path))
			require.NoError(t, err)
			cfg, err := reopened.GetConfig()
			require.NoError(t, err)

			assert.Equal(t, 4, cfg.Grid.MaxColumns)
			assert.Equal(t, "#ff0000", cfg.Style.Stroke)
			assert.Equal(t, Window{Width: 640, Height: 480}, cfg.Window)
			assert.Equal(t, defaultConfig.Grid.CellSize, cfg.Grid.CellSize)
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := Normalize(Config{Density: -1})

	assert.Equal(t, "canvas", cfg.SurfaceID)
	assert.Zero(t, cfg.Density)
	assert.Equal(t, 0.75, cfg.ClickScale)
	assert.Equal(t, Grid{CellSize: 120, MaxColumns: 10, MaxRows: 10, Scale: 0.9}, cfg.Grid)
	assert.Equal(t, Style{LineWidth: 1, Stroke: "#000000", Background: "#ffffff"}, cfg.Style)
}

func TestReadPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density: 2\ngrid:\n  cell_size: 60\n"), 0600))

	store, err := NewStore(NewYAML(path))
	require.NoError(t, err)

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Density)
	assert.Equal(t, 60.0, cfg.Grid.CellSize)
	assert.Equal(t, 10, cfg.Grid.MaxRows)
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	store, err := NewStore(NewJSON(path))
	require.NoError(t, err)

	_, err = store.GetConfig()
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exists, err := m.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	store, err := NewStore(m)
	require.NoError(t, err)

	exists, err = m.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("click_scale: 0.5\ngrid:\n  max_rows: 3\n"), 0600))

	store, err := NewStore(NewYAML(path))
	require.NoError(t, err)

	cfg, err := store.Rewrite()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.ClickScale)
	assert.Equal(t, 3, cfg.Grid.MaxRows)
	assert.Equal(t, 120.0, cfg.Grid.CellSize)

	// The file now holds the filled in values.
	raw, err := NewYAML(path).Read()
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, raw); diff != "" {
		t.Errorf("written config mismatch (-want +got):\n%s", diff)
	}
}
