package patrol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patrol-mc/patrol/game"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsOctagonal(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.validate())
	require.Len(t, cfg.Route, 8)

	seen := map[string]bool{}
	for _, leg := range cfg.Route {
		require.Equal(t, float32(5), leg.Distance)
		seen[leg.Direction] = true
	}
	for _, dir := range game.Directions() {
		require.True(t, seen[string(dir)], dir)
	}
}

func TestReadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patrol.yml")
	data := []byte("tick_rate: 40\nroute:\n  - direction: south\n    distance: 2\n    can_jump: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 40, cfg.TickRate)
	require.Len(t, cfg.Route, 1)
	require.Equal(t, "south", cfg.Route[0].Direction)
	require.NotNil(t, cfg.Route[0].CanJump)
	require.False(t, *cfg.Route[0].CanJump)
	// Untouched sections keep their defaults.
	require.Equal(t, "patroller", cfg.Match.Kind)
}

func TestReadConfigRejectsUnknownDirection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patrol.yml")
	data := []byte("route:\n  - direction: down\n    distance: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := ReadConfig(path)
	require.ErrorContains(t, err, "unknown direction")
}

func TestReadConfigRejectsNonPositiveDistance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patrol.yml")
	data := []byte("route:\n  - direction: north\n    distance: 0\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := ReadConfig(path)
	require.ErrorContains(t, err, "distance")
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
