package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStoreReadsByKey(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "ha.glb"), validModel(), 0644))

	store := NewDirStore(root)

	data, err := store.ReadAsset(context.Background(), "models/ha.glb")
	require.NoError(t, err)
	assert.Equal(t, validModel(), data)

	_, err = store.ReadAsset(context.Background(), "models/hk.glb")
	assert.Error(t, err)
}

func TestDirStoreReadDelay(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "ha.glb"), validModel(), 0644))

	store := NewDirStore(root, WithReadDelay(20*time.Millisecond))

	start := time.Now()
	_, err := store.ReadAsset(context.Background(), "models/ha.glb")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDirStoreDelayHonorsCancellation(t *testing.T) {
	store := NewDirStore(t.TempDir(), WithReadDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ReadAsset(ctx, "models/ha.glb")
	assert.ErrorIs(t, err, context.Canceled)
}
