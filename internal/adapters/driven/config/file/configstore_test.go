package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Set(KeySubscriptionKey, "secret")
	store.Set(KeyTolerance, 0.08)
	require.NoError(t, store.Save())

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", reopened.GetString(KeySubscriptionKey))
	assert.InDelta(t, 0.08, reopened.GetFloat(KeyTolerance), 1e-9)
}

func TestConfigStore_NestedTablesFlattenToDottedKeys(t *testing.T) {
	dir := t.TempDir()
	content := `[provider]
base_url = "https://example.org/sdmx/data"
subscription_key = "abc123"

[resolver]
tolerance = 0.1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/sdmx/data", store.GetString(KeyBaseURL))
	assert.Equal(t, "abc123", store.GetString(KeySubscriptionKey))
	assert.InDelta(t, 0.1, store.GetFloat(KeyTolerance), 1e-9)
}

func TestConfigStore_GetFloat_IntegerLiteral(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[resolver]\ntolerance = 1\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1.0, store.GetFloat(KeyTolerance))
}

func TestConfigStore_MissingFileIsNotAnError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString(KeyBaseURL))
	assert.Zero(t, store.GetFloat(KeyTolerance))
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
