package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_DecodesListsAndPoolSize(t *testing.T) {
	// Arrange
	data := []byte(`
lists:
  - name: physics
    expression: "Physics && !Dead"
  - name: renderable
    expression: "Transform && Sprite"
allocator_pool_size: 256
relaxed_enums:
  - type_name: SuitColor
`)

	// Act
	cfg, err := Parse(data)

	// Assert
	require.NoError(t, err)
	require.Len(t, cfg.Lists, 2)
	assert.Equal(t, "physics", cfg.Lists[0].Name)
	assert.Equal(t, "Physics && !Dead", cfg.Lists[0].Expression)
	assert.Equal(t, 256, cfg.AllocatorPoolSize)
	require.Len(t, cfg.RelaxedEnums, 1)
	assert.Equal(t, "SuitColor", cfg.RelaxedEnums[0].TypeName)
}

func Test_Parse_EmptyDocumentYieldsZeroValueConfig(t *testing.T) {
	cfg, err := Parse([]byte(``))

	require.NoError(t, err)
	assert.Empty(t, cfg.Lists)
	assert.Equal(t, 0, cfg.AllocatorPoolSize)
}

func Test_Parse_MalformedYAMLReturnsError(t *testing.T) {
	_, err := Parse([]byte("lists: [this is not: valid"))

	require.Error(t, err)
}

func Test_Parse_ToleratesPoolSizeAsString(t *testing.T) {
	// WeaklyTypedInput lets an operator-edited config write the pool size as
	// a quoted string without mapstructure rejecting the mismatch.
	data := []byte(`allocator_pool_size: "128"`)

	cfg, err := Parse(data)

	require.NoError(t, err)
	assert.Equal(t, 128, cfg.AllocatorPoolSize)
}

func Test_Load_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allocator_pool_size: 64\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 64, cfg.AllocatorPoolSize)
}

func Test_Load_MissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.Error(t, err)
}
