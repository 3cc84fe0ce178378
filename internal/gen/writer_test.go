package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFilesCreatesDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "generated")

	files := []GeneratedFile{
		{Filename: "desergen_runtime.ts", Content: []byte("runtime")},
		{Filename: "a/b/user.ts", Content: []byte("user")},
	}

	require.NoError(t, WriteFiles(files, out))

	data, err := os.ReadFile(filepath.Join(out, "a", "b", "user.ts"))
	require.NoError(t, err)
	assert.Equal(t, "user", string(data))

	data, err = os.ReadFile(filepath.Join(out, "desergen_runtime.ts"))
	require.NoError(t, err)
	assert.Equal(t, "runtime", string(data))
}

func TestWriteFilesOverwrites(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, WriteFiles([]GeneratedFile{{Filename: "x.ts", Content: []byte("old")}}, out))
	require.NoError(t, WriteFiles([]GeneratedFile{{Filename: "x.ts", Content: []byte("new")}}, out))

	data, err := os.ReadFile(filepath.Join(out, "x.ts"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestPruneFilesRemovesStaleModules(t *testing.T) {
	out := t.TempDir()

	generated := func(body string) []byte { return []byte(header + "\n" + body) }

	old := []GeneratedFile{
		{Filename: "desergen_runtime.ts", Content: generated("runtime")},
		{Filename: "a/role.ts", Content: generated("role")},
		{Filename: "a/old/user.ts", Content: generated("user")},
	}
	require.NoError(t, WriteFiles(old, out))

	handwritten := filepath.Join(out, "a", "index.ts")
	require.NoError(t, os.WriteFile(handwritten, []byte("export * from \"./role\";\n"), 0o600))

	current := []GeneratedFile{
		{Filename: "desergen_runtime.ts", Content: generated("runtime")},
		{Filename: "a/role.ts", Content: generated("role")},
		{Filename: "a/new/user.ts", Content: generated("user")},
	}
	require.NoError(t, WriteFiles(current, out))

	removed, err := PruneFiles(current, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/old/user.ts"}, removed)

	_, err = os.Stat(filepath.Join(out, "a", "old"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	for _, keep := range []string{"desergen_runtime.ts", "a/role.ts", "a/new/user.ts", "a/index.ts"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(keep)))
		assert.NoError(t, err, keep)
	}
}

func TestPruneFilesMissingOutputDirectory(t *testing.T) {
	removed, err := PruneFiles(nil, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}
