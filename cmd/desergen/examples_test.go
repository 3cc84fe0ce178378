package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamples(t *testing.T) {
	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	examples := []struct {
		config string
		files  []string
	}{
		{
			config: filepath.Join("basic", "desergen.yaml"),
			files: []string{
				filepath.Join("src", "generated", "app", "shared", "role.ts"),
				filepath.Join("src", "generated", "app", "users", "user_profile.ts"),
				filepath.Join("src", "generated", "desergen_runtime.ts"),
			},
		},
		{
			config: filepath.Join("hcl", "desergen.hcl"),
			files: []string{
				filepath.Join("src", "desergen", "inventory", "inventory_item.ts"),
				filepath.Join("src", "desergen", "inventory", "status.ts"),
			},
		},
	}

	for _, ex := range examples {
		t.Run(filepath.Dir(ex.config), func(t *testing.T) {
			cfgPath := filepath.Join(repoRoot, "examples", ex.config)

			out, _, err := execute(t, "check", "-c", cfgPath)
			require.NoError(t, err, out)
			assert.Contains(t, out, "0 warnings")

			out, _, err = execute(t, "generate", "--dry-run", "-c", cfgPath)
			require.NoError(t, err)

			for _, f := range ex.files {
				assert.Contains(t, out, f)
			}
		})
	}
}
