package pycforge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeVersionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "versions.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesAddsAndReplaces(t *testing.T) {
	registry := NewRegistry()

	path := writeVersionsFile(t, `
version "3.14" {
  full           = "3.14.0"
  era            = "modern"
  official_image = true
}

version "3.13" {
  full = "3.13.1"
  era  = "modern"
}
`)
	require.NoError(t, registry.LoadOverrides(path))

	added, err := registry.Classify("3.14")
	require.NoError(t, err)
	require.Equal(t, "3.14.0", added.Full)
	require.Equal(t, EraModern, added.Era)
	require.True(t, added.OfficialImage)

	replaced, err := registry.Classify("3.13")
	require.NoError(t, err)
	require.Equal(t, "3.13.1", replaced.Full)
	require.False(t, replaced.OfficialImage)
}

func TestLoadOverridesMissingFileIsNoop(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.LoadOverrides(filepath.Join(t.TempDir(), "versions.hcl")))

	spec, err := registry.Classify("3.8")
	require.NoError(t, err)
	require.Equal(t, "3.8.20", spec.Full)
}

func TestLoadOverridesRejectsUnknownEra(t *testing.T) {
	registry := NewRegistry()

	path := writeVersionsFile(t, `
version "4.0" {
  full = "4.0.0"
  era  = "antique"
}
`)
	err := registry.LoadOverrides(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown era")
}

func TestLoadOverridesRejectsMalformedHCL(t *testing.T) {
	registry := NewRegistry()

	path := writeVersionsFile(t, `version "4.0" {`)
	require.Error(t, registry.LoadOverrides(path))
}
