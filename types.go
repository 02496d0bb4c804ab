package pycforge

import (
	"log/slog"
	"path/filepath"
)

// Config controls where the pipeline keeps its state and how it reports.
//
// Source paths define the on-disk layout:
//   - WorkRoot: root for the tarball cache, extracted trees, and phase logs
//   - OutputDir: where compiled artifacts land (the invoker's directory)
//   - PatchDir: directory searched for version-specific patches
//   - Dockerfile: shared build definition for container images
//
// All fields are optional; the zero value works against the current
// directory with default hosts.
type Config struct {
	// Filesystem layout
	WorkRoot   string // root for tarballs/, source trees, and logs (default ".")
	OutputDir  string // destination for compiled artifacts (default ".")
	PatchDir   string // patch directory (default <WorkRoot>/patches)
	Dockerfile string // container build definition (default <WorkRoot>/Dockerfile)

	// Release hosts
	LegacyHost string // host for ancient and legacy era tarballs
	ModernHost string // host for modern era tarballs

	// Reporting
	Logger *slog.Logger // defaults to slog.Default()
}

func (c *Config) workRoot() string {
	if c.WorkRoot != "" {
		return c.WorkRoot
	}
	return "."
}

func (c *Config) outputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return "."
}

func (c *Config) patchDir() string {
	if c.PatchDir != "" {
		return c.PatchDir
	}
	return filepath.Join(c.workRoot(), "patches")
}

func (c *Config) dockerfile() string {
	if c.Dockerfile != "" {
		return c.Dockerfile
	}
	return filepath.Join(c.workRoot(), "Dockerfile")
}

func (c *Config) tarballDir() string {
	return filepath.Join(c.workRoot(), "tarballs")
}

func (c *Config) legacyHost() string {
	if c.LegacyHost != "" {
		return c.LegacyHost
	}
	return defaultLegacyHost
}

func (c *Config) modernHost() string {
	if c.ModernHost != "" {
		return c.ModernHost
	}
	return defaultModernHost
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// VersionResult records the outcome of one requested version.
//
// Artifact is the path of the compiled bytecode file when Err is nil.
// A non-nil Err means this version produced nothing; other versions in the
// same run may still have succeeded.
type VersionResult struct {
	Short    string // requested short version
	Artifact string // path to the produced artifact, empty on failure
	Err      error  // per-version failure, nil on success
}

// Failed reports whether any result in the batch carries an error.
func Failed(results []VersionResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
