package pycforge

import (
	"context"
	"fmt"
	"path/filepath"
)

// interpreterNames are the executables a finished build may produce, in
// probe order. python.exe shows up on case-insensitive filesystems where
// the binary cannot share a name with the Python/ source directory.
var interpreterNames = []string{"python", "python.exe"}

// NativeBuilder turns an extracted source tree into a runnable
// interpreter.
//
// Ensure is idempotent on the presence of the interpreter executable
// inside the tree; no manifest or content hash is kept. The build is two
// all-or-nothing phases, configure and make, each with its combined output
// captured to a log file next to the tree:
//
//	<tree>.conf.log
//	<tree>.build.log
//
// Logs are kept on success too, and a failed phase's error points the
// operator at the corresponding log.
type NativeBuilder struct {
	cfg *Config
}

// NewNativeBuilder creates a builder over the given configuration.
func NewNativeBuilder(cfg *Config) *NativeBuilder {
	return &NativeBuilder{cfg: cfg}
}

// Ensure builds the tree if needed and returns the interpreter path.
func (b *NativeBuilder) Ensure(ctx context.Context, tree string) (string, error) {
	if python, ok := b.findInterpreter(tree); ok {
		return python, nil
	}

	b.cfg.logger().Info("building interpreter from source", "tree", tree)

	confLog := tree + ".conf.log"
	if err := runLogged(ctx, tree, confLog, "./configure"); err != nil {
		return "", &PhaseError{Phase: "configure", LogPath: confLog, Err: err}
	}

	buildLog := tree + ".build.log"
	if err := runLogged(ctx, tree, buildLog, "make"); err != nil {
		return "", &PhaseError{Phase: "build", LogPath: buildLog, Err: err}
	}

	python, ok := b.findInterpreter(tree)
	if !ok {
		return "", &PhaseError{
			Phase:   "build",
			LogPath: buildLog,
			Err:     fmt.Errorf("make succeeded but no interpreter executable appeared in %s", tree),
		}
	}
	return python, nil
}

// findInterpreter probes the tree for a built interpreter executable.
func (b *NativeBuilder) findInterpreter(tree string) (string, bool) {
	for _, name := range interpreterNames {
		candidate := filepath.Join(tree, name)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
