package pycforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Executor compiles one input file against a ready toolchain, producing
// the version-tagged artifact in the configured output directory.
//
// The artifact is named <base>.<short>.pyc and any same-named file from a
// previous run is deleted before each attempt, so the file on disk always
// reflects the most recent attempt.
type Executor struct {
	cfg *Config
}

// NewExecutor creates an executor over the given configuration.
func NewExecutor(cfg *Config) *Executor {
	return &Executor{cfg: cfg}
}

// Compile runs the era-appropriate strategy for the spec against the host
// and returns the artifact path.
func (e *Executor) Compile(ctx context.Context, host Host, spec VersionSpec, inputPath string) (string, error) {
	input, err := filepath.Abs(inputPath)
	if err != nil {
		return "", err
	}

	if checker, ok := host.(versionChecker); ok {
		if err := checker.VerifyVersion(ctx, spec.Short); err != nil {
			return "", err
		}
	}

	outPath, err := filepath.Abs(filepath.Join(e.cfg.outputDir(), ArtifactName(inputPath, spec.Short)))
	if err != nil {
		return "", err
	}

	// Never leave a stale artifact from a prior run, even if this
	// attempt fails.
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return "", err
	}

	e.cfg.logger().Info("compiling", "version", spec.Short, "strategy", StrategyFor(spec.Era).String(), "host", host.Describe())

	switch StrategyFor(spec.Era) {
	case StrategyImport:
		err = e.compileViaImport(ctx, host, spec, input, outPath)
	default:
		err = e.compileViaPyCompile(ctx, host, spec, input, outPath)
	}
	if err != nil {
		return "", err
	}

	return outPath, nil
}

// compileViaImport stages the input beside itself under the fixed staging
// module name, imports it once, and claims whichever legacy bytecode
// suffix the generation produced.
func (e *Executor) compileViaImport(ctx context.Context, host Host, spec VersionSpec, input, outPath string) error {
	dir := filepath.Dir(input)
	staged := filepath.Join(dir, stagingModule+".py")

	removeStaging(dir)
	if err := copyFile(input, staged); err != nil {
		return err
	}
	defer removeStaging(dir)

	runErr := host.Run(ctx, dir, "import "+stagingModule)

	for _, suffix := range legacySuffixes {
		compiled := filepath.Join(dir, stagingModule+suffix)
		if !fileExists(compiled) {
			continue
		}
		return copyFile(compiled, outPath)
	}

	return &CompileError{Short: spec.Short, Input: input, Err: runErr}
}

// compileViaPyCompile calls the standard library compiler with explicit
// source and destination paths. Success is the destination existing
// afterwards.
func (e *Executor) compileViaPyCompile(ctx context.Context, host Host, spec VersionSpec, input, outPath string) error {
	src, err := host.Path(input)
	if err != nil {
		return err
	}
	dst, err := host.Path(outPath)
	if err != nil {
		return err
	}

	code := fmt.Sprintf("import py_compile; py_compile.compile(%q, %q)", src, dst)
	runErr := host.Run(ctx, filepath.Dir(input), code)

	if !fileExists(outPath) {
		return &CompileError{Short: spec.Short, Input: input, Err: runErr}
	}
	return nil
}

// removeStaging clears the staged module and every possible compiled
// counterpart from an input directory.
func removeStaging(dir string) {
	os.Remove(filepath.Join(dir, stagingModule+".py"))
	for _, suffix := range legacySuffixes {
		os.Remove(filepath.Join(dir, stagingModule+suffix))
	}
}
