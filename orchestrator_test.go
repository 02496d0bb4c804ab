package pycforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubNative struct {
	python string
	failOn string // tree substring that triggers a build failure
}

func (s *stubNative) Ensure(ctx context.Context, tree string) (string, error) {
	if s.failOn != "" && filepath.Base(tree) == s.failOn {
		return "", &PhaseError{Phase: "build", LogPath: tree + ".build.log", Err: fmt.Errorf("boom")}
	}
	return s.python, nil
}

type stubCompiler struct {
	failOn    string // short version that fails to compile
	artifacts map[string]string
	hosts     []string
}

func (s *stubCompiler) Compile(ctx context.Context, host Host, spec VersionSpec, inputPath string) (string, error) {
	s.hosts = append(s.hosts, host.Describe())
	if spec.Short == s.failOn {
		return "", &CompileError{Short: spec.Short, Input: inputPath}
	}
	artifact := ArtifactName(inputPath, spec.Short)
	if s.artifacts == nil {
		s.artifacts = make(map[string]string)
	}
	s.artifacts[spec.Short] = artifact
	return artifact, nil
}

type stubImages struct {
	engine *Engine
	built  []string
}

func (s *stubImages) Ensure(ctx context.Context, spec VersionSpec) (string, error) {
	s.built = append(s.built, spec.Short)
	return spec.ImageTag(), nil
}

func (s *stubImages) Engine() *Engine { return s.engine }

func newTestOrchestrator(compiler *stubCompiler, native *stubNative, images *stubImages) *Orchestrator {
	cfg := &Config{WorkRoot: os.TempDir()}
	return &Orchestrator{
		cfg:      cfg,
		registry: NewRegistry(),
		sources:  &stubSources{tree: filepath.Join(cfg.WorkRoot, "tree")},
		native:   native,
		executor: compiler,
		newImages: func() (imageProvider, error) {
			if images == nil {
				return nil, &EngineMissingError{Candidates: engineCandidates}
			}
			return images, nil
		},
	}
}

func TestRunContinuesAfterCompileFailure(t *testing.T) {
	compiler := &stubCompiler{failOn: "3.4"}
	orch := newTestOrchestrator(compiler, &stubNative{python: "python"}, nil)

	results, err := orch.Run(context.Background(), "hello.py", []string{"3.4", "3.8"}, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, "3.4", results[0].Short)
	require.Error(t, results[0].Err)
	require.Equal(t, "3.8", results[1].Short)
	require.NoError(t, results[1].Err)
	require.Equal(t, "hello.3.8.pyc", results[1].Artifact)

	require.True(t, Failed(results))
}

func TestRunAbortsOnToolchainBuildFailure(t *testing.T) {
	// The stub source provider hands every version the same tree, so
	// failing on it aborts the batch at the first build.
	compiler := &stubCompiler{}
	native := &stubNative{python: "python"}
	orch := newTestOrchestrator(compiler, native, nil)

	// First version compiles fine, then builds start failing.
	results, err := orch.Run(context.Background(), "hello.py", []string{"3.8"}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)

	native.failOn = "tree"
	results, err = orch.Run(context.Background(), "hello.py", []string{"3.8", "3.9"}, false)
	var phase *PhaseError
	require.ErrorAs(t, err, &phase)
	require.Empty(t, results)
}

func TestRunUnknownVersionIsFatal(t *testing.T) {
	orch := newTestOrchestrator(&stubCompiler{}, &stubNative{python: "python"}, nil)

	results, err := orch.Run(context.Background(), "hello.py", []string{"9.9"}, false)
	var unknown *UnknownVersionError
	require.ErrorAs(t, err, &unknown)
	require.Empty(t, results)
}

func TestRunSuccessfulResultsSurviveLaterAbort(t *testing.T) {
	compiler := &stubCompiler{}
	native := &stubNative{python: "python"}
	orch := newTestOrchestrator(compiler, native, nil)

	// "9.9" is unknown, so the run aborts after "3.8" already produced
	// its artifact.
	results, err := orch.Run(context.Background(), "hello.py", []string{"3.8", "9.9"}, false)
	require.Error(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.Equal(t, "hello.3.8.pyc", results[0].Artifact)
}

func TestRunContainerUsesOfficialImageWithoutBuilding(t *testing.T) {
	compiler := &stubCompiler{}
	images := &stubImages{engine: &Engine{Name: "docker", Path: "docker"}}
	orch := newTestOrchestrator(compiler, &stubNative{}, images)

	results, err := orch.Run(context.Background(), "hello.py", []string{"3.8"}, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	// Published tag, no private build triggered.
	require.Empty(t, images.built)
	require.Contains(t, compiler.hosts[0], "python:3.8.20")
}

func TestRunContainerFallsBackToPrivateImage(t *testing.T) {
	compiler := &stubCompiler{}
	images := &stubImages{engine: &Engine{Name: "docker", Path: "docker"}}
	orch := newTestOrchestrator(compiler, &stubNative{}, images)

	results, err := orch.Run(context.Background(), "hello.py", []string{"1.2"}, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	require.Equal(t, []string{"1.2"}, images.built)
	require.Contains(t, compiler.hosts[0], "python:1.2")
}

func TestRunContainerWithoutEngineIsFatal(t *testing.T) {
	orch := newTestOrchestrator(&stubCompiler{}, &stubNative{}, nil)

	results, err := orch.Run(context.Background(), "hello.py", []string{"3.8"}, true)
	var missing *EngineMissingError
	require.ErrorAs(t, err, &missing)
	require.Empty(t, results)
}
