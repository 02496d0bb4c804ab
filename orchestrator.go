package pycforge

import (
	"context"
	"path/filepath"
)

// sourceProvider yields an extracted source tree for a release.
type sourceProvider interface {
	Ensure(ctx context.Context, spec VersionSpec) (string, error)
}

// interpreterProvider yields a runnable interpreter from a source tree.
type interpreterProvider interface {
	Ensure(ctx context.Context, tree string) (string, error)
}

// imageProvider yields a container image tag for a release.
type imageProvider interface {
	Ensure(ctx context.Context, spec VersionSpec) (string, error)
	Engine() *Engine
}

// compiler produces the artifact for one version on a ready host.
type compiler interface {
	Compile(ctx context.Context, host Host, spec VersionSpec, inputPath string) (string, error)
}

// Orchestrator runs the full pipeline for a batch of requested versions.
//
// Versions are processed strictly one at a time. A failure while
// acquiring or building a toolchain aborts the whole run, since a missing
// toolchain usually means a systemic misconfiguration. A failure while
// compiling against an already-working toolchain is recorded for that
// version only and the batch continues; the caller decides the overall
// outcome from the result list (see Failed).
type Orchestrator struct {
	cfg      *Config
	registry *Registry
	sources  sourceProvider
	native   interpreterProvider
	executor compiler

	// newImages defers container engine discovery until a container run
	// is actually requested.
	newImages func() (imageProvider, error)
}

// NewOrchestrator wires the full pipeline over one configuration.
func NewOrchestrator(cfg *Config) *Orchestrator {
	acquirer := NewAcquirer(cfg)
	return &Orchestrator{
		cfg:      cfg,
		registry: NewRegistry(),
		sources:  acquirer,
		native:   NewNativeBuilder(cfg),
		executor: NewExecutor(cfg),
		newImages: func() (imageProvider, error) {
			engine, err := FindEngine()
			if err != nil {
				return nil, err
			}
			return NewContainerBuilder(cfg, engine, acquirer), nil
		},
	}
}

// LoadVersionOverrides merges a versions.hcl file into the registry. A
// missing file is a no-op.
func (o *Orchestrator) LoadVersionOverrides(path string) error {
	return o.registry.LoadOverrides(path)
}

// Preflight verifies the system tools a run will shell out to, so a
// missing tool surfaces before any download or build starts. With
// containers only the engine is needed; natively the acquisition and
// build tools are.
func (o *Orchestrator) Preflight(useContainers bool) error {
	if useContainers {
		_, err := FindEngine()
		return err
	}
	if err := CheckRequiredTools(AcquireTools()); err != nil {
		return err
	}
	return CheckRequiredTools(NativeBuildTools())
}

// Run compiles the input file once per requested short version.
//
// The returned error is non-nil only for fatal conditions (unknown
// version, missing container engine, toolchain acquisition or build
// failure); results for versions processed before the abort are still
// returned, and their artifacts remain on disk. Per-version compile
// failures live in the results instead.
func (o *Orchestrator) Run(ctx context.Context, inputPath string, shorts []string, useContainers bool) ([]VersionResult, error) {
	var results []VersionResult
	var images imageProvider

	for _, short := range shorts {
		spec, err := o.registry.Classify(short)
		if err != nil {
			return results, err
		}

		var host Host
		if useContainers {
			if images == nil {
				if images, err = o.newImages(); err != nil {
					return results, err
				}
			}
			host, err = o.provisionContainer(ctx, images, spec, inputPath)
		} else {
			host, err = o.provisionNative(ctx, spec)
		}
		if err != nil {
			// Toolchain-level failure; abort the whole batch.
			return results, err
		}

		artifact, err := o.executor.Compile(ctx, host, spec, inputPath)
		if err != nil {
			o.cfg.logger().Error("version failed", "version", short, "error", err)
			results = append(results, VersionResult{Short: short, Err: err})
			continue
		}

		o.cfg.logger().Info("artifact written", "version", short, "artifact", artifact)
		results = append(results, VersionResult{Short: short, Artifact: artifact})
	}

	return results, nil
}

// provisionNative acquires and builds the release natively.
func (o *Orchestrator) provisionNative(ctx context.Context, spec VersionSpec) (Host, error) {
	tree, err := o.sources.Ensure(ctx, spec)
	if err != nil {
		return nil, err
	}
	python, err := o.native.Ensure(ctx, tree)
	if err != nil {
		return nil, err
	}
	return NewNativeHost(python), nil
}

// provisionContainer resolves the image for the release: the published tag
// when one exists, otherwise a locally built private image.
func (o *Orchestrator) provisionContainer(ctx context.Context, images imageProvider, spec VersionSpec, inputPath string) (Host, error) {
	tag := spec.ImageTag()
	if !spec.OfficialImage {
		o.cfg.logger().Warn("no official image published for this version, building a private one",
			"version", spec.Short, "tag", tag)
		var err error
		if tag, err = images.Ensure(ctx, spec); err != nil {
			return nil, err
		}
	}
	return NewContainerHost(images.Engine(), tag, filepath.Dir(inputPath), o.cfg.outputDir())
}
