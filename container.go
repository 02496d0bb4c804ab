package pycforge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// engineCandidates is the ordered preference list for container engine
// discovery.
var engineCandidates = []string{"podman", "docker"}

// Engine is a discovered container engine binary plus the invocation
// flags its kind needs so files written into mounted directories end up
// owned by the invoking operator instead of a container-internal identity.
// The flags are resolved once at discovery and applied to every run.
type Engine struct {
	Name string // binary name, e.g. "podman"
	Path string // resolved absolute path

	identityFlags []string
}

// FindEngine locates a container engine on PATH, trying candidates in
// preference order.
func FindEngine() (*Engine, error) {
	for _, name := range engineCandidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		return &Engine{
			Name:          name,
			Path:          path,
			identityFlags: identityFlagsFor(name),
		}, nil
	}
	return nil, &EngineMissingError{Candidates: engineCandidates}
}

// identityFlagsFor returns the per-engine run flags that map the container
// user onto the invoking operator.
func identityFlagsFor(name string) []string {
	switch name {
	case "podman":
		// Rootless podman remaps the host user to root in the
		// container; keep-id preserves the host uid/gid instead.
		return []string{"--userns=keep-id"}
	default:
		return []string{"--user", fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())}
	}
}

// RunArgs prepends the engine's run subcommand and identity flags to the
// given arguments.
func (e *Engine) RunArgs(args ...string) []string {
	out := append([]string{"run", "--rm"}, e.identityFlags...)
	return append(out, args...)
}

// ContainerBuilder materializes interpreter toolchains as container
// images, as an alternative to building natively.
//
// Ensure is idempotent on the local presence of the python:<full> image
// tag. On a miss it acquires the release source and builds an image from
// the shared Dockerfile, passing the release identifier and the
// era-appropriate install target as build arguments. The extracted source
// tree is deleted after a successful image build since it only exists to
// be copied into the image layer.
type ContainerBuilder struct {
	cfg     *Config
	engine  *Engine
	sources sourceProvider
}

// NewContainerBuilder creates a builder using the given engine and source
// provider.
func NewContainerBuilder(cfg *Config, engine *Engine, sources sourceProvider) *ContainerBuilder {
	return &ContainerBuilder{cfg: cfg, engine: engine, sources: sources}
}

// Engine returns the container engine this builder drives.
func (b *ContainerBuilder) Engine() *Engine { return b.engine }

// Ensure makes the image for a release available locally and returns its
// tag.
func (b *ContainerBuilder) Ensure(ctx context.Context, spec VersionSpec) (string, error) {
	tag := spec.ImageTag()
	if b.imageExists(ctx, tag) {
		return tag, nil
	}

	tree, err := b.sources.Ensure(ctx, spec)
	if err != nil {
		return "", err
	}

	b.cfg.logger().Info("building interpreter image", "version", spec.Full, "tag", tag, "engine", b.engine.Name)

	imageLog := tree + ".image.log"
	err = runLogged(ctx, b.cfg.workRoot(), imageLog, b.engine.Path,
		"build",
		"-f", b.cfg.dockerfile(),
		"--build-arg", "python_version="+spec.Full,
		"--build-arg", "install_target="+spec.InstallTarget(),
		"-t", tag,
		".",
	)
	if err != nil {
		return "", &PhaseError{Phase: "image", LogPath: imageLog, Err: err}
	}

	// The source only existed to be baked into the image layer.
	if err := os.RemoveAll(tree); err != nil {
		b.cfg.logger().Warn("could not remove source tree after image build", "tree", tree, "error", err)
	}

	return tag, nil
}

// imageExists reports whether the tag resolves locally.
func (b *ContainerBuilder) imageExists(ctx context.Context, tag string) bool {
	cmd := exec.CommandContext(ctx, b.engine.Path, "image", "inspect", tag)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
