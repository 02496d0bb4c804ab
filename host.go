package pycforge

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// Host runs interpreter code on a ready toolchain. The executor is
// written once against this interface; native processes and containerized
// ones must be indistinguishable to it.
type Host interface {
	// Describe identifies the host for messages and logs.
	Describe() string

	// Run executes `python -c code` with the given host directory as
	// the working directory.
	Run(ctx context.Context, workdir string, code string) error

	// Path translates an absolute host path into the path the
	// interpreter sees. Native hosts return it unchanged; container
	// hosts map it into a mounted location.
	Path(hostPath string) (string, error)
}

// versionChecker is implemented by hosts that can verify the toolchain's
// self-reported version before first use.
type versionChecker interface {
	VerifyVersion(ctx context.Context, short string) error
}

type nativeHost struct {
	python   string
	verified bool
}

// NewNativeHost wraps a built interpreter executable.
func NewNativeHost(python string) Host {
	return &nativeHost{python: python}
}

func (h *nativeHost) Describe() string {
	return "native " + h.python
}

func (h *nativeHost) Run(ctx context.Context, workdir string, code string) error {
	cmd := exec.CommandContext(ctx, h.python, "-c", code)
	cmd.Dir = workdir
	if out, err := cmd.CombinedOutput(); err != nil {
		return wrapOutput(err, out)
	}
	return nil
}

func (h *nativeHost) Path(hostPath string) (string, error) {
	return filepath.Abs(hostPath)
}

// VerifyVersion checks that the interpreter reports a version beginning
// with the requested short version, catching a misbuilt or shadowed tree.
// The check runs once per host.
//
// Container hosts deliberately have no equivalent: an image tagged with
// the full release identifier cannot drift the way a reused build tree
// can.
func (h *nativeHost) VerifyVersion(ctx context.Context, short string) error {
	if h.verified {
		return nil
	}

	// Old interpreters print the version banner on stderr.
	out, _ := exec.CommandContext(ctx, h.python, "-V").CombinedOutput()
	got := strings.TrimPrefix(strings.TrimSpace(string(out)), "Python ")
	if !strings.HasPrefix(got, short) {
		return &VersionMismatchError{Want: short, Got: got}
	}

	h.verified = true
	return nil
}

const (
	containerInputMount  = "/src"
	containerOutputMount = "/out"
)

type containerHost struct {
	engine   *Engine
	image    string
	inputDir string // host dir mounted at /src
	outDir   string // host dir mounted at /out
}

// NewContainerHost wraps an interpreter image. The input file's directory
// and the artifact output directory are mounted into every run, and the
// engine's identity flags keep written files owned by the invoking
// operator.
func NewContainerHost(engine *Engine, image, inputDir, outDir string) (Host, error) {
	absIn, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, err
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, err
	}
	return &containerHost{engine: engine, image: image, inputDir: absIn, outDir: absOut}, nil
}

func (h *containerHost) Describe() string {
	return fmt.Sprintf("%s image %s", h.engine.Name, h.image)
}

func (h *containerHost) Run(ctx context.Context, workdir string, code string) error {
	mappedDir, err := h.Path(workdir)
	if err != nil {
		return err
	}

	args := h.engine.RunArgs(
		"-v", h.inputDir+":"+containerInputMount,
		"-v", h.outDir+":"+containerOutputMount,
		"-w", mappedDir,
		h.image,
		"python", "-c", code,
	)

	cmd := exec.CommandContext(ctx, h.engine.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return wrapOutput(err, out)
	}
	return nil
}

func (h *containerHost) Path(hostPath string) (string, error) {
	abs, err := filepath.Abs(hostPath)
	if err != nil {
		return "", err
	}

	// The input mount shadows the output mount when both cover the path.
	for _, mount := range []struct{ host, guest string }{
		{h.inputDir, containerInputMount},
		{h.outDir, containerOutputMount},
	} {
		rel, err := filepath.Rel(mount.host, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return path.Join(mount.guest, filepath.ToSlash(rel)), nil
	}

	return "", fmt.Errorf("path %s is outside the mounted directories", hostPath)
}
