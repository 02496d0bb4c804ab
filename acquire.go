package pycforge

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Acquirer fetches and materializes release source trees.
//
// Ensure is idempotent on the extracted tree directory: once the directory
// exists it is trusted as-is and no network or disk I/O happens. Tarballs
// are cached under <WorkRoot>/tarballs and shared across runs, and a
// partially transferred tarball is resumed rather than restarted.
type Acquirer struct {
	cfg *Config
}

// NewAcquirer creates an acquirer over the given configuration.
func NewAcquirer(cfg *Config) *Acquirer {
	return &Acquirer{cfg: cfg}
}

// Ensure makes the source tree for a release available on disk and
// returns its path. On a cache hit this touches nothing.
//
// For the licensed era no fetch is attempted; the returned
// ManualDownloadError names the cache path where the operator must place
// the archive. Once placed there, Ensure proceeds with extraction like any
// other era.
func (a *Acquirer) Ensure(ctx context.Context, spec VersionSpec) (string, error) {
	tree := filepath.Join(a.cfg.workRoot(), spec.TreeName())
	if dirExists(tree) {
		return tree, nil
	}

	tarball, err := a.ensureTarball(ctx, spec)
	if err != nil {
		return "", err
	}

	if err := a.extract(ctx, tarball); err != nil {
		return "", err
	}

	if err := a.renameToCanonical(spec, tree); err != nil {
		return "", err
	}

	if err := a.applyPatch(ctx, spec, tree); err != nil {
		return "", err
	}

	return tree, nil
}

// ensureTarball returns the cached tarball path, downloading it first when
// absent.
func (a *Acquirer) ensureTarball(ctx context.Context, spec VersionSpec) (string, error) {
	if err := os.MkdirAll(a.cfg.tarballDir(), 0o755); err != nil {
		return "", err
	}

	cached := filepath.Join(a.cfg.tarballDir(), spec.TarballName())
	if fileExists(cached) {
		return cached, nil
	}

	if spec.Era == EraLicensed {
		return "", &ManualDownloadError{Spec: spec, Dest: cached}
	}

	url := spec.SourceURL(a.cfg.legacyHost(), a.cfg.modernHost())
	a.cfg.logger().Info("downloading release tarball", "version", spec.Full, "url", url)

	// -C - resumes a partial transfer; -f turns HTTP errors into a
	// nonzero exit instead of saving the error page.
	cmd := exec.CommandContext(ctx, "curl", "-fL", "-C", "-", "-o", cached, url)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}

	return cached, nil
}

// extract unpacks a tarball into the work root.
func (a *Acquirer) extract(ctx context.Context, tarball string) error {
	abs, err := filepath.Abs(tarball)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "tar", "-xzf", abs)
	cmd.Dir = a.cfg.workRoot()
	if out, err := cmd.CombinedOutput(); err != nil {
		return &ExtractError{Tarball: tarball, Err: wrapOutput(err, out)}
	}
	return nil
}

// renameToCanonical fixes up archives whose top-level member is
// lower-cased relative to the canonical Python-<full> tree name.
//
// On case-insensitive filesystems both names already resolve to the same
// directory, so the rename is guarded with SameFile to avoid renaming a
// directory onto itself.
func (a *Acquirer) renameToCanonical(spec VersionSpec, tree string) error {
	lower := filepath.Join(a.cfg.workRoot(), strings.ToLower(spec.TreeName()))
	if lower == tree {
		return nil
	}

	lowerInfo, err := os.Stat(lower)
	if err != nil {
		return nil // nothing to rename
	}
	if treeInfo, err := os.Stat(tree); err == nil && os.SameFile(lowerInfo, treeInfo) {
		return nil
	}

	return os.Rename(lower, tree)
}

// applyPatch applies the version patch from the patch directory, if one
// exists.
func (a *Acquirer) applyPatch(ctx context.Context, spec VersionSpec, tree string) error {
	patch := filepath.Join(a.cfg.patchDir(), spec.TreeName()+".patch")
	if !fileExists(patch) {
		return nil
	}

	abs, err := filepath.Abs(patch)
	if err != nil {
		return err
	}

	a.cfg.logger().Info("applying source patch", "version", spec.Full, "patch", patch)

	cmd := exec.CommandContext(ctx, "patch", "-p1", "-i", abs)
	cmd.Dir = tree
	if out, err := cmd.CombinedOutput(); err != nil {
		return &PatchError{Patch: patch, Err: wrapOutput(err, out)}
	}
	return nil
}
