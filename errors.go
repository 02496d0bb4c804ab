package pycforge

import (
	"fmt"
	"strings"
)

// UnknownVersionError reports a short version identifier that is absent
// from the registry.
type UnknownVersionError struct {
	Short string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown version %q: not in the release registry", e.Short)
}

// ManualDownloadError reports a release whose license terms forbid
// automatic fetching. Dest names the tarball cache path where the operator
// must place a manually obtained archive.
type ManualDownloadError struct {
	Spec VersionSpec
	Dest string
}

func (e *ManualDownloadError) Error() string {
	return fmt.Sprintf("python %s cannot be downloaded automatically due to its license terms; obtain %s manually and place it at %s",
		e.Spec.Full, e.Spec.TarballName(), e.Dest)
}

// DownloadError reports a failed tarball transfer. The partial file is
// left in the cache so a later attempt can resume it.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError reports a failed tarball extraction.
type ExtractError struct {
	Tarball string
	Err     error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Tarball, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// PatchError reports a version patch that did not apply.
type PatchError struct {
	Patch string
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %s did not apply cleanly: %v", e.Patch, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }

// PhaseError reports a failed build phase (configure, build, or image).
// LogPath names the file holding the phase's combined output.
type PhaseError struct {
	Phase   string
	LogPath string
	Err     error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v (see %s)", e.Phase, e.Err, e.LogPath)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// EngineMissingError reports that no container engine candidate was found
// on PATH.
type EngineMissingError struct {
	Candidates []string
}

func (e *EngineMissingError) Error() string {
	return fmt.Sprintf("no container engine found on PATH (tried %s)", strings.Join(e.Candidates, ", "))
}

// VersionMismatchError reports a native interpreter whose self-reported
// version does not begin with the requested short version. It usually
// means a stale or misconfigured build tree.
type VersionMismatchError struct {
	Want string
	Got  string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("interpreter reports version %q, expected a %s release", e.Got, e.Want)
}

// CompileError reports a compilation attempt that produced no artifact.
type CompileError struct {
	Short string
	Input string
	Err   error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compiling %s with python %s failed: %v", e.Input, e.Short, e.Err)
	}
	return fmt.Sprintf("compiling %s with python %s produced no bytecode artifact", e.Input, e.Short)
}

func (e *CompileError) Unwrap() error { return e.Err }
