package pycforge

import (
	"fmt"
	"sort"
)

// Era classifies a release generation. The era determines the download
// host, the tarball naming convention, and the compile strategy.
type Era int

const (
	// EraAncient covers the oldest generations, published as
	// python<full>.tar.gz on the legacy host.
	EraAncient Era = iota

	// EraLegacy covers the next generations, published as
	// python-<full>.tar.gz on the legacy host.
	EraLegacy

	// EraLicensed covers the release whose license terms forbid
	// automatic downloading; the tarball must be placed manually.
	EraLicensed

	// EraModern covers everything published under the modern host as
	// <full>/Python-<full>.tgz.
	EraModern
)

func (e Era) String() string {
	switch e {
	case EraAncient:
		return "ancient"
	case EraLegacy:
		return "legacy"
	case EraLicensed:
		return "licensed"
	case EraModern:
		return "modern"
	default:
		return fmt.Sprintf("era(%d)", int(e))
	}
}

// ParseEra converts an era name as used in versions.hcl back into an Era.
func ParseEra(name string) (Era, error) {
	switch name {
	case "ancient":
		return EraAncient, nil
	case "legacy":
		return EraLegacy, nil
	case "licensed":
		return EraLicensed, nil
	case "modern":
		return EraModern, nil
	default:
		return 0, fmt.Errorf("unknown era %q (want ancient, legacy, licensed, or modern)", name)
	}
}

const (
	defaultLegacyHost = "https://legacy.python.org/download/releases/src"
	defaultModernHost = "https://www.python.org/ftp/python"
)

// VersionSpec is the immutable classification of one short version
// identifier. It is constructed from the registry table and never mutated.
type VersionSpec struct {
	Short string // two-component identifier, e.g. "3.4"
	Full  string // patch-level release identifier, e.g. "3.4.10"
	Era   Era

	// OfficialImage marks generations with a published python:<full>
	// container image; everything else needs a locally built one.
	OfficialImage bool
}

// TarballName returns the era-appropriate archive file name.
func (s VersionSpec) TarballName() string {
	switch s.Era {
	case EraAncient:
		return "python" + s.Full + ".tar.gz"
	case EraLegacy, EraLicensed:
		return "python-" + s.Full + ".tar.gz"
	default:
		return "Python-" + s.Full + ".tgz"
	}
}

// SourceURL returns the download URL for the release tarball, or an empty
// string for the licensed era, which has no fetchable URL.
func (s VersionSpec) SourceURL(legacyHost, modernHost string) string {
	switch s.Era {
	case EraAncient, EraLegacy:
		return legacyHost + "/" + s.TarballName()
	case EraLicensed:
		return ""
	default:
		return modernHost + "/" + s.Full + "/" + s.TarballName()
	}
}

// TreeName returns the canonical extracted source directory name.
func (s VersionSpec) TreeName() string {
	return "Python-" + s.Full
}

// ImageTag returns the container image tag for this release.
func (s VersionSpec) ImageTag() string {
	return "python:" + s.Full
}

// InstallTarget returns the make target baked into the container image.
// Exactly one generation installs through a different target.
func (s VersionSpec) InstallTarget() string {
	if s.Short == "3.0" {
		// 3.0 only installs the unversioned binary via fullinstall.
		return "fullinstall"
	}
	return "install"
}

// Registry maps short version identifiers to their release classification.
//
// The builtin table covers every generation from 0.9 through 3.13. Entries
// can be added or overridden from a versions.hcl file; see LoadOverrides.
//
// Classify never performs I/O and is safe for concurrent readers once all
// overrides are loaded.
type Registry struct {
	specs map[string]VersionSpec
}

// NewRegistry returns a registry populated with the builtin release table.
func NewRegistry() *Registry {
	r := &Registry{specs: make(map[string]VersionSpec, len(builtinReleases))}
	for _, s := range builtinReleases {
		r.specs[s.Short] = s
	}
	return r
}

// Classify resolves a short version identifier to its release spec.
func (r *Registry) Classify(short string) (VersionSpec, error) {
	spec, ok := r.specs[short]
	if !ok {
		return VersionSpec{}, &UnknownVersionError{Short: short}
	}
	return spec, nil
}

// Shorts returns every known short identifier in sorted order.
func (r *Registry) Shorts() []string {
	shorts := make([]string, 0, len(r.specs))
	for short := range r.specs {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)
	return shorts
}

// builtinReleases is the static release table. The ancient and legacy
// entries use the last release still hosted under the historical naming
// convention; modern entries use the final patch release of each
// generation.
var builtinReleases = []VersionSpec{
	{Short: "0.9", Full: "0.9.1", Era: EraAncient},
	{Short: "1.0", Full: "1.0.1", Era: EraAncient},
	{Short: "1.1", Full: "1.1", Era: EraLegacy},
	{Short: "1.2", Full: "1.2", Era: EraLegacy},
	{Short: "1.3", Full: "1.3", Era: EraLegacy},
	{Short: "1.4", Full: "1.4", Era: EraModern},
	{Short: "1.5", Full: "1.5.2", Era: EraModern},
	{Short: "1.6", Full: "1.6.1", Era: EraLicensed},
	{Short: "2.0", Full: "2.0.1", Era: EraModern},
	{Short: "2.1", Full: "2.1.3", Era: EraModern},
	{Short: "2.2", Full: "2.2.3", Era: EraModern},
	{Short: "2.3", Full: "2.3.7", Era: EraModern},
	{Short: "2.4", Full: "2.4.6", Era: EraModern},
	{Short: "2.5", Full: "2.5.6", Era: EraModern},
	{Short: "2.6", Full: "2.6.9", Era: EraModern},
	{Short: "2.7", Full: "2.7.18", Era: EraModern, OfficialImage: true},
	{Short: "3.0", Full: "3.0.1", Era: EraModern},
	{Short: "3.1", Full: "3.1.5", Era: EraModern},
	{Short: "3.2", Full: "3.2.6", Era: EraModern, OfficialImage: true},
	{Short: "3.3", Full: "3.3.7", Era: EraModern, OfficialImage: true},
	{Short: "3.4", Full: "3.4.10", Era: EraModern, OfficialImage: true},
	{Short: "3.5", Full: "3.5.10", Era: EraModern, OfficialImage: true},
	{Short: "3.6", Full: "3.6.15", Era: EraModern, OfficialImage: true},
	{Short: "3.7", Full: "3.7.17", Era: EraModern, OfficialImage: true},
	{Short: "3.8", Full: "3.8.20", Era: EraModern, OfficialImage: true},
	{Short: "3.9", Full: "3.9.20", Era: EraModern, OfficialImage: true},
	{Short: "3.10", Full: "3.10.15", Era: EraModern, OfficialImage: true},
	{Short: "3.11", Full: "3.11.10", Era: EraModern, OfficialImage: true},
	{Short: "3.12", Full: "3.12.7", Era: EraModern, OfficialImage: true},
	{Short: "3.13", Full: "3.13.0", Era: EraModern, OfficialImage: true},
}
