package pycforge

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolRequirement describes a system tool the pipeline shells out to.
//
// A requirement is satisfied by the primary name or any of its
// alternatives being on PATH. Optional tools are reported but never fail
// a check.
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "curl", "make").
	Name string

	// Alternatives are other binary names that satisfy this requirement.
	// Example: []string{"gmake", "bmake"} for make.
	Alternatives []string

	// Optional marks tools whose absence only degrades functionality.
	Optional bool

	// Purpose is a human-readable reason the tool is needed.
	Purpose string
}

// AcquireTools lists the tools SourceAcquisition shells out to.
func AcquireTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "curl", Purpose: "resumable tarball downloads"},
		{Name: "tar", Purpose: "tarball extraction"},
		{Name: "patch", Optional: true, Purpose: "version-specific source patches"},
	}
}

// NativeBuildTools lists the tools a native interpreter build needs.
func NativeBuildTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "make", Alternatives: []string{"gmake"}, Purpose: "build automation tool"},
		{Name: "cc", Alternatives: []string{"gcc", "clang"}, Purpose: "C compiler"},
	}
}

// CheckToolAvailable checks if a tool is available in the system PATH.
func CheckToolAvailable(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies a set of tool requirements, trying each
// requirement's primary name first and its alternatives in order. All
// missing required tools are reported in a single error.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil

		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missing = append(missing, req.Name)
			}
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s not found in PATH", missing[0])
	default:
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
}
