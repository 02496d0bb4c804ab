package pycforge

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// versionsFile is the HCL schema for a registry override file:
//
//	version "3.14" {
//	  full           = "3.14.0"
//	  era            = "modern"
//	  official_image = true
//	}
type versionsFile struct {
	Versions []versionBlock `hcl:"version,block"`
}

type versionBlock struct {
	Short         string `hcl:"short,label"`
	Full          string `hcl:"full"`
	Era           string `hcl:"era"`
	OfficialImage bool   `hcl:"official_image,optional"`
}

// LoadOverrides merges release entries from an HCL file over the builtin
// table. Entries with a known short identifier replace the builtin entry;
// new identifiers extend the registry.
//
// A missing file is not an error, so callers can always point at the
// conventional versions.hcl location. A file that exists but does not
// parse or names an unknown era is.
func (r *Registry) LoadOverrides(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var file versionsFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	for _, block := range file.Versions {
		era, err := ParseEra(block.Era)
		if err != nil {
			return fmt.Errorf("version %q in %s: %w", block.Short, path, err)
		}
		if block.Full == "" {
			return fmt.Errorf("version %q in %s: full release identifier is required", block.Short, path)
		}
		r.specs[block.Short] = VersionSpec{
			Short:         block.Short,
			Full:          block.Full,
			Era:           era,
			OfficialImage: block.OfficialImage,
		}
	}

	return nil
}
