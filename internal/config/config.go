// Package config loads the harness configuration file (HCL): the target
// environment flags, the runtime connection block, and the suite discovery
// groups.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultSuiteFilename is searched for when a suite group is recursive and
// names no explicit filename.
const DefaultSuiteFilename = "tests.txt"

// Model is the decoded harness configuration.
type Model struct {
	Workers     int
	Environment Environment
	Runtime     *Runtime
	Suites      []*SuiteGroup
}

// Environment mirrors the two eligibility axes of the target runtime.
type Environment struct {
	Is3D              bool
	UsesCodeGenerator bool
}

// Runtime describes how to reach the interpreter under test. Type selects a
// registered factory ("socketio", "http"); the remaining fields are
// connection options shared by the transports.
type Runtime struct {
	Type               string
	URL                string
	Namespace          string
	Timeout            string
	InsecureSkipVerify bool
}

// SuiteGroup is one discovery group: either all .txt files directly in Path,
// or a recursive search for files named Filename under Path.
type SuiteGroup struct {
	Name      string
	Path      string
	Recursive bool
	Filename  string
}

type hclFile struct {
	Workers     *int            `hcl:"workers,optional"`
	Environment *hclEnvironment `hcl:"environment,block"`
	Runtime     *hclRuntime     `hcl:"runtime,block"`
	Suites      []*hclSuite     `hcl:"suite,block"`
}

type hclEnvironment struct {
	Is3D          *bool `hcl:"is_3d,optional"`
	CodeGenerator *bool `hcl:"code_generator,optional"`
}

type hclRuntime struct {
	Type               string  `hcl:"type,label"`
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Timeout            *string `hcl:"timeout,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}

type hclSuite struct {
	Name      string  `hcl:"name,label"`
	Path      string  `hcl:"path"`
	Recursive *bool   `hcl:"recursive,optional"`
	Filename  *string `hcl:"filename,optional"`
}

// Load parses and validates one harness configuration file.
func Load(path string) (*Model, error) {
	parser := hclparse.NewParser()
	hclF, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(hclF.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	return fromHCL(&parsed)
}

func fromHCL(parsed *hclFile) (*Model, error) {
	m := &Model{Workers: 4}
	if parsed.Workers != nil {
		if *parsed.Workers < 1 {
			return nil, fmt.Errorf("workers must be at least 1, got %d", *parsed.Workers)
		}
		m.Workers = *parsed.Workers
	}

	if parsed.Environment != nil {
		if parsed.Environment.Is3D != nil {
			m.Environment.Is3D = *parsed.Environment.Is3D
		}
		if parsed.Environment.CodeGenerator != nil {
			m.Environment.UsesCodeGenerator = *parsed.Environment.CodeGenerator
		}
	}

	if parsed.Runtime != nil {
		rt := &Runtime{
			Type: parsed.Runtime.Type,
			URL:  parsed.Runtime.URL,
		}
		if parsed.Runtime.Namespace != nil {
			rt.Namespace = *parsed.Runtime.Namespace
		}
		if parsed.Runtime.Timeout != nil {
			rt.Timeout = *parsed.Runtime.Timeout
		}
		if parsed.Runtime.InsecureSkipVerify != nil {
			rt.InsecureSkipVerify = *parsed.Runtime.InsecureSkipVerify
		}
		m.Runtime = rt
	}

	for _, s := range parsed.Suites {
		if s.Path == "" {
			return nil, fmt.Errorf("suite %q: path is required", s.Name)
		}
		group := &SuiteGroup{
			Name:     s.Name,
			Path:     s.Path,
			Filename: DefaultSuiteFilename,
		}
		if s.Recursive != nil {
			group.Recursive = *s.Recursive
		}
		if s.Filename != nil {
			group.Filename = *s.Filename
		}
		m.Suites = append(m.Suites, group)
	}

	return m, nil
}
