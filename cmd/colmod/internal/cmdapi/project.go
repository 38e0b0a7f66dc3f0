// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const projectFileName = "file://colmod.hcl"

// Quoting modes of an environment.
const (
	quoteAll    = "all"
	quoteNeeded = "needed"
)

type (
	// Project represents a colmod.hcl project file.
	Project struct {
		Envs []*Env // List of environments
	}

	// Env represents a colmod environment.
	Env struct {
		// Name for this environment.
		Name string `hcl:"name,label"`

		// URL of the database. Only its scheme is used
		// for resolving the dialect.
		URL string `hcl:"url,optional"`

		// Dialect name. Takes precedence over the URL.
		Dialect string `hcl:"dialect,optional"`

		// Version of the database server.
		Version string `hcl:"version,optional"`

		// Format of the command output.
		Format string `hcl:"format,optional"`

		// Dir is the URL of the migration directory the files are written to.
		Dir string `hcl:"dir,optional"`

		// Quote configures identifier quoting. Either "all" or "needed".
		Quote string `hcl:"quote,optional"`
	}

	// variable is a project input variable with an optional default value.
	variable struct {
		Name    string    `hcl:"name,label"`
		Default cty.Value `hcl:"default,optional"`
	}
)

// LoadEnv reads the project file in path, and loads the environment
// with the provided name. Input values are exposed to the file as
// "var.<name>", and override the defaults of "variable" blocks.
func LoadEnv(path, name string, values map[string]cty.Value) (*Env, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("project file %q was not found: %w", path, err)
		}
		return nil, err
	}
	project, err := parseConfig(path, name, values)
	if err != nil {
		return nil, err
	}
	envs := make(map[string]*Env)
	for _, e := range project.Envs {
		if _, ok := envs[e.Name]; ok {
			return nil, fmt.Errorf("duplicate environment name %q", e.Name)
		}
		switch e.Quote {
		case "", quoteAll, quoteNeeded:
		default:
			return nil, fmt.Errorf("env %q: unexpected quote mode %q", e.Name, e.Quote)
		}
		envs[e.Name] = e
	}
	selected, ok := envs[name]
	if !ok {
		return nil, fmt.Errorf("env %q not defined in project file", name)
	}
	return selected, nil
}

// projectPath returns the local path of the project file URL.
func projectPath(u string) (string, error) {
	if u == "" {
		u = projectFileName
	}
	return filePath(u, "project file")
}

// filePath returns the local path of a "file://" URL.
func filePath(u, kind string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("unsupported %s driver %q", kind, parsed.Scheme)
	}
	return filepath.Join(parsed.Host, parsed.Path), nil
}

func parseConfig(path, env string, values map[string]cty.Value) (*Project, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	var head struct {
		Vars   []*variable `hcl:"variable,block"`
		Remain hcl.Body    `hcl:",remain"`
	}
	if diags := gohcl.DecodeBody(f.Body, nil, &head); diags.HasErrors() {
		return nil, diags
	}
	vars := make(map[string]cty.Value, len(head.Vars)+len(values))
	for _, v := range head.Vars {
		if _, ok := vars[v.Name]; ok {
			return nil, fmt.Errorf("duplicate variable %q", v.Name)
		}
		vars[v.Name] = v.Default
	}
	for k, v := range values {
		vars[k] = v
	}
	for k, v := range vars {
		if v.IsNull() {
			return nil, fmt.Errorf("missing value for variable %q", k)
		}
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
			"colmod": cty.ObjectVal(map[string]cty.Value{
				"env": cty.StringVal(env),
			}),
		},
	}
	var body struct {
		Envs []*Env `hcl:"env,block"`
	}
	if diags := gohcl.DecodeBody(head.Remain, ctx, &body); diags.HasErrors() {
		return nil, diags
	}
	for _, e := range body.Envs {
		if e.Name == "" {
			return nil, errors.New("all envs must have names")
		}
	}
	return &Project{Envs: body.Envs}, nil
}
