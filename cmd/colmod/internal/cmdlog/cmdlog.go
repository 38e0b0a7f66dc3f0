// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package cmdlog holds the reports and templates used by the colmod commands.
package cmdlog

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/modify"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

var (
	// ColorTemplateFuncs are globally available functions to color strings in a report template.
	ColorTemplateFuncs = template.FuncMap{
		"cyan":   color.CyanString,
		"green":  color.HiGreenString,
		"red":    color.HiRedString,
		"yellow": color.YellowString,
	}

	// ModifyTemplateFuncs are global functions available in modify report templates.
	ModifyTemplateFuncs = merge(template.FuncMap{
		"json": jsonEncode,
		"yaml": yamlEncode,
	}, ColorTemplateFuncs)

	// ModifyTemplate holds the default template of the 'modify' command.
	ModifyTemplate = template.Must(template.New("report").Funcs(ModifyTemplateFuncs).Parse(`{{- range .Errors }}{{ red "Error:" }} {{ . }}
{{ end }}
{{- range .Warnings }}{{ yellow "Warning:" }} {{ . }}
{{ end }}
{{- range .Stmts }}{{ . }};
{{ end }}`))

	// ModifyJSONTemplate formats the 'modify' report as JSON.
	ModifyJSONTemplate = template.Must(template.New("report").Funcs(ModifyTemplateFuncs).Parse(`{{ json . "  " }}
`))

	// ModifyYAMLTemplate formats the 'modify' report as YAML.
	ModifyYAMLTemplate = template.Must(template.New("report").Funcs(ModifyTemplateFuncs).Parse(`{{ yaml . }}`))

	// WarningsTemplate prints a list of warnings.
	WarningsTemplate = template.Must(template.New("warnings").Funcs(ColorTemplateFuncs).Parse(`{{- range . }}{{ yellow "Warning:" }} {{ . }}
{{ end }}`))

	// FilesTemplate prints the migration files of a plan, each preceded by its name.
	FilesTemplate = template.Must(template.New("files").Funcs(ColorTemplateFuncs).Parse(`{{- range $i, $f := . }}{{ if $i }}
{{ end }}{{ cyan "--" }} {{ cyan $f.Name }}
{{ printf "%s" $f.Bytes }}{{ end }}`))

	// WrittenTemplate prints the names of the files written to a migration directory.
	WrittenTemplate = template.Must(template.New("written").Funcs(ColorTemplateFuncs).Parse(`{{- range . }}{{ green "Created" }} {{ .Name }}
{{ end }}`))

	// VersionTemplate holds the default template of the 'version' command.
	VersionTemplate = template.Must(template.New("version").Funcs(ColorTemplateFuncs).Parse(`colmod version {{ with .Version }}{{ . }}{{ else }}(development){{ end }}
{{- if .Prerelease }} {{ yellow "(pre-release)" }}{{ end }}
{{ .Go }} {{ .Platform }}
`))

	// VersionJSONTemplate formats the version information as JSON.
	VersionJSONTemplate = template.Must(template.New("version").Funcs(ModifyTemplateFuncs).Parse(`{{ json . }}
`))

	// DialectsTemplate holds the default template of the 'dialects' command.
	DialectsTemplate = template.Must(template.New("dialects").Funcs(template.FuncMap{"table": dialectsTable}).Parse("{{ table . }}"))
)

type (
	// ModifyReport contains a summary of a 'modify' command run.
	ModifyReport struct {
		Dialect  string   `json:"Dialect" yaml:"dialect"`
		Schema   string   `json:"Schema,omitempty" yaml:"schema,omitempty"`
		Table    string   `json:"Table" yaml:"table"`
		Stmts    []string `json:"Stmts,omitempty" yaml:"stmts,omitempty"`
		Warnings []string `json:"Warnings,omitempty" yaml:"warnings,omitempty"`
		Errors   []string `json:"Errors,omitempty" yaml:"errors,omitempty"`
		// Message is the confirmation message of the change.
		Message string `json:"Message,omitempty" yaml:"message,omitempty"`
	}

	// VersionInfo describes the colmod binary. An empty Version
	// stands for a development build.
	VersionInfo struct {
		Version    string `json:"Version,omitempty"`
		Prerelease bool   `json:"Prerelease,omitempty"`
		Go         string `json:"Go"`
		Platform   string `json:"Platform"`
	}

	// DialectRow describes the capabilities of a single dialect.
	DialectRow struct {
		Dialect dialect.Dialect
		Caps    modify.Caps
	}
)

// NewModifyReport returns a ModifyReport for the given validation errors and warnings.
func NewModifyReport(d dialect.Dialect, schema, table string, errs modify.ValidationErrors, ws []modify.Warning) *ModifyReport {
	r := &ModifyReport{Dialect: d.ShortName(), Schema: schema, Table: table}
	for _, e := range errs {
		r.Errors = append(r.Errors, e.Message)
	}
	for _, w := range ws {
		r.Warnings = append(r.Warnings, w.Message)
	}
	return r
}

// NewDialectRows returns the capability rows of all dialects.
func NewDialectRows() []DialectRow {
	all := dialect.All()
	rows := make([]DialectRow, len(all))
	for i, d := range all {
		rows[i] = DialectRow{Dialect: d, Caps: modify.CapsOf(d)}
	}
	return rows
}

func dialectsTable(rows []DialectRow) (string, error) {
	var buf strings.Builder
	tbl := tablewriter.NewWriter(&buf)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetHeader([]string{
		"Dialect",
		"Short Name",
		"Keyword",
		"Pre Type",
		"Post Type",
		"Extra",
		"Transactional",
	})
	for _, r := range rows {
		tbl.Append([]string{
			r.Dialect.String(),
			r.Dialect.ShortName(),
			r.Caps.Keyword,
			fmt.Sprintf("%q", r.Caps.PreType),
			fmt.Sprintf("%q", r.Caps.PostType),
			fmt.Sprint(r.Caps.Extra),
			fmt.Sprint(r.Dialect.Transactional()),
		})
	}
	tbl.Render()
	return buf.String(), nil
}

func merge(maps ...template.FuncMap) template.FuncMap {
	switch len(maps) {
	case 0:
		return nil
	case 1:
		return maps[0]
	default:
		m := maps[0]
		for _, e := range maps[1:] {
			for k, v := range e {
				m[k] = v
			}
		}
		return m
	}
}

func jsonEncode(v any, args ...string) (string, error) {
	var (
		b   []byte
		err error
	)
	switch len(args) {
	case 0:
		b, err = json.Marshal(v)
	case 1:
		b, err = json.MarshalIndent(v, "", args[0])
	default:
		b, err = json.MarshalIndent(v, args[0], args[1])
	}
	return string(b), err
}

func yamlEncode(v any) (string, error) {
	b, err := yaml.Marshal(v)
	return string(b), err
}
