// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package migrate

import (
	"fmt"
	"sort"
	"text/template"
	"time"
)

var (
	// now is replaced in tests.
	now = time.Now

	// funcs contains the template.FuncMap for the different formatters.
	funcs = template.FuncMap{
		"inc": func(x int) int { return x + 1 },
		// now formats the current time in a lexicographically ascending order while maintaining human readability.
		"now": func() string { return now().UTC().Format("20060102150405") },
		"rev": reverse,
	}
)

// NewAtlasFormatter returns a Formatter that writes a single plain SQL file.
func NewAtlasFormatter() (Formatter, error) {
	return templateFormatter(
		"{{ now }}{{ with .Name }}_{{ . }}{{ end }}.sql",
		`{{ range .Changes }}{{ with .Comment }}-- {{ println . }}{{ end }}{{ printf "%s;\n" .Cmd }}{{ end }}`,
	)
}

// NewGolangMigrateFormatter returns a Formatter compatible with golang-migrate/migrate.
func NewGolangMigrateFormatter() (Formatter, error) {
	return templateFormatter(
		"{{ now }}{{ with .Name }}_{{ . }}{{ end }}.up.sql",
		`{{ range .Changes }}{{ with .Comment }}-- {{ println . }}{{ end }}{{ printf "%s;\n" .Cmd }}{{ end }}`,
		"{{ now }}{{ with .Name }}_{{ . }}{{ end }}.down.sql",
		`{{ range rev .Changes }}{{ if .Reverse }}{{ with .Comment }}-- reverse: {{ println . }}{{ end }}{{ printf "%s;\n" .Reverse }}{{ end }}{{ end }}`,
	)
}

// NewGooseFormatter returns a Formatter compatible with pressly/goose.
func NewGooseFormatter() (Formatter, error) {
	return templateFormatter(
		"{{ now }}{{ with .Name }}_{{ . }}{{ end }}.sql",
		`-- +goose Up
{{ if not .Transactional }}-- +goose NO TRANSACTION
{{ end }}{{ range .Changes }}{{ with .Comment }}-- {{ println . }}{{ end }}{{ printf "%s;\n" .Cmd }}{{ end }}
-- +goose Down
{{ range rev .Changes }}{{ if .Reverse }}{{ with .Comment }}-- reverse: {{ println . }}{{ end }}{{ printf "%s;\n" .Reverse }}{{ end }}{{ end }}`,
	)
}

// NewFlywayFormatter returns a Formatter compatible with Flyway.
func NewFlywayFormatter() (Formatter, error) {
	return templateFormatter(
		"V{{ now }}{{ with .Name }}__{{ . }}{{ end }}.sql",
		`{{ range .Changes }}{{ with .Comment }}-- {{ println . }}{{ end }}{{ printf "%s;\n" .Cmd }}{{ end }}`,
		"U{{ now }}{{ with .Name }}__{{ . }}{{ end }}.sql",
		`{{ range rev .Changes }}{{ if .Reverse }}{{ with .Comment }}-- reverse: {{ println . }}{{ end }}{{ printf "%s;\n" .Reverse }}{{ end }}{{ end }}`,
	)
}

// NewLiquibaseFormatter returns a Formatter compatible with Liquibase formatted SQL.
func NewLiquibaseFormatter() (Formatter, error) {
	return templateFormatter(
		"{{ now }}{{ with .Name }}_{{ . }}{{ end }}.sql",
		`{{- $now := now -}}
--liquibase formatted sql

{{- range $index, $change := .Changes }}
--changeset colmod:{{ $now }}-{{ inc $index }}
{{ with $change.Comment }}--comment: {{ . }}
{{ end }}{{ $change.Cmd }};
{{ with $change.Reverse }}--rollback: {{ . }};
{{ end }}{{ end }}`,
	)
}

// formatters maps tool names to their Formatter constructors.
var formatters = map[string]func() (Formatter, error){
	"atlas":          NewAtlasFormatter,
	"golang-migrate": NewGolangMigrateFormatter,
	"goose":          NewGooseFormatter,
	"flyway":         NewFlywayFormatter,
	"liquibase":      NewLiquibaseFormatter,
}

// Formatters returns the names of the supported migration tools, sorted.
func Formatters() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FormatterFor returns the Formatter of the named migration tool.
func FormatterFor(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("sql/migrate: unknown migration tool %q", name)
	}
	return f()
}

// templateFormatter parses the given templates and passes them on to the NewTemplateFormatter.
func templateFormatter(templates ...string) (fmt Formatter, err error) {
	tpls := make([]*template.Template, len(templates))
	for i, t := range templates {
		tpls[i], err = template.New("").Funcs(funcs).Parse(t)
		if err != nil {
			return nil, err
		}
	}
	return NewTemplateFormatter(tpls...)
}

// reverse changes for the down migration.
func reverse(changes []*Change) []*Change {
	n := len(changes)
	rev := make([]*Change, n)
	if n%2 == 1 {
		rev[n/2] = changes[n/2]
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = changes[j], changes[i]
	}
	return rev
}
