// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package migrate describes migration plans and formats them as
// migration files of the different migration tools.
package migrate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"ariga.io/colmod/sql/schema"
)

type (
	// A Plan defines a planned changeset that its execution brings the database to
	// the new desired state. Additional information is calculated by the generator
	// to indicate if the changeset is transactional (can be rolled-back) and
	// reversible (a down file can be generated to it).
	Plan struct {
		// Name of the plan. Used as part of the migration file names.
		Name string

		// Reversible describes if the changeset is reversible.
		Reversible bool

		// Transactional describes if the changeset is transactional.
		Transactional bool

		// Changes defines the list of changeset in the plan.
		Changes []*Change
	}

	// A Change of migration.
	Change struct {
		// Cmd or statement to execute.
		Cmd string

		// A Comment describes the change.
		Comment string

		// Reverse contains the "reversed statement" if
		// command is reversible.
		Reverse string

		// The Source that caused this change, or nil.
		Source schema.Change
	}
)

type (
	// A File is a migration file produced by a Formatter.
	File interface {
		// Name returns the name of the migration file.
		Name() string
		// Bytes returns the content of the migration file.
		Bytes() []byte
	}

	// LocalFile is an in-memory File.
	LocalFile struct {
		n string
		b []byte
	}

	// Formatter wraps the Format method.
	Formatter interface {
		// Format formats the given Plan into one or more migration files.
		Format(*Plan) ([]File, error)
	}

	// TemplateFormatter implements Formatter by using templates.
	TemplateFormatter struct {
		templates []struct{ N, C *template.Template }
	}
)

// NewLocalFile returns a new local file.
func NewLocalFile(name string, data []byte) *LocalFile {
	return &LocalFile{n: name, b: data}
}

// Name implements File.Name.
func (f *LocalFile) Name() string { return f.n }

// Bytes implements File.Bytes.
func (f *LocalFile) Bytes() []byte { return f.b }

// NewTemplateFormatter creates a new Formatter working with the given templates.
//
//	migrate.NewTemplateFormatter(
//		template.Must(template.New("").Parse("{{now.Unix}}{{.Name}}.sql")),                 // name template
//		template.Must(template.New("").Parse("{{range .Changes}}{{println .Cmd}}{{end}}")), // content template
//	)
func NewTemplateFormatter(templates ...*template.Template) (*TemplateFormatter, error) {
	if n := len(templates); n == 0 || n%2 == 1 {
		return nil, fmt.Errorf("zero or odd number of templates given: %d", n)
	}
	t := new(TemplateFormatter)
	for i := 0; i < len(templates); i += 2 {
		t.templates = append(t.templates, struct{ N, C *template.Template }{templates[i], templates[i+1]})
	}
	return t, nil
}

// Format implements the Formatter interface. Files with no content,
// such as down files of irreversible plans, are omitted.
func (t *TemplateFormatter) Format(plan *Plan) ([]File, error) {
	files := make([]File, 0, len(t.templates))
	for _, tpl := range t.templates {
		var n, b bytes.Buffer
		if err := tpl.N.Execute(&n, plan); err != nil {
			return nil, fmt.Errorf("sql/migrate: execute name template: %w", err)
		}
		if err := tpl.C.Execute(&b, plan); err != nil {
			return nil, fmt.Errorf("sql/migrate: execute content template: %w", err)
		}
		if strings.TrimSpace(b.String()) == "" {
			continue
		}
		files = append(files, NewLocalFile(n.String(), b.Bytes()))
	}
	return files, nil
}
