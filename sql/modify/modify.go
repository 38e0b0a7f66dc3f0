// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package modify generates dialect-specific statements for modifying the
// definition of existing table columns.
//
// Callers are expected to validate a request before generating statements
// for it:
//
//	req := schema.NewModifyColumns("users", schema.NewColumn("name", "varchar(255)"))
//	if errs := modify.Validate(req, dialect.MySQL); len(errs) > 0 {
//		return errs.Err()
//	}
//	stmts, err := modify.Generate(req, dialect.MySQL)
package modify

import (
	"errors"
	"fmt"
	"strings"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/internal/sqlx"
	"ariga.io/colmod/sql/schema"
	"ariga.io/colmod/sql/types"
)

type (
	// TypeRenderer renders dialect-neutral type descriptors and default values.
	TypeRenderer interface {
		// RenderType returns the dialect syntax of the given type descriptor.
		RenderType(desc string, d dialect.Dialect) (string, error)
		// RenderLiteral returns the dialect syntax of the given default
		// value, as a literal of the given type descriptor.
		RenderLiteral(v, desc string, d dialect.Dialect) (string, error)
		// RenderExpr returns the dialect syntax of the given raw default expression.
		RenderExpr(x string, d dialect.Dialect) (string, error)
	}

	// Escaper escapes identifiers for a dialect.
	Escaper interface {
		EscapeTable(schema, table string, d dialect.Dialect) string
		EscapeColumn(column string, d dialect.Dialect) string
	}

	// AutoIncrementer returns the auto increment clause of a dialect.
	AutoIncrementer interface {
		AutoIncrementClause(d dialect.Dialect) string
	}

	// A Generator generates column modification statements. A Generator
	// holds no mutable state and is safe for concurrent use.
	Generator struct {
		types   TypeRenderer
		esc     Escaper
		autoInc AutoIncrementer
	}

	// Option configures a Generator.
	Option func(*Generator)
)

// ErrUnsupported is returned by Generate for dialects that
// can not modify columns in place.
var ErrUnsupported = errors.New("modify: modifying columns is not supported")

// New returns a new Generator. Without options, it uses the default type
// renderer, escaper and auto increment clauses.
func New(opts ...Option) *Generator {
	g := &Generator{
		types:   types.Renderer{},
		esc:     sqlx.Escaper{},
		autoInc: types.AutoIncrement{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithTypes sets the type renderer of the generator.
func WithTypes(r TypeRenderer) Option {
	return func(g *Generator) {
		g.types = r
	}
}

// WithEscaper sets the identifier escaper of the generator.
func WithEscaper(e Escaper) Option {
	return func(g *Generator) {
		g.esc = e
	}
}

// WithAutoIncrement sets the auto increment clause provider of the generator.
func WithAutoIncrement(a AutoIncrementer) Option {
	return func(g *Generator) {
		g.autoInc = a
	}
}

// WithVersion configures the default type renderer for the given server
// version. It replaces a renderer that was set by WithTypes.
func WithVersion(v dialect.Version) Option {
	return WithTypes(types.Renderer{Version: v})
}

// WithQuoteAll configures the default escaper to quote all identifiers,
// instead of only those that require it.
func WithQuoteAll(b bool) Option {
	return WithEscaper(sqlx.Escaper{QuoteAll: b})
}

// DefaultGenerator is the Generator used by the package-level functions.
var DefaultGenerator = New()

// Validate calls DefaultGenerator.Validate.
func Validate(req *schema.ModifyColumns, d dialect.Dialect) ValidationErrors {
	return DefaultGenerator.Validate(req, d)
}

// Generate calls DefaultGenerator.Generate.
func Generate(req *schema.ModifyColumns, d dialect.Dialect) ([]string, error) {
	return DefaultGenerator.Generate(req, d)
}

// Generate returns one statement for each column of the request, in the
// order of the columns. Generate does not validate the request, and callers
// should not invoke it if Validate reported any error.
//
// SQLite can not modify columns in place, and an error wrapping
// ErrUnsupported is returned for it without any statements.
func (g *Generator) Generate(req *schema.ModifyColumns, d dialect.Dialect) ([]string, error) {
	if d == dialect.SQLite {
		return nil, fmt.Errorf("%w on %s", ErrUnsupported, d.ShortName())
	}
	if req == nil {
		return nil, errors.New("modify: missing change")
	}
	var (
		c     = CapsOf(d)
		table = g.esc.EscapeTable(req.Schema(), req.Table(), d)
		stmts = make([]string, 0, req.Len())
	)
	for i, col := range req.Columns() {
		stmt, err := g.alter(table, col, c, d)
		if err != nil {
			return nil, fmt.Errorf("modify: column %d of table %q: %w", i, req.Table(), err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// alter returns the statement for modifying a single column.
func (g *Generator) alter(table string, col schema.Column, c Caps, d dialect.Dialect) (string, error) {
	if strings.TrimSpace(col.Name()) == "" {
		return "", errors.New("missing column name")
	}
	typ, err := g.types.RenderType(col.Type(), d)
	if err != nil {
		return "", fmt.Errorf("render type of %q: %w", col.Name(), err)
	}
	b := sqlx.Build("ALTER TABLE").P(table, c.Keyword, g.esc.EscapeColumn(col.Name(), d)).Raw(c.PreType, typ)
	if c.Extra {
		if err := g.extra(b, col, d); err != nil {
			return "", err
		}
	}
	return b.Raw(c.PostType).String(), nil
}

// extra writes the nullability, default, auto increment
// and primary key clauses of the column.
func (g *Generator) extra(b *sqlx.Builder, col schema.Column, d dialect.Dialect) error {
	switch {
	case col.Null() == schema.NotNullable:
		b.P("NOT NULL")
	case d == dialect.Sybase || d == dialect.SybaseASA:
		b.P("NULL")
	}
	// Only MySQL accepts a DEFAULT clause when changing the column type.
	// Other dialects report it with Warn.
	if v, ok := col.Default(); ok && d == dialect.MySQL {
		render := func(v string, d dialect.Dialect) (string, error) {
			return g.types.RenderLiteral(v, col.Type(), d)
		}
		if col.RawDefault() {
			render = g.types.RenderExpr
		}
		lit, err := render(v, d)
		if err != nil {
			return fmt.Errorf("render default of %q: %w", col.Name(), err)
		}
		b.P("DEFAULT", lit)
	}
	if col.AutoIncrement() {
		b.P(g.autoInc.AutoIncrementClause(d))
	}
	if col.PrimaryKey() {
		b.P("PRIMARY KEY")
	}
	return nil
}
