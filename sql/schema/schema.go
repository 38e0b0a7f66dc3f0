// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package schema describes the column definitions handed to the SQL
// generators. All types in this package are immutable values: setters
// return modified copies and getters never expose internal state.
package schema

import "strings"

// Nullability describes the desired nullability of a column.
// The zero value is NullUnspecified.
type Nullability uint8

// List of nullability states.
const (
	NullUnspecified Nullability = iota
	Nullable
	NotNullable
)

// String implements fmt.Stringer.
func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "NULL"
	case NotNullable:
		return "NOT NULL"
	default:
		return "UNSPECIFIED"
	}
}

// A Column describes the desired state of a column after it was modified.
// The name and type are always set; all other attributes are optional and
// independently settable.
type Column struct {
	name       string
	typ        string
	null       Nullability
	def        string
	hasDefault bool
	rawDefault bool
	autoInc    bool
	pk         bool
}

// NewColumn creates a new column definition with the given name and
// dialect-neutral type descriptor. For example:
//
//	schema.NewColumn("id", "bigint").SetNull(false).SetAutoIncrement(true)
func NewColumn(name, typ string) Column {
	return Column{name: name, typ: typ}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the dialect-neutral type descriptor of the column (e.g. "integer(3)").
func (c Column) Type() string { return c.typ }

// Null returns the nullability of the column.
func (c Column) Null() Nullability { return c.null }

// Default returns the default value and reports if it was set.
func (c Column) Default() (string, bool) { return c.def, c.hasDefault }

// RawDefault reports if the default value is a raw SQL expression
// that is written as-is, instead of a literal of the column type.
func (c Column) RawDefault() bool { return c.rawDefault }

// AutoIncrement reports if the column was marked as auto increment.
func (c Column) AutoIncrement() bool { return c.autoInc }

// PrimaryKey reports if the column was marked as primary key.
func (c Column) PrimaryKey() bool { return c.pk }

// SetType returns a copy of the column with the given type.
func (c Column) SetType(t string) Column {
	c.typ = t
	return c
}

// SetNull returns a copy of the column with the given nullability.
func (c Column) SetNull(b bool) Column {
	c.null = NotNullable
	if b {
		c.null = Nullable
	}
	return c
}

// UnsetNull returns a copy of the column with unspecified nullability.
func (c Column) UnsetNull() Column {
	c.null = NullUnspecified
	return c
}

// SetDefault returns a copy of the column with the given default value. The
// value is written as a literal of the column type. For example, "007" on a
// varchar column is written as '007', and as 007 on an integer column.
func (c Column) SetDefault(v string) Column {
	c.def, c.hasDefault, c.rawDefault = v, true, false
	return c
}

// SetDefaultExpr returns a copy of the column with the given raw SQL
// expression as its default value. For example:
//
//	schema.NewColumn("id", "varchar(36)").SetDefaultExpr("uuid()")
func (c Column) SetDefaultExpr(x string) Column {
	c.def, c.hasDefault, c.rawDefault = x, true, true
	return c
}

// UnsetDefault returns a copy of the column without a default value.
func (c Column) UnsetDefault() Column {
	c.def, c.hasDefault, c.rawDefault = "", false, false
	return c
}

// SetAutoIncrement returns a copy of the column with the auto increment flag.
func (c Column) SetAutoIncrement(b bool) Column {
	c.autoInc = b
	return c
}

// SetPrimaryKey returns a copy of the column with the primary key flag.
func (c Column) SetPrimaryKey(b bool) Column {
	c.pk = b
	return c
}

// String returns the column in its short form: NAME(type).
func (c Column) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	b.WriteByte('(')
	b.WriteString(c.typ)
	b.WriteByte(')')
	return b.String()
}
