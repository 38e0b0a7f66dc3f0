// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package schema

import "strings"

type (
	// A Change represents a schema change. The types below implement this
	// interface and can be used for describing schema changes.
	//
	// The Change interface can also be implemented outside this package
	// as follows:
	//
	//	type RenameColumn struct {
	//		schema.Change
	//		From, To string
	//	}
	//
	//	var c schema.Change = &RenameColumn{From: "old", To: "new"}
	//
	Change interface {
		change()
	}

	// ModifyColumns describes a change that modifies the definition of one
	// or more existing columns of a table. The order of the columns defines
	// the order of the generated statements. Duplicate column names are
	// allowed and produce independent statements.
	ModifyColumns struct {
		schema  string
		table   string
		columns []Column
	}
)

// NewModifyColumns creates a new ModifyColumns change for the given table.
func NewModifyColumns(table string, columns ...Column) *ModifyColumns {
	return &ModifyColumns{
		table:   table,
		columns: append([]Column(nil), columns...),
	}
}

// WithSchema returns a copy of the change with the given schema name.
// An empty or blank name is normalized to no schema.
func (m *ModifyColumns) WithSchema(name string) *ModifyColumns {
	c := m.clone()
	c.schema = strings.TrimSpace(name)
	return c
}

// WithColumns returns a copy of the change with the given columns appended.
func (m *ModifyColumns) WithColumns(columns ...Column) *ModifyColumns {
	c := m.clone()
	c.columns = append(c.columns, columns...)
	return c
}

// Schema returns the schema name of the table, or an empty string if not set.
func (m *ModifyColumns) Schema() string { return m.schema }

// Table returns the name of the modified table.
func (m *ModifyColumns) Table() string { return m.table }

// Columns returns a copy of the modified columns.
func (m *ModifyColumns) Columns() []Column {
	return append([]Column(nil), m.columns...)
}

// Len returns the number of modified columns.
func (m *ModifyColumns) Len() int { return len(m.columns) }

// Name returns the name of the change as used by migration tools.
func (*ModifyColumns) Name() string {
	return "modifyColumn"
}

// Description returns a short description of the change.
func (*ModifyColumns) Description() string {
	return "Modify column definition"
}

// AppliesTo returns the kind of schema element the change applies to.
func (*ModifyColumns) AppliesTo() string {
	return "column"
}

// ConfirmationMessage returns a human readable message that is reported
// after the change was applied. The message uses the plural form regardless
// of the number of columns. For example:
//
//	Columns NAME(integer(3)) of TABLE_NAME modified
func (m *ModifyColumns) ConfirmationMessage() string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = c.String()
	}
	return "Columns " + strings.Join(names, ",") + " of " + m.table + " modified"
}

func (m *ModifyColumns) clone() *ModifyColumns {
	return &ModifyColumns{
		schema:  m.schema,
		table:   m.table,
		columns: append([]Column(nil), m.columns...),
	}
}

// changes.
func (*ModifyColumns) change() {}
