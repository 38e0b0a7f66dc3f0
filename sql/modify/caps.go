// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package modify

import "ariga.io/colmod/sql/dialect"

// Caps describes the lexical choices of a dialect when writing a
// column modification statement.
type Caps struct {
	// Keyword follows the table name, e.g. "ALTER COLUMN" or "MODIFY".
	Keyword string
	// PreType separates the column name from its new type.
	PreType string
	// PostType closes the statement after the column definition.
	PostType string
	// Extra reports if nullability, default, auto increment and
	// primary key clauses can be written in the same statement.
	Extra bool
}

// defaultCaps is used for dialects that are not listed in the table.
var defaultCaps = Caps{Keyword: "ALTER COLUMN", PreType: " TYPE "}

// caps is read-only after package initialization.
var caps = map[dialect.Dialect]Caps{
	dialect.HyperSQL:  {Keyword: "ALTER COLUMN", PreType: " "},
	dialect.H2:        {Keyword: "ALTER COLUMN", PreType: " "},
	dialect.Derby:     {Keyword: "ALTER COLUMN", PreType: " SET DATA TYPE "},
	dialect.DB2:       {Keyword: "ALTER COLUMN", PreType: " SET DATA TYPE "},
	dialect.MSSQL:     {Keyword: "ALTER COLUMN", PreType: " ", Extra: true},
	dialect.MySQL:     {Keyword: "MODIFY", PreType: " ", Extra: true},
	dialect.Oracle:    {Keyword: "MODIFY (", PreType: " ", PostType: " )"},
	dialect.SybaseASA: {Keyword: "MODIFY", PreType: " "},
	dialect.Sybase:    {Keyword: "MODIFY", PreType: " "},
}

// CapsOf returns the capabilities of the given dialect. Dialects without
// an entry in the table, such as StandardAnsi, get the default row.
func CapsOf(d dialect.Dialect) Caps {
	if c, ok := caps[d]; ok {
		return c
	}
	return defaultCaps
}
