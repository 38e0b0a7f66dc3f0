// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package modify

import (
	"fmt"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/schema"
)

// A Warning is a non-fatal note about a request. Unlike validation errors,
// warnings do not prevent statements from being generated, but report parts
// of the request that are not reflected in them.
type Warning struct {
	// Column is the name of the column the warning refers to, if any.
	Column  string
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return w.Message
}

// Warn returns the warnings of the request for the given dialect, in the
// order of the columns and their clauses. Primary keys that are rejected by
// Validate are not reported.
func (g *Generator) Warn(req *schema.ModifyColumns, d dialect.Dialect) []Warning {
	if d == dialect.SQLite {
		return []Warning{{Message: "modifying columns is not supported on sqlite; no statements are generated"}}
	}
	if req == nil || d == dialect.MySQL {
		return nil
	}
	var (
		ws    []Warning
		extra = CapsOf(d).Extra
	)
	for _, c := range req.Columns() {
		var dropped []string
		if !extra && c.Null() == schema.NotNullable {
			dropped = append(dropped, "not null constraint")
		}
		if _, ok := c.Default(); ok {
			dropped = append(dropped, "default value")
		}
		if !extra && c.AutoIncrement() {
			dropped = append(dropped, "auto increment")
		}
		if !extra && c.PrimaryKey() && !noPK(d) {
			dropped = append(dropped, "primary key")
		}
		for _, what := range dropped {
			ws = append(ws, Warning{
				Column:  c.Name(),
				Message: fmt.Sprintf("%s of column %q is not applied on %s", what, c.Name(), d.ShortName()),
			})
		}
	}
	return ws
}

// Warn calls DefaultGenerator.Warn.
func Warn(req *schema.ModifyColumns, d dialect.Dialect) []Warning {
	return DefaultGenerator.Warn(req, d)
}
