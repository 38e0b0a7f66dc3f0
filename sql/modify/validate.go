// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package modify

import (
	"strings"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/schema"

	"go.uber.org/multierr"
)

type (
	// A ValidationError describes a request field that can not be
	// executed against the target dialect.
	ValidationError struct {
		Field   string
		Message string
	}

	// ValidationErrors is an ordered list of validation errors.
	// An empty list means the request was accepted.
	ValidationErrors []ValidationError
)

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// Error implements the error interface.
func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i := range es {
		msgs[i] = es[i].Message
	}
	return strings.Join(msgs, "; ")
}

// Err folds the list into a single error, or returns nil if it is empty.
// The individual errors can be extracted with multierr.Errors.
func (es ValidationErrors) Err() error {
	var err error
	for _, e := range es {
		err = multierr.Append(err, e)
	}
	return err
}

// Validate reports the fields of the request that can not be executed against
// the dialect. All rules are checked and all violations are returned in order.
func (g *Generator) Validate(req *schema.ModifyColumns, d dialect.Dialect) ValidationErrors {
	var (
		errs  ValidationErrors
		table string
		cols  []schema.Column
	)
	if req != nil {
		table, cols = req.Table(), req.Columns()
	}
	if table == "" {
		errs = append(errs, ValidationError{Field: "tableName", Message: "tableName is required"})
	}
	if len(cols) == 0 {
		errs = append(errs, ValidationError{Field: "columns", Message: "columns is required"})
	}
	if noPK(d) {
		for _, c := range cols {
			if c.PrimaryKey() {
				errs = append(errs, ValidationError{
					Field:   "columns",
					Message: "Adding primary key columns is not supported on " + d.ShortName(),
				})
			}
		}
	}
	return errs
}

// noPK reports if the dialect can not add primary key columns
// as part of a column modification.
func noPK(d dialect.Dialect) bool {
	switch d {
	case dialect.H2, dialect.DB2, dialect.Derby, dialect.SQLite:
		return true
	}
	return false
}
