// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package modify

import (
	"fmt"
	"strings"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/migrate"
	"ariga.io/colmod/sql/schema"

	"github.com/go-openapi/inflect"
)

// Plan validates the request and returns a migration plan holding one change
// for each generated statement. Column modifications are not reversible, as
// the previous column definition is not known.
func (g *Generator) Plan(req *schema.ModifyColumns, d dialect.Dialect) (*migrate.Plan, error) {
	if err := g.Validate(req, d).Err(); err != nil {
		return nil, err
	}
	stmts, err := g.Generate(req, d)
	if err != nil {
		return nil, err
	}
	cols := req.Columns()
	plan := &migrate.Plan{
		Name:          fmt.Sprintf("%s_%s", req.Name(), fileName(req.Table())),
		Transactional: d.Transactional(),
		Changes:       make([]*migrate.Change, len(stmts)),
	}
	for i := range stmts {
		plan.Changes[i] = &migrate.Change{
			Cmd:     stmts[i],
			Comment: fmt.Sprintf("modify %q column", cols[i].Name()),
			Source:  req,
		}
	}
	return plan, nil
}

// fileName returns the table name in a form that is safe to be used in
// migration file names. For example, "UserAccounts" and "user accounts"
// are both returned as "user_accounts".
func fileName(table string) string {
	if strings.ToUpper(table) == table {
		table = strings.ToLower(table)
	}
	return inflect.ParameterizeJoin(inflect.Underscore(table), "_")
}

// Plan calls DefaultGenerator.Plan.
func Plan(req *schema.ModifyColumns, d dialect.Dialect) (*migrate.Plan, error) {
	return DefaultGenerator.Plan(req, d)
}
