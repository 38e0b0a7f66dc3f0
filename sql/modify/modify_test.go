// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package modify_test

import (
	"errors"
	"testing"

	"ariga.io/colmod/sql/dialect"
	"ariga.io/colmod/sql/modify"
	"ariga.io/colmod/sql/schema"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCapsOf(t *testing.T) {
	tests := []struct {
		d    dialect.Dialect
		want modify.Caps
	}{
		{d: dialect.StandardAnsi, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " TYPE "}},
		{d: dialect.HyperSQL, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " "}},
		{d: dialect.H2, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " "}},
		{d: dialect.Derby, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " SET DATA TYPE "}},
		{d: dialect.DB2, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " SET DATA TYPE "}},
		{d: dialect.MSSQL, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " ", Extra: true}},
		{d: dialect.MySQL, want: modify.Caps{Keyword: "MODIFY", PreType: " ", Extra: true}},
		{d: dialect.Oracle, want: modify.Caps{Keyword: "MODIFY (", PreType: " ", PostType: " )"}},
		{d: dialect.SybaseASA, want: modify.Caps{Keyword: "MODIFY", PreType: " "}},
		{d: dialect.Sybase, want: modify.Caps{Keyword: "MODIFY", PreType: " "}},
		{d: dialect.SQLite, want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " TYPE "}},
		{d: dialect.Dialect(200), want: modify.Caps{Keyword: "ALTER COLUMN", PreType: " TYPE "}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, modify.CapsOf(tt.d), tt.d.String())
	}
}

func TestValidate(t *testing.T) {
	var (
		name = schema.NewColumn("NAME", "integer(3)")
		pk   = name.SetPrimaryKey(true)
	)
	errs := modify.Validate(schema.NewModifyColumns(""), dialect.MySQL)
	require.Equal(t, modify.ValidationErrors{
		{Field: "tableName", Message: "tableName is required"},
		{Field: "columns", Message: "columns is required"},
	}, errs)
	require.Equal(t, "tableName is required; columns is required", errs.Error())
	require.Len(t, multierr.Errors(errs.Err()), 2)

	errs = modify.Validate(nil, dialect.Oracle)
	require.Len(t, errs, 2)

	errs = modify.Validate(schema.NewModifyColumns("TABLE_NAME"), dialect.Oracle)
	require.Equal(t, modify.ValidationErrors{{Field: "columns", Message: "columns is required"}}, errs)

	errs = modify.Validate(schema.NewModifyColumns("", name), dialect.Oracle)
	require.Equal(t, modify.ValidationErrors{{Field: "tableName", Message: "tableName is required"}}, errs)

	for _, d := range dialect.All() {
		require.Empty(t, modify.Validate(schema.NewModifyColumns("TABLE_NAME", name), d), d.String())
		errs := modify.Validate(schema.NewModifyColumns("TABLE_NAME", pk), d)
		switch d {
		case dialect.H2, dialect.DB2, dialect.Derby, dialect.SQLite:
			require.Len(t, errs, 1, d.String())
			require.Equal(t, "columns", errs[0].Field)
			require.Contains(t, errs[0].Message, d.ShortName())
		default:
			require.Empty(t, errs, d.String())
			require.NoError(t, errs.Err())
		}
	}

	errs = modify.Validate(schema.NewModifyColumns("TABLE_NAME", pk), dialect.DB2)
	require.Equal(t, modify.ValidationErrors{
		{Field: "columns", Message: "Adding primary key columns is not supported on db2"},
	}, errs)

	// All violations are collected.
	errs = modify.Validate(schema.NewModifyColumns("", pk, name, pk.SetType("bigint")), dialect.Derby)
	require.Len(t, errs, 3)
	require.Equal(t, "tableName", errs[0].Field)
	require.Equal(t, "Adding primary key columns is not supported on derby", errs[2].Message)
}

func TestGenerate(t *testing.T) {
	req := schema.NewModifyColumns("TABLE_NAME", schema.NewColumn("NAME", "integer(3)"))
	tests := []struct {
		d    dialect.Dialect
		want string
	}{
		{d: dialect.Oracle, want: "ALTER TABLE TABLE_NAME MODIFY ( NAME INTEGER )"},
		{d: dialect.MySQL, want: "ALTER TABLE TABLE_NAME MODIFY NAME INTEGER"},
		{d: dialect.DB2, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME SET DATA TYPE INTEGER"},
		{d: dialect.Derby, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME SET DATA TYPE INTEGER"},
		{d: dialect.MSSQL, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME INT"},
		{d: dialect.H2, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME INTEGER"},
		{d: dialect.HyperSQL, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME INTEGER"},
		{d: dialect.Sybase, want: "ALTER TABLE TABLE_NAME MODIFY NAME INTEGER"},
		{d: dialect.SybaseASA, want: "ALTER TABLE TABLE_NAME MODIFY NAME INTEGER"},
		{d: dialect.StandardAnsi, want: "ALTER TABLE TABLE_NAME ALTER COLUMN NAME TYPE INTEGER"},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			stmts, err := modify.Generate(req, tt.d)
			require.NoError(t, err)
			require.Equal(t, []string{tt.want}, stmts)
		})
	}
}

func TestGenerate_SQLite(t *testing.T) {
	req := schema.NewModifyColumns("TABLE_NAME", schema.NewColumn("NAME", "integer(3)"))
	stmts, err := modify.Generate(req, dialect.SQLite)
	require.Empty(t, stmts)
	require.True(t, errors.Is(err, modify.ErrUnsupported))
	require.EqualError(t, err, "modify: modifying columns is not supported on sqlite")
}

func TestGenerate_Extra(t *testing.T) {
	id := schema.NewColumn("id", "bigint").SetNull(false).SetAutoIncrement(true).SetPrimaryKey(true)
	tests := []struct {
		name string
		d    dialect.Dialect
		col  schema.Column
		want string
	}{
		{
			name: "not null",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "varchar(255)").SetNull(false),
			want: "ALTER TABLE users MODIFY name VARCHAR(255) NOT NULL",
		},
		{
			name: "nullable",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "varchar(255)").SetNull(true),
			want: "ALTER TABLE users MODIFY name VARCHAR(255)",
		},
		{
			name: "default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("age", "int").SetDefault("1"),
			want: "ALTER TABLE users MODIFY age INTEGER DEFAULT 1",
		},
		{
			name: "string default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "varchar(20)").SetNull(false).SetDefault("a8m"),
			want: "ALTER TABLE users MODIFY name VARCHAR(20) NOT NULL DEFAULT 'a8m'",
		},
		{
			name: "string default with parentheses",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "varchar(20)").SetDefault("Smith (Jr)"),
			want: "ALTER TABLE users MODIFY name VARCHAR(20) DEFAULT 'Smith (Jr)'",
		},
		{
			name: "string default like a number",
			d:    dialect.MySQL,
			col:  schema.NewColumn("code", "varchar(20)").SetDefault("007"),
			want: "ALTER TABLE users MODIFY code VARCHAR(20) DEFAULT '007'",
		},
		{
			name: "string default like a keyword",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "varchar(20)").SetDefault("now"),
			want: "ALTER TABLE users MODIFY name VARCHAR(20) DEFAULT 'now'",
		},
		{
			name: "string default like a function",
			d:    dialect.MySQL,
			col:  schema.NewColumn("id", "char(36)").SetDefault("uuid()"),
			want: "ALTER TABLE users MODIFY id CHAR(36) DEFAULT 'uuid()'",
		},
		{
			name: "string default like null",
			d:    dialect.MySQL,
			col:  schema.NewColumn("name", "text").SetDefault("NULL"),
			want: "ALTER TABLE users MODIFY name TEXT DEFAULT 'NULL'",
		},
		{
			name: "null default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("age", "int").SetDefault("null"),
			want: "ALTER TABLE users MODIFY age INTEGER DEFAULT NULL",
		},
		{
			name: "boolean default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("active", "boolean").SetDefault("true"),
			want: "ALTER TABLE users MODIFY active BIT(1) DEFAULT 1",
		},
		{
			name: "time default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("created_at", "timestamp").SetDefault("CURRENT_TIMESTAMP"),
			want: "ALTER TABLE users MODIFY created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
		},
		{
			name: "date default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("born", "date").SetDefault("2000-01-01"),
			want: "ALTER TABLE users MODIFY born DATE DEFAULT '2000-01-01'",
		},
		{
			name: "expression default",
			d:    dialect.MySQL,
			col:  schema.NewColumn("id", "varchar(36)").SetDefaultExpr("uuid()"),
			want: "ALTER TABLE users MODIFY id VARCHAR(36) DEFAULT uuid()",
		},
		{
			name: "mysql all",
			d:    dialect.MySQL,
			col:  id,
			want: "ALTER TABLE users MODIFY id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
		},
		{
			name: "mssql all",
			d:    dialect.MSSQL,
			col:  id.SetDefault("1"),
			want: "ALTER TABLE users ALTER COLUMN id BIGINT NOT NULL IDENTITY (1, 1) PRIMARY KEY",
		},
		{
			name: "oracle ignores extra",
			d:    dialect.Oracle,
			col:  id,
			want: "ALTER TABLE users MODIFY ( id NUMBER(38, 0) )",
		},
		{
			name: "sybase ignores extra",
			d:    dialect.Sybase,
			col:  id.SetNull(true),
			want: "ALTER TABLE users MODIFY id BIGINT",
		},
		{
			name: "quoted column",
			d:    dialect.MySQL,
			col:  schema.NewColumn("order", "int"),
			want: "ALTER TABLE users MODIFY `order` INTEGER",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := modify.Generate(schema.NewModifyColumns("users", tt.col), tt.d)
			require.NoError(t, err)
			require.Equal(t, []string{tt.want}, stmts)
		})
	}
}

func TestGenerate_Order(t *testing.T) {
	req := schema.NewModifyColumns("users",
		schema.NewColumn("b", "int"),
		schema.NewColumn("a", "text"),
		schema.NewColumn("b", "bigint"),
	).WithSchema("app")
	for _, d := range dialect.All() {
		if d == dialect.SQLite {
			continue
		}
		stmts, err := modify.Generate(req, d)
		require.NoError(t, err)
		require.Len(t, stmts, req.Len(), d.String())
		again, err := modify.Generate(req, d)
		require.NoError(t, err)
		require.Equal(t, stmts, again, "generate is idempotent")
	}
	stmts, err := modify.Generate(req, dialect.MySQL)
	require.NoError(t, err)
	require.Equal(t, []string{
		"ALTER TABLE app.users MODIFY b INTEGER",
		"ALTER TABLE app.users MODIFY a TEXT",
		"ALTER TABLE app.users MODIFY b BIGINT",
	}, stmts)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := modify.Generate(nil, dialect.MySQL)
	require.Error(t, err)

	_, err = modify.Generate(schema.NewModifyColumns("users", schema.NewColumn("", "int")), dialect.MySQL)
	require.EqualError(t, err, `modify: column 0 of table "users": missing column name`)

	_, err = modify.Generate(schema.NewModifyColumns("users", schema.NewColumn("a", "int"), schema.NewColumn("b", "")), dialect.MySQL)
	require.Error(t, err)
	require.Contains(t, err.Error(), `column 1 of table "users"`)

	_, err = modify.Generate(schema.NewModifyColumns("users", schema.NewColumn("a", "varchar(")), dialect.Oracle)
	require.Error(t, err)

	_, err = modify.Generate(schema.NewModifyColumns("users", schema.NewColumn("age", "int").SetDefault("abc")), dialect.MySQL)
	require.EqualError(t, err, `modify: column 0 of table "users": render default of "age": types: invalid int value "abc"`)
}

func TestNew_Options(t *testing.T) {
	req := schema.NewModifyColumns("users", schema.NewColumn("id", "varchar(36)").SetDefaultExpr("uuid()")).WithSchema("app")

	g := modify.New(modify.WithQuoteAll(true), modify.WithVersion("8.0.31"))
	stmts, err := g.Generate(req, dialect.MySQL)
	require.NoError(t, err)
	require.Equal(t, []string{"ALTER TABLE `app`.`users` MODIFY `id` VARCHAR(36) DEFAULT (uuid())"}, stmts)

	g = modify.New(modify.WithVersion("5.7.40"))
	stmts, err = g.Generate(req, dialect.MySQL)
	require.NoError(t, err)
	require.Equal(t, []string{"ALTER TABLE app.users MODIFY id VARCHAR(36) DEFAULT uuid()"}, stmts)

	g = modify.New(
		modify.WithTypes(mockTypes{}),
		modify.WithEscaper(mockEscaper{}),
		modify.WithAutoIncrement(mockAutoInc("SERIAL")),
	)
	req = schema.NewModifyColumns("users",
		schema.NewColumn("id", "int").SetDefault("1").SetAutoIncrement(true),
		schema.NewColumn("uid", "uuid").SetDefaultExpr("gen()"),
	)
	stmts, err = g.Generate(req, dialect.MySQL)
	require.NoError(t, err)
	require.Equal(t, []string{
		"ALTER TABLE <users> MODIFY <id> T(int) DEFAULT L(1:int) SERIAL",
		"ALTER TABLE <users> MODIFY <uid> T(uuid) DEFAULT X(gen())",
	}, stmts)
}

func TestWarn(t *testing.T) {
	req := schema.NewModifyColumns("users",
		schema.NewColumn("name", "varchar(20)").SetDefault("a8m"),
		schema.NewColumn("age", "int"),
	)
	require.Empty(t, modify.Warn(req, dialect.MySQL))
	require.Empty(t, modify.Warn(nil, dialect.MSSQL))
	require.Equal(t, []modify.Warning{
		{Column: "name", Message: `default value of column "name" is not applied on mssql`},
	}, modify.Warn(req, dialect.MSSQL))
	ws := modify.Warn(req, dialect.SQLite)
	require.Len(t, ws, 1)
	require.Equal(t, "modifying columns is not supported on sqlite; no statements are generated", ws[0].String())

	// Attributes that are dropped by dialects without inline column attributes.
	req = schema.NewModifyColumns("users",
		schema.NewColumn("name", "varchar(20)").SetNull(false).SetPrimaryKey(true),
		schema.NewColumn("id", "bigint").SetNull(true).SetAutoIncrement(true).SetDefault("1"),
	)
	require.Equal(t, []modify.Warning{
		{Column: "name", Message: `not null constraint of column "name" is not applied on oracle`},
		{Column: "name", Message: `primary key of column "name" is not applied on oracle`},
		{Column: "id", Message: `default value of column "id" is not applied on oracle`},
		{Column: "id", Message: `auto increment of column "id" is not applied on oracle`},
	}, modify.Warn(req, dialect.Oracle))
	// Primary keys are rejected by Validate on DB2.
	require.Equal(t, []modify.Warning{
		{Column: "name", Message: `not null constraint of column "name" is not applied on db2`},
		{Column: "id", Message: `default value of column "id" is not applied on db2`},
		{Column: "id", Message: `auto increment of column "id" is not applied on db2`},
	}, modify.Warn(req, dialect.DB2))
	// MSSQL applies all of them, but the default value.
	require.Equal(t, []modify.Warning{
		{Column: "id", Message: `default value of column "id" is not applied on mssql`},
	}, modify.Warn(req, dialect.MSSQL))
	require.Empty(t, modify.Warn(req, dialect.MySQL))
}

func TestPlan(t *testing.T) {
	req := schema.NewModifyColumns("users", schema.NewColumn("name", "varchar(255)"), schema.NewColumn("age", "int"))
	plan, err := modify.Plan(req, dialect.StandardAnsi)
	require.NoError(t, err)
	require.Equal(t, "modifyColumn_users", plan.Name)
	require.False(t, plan.Reversible)
	require.True(t, plan.Transactional)
	require.Len(t, plan.Changes, 2)
	require.Equal(t, "ALTER TABLE users ALTER COLUMN name TYPE VARCHAR(255)", plan.Changes[0].Cmd)
	require.Equal(t, `modify "name" column`, plan.Changes[0].Comment)
	require.Equal(t, `modify "age" column`, plan.Changes[1].Comment)
	require.Equal(t, req, plan.Changes[1].Source)

	plan, err = modify.Plan(req, dialect.MySQL)
	require.NoError(t, err)
	require.False(t, plan.Transactional)

	_, err = modify.Plan(schema.NewModifyColumns(""), dialect.MySQL)
	require.EqualError(t, err, "tableName is required; columns is required")

	_, err = modify.Plan(req, dialect.SQLite)
	require.ErrorIs(t, err, modify.ErrUnsupported)
}

func TestPlan_Name(t *testing.T) {
	for table, want := range map[string]string{
		"users":         "modifyColumn_users",
		"UserAccounts":  "modifyColumn_user_accounts",
		"user accounts": "modifyColumn_user_accounts",
		"TABLE_NAME":    "modifyColumn_table_name",
		"orders/2024":   "modifyColumn_orders2024",
	} {
		plan, err := modify.Plan(schema.NewModifyColumns(table, schema.NewColumn("id", "int")), dialect.MySQL)
		require.NoError(t, err, table)
		require.Equal(t, want, plan.Name, table)
	}
}

type (
	mockTypes   struct{}
	mockEscaper struct{}
	mockAutoInc string
)

func (mockTypes) RenderType(desc string, _ dialect.Dialect) (string, error) {
	return "T(" + desc + ")", nil
}

func (mockTypes) RenderLiteral(v, desc string, _ dialect.Dialect) (string, error) {
	return "L(" + v + ":" + desc + ")", nil
}

func (mockTypes) RenderExpr(x string, _ dialect.Dialect) (string, error) {
	return "X(" + x + ")", nil
}

func (mockEscaper) EscapeTable(s, table string, _ dialect.Dialect) string {
	if s != "" {
		return "<" + s + ">.<" + table + ">"
	}
	return "<" + table + ">"
}

func (mockEscaper) EscapeColumn(column string, _ dialect.Dialect) string {
	return "<" + column + ">"
}

func (a mockAutoInc) AutoIncrementClause(dialect.Dialect) string {
	return string(a)
}
