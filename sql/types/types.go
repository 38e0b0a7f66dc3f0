// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package types

import (
	"strings"

	"ariga.io/colmod/sql/dialect"
)

// A Renderer renders type descriptors and default values for a dialect.
// The zero value is ready for use and assumes an unknown server version.
type Renderer struct {
	// Version of the target server, if known. It is used to
	// select version-dependent syntax, such as MySQL expression
	// defaults.
	Version dialect.Version
}

// RenderType renders the given type descriptor in the syntax of the dialect.
// Types that are not known to the renderer are returned as given.
func (r Renderer) RenderType(desc string, d dialect.Dialect) (string, error) {
	t, err := Parse(desc)
	if err != nil {
		return "", err
	}
	return Format(t, d), nil
}

// Format formats the parsed descriptor in the syntax of the dialect.
func Format(t *Desc, d dialect.Dialect) string {
	f, ok := families[t.Name]
	if !ok {
		return t.Raw
	}
	name, fixed := f.name(d)
	var b strings.Builder
	b.WriteString(name)
	if !fixed && f.args && len(t.Args) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(t.Args, ", "))
		b.WriteByte(')')
	}
	if t.Unsigned && d == dialect.MySQL && f.literal == litNumber {
		b.WriteString(" UNSIGNED")
	}
	return b.String()
}

// family describes a group of type names that share the same rendering rules.
type family struct {
	def     string                     // default name
	names   map[dialect.Dialect]string // dialect overrides
	args    bool                       // type arguments are kept
	literal litKind                    // kind of default value literals
}

// litKind describes how default values of a type family are written.
type litKind uint8

const (
	litString litKind = iota // quoted character literal
	litNumber                // numeric literal, accepts the UNSIGNED modifier
	litBool                  // boolean literal
	litTime                  // quoted date literal or current time keyword
)

// name returns the type name for the dialect, and reports
// if the name already carries its own fixed arguments.
func (f *family) name(d dialect.Dialect) (string, bool) {
	n, ok := f.names[d]
	if !ok {
		n = f.def
	}
	return n, strings.HasSuffix(n, ")")
}

// families maps lower-cased type names to their family.
var families = func() map[string]*family {
	var (
		m        = make(map[string]*family)
		register = func(f *family, names ...string) {
			for _, n := range names {
				m[n] = f
			}
		}
	)
	register(&family{
		def:     "INTEGER",
		names:   map[dialect.Dialect]string{dialect.MSSQL: "INT"},
		literal: litNumber,
	}, "int", "integer", "int4")
	register(&family{
		def:     "BIGINT",
		names:   map[dialect.Dialect]string{dialect.Oracle: "NUMBER(38, 0)"},
		literal: litNumber,
	}, "bigint", "int8", "long")
	register(&family{
		def:     "SMALLINT",
		names:   map[dialect.Dialect]string{dialect.Oracle: "NUMBER(5)"},
		literal: litNumber,
	}, "smallint", "int2", "short")
	register(&family{
		def: "SMALLINT",
		names: map[dialect.Dialect]string{
			dialect.MySQL:     "TINYINT",
			dialect.MSSQL:     "TINYINT",
			dialect.Sybase:    "TINYINT",
			dialect.SybaseASA: "TINYINT",
			dialect.H2:        "TINYINT",
			dialect.HyperSQL:  "TINYINT",
			dialect.Oracle:    "NUMBER(3)",
		},
		literal: litNumber,
	}, "tinyint", "int1", "byte")
	register(&family{
		def: "INTEGER",
		names: map[dialect.Dialect]string{
			dialect.MySQL: "MEDIUMINT",
			dialect.MSSQL: "INT",
		},
		literal: litNumber,
	}, "mediumint")
	register(&family{
		def: "BOOLEAN",
		names: map[dialect.Dialect]string{
			dialect.MySQL:     "BIT(1)",
			dialect.MSSQL:     "BIT",
			dialect.Sybase:    "BIT",
			dialect.SybaseASA: "BIT",
			dialect.Oracle:    "NUMBER(1)",
			dialect.DB2:       "SMALLINT",
			dialect.Derby:     "SMALLINT",
		},
		literal: litBool,
	}, "boolean", "bool")
	register(&family{
		def: "DECIMAL",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "NUMBER",
		},
		args:    true,
		literal: litNumber,
	}, "decimal", "dec")
	register(&family{
		def: "NUMERIC",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "NUMBER",
		},
		args:    true,
		literal: litNumber,
	}, "numeric", "number")
	register(&family{
		def: "DECIMAL(19, 4)",
		names: map[dialect.Dialect]string{
			dialect.MSSQL:     "MONEY",
			dialect.Sybase:    "MONEY",
			dialect.SybaseASA: "MONEY",
		},
		literal: litNumber,
	}, "currency", "money")
	register(&family{
		def:     "FLOAT",
		args:    true,
		literal: litNumber,
	}, "float", "float4")
	register(&family{
		def:     "REAL",
		literal: litNumber,
	}, "real")
	register(&family{
		def: "DOUBLE PRECISION",
		names: map[dialect.Dialect]string{
			dialect.MySQL:    "DOUBLE",
			dialect.H2:       "DOUBLE",
			dialect.HyperSQL: "DOUBLE",
			dialect.DB2:      "DOUBLE",
			dialect.Derby:    "DOUBLE",
			dialect.Oracle:   "FLOAT(24)",
			dialect.MSSQL:    "FLOAT(53)",
		},
		literal: litNumber,
	}, "double", "double precision", "float8")
	register(&family{
		def: "VARCHAR",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "VARCHAR2",
		},
		args: true,
	}, "varchar", "varchar2", "character varying", "string")
	register(&family{
		def: "NVARCHAR",
		names: map[dialect.Dialect]string{
			dialect.Oracle:   "NVARCHAR2",
			dialect.DB2:      "VARCHAR",
			dialect.Derby:    "VARCHAR",
			dialect.H2:       "VARCHAR",
			dialect.HyperSQL: "VARCHAR",
		},
		args: true,
	}, "nvarchar", "nvarchar2", "national character varying")
	register(&family{
		def:  "CHAR",
		args: true,
	}, "char", "character")
	register(&family{
		def: "NCHAR",
		names: map[dialect.Dialect]string{
			dialect.DB2:   "CHAR",
			dialect.Derby: "CHAR",
		},
		args: true,
	}, "nchar", "national character")
	register(&family{
		def: "TEXT",
		names: map[dialect.Dialect]string{
			dialect.Oracle:   "CLOB",
			dialect.H2:       "CLOB",
			dialect.HyperSQL: "CLOB",
			dialect.DB2:      "CLOB",
			dialect.Derby:    "CLOB",
			dialect.MSSQL:    "VARCHAR(MAX)",
		},
	}, "text")
	register(&family{
		def: "CLOB",
		names: map[dialect.Dialect]string{
			dialect.MySQL:        "LONGTEXT",
			dialect.MSSQL:        "VARCHAR(MAX)",
			dialect.Sybase:       "TEXT",
			dialect.SybaseASA:    "LONG VARCHAR",
			dialect.SQLite:       "TEXT",
			dialect.StandardAnsi: "TEXT",
		},
	}, "clob", "longvarchar")
	register(&family{
		def: "BLOB",
		names: map[dialect.Dialect]string{
			dialect.MySQL:     "LONGBLOB",
			dialect.MSSQL:     "VARBINARY(MAX)",
			dialect.Sybase:    "IMAGE",
			dialect.SybaseASA: "LONG BINARY",
		},
	}, "blob", "longblob", "longvarbinary", "image")
	register(&family{
		def: "VARBINARY",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "RAW",
		},
		args: true,
	}, "varbinary", "binary varying")
	register(&family{
		def: "BINARY",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "RAW",
		},
		args: true,
	}, "binary")
	register(&family{
		def:     "DATE",
		literal: litTime,
	}, "date")
	register(&family{
		def: "TIME",
		names: map[dialect.Dialect]string{
			dialect.Oracle: "DATE",
		},
		args:    true,
		literal: litTime,
	}, "time")
	register(&family{
		def: "TIMESTAMP",
		names: map[dialect.Dialect]string{
			dialect.MySQL:     "DATETIME",
			dialect.MSSQL:     "DATETIME",
			dialect.Sybase:    "DATETIME",
			dialect.SybaseASA: "DATETIME",
		},
		args:    true,
		literal: litTime,
	}, "datetime")
	register(&family{
		def: "TIMESTAMP",
		names: map[dialect.Dialect]string{
			dialect.MSSQL:  "DATETIME2",
			dialect.Sybase: "DATETIME",
		},
		args:    true,
		literal: litTime,
	}, "timestamp", "timestamp without time zone")
	register(&family{
		def: "TIMESTAMP WITH TIME ZONE",
		names: map[dialect.Dialect]string{
			dialect.MySQL:     "TIMESTAMP",
			dialect.MSSQL:     "DATETIMEOFFSET",
			dialect.SybaseASA: "TIMESTAMP WITH TIME ZONE",
			dialect.Sybase:    "DATETIME",
			dialect.SQLite:    "TEXT",
		},
		literal: litTime,
	}, "timestamp with time zone", "timestamptz")
	register(&family{
		def: "UUID",
		names: map[dialect.Dialect]string{
			dialect.MSSQL:     "UNIQUEIDENTIFIER",
			dialect.SybaseASA: "UNIQUEIDENTIFIER",
			dialect.MySQL:     "CHAR(36)",
			dialect.Oracle:    "RAW(16)",
			dialect.DB2:       "CHAR(36)",
			dialect.Derby:     "CHAR(36)",
			dialect.Sybase:    "CHAR(36)",
			dialect.SQLite:    "TEXT",
		},
	}, "uuid", "uniqueidentifier")
	return m
}()
