// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package sqlx

import (
	"regexp"
	"strings"

	"ariga.io/colmod/sql/dialect"
)

// Escaper escapes schema, table and column identifiers for a dialect.
// By default, identifiers are quoted only when they are not plain
// identifiers or collide with a reserved word. The zero value is ready
// for use.
type Escaper struct {
	// QuoteAll forces quoting of all identifiers.
	QuoteAll bool
}

// EscapeTable returns the escaped, optionally schema-qualified, table name.
func (e Escaper) EscapeTable(schema, table string, d dialect.Dialect) string {
	if schema == "" {
		return e.Escape(table, d)
	}
	return e.Escape(schema, d) + "." + e.Escape(table, d)
}

// EscapeColumn returns the escaped column name.
func (e Escaper) EscapeColumn(column string, d dialect.Dialect) string {
	return e.Escape(column, d)
}

// Escape escapes a single identifier.
func (e Escaper) Escape(ident string, d dialect.Dialect) string {
	if !e.QuoteAll && !MustQuote(ident) {
		return ident
	}
	open, closing := quotes(d)
	var b strings.Builder
	b.WriteByte(open)
	for i := 0; i < len(ident); i++ {
		// Escape the closing quote by doubling it.
		if ident[i] == closing {
			b.WriteByte(closing)
		}
		b.WriteByte(ident[i])
	}
	b.WriteByte(closing)
	return b.String()
}

// quotes returns the opening and closing quote characters of the dialect.
func quotes(d dialect.Dialect) (byte, byte) {
	switch d {
	case dialect.MySQL:
		return '`', '`'
	case dialect.MSSQL, dialect.Sybase, dialect.SybaseASA:
		return '[', ']'
	default:
		return '"', '"'
	}
}

var rePlain = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MustQuote reports if the identifier must be quoted in order to be used in
// a statement, because it is not a plain identifier or it is a reserved word.
func MustQuote(ident string) bool {
	if !rePlain.MatchString(ident) {
		return true
	}
	_, ok := reserved[strings.ToUpper(ident)]
	return ok
}

// reserved holds words that are reserved in the SQL standard
// and in most of the supported dialects.
var reserved = func() map[string]struct{} {
	words := strings.Fields(`
		ADD ALL ALTER AND ANY AS ASC BETWEEN BY CASE CAST CHECK COLUMN CONSTRAINT
		CREATE CROSS CURRENT_DATE CURRENT_TIME CURRENT_TIMESTAMP CURRENT_USER
		DEFAULT DELETE DESC DISTINCT DROP ELSE END EXCEPT EXISTS FALSE FETCH FOR
		FOREIGN FROM FULL GRANT GROUP HAVING IN INDEX INNER INSERT INTERSECT INTO
		IS JOIN KEY LEFT LIKE LIMIT NOT NULL ON OR ORDER OUTER PRIMARY REFERENCES
		RIGHT ROW ROWS SELECT SESSION_USER SET SOME TABLE THEN TO TRUE UNION UNIQUE
		UPDATE USER USING VALUES WHEN WHERE WITH`)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
