// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ariga.io/colmod/sql/dialect"
)

var (
	reNumber = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?$`)
	// Current time keywords and functions that can be used as
	// column defaults without being wrapped as expressions.
	reNow = regexp.MustCompile(`(?i)^((current_timestamp|localtime|localtimestamp|current_date|current_time|sysdate|systimestamp)(\(\d*\))?|(now|getdate)\(\d*\))$`)
)

// RenderLiteral renders the given default value as a literal of the column
// type, in the syntax of the dialect.
func (r Renderer) RenderLiteral(v, typ string, d dialect.Dialect) (string, error) {
	t, err := Parse(typ)
	if err != nil {
		return "", err
	}
	return Literal(v, t, d)
}

// Literal formats the default value as a literal of the parsed type.
//
// Values of numeric types must be numbers, and values of boolean types are
// written in the dialect spelling. Date and time types accept the current
// time keywords as-is. NULL is accepted by all of them. Any other value,
// including all values of character and unknown types, is quoted as a
// string literal. Expressions are rendered with RenderExpr instead.
func Literal(v string, t *Desc, d dialect.Dialect) (string, error) {
	var k litKind
	if f, ok := families[t.Name]; ok {
		k = f.literal
	}
	s := strings.TrimSpace(v)
	if k != litString && strings.EqualFold(s, "null") {
		return "NULL", nil
	}
	switch k {
	case litNumber:
		if !reNumber.MatchString(s) {
			return "", fmt.Errorf("types: invalid %s value %q", t.Name, v)
		}
		return s, nil
	case litBool:
		switch strings.ToLower(s) {
		case "true", "1":
			return boolLiteral(true, d), nil
		case "false", "0":
			return boolLiteral(false, d), nil
		}
		return "", fmt.Errorf("types: invalid %s value %q", t.Name, v)
	case litTime:
		if reNow.MatchString(s) {
			return s, nil
		}
	}
	return Quote(v, d), nil
}

// RenderExpr renders the given raw SQL expression as a default value. MySQL
// servers that support expression defaults require them to be wrapped in
// parentheses, unless they are literals or current time keywords.
func (r Renderer) RenderExpr(x string, d dialect.Dialect) (string, error) {
	x = strings.TrimSpace(x)
	if x == "" {
		return "", errors.New("types: empty default expression")
	}
	if d != dialect.MySQL || !r.Version.SupportsExprDefault() {
		return x, nil
	}
	switch {
	case strings.EqualFold(x, "null"), reNumber.MatchString(x), isQuoted(x), reNow.MatchString(x),
		strings.HasPrefix(x, "(") && strings.HasSuffix(x, ")"):
		return x, nil
	}
	return "(" + x + ")", nil
}

// Quote quotes the given string as a single-quoted SQL literal.
func Quote(s string, d dialect.Dialect) string {
	if d == dialect.MySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// boolLiteral returns the boolean literal of the dialect. Dialects
// that store booleans as numbers or bits use 1 and 0.
func boolLiteral(b bool, d dialect.Dialect) string {
	switch d {
	case dialect.MySQL, dialect.MSSQL, dialect.Sybase, dialect.SybaseASA, dialect.Oracle, dialect.DB2, dialect.Derby:
		if b {
			return "1"
		}
		return "0"
	default:
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\''
}

// AutoIncrement renders the auto increment clause of a column.
// A zero Start or Increment defaults to 1.
type AutoIncrement struct {
	Start, Increment int64
}

// AutoIncrementClause returns the auto increment clause for the dialect.
func (a AutoIncrement) AutoIncrementClause(d dialect.Dialect) string {
	start, inc := a.Start, a.Increment
	if start == 0 {
		start = 1
	}
	if inc == 0 {
		inc = 1
	}
	custom := start != 1 || inc != 1
	switch d {
	case dialect.MySQL, dialect.H2:
		return "AUTO_INCREMENT"
	case dialect.MSSQL:
		return "IDENTITY (" + strconv.FormatInt(start, 10) + ", " + strconv.FormatInt(inc, 10) + ")"
	case dialect.Sybase:
		return "IDENTITY"
	case dialect.SybaseASA:
		return "DEFAULT AUTOINCREMENT"
	case dialect.SQLite:
		return "AUTOINCREMENT"
	default:
		clause := "GENERATED BY DEFAULT AS IDENTITY"
		if custom {
			clause += " (START WITH " + strconv.FormatInt(start, 10) + " INCREMENT BY " + strconv.FormatInt(inc, 10) + ")"
		}
		return clause
	}
}
