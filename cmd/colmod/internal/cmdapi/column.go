// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ariga.io/colmod/sql/schema"
)

// columnsFlag implements pflag.Value for the repeatable --column flag.
// Each value describes one column in a key=value list. For example:
//
//	--column 'name=id,type=bigint,null=false,auto_increment,primary_key'
//	--column 'name=price,type=decimal(10,2),default=0'
//	--column 'name=uid,type=varchar(36),expr=uuid()'
type columnsFlag []schema.Column

// String implements pflag.Value.String.
func (c *columnsFlag) String() string {
	names := make([]string, len(*c))
	for i, col := range *c {
		names[i] = col.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Set implements pflag.Value.Set.
func (c *columnsFlag) Set(s string) error {
	col, err := parseColumn(s)
	if err != nil {
		return err
	}
	*c = append(*c, col)
	return nil
}

// Type implements pflag.Value.Type.
func (c *columnsFlag) Type() string {
	return "name=<name>,type=<type>[,...]"
}

// parseColumn parses a single column definition.
func parseColumn(s string) (schema.Column, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil {
		return schema.Column{}, fmt.Errorf("parsing column %q: %w", s, err)
	}
	var (
		name, typ string
		attrs     []func(schema.Column) schema.Column
	)
	for _, f := range mergeFields(fields) {
		k, v, hasV := strings.Cut(f, "=")
		switch k = strings.ToLower(strings.TrimSpace(k)); k {
		case "name":
			name = strings.TrimSpace(v)
		case "type":
			typ = strings.TrimSpace(v)
		case "default":
			v := unquote(v)
			attrs = append(attrs, func(c schema.Column) schema.Column { return c.SetDefault(v) })
		case "expr":
			attrs = append(attrs, func(c schema.Column) schema.Column { return c.SetDefaultExpr(v) })
		case "null", "nullable", "auto_increment", "primary_key", "pk":
			b, err := boolValue(v, hasV)
			if err != nil {
				return schema.Column{}, fmt.Errorf("parsing column attribute %q: %w", k, err)
			}
			attrs = append(attrs, boolAttr(k, b))
		case "":
		default:
			return schema.Column{}, fmt.Errorf("unknown column attribute %q", k)
		}
	}
	if name == "" {
		return schema.Column{}, fmt.Errorf("missing column name in %q", s)
	}
	c := schema.NewColumn(name, typ)
	for _, attr := range attrs {
		c = attr(c)
	}
	return c, nil
}

func boolAttr(k string, b bool) func(schema.Column) schema.Column {
	return func(c schema.Column) schema.Column {
		switch k {
		case "null", "nullable":
			return c.SetNull(b)
		case "auto_increment":
			return c.SetAutoIncrement(b)
		default:
			return c.SetPrimaryKey(b)
		}
	}
}

// boolValue parses the value of a boolean attribute. A bare
// attribute, such as "primary_key", is considered true.
func boolValue(v string, hasV bool) (bool, error) {
	if !hasV {
		return true, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

// mergeFields joins fields that were split on commas inside
// parentheses or single-quoted literals, e.g. "decimal(10,2)".
func mergeFields(fields []string) []string {
	merged := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		for !balanced(f) && i+1 < len(fields) {
			i++
			f += "," + fields[i]
		}
		merged = append(merged, f)
	}
	return merged
}

// unquote returns the value of a single-quoted default, as
// values with commas are quoted to be kept in one field.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}

func balanced(s string) bool {
	return strings.Count(s, "(") <= strings.Count(s, ")") && strings.Count(s, "'")%2 == 0
}
