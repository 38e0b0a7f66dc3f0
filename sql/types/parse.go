// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package types renders dialect-neutral column type descriptors and
// default value literals into their dialect-specific SQL syntax.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// A Desc is a parsed dialect-neutral type descriptor. For example,
// "decimal(10, 2) unsigned" is parsed into:
//
//	Desc{Name: "decimal", Args: []string{"10", "2"}, Unsigned: true}
type Desc struct {
	// Name is the lower-cased type name. Multi-word names are
	// separated by a single space (e.g. "timestamp with time zone").
	Name string
	// Args holds the type arguments, if any.
	Args []string
	// Unsigned reports if the UNSIGNED modifier was given.
	Unsigned bool
	// Raw is the descriptor as given by the user, trimmed.
	Raw string
}

// ErrEmptyType is returned when parsing an empty type descriptor.
var ErrEmptyType = errors.New("types: empty type descriptor")

// javaTypes is the prefix of JDBC type constants that is
// accepted for compatibility with existing changelogs.
const javaTypes = "java.sql.types."

// Parse parses the given type descriptor.
func Parse(s string) (*Desc, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, ErrEmptyType
	}
	d := &Desc{Raw: raw}
	name, rest := raw, ""
	if i := strings.IndexByte(raw, '('); i != -1 {
		j, err := closing(raw, i)
		if err != nil {
			return nil, err
		}
		name, rest = raw[:i], raw[j+1:]
		d.Args = splitArgs(raw[i+1 : j])
		if strings.ContainsAny(rest, "()") {
			return nil, fmt.Errorf("types: unexpected token after arguments in %q", raw)
		}
	} else if strings.ContainsRune(raw, ')') {
		return nil, fmt.Errorf("types: unbalanced parentheses in %q", raw)
	}
	words := strings.Fields(strings.ToLower(name + " " + rest))
	if len(words) == 0 {
		return nil, fmt.Errorf("types: missing type name in %q", raw)
	}
	words[0] = strings.TrimPrefix(words[0], javaTypes)
	parts := words[:0]
	for _, w := range words {
		switch w {
		case "unsigned":
			d.Unsigned = true
		case "zerofill", "signed":
		default:
			parts = append(parts, w)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("types: missing type name in %q", raw)
	}
	d.Name = strings.Join(parts, " ")
	return d, nil
}

// closing returns the index of the parenthesis closing the one at position i.
func closing(s string, i int) (int, error) {
	var (
		depth int
		quote byte
	)
	for j := i; j < len(s); j++ {
		switch c := s[j]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth--; depth == 0 {
				return j, nil
			}
		}
	}
	return 0, fmt.Errorf("types: unbalanced parentheses in %q", s)
}

// splitArgs splits the arguments list by commas that are not quoted.
func splitArgs(s string) []string {
	var (
		args  []string
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args
}
