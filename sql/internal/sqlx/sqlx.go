// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package sqlx

import (
	"strings"
)

// Builder provides a minimal string builder for SQL statements.
// Phrases written with P are separated by a single space, while
// Raw writes its input as-is for dialect-specific separators.
type Builder struct {
	strings.Builder
}

// Build instantiates a new builder and writes the given phrase to it.
func Build(phrase string) *Builder {
	b := &Builder{}
	return b.P(phrase)
}

// P writes a list of phrases to the builder separated and
// suffixed with whitespace.
func (b *Builder) P(phrases ...string) *Builder {
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if b.Len() > 0 && b.lastByte() != ' ' {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b
}

// Raw writes the given strings to the builder without any separator.
func (b *Builder) Raw(s ...string) *Builder {
	for i := range s {
		b.WriteString(s[i])
	}
	return b
}

// Space writes a single space to the builder.
func (b *Builder) Space() *Builder {
	b.WriteByte(' ')
	return b
}

// Clone returns a duplicate of the builder.
func (b *Builder) Clone() *Builder {
	c := &Builder{}
	c.WriteString(b.String())
	return c
}

func (b *Builder) lastByte() byte {
	s := b.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}
