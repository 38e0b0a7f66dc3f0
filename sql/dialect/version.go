// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package dialect

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version holds the server version of the target database, as returned
// by the server. For example, "8.0.13" or "5.5.5-10.4.7-MariaDB". The zero
// Version is unknown and compares below any other version.
type Version string

// Maria reports if the version is a MariaDB version.
func (v Version) Maria() bool {
	return strings.Index(string(v), "MariaDB") > 0
}

// TiDB reports if the version is a TiDB version.
func (v Version) TiDB() bool {
	return strings.Index(string(v), "TiDB") > 0
}

// SupportsExprDefault reports if the version supports
// expressions in the DEFAULT clause of a MySQL column.
func (v Version) SupportsExprDefault() bool {
	u := "8.0.13"
	if v.Maria() {
		u = "10.2.1"
	}
	return v.GTE(u)
}

// Compare returns an integer comparing two versions according to
// semantic version precedence.
func (v Version) Compare(w string) int {
	u := string(v)
	switch idx := strings.Index(u, "-"); {
	case v.Maria():
		u = u[:strings.Index(u, "MariaDB")-1]
		// MariaDB servers may prefix their version with a fake MySQL one.
		if i := strings.LastIndex(u, "-"); i > 0 {
			u = u[i+1:]
		}
	case v.TiDB():
		u = u[:strings.Index(u, "TiDB")-1]
	case idx > 0:
		// Remove server build information, if any.
		u = u[:idx]
	}
	return semver.Compare("v"+u, "v"+w)
}

// GTE reports if the version is >= w.
func (v Version) GTE(w string) bool { return v.Compare(w) >= 0 }

// LT reports if the version is < w.
func (v Version) LT(w string) bool { return v.Compare(w) == -1 }
