// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package migrate_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"ariga.io/colmod/sql/migrate"

	"github.com/stretchr/testify/require"
)

func TestLocalDir(t *testing.T) {
	// Files don't work.
	d, err := migrate.NewLocalDir("migrate.go")
	require.ErrorContains(t, err, "sql/migrate: \"migrate.go\" is not a dir")
	require.Nil(t, d)

	// Does not create a dir for you.
	d, err = migrate.NewLocalDir("foo/bar")
	require.EqualError(t, err, "sql/migrate: stat foo/bar: no such file or directory")
	require.Nil(t, d)

	// Open and WriteFile work.
	p := t.TempDir()
	d, err = migrate.NewLocalDir(p)
	require.NoError(t, err)
	require.Equal(t, p, d.Path())
	require.NoError(t, d.WriteFile("name", []byte("content")))
	f, err := d.Open("name")
	require.NoError(t, err)
	i, err := f.Stat()
	require.NoError(t, err)
	require.Equal(t, i.Name(), "name")
	c, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "content", string(c))
	require.NoError(t, f.Close())

	// Only sql files are returned, sorted by name.
	require.NoError(t, d.WriteFile("2_b.sql", []byte("B;")))
	require.NoError(t, d.WriteFile("1_a.sql", []byte("A;")))
	files, err := d.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "1_a.sql", files[0].Name())
	require.Equal(t, "2_b.sql", files[1].Name())
	require.Equal(t, []byte("B;"), files[1].Bytes())
}

func TestWritePlan(t *testing.T) {
	var (
		p    = t.TempDir()
		plan = &migrate.Plan{
			Name:          "modifyColumn_users",
			Transactional: true,
			Changes:       []*migrate.Change{{Cmd: "ALTER TABLE users ALTER COLUMN id TYPE BIGINT", Comment: `modify "id" column`}},
		}
	)
	d, err := migrate.NewLocalDir(p)
	require.NoError(t, err)
	require.NoError(t, migrate.Validate(d), "empty dir does not require a sum file")
	f, err := migrate.NewGolangMigrateFormatter()
	require.NoError(t, err)
	files, err := migrate.WritePlan(d, f, plan, true)
	require.NoError(t, err)
	require.Len(t, files, 1, "irreversible plans have no down file")
	require.FileExists(t, filepath.Join(p, files[0].Name()))
	require.FileExists(t, filepath.Join(p, migrate.HashFileName))
	require.NoError(t, migrate.Validate(d))

	// A manual change invalidates the directory.
	require.NoError(t, os.WriteFile(filepath.Join(p, files[0].Name()), []byte("DROP TABLE users;\n"), 0644))
	require.ErrorIs(t, migrate.Validate(d), migrate.ErrChecksumMismatch)

	// Disable sum.
	p = t.TempDir()
	d, err = migrate.NewLocalDir(p)
	require.NoError(t, err)
	_, err = migrate.WritePlan(d, f, plan, false)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(p, migrate.HashFileName))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorIs(t, migrate.Validate(d), migrate.ErrChecksumNotFound)
}

func TestHashFile(t *testing.T) {
	files := []migrate.File{
		migrate.NewLocalFile("1_a.sql", []byte("A;\n")),
		migrate.NewLocalFile("2_b.sql", []byte("-- atlas:sum ignore\nB;\n")),
		migrate.NewLocalFile("3_c.sql", []byte("C;\n")),
	}
	hf, err := migrate.NewHashFile(files)
	require.NoError(t, err)
	require.Len(t, hf, 2)
	require.Equal(t, "1_a.sql", hf[0].N)
	require.Equal(t, "3_c.sql", hf[1].N)

	b, err := hf.MarshalText()
	require.NoError(t, err)
	require.Regexp(t, `^h1:\S+\n1_a\.sql h1:\S+\n3_c\.sql h1:\S+\n$`, string(b))
	var ac migrate.HashFile
	require.NoError(t, ac.UnmarshalText(b))
	require.Equal(t, hf, ac)

	ac = nil
	require.ErrorIs(t, ac.UnmarshalText(append(b, "foo"...)), migrate.ErrChecksumFormat)
	ac = nil
	require.ErrorIs(t, ac.UnmarshalText(append([]byte("h1:x\n"), b[len("h1:")+44+1:]...)), migrate.ErrChecksumMismatch)
	ac = nil
	require.ErrorIs(t, ac.UnmarshalText(nil), migrate.ErrChecksumFormat)
}

func TestDirective(t *testing.T) {
	v, ok := migrate.Directive("-- atlas:sum ignore\nB;", "-- ", "sum")
	require.True(t, ok)
	require.Equal(t, "ignore", v)
	_, ok = migrate.Directive("-- atlas:sum ignore", "", "sum")
	require.False(t, ok)
	_, ok = migrate.Directive("B;\n-- atlas:sum ignore", "-- ", "sum")
	require.False(t, ok)
	v, ok = migrate.Directive("atlas:sum", "", "sum")
	require.True(t, ok)
	require.Empty(t, v)
}
