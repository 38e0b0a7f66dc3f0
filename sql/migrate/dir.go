// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package migrate

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

type (
	// Dir wraps the functionality used to interact with a migration directory.
	Dir interface {
		fs.FS
		// WriteFile writes the data to the named file.
		WriteFile(string, []byte) error

		// Files returns a set of files stored in this Dir to be executed on a database.
		Files() ([]File, error)
	}

	// LocalDir implements Dir for a local migration directory.
	LocalDir struct {
		path string
	}

	// HashFile represents the integrity sum file of the migration dir.
	HashFile []struct{ N, H string }
)

// HashFileName is the default name for a hash file.
const HashFileName = "atlas.sum"

var (
	// ErrChecksumFormat is returned from Validate if the sum files format is invalid.
	ErrChecksumFormat = errors.New("checksum file format invalid")
	// ErrChecksumMismatch is returned from Validate if the hash sums don't match.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrChecksumNotFound is returned from Validate if the hash file does not exist.
	ErrChecksumNotFound = errors.New("checksum file not found")
)

// NewLocalDir returns a new LocalDir for the given path. The directory must exist.
func NewLocalDir(path string) (*LocalDir, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("sql/migrate: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("sql/migrate: %q is not a dir", path)
	}
	return &LocalDir{path: path}, nil
}

// Path returns the local path used for opening this dir.
func (d *LocalDir) Path() string {
	return d.path
}

// Open implements fs.FS.
func (d *LocalDir) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(d.path, name))
}

// WriteFile implements Dir.WriteFile.
func (d *LocalDir) WriteFile(name string, b []byte) error {
	return os.WriteFile(filepath.Join(d.path, name), b, 0644)
}

// Files implements Dir.Files. It returns the ".sql" files of the
// directory, sorted by their names.
func (d *LocalDir) Files() ([]File, error) {
	names, err := fs.Glob(os.DirFS(d.path), "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	files := make([]File, 0, len(names))
	for _, n := range names {
		b, err := os.ReadFile(filepath.Join(d.path, n))
		if err != nil {
			return nil, fmt.Errorf("sql/migrate: read file %q: %w", n, err)
		}
		files = append(files, NewLocalFile(n, b))
	}
	return files, nil
}

// Checksum returns the HashFile of the migration files in the directory.
func Checksum(dir Dir) (HashFile, error) {
	files, err := dir.Files()
	if err != nil {
		return nil, err
	}
	return NewHashFile(files)
}

// NewHashFile computes and returns a HashFile from the given files. Files
// that start with the "atlas:sum ignore" directive do not get a line in the
// sum file, but their names are still part of the cumulative hash.
func NewHashFile(files []File) (HashFile, error) {
	var (
		hs HashFile
		h  = sha256.New()
	)
	for _, f := range files {
		if _, err := h.Write([]byte(f.Name())); err != nil {
			return nil, err
		}
		if mode, ok := Directive(string(f.Bytes()), "", directiveSum); ok && mode == sumModeIgnore {
			continue
		}
		if mode, ok := Directive(string(f.Bytes()), directivePrefixSQL, directiveSum); ok && mode == sumModeIgnore {
			continue
		}
		if _, err := h.Write(f.Bytes()); err != nil {
			return nil, err
		}
		hs = append(hs, struct{ N, H string }{f.Name(), base64.StdEncoding.EncodeToString(h.Sum(nil))})
	}
	return hs, nil
}

// WriteSumFile writes the given HashFile to the Dir.
func WriteSumFile(dir Dir, sum HashFile) error {
	b, err := sum.MarshalText()
	if err != nil {
		return err
	}
	return dir.WriteFile(HashFileName, b)
}

// Validate checks if the migration dir is in sync with its sum file.
func Validate(dir Dir) error {
	fh, err := readHashFile(dir)
	if errors.Is(err, fs.ErrNotExist) {
		// Empty directories do not need a sum file.
		files, err := dir.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		return ErrChecksumNotFound
	}
	if err != nil {
		return err
	}
	mh, err := Checksum(dir)
	if err != nil {
		return err
	}
	if fh.Sum() != mh.Sum() {
		return ErrChecksumMismatch
	}
	return nil
}

// WritePlan formats the plan with the given Formatter and writes the resulting
// files to the directory. If sum is true, the sum file is updated as well.
func WritePlan(dir Dir, f Formatter, plan *Plan, sum bool) ([]File, error) {
	files, err := f.Format(plan)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := dir.WriteFile(file.Name(), file.Bytes()); err != nil {
			return nil, fmt.Errorf("sql/migrate: write file %q: %w", file.Name(), err)
		}
	}
	if sum {
		hf, err := Checksum(dir)
		if err != nil {
			return nil, err
		}
		if err := WriteSumFile(dir, hf); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f HashFile) MarshalText() ([]byte, error) {
	buf := new(bytes.Buffer)
	for _, f := range f {
		fmt.Fprintf(buf, "%s h1:%s\n", f.N, f.H)
	}
	return []byte(fmt.Sprintf("h1:%s\n%s", f.Sum(), buf.Bytes())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *HashFile) UnmarshalText(b []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(b))
	if !sc.Scan() {
		return ErrChecksumFormat
	}
	sum := strings.TrimPrefix(sc.Text(), "h1:")
	for sc.Scan() {
		li := strings.SplitN(sc.Text(), "h1:", 2)
		if len(li) != 2 {
			return ErrChecksumFormat
		}
		*f = append(*f, struct{ N, H string }{strings.TrimSpace(li[0]), li[1]})
	}
	if sum != f.Sum() {
		return ErrChecksumMismatch
	}
	return sc.Err()
}

// Sum returns the checksum of the represented hash file.
func (f HashFile) Sum() string {
	sha := sha256.New()
	for _, f := range f {
		sha.Write([]byte(f.N))
		sha.Write([]byte(f.H))
	}
	return base64.StdEncoding.EncodeToString(sha.Sum(nil))
}

const (
	directiveSum       = "sum"
	sumModeIgnore      = "ignore"
	directivePrefixSQL = "-- "
)

var reDirective = regexp.MustCompile(`^([ -~]*)atlas:(\w+)(?: +([ -~]*))*`)

// Directive searches in the content a line that matches a directive
// with the given prefix and name. For example:
//
//	Directive(b, "-- ", "sum")
//	Directive(b, "", "sum")
func Directive(content, prefix, name string) (string, bool) {
	m := reDirective.FindStringSubmatch(content)
	if len(m) == 4 && m[1] == prefix && m[2] == name {
		return m[3], true
	}
	return "", false
}

// readHashFile reads the HashFile from the given Dir.
func readHashFile(dir Dir) (HashFile, error) {
	f, err := dir.Open(HashFileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var fh HashFile
	if err := fh.UnmarshalText(b); err != nil {
		return nil, err
	}
	return fh, nil
}
