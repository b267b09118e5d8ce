// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"bufio"
	"errors"
	"io"

	"github.com/spf13/afero"
)

// ReadLines opens path on fsys and calls fn with each line, newline included,
// stopping after maxLines lines or at end of file. maxLines <= 0 reads every
// line. A final line without a trailing newline is delivered as-is.
// It returns the number of lines delivered.
func ReadLines(fsys afero.Fs, path string, maxLines int, fn func(line string) error) (count int, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return 0, newPathError(OpOpen, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newPathError(OpClose, path, cerr)
		}
	}()

	r := bufio.NewReader(f)
	for maxLines <= 0 || count < maxLines {
		line, rerr := r.ReadString('\n')
		if line != "" {
			if err := fn(line); err != nil {
				return count, err
			}
			count++
		}
		if errors.Is(rerr, io.EOF) {
			return count, nil
		}
		if rerr != nil {
			return count, newPathError(OpRead, path, rerr)
		}
	}
	return count, nil
}

// ReadBuffered forwards the whole of path to w line by line and returns the
// number of bytes written.
func ReadBuffered(w io.Writer, fsys afero.Fs, path string) (int64, error) {
	var written int64
	_, err := ReadLines(fsys, path, 0, func(line string) error {
		n, err := io.WriteString(w, line)
		written += int64(n)
		return err
	})
	return written, err
}

// ReadDirNames opens dir on fsys and returns its entry names in the order the
// filesystem yields them.
func ReadDirNames(fsys afero.Fs, dir string) (names []string, err error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, newPathError(OpOpen, dir, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newPathError(OpClose, dir, cerr)
		}
	}()

	names, err = f.Readdirnames(-1)
	if err != nil {
		return nil, newPathError(OpRead, dir, err)
	}
	return names, nil
}
