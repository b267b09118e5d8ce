// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"errors"
	"fmt"
)

// Op identifies the file operation that failed.
type Op string

const (
	// OpOpen is a failure to open a file or directory.
	OpOpen Op = "open"
	// OpRead is a failure while reading a file or enumerating a directory.
	OpRead Op = "read"
	// OpClose is a failure to release a handle.
	OpClose Op = "close"
)

// PathError records a failed operation on a specific path.
type PathError struct {
	Op   Op
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// OpOf returns the operation recorded in the first *PathError in err's chain.
func OpOf(err error) (Op, bool) {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.Op, true
	}
	return "", false
}

func newPathError(op Op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
