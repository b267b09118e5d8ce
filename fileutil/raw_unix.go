//go:build unix

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// DefaultChunkSize is the read(2) size used by the unbuffered strategy.
const DefaultChunkSize = 1024

// errCapReached stops a chunk loop once ReadCapped has enough bytes.
var errCapReached = errors.New("capture limit reached")

// ReadChunks reads path with raw open/read/close system calls, calling fn
// with each chunk in order. The slice passed to fn is reused between calls.
// A non-nil error from fn stops the loop and is returned unchanged.
func ReadChunks(path string, chunkSize int, fn func(chunk []byte) error) (err error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	fd, err := openReadOnly(path)
	if err != nil {
		return newPathError(OpOpen, path, err)
	}
	defer func() {
		if cerr := unix.Close(fd); cerr != nil && err == nil {
			err = newPathError(OpClose, path, cerr)
		}
	}()

	buf := make([]byte, chunkSize)
	for {
		n, rerr := unix.Read(fd, buf)
		if rerr == unix.EINTR {
			continue
		}
		if rerr != nil {
			return newPathError(OpRead, path, rerr)
		}
		if n == 0 {
			return nil
		}
		if err := fn(buf[:n]); err != nil {
			return err
		}
	}
}

// ReadRaw forwards the content of path to w using the unbuffered strategy and
// returns the number of bytes written.
func ReadRaw(w io.Writer, path string, chunkSize int) (int64, error) {
	var written int64
	err := ReadChunks(path, chunkSize, func(chunk []byte) error {
		n, err := w.Write(chunk)
		written += int64(n)
		return err
	})
	return written, err
}

// ReadCapped returns at most limit bytes from the start of path. Anything
// past the limit is left unread.
func ReadCapped(path string, limit, chunkSize int) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	if chunkSize <= 0 || chunkSize > limit {
		chunkSize = limit
	}

	data := make([]byte, 0, chunkSize)
	err := ReadChunks(path, chunkSize, func(chunk []byte) error {
		room := limit - len(data)
		if len(chunk) >= room {
			data = append(data, chunk[:room]...)
			return errCapReached
		}
		data = append(data, chunk...)
		return nil
	})
	if err != nil && !errors.Is(err, errCapReached) {
		return nil, err
	}
	return data, nil
}

func openReadOnly(path string) (int, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		return fd, err
	}
}
