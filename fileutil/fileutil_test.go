// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionText = "Linux version 6.1.0-test (builder@host) (gcc 12.2.0) #1 SMP PREEMPT_DYNAMIC\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadChunks_SplitsAtChunkSize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data", "abcdefghij")

	var chunks []string
	err := ReadChunks(path, 4, func(chunk []byte) error {
		chunks = append(chunks, string(chunk))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
}

func TestReadChunks_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty", "")

	calls := 0
	err := ReadChunks(path, DefaultChunkSize, func([]byte) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestReadChunks_DefaultChunkSizeForNonPositive(t *testing.T) {
	content := strings.Repeat("x", DefaultChunkSize+10)
	path := writeFile(t, t.TempDir(), "big", content)

	var sizes []int
	err := ReadChunks(path, 0, func(chunk []byte) error {
		sizes = append(sizes, len(chunk))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{DefaultChunkSize, 10}, sizes)
}

func TestReadChunks_CallbackErrorStopsLoop(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data", "abcdefghij")
	stop := errors.New("stop")

	calls := 0
	err := ReadChunks(path, 2, func([]byte) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestReadChunks_OpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	err := ReadChunks(path, DefaultChunkSize, func([]byte) error { return nil })

	require.Error(t, err)
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, OpOpen, pathErr.Op)
	assert.Equal(t, path, pathErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "open "+path)
}

func TestReadChunks_ReadFailureOnDirectory(t *testing.T) {
	dir := t.TempDir()

	err := ReadChunks(dir, DefaultChunkSize, func([]byte) error { return nil })

	op, ok := OpOf(err)
	require.True(t, ok, "expected a *PathError, got %v", err)
	assert.Equal(t, OpRead, op)
}

func TestReadRaw_ForwardsContent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "version", versionText)

	var buf bytes.Buffer
	n, err := ReadRaw(&buf, path, 16)

	require.NoError(t, err)
	assert.Equal(t, int64(len(versionText)), n)
	assert.Equal(t, versionText, buf.String())
}

func TestReadCapped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cmdline", "0123456789")

	tests := []struct {
		name      string
		limit     int
		chunkSize int
		expected  string
	}{
		{"under limit", 64, 4, "0123456789"},
		{"exact limit", 10, 4, "0123456789"},
		{"truncated", 6, 4, "012345"},
		{"chunk larger than limit", 3, 1024, "012"},
		{"zero limit", 0, 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadCapped(path, tt.limit, tt.chunkSize)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestReadCapped_OpenFailure(t *testing.T) {
	_, err := ReadCapped(filepath.Join(t.TempDir(), "nope"), 16, 4)

	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpOpen, op)
}

func TestReadLines_CapsLineCount(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/proc", 0o755))
	var content strings.Builder
	for i := 0; i < 15; i++ {
		content.WriteString("line\n")
	}
	require.NoError(t, afero.WriteFile(memFs, "/proc/cpuinfo", []byte(content.String()), 0o444))

	var lines []string
	count, err := ReadLines(memFs, "/proc/cpuinfo", 10, func(line string) error {
		lines = append(lines, line)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 10, count)
	assert.Len(t, lines, 10)
}

func TestReadLines_FewerLinesThanCap(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/proc", 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/proc/meminfo", []byte("a\nb\nc\n"), 0o444))

	var lines []string
	count, err := ReadLines(memFs, "/proc/meminfo", 10, func(line string) error {
		lines = append(lines, line)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, lines)
}

func TestReadLines_FinalLineWithoutNewline(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/proc", 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/f", []byte("one\ntwo"), 0o444))

	var lines []string
	count, err := ReadLines(memFs, "/f", 0, func(line string) error {
		lines = append(lines, line)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"one\n", "two"}, lines)
}

func TestReadLines_OpenFailure(t *testing.T) {
	_, err := ReadLines(afero.NewMemMapFs(), "/proc/missing", 10, func(string) error { return nil })

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, OpOpen, pathErr.Op)
	assert.Equal(t, "/proc/missing", pathErr.Path)
}

func TestReadBuffered_MatchesRawRead(t *testing.T) {
	content := versionText + strings.Repeat("0123456789abcdef", 300) + "\nlast line without newline"
	path := writeFile(t, t.TempDir(), "version", content)

	var chunks []string
	require.NoError(t, ReadChunks(path, 7, func(chunk []byte) error {
		chunks = append(chunks, string(chunk))
		return nil
	}))

	var lines []string
	_, err := ReadLines(afero.NewOsFs(), path, 0, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)

	var buffered bytes.Buffer
	_, err = ReadBuffered(&buffered, afero.NewOsFs(), path)
	require.NoError(t, err)

	assert.Equal(t, content, strings.Join(chunks, ""))
	assert.Equal(t, content, strings.Join(lines, ""))
	assert.Equal(t, content, buffered.String())
}

func TestReadDirNames(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/proc", 0o755))
	for _, name := range []string{"1", "2", "abc", "42"} {
		require.NoError(t, memFs.MkdirAll("/proc/"+name, 0o555))
	}

	names, err := ReadDirNames(memFs, "/proc")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "abc", "42"}, names)
}

func TestReadDirNames_OpenFailure(t *testing.T) {
	_, err := ReadDirNames(afero.NewMemMapFs(), "/does/not/exist")

	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpOpen, op)
}

func TestPathError(t *testing.T) {
	cause := errors.New("boom")
	err := &PathError{Op: OpClose, Path: "/proc", Err: cause}

	assert.Equal(t, "close /proc: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	_, ok := OpOf(errors.New("plain"))
	assert.False(t, ok)
}

// faultyFs opens files from the embedded Fs and injects the configured
// failures into every handle it returns.
type faultyFs struct {
	afero.Fs
	readErr  error
	closeErr error
}

func (f faultyFs) Open(name string) (afero.File, error) {
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, readErr: f.readErr, closeErr: f.closeErr}, nil
}

type faultyFile struct {
	afero.File
	readErr  error
	closeErr error
}

func (f *faultyFile) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.File.Read(p)
}

func (f *faultyFile) Readdirnames(n int) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.File.Readdirnames(n)
}

func (f *faultyFile) Close() error {
	err := f.File.Close()
	if f.closeErr != nil {
		return f.closeErr
	}
	return err
}

func newFaultyFs(t *testing.T, readErr, closeErr error) faultyFs {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/proc/1", 0o755))
	require.NoError(t, afero.WriteFile(mem, "/proc/version", []byte(versionText), 0o644))
	return faultyFs{Fs: mem, readErr: readErr, closeErr: closeErr}
}

func TestReadDirNames_ReadFailure(t *testing.T) {
	errIO := errors.New("input/output error")
	fsys := newFaultyFs(t, errIO, nil)

	names, err := ReadDirNames(fsys, "/proc")

	require.ErrorIs(t, err, errIO)
	assert.Nil(t, names)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpRead, op)
	assert.Contains(t, err.Error(), "read /proc: ")
}

func TestReadDirNames_CloseFailure(t *testing.T) {
	errClose := errors.New("bad file descriptor")
	fsys := newFaultyFs(t, nil, errClose)

	names, err := ReadDirNames(fsys, "/proc")

	require.ErrorIs(t, err, errClose)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpClose, op)
	assert.ElementsMatch(t, []string{"1", "version"}, names)
}

func TestReadDirNames_ReadFailureWinsOverClose(t *testing.T) {
	errIO := errors.New("input/output error")
	fsys := newFaultyFs(t, errIO, errors.New("bad file descriptor"))

	_, err := ReadDirNames(fsys, "/proc")

	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpRead, op)
}

func TestReadLines_ReadFailure(t *testing.T) {
	errIO := errors.New("input/output error")
	fsys := newFaultyFs(t, errIO, nil)

	count, err := ReadLines(fsys, "/proc/version", 0, func(string) error { return nil })

	require.ErrorIs(t, err, errIO)
	assert.Zero(t, count)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpRead, op)
}

func TestReadLines_CloseFailure(t *testing.T) {
	errClose := errors.New("bad file descriptor")
	fsys := newFaultyFs(t, nil, errClose)

	var lines []string
	count, err := ReadLines(fsys, "/proc/version", 0, func(line string) error {
		lines = append(lines, line)
		return nil
	})

	require.ErrorIs(t, err, errClose)
	op, ok := OpOf(err)
	require.True(t, ok)
	assert.Equal(t, OpClose, op)
	assert.Equal(t, "close /proc/version: bad file descriptor", err.Error())
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{versionText}, lines)
}
