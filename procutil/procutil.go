// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"bytes"
	"context"
	"strconv"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessKind is the classification tag printed next to every PID entry.
const ProcessKind = "process"

// EmptyCmdline is printed in place of a command-line record with no bytes,
// as is the case for kernel threads and zombies.
const EmptyCmdline = "(empty)"

// ProcessEntry is a single PID directory found while listing the proc root.
type ProcessEntry struct {
	Name string
	Kind string
}

// NewProcessEntry returns the entry for name if it is a process identifier.
func NewProcessEntry(name string) (ProcessEntry, bool) {
	if !IsNumericName(name) {
		return ProcessEntry{}, false
	}
	return ProcessEntry{Name: name, Kind: ProcessKind}, true
}

// IsNumericName reports whether name is non-empty and made only of the ASCII
// digits '0' through '9'. Bytes are compared directly, so signs, whitespace
// and non-ASCII digits are all rejected.
func IsNumericName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}

// FormatCmdline renders a raw cmdline record as one line of text.
// Every NUL separator becomes a single space and the trailing separators
// are dropped, so "ls\x00-la\x00" renders as "ls -la". A record with no
// bytes, or only NULs, renders as EmptyCmdline.
func FormatCmdline(raw []byte) string {
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	if end == 0 {
		return EmptyCmdline
	}
	return string(bytes.ReplaceAll(raw[:end], []byte{0}, []byte{' '}))
}

// IsProcessRunning checks if a process with the given PID is running.
// It uses gopsutil, which reads /proc on Linux and native APIs elsewhere.
func IsProcessRunning(pid int32) bool {
	if pid <= 0 {
		return false
	}

	exists, err := process.PidExistsWithContext(context.Background(), pid)
	if err != nil {
		return false
	}
	return exists
}

// ParsePID converts a numeric directory name into a PID.
// It returns false for names that are not numeric or overflow int32.
func ParsePID(name string) (int32, bool) {
	if !IsNumericName(name) {
		return 0, false
	}
	pid, err := strconv.ParseInt(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(pid), true
}
