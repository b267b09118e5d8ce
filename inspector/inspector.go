// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package inspector

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jongio/procinspect/cliout"
	"github.com/jongio/procinspect/config"
	"github.com/jongio/procinspect/fileutil"
	"github.com/jongio/procinspect/logutil"
	"github.com/jongio/procinspect/procutil"
	"github.com/spf13/afero"
)

// ErrInvalidPID is returned when a process identifier is not purely numeric.
var ErrInvalidPID = errors.New("invalid process identifier")

// ErrHostFsRequired is returned by the system call strategy when the
// Inspector reads from a filesystem other than the host's.
var ErrHostFsRequired = errors.New("system call reads need the host filesystem")

// Well-known record names under the root.
const (
	CPUInfoFile = "cpuinfo"
	MemInfoFile = "meminfo"
	VersionFile = "version"
	StatusFile  = "status"
	CmdlineFile = "cmdline"
)

// ProgramName is shown in the strace hint printed by CompareReadMethods.
const ProgramName = "procinspect"

// Inspector reads one proc root and prints what it finds.
type Inspector struct {
	cfg config.Config
	fs  afero.Fs
	out *cliout.Printer
	log *logutil.ComponentLogger
}

// Option customizes an Inspector.
type Option func(*Inspector)

// WithFs sets the filesystem the Inspector reads. Listing and buffered reads
// work on any afero.Fs. The system call strategy can only reach the host, so
// with any filesystem other than *afero.OsFs, ReadProcessInfo and the first
// method of CompareReadMethods fail with ErrHostFsRequired.
func WithFs(fs afero.Fs) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// New returns an Inspector for cfg writing to w. A nil cfg uses
// config.Default(). The host filesystem is used unless WithFs is given.
func New(cfg *config.Config, w io.Writer, opts ...Option) *Inspector {
	if cfg == nil {
		cfg = config.Default()
	}
	i := &Inspector{
		cfg: *cfg,
		fs:  afero.NewOsFs(),
		out: cliout.New(w),
		log: logutil.NewLogger("inspector"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Root returns the proc root being inspected.
func (i *Inspector) Root() string {
	return i.cfg.Root
}

// Path joins elem onto the proc root.
func (i *Inspector) Path(elem ...string) string {
	return filepath.Join(append([]string{i.cfg.Root}, elem...)...)
}

// onHost reports whether paths on i.fs are host paths.
func (i *Inspector) onHost() bool {
	_, ok := i.fs.(*afero.OsFs)
	return ok
}

// ListProcesses prints a table of the numeric entries in the root directory
// followed by their count, and returns the count.
func (i *Inspector) ListProcesses() (int, error) {
	log := i.log.WithOperation("list")
	root := i.cfg.Root

	names, err := fileutil.ReadDirNames(i.fs, root)
	if err != nil {
		log.Error("listing failed", "root", root, "error", err)
		return 0, fmt.Errorf("could not list %s: %w", root, err)
	}

	if err := i.out.Printf("Process directories in %s:\n", root); err != nil {
		return 0, err
	}
	if err := i.out.TableHeader("PID", "Type"); err != nil {
		return 0, err
	}

	count := 0
	for _, name := range names {
		entry, ok := procutil.NewProcessEntry(name)
		if !ok {
			continue
		}
		if err := i.out.Row(entry.Name, entry.Kind); err != nil {
			return count, err
		}
		count++
	}

	if err := i.out.Printf("Found %d process directories\n", count); err != nil {
		return count, err
	}
	log.Debug("listing complete", "root", root, "entries", len(names), "processes", count)
	return count, nil
}

// ReadProcessInfo prints the status block and the command line of pid.
// The status file is forwarded verbatim. The command line is capped at the
// configured size, NUL separators become spaces, and an empty record prints
// procutil.EmptyCmdline. If status cannot be read, cmdline is not attempted.
func (i *Inspector) ReadProcessInfo(pid string) error {
	if !procutil.IsNumericName(pid) {
		return fmt.Errorf("%w: %q", ErrInvalidPID, pid)
	}
	log := i.log.WithOperation("info").WithPID(pid)
	if !i.onHost() {
		log.Error("process info unavailable", "root", i.cfg.Root, "error", ErrHostFsRequired)
		return fmt.Errorf("could not read PID %s: %w", pid, ErrHostFsRequired)
	}

	if err := i.out.Section("Process Information for PID " + pid); err != nil {
		return err
	}
	statusPath := i.Path(pid, StatusFile)
	n, err := fileutil.ReadRaw(i.out, statusPath, i.cfg.ChunkSize)
	if err != nil {
		log.Error("status read failed", "path", statusPath, "error", err)
		return fmt.Errorf("could not read status of PID %s: %w", pid, err)
	}
	log.Debug("status read", "path", statusPath, "bytes", n)

	if err := i.out.Section("Command Line"); err != nil {
		return err
	}
	cmdlinePath := i.Path(pid, CmdlineFile)
	raw, err := fileutil.ReadCapped(cmdlinePath, i.cfg.CmdlineMax, i.cfg.ChunkSize)
	if err != nil {
		log.Error("cmdline read failed", "path", cmdlinePath, "error", err)
		return fmt.Errorf("could not read command line of PID %s: %w", pid, err)
	}
	log.Debug("cmdline read", "path", cmdlinePath, "bytes", len(raw))

	return i.out.Printf("%s\n", procutil.FormatCmdline(raw))
}

// SectionResult is the outcome of one system snapshot section.
type SectionResult struct {
	Title string
	Path  string
	Lines int
	Err   error
}

// SystemSnapshot prints the first lines of cpuinfo and meminfo, each under
// its own header. Both sections are always attempted; the returned error
// joins the failures of the individual sections.
func (i *Inspector) SystemSnapshot() ([]SectionResult, error) {
	log := i.log.WithOperation("sysinfo")
	sections := []struct {
		title string
		file  string
	}{
		{"CPU Information", CPUInfoFile},
		{"Memory Information", MemInfoFile},
	}

	results := make([]SectionResult, 0, len(sections))
	var errs []error
	for _, s := range sections {
		res := SectionResult{Title: s.title, Path: i.Path(s.file)}
		res.Err = i.out.Section(fmt.Sprintf("%s (first %d lines)", s.title, i.cfg.MaxLines))
		if res.Err == nil {
			res.Lines, res.Err = fileutil.ReadLines(i.fs, res.Path, i.cfg.MaxLines, func(line string) error {
				_, err := io.WriteString(i.out, line)
				return err
			})
		}
		if res.Err != nil {
			log.Warn("section failed", "section", s.title, "path", res.Path, "error", res.Err)
			errs = append(errs, fmt.Errorf("%s: %w", s.title, res.Err))
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// CompareReadMethods prints the version record twice: first through raw
// open/read/close system calls, then through a buffered line reader. Both
// reads are attempted; the returned error joins their failures.
func (i *Inspector) CompareReadMethods() error {
	log := i.log.WithOperation("compare")
	path := i.Path(VersionFile)

	if err := i.out.Printf("Comparing file reading methods for: %s\n\n", path); err != nil {
		return err
	}

	if err := i.out.Banner("Method 1: Using System Calls"); err != nil {
		return err
	}
	var rawBytes int64
	rawErr := ErrHostFsRequired
	if i.onHost() {
		rawBytes, rawErr = fileutil.ReadRaw(i.out, path, i.cfg.ChunkSize)
	}
	if rawErr != nil {
		log.Warn("system call read failed", "path", path, "error", rawErr)
		rawErr = fmt.Errorf("system calls: %w", rawErr)
	}

	if err := i.out.Newline(); err != nil {
		return errors.Join(rawErr, err)
	}
	if err := i.out.Banner("Method 2: Using Library Functions"); err != nil {
		return errors.Join(rawErr, err)
	}
	bufBytes, bufErr := fileutil.ReadBuffered(i.out, i.fs, path)
	if bufErr != nil {
		log.Warn("buffered read failed", "path", path, "error", bufErr)
		bufErr = fmt.Errorf("library functions: %w", bufErr)
	}

	noteErr := i.out.Newline()
	if noteErr == nil {
		noteErr = i.out.Info("NOTE: Run this program with strace to see the difference!")
	}
	if noteErr == nil {
		noteErr = i.out.Info("Example: strace -e trace=openat,read,write,close %s compare", ProgramName)
	}

	log.Debug("compare complete", "path", path, "raw_bytes", rawBytes, "buffered_bytes", bufBytes)
	return errors.Join(rawErr, bufErr, noteErr)
}
