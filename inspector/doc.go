// Package inspector implements point-in-time inspection of a proc-style
// introspection filesystem.
//
// An Inspector exposes four operations, each writing human-readable text to
// the stream it was created with:
//
//   - ListProcesses prints every numeric (PID) entry of the root directory
//   - ReadProcessInfo prints a process's status block and command line
//   - SystemSnapshot prints the first lines of cpuinfo and meminfo
//   - CompareReadMethods prints the version record twice, once per read strategy
//
// Every operation is synchronous and holds at most one file handle at a time.
// Failures are returned as errors wrapping *fileutil.PathError values, which
// name the failed operation (open, read or close) and the path. Nothing is
// retried; the caller decides whether to run further operations.
//
// Directory entries are printed in whatever order the filesystem yields them.
package inspector
