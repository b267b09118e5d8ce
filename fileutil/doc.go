// Package fileutil reads introspection files with two interchangeable strategies.
//
// The unbuffered strategy issues open/read/close system calls directly through
// golang.org/x/sys/unix and hands every fixed-size chunk to a callback. The
// buffered strategy opens the file through an afero.Fs and walks it one line at
// a time with a bufio.Reader. Both strategies deliver the same bytes in the same
// order; only the chunking differs, which is easy to observe under strace:
//
//	strace -e trace=openat,read,write,close procinspect compare
//
// # Example Usage
//
//	// Forward /proc/self/status to stdout in 1 KiB reads
//	if _, err := fileutil.ReadRaw(os.Stdout, "/proc/self/status", fileutil.DefaultChunkSize); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print the first ten lines of /proc/cpuinfo
//	fs := afero.NewOsFs()
//	_, err := fileutil.ReadLines(fs, "/proc/cpuinfo", 10, func(line string) error {
//	    _, err := fmt.Print(line)
//	    return err
//	})
//
//	// Capture at most 4 KiB of a cmdline record
//	raw, err := fileutil.ReadCapped("/proc/1/cmdline", 4096, fileutil.DefaultChunkSize)
//
// # Error Handling
//
// Every failure is a *PathError naming the operation (open, read or close) and
// the path. The underlying errno is preserved, so errors.Is(err, fs.ErrNotExist)
// works for missing files. Handles are released by deferred closes on every
// path; a close failure is only reported when nothing failed before it.
package fileutil
