// Package procutil provides small helpers for working with process entries of
// a proc-style introspection filesystem.
//
// # Key Features
//
//   - Classification of directory entry names as process identifiers
//   - Rendering of NUL-separated command-line records as readable text
//   - Process liveness checks backed by github.com/shirou/gopsutil
//
// # Example Usage
//
//	// Filter PID directories out of a /proc listing
//	for _, name := range names {
//	    if procutil.IsNumericName(name) {
//	        fmt.Println(name)
//	    }
//	}
//
//	// Render /proc/<pid>/cmdline
//	fmt.Println(procutil.FormatCmdline(raw)) // "ls -la"
//
//	// Check a PID before inspecting it
//	if !procutil.IsProcessRunning(pid) {
//	    fmt.Printf("Process %d is not running or not accessible\n", pid)
//	}
package procutil
