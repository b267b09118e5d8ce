// Package testutil builds synthetic proc roots for tests.
//
// This package includes helpers for:
//   - Laying out a proc-style directory tree on disk (NewProcRoot)
//   - Laying out the same tree on an in-memory afero filesystem (NewMemProcRoot)
//
// All functions use t.Helper() for proper test line reporting, and on-disk
// roots live under t.TempDir() so they are removed automatically.
//
// Example usage:
//
//	func TestInfo(t *testing.T) {
//	    root := testutil.NewProcRoot(t)
//	    root.AddProcess("42", "Name:\tsleep\n", "sleep\x0010\x00")
//	    root.WriteFile("version", "Linux version 6.1.0\n")
//
//	    cfg := config.Default()
//	    cfg.Root = root.Path
//	    // ...
//	}
package testutil
