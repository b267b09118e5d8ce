// Package cliout formats human-readable console output with cross-platform
// terminal support.
//
// # Features
//
//   - Section headers in the "--- Title ---" and "=== Title ===" styles
//   - Fixed-width two-column table rows
//   - Error, warning and info lines with Unicode symbols and ASCII fallbacks
//   - ANSI styling only when the target writer is a terminal (golang.org/x/term)
//   - Respects NO_COLOR and a programmatic NoColor switch
//
// # Basic Usage
//
//	out := cliout.New(os.Stdout)
//	out.Section("CPU Information (first 10 lines)")
//	out.TableHeader("PID", "Type")
//	out.Row("1", "process")
//
//	errOut := cliout.New(os.Stderr)
//	errOut.Error("could not read %s", path)
//
// A Printer is also an io.Writer, so file content can be copied through it
// without any formatting:
//
//	io.Copy(out, f)
//
// # Design Principles
//
//   - Output is for people; there is no machine-readable format
//   - Captured output (bytes.Buffer, pipes, files) never contains escape codes
//   - Graceful degradation on legacy terminals
package cliout
