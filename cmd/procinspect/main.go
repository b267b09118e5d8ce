// Command procinspect prints point-in-time process and system information
// read from a proc-style introspection filesystem.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/jongio/procinspect/cliout"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and maps failures to an exit status:
// 0 on success, 1 when any operation failed.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		reportError(cliout.New(stderr), err)
		return 1
	}
	return 0
}

// reportError prints one line per joined error.
func reportError(out *cliout.Printer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			reportError(out, e)
		}
		return
	}
	out.Error("%v", err)
}
