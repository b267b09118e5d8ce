// Package version provides build version information and the version command.
package version

import "fmt"

// Build metadata, overridden at build time with
//
//	-ldflags "-X github.com/jongio/procinspect/version.Version=1.2.3"
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info holds version information for a binary.
type Info struct {
	Name      string
	Version   string
	BuildDate string
	GitCommit string
}

// New returns the Info for name using the build metadata variables.
func New(name string) *Info {
	return &Info{
		Name:      name,
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
