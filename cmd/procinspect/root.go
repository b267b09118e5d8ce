package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jongio/procinspect/cliout"
	"github.com/jongio/procinspect/config"
	"github.com/jongio/procinspect/inspector"
	"github.com/jongio/procinspect/logutil"
	"github.com/jongio/procinspect/procutil"
	"github.com/jongio/procinspect/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	configPath string
	root       string
	maxLines   int
	cmdlineMax int
	chunkSize  int
	debug      bool
	logFormat  string
	noColor    bool

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   inspector.ProgramName,
		Short: "Inspect processes and system status through /proc",
		Long: `procinspect reads a proc-style introspection filesystem and prints
human-readable, point-in-time information: the list of process IDs, a
process's status and command line, CPU and memory summaries, and a side by
side comparison of unbuffered and buffered file reads.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file (env "+config.EnvConfig+")")
	flags.StringVar(&a.root, "root", config.DefaultRoot, "mount point of the proc filesystem")
	flags.IntVar(&a.maxLines, "max-lines", config.DefaultMaxLines, "lines printed per sysinfo section")
	flags.IntVar(&a.cmdlineMax, "cmdline-max", config.DefaultCmdlineMax, "maximum bytes captured from a cmdline record")
	flags.IntVar(&a.chunkSize, "chunk-size", config.DefaultChunkSize, "read size of the system call strategy")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging on stderr")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		a.newListCommand(),
		a.newInfoCommand(),
		a.newSysinfoCommand(),
		a.newCompareCommand(),
		a.newAllCommand(),
		version.NewCommand(version.New(inspector.ProgramName)),
	)
	return cmd
}

// setup resolves configuration: defaults, then the config file, then
// PROCINSPECT_* variables, then explicitly set flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	structured, err := logutil.ParseFormat(a.logFormat)
	if err != nil {
		return err
	}
	logutil.SetupLoggerWithWriter(cmd.ErrOrStderr(), a.debug, structured)
	if a.noColor {
		cliout.NoColor()
	}

	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	overrideString(flags, "root", &cfg.Root, a.root)
	overrideInt(flags, "max-lines", &cfg.MaxLines, a.maxLines)
	overrideInt(flags, "cmdline-max", &cfg.CmdlineMax, a.cmdlineMax)
	overrideInt(flags, "chunk-size", &cfg.ChunkSize, a.chunkSize)

	if err := cfg.Validate(); err != nil {
		return err
	}
	logutil.Debug("configuration resolved", "config", path, "root", cfg.Root,
		"max_lines", cfg.MaxLines, "cmdline_max", cfg.CmdlineMax, "chunk_size", cfg.ChunkSize)
	a.cfg = cfg
	return nil
}

func overrideString(flags *pflag.FlagSet, name string, target *string, value string) {
	if flags.Changed(name) {
		*target = value
	}
}

func overrideInt(flags *pflag.FlagSet, name string, target *int, value int) {
	if flags.Changed(name) {
		*target = value
	}
}

func (a *app) inspector(cmd *cobra.Command) *inspector.Inspector {
	return inspector.New(a.cfg, cmd.OutOrStdout())
}

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List process directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.inspector(cmd).ListProcesses()
			return err
		},
	}
}

func (a *app) newInfoCommand() *cobra.Command {
	var self bool
	cmd := &cobra.Command{
		Use:   "info [pid]",
		Short: "Show the status and command line of a process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := pidArg(args, self)
			if err != nil {
				return err
			}
			return a.readProcessInfo(cmd, pid)
		},
	}
	cmd.Flags().BoolVar(&self, "self", false, "inspect the procinspect process itself")
	return cmd
}

func (a *app) newSysinfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sysinfo",
		Short: "Show the first lines of CPU and memory information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.inspector(cmd).SystemSnapshot()
			return err
		},
	}
}

func (a *app) newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Read the kernel version with system calls and with a buffered reader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.inspector(cmd).CompareReadMethods()
		},
	}
}

// newAllCommand runs every operation in turn. A failure is reported and the
// remaining operations still run.
func (a *app) newAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all [pid]",
		Short: "Run list, info, sysinfo and compare in sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := pidArg(args, len(args) == 0)
			if err != nil {
				return err
			}
			in := a.inspector(cmd)

			var errs []error
			if _, err := in.ListProcesses(); err != nil {
				errs = append(errs, err)
			}
			if err := a.readProcessInfo(cmd, pid); err != nil {
				errs = append(errs, err)
			}
			if _, err := in.SystemSnapshot(); err != nil {
				errs = append(errs, err)
			}
			if err := cliout.New(cmd.OutOrStdout()).Newline(); err != nil {
				errs = append(errs, err)
			}
			if err := in.CompareReadMethods(); err != nil {
				errs = append(errs, err)
			}
			return errors.Join(errs...)
		},
	}
}

// readProcessInfo warns when the live process table no longer has pid, then
// reads it anyway so the read error names the missing path.
func (a *app) readProcessInfo(cmd *cobra.Command, pid string) error {
	if isLiveRoot(a.cfg.Root) {
		if n, ok := procutil.ParsePID(pid); ok && !procutil.IsProcessRunning(n) {
			cliout.New(cmd.ErrOrStderr()).Warning("process %s is not running or not accessible", pid)
		}
	}
	return a.inspector(cmd).ReadProcessInfo(pid)
}

// isLiveRoot reports whether root names the host's process table, so that
// gopsutil answers for the same PIDs the inspector reads.
func isLiveRoot(root string) bool {
	return filepath.Clean(root) == config.DefaultRoot
}

func pidArg(args []string, self bool) (string, error) {
	switch {
	case len(args) == 1 && self:
		return "", fmt.Errorf("use either a PID argument or --self, not both")
	case len(args) == 1:
		return args[0], nil
	case self:
		return strconv.Itoa(os.Getpid()), nil
	default:
		return "", fmt.Errorf("a PID argument or --self is required")
	}
}
