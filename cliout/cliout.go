// Package cliout formats human-readable console output for procinspect.
// Every Printer wraps an io.Writer; ANSI styling is only emitted when that
// writer is a terminal, so redirected or captured output is plain text.
package cliout

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols for modern CLI output
const (
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// ASCII fallback symbols for terminals that don't support Unicode
const (
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

// Table column widths used by Row.
const (
	KeyColumnWidth   = 8
	ValueColumnWidth = 20
)

// EnvNoColor disables styling when set to any value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

// noColor disables all color output
var noColor = false

// mu protects global state variables
var mu sync.RWMutex

// NoColor disables color output for every Printer.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

// getNoColor returns the current noColor setting (thread-safe).
func getNoColor() bool {
	mu.RLock()
	defer mu.RUnlock()
	return noColor || os.Getenv(EnvNoColor) != ""
}

// supportsUnicode detects if the terminal supports Unicode/emojis
var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS == "windows" {
		return os.Getenv("WT_SESSION") != "" || os.Getenv("TERM_PROGRAM") == "vscode" || os.Getenv("TERM") != ""
	}
	// Unix-like systems generally support Unicode
	return true
}

// getIcon returns the appropriate icon based on Unicode support
func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// isTerminal reports whether w is a file descriptor attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes formatted output to a single stream.
// It also implements io.Writer so raw file content can be forwarded through it.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		color: isTerminal(w) && !getNoColor(),
	}
}

// Write forwards p unchanged.
func (p *Printer) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

func (p *Printer) style(codes, text string) string {
	if !p.color {
		return text
	}
	return codes + text + Reset
}

// Printf writes formatted text with no styling.
func (p *Printer) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format, args...)
	return err
}

// Newline writes a blank line.
func (p *Printer) Newline() error {
	_, err := io.WriteString(p.w, "\n")
	return err
}

// Section prints a "--- title ---" header preceded by a blank line.
func (p *Printer) Section(title string) error {
	_, err := fmt.Fprintf(p.w, "\n%s\n", p.style(Bold+Cyan, "--- "+title+" ---"))
	return err
}

// Banner prints a "=== title ===" header.
func (p *Printer) Banner(title string) error {
	_, err := fmt.Fprintf(p.w, "%s\n", p.style(Bold, "=== "+title+" ==="))
	return err
}

// Row prints a fixed-width two-column table row.
func (p *Printer) Row(key, value string) error {
	_, err := fmt.Fprintln(p.w, rowText(key, value))
	return err
}

// TableHeader prints the column titles of a two-column table followed by an
// underline row of dashes matching each title.
func (p *Printer) TableHeader(key, value string) error {
	if _, err := fmt.Fprintln(p.w, p.style(Bold, rowText(key, value))); err != nil {
		return err
	}
	return p.Row(strings.Repeat("-", len(key)), strings.Repeat("-", len(value)))
}

func rowText(key, value string) string {
	return fmt.Sprintf("%-*s %-*s", KeyColumnWidth, key, ValueColumnWidth, value)
}

// Error prints an error message with red X
func (p *Printer) Error(format string, args ...any) error {
	return p.line(BrightRed, getIcon(SymbolCross, ASCIICross), format, args...)
}

// Warning prints a warning message with yellow triangle
func (p *Printer) Warning(format string, args ...any) error {
	return p.line(BrightYellow, getIcon(SymbolWarning, ASCIIWarning), format, args...)
}

// Info prints an info message with blue info icon
func (p *Printer) Info(format string, args ...any) error {
	return p.line(BrightBlue, getIcon(SymbolInfo, ASCIIInfo), format, args...)
}

func (p *Printer) line(color, icon, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	_, err := fmt.Fprintf(p.w, "%s %s\n", p.style(color, icon), msg)
	return err
}
