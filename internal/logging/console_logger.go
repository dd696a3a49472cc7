package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vvka-141/flc/internal/tui"
	"github.com/vvka-141/flc/pkg/flc"
)

// Options configures a ConsoleLogger.
type Options struct {
	// Verbose enables Verbose output.
	Verbose bool

	// Quiet suppresses Info output. Errors are always written.
	Quiet bool

	// Color styles the [VERBOSE] and [ERROR] prefixes.
	Color bool
}

// ConsoleLogger writes log messages to a writer, stderr by default.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out           io.Writer
	opts          Options
	verbosePrefix string
	errorPrefix   string
	mu            sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stderr. Prefixes are colored when
// stderr is a color-capable terminal.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return New(os.Stderr, Options{Verbose: verbose, Color: tui.ColorEnabled(os.Stderr)})
}

// New creates a ConsoleLogger writing to out.
func New(out io.Writer, opts Options) *ConsoleLogger {
	palette := tui.NewPalette(out, opts.Color)
	return &ConsoleLogger{
		out:           out,
		opts:          opts,
		verbosePrefix: palette.Muted.Render("[VERBOSE]") + " ",
		errorPrefix:   palette.Error.Render("[ERROR]") + " ",
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.opts.Verbose {
		return
	}
	l.write(l.verbosePrefix, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if l.opts.Quiet {
		return
	}
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorPrefix, format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, prefix+msg+"\n")
}

var _ flc.Logger = (*ConsoleLogger)(nil)
