package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Logger provides leveled logging and progress reporting
type Logger struct {
	mu       sync.Mutex
	verbose  bool
	terminal bool
	out      io.Writer
	info     *log.Logger
	debug    *log.Logger
	error    *log.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(false, os.Stderr)
}

// New creates a new logger instance. Progress lines are redrawn in place when
// output is an interactive terminal.
func New(verbose bool, output io.Writer) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		verbose:  verbose,
		terminal: isTerminal(output),
		out:      output,
		info:     log.New(output, "[INFO]  ", flags),
		debug:    log.New(output, "[DEBUG] ", flags),
		error:    log.New(output, "[ERROR] ", flags),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the default logger instance
func Default() *Logger {
	return defaultLogger
}

// SetVerbose enables or disables verbose logging
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// IsVerbose returns whether verbose logging is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// Info logs an informational message (always shown)
func (l *Logger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info.Printf(format, args...)
}

// Debug logs a debug message (only shown if verbose is enabled)
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug.Printf(format, args...)
}

// Error logs an error message (always shown)
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.error.Printf(format, args...)
}

// Progress reports that done of total items of kind have been processed.
// On a terminal the line is rewritten in place; elsewhere each call logs a line.
func (l *Logger) Progress(kind string, done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.terminal {
		l.info.Printf("Processed %s %d/%d", kind, done, total)
		return
	}
	fmt.Fprintf(l.out, "\rProcessed %s %d/%d", kind, done, total)
	if done >= total {
		fmt.Fprintln(l.out)
	}
}

// Package-level functions that use the default logger

// SetVerbose enables or disables verbose logging on the default logger
func SetVerbose(verbose bool) {
	defaultLogger.SetVerbose(verbose)
}

// IsVerbose returns whether verbose logging is enabled on the default logger
func IsVerbose() bool {
	return defaultLogger.IsVerbose()
}

// Info logs an informational message using the default logger
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Debug logs a debug message using the default logger (only shown if verbose is enabled)
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// Progress reports progress using the default logger
func Progress(kind string, done, total int) {
	defaultLogger.Progress(kind, done, total)
}
