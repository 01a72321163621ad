// Package logger provides leveled stderr logging for docqa.
// Debug, Section and Info messages only appear when verbose mode is
// enabled via the --verbose flag; warnings are always printed because
// they signal degraded behaviour (an unembedded chunk, a salvaged PDF)
// the user should know about even in quiet runs.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// log writes one prefixed line, optionally gated on verbose mode.
func log(prefix, format string, verboseOnly bool, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verboseOnly && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	log("[DEBUG] ", format, true, args...)
}

// Section prints a pipeline stage header if verbose mode is enabled.
func Section(name string) {
	log("", "\n=== %s ===", true, name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	log("[INFO] ", format, true, args...)
}

// Warn prints a warning. Warnings are not gated on verbose mode.
func Warn(format string, args ...any) {
	log("[WARN] ", format, false, args...)
}
