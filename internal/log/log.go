// Package log writes colored diagnostics to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jwalton/gchalk"
)

var (
	mutex  sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects all messages to the given writer.  Returns the
// previous writer.
func SetOutput(w io.Writer) io.Writer {
	mutex.Lock()
	defer mutex.Unlock()
	previous := output
	output = w
	return previous
}

func write(message string) {
	mutex.Lock()
	defer mutex.Unlock()
	_, _ = io.WriteString(output, message+"\n")
}

// Error writes an error message to stderr.
func Error(message interface{}) {
	Errorf("%v", message)
}

// Errorf writes a formatted error message to stderr.
func Errorf(message string, a ...interface{}) {
	write(gchalk.Stderr.BrightRed(fmt.Sprintf(message, a...)))
}

// Warn writes a non-fatal warning to stderr.
func Warn(message interface{}) {
	Warnf("%v", message)
}

// Warnf writes a formatted non-fatal warning to stderr.
func Warnf(message string, a ...interface{}) {
	write(gchalk.Stderr.BrightYellow("Warning: " + fmt.Sprintf(message, a...)))
}

// Fatal writes an error message to stderr, and then exits with a non-zero status code.
func Fatal(message interface{}) {
	Fatalf("%v", message)
}

// DieOnError will write an error message to stderr and exit with non-zero status if err is not nil.
func DieOnError(err error) {
	if err != nil {
		Fatalf("%v", err)
	}
}

// Fatalf writes a  formatted error message to stderr, and then exits with a non-zero status code.
func Fatalf(message string, a ...interface{}) {
	Errorf(message, a...)
	os.Exit(1)
}
