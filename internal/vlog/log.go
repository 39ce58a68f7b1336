// Package vlog is the runtime's internal logging facade. It mirrors the
// teacher repository's logutil package: a tiny, dependency-free wrapper
// so the rest of the tree never imports a logging framework directly.
package vlog

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// Debugf logs a low-severity diagnostic message.
func Debugf(format string, args ...any) {
	std.Print("DEBUG volt: " + fmt.Sprintf(format, args...))
}

// Warnf logs a recoverable-condition message.
func Warnf(format string, args ...any) {
	std.Print("WARN volt: " + fmt.Sprintf(format, args...))
}

// Errorf logs a failure that was contained by an error boundary.
func Errorf(format string, args ...any) {
	std.Print("ERROR volt: " + fmt.Sprintf(format, args...))
}

// SetOutput redirects the facade's destination, mainly for tests.
func SetOutput(w interface {
	Write([]byte) (int, error)
}) {
	std.SetOutput(w)
}
