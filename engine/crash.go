package engine

import (
	"fmt"
	"os"
	"runtime/debug"
)

// CrashHandler receives a recovered panic from the engine goroutine
type CrashHandler func(r any)

// DefaultCrashHandler prints the panic and stack trace to stderr and exits
func DefaultCrashHandler(r any) {
	fmt.Fprintf(os.Stderr, "\nCRASH DETECTED: %v\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// goSafe runs fn in a new goroutine with panic recovery into handler
func goSafe(fn func(), handler CrashHandler) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handler(r)
			}
		}()
		fn()
	}()
}
