package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// CrashHandler receives a recovered panic value and the stack of the failing goroutine
type CrashHandler func(r any, stack []byte)

var crashHandler atomic.Pointer[CrashHandler]

// SetCrashHandler replaces the process-wide panic handler used by Go
// Hosts owning a terminal install one that restores it before reporting
// Passing nil restores the default handler
func SetCrashHandler(h CrashHandler) {
	if h == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&h)
}

// HandleCrash dispatches a recovered panic to the installed handler
// Default handler prints the stack trace to stderr and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	stack := debug.Stack()
	if h := crashHandler.Load(); h != nil {
		(*h)(r, stack)
		return
	}
	defaultCrash(r, stack)
}

func defaultCrash(r any, stack []byte) {
	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword for engine-owned goroutines
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
