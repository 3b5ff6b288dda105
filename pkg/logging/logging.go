// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	mu     sync.RWMutex
	global = New(os.Stderr, false)
)

// New creates a logfmt logger writing to w. Debug lines are dropped unless
// debug is set.
func New(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	allowed := level.AllowInfo()
	if debug {
		allowed = level.AllowDebug()
	}
	return level.NewFilter(logger, allowed)
}

// GlobalLogger returns the process logger
func GlobalLogger() log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetGlobalLogger replaces the process logger
func SetGlobalLogger(logger log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = logger
}
