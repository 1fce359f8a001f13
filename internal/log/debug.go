// Package log is the debug log of migaudit. Messages logged before the log
// destination is known are buffered and flushed once SetFile is called.
package log

import (
	"io"
	"log"
	"os"
	"sync"
)

// DebugLogger buffers debug output until a destination is chosen.
// It implements io.Writer so it can back a standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	mirror  io.Writer
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "migaudit: ", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mirror != nil {
		_, _ = l.mirror.Write(p)
	}
	if l.discard {
		return len(p), nil
	}
	if l.file != nil {
		n, err = l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	l.buffer = append(l.buffer, p...)
	return len(p), nil
}

// SetFile directs the debug log to path, appending to an existing file and
// flushing anything buffered so far. An empty path discards buffered and
// future messages.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false
	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}
	return nil
}

// SetMirror copies every message to w as well, e.g. stderr under --verbose.
// A nil w stops mirroring.
func SetMirror(w io.Writer) {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	globalDebugLogger.mirror = w
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}
	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	return err
}
