// Package logger writes diagnostics to a file under the user's home
// directory. The terminal UI owns stdout, so nothing may log there.
// Each subsystem logs through its own Source so the file reads as
// "socket:", "lobby:", "ui:" lines instead of an undifferentiated dump.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const maxLogSize = 10 * 1024 * 1024

var (
	debugLog *os.File
	logPath  string
)

// Source is a named handle into the shared log file.
type Source struct {
	name string
}

// For returns the logging handle for one subsystem.
func For(name string) Source {
	return Source{name: name}
}

// Infof logs an info message under the source's name.
func (s Source) Infof(format string, args ...any) {
	log.Printf("[INFO] "+s.name+": "+format, args...)
}

// Errorf logs an error message under the source's name.
func (s Source) Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+s.name+": "+format, args...)
}

// Panic logs a recovered panic with its stack trace.
func (s Source) Panic(r any) {
	log.Printf("[PANIC] "+s.name+": %v\n%s", r, debug.Stack())
}

// Init opens (and, when oversized, rotates) the debug log file.
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".durak")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(logDir, "debug.log")
	debugLog, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if info, err := debugLog.Stat(); err == nil && info.Size() > maxLogSize {
		_ = debugLog.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(logPath, backupPath)
		debugLog, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	log.SetOutput(debugLog)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	For("logger").Infof("log file: %s", logPath)
	return nil
}

// Close closes the debug log file.
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
	}
}

// GetLogPath returns the current log file path.
func GetLogPath() string {
	return logPath
}
