// Package log writes dishdeck output to the console and to a log file.
//
// While the terminal UI owns the screen, the standard library logger is
// redirected into the file so background failures (saves, fetches) never
// draw over the deck.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the name of the log file inside the log directory.
const FileName = "dishdeck.log"

// Logger writes output to the console and a log file.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	console io.Writer
}

// New opens (or creates) the log file in logDir.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{file: file, console: os.Stdout}, nil
}

// Printf writes a formatted message to the console and the log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.write(l.console, fmt.Sprintf(format, args...))
}

// Println writes a message followed by a newline.
func (l *Logger) Println(args ...interface{}) {
	l.write(l.console, fmt.Sprintln(args...))
}

// Errorf writes a timestamped error to stderr and the log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf("[%s] ERROR %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
	l.write(os.Stderr, msg)
}

// Quiet stops console output; everything still goes to the file.
// Used once the TUI takes over the terminal.
func (l *Logger) Quiet() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = io.Discard
}

func (l *Logger) write(console io.Writer, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if console == os.Stderr && l.console == io.Discard {
		console = io.Discard
	}
	_, _ = fmt.Fprint(console, msg)
	if l.file != nil {
		_, _ = fmt.Fprint(l.file, msg)
	}
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var global *Logger

// Init installs the global logger and points the standard log package at
// the log file.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	global = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
	return nil
}

// Quiet silences console output of the global logger.
func Quiet() {
	if global != nil {
		global.Quiet()
	}
}

// Printf uses the global logger, falling back to the standard logger.
func Printf(format string, args ...interface{}) {
	if global != nil {
		global.Printf(format, args...)
		return
	}
	stdlog.Printf(format, args...)
}

// Println uses the global logger, falling back to the standard logger.
func Println(args ...interface{}) {
	if global != nil {
		global.Println(args...)
		return
	}
	stdlog.Println(args...)
}

// Errorf uses the global logger, falling back to the standard logger.
func Errorf(format string, args ...interface{}) {
	if global != nil {
		global.Errorf(format, args...)
		return
	}
	stdlog.Printf("ERROR "+format, args...)
}

// Close closes the global logger.
func Close() error {
	if global != nil {
		err := global.Close()
		global = nil
		return err
	}
	return nil
}
