// logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// levelPrefixes holds the console (colored) and file (plain) prefix per level
var levelPrefixes = [...]struct{ console, file string }{
	DEBUG: {colorGray + "[DEBUG] " + colorReset, "[DEBUG] "},
	INFO:  {colorReset + "[INFO]  " + colorReset, "[INFO]  "},
	WARN:  {colorYellow + "[WARN]  " + colorReset, "[WARN]  "},
	ERROR: {colorRed + "[ERROR] " + colorReset, "[ERROR] "},
}

type Logger struct {
	console  [4]*log.Logger
	plain    [4]*log.Logger
	file     *os.File
	minLevel LogLevel
}

var (
	defaultLogger *Logger
	mu            sync.Mutex
)

// current returns the active logger, creating a console-only one if Init was never called.
// Callers must hold mu.
func current() *Logger {
	if defaultLogger == nil {
		defaultLogger = newLogger(os.Stdout, nil, DEBUG)
	}
	return defaultLogger
}

func newLogger(console, file io.Writer, level LogLevel) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	l := &Logger{minLevel: level}
	for lvl, p := range levelPrefixes {
		if console != nil {
			l.console[lvl] = log.New(console, p.console, flags)
		}
		if file != nil {
			l.plain[lvl] = log.New(file, p.file, flags)
		}
	}
	return l
}

// Init initializes the logger with optional file and console output.
// If filename is empty, logs only to console; if console is false, logs only to file.
func Init(filename string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	level := DEBUG
	if defaultLogger != nil {
		level = defaultLogger.minLevel
		if defaultLogger.file != nil {
			defaultLogger.file.Close()
		}
	}

	var consoleOut, fileOut io.Writer
	var file *os.File
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file, fileOut = f, f
	}
	if console {
		consoleOut = os.Stdout
	}
	if consoleOut == nil && fileOut == nil {
		return fmt.Errorf("no output destination specified")
	}

	defaultLogger = newLogger(consoleOut, fileOut, level)
	defaultLogger.file = file
	return nil
}

// SetOutput replaces the console destination, keeping the current level.
// Log files opened by Init are closed.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	l := current()
	if l.file != nil {
		l.file.Close()
	}
	defaultLogger = newLogger(w, nil, l.minLevel)
}

// SetLevel sets the minimum log level; messages below it are dropped
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	current().minLevel = level
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a LogLevel
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return DEBUG, fmt.Errorf("unknown log level %q", s)
	}
}

// Close closes the log file if one is open
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger != nil && defaultLogger.file != nil {
		defaultLogger.file.Close()
		defaultLogger.file = nil
		defaultLogger.plain = [4]*log.Logger{}
	}
}

func output(level LogLevel, msg string) {
	mu.Lock()
	l := current()
	minLevel := l.minLevel
	mu.Unlock()

	if level < minLevel {
		return
	}
	// depth 3: output <- Infof <- caller
	if c := l.console[level]; c != nil {
		c.Output(3, msg)
	}
	if p := l.plain[level]; p != nil {
		p.Output(3, msg)
	}
}

// Debug logs a debug message
func Debug(v ...interface{}) { output(DEBUG, fmt.Sprint(v...)) }

// Debugf logs a formatted debug message
func Debugf(format string, v ...interface{}) { output(DEBUG, fmt.Sprintf(format, v...)) }

// Info logs an info message
func Info(v ...interface{}) { output(INFO, fmt.Sprint(v...)) }

// Infof logs a formatted info message
func Infof(format string, v ...interface{}) { output(INFO, fmt.Sprintf(format, v...)) }

// Warn logs a warning message
func Warn(v ...interface{}) { output(WARN, fmt.Sprint(v...)) }

// Warnf logs a formatted warning message
func Warnf(format string, v ...interface{}) { output(WARN, fmt.Sprintf(format, v...)) }

// Error logs an error message
func Error(v ...interface{}) { output(ERROR, fmt.Sprint(v...)) }

// Errorf logs a formatted error message
func Errorf(format string, v ...interface{}) { output(ERROR, fmt.Sprintf(format, v...)) }

// Fatal logs an error message and exits the program
func Fatal(v ...interface{}) {
	output(ERROR, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits the program
func Fatalf(format string, v ...interface{}) {
	output(ERROR, fmt.Sprintf(format, v...))
	os.Exit(1)
}
