package logging

// Leveled logging for disgo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tturner/disgo/internal/dis/pdu"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

var levelNames = map[string]LogLevel{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"info":    LogLevelInfo,
	"verbose": LogLevelVerbose,
	"debug":   LogLevelDebug,
}

// ParseLevel maps a level name from flags or config to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	if s == "" {
		return LogLevelInfo, nil
	}
	level, ok := levelNames[strings.ToLower(s)]
	if !ok {
		return LogLevelInfo, fmt.Errorf("unknown log level %q (want silent, error, info, verbose or debug)", s)
	}
	return level, nil
}

// Logger provides leveled logging to the console and an optional file.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	format   string
	logEvery int
	counter  int
	file     *os.File
	fileLog  *log.Logger
	stdout   *log.Logger
	stderr   *log.Logger
}

// NewLogger creates a new text logger that prints every message.
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	return NewLoggerWithOptions(level, logFile, "text", 1)
}

// NewLoggerWithOptions creates a logger writing in format ("text" or
// "json"). Console output of non-error messages is sampled to one in
// logEvery; the log file always gets every message.
func NewLoggerWithOptions(level LogLevel, logFile, format string, logEvery int) (*Logger, error) {
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	if logEvery < 1 {
		logEvery = 1
	}
	l := &Logger{
		level:    level,
		format:   format,
		logEvery: logEvery,
		stdout:   log.New(os.Stdout, "", 0),
		stderr:   log.New(os.Stderr, "", 0),
	}

	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		flags := log.LstdFlags
		if format == "json" {
			flags = 0
		}
		l.fileLog = log.New(file, "", flags)
	}

	return l, nil
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelError {
		l.write("ERROR", fmt.Sprintf(format, v...), true)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelInfo {
		l.write("INFO", fmt.Sprintf(format, v...), false)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelVerbose {
		l.write("VERBOSE", fmt.Sprintf(format, v...), false)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelDebug {
		l.write("DEBUG", fmt.Sprintf(format, v...), false)
	}
}

type jsonLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (l *Logger) render(tag, msg string) string {
	if l.format != "json" {
		return tag + ": " + msg
	}
	b, err := json.Marshal(jsonLine{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   strings.ToLower(tag),
		Message: msg,
	})
	if err != nil {
		return tag + ": " + msg
	}
	return string(b)
}

func (l *Logger) write(tag, msg string, isError bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.render(tag, msg)
	if l.fileLog != nil {
		l.fileLog.Println(line)
	}

	// Errors go to stderr; everything else reaches stdout only at verbose
	// or above, sampled.
	if isError {
		l.stderr.Println(line)
		return
	}
	l.counter++
	if l.counter%l.logEvery != 0 {
		return
	}
	if l.level >= LogLevelVerbose {
		l.stdout.Println(line)
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogPDU logs a one-line summary of a PDU sent to or received from addr.
func (l *Logger) LogPDU(direction, addr string, p pdu.PDU) {
	l.Verbose("%s %s %s", direction, addr, pdu.Summary(p))
}

// LogDecodeError logs a datagram that did not decode.
func (l *Logger) LogDecodeError(addr string, size int, err error) {
	l.Info("undecodable datagram from %s (%d bytes): %v", addr, size, err)
}

// LogStartup logs startup information
func (l *Logger) LogStartup(command, mode, addr string, exerciseID uint8, configPath string) {
	l.Info("Starting disgo %s", command)
	l.Verbose("  Mode: %s", mode)
	l.Verbose("  Address: %s", addr)
	l.Verbose("  Exercise: %d", exerciseID)
	l.Verbose("  Config: %s", configPath)
}

// LogHex logs hex data (for debug level)
func (l *Logger) LogHex(label string, data []byte) {
	if l.GetLevel() < LogLevelDebug {
		return
	}
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	l.Debug("%s: %s", label, b.String())
}
