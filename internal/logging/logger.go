package logging

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

type Fields map[string]interface{}

// Level orders log severities; messages below the threshold are dropped.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var threshold atomic.Int32

func init() {
	threshold.Store(int32(LevelInfo))
}

// ParseLevel maps debug|info|warn|error to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel changes the minimum level that is emitted.
func SetLevel(l Level) { threshold.Store(int32(l)) }

func enabled(l Level) bool { return int32(l) >= threshold.Load() }

func output(level, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = level
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	b, err := json.Marshal(fields)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	log.Println(string(b))
}

func withError(fields Fields, err error) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}

func Debug(msg string, fields Fields) {
	if enabled(LevelDebug) {
		output("debug", msg, fields)
	}
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	if enabled(LevelInfo) {
		output("info", msg, fields)
	}
}

// Warn logs a recoverable problem, with the error text when err is set.
func Warn(msg string, err error, fields Fields) {
	if enabled(LevelWarn) {
		output("warn", msg, withError(fields, err))
	}
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if enabled(LevelError) {
		output("error", msg, withError(fields, err))
	}
}

// Fatal logs a fatal error and exits the process. It ignores the level
// threshold.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	os.Exit(1)
}
