package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Fields map[string]interface{}

var osExit = os.Exit

var (
	mu     sync.Mutex
	out    io.Writer = os.Stderr
	exitFn           = osExit
)

// SetOutput redirects log lines (for example to a buffer in tests) and
// returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func output(level, msg string, fields Fields) {
	entry := make(Fields, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["msg"] = msg
	b, err := json.Marshal(entry)

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		// fallback to plain logging
		fmt.Fprintf(out, "%s: %s (%v)\n", level, msg, fields)
		return
	}
	out.Write(append(b, '\n'))
}

func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	f := make(Fields, len(fields)+1)
	for k, v := range fields {
		f[k] = v
	}
	f["error"] = err.Error()
	return f
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem, such as a skipped match.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(fields, err))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	exitFn(1)
}
