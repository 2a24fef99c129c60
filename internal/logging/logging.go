package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "bookmarks.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultPath()
	logger       = newLogger()
)

// fileSink opens the configured log path for every write so a log file that
// gets rotated or removed while the dashboard runs is recreated.
type fileSink struct{}

func (fileSink) Write(p []byte) (int, error) {
	traceMu.Lock()
	path := logPath
	traceMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

func defaultPath() string {
	return filepath.Join(os.TempDir(), defaultLogFile)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(fileSink{})
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "event",
		},
	})
	return l
}

// Error writes errors to the shared log file regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace currently writes entries.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	logger.WithFields(fieldsFor(payload)).Trace(event)
}

func fieldsFor(payload interface{}) logrus.Fields {
	switch p := payload.(type) {
	case nil:
		return logrus.Fields{}
	case map[string]interface{}:
		return logrus.Fields(p)
	case logrus.Fields:
		return p
	default:
		return logrus.Fields{"payload": p}
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultPath()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultPath()
		return
	}
	logPath = path
}
