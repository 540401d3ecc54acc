// Package tlslog is the engine's structured diagnostic logger,
// adapted from a production ingest pipeline's own logging package: a
// small Logger wrapping one or more io.WriteClosers, emitting
// RFC5424-structured records so recoverable dispatch events (unknown
// wire id skipped, descriptor with no recv/send, parse-class filtered)
// stay observable without becoming fatal.
package tlslog

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

type Level int

const (
	OFF Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l Level) String() string {
	switch l {
	case OFF:
		return "OFF"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

func (l Level) Valid() bool {
	return l >= OFF && l <= CRITICAL
}

func (l Level) priority() rfc5424.Priority {
	switch l {
	case DEBUG:
		return rfc5424.User | rfc5424.Debug
	case INFO:
		return rfc5424.User | rfc5424.Info
	case WARN:
		return rfc5424.User | rfc5424.Warning
	case ERROR:
		return rfc5424.User | rfc5424.Error
	case CRITICAL:
		return rfc5424.User | rfc5424.Crit
	}
	return rfc5424.User | rfc5424.Debug
}

func LevelFromString(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "OFF":
		return OFF, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL":
		return CRITICAL, nil
	}
	return OFF, ErrInvalidLevel
}

var (
	ErrNotOpen      = errors.New("logger is not open")
	ErrInvalidLevel = errors.New("log level is invalid")
)

const defaultID = "tlsext@1"

// Logger writes RFC5424-structured log lines to one or more writers.
type Logger struct {
	wtrs []io.WriteCloser
	mtx  sync.Mutex
	lvl  Level
	hot  bool

	appname  string
	hostname string
}

// New wraps wtr at level INFO.
func New(wtr io.WriteCloser) *Logger {
	l := &Logger{
		wtrs: []io.WriteCloser{wtr},
		lvl:  INFO,
		hot:  true,
	}
	l.appname = "tlsext"
	if h, err := os.Hostname(); err == nil {
		l.hostname = h
	}
	return l
}

// NewDiscard returns a logger that drops every line, for tests and
// callers that don't want diagnostics.
func NewDiscard() *Logger {
	return New(discardCloser{})
}

func (l *Logger) ready() error {
	if !l.hot || len(l.wtrs) == 0 {
		return ErrNotOpen
	}
	return nil
}

func (l *Logger) SetLevel(lvl Level) error {
	if !lvl.Valid() {
		return ErrInvalidLevel
	}
	l.mtx.Lock()
	l.lvl = lvl
	l.mtx.Unlock()
	return nil
}

func (l *Logger) Close() error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if err := l.ready(); err != nil {
		return err
	}
	l.hot = false
	var err error
	for _, w := range l.wtrs {
		if lerr := w.Close(); lerr != nil {
			err = lerr
		}
	}
	return err
}

func (l *Logger) Debug(msg string, sds ...rfc5424.SDParam) error {
	return l.output(DEBUG, msg, sds...)
}

func (l *Logger) Info(msg string, sds ...rfc5424.SDParam) error {
	return l.output(INFO, msg, sds...)
}

func (l *Logger) Warn(msg string, sds ...rfc5424.SDParam) error {
	return l.output(WARN, msg, sds...)
}

func (l *Logger) Error(msg string, sds ...rfc5424.SDParam) error {
	return l.output(ERROR, msg, sds...)
}

func (l *Logger) Critical(msg string, sds ...rfc5424.SDParam) error {
	return l.output(CRITICAL, msg, sds...)
}

func (l *Logger) output(lvl Level, msg string, sds ...rfc5424.SDParam) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.lvl == OFF || lvl < l.lvl {
		return nil
	}
	if err := l.ready(); err != nil {
		return err
	}
	m := rfc5424.Message{
		Priority:  lvl.priority(),
		Timestamp: time.Now(),
		Hostname:  l.hostname,
		AppName:   l.appname,
	}
	if len(sds) > 0 {
		m.StructuredData = []rfc5424.StructuredData{{ID: defaultID, Parameters: sds}}
	}
	m.Message = []byte(msg)
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	for _, w := range l.wtrs {
		if _, lerr := w.Write(b); lerr != nil {
			err = lerr
		}
		if _, lerr := io.WriteString(w, "\n"); lerr != nil {
			err = lerr
		}
	}
	return err
}

type discardCloser struct{}

func (discardCloser) Write(b []byte) (int, error) { return len(b), nil }
func (discardCloser) Close() error                { return nil }
