package session

import "github.com/golang/glog"

// Level is a log message level
type Level int

const (
	// LevelDebug is per-call tracing detail
	LevelDebug Level = iota
	// LevelInfo is session lifecycle information
	LevelInfo
	// LevelError is fault reporting, including raw exchanges
	LevelError
)

// Logger is the logging sink the session layer writes to
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// GlogSink logs to glog, mapping LevelDebug to verbosity 1
type GlogSink struct{}

// Logf implements Logger
func (GlogSink) Logf(level Level, format string, args ...interface{}) {
	switch level {
	case LevelError:
		glog.Errorf(format, args...)
	case LevelInfo:
		glog.Infof(format, args...)
	default:
		glog.V(1).Infof(format, args...)
	}
}
