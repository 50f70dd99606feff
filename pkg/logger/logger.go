// Package logger is the leveled logging surface used across the codebase.
// Messages below the configured level are dropped; SILENCE drops everything.
package logger

import (
	"log"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
}

func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

func (l *defaultLogger) logf(level int, prefix, msg string, a ...any) {
	if l.level <= level {
		log.Printf(prefix+msg+"\n", a...)
	}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, "DEBUG ", msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.logf(INFO, "INFO ", msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, "WARN ", msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, "ERROR ", msg, a...)
}
