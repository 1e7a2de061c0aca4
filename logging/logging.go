// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the diagnostic logger used by the adapter.
//
// The host engine parses stdout as JSON, so all diagnostics go to stderr
// as single-line JSON objects of the shape {"<level>": "<message>"}
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dsc-community/apt-adapter/model"
)

// DefaultTraceLevel is used when DSC_TRACE_LEVEL is unset or unparsable
const DefaultTraceLevel = "info"

var _ model.Logger = (*LogrusLogger)(nil)

// LogrusLogger adapts a logrus entry to the model.Logger interface
type LogrusLogger struct {
	log *logrus.Entry
}

func NewLogrusLogger(log *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{log: log}
}

// New creates a logger writing DSC formatted lines to out at the given
// trace level, levels follow DSC_TRACE_LEVEL semantics
func New(out io.Writer, traceLevel string) *LogrusLogger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&DSCFormatter{})
	log.SetLevel(ParseTraceLevel(traceLevel))

	return NewLogrusLogger(logrus.NewEntry(log))
}

// NewStderr creates the process diagnostic logger on standard error
func NewStderr(traceLevel string) *LogrusLogger {
	return New(os.Stderr, traceLevel)
}

// ParseTraceLevel maps a DSC trace level token to a logrus level,
// unknown tokens fall back to info
func ParseTraceLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "critical":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func (s *LogrusLogger) genFields(args ...any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			k = fmt.Sprintf("%v", args[i])
		}
		fields[k] = args[i+1]
	}
	return fields
}

func (s *LogrusLogger) Trace(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Trace(msg)
}

func (s *LogrusLogger) Debug(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Debug(msg)
}

func (s *LogrusLogger) Info(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Info(msg)
}

func (s *LogrusLogger) Warn(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Warn(msg)
}

func (s *LogrusLogger) Error(msg string, args ...any) {
	s.log.WithFields(s.genFields(args...)).Error(msg)
}

func (s *LogrusLogger) With(args ...any) model.Logger {
	return NewLogrusLogger(s.log.WithFields(s.genFields(args...)))
}
