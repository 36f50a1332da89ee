package logger

import "github.com/harrison/node-module-cleaner/internal/models"

// MultiLogger fans every call out to several loggers, typically the console
// and the run log file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil entries are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	kept := make([]Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			kept = append(kept, l)
		}
	}
	return &MultiLogger{loggers: kept}
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) LogTrace(message string) { m.each(func(l Logger) { l.LogTrace(message) }) }
func (m *MultiLogger) LogDebug(message string) { m.each(func(l Logger) { l.LogDebug(message) }) }
func (m *MultiLogger) LogInfo(message string)  { m.each(func(l Logger) { l.LogInfo(message) }) }
func (m *MultiLogger) LogWarn(message string)  { m.each(func(l Logger) { l.LogWarn(message) }) }
func (m *MultiLogger) LogError(message string) { m.each(func(l Logger) { l.LogError(message) }) }

func (m *MultiLogger) LogWalkSummary(summary models.WalkSummary) {
	m.each(func(l Logger) { l.LogWalkSummary(summary) })
}

func (m *MultiLogger) LogMatchSummary(summary models.MatchSummary) {
	m.each(func(l Logger) { l.LogMatchSummary(summary) })
}

func (m *MultiLogger) LogRemovalSummary(result models.RemovalResult) {
	m.each(func(l Logger) { l.LogRemovalSummary(result) })
}
