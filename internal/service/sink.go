package service

import (
	"market-analyzer/internal/engine"
	"market-analyzer/pkg/logger"
)

// loggerSink forwards analyzer diagnostics to the structured logger.
type loggerSink struct {
	log *logger.Logger
}

func newLoggerSink(log *logger.Logger) engine.Sink {
	return &loggerSink{log: log}
}

func (s *loggerSink) Record(ev engine.Event) {
	logFn := s.log.Info
	switch ev.Level {
	case engine.LevelDebug:
		logFn = s.log.Debug
	case engine.LevelWarn:
		logFn = s.log.Warn
	case engine.LevelError:
		logFn = s.log.Error
	}

	if ev.Minutes > 0 {
		logFn(ev.Message,
			logger.StringField("symbol", ev.Symbol),
			logger.IntField("minutes", ev.Minutes),
			logger.ErrorField(ev.Err),
		)
		return
	}

	logFn(ev.Message,
		logger.StringField("symbol", ev.Symbol),
		logger.ErrorField(ev.Err),
	)
}
