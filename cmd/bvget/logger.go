package main

import (
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

func newLogger(level int) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(colorable.NewColorableStdout())
	logger.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	logger.SetLevel(logrusLevel(level))
	return logger
}

// logrusLevel maps the numeric verbosity ladder onto logrus levels:
// 2 errors only, 4 adds warnings, 5 info, 6 debug, 7 and up trace.
func logrusLevel(level int) logrus.Level {
	switch {
	case level <= 2:
		return logrus.ErrorLevel
	case level <= 4:
		return logrus.WarnLevel
	case level == 5:
		return logrus.InfoLevel
	case level == 6:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
