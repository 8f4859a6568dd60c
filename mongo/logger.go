package mongo

import (
	// External Imports
	"github.com/sirupsen/logrus"
)

const (
	logConflict = "resource conflict"
	logError    = "datastore error"
	logNotFound = "resource not found"
)

// logger provides the package scoped logger implementation.
var logger = logrus.New()

// SetLogger enables binding in your own customised logrus logger.
func SetLogger(log *logrus.Logger) {
	if log != nil {
		logger = log
	}
}

// SetDebug turns debug level logging on or off.
func SetDebug(isDebug bool) {
	if isDebug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}
