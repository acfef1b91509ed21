package utils

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

func getLogger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "p3d",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

func SetVerbose(verbose bool) {
	if verbose {
		getLogger().SetLevel(log.DebugLevel)
	} else {
		getLogger().SetLevel(log.InfoLevel)
	}
}

func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

// Log helpers take a message followed by key/value pairs.

func LogDebug(msg string, keyvals ...interface{}) {
	getLogger().Debug(msg, keyvals...)
}

func LogInfo(msg string, keyvals ...interface{}) {
	getLogger().Info(msg, keyvals...)
}

func LogWarn(msg string, keyvals ...interface{}) {
	getLogger().Warn(msg, keyvals...)
}

func LogError(msg string, keyvals ...interface{}) {
	getLogger().Error(msg, keyvals...)
}
