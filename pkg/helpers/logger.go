package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a Logrus logger: text at debug level in development,
// JSON at info level elsewhere. A valid level overrides the default.
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			logger.WithField("level", level).Warn("unknown log level, keeping default")
		} else {
			logger.SetLevel(lvl)
		}
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env, "level": logger.GetLevel().String()}).Info("logger initialized")
	return logger
}
