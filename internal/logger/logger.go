// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/sirupsen/logrus"
)

func New(appConfig *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if appConfig.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(appConfig.LogLevel)
	if err != nil {
		log.WithField("level", appConfig.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Discard returns a logger that drops everything, for tests and CLIs that
// only want their own output.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
