// Package logging builds the logrus logger shared by the application.
package logging

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/vkplayground/vkplayground/internal/config"
)

// FieldName is the field that carries a named logger's name.
const FieldName = "logger"

// New creates a logger writing to out with the configured level and format.
func New(out io.Writer, cfg config.LogConfiguration) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Newf("unknown log format %q", cfg.Format)
	}

	return log, nil
}

// Named returns a child logger tagged with name.
func Named(log logrus.FieldLogger, name string) logrus.FieldLogger {
	return log.WithField(FieldName, name)
}
