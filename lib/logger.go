package lib

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// NewLogger returns a text logger on stderr. An unknown level falls back to
// warn.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)

	if err != nil {
		lvl = logrus.WarnLevel
	}

	logger.SetLevel(lvl)

	return logger
}
