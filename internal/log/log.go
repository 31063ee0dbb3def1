// ABOUTME: Logging setup shared by sinky packages
// ABOUTME: Wraps logrus with an environment-controlled debug level
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Getenv("SINKY_DEBUG"))

func newLogger(debugEnv string) *logrus.Logger {
	l := logrus.New()
	if debug, err := strconv.ParseBool(debugEnv); err == nil && debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Logger returns the process-wide logger
func Logger() *logrus.Logger {
	return logger
}

// WithComponent returns an entry tagged with the component name
func WithComponent(name string) *logrus.Entry {
	return logger.WithField("component", name)
}

// SetOutput redirects log output, e.g. to a file while the TUI owns the terminal
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug enables or disables debug logging
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}
