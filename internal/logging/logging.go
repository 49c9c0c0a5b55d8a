// Package logging provides component-scoped structured loggers.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Setter mutates the root logger, used for global configuration such as the
// log level or output format.
type Setter func(*logrus.Logger) error

var root = struct {
	logger *logrus.Logger
	mutex  sync.Mutex
}{
	logger: logrus.New(),
}

// Logger is the logging interface handed to components.
type Logger interface {
	logrus.FieldLogger
}

// New returns a logger scoped to the named component.
func New(component string, setters ...Setter) Logger {
	for _, setter := range setters {
		_ = Set(setter)
	}
	return root.logger.WithField("component", component)
}

// Set applies a Setter to the root logger.
func Set(setter Setter) error {
	root.mutex.Lock()
	defer root.mutex.Unlock()
	return setter(root.logger)
}

// Level returns a Setter that configures the root log level. Unparsable
// levels fall back to info.
func Level(lvl string) Setter {
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		root.logger.WithError(err).Errorf("unable to parse provided level %q", lvl)
		parsed = logrus.InfoLevel
	}
	return func(r *logrus.Logger) error {
		r.SetLevel(parsed)
		return nil
	}
}
