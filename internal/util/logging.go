package util

import (
	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared logrus logger. Unknown levels fall back to
// info rather than failing boot.
func NewLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)
	return l
}
