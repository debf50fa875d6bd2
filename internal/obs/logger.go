// Package obs provides the one structured logger every other package
// attaches fields to, grounded on the teacher's pkg/logger (a
// package-level *logrus.Logger, initialized once from environment
// variables) — generalized here to take its level/format from
// internal/config instead of reading os.Getenv directly, since
// battlecore's config is already layered through viper by the time
// logging needs to start.
package obs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Before Init is called it writes text
// to stdout at Info level, so packages that log during early init
// (before cmd/battlecore calls Init) never panic on a nil pointer.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.InfoLevel)
}

// Init configures Log's level and formatter from config, the same two
// knobs the teacher's logger.Init reads as LOG_LEVEL/LOG_FORMAT —
// format "json" for production log collection, anything else (default
// "text") for development.
func Init(level, format string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	if format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
