package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init (info level, text
// to stderr) so packages and tests never see a nil logger.
var Log = logrus.New()

// Options selects level, format and sink. Empty fields fall back to
// "info", "text" and os.Stdout.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Init configures the global logger. Call once from main.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" for collected logs, anything else for a terminal.
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Silence routes logs to io.Discard. Used by tests.
func Silence() {
	Log.SetOutput(io.Discard)
}
