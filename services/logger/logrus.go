package logsvc

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

// LogrusLogger is a core.Logger writing structured entries to stderr, and to a rotated log
// file when one is configured.
type LogrusLogger struct {
	l *logrus.Logger
}

var _ core.Logger = (*LogrusLogger)(nil)

func NewLogrusLogger(conf *core.Config) *LogrusLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if conf.Env == "PROD" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	var out io.Writer = os.Stderr
	if conf.Log.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   conf.Log.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	l.SetOutput(out)

	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if conf.Debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	return &LogrusLogger{l: l}
}

// NewLogrusLoggerTo is used by tests to capture entries.
func NewLogrusLoggerTo(w io.Writer, level logrus.Level) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)
	return &LogrusLogger{l: l}
}

// entry turns the args into fields. expected fmt: error | map[string]interface{} | auth.Credential
func (l LogrusLogger) entry(args []interface{}) *logrus.Entry {
	e := logrus.NewEntry(l.l)
	extra := make([]interface{}, 0)
	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
		case error:
			e = e.WithError(a)
		case map[string]interface{}:
			e = e.WithFields(a)
		case auth.Credential:
			e = e.WithFields(logrus.Fields{"user_id": a.UserID, "user_email": a.Email, "user_role": a.Role})
		default:
			extra = append(extra, a)
		}
	}
	if len(extra) > 0 {
		e = e.WithField("args", extra)
	}
	return e
}

func (l LogrusLogger) Debug(msg string, args ...interface{}) { l.entry(args).Debug(msg) }
func (l LogrusLogger) Info(msg string, args ...interface{})  { l.entry(args).Info(msg) }
func (l LogrusLogger) Warn(msg string, args ...interface{})  { l.entry(args).Warn(msg) }
func (l LogrusLogger) Error(msg string, args ...interface{}) { l.entry(args).Error(msg) }
func (l LogrusLogger) Fatal(msg string, args ...interface{}) { l.entry(args).Fatal(msg) }
