package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/config"
)

// New returns a logrus logger configured from cfg. Unknown levels fall back to info.
func New(cfg config.LogConfig, service string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if service != "" {
		l.AddHook(serviceHook(service))
	}
	return l
}

type serviceHook string

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service"]; !ok {
		e.Data["service"] = string(h)
	}
	return nil
}

// Fallback is used before configuration is available.
func Fallback() *logrus.Logger {
	return New(config.LogConfig{Level: "info", Format: "json"}, "")
}
