package cmd

import (
	"fmt"
	"log/slog"
	"strings"
)

// logLevel adapts slog.Level to pflag.Value.
type logLevel struct {
	level slog.Level
}

func (l *logLevel) String() string {
	return strings.ToLower(l.level.String())
}

func (l *logLevel) Set(s string) error {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
	}
	l.level = lv
	return nil
}

func (l *logLevel) Type() string {
	return "level"
}
