package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"Error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, LevelFromString(in), in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("d %d", 1)
	l.Infof("i %d", 2)
	l.Warnf("w %d", 3)
	l.Errorf("e %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "DEBUG")
	assert.NotContains(t, out, "INFO")
	assert.Contains(t, out, "WARN: w 3")
	assert.Contains(t, out, "ERROR: e 4")
	assert.Equal(t, 2, strings.Count(out, "\n"))

	buf.Reset()
	l.SetLevel(LevelNone)
	l.Errorf("quiet")
	assert.Empty(t, buf.String())
	assert.Equal(t, LevelNone, l.Level())
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Warnf("nothing %s", "here") })
}
