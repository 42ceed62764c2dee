package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLogFormatter(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 45, 123000000, time.FixedZone("JST", 9*60*60))
	tests := []struct {
		level  logrus.Level
		caller *runtime.Frame
		want   string
	}{
		{logrus.ErrorLevel, nil, "ERR\t2024-03-01T03:30:45.123\tinternal\thello\n"},
		{logrus.WarnLevel, &runtime.Frame{File: "/src/exticons/icon/icon.go", Line: 42}, "WARN\t2024-03-01T03:30:45.123\ticon.go:42\thello\n"},
		{logrus.InfoLevel, nil, "INFO\t2024-03-01T03:30:45.123\tinternal\thello\n"},
		{logrus.DebugLevel, nil, "DEBUG\t2024-03-01T03:30:45.123\tinternal\thello\n"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			e := &logrus.Entry{Level: tt.level, Time: at, Caller: tt.caller, Message: "hello"}
			got, err := (&logFormatter{}).Format(e)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetupLoggingLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	t.Cleanup(func() {
		setupLogging(&bytes.Buffer{}, "", false)
	})

	setupLogging(buf, "", false)
	logrus.Info("quiet")
	logrus.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("default level output:\n%s", buf.String())
	}

	buf.Reset()
	setupLogging(buf, "", true)
	logrus.Debug("details")
	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("verbose output lacks caller:\n%s", buf.String())
	}
}
