package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func setupLogging(stderr io.Writer, logFile string, verbose bool) {
	out := stderr
	if logFile != "" {
		out = io.MultiWriter(stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    20,
			MaxBackups: 10,
			MaxAge:     7,
			Compress:   true,
		})
	}
	logrus.SetFormatter(&logFormatter{})
	logrus.SetOutput(out)
	logrus.SetReportCaller(true)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// logFormatter writes LEVEL<TAB>time<TAB>file:line<TAB>message lines.
type logFormatter struct{}

func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := bytes.Buffer{}
	switch {
	case entry.Level <= logrus.ErrorLevel:
		buf.WriteString("ERR")
	case entry.Level == logrus.WarnLevel:
		buf.WriteString("WARN")
	case entry.Level >= logrus.DebugLevel:
		buf.WriteString("DEBUG")
	default:
		buf.WriteString("INFO")
	}
	buf.WriteString("\t")
	buf.WriteString(entry.Time.UTC().Format("2006-01-02T15:04:05.000\t"))
	if entry.Caller == nil {
		buf.WriteString("internal")
	} else {
		buf.WriteString(filepath.Base(entry.Caller.File))
		buf.WriteString(":")
		buf.WriteString(strconv.Itoa(entry.Caller.Line))
	}
	buf.WriteString("\t")
	buf.WriteString(entry.Message)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
