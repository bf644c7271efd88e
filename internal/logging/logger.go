package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is shared by the whole process. It discards output until InitLogger runs.
var Logger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Formatter renders one line per entry: time, level, source, message, fields
type Formatter struct {
	Source string
}

// Format implements the logrus.Formatter interface
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	b.WriteString(fmt.Sprintf(" %-5s", strings.ToUpper(entry.Level.String())))
	if f.Source != "" {
		b.WriteString(" [" + f.Source + "]")
	}
	b.WriteString(" " + entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Options configures InitLogger
type Options struct {
	File  string // empty keeps the logger silent
	Level string
}

// InitLogger points Logger at a rotating log file
func InitLogger(opts Options) error {
	Logger.SetFormatter(&Formatter{Source: "teamboard"})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	Logger.SetLevel(level)

	if opts.File == "" {
		Logger.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Write only to file, the terminal belongs to the UI
	Logger.SetOutput(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
	return nil
}
