package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const header = "${time_rfc3339} ${level} ${short_file}:${line}"

// Setup points the package-level logger at stderr and, if file is set, a
// rotating log file as well. The returned closer releases the file.
func Setup(level, file string) io.Closer {
	return setup(level, file, os.Stderr)
}

// SetupFileOnly logs to the rotating file alone, for clients that own the
// terminal. With no file, logging is discarded.
func SetupFileOnly(level, file string) io.Closer {
	return setup(level, file, nil)
}

func setup(level, file string, console io.Writer) io.Closer {
	log.SetHeader(header)
	log.SetLevel(ParseLevel(level))

	if console == nil {
		console = io.Discard
	}
	if file == "" {
		log.SetOutput(console)
		return nopCloser{}
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		log.SetOutput(console)
		log.Warnf("logging: %v; not logging to %s", err, file)
		return nopCloser{}
	}

	w := RotatingFile(file, level)
	if console == io.Discard {
		log.SetOutput(w)
	} else {
		log.SetOutput(io.MultiWriter(console, w))
	}
	log.Infof("logging to %s", file)
	return w
}

// RotatingFile returns the lumberjack writer used for log files. Debug
// logging is chatty, so it gets a larger file before rotation.
func RotatingFile(file, level string) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		w.MaxSize = 512
	}
	return w
}

func ParseLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
