package logger

import (
	"io"
	"os"

	"go-smartshop/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing to console and, when a file is configured, to a
// rotating JSON log file. The returned closer releases the file.
func New(cnf config.Log, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cnf.Level)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: console}
	var closer io.Closer = nopCloser{}

	if cnf.File != "" {
		file := &lumberjack.Logger{
			Filename:   cnf.File,
			MaxSize:    cnf.MaxSizeMB,
			MaxBackups: cnf.MaxBackups,
			MaxAge:     7,
			Compress:   false,
		}
		out = zerolog.MultiLevelWriter(out, file)
		closer = file
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer, nil
}

// Setup replaces the global logger.
func Setup(cnf config.Log) (io.Closer, error) {
	l, closer, err := New(cnf, os.Stderr)
	if err != nil {
		return nil, err
	}

	log.Logger = l
	return closer, nil
}
