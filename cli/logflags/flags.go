package logflags

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Flags struct {
	Level      zapcore.Level
	Path       string
	Mode       string
	MaxSizeMB  int
	MaxBackups int
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Level = zapcore.WarnLevel
	fs.Var(&f.Level, "log.level", "logging level [debug,info,warn,error]")
	fs.StringVar(&f.Path, "log.path", "", "path for log output (default stderr)")
	fs.StringVar(&f.Mode, "log.filemode", "append", "mode for log file [append,truncate,rotate]")
	fs.IntVar(&f.MaxSizeMB, "log.maxsize", 100, "size in megabytes at which a rotated log file is rolled")
	fs.IntVar(&f.MaxBackups, "log.maxbackups", 3, "number of rolled log files to keep")
}

func (f *Flags) sink() (zapcore.WriteSyncer, func() error, error) {
	if f.Path == "" || f.Path == "stderr" {
		return zapcore.Lock(os.Stderr), func() error { return nil }, nil
	}
	switch f.Mode {
	case "append", "truncate":
		flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if f.Mode == "truncate" {
			flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		}
		file, err := os.OpenFile(f.Path, flags, 0644)
		if err != nil {
			return nil, nil, err
		}
		return zapcore.Lock(file), file.Close, nil
	case "rotate":
		l := &lumberjack.Logger{
			Filename:   f.Path,
			MaxSize:    f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
		}
		return zapcore.AddSync(l), l.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown log file mode %q", f.Mode)
}

// Open returns a JSON logger writing at the configured level and a
// function that flushes and closes it.
func (f *Flags) Open() (*zap.Logger, func() error, error) {
	ws, closer, err := f.sink()
	if err != nil {
		return nil, nil, err
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), ws, f.Level)
	logger := zap.New(core, zap.ErrorOutput(ws))
	return logger, func() error {
		err := logger.Sync()
		// Syncing stderr fails on some platforms.
		if f.Path == "" || f.Path == "stderr" {
			err = nil
		}
		return errors.Join(err, closer())
	}, nil
}
