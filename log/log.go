package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Уровни логирования для LogMessage
const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

// Options configures the process logger.
type Options struct {
	// Verbose enables debug output.
	Verbose bool

	// Dir enables the rotating file sinks "<Dir>/stdlog-N.log" and
	// "<Dir>/errors-N.log". Empty keeps logging on stderr only.
	Dir string
}

var now = time.Now

// Init installs the process wide zap logger and returns a function that
// flushes it and closes the file sinks.
func Init(opts Options) (func(), error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime)
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	var files []*os.File
	closeFiles := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("log dir %s: %w", opts.Dir, err)
		}
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		for _, sink := range []struct {
			kind  string
			level zapcore.LevelEnabler
		}{
			{"stdlog", level},
			{"errors", zapcore.ErrorLevel},
		} {
			logPath, suffix := getLogFilePath(opts.Dir, sink.kind)
			rotateLogs(opts.Dir, sink.kind, suffix)
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
			if err != nil {
				closeFiles()
				return nil, fmt.Errorf("open log file %s: %w", logPath, err)
			}
			files = append(files, f)
			cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(f), sink.level))
		}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
		closeFiles()
	}, nil
}

// L returns the process logger.
func L() *zap.Logger { return zap.L() }

// S returns the sugared process logger.
func S() *zap.SugaredLogger { return zap.S() }

// Named returns a child logger for a subsystem.
func Named(name string) *zap.Logger { return zap.L().Named(name) }

// LogMessage logs message at one of the DEBUG/INFO/WARN/ERROR levels.
func LogMessage(level, message string) {
	switch level {
	case DEBUG:
		L().Debug(message)
	case WARN:
		L().Warn(message)
	case ERROR:
		err := errors.New(message)
		PrintIfErr("", &err)
	default:
		L().Info(message)
	}
}

// PrintIfErr logs *err at error level when it is not nil.
func PrintIfErr(msg string, err *error) {
	if err == nil || *err == nil {
		return
	}
	L().Error(msg, zap.Error(*err))
}

// getLogFilePath picks the log file for today. The month is split into three
// buckets so that at most three files per kind exist.
func getLogFilePath(dir, kind string) (string, int) {
	day := now().Day()
	var suffix int
	switch {
	case day <= 9:
		suffix = 0
	case day <= 19:
		suffix = 1
	default:
		suffix = 2
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d.log", kind, suffix)), suffix
}

// rotateLogs removes the bucket that follows the current one, so the file
// reused next is started fresh.
func rotateLogs(dir, kind string, currentSuffix int) {
	if currentSuffix < 0 || currentSuffix > 2 {
		return
	}
	fileToDelete := filepath.Join(dir, fmt.Sprintf("%s-%d.log", kind, (currentSuffix+1)%3))
	if _, err := os.Stat(fileToDelete); err == nil {
		if err := os.Remove(fileToDelete); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] remove %s: %v\n", fileToDelete, err)
		}
	}
}
