package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure sets the global logrus level and console formatter. When filePath
// is set, every level is also written to a rotating log file.
func Configure(level log.Level, filePath string, maxAgeDays int) error {
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: false})
	log.SetOutput(os.Stdout)

	if filePath == "" {
		return nil
	}

	logDir := filepath.Dir(filePath)
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return fmt.Errorf("create log directory %s: %w", logDir, err)
	}

	log.AddHook(NewFileHook(filePath, maxAgeDays))
	return nil
}

// NewFileHook returns a hook writing plain-text entries of every level to a
// lumberjack-rotated file
func NewFileHook(filePath string, maxAgeDays int) *lfshook.LfsHook {
	rotating := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
	return lfshook.NewHook(lfshook.WriterMap{
		log.PanicLevel: rotating,
		log.FatalLevel: rotating,
		log.ErrorLevel: rotating,
		log.WarnLevel:  rotating,
		log.InfoLevel:  rotating,
		log.DebugLevel: rotating,
		log.TraceLevel: rotating,
	}, fileFmt)
}
