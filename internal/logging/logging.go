package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger.
var Logger = logrus.New()

// Init configures the logger to write JSON to a rotating file under dir
// while keeping human-readable output on stdout.
func Init(dir string) {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	Logger.SetLevel(logrus.InfoLevel)

	if dir == "" {
		Logger.SetOutput(os.Stdout)
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "hospital-admin.log"),
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
}
