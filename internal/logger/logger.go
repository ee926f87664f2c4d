package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New 建立輸出 JSON 格式的 logrus logger
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	return log
}
