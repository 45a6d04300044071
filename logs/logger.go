package logs

import (
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
)

// Logger is usable before Init; Init only redirects its output.
var Logger = logrus.New()

// Init tees the logger into the file at path as well as stdout.
func Init(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		panic(err.Error())
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		panic(err.Error())
	}
	Logger.SetOutput(io.MultiWriter(file, os.Stdout))
}

// SetVerbose switches the logger to debug level so trace lines are recorded.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}
}
