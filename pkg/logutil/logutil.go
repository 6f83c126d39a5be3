// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     = io.Discard
	logFile *os.File
	loggers []*log.Logger
)

// GetLogger gets a logger with a prefix. The output of all loggers obtained
// this way can be changed with SetOutput and SetOutputFile; it is discarded
// until then.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer. If the old output was a file opened by SetOutputFile, it is
// closed.
func SetOutput(newout io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLogFile()
	setOutput(newout)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is created if needed and appended to otherwise. If the
// old output was a file opened by SetOutputFile, it is closed. An empty name
// discards the output.
func SetOutputFile(fname string) error {
	mu.Lock()
	defer mu.Unlock()
	closeLogFile()
	if fname == "" {
		setOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	logFile = file
	setOutput(file)
	return nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func setOutput(newout io.Writer) {
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
