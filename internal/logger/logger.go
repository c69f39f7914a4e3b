// Package logger provides a leveled logger that writes to a file and
// mirrors highlights to the console.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level lists supported log severities.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l Level) String() string { return levelNames[l] }

// Logger writes to a file and mirrors WARN/ERROR/Console calls to stdout.
type Logger struct {
	mu          sync.Mutex
	fileLogger  *log.Logger
	consoleLog  *log.Logger
	level       Level
	logFile     *os.File
	logFilePath string
	fileOnly    bool // true once the log file could not be opened
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init creates the global logger. If logDir cannot be created or the log
// file cannot be opened, Init downgrades to console-only (stdout)
// operation and emits a single warning rather than failing the whole
// invocation.
func Init(logDir string, level Level, logFilePrefix string) error {
	once.Do(func() {
		if logFilePrefix == "" {
			logFilePrefix = "rdbsnap"
		}
		consoleLog := log.New(os.Stdout, "", 0)

		if err := os.MkdirAll(logDir, 0755); err != nil {
			consoleLog.Printf("%s [WARN] could not create log directory %s: %v (logging to console only)", time.Now().Format("2006/01/02 15:04:05"), logDir, err)
			defaultLogger = &Logger{consoleLog: consoleLog, level: level, fileOnly: true}
			return
		}

		logFilePath := filepath.Join(logDir, fmt.Sprintf("%s.log", logFilePrefix))
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			consoleLog.Printf("%s [WARN] could not open log file %s: %v (logging to console only)", time.Now().Format("2006/01/02 15:04:05"), logFilePath, err)
			defaultLogger = &Logger{consoleLog: consoleLog, level: level, fileOnly: true}
			return
		}

		defaultLogger = &Logger{
			fileLogger:  log.New(logFile, "", 0),
			consoleLog:  consoleLog,
			level:       level,
			logFile:     logFile,
			logFilePath: logFilePath,
		}
	})
	return nil
}

// Close shuts down the log file.
func Close() error {
	if defaultLogger != nil && defaultLogger.logFile != nil {
		return defaultLogger.logFile.Close()
	}
	return nil
}

// GetLogFilePath returns the backing log file path, "" if file logging
// was downgraded.
func GetLogFilePath() string {
	if defaultLogger != nil {
		return defaultLogger.logFilePath
	}
	return ""
}

func formatMessage(level Level, format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	return fmt.Sprintf("%s [%s] %s", timestamp, levelNames[level], fmt.Sprintf(format, args...))
}

func logToFile(level Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.fileLogger == nil {
		return
	}
	if level < defaultLogger.level {
		return
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.fileLogger.Println(formatMessage(level, format, args...))
}

func logToConsole(format string, args ...interface{}) {
	if defaultLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	defaultLogger.consoleLog.Printf("%s [rdbsnap] %s", timestamp, fmt.Sprintf(format, args...))
}

func logToBoth(level Level, format string, args ...interface{}) {
	logToFile(level, format, args...)
	logToConsole(format, args...)
}

// Debug logs debug messages (file only).
func Debug(format string, args ...interface{}) { logToFile(DEBUG, format, args...) }

// Info logs info messages (file only).
func Info(format string, args ...interface{}) { logToFile(INFO, format, args...) }

// Warn logs warnings (file + console).
func Warn(format string, args ...interface{}) { logToBoth(WARN, format, args...) }

// Error logs errors (file + console).
func Error(format string, args ...interface{}) { logToBoth(ERROR, format, args...) }

// Console prints a status line to the console and mirrors it to the file.
func Console(format string, args ...interface{}) {
	logToConsole(format, args...)
	logToFile(INFO, format, args...)
}

// Writer returns an io.Writer compatible with the standard log package.
func Writer() io.Writer {
	if defaultLogger != nil && defaultLogger.logFile != nil {
		return defaultLogger.logFile
	}
	return os.Stdout
}
