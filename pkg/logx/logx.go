// Package logx provides structured logging with env-controlled debug domains.
package logx

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes leveled log lines tagged with a component name.
type Logger struct {
	component string
	logger    *log.Logger
}

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// debugConfig controls which components emit debug output. Populated from
// DEBUG and DEBUG_DOMAINS at init, adjustable at runtime for tests.
type debugState struct {
	enabled bool
	domains map[string]bool // nil = all domains
}

//nolint:gochecknoglobals // Intentional process-wide debug switch.
var (
	debugConfig debugState
	debugMutex  sync.RWMutex
)

//nolint:gochecknoinits // Required for env var initialization.
func init() {
	initDebugFromEnv()
}

func initDebugFromEnv() {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debug := os.Getenv("DEBUG"); debug == "1" || strings.EqualFold(debug, "true") {
		debugConfig.enabled = true
	}

	// DEBUG_DOMAINS=driver,env,replay restricts debug output to those components.
	if domains := os.Getenv("DEBUG_DOMAINS"); domains != "" {
		debugConfig.domains = make(map[string]bool)
		for _, domain := range strings.Split(domains, ",") {
			debugConfig.domains[strings.TrimSpace(domain)] = true
		}
	}
}

// SetDebug configures debug logging globally. An empty domain list enables
// all components.
func SetDebug(enabled bool, domains ...string) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	debugConfig.enabled = enabled
	if len(domains) == 0 {
		debugConfig.domains = nil
		return
	}
	debugConfig.domains = make(map[string]bool)
	for _, domain := range domains {
		debugConfig.domains[strings.TrimSpace(domain)] = true
	}
}

// IsDebugEnabled reports whether debug logging is enabled for a component.
func IsDebugEnabled(component string) bool {
	debugMutex.RLock()
	defer debugMutex.RUnlock()

	if !debugConfig.enabled {
		return false
	}
	if debugConfig.domains == nil {
		return true
	}
	return debugConfig.domains[component]
}

func NewLogger(component string) *Logger {
	return &Logger{
		component: component,
		logger:    log.New(os.Stderr, "", 0), // stderr keeps stdout clean for CLI output
	}
}

func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) log(level Level, format string, args ...any) {
	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s: %s", timestamp, l.component, level, message)
}

func (l *Logger) Debug(format string, args ...any) {
	if !IsDebugEnabled(l.component) {
		return
	}
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Global logging functions for convenience.
//
//nolint:gochecknoglobals
var defaultLogger = NewLogger("rollout")

func Debugf(format string, args ...any) {
	defaultLogger.Debug(format, args...)
}

func Infof(format string, args ...any) {
	defaultLogger.Info(format, args...)
}

func Warnf(format string, args ...any) {
	defaultLogger.Warn(format, args...)
}

// Errorf logs and returns the formatted error.
// Use this when you need both logging and error returning:
//
//	err := logx.Errorf("store init failed: %w", err)
func Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	defaultLogger.Error("%s", err.Error())
	return err
}

// Wrap logs msg + ": " + err.Error() and returns fmt.Errorf("%s: %w", msg, err).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)
	defaultLogger.Error("%s", wrapped.Error())
	return wrapped
}
