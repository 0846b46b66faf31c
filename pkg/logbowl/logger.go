package logbowl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Environment variable names
const (
	LogLevelEnvVar  = "PNGMSG_LOG_LEVEL"
	LogFormatEnvVar = "PNGMSG_LOG_CONSOLE_FORMATTER"
)

// Log formats
const (
	FormatEmoji = "emoji"
	FormatText  = "text"
	FormatJSON  = "json"
)

var domains = map[string]string{"system": "⚙️", "png": "🖼️", "chunk": "🧱", "message": "✉️", "file": "📄", "glob": "🔎", "codec": "🗜️", "test": "🧪", "default": "❓"}
var actions = map[string]string{"init": "🌱", "start": "🚀", "stop": "🛑", "read": "📖", "write": "📝", "parse": "🧩", "encode": "🔐", "decode": "🔓", "append": "➕", "remove": "🗑️", "lookup": "🔍", "validate": "🛡️", "compress": "🗜️", "decompress": "📂", "expand": "🌐", "print": "🖨️", "version": "🏷️", "finish": "🏁", "default": "⚙️"}
var statuses = map[string]string{"success": "✅", "failure": "❌", "error": "🔥", "warning": "⚠️", "info": "ℹ️", "debug": "🐞", "skip": "⏭️", "notfound": "❓", "invalid": "💢", "progress": "➡️", "ok": "✅", "default": "➡️"}

func getEmoji(m map[string]string, key string) string {
	if val, ok := m[key]; ok {
		return val
	}
	return m["default"]
}

// Logger wraps hclog.Logger with a domain/action/status API.
type Logger struct {
	hclog.Logger
	format string
}

// Create creates a Logger writing to stderr, configured from the environment.
func Create(name string) Logger {
	return CreateWithOutput(name, os.Stderr)
}

// CreateWithOutput is like Create but writes to w.
func CreateWithOutput(name string, w io.Writer) Logger {
	level := hclog.LevelFromString(strings.ToUpper(os.Getenv(LogLevelEnvVar)))
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	format := strings.ToLower(os.Getenv(LogFormatEnvVar))
	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     w,
		JSONFormat: format == FormatJSON,
	}
	return Logger{Logger: hclog.New(opts), format: format}
}

func (l Logger) log(level hclog.Level, domain, action, status, message string, args ...interface{}) {
	switch l.format {
	case FormatText:
		l.Logger.Log(level, fmt.Sprintf("[%s] %s", strings.ToUpper(domain), message), args...)
	case FormatJSON:
		l.Logger.With("domain", domain, "action", action, "status", status).Log(level, message, args...)
	default:
		l.Logger.Log(level, fmt.Sprintf("%s %s %s %s", getEmoji(domains, domain), getEmoji(actions, action), getEmoji(statuses, status), message), args...)
	}
}

func (l Logger) Info(domain, action, status, message string, args ...interface{}) {
	l.log(hclog.Info, domain, action, status, message, args...)
}
func (l Logger) Debug(domain, action, status, message string, args ...interface{}) {
	l.log(hclog.Debug, domain, action, status, message, args...)
}
func (l Logger) Warn(domain, action, status, message string, args ...interface{}) {
	l.log(hclog.Warn, domain, action, status, message, args...)
}
func (l Logger) Error(domain, action, status, message string, args ...interface{}) {
	l.log(hclog.Error, domain, action, status, message, args...)
}
