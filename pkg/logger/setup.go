package logger

import "strings"

// ParseLevel maps a user-supplied level name to a LogLevel, defaulting to info.
func ParseLevel(logLevel string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(logLevel))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel:
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	case DisabledLevel:
		return DisabledLevel
	default:
		return InfoLevel
	}
}

// SetupLogger installs a default logger built from flat settings and returns it.
func SetupLogger(logLevel string, logJSON, logSource bool) Logger {
	Init(&Config{
		Level:      ParseLevel(logLevel),
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
	return GetDefault()
}
