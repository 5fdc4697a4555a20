package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// CorrelationID records a correlation id explicitly. The contextual handler
// leaves records carrying it untouched.
func CorrelationID(id string) slog.Attr {
	return slog.String(CorrelationIDKey, id)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String(UserIDKey, id)
}

// Outcome records how a correlation id was resolved.
func Outcome(outcome string) slog.Attr {
	return slog.String("outcome", outcome)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
