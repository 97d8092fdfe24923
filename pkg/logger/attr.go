package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Form records a form identifier under the key "form_id".
func Form(formID string) slog.Attr {
	return slog.String("form_id", formID)
}

// Field records a field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Event records an event type under the key "event_type".
func Event(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
