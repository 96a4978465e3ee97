package observability

import "go.uber.org/zap"

// Thin aliases over zap fields so callers outside the HTTP layer don't need
// a direct zap import.

// String creates a string log field.
func String(key, value string) zap.Field {
	return zap.String(key, value)
}

// Int creates an integer log field.
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Bool creates a boolean log field.
func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

// Error creates an error log field.
func Error(err error) zap.Field {
	return zap.Error(err)
}
