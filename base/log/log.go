package log

import (
	"go.uber.org/zap"
)

// Fields is a set of key/value pairs attached to a logger
type Fields map[string]interface{}

// Logger wraps the shared zap sugared logger together with accumulated fields
type Logger struct {
	logger *zap.SugaredLogger
	fields []interface{}
}

var sugared *zap.SugaredLogger

func init() {
	zl, _ := zap.NewProduction(zap.AddCallerSkip(1))
	sugared = zl.Sugar()
}

// Log returns a logger without fields
func Log() Logger {
	return Logger{
		logger: sugared,
	}
}

// WithField returns a logger carrying one additional key/value pair
func (l Logger) WithField(key string, value interface{}) Logger {
	fields := make([]interface{}, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	fields = append(fields, key, value)
	l.fields = fields
	return l
}

// WithFields returns a logger carrying additional key/value pairs
func (l Logger) WithFields(kvs Fields) Logger {
	for k, v := range kvs {
		l = l.WithField(k, v)
	}
	return l
}

// Debug log
func (l Logger) Debug(args ...interface{}) {
	l.logger.With(l.fields...).Debug(args...)
}

// Info log
func (l Logger) Info(args ...interface{}) {
	l.logger.With(l.fields...).Info(args...)
}

// Warn log
func (l Logger) Warn(args ...interface{}) {
	l.logger.With(l.fields...).Warn(args...)
}

// Error log
func (l Logger) Error(args ...interface{}) {
	l.logger.With(l.fields...).Error(args...)
}

// Panic log
func (l Logger) Panic(args ...interface{}) {
	l.logger.With(l.fields...).Panic(args...)
}
