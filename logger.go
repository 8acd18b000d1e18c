package disposables

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the package logger.
// It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the package logger. A nil logger restores the no-op logger.
// This must be called before any resources are created: existing resources keep
// the logger they were created with.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
