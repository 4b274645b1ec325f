// Package xraylog provides the structured logger shared by the xrayinstall,
// supervisor, and terms packages.
package xraylog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	current = l
}

// Set replaces the global logger. A host embedding this module can call
// this once at startup to route logs into its own sink.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	current = l
}

// L returns the current global logger, scoped to component.
func L(component string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.Named(component)
}
