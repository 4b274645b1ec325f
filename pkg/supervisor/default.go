package supervisor

import (
	"sync"

	"github.com/brunusansi/donutbrowser/pkg/xrayinstall"
)

var (
	defaultOnce sync.Once
	defaultInst *Supervisor
)

// Default returns a process-wide Supervisor lazily constructed around
// locator on first use; subsequent calls (with any locator argument)
// return the same instance. Hosts that want an explicit, independently
// lifecycled registry should call New directly instead.
func Default(locator *xrayinstall.Locator) *Supervisor {
	defaultOnce.Do(func() {
		defaultInst = New(locator)
	})
	return defaultInst
}
