// Package goroutine runs work with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"tourbook/internal/shared/logger"
)

// Tracked runs fn in a goroutine registered on wg, which is released when fn
// returns or panics.
func Tracked(wg *sync.WaitGroup, log logger.Interface, name string, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		Run(log, name, fn)
	}()
}

// Run calls fn on the current goroutine. A panic is logged with its stack and
// swallowed.
func Run(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
