//go:build tinygo

package core

import "sync/atomic"

// The firmware loop writes the counter from the hardware timer; reads may
// happen from other goroutines (USB writer), so both sides go through atomics.
func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}
