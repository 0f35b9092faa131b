//go:build !tinygo

package core

import "time"

// Host builds keep the tick counter in memory. Tests drive it with SetTime,
// the Linux runner advances it from the monotonic clock with SyncHostTime.
var hostEpoch = time.Now()

func getSystemTicks() uint32 {
	return systemTicks
}

func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}

// SyncHostTime loads the tick counter from the process monotonic clock.
func SyncHostTime() {
	setSystemTicks(uint32(time.Since(hostEpoch).Microseconds()))
}
