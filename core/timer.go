package core

import "time"

// Timer frequency of the system tick counter.
// RP2040/RP2350 expose a 1MHz microsecond timer, host builds follow the same unit.
const (
	TimerFreq = 1000000
)

var (
	systemTicks uint32
	bootTime    uint32 // Tick count captured by TimerInit
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// Elapsed returns the ticks passed since the given tick count.
// The subtraction is modular so a counter rollover between the two
// readings still yields the right distance.
func Elapsed(since uint32) uint32 {
	return GetTime() - since
}

// Uptime returns the ticks elapsed since TimerInit
func Uptime() uint32 {
	return Elapsed(bootTime)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TimerFromDuration converts a duration to timer ticks, saturating at the
// largest representable interval.
func TimerFromDuration(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	us := d.Microseconds()
	ticks := uint64(us) * TimerFreq / 1000000
	if ticks > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(ticks)
}

// TimerInit initializes the system timer
func TimerInit() {
	bootTime = GetTime()
}
