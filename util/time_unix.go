//go:build linux || darwin

package util

import "golang.org/x/sys/unix"

// GetMonotonicUs reads CLOCK_MONOTONIC, which wall clock adjustments cannot
// move backwards.
func GetMonotonicUs() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic(err)
	}
	return ts.Nano() / 1e3
}
