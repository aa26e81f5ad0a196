//go:build !linux && !darwin

package util

import "time"

var clockStart = time.Now()

func GetMonotonicUs() int64 {
	return time.Since(clockStart).Microseconds()
}
