package util

import (
	"testing"
	"time"

	"github.com/go-quicktest/qt"
)

func TestMonotonicClock(t *testing.T) {
	us := GetMonotonicUs()
	ms := GetMonotonicMs()
	qt.Assert(t, qt.IsTrue(ms >= us/1000))

	time.Sleep(5 * time.Millisecond)
	qt.Assert(t, qt.IsTrue(GetMonotonicUs()-us >= 5000))
	qt.Assert(t, qt.IsTrue(GetMonotonicMs() >= ms+4))
}
