package utils

import "time"

// Clock abstracts wall-clock reads so calculations stay reproducible.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock { return fixedClock(t) }

type fixedClock time.Time

func (f fixedClock) Now() time.Time { return time.Time(f) }
