package entities

import "time"

type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time {
	return time.Now().UTC()
}

// SystemTime returns the wall-clock TimeProvider
func SystemTime() TimeProvider {
	return systemTime{}
}
