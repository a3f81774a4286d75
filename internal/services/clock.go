package services

import "time"

// nowFunc lets tests pin the clock for deadline and expiry checks.
type nowFunc func() time.Time

func defaultNow() time.Time {
	return time.Now()
}
