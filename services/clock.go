package services

import "time"

// Clock supplies the current instant and the hotel calendar "today" is read in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today is the current calendar date at midnight UTC, the form dates are
// stored in.
func (c Clock) Today() time.Time {
	now := c.now().In(c.location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Stamp is the UTC write timestamp.
func (c Clock) Stamp() time.Time {
	return c.now().UTC()
}
