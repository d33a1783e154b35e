package service

import "time"

const dateLayout = "2006-01-02"

// Clock pins "today" to the restaurant's civil timezone.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{Location: loc, Now: time.Now}
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.loc())
	}
	return c.Now().In(c.loc())
}

// DayBounds returns the local midnight starting t's day and the following midnight.
func (c Clock) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc())
	return start, start.AddDate(0, 0, 1)
}

// Today returns today's report date and its half-open [start, end) window.
func (c Clock) Today() (string, time.Time, time.Time) {
	start, end := c.DayBounds(c.now())
	return start.Format(dateLayout), start, end
}
