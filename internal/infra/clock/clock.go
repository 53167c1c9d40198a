package clock

import "time"

// CivilDateLayout is the wire format for civil dates throughout the data
// file.
const CivilDateLayout = "2006-01-02"

// Clock supplies the current instant. Services take it via constructor so
// sweeps can be driven by a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

// System is the real clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// CivilDate returns the civil date of t in loc.
func CivilDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(CivilDateLayout)
}

// CivilHour returns the hour-of-day of t in loc.
func CivilHour(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}
