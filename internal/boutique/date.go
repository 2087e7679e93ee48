package boutique

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// MaxRangeDays caps a single booking.
const MaxRangeDays = 365

const secondsPerDay = 24 * 60 * 60

// Date is a calendar day in UTC. The zero value is "no date".
type Date struct{ t time.Time }

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, Validationf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) String() string     { return d.t.Format(DateLayout) }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return Validationf("invalid date: %v", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// DateRange is inclusive on both ends.
type DateRange struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return Validationf("start and end dates are required")
	}
	if r.Start.After(r.End) {
		return Validationf("start date %s is after end date %s", r.Start, r.End)
	}
	if n := r.Days(); n > MaxRangeDays {
		return Validationf("a booking spans %d days, at most %d are allowed", n, MaxRangeDays)
	}
	return nil
}

// Days counts the days covered, both ends included.
func (r DateRange) Days() int {
	return int((r.End.t.Unix()-r.Start.t.Unix())/secondsPerDay) + 1
}

// Overlaps treats a shared boundary day as an overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

func (r DateRange) EachDay(fn func(Date)) {
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		fn(d)
	}
}
