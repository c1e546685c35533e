package attendance

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is the offset of a wall-clock reading from local midnight.
type TimeOfDay time.Duration

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// TimeOfDayOf reads the wall clock of t in t's own location, keeping sub-second precision.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()) + TimeOfDay(t.Nanosecond())
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDayOf(t), nil
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Window is a closed daily time range.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Contains(t TimeOfDay) bool {
	return t >= w.Start && t <= w.End
}

func (w Window) String() string {
	return w.Start.String() + " - " + w.End.String()
}

// Policy holds the kiosk's daily rules.
type Policy struct {
	Location     *time.Location
	ClockIn      Window
	OnTimeUntil  TimeOfDay
	ClockOut     Window
	AbsentCutoff TimeOfDay
	SeatCount    int
	SeatedRoles  []string
}

func DefaultPolicy() Policy {
	return Policy{
		Location:     time.UTC,
		ClockIn:      Window{Start: NewTimeOfDay(4, 30, 0), End: NewTimeOfDay(9, 30, 0)},
		OnTimeUntil:  NewTimeOfDay(8, 30, 0),
		ClockOut:     Window{Start: NewTimeOfDay(15, 0, 0), End: NewTimeOfDay(18, 0, 0)},
		AbsentCutoff: NewTimeOfDay(9, 31, 0),
		SeatCount:    60,
		SeatedRoles:  []string{"staff", "magang"},
	}
}

// PolicyOptions carries raw overrides, usually from configuration.
// Empty or zero fields keep the DefaultPolicy value.
type PolicyOptions struct {
	Timezone      string
	ClockInStart  string
	ClockInEnd    string
	OnTimeUntil   string
	ClockOutStart string
	ClockOutEnd   string
	AbsentCutoff  string
	SeatCount     int
	SeatedRoles   []string
}

func NewPolicy(opts PolicyOptions) (Policy, error) {
	p := DefaultPolicy()

	if opts.Timezone != "" {
		loc, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return Policy{}, fmt.Errorf("invalid timezone %q: %w", opts.Timezone, err)
		}
		p.Location = loc
	}

	overrides := []struct {
		raw    string
		target *TimeOfDay
	}{
		{opts.ClockInStart, &p.ClockIn.Start},
		{opts.ClockInEnd, &p.ClockIn.End},
		{opts.OnTimeUntil, &p.OnTimeUntil},
		{opts.ClockOutStart, &p.ClockOut.Start},
		{opts.ClockOutEnd, &p.ClockOut.End},
		{opts.AbsentCutoff, &p.AbsentCutoff},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		v, err := ParseTimeOfDay(o.raw)
		if err != nil {
			return Policy{}, err
		}
		*o.target = v
	}

	if opts.SeatCount > 0 {
		p.SeatCount = opts.SeatCount
	}
	if len(opts.SeatedRoles) > 0 {
		p.SeatedRoles = opts.SeatedRoles
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) Validate() error {
	if p.Location == nil {
		return fmt.Errorf("policy location is required")
	}
	if p.ClockIn.Start > p.ClockIn.End {
		return fmt.Errorf("clock-in window %s is inverted", p.ClockIn)
	}
	if p.ClockOut.Start > p.ClockOut.End {
		return fmt.Errorf("clock-out window %s is inverted", p.ClockOut)
	}
	if p.AbsentCutoff <= p.ClockIn.End {
		return fmt.Errorf("absent cutoff %s must be after the clock-in window closes at %s", p.AbsentCutoff, p.ClockIn.End)
	}
	if p.SeatCount < 1 {
		return fmt.Errorf("seat count must be positive")
	}
	return nil
}

// HasSeat reports whether an employee with the given role draws a seat.
func (p Policy) HasSeat(role string) bool {
	role = strings.TrimSpace(role)
	for _, r := range p.SeatedRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// FreeSeats returns the seats in [1, SeatCount] that are not in taken, ascending.
func (p Policy) FreeSeats(taken []int) []int {
	used := make(map[int]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}

	free := make([]int, 0, p.SeatCount)
	for seat := 1; seat <= p.SeatCount; seat++ {
		if _, ok := used[seat]; !ok {
			free = append(free, seat)
		}
	}
	return free
}

// Remark classifies a clock-in time.
func (p Policy) Remark(t TimeOfDay) Remark {
	if t <= p.OnTimeUntil {
		return RemarkOnTime
	}
	return RemarkLate
}

// Window returns the accepted time range for an action.
func (p Policy) Window(action Action) Window {
	if action == ActionClockOut {
		return p.ClockOut
	}
	return p.ClockIn
}

// Local converts t to the kiosk location.
func (p Policy) Local(t time.Time) time.Time {
	return t.In(p.Location)
}
