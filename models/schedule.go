package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DayOfWeek is Sunday=0 .. Saturday=6, the same numbering as time.Weekday.
// Stored schedules may carry either the number or the English name; both decode to this type.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d DayOfWeek) Valid() bool { return d >= Sunday && d <= Saturday }

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return "DayOfWeek(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d]
}

func (d DayOfWeek) Weekday() time.Weekday { return time.Weekday(d) }

// DayOfWeekOf returns the UTC day of week of t.
func DayOfWeekOf(t time.Time) DayOfWeek {
	return DayOfWeek(t.UTC().Weekday())
}

// ParseDayOfWeek accepts "Monday", "monday", "Mon" or a numeric string "1".
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return DayOfWeekFromInt(int64(n))
	}
	for i, name := range dayNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", s)
}

// DayOfWeekFromInt accepts the legacy numeric encoding 0..6.
func DayOfWeekFromInt(n int64) (DayOfWeek, error) {
	d := DayOfWeek(n)
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("day of week %d out of range 0..6", n)
	}
	return d, nil
}

func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day of week %d", int(d))
	}
	return json.Marshal(d.String())
}

func (d *DayOfWeek) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseDayOfWeek(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("day of week must be a name or an integer: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("day of week must be an integer: %w", err)
	}
	parsed, err := DayOfWeekFromInt(i)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DayOfWeek) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !d.Valid() {
		return 0, nil, fmt.Errorf("invalid day of week %d", int(d))
	}
	return bson.MarshalValue(d.String())
}

func (d *DayOfWeek) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	var (
		parsed DayOfWeek
		err    error
	)
	switch t {
	case bsontype.String:
		parsed, err = ParseDayOfWeek(rv.StringValue())
	case bsontype.Int32:
		parsed, err = DayOfWeekFromInt(int64(rv.Int32()))
	case bsontype.Int64:
		parsed, err = DayOfWeekFromInt(rv.Int64())
	case bsontype.Double:
		parsed, err = DayOfWeekFromInt(int64(rv.Double()))
	default:
		err = fmt.Errorf("cannot decode day of week from bson %s", t)
	}
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time as minutes from midnight (e.g., 540 for 09:00).
type TimeOfDay int

// EndOfDay is "24:00", allowed only as a window end.
const EndOfDay TimeOfDay = 24 * 60

// ParseTimeOfDay parses a 24h "HH:mm" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, fmt.Errorf("time %q is not in HH:mm format", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("time %q has a bad hour", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("time %q has a bad minute", s)
	}
	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q is out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayOf returns the UTC wall-clock time of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	t = t.UTC()
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On anchors t to the UTC calendar day of date.
func (t TimeOfDay) On(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Add(time.Duration(t) * time.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time of day must be an \"HH:mm\" string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.String())
}

func (t *TimeOfDay) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}
	s, ok := rv.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode time of day from bson %s", bt)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a working window; Start < End.
type TimeRange struct {
	Start TimeOfDay `bson:"start" json:"start"`
	End   TimeOfDay `bson:"end" json:"end"`
}

// DaySchedule is one weekday entry of a provider's template.
type DaySchedule struct {
	DayOfWeek   DayOfWeek   `bson:"dayOfWeek" json:"dayOfWeek"`
	IsAvailable bool        `bson:"isAvailable" json:"isAvailable"`
	Windows     []TimeRange `bson:"windows" json:"windows"`
}

// WeeklyAvailability is the provider-owned weekly template. Each DayOfWeek appears at most once.
type WeeklyAvailability struct {
	BufferTimeMinutes int           `bson:"bufferTimeMinutes" json:"bufferTimeMinutes"`
	Days              []DaySchedule `bson:"days" json:"days"`
	UpdatedAt         time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// Day returns the entry for d, if any.
func (w *WeeklyAvailability) Day(d DayOfWeek) (DaySchedule, bool) {
	if w == nil {
		return DaySchedule{}, false
	}
	for _, ds := range w.Days {
		if ds.DayOfWeek == d {
			return ds, true
		}
	}
	return DaySchedule{}, false
}

// WeeklyAvailabilityInput is the raw payload of a schedule update. Fields stay raw so
// validation can name the exact field that is wrong.
type WeeklyAvailabilityInput struct {
	BufferTimeMinutes json.RawMessage    `json:"bufferTimeMinutes"`
	Days              []DayScheduleInput `json:"days"`
}

type DayScheduleInput struct {
	DayOfWeek   json.RawMessage  `json:"dayOfWeek"`
	IsAvailable json.RawMessage  `json:"isAvailable"`
	Windows     []TimeRangeInput `json:"windows"`
}

type TimeRangeInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
