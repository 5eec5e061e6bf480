// temporal.go - Calendar values and the packed date-time codec
package column

import (
	"fmt"
	"time"
)

// DateTime is a calendar timestamp without time zone.
type DateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Micro                int // microseconds
	Fsp                  int // fractional digits to print
}

func (d DateTime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
	return s + fraction(d.Micro, d.Fsp)
}

func (d DateTime) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Validate checks calendar ranges.
func (d DateTime) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("month %d out of range", d.Month)
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return fmt.Errorf("day %d out of range for %04d-%02d", d.Day, d.Year, d.Month)
	}
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 || d.Second < 0 || d.Second > 59 {
		return fmt.Errorf("time %02d:%02d:%02d out of range", d.Hour, d.Minute, d.Second)
	}
	if d.Micro < 0 || d.Micro > 999999 {
		return fmt.Errorf("microseconds %d out of range", d.Micro)
	}
	return nil
}

// Time converts a valid DateTime to a UTC time.Time.
func (d DateTime) Time() (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second,
		d.Micro*1000, time.UTC), nil
}

// DateTimeOf builds a DateTime from t in UTC.
func DateTimeOf(t time.Time, fsp int) DateTime {
	t = t.UTC()
	return DateTime{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Micro: t.Nanosecond() / 1000, Fsp: fsp,
	}
}

// DecodePackedDateTime decodes the 4-byte packed date-time.
//
// Fields are taken from the low bits up: second (6), minute (6), hour (5),
// day (5). The remaining 10 bits are the low bits of year*13+month and are
// mapped back with
//
//	month = (v%13 + 3) % 13
//	year  = v/13 + 1970 if v%13 >= 11, else v/13 + 1969
//
// which is exact for 1969-03 through 2047-12, the whole 10-bit range.
func DecodePackedDateTime(value uint32) DateTime {
	second := int(value & 0x3F)
	value >>= 6
	minute := int(value & 0x3F)
	value >>= 6
	hour := int(value & 0x1F)
	value >>= 5
	day := int(value & 0x1F)
	value >>= 5

	rem := int(value % 13)
	month := (rem + 3) % 13
	year := int(value/13) + 1969
	if rem >= 11 {
		year = int(value/13) + 1970
	}
	return DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
}

// PackedDateTime is the inverse of DecodePackedDateTime. It fails only when
// a field does not fit its bit width; it does not check calendar validity.
func (d DateTime) PackedDateTime() (uint32, error) {
	if d.Second < 0 || d.Second > 0x3F || d.Minute < 0 || d.Minute > 0x3F ||
		d.Hour < 0 || d.Hour > 0x1F || d.Day < 0 || d.Day > 0x1F {
		return 0, fmt.Errorf("%s does not fit the packed layout", d)
	}

	var rem, base int
	switch {
	case d.Month == 0:
		rem, base = 10, 1969
	case d.Month == 1 || d.Month == 2:
		rem, base = d.Month+10, 1970
	case d.Month >= 3 && d.Month <= 12:
		rem, base = d.Month-3, 1969
	default:
		return 0, fmt.Errorf("month %d does not fit the packed layout", d.Month)
	}
	v := (d.Year-base)*13 + rem
	if v < 0 || v > 0x3FF {
		return 0, fmt.Errorf("%04d-%02d outside the packed range 1969-03..2047-12", d.Year, d.Month)
	}

	out := uint32(v)
	out = out<<5 | uint32(d.Day)
	out = out<<5 | uint32(d.Hour)
	out = out<<6 | uint32(d.Minute)
	out = out<<6 | uint32(d.Second)
	return out, nil
}

// Date is a calendar date.
type Date struct {
	Year, Month, Day int
}

func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day) }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Time is a signed time of day or duration as stored by TIME columns.
type Time struct {
	Negative             bool
	Hour, Minute, Second int
	Micro                int
	Fsp                  int
}

func (t Time) String() string {
	sign := ""
	if t.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, t.Hour, t.Minute, t.Second) + fraction(t.Micro, t.Fsp)
}

func (t Time) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func fraction(micro, fsp int) string {
	if fsp <= 0 {
		return ""
	}
	return fmt.Sprintf(".%06d", micro)[:fsp+1]
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
