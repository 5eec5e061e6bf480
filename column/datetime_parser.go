// datetime_parser.go - Parser for date and time column types
package column

import (
	"fmt"
	"time"

	"github.com/wilhasse/go-ibdparse/schema"
)

// DateTimeParser handles the packed date-time, DATETIME, DATE, TIMESTAMP
// and TIME kinds
type DateTimeParser struct {
	BaseParser
}

const (
	datetimeSignBit = uint64(1) << 39 // DATETIME2 is stored with this bit set
	timeIntOffset   = int64(0x800000) // TIME2 integer part offset
)

// Parse parses date/time value based on column kind
func (p *DateTimeParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	size := col.StorageSize()

	switch col.Kind {
	case schema.KindPackedDateTime:
		val, err := p.readUintN(input, offset, 4)
		if err != nil {
			return nil, 0, err
		}
		return DecodePackedDateTime(uint32(val)), size, nil

	case schema.KindDateTime:
		// 1 bit sign (always set), 17 bits year*13+month, 5 bits day,
		// 5 bits hour, 6 bits minute, 6 bits second
		packed, err := p.readUintN(input, offset, 5)
		if err != nil {
			return nil, 0, err
		}
		if packed&datetimeSignBit == 0 {
			return nil, 0, fmt.Errorf("negative DATETIME value %#x", packed)
		}
		packed -= datetimeSignBit
		micro, err := p.readFraction(input, offset+5, col.Precision)
		if err != nil {
			return nil, 0, err
		}
		yearMonth := int(packed >> 22)
		return DateTime{
			Year:   yearMonth / 13,
			Month:  yearMonth % 13,
			Day:    int(packed>>17) & 0x1F,
			Hour:   int(packed>>12) & 0x1F,
			Minute: int(packed>>6) & 0x3F,
			Second: int(packed) & 0x3F,
			Micro:  micro,
			Fsp:    col.Precision,
		}, size, nil

	case schema.KindDate:
		// DATE is stored as 3-byte integer
		// Bits: 15 for year, 4 for month, 5 for day
		val, err := p.readUintN(input, offset, 3)
		if err != nil {
			return nil, 0, err
		}
		// XOR transformation for signed storage
		val ^= 0x800000
		return Date{Year: int(val >> 9), Month: int(val>>5) & 0x0F, Day: int(val) & 0x1F}, size, nil

	case schema.KindTimestamp:
		// TIMESTAMP is 4 bytes (Unix timestamp)
		val, err := p.readUintN(input, offset, 4)
		if err != nil {
			return nil, 0, err
		}
		micro, err := p.readFraction(input, offset+4, col.Precision)
		if err != nil {
			return nil, 0, err
		}
		if val == 0 && micro == 0 {
			return DateTime{Fsp: col.Precision}, size, nil
		}
		t := time.Unix(int64(val), int64(micro)*1000)
		return DateTimeOf(t, col.Precision), size, nil

	case schema.KindTime:
		fb := size - 3
		raw, err := p.readUintN(input, offset, size)
		if err != nil {
			return nil, 0, err
		}
		fracBits := uint(fb) * 8
		packed := int64(raw) - timeIntOffset<<fracBits
		t := Time{Fsp: col.Precision}
		if packed < 0 {
			t.Negative = true
			packed = -packed
		}
		intPart := packed >> fracBits
		t.Micro = int(packed&(1<<fracBits-1)) * fractionUnit(fb)
		t.Hour = int(intPart>>12) & 0x3FF
		t.Minute = int(intPart>>6) & 0x3F
		t.Second = int(intPart) & 0x3F
		return t, size, nil

	default:
		return nil, 0, schema.ErrUnsupportedType
	}
}

// Skip skips date/time value without parsing
func (p *DateTimeParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	if n := col.StorageSize(); n > 0 {
		return n, nil
	}
	return 0, schema.ErrUnsupportedType
}

// Encode writes a date/time value back in stored form
func (p *DateTimeParser) Encode(col *schema.Column, value any) ([]byte, error) {
	switch col.Kind {
	case schema.KindPackedDateTime:
		d, ok := value.(DateTime)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		v, err := d.PackedDateTime()
		if err != nil {
			return nil, err
		}
		return encodeUintN(uint64(v), 4), nil

	case schema.KindDateTime:
		d, ok := value.(DateTime)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if d.Year < 0 || d.Year > 9999 || d.Month < 0 || d.Month > 12 || d.Day < 0 || d.Day > 31 ||
			d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 || d.Second < 0 || d.Second > 59 {
			return nil, fmt.Errorf("%s out of DATETIME range", d)
		}
		packed := uint64(d.Year*13+d.Month)<<22 | uint64(d.Day)<<17 |
			uint64(d.Hour)<<12 | uint64(d.Minute)<<6 | uint64(d.Second)
		out := encodeUintN(packed|datetimeSignBit, 5)
		return append(out, encodeFraction(d.Micro, col.Precision)...), nil

	case schema.KindDate:
		d, ok := value.(Date)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if d.Year < 0 || d.Year > 9999 || d.Month < 0 || d.Month > 12 || d.Day < 0 || d.Day > 31 {
			return nil, fmt.Errorf("%s out of DATE range", d)
		}
		v := uint64(d.Year)<<9 | uint64(d.Month)<<5 | uint64(d.Day)
		return encodeUintN(v^0x800000, 3), nil

	case schema.KindTimestamp:
		d, ok := value.(DateTime)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		var secs int64
		if d != (DateTime{Fsp: d.Fsp}) {
			t, err := d.Time()
			if err != nil {
				return nil, err
			}
			secs = t.Unix()
		}
		if secs < 0 || secs > 0xFFFFFFFF {
			return nil, fmt.Errorf("%s out of TIMESTAMP range", d)
		}
		out := encodeUintN(uint64(secs), 4)
		return append(out, encodeFraction(d.Micro, col.Precision)...), nil

	case schema.KindTime:
		t, ok := value.(Time)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
		}
		if t.Hour > 838 || t.Minute > 59 || t.Second > 59 || t.Hour < 0 || t.Minute < 0 || t.Second < 0 {
			return nil, fmt.Errorf("%s out of TIME range", t)
		}
		fb := (col.Precision + 1) / 2
		fracBits := uint(fb) * 8
		intPart := int64(t.Hour)<<12 | int64(t.Minute)<<6 | int64(t.Second)
		packed := intPart<<fracBits | int64(t.Micro/fractionUnit(fb))
		if t.Negative {
			packed = -packed
		}
		return encodeUintN(uint64(packed+timeIntOffset<<fracBits), 3+fb), nil

	default:
		return nil, schema.ErrUnsupportedType
	}
}

// readFraction reads fractional seconds and normalizes them to microseconds
func (p *DateTimeParser) readFraction(input []byte, offset int, precision int) (int, error) {
	fb := (precision + 1) / 2
	if fb == 0 {
		return 0, nil
	}
	val, err := p.readUintN(input, offset, fb)
	if err != nil {
		return 0, err
	}
	return int(val) * fractionUnit(fb), nil
}

func encodeFraction(micro, precision int) []byte {
	fb := (precision + 1) / 2
	if fb == 0 {
		return nil
	}
	return encodeUintN(uint64(micro/fractionUnit(fb)), fb)
}

// fractionUnit is the number of microseconds in one stored fraction step.
func fractionUnit(fracBytes int) int {
	switch fracBytes {
	case 1:
		return 10000
	case 2:
		return 100
	default:
		return 1
	}
}
