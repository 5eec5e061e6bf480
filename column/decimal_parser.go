// decimal_parser.go - Parser for binary DECIMAL columns
package column

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wilhasse/go-ibdparse/format"
	"github.com/wilhasse/go-ibdparse/schema"
)

// DecimalParser handles DECIMAL(Precision, Scale) columns. Values are
// returned as decimal.Decimal.
type DecimalParser struct {
	BaseParser
}

const digitsPerGroup = 9

// bytes needed for 0..9 leftover digits
var digitBytes = [digitsPerGroup + 1]int{0, 1, 1, 2, 2, 3, 3, 4, 4, 4}

// Parse parses a binary decimal. The sign bit of the first byte is
// flipped; negative values have every byte inverted.
func (p *DecimalParser) Parse(input []byte, offset int, col *schema.Column, varLen int) (any, int, error) {
	size := col.StorageSize()
	raw, err := p.readBytes(input, offset, size)
	if err != nil {
		return nil, 0, err
	}
	if size == 0 {
		return decimal.Zero, 0, nil
	}

	buf := make([]byte, size)
	copy(buf, raw)
	negative := buf[0]&0x80 == 0
	buf[0] ^= 0x80
	if negative {
		for i := range buf {
			buf[i] = ^buf[i]
		}
	}

	intg := col.Precision - col.Scale
	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	pos := 0
	intDigits := readDigitGroups(&sb, buf, &pos, intg, true)
	if intDigits == 0 {
		sb.WriteByte('0')
	}
	if col.Scale > 0 {
		sb.WriteByte('.')
		readDigitGroups(&sb, buf, &pos, col.Scale, false)
	}

	d, err := decimal.NewFromString(sb.String())
	if err != nil {
		return nil, 0, fmt.Errorf("decimal(%d,%d): %w", col.Precision, col.Scale, err)
	}
	return d, size, nil
}

// readDigitGroups appends digits decimal digits read from buf. Integer parts
// store the partial group first, fraction parts store it last. Leading
// zeros of the integer part are dropped; the count of written digits is
// returned.
func readDigitGroups(sb *strings.Builder, buf []byte, pos *int, digits int, integer bool) int {
	full, rest := digits/digitsPerGroup, digits%digitsPerGroup
	written := 0
	emit := func(v uint64, width int) {
		s := fmt.Sprintf("%0*d", width, v)
		if integer && written == 0 {
			s = strings.TrimLeft(s, "0")
		}
		sb.WriteString(s)
		written += len(s)
	}
	readGroup := func(n int) uint64 {
		var v uint64
		for i := 0; i < n; i++ {
			v = v<<8 | uint64(buf[*pos])
			*pos++
		}
		return v
	}

	if integer && rest > 0 {
		emit(readGroup(digitBytes[rest]), rest)
	}
	for i := 0; i < full; i++ {
		emit(readGroup(4), digitsPerGroup)
	}
	if !integer && rest > 0 {
		emit(readGroup(digitBytes[rest]), rest)
	}
	return written
}

// Skip skips decimal value without parsing
func (p *DecimalParser) Skip(input []byte, offset int, col *schema.Column, varLen int) (int, error) {
	return col.StorageSize(), nil
}

// Encode writes a decimal.Decimal in binary DECIMAL form. The value is
// rounded to the column scale.
func (p *DecimalParser) Encode(col *schema.Column, value any) ([]byte, error) {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("cannot encode %T as %s", value, col.Kind)
	}
	negative := d.Sign() < 0
	text := d.Abs().StringFixed(int32(col.Scale))
	intPart, fracPart, _ := strings.Cut(text, ".")

	intg := col.Precision - col.Scale
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > intg {
		return nil, fmt.Errorf("%s does not fit decimal(%d,%d)", d, col.Precision, col.Scale)
	}
	intPart = strings.Repeat("0", intg-len(intPart)) + intPart

	out := make([]byte, 0, col.StorageSize())
	out = appendDigitGroups(out, intPart, true)
	out = appendDigitGroups(out, fracPart, false)

	if negative {
		for i := range out {
			out[i] = ^out[i]
		}
	}
	if len(out) > 0 {
		out[0] ^= 0x80
	}
	return out, nil
}

func appendDigitGroups(dst []byte, digits string, integer bool) []byte {
	full, rest := len(digits)/digitsPerGroup, len(digits)%digitsPerGroup
	put := func(s string, n int) {
		var v uint64
		for _, c := range s {
			v = v*10 + uint64(c-'0')
		}
		dst = format.AppendBeN(dst, v, n)
	}
	if integer && rest > 0 {
		put(digits[:rest], digitBytes[rest])
		digits = digits[rest:]
	}
	for i := 0; i < full; i++ {
		put(digits[:digitsPerGroup], 4)
		digits = digits[digitsPerGroup:]
	}
	if !integer && rest > 0 {
		put(digits, digitBytes[rest])
	}
	return dst
}
