package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ── Lexicographic numbers ─────────────────────────────────────────────────────
//
// Numbers are encoded so that comparing the encoded strings byte by byte
// gives the same order as comparing the numbers.
//
//	signed    prefix '0' for negatives, '1' otherwise, then the zero padded
//	          magnitude; negatives are stored as max+v+1
//	unsigned  zero padded value
//	float     16 hex digits of the order-preserving IEEE 754 bit pattern

const (
	negativePrefix = '0'
	positivePrefix = '1'
)

// signedDigits is the decimal width of the largest value of each size.
var signedDigits = map[int]int{
	8:  3,  // 127
	16: 5,  // 32,767
	32: 10, // 2,147,483,647
	64: 19, // 9,223,372,036,854,775,807
}

var unsignedDigits = map[int]int{
	8:  3,  // 255
	16: 5,  // 65,535
	32: 10, // 4,294,967,295
	64: 20, // 18,446,744,073,709,551,615
}

// EncodeInt encodes v, a signed integer of the given bit size.
//
//	EncodeInt(-1, 32)  // "02147483647"
//	EncodeInt(0, 32)   // "10000000000"
func EncodeInt(v int64, bits int) string {
	width := signedDigits[bits]
	maxValue := int64(math.MaxInt64 >> (64 - bits))

	prefix := byte(positivePrefix)
	if v < 0 {
		prefix = negativePrefix
		// v is at least -(max+1), so this never leaves [0, max]
		v = maxValue + v + 1
	}
	return string(prefix) + pad(strconv.FormatInt(v, 10), width)
}

// DecodeInt is the inverse of EncodeInt.
func DecodeInt(s string, bits int) (int64, error) {
	width, ok := signedDigits[bits]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported size %d", ErrMalformed, bits)
	}
	if len(s) != width+1 {
		return 0, fmt.Errorf("%w: %q is not a %d-bit lex integer", ErrMalformed, s, bits)
	}
	if !digitsOnly(s[1:]) {
		return 0, fmt.Errorf("%w: %q has non-digit characters", ErrMalformed, s)
	}

	maxValue := int64(math.MaxInt64 >> (64 - bits))
	n, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil || n > maxValue {
		return 0, fmt.Errorf("%w: %q is out of range for %d bits", ErrMalformed, s, bits)
	}

	switch s[0] {
	case positivePrefix:
		return n, nil
	case negativePrefix:
		return n - maxValue - 1, nil
	default:
		return 0, fmt.Errorf("%w: %q has an unknown sign prefix", ErrMalformed, s)
	}
}

// EncodeUint encodes v, an unsigned integer of the given bit size.
func EncodeUint(v uint64, bits int) string {
	return pad(strconv.FormatUint(v, 10), unsignedDigits[bits])
}

// DecodeUint is the inverse of EncodeUint.
func DecodeUint(s string, bits int) (uint64, error) {
	width, ok := unsignedDigits[bits]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported size %d", ErrMalformed, bits)
	}
	if len(s) != width || !digitsOnly(s) {
		return 0, fmt.Errorf("%w: %q is not a %d-bit lex unsigned integer", ErrMalformed, s, bits)
	}
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range for %d bits", ErrMalformed, s, bits)
	}
	return n, nil
}

// EncodeFloat encodes f. Negative numbers have every bit flipped, positive
// ones only the sign bit, which makes the unsigned bit patterns sort like
// the numbers.
func EncodeFloat(f float64) string {
	b := math.Float64bits(f)
	if b>>63 == 1 {
		b = ^b
	} else {
		b |= 1 << 63
	}
	return fmt.Sprintf("%016x", b)
}

// DecodeFloat is the inverse of EncodeFloat.
func DecodeFloat(s string) (float64, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("%w: %q is not a lex float", ErrMalformed, s)
	}
	b, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a lex float", ErrMalformed, s)
	}
	if b>>63 == 1 {
		b &^= 1 << 63
	} else {
		b = ^b
	}
	return math.Float64frombits(b), nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func pad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
