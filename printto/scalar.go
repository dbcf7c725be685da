package printto

import (
	"math"
	"strconv"
)

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the set of all integer types.
type Integer interface {
	Signed | Unsigned
}

// Floating is the set of floating-point types.
type Floating interface {
	~float32 | ~float64
}

// floatPrecision matches the default precision of a C++ output stream, so
// floats rendered here match the text of the generated bindings.
const floatPrecision = 6

// Int8 prints an 8-bit signed integer as a number. The value is widened
// first so it is never mistaken for a character.
func Int8[S Sink, T ~int8](s S, v T) {
	_, _ = s.WriteString(strconv.FormatInt(int64(v), 10))
}

// Uint8 prints an 8-bit unsigned integer (a byte) as a number.
func Uint8[S Sink, T ~uint8](s S, v T) {
	_, _ = s.WriteString(strconv.FormatUint(uint64(v), 10))
}

// Int prints a signed integer in decimal.
func Int[S Sink, T Signed](s S, v T) {
	_, _ = s.WriteString(strconv.FormatInt(int64(v), 10))
}

// Uint prints an unsigned integer in decimal.
func Uint[S Sink, T Unsigned](s S, v T) {
	_, _ = s.WriteString(strconv.FormatUint(uint64(v), 10))
}

// Float prints a floating-point number with six significant digits,
// trailing zeros removed.
func Float[S Sink, T Floating](s S, v T) {
	_, _ = s.WriteString(formatFloat(float64(v)))
}

// Bool prints "true" or "false".
func Bool[S Sink, T ~bool](s S, v T) {
	if v {
		_, _ = s.WriteString("true")
		return
	}

	_, _ = s.WriteString("false")
}

// String prints a string verbatim.
func String[S Sink, T ~string](s S, v T) {
	_, _ = s.WriteString(string(v))
}

// Bytes prints binary data verbatim.
func Bytes[S Sink, T ~[]byte](s S, v T) {
	_, _ = s.WriteString(string(v))
}

// Text writes a literal fragment. It is the building block generated
// printers use for names and separators.
func Text[S Sink](s S, text string) {
	_, _ = s.WriteString(text)
}

// formatInteger prints any integer keeping its sign: negative values of
// signed types print with a leading '-', unsigned values never do.
func formatInteger[T Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatUint(uint64(v), 10)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	return strconv.FormatFloat(f, 'g', floatPrecision, 64)
}
