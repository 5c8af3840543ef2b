package vmath

import (
	"golang.org/x/exp/constraints"
)

// 16.16 fixed point constants
const (
	FracBits = 16
	FracUnit = Fixed(1 << FracBits)

	FixedMax = Fixed(0x7FFFFFFF)
	FixedMin = Fixed(-0x7FFFFFFF - 1)
)

// Fixed is a signed 16.16 fixed-point scalar
type Fixed int32

func FromInt(i int) Fixed       { return Fixed(i) << FracBits }
func (f Fixed) Int() int        { return int(f >> FracBits) }
func FromFloat(v float64) Fixed { return Fixed(v * float64(FracUnit)) }
func (f Fixed) Float() float64  { return float64(f) / float64(FracUnit) }

// Mul multiplies two fixed values with a 64-bit intermediate
func Mul(a, b Fixed) Fixed {
	return Fixed(int64(a) * int64(b) >> FracBits)
}

// Div divides two fixed values. When the quotient would overflow the
// 16.16 range (|a>>14| >= |b|) it saturates to the max fixed value with
// the sign of the would-be result instead of dividing.
func Div(a, b Fixed) Fixed {
	if Abs(a)>>14 >= Abs(b) {
		if (a ^ b) < 0 {
			return FixedMin
		}
		return FixedMax
	}
	return Fixed((int64(a) << FracBits) / int64(b))
}

// Abs returns absolute value
func Abs(x Fixed) Fixed {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
