package vmath

import (
	"testing"
)

func TestMul(t *testing.T) {
	cases := []struct {
		a, b, want Fixed
	}{
		{FracUnit, FracUnit, FracUnit},
		{2 * FracUnit, 3 * FracUnit, 6 * FracUnit},
		{-2 * FracUnit, 3 * FracUnit, -6 * FracUnit},
		{FracUnit / 2, FracUnit / 2, FracUnit / 4},
		{0, 12345, 0},
	}
	for _, c := range cases {
		if got := Mul(c.a, c.b); got != c.want {
			t.Errorf("Mul(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMulNoIntermediateOverflow(t *testing.T) {
	// 30000 * 30000 in world units exceeds 32 bits before the rescale;
	// the 64-bit intermediate must carry it
	a := FromInt(30000)
	b := FromInt(2)
	if got := Mul(a, b); got != FromInt(60000) {
		t.Errorf("Mul(30000, 2) = %v, want 60000", got.Int())
	}
}

func TestDiv(t *testing.T) {
	if got := Div(6*FracUnit, 3*FracUnit); got != 2*FracUnit {
		t.Errorf("Div(6, 3) = %d, want %d", got, 2*FracUnit)
	}
	if got := Div(-6*FracUnit, 3*FracUnit); got != -2*FracUnit {
		t.Errorf("Div(-6, 3) = %d, want %d", got, -2*FracUnit)
	}
}

func TestDivOverflowGuard(t *testing.T) {
	// |a>>14| >= |b| must saturate instead of dividing
	if got := Div(FromInt(20000), 16); got != FixedMax {
		t.Errorf("Div overflow = %d, want saturated max %d", got, FixedMax)
	}
	if got := Div(FromInt(-20000), 16); got != FixedMin {
		t.Errorf("Div negative overflow = %d, want saturated min %d", got, FixedMin)
	}
	if got := Div(FromInt(20000), -16); got != FixedMin {
		t.Errorf("Div sign-mixed overflow = %d, want saturated min %d", got, FixedMin)
	}
}

func TestDivRoundTrip(t *testing.T) {
	for _, v := range []Fixed{FracUnit, 3 * FracUnit / 2, 100 * FracUnit, -7 * FracUnit} {
		got := Mul(Div(v, 4*FracUnit), 4*FracUnit)
		if diff := Abs(got - v); diff > 4 {
			t.Errorf("Mul(Div(%d, 4), 4) = %d, off by %d", v, got, diff)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %d, want 10", got)
	}
}
