package vmath

import (
	"testing"
)

// angleNear allows for the fine-table quantization of the arctangent
func angleNear(a, b Angle) bool {
	d := a - b
	if d > Ang180 {
		d = -d
	}
	return d < 1<<21
}

func TestPointToAngle2Cardinals(t *testing.T) {
	o := FromInt(0)
	d := FromInt(128)

	cases := []struct {
		name string
		x, y Fixed
		want Angle
	}{
		{"east", d, 0, 0},
		{"north", 0, d, Ang90},
		{"west", -d, 0, Ang180},
		{"south", 0, -d, Ang270},
		{"northeast", d, d, Ang45},
		{"southwest", -d, -d, Ang180 + Ang45},
	}
	for _, c := range cases {
		got := PointToAngle2(o, o, c.x, c.y)
		if !angleNear(got, c.want) {
			t.Errorf("%v: PointToAngle2 = %#x, want near %#x", c.name, got, c.want)
		}
	}
}

func TestPointToAngle2Wraparound(t *testing.T) {
	// Just below the +x axis the angle sits at the top of the unsigned
	// range; the difference across the axis must stay small
	below := PointToAngle2(0, 0, FromInt(1000), FromInt(-10))
	above := PointToAngle2(0, 0, FromInt(1000), FromInt(10))
	if below < Ang270 {
		t.Errorf("angle below axis = %#x, want wrapped above Ang270", below)
	}
	if span := above - below; span >= Ang45 {
		t.Errorf("span across +x axis = %#x, want small", span)
	}
}

func TestPointToDist(t *testing.T) {
	cases := []struct {
		dx, dy, want int
	}{
		{300, 400, 500},
		{400, 300, 500},
		{-300, -400, 500},
		{100, 0, 100},
		{0, 100, 100},
	}
	for _, c := range cases {
		got := PointToDist(0, 0, FromInt(c.dx), FromInt(c.dy))
		if diff := Abs(got - FromInt(c.want)); diff > FracUnit {
			t.Errorf("PointToDist(%d, %d) = %v, want %d", c.dx, c.dy, got.Float(), c.want)
		}
	}
}

func TestTrigTablesConsistent(t *testing.T) {
	for i := 0; i < FineAngles; i += 97 {
		s := FineSine[i]
		c := FineCosine[i]
		sum := Mul(s, s) + Mul(c, c)
		if diff := Abs(sum - FracUnit); diff > 16 {
			t.Errorf("sin^2+cos^2 at fine angle %d = %v, off by %d", i, sum.Float(), diff)
		}
	}
}

func TestTanToAngleEndpoints(t *testing.T) {
	if TanToAngle[0] != 0 {
		t.Errorf("TanToAngle[0] = %#x, want 0", TanToAngle[0])
	}
	if !angleNear(TanToAngle[slopeRange], Ang45) {
		t.Errorf("TanToAngle[max] = %#x, want near Ang45", TanToAngle[slopeRange])
	}
}

func TestFineRoundTrip(t *testing.T) {
	// Quantizing an angle and reading the tables must reproduce the
	// direction it came from
	for _, a := range []Angle{0, Ang45, Ang90 + Ang45/3, Ang180 + 12345678} {
		x := FineCosine[a.Fine()]
		y := FineSine[a.Fine()]
		back := PointToAngle2(0, 0, x, y)
		if !angleNear(back, a) {
			t.Errorf("round trip of %#x = %#x", a, back)
		}
	}
}
