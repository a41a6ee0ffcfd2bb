package dual

import (
	"math"
	"testing"
)

func almost(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSeedAndLift(t *testing.T) {
	s := Seed(3)
	if s.V != 3 || s.D != 1 {
		t.Errorf("Seed(3) = %+v, want {3 1}", s)
	}
	c := Lift(3)
	if c.V != 3 || c.D != 0 {
		t.Errorf("Lift(3) = %+v, want {3 0}", c)
	}
}

func TestArithmetic(t *testing.T) {
	x := Seed(3)

	// d(x^2)/dx = 2x = 6
	if sq := x.Mul(x); !almost(sq.V, 9) || !almost(sq.D, 6) {
		t.Errorf("x*x = %+v, want {9 6}", sq)
	}
	// d(x + 2)/dx = 1
	if s := x.Add(Lift(2)); !almost(s.V, 5) || !almost(s.D, 1) {
		t.Errorf("x+2 = %+v, want {5 1}", s)
	}
	// d(x - 2x)/dx = -1
	if d := x.Sub(x.Add(x)); !almost(d.V, -3) || !almost(d.D, -1) {
		t.Errorf("x-2x = %+v, want {-3 -1}", d)
	}
	// d(1/x)/dx = -1/x^2 = -1/9
	if q := Lift(1).Div(x); !almost(q.V, 1.0/3) || !almost(q.D, -1.0/9) {
		t.Errorf("1/x = %+v", q)
	}
}

func TestElementary(t *testing.T) {
	x := Seed(0.5)

	if s := x.Sin(); !almost(s.V, float32(math.Sin(0.5))) || !almost(s.D, float32(math.Cos(0.5))) {
		t.Errorf("sin = %+v", s)
	}
	if c := x.Cos(); !almost(c.V, float32(math.Cos(0.5))) || !almost(c.D, float32(-math.Sin(0.5))) {
		t.Errorf("cos = %+v", c)
	}
	if e := x.Exp(); !almost(e.V, float32(math.Exp(0.5))) || !almost(e.D, float32(math.Exp(0.5))) {
		t.Errorf("exp = %+v", e)
	}

	y := Seed(2)
	if l := y.Ln(); !almost(l.V, float32(math.Log(2))) || !almost(l.D, 0.5) {
		t.Errorf("ln = %+v", l)
	}
	// d(y^3)/dy = 3y^2 = 12
	if p := y.PowI(3); !almost(p.V, 8) || !almost(p.D, 12) {
		t.Errorf("y^3 = %+v", p)
	}
}

func TestRelu(t *testing.T) {
	if r := Seed(2).Relu(); !almost(r.V, 2) || !almost(r.D, 1) {
		t.Errorf("relu(2) = %+v, want {2 1}", r)
	}
	if r := Seed(-2).Relu(); r.V != 0 || r.D != 0 {
		t.Errorf("relu(-2) = %+v, want {0 0}", r)
	}
}

// TestChainedTangent pushes a longer chain through and cross-checks against
// the hand-derived derivative.
func TestChainedTangent(t *testing.T) {
	// f(x) = sin(x^2) + x, f'(x) = 2x*cos(x^2) + 1
	for _, x := range []float32{-1.2, 0, 0.3, 1.7} {
		d := Seed(x)
		got := d.Mul(d).Sin().Add(d)
		want := float32(2*float64(x)*math.Cos(float64(x*x)) + 1)
		if !almost(got.D, want) {
			t.Errorf("f'(%g) = %g, want %g", x, got.D, want)
		}
	}
}
