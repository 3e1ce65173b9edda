package odds_test

import (
	"math"
	"testing"

	"github.com/XavierBriggs/Themis/internal/odds"
)

func TestImpliedProbability(t *testing.T) {
	cases := []struct {
		american int
		want     float64
	}{
		{-110, 110.0 / 210.0},
		{+110, 100.0 / 210.0},
		{-125, 125.0 / 225.0},
		{+100, 0.5},
		{-100, 0.5},
		{+250, 100.0 / 350.0},
		{-300, 300.0 / 400.0},
	}

	for _, c := range cases {
		got := odds.ImpliedProbability(c.american)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ImpliedProbability(%d) = %f, want %f", c.american, got, c.want)
		}
	}
}

func TestProbabilityToAmerican(t *testing.T) {
	if got := odds.ProbabilityToAmerican(0.75); got != -300 {
		t.Errorf("expected -300 for 0.75, got %d", got)
	}
	if got := odds.ProbabilityToAmerican(0.25); got != 300 {
		t.Errorf("expected +300 for 0.25, got %d", got)
	}
}

// Round-trip law: probabilityToAmerican(impliedProbability(o)) == o within
// rounding tolerance, for both favorites and underdogs.
func TestRoundTrip(t *testing.T) {
	for _, o := range []int{-500, -300, -125, -110, -105, 105, 110, 125, 150, 300, 500} {
		back := odds.ProbabilityToAmerican(odds.ImpliedProbability(o))
		if diff := back - o; diff < -1 || diff > 1 {
			t.Errorf("round trip %d -> %d", o, back)
		}
	}
}

func TestDecimalConversions(t *testing.T) {
	if got := odds.AmericanToDecimal(-110); math.Abs(got-1.9090909) > 1e-6 {
		t.Errorf("AmericanToDecimal(-110) = %f", got)
	}
	if got := odds.AmericanToDecimal(150); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("AmericanToDecimal(150) = %f", got)
	}
	if got := odds.DecimalToAmerican(2.5); got != 150 {
		t.Errorf("DecimalToAmerican(2.5) = %d", got)
	}
	if got := odds.DecimalToAmerican(1.5); got != -200 {
		t.Errorf("DecimalToAmerican(1.5) = %d", got)
	}
}

func TestNewPoint(t *testing.T) {
	p := odds.NewPoint(-110)
	if p.American != -110 {
		t.Errorf("expected american -110, got %d", p.American)
	}
	if math.Abs(p.ImpliedProb-0.5238095) > 1e-6 {
		t.Errorf("expected implied prob ~0.5238, got %f", p.ImpliedProb)
	}
}
