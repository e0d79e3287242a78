package contrast

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestNewIsIdentity(t *testing.T) {
	tr := New()

	if tr.Mode() != Identity {
		t.Fatalf("Mode() = %v, want %v", tr.Mode(), Identity)
	}
	for _, x := range []float64{0, 1.5, 255.9, 513} {
		if got := tr.Apply(x); got != x {
			t.Errorf("Apply(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestConfigureFixedPoints(t *testing.T) {
	tests := []struct {
		bias, target float64
	}{
		{2, 2},
		{2, 1},
		{5, 512},
		{20, 512},
		{0.5, 100},
		{-3, 40},
	}

	for _, tt := range tests {
		tr := New()
		if err := tr.Configure(tt.bias, tt.target); err != nil {
			t.Fatalf("Configure(%v, %v) = %v", tt.bias, tt.target, err)
		}
		if tr.Mode() != Scaled {
			t.Errorf("Configure(%v, %v): Mode() = %v, want %v", tt.bias, tt.target, tr.Mode(), Scaled)
		}

		if got := tr.Apply(0); math.Abs(got) > tolerance {
			t.Errorf("bias=%v target=%v: Apply(0) = %v, want 0", tt.bias, tt.target, got)
		}
		if got := tr.Apply(tt.target); math.Abs(got-tt.target) > tolerance*math.Abs(tt.target) {
			t.Errorf("bias=%v target=%v: Apply(%v) = %v, want %v", tt.bias, tt.target, tt.target, got, tt.target)
		}
	}
}

func TestApplyKnownValues(t *testing.T) {
	tr := New()
	if err := tr.Configure(5, 512); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, want float64
	}{
		{3, 65.75342465753428},
		{11, 181.44329896907215},
		{100, 439.56043956043953},
		{511, 511.95992485911086},
	}
	for _, tt := range tests {
		if got := tr.Apply(tt.x); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Apply(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestApplySlopes(t *testing.T) {
	const h = 1e-6
	tr := New()
	if err := tr.Configure(3, 100); err != nil {
		t.Fatal(err)
	}

	slope0 := (tr.Apply(h) - tr.Apply(0)) / h
	if math.Abs(slope0-9) > 1e-3 {
		t.Errorf("slope at 0 = %v, want 9", slope0)
	}

	slopeT := (tr.Apply(100+h) - tr.Apply(100)) / h
	if math.Abs(slopeT-1.0/9) > 1e-3 {
		t.Errorf("slope at target = %v, want %v", slopeT, 1.0/9)
	}
}

func TestConfigureDegenerateBias(t *testing.T) {
	for _, bias := range []float64{1, -1} {
		tr := New()
		if err := tr.Configure(5, 512); err != nil {
			t.Fatal(err)
		}
		if err := tr.Configure(bias, 512); err != nil {
			t.Fatalf("Configure(%v, 512) = %v, want nil", bias, err)
		}
		if tr.Mode() != Identity {
			t.Errorf("Configure(%v, 512): Mode() = %v, want %v", bias, tr.Mode(), Identity)
		}
		if got := tr.Apply(42.5); got != 42.5 {
			t.Errorf("Configure(%v, 512): Apply(42.5) = %v, want 42.5", bias, got)
		}
		if tr.Bias() != bias || tr.Target() != 512 {
			t.Errorf("Configure(%v, 512): parameters = (%v, %v)", bias, tr.Bias(), tr.Target())
		}
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	tests := []struct {
		name         string
		bias, target float64
	}{
		{"zero bias", 0, 512},
		{"zero target", 5, 0},
		{"NaN bias", math.NaN(), 512},
		{"infinite target", 5, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			if err := tr.Configure(2, 2); err != nil {
				t.Fatal(err)
			}
			before := *tr

			err := tr.Configure(tt.bias, tt.target)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Configure(%v, %v) = %v, want ErrInvalidConfiguration", tt.bias, tt.target, err)
			}
			if *tr != before {
				t.Errorf("Configure(%v, %v) changed state: got %+v, want %+v", tt.bias, tt.target, *tr, before)
			}
			if got := tr.Apply(2); math.Abs(got-2) > tolerance {
				t.Errorf("Apply(2) = %v after rejected Configure, want 2", got)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if got := Identity.String(); got != "identity" {
		t.Errorf("Identity.String() = %q", got)
	}
	if got := Scaled.String(); got != "scaled" {
		t.Errorf("Scaled.String() = %q", got)
	}
	if got := Mode(9).String(); got != "Mode(9)" {
		t.Errorf("Mode(9).String() = %q", got)
	}
}
