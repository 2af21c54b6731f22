package shadow

import (
	"math"
	"testing"
)

func TestSplitFractionsContract(t *testing.T) {
	tests := []struct {
		name      string
		near, far float32
		count     int
		lambda    float32
		wantErr   error
	}{
		{"zero near", 0, 100, 3, 0.95, ErrInvalidClipPlanes},
		{"negative near", -1, 100, 3, 0.95, ErrInvalidClipPlanes},
		{"far before near", 10, 5, 3, 0.95, ErrInvalidClipPlanes},
		{"far equals near", 10, 10, 3, 0.95, ErrInvalidClipPlanes},
		{"zero count", 0.1, 100, 0, 0.95, ErrInvalidCascadeCount},
		{"negative lambda", 0.1, 100, 3, -0.1, ErrInvalidLambda},
		{"lambda above one", 0.1, 100, 3, 1.1, ErrInvalidLambda},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitFractions(tt.near, tt.far, tt.count, tt.lambda)
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitFractions(t *testing.T) {
	t.Run("strictly increasing, last is one", func(t *testing.T) {
		fractions, err := SplitFractions(0.1, 100, 4, 0.95)
		if err != nil {
			t.Fatal(err)
		}
		if len(fractions) != 4 {
			t.Fatalf("len = %d, want 4", len(fractions))
		}
		prev := float32(0)
		for i, f := range fractions {
			if f <= prev {
				t.Errorf("fraction %d = %v, not greater than %v", i, f, prev)
			}
			prev = f
		}
		if fractions[3] != 1.0 {
			t.Errorf("last fraction = %v, want exactly 1", fractions[3])
		}
	})

	t.Run("uniform when lambda is zero", func(t *testing.T) {
		fractions, err := SplitFractions(1, 101, 4, 0)
		if err != nil {
			t.Fatal(err)
		}
		for i, f := range fractions {
			want := float32(i+1) / 4
			if math.Abs(float64(f-want)) > 1e-6 {
				t.Errorf("fraction %d = %v, want %v", i, f, want)
			}
		}
	})

	t.Run("matches reference evaluation", func(t *testing.T) {
		const (
			near   = 0.1
			far    = 100.0
			count  = 3
			lambda = 0.95
		)
		fractions, err := SplitFractions(near, far, count, lambda)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= count; i++ {
			p := float64(i) / count
			dLog := near * math.Pow(far/near, p)
			dUni := near + (far-near)*p
			d := lambda*dLog + (1-lambda)*dUni
			want := (d - near) / (far - near)
			if i == count {
				want = 1.0
			}
			if math.Abs(float64(fractions[i-1])-want) > 1e-6 {
				t.Errorf("fraction %d = %v, want %v", i-1, fractions[i-1], want)
			}
		}
	})

	t.Run("single cascade", func(t *testing.T) {
		fractions, err := SplitFractions(0.1, 100, 1, 0.95)
		if err != nil {
			t.Fatal(err)
		}
		if len(fractions) != 1 || fractions[0] != 1.0 {
			t.Errorf("fractions = %v, want [1]", fractions)
		}
	})
}
