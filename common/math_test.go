package common

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i == 0 || i == 5 || i == 10 || i == 15 {
			want = 1
		}
		if v != want {
			t.Errorf("m[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4(t *testing.T) {
	t.Run("identity is neutral", func(t *testing.T) {
		id := make([]float32, 16)
		Identity(id)
		m := []float32{
			1, 2, 3, 4,
			5, 6, 7, 8,
			9, 10, 11, 12,
			13, 14, 15, 16,
		}
		out := make([]float32, 16)
		Mul4(out, id, m)
		for i := range m {
			if out[i] != m[i] {
				t.Fatalf("out[%d] = %v, want %v", i, out[i], m[i])
			}
		}
	})

	t.Run("aliased output", func(t *testing.T) {
		// Mul4 must tolerate out == a.
		a := make([]float32, 16)
		b := make([]float32, 16)
		Identity(a)
		Identity(b)
		a[12] = 3 // translate X by 3
		b[13] = 5 // translate Y by 5
		Mul4(a, a, b)
		if !approxEqual(a[12], 3) || !approxEqual(a[13], 5) {
			t.Errorf("translation = (%v, %v), want (3, 5)", a[12], a[13])
		}
	})

	t.Run("composition order", func(t *testing.T) {
		// Scale by 2 then translate by (1,0,0): T*S applied to origin keeps
		// the translation untouched by the scale.
		s := make([]float32, 16)
		tr := make([]float32, 16)
		Identity(s)
		s[0], s[5], s[10] = 2, 2, 2
		Identity(tr)
		tr[12] = 1
		out := make([]float32, 16)
		Mul4(out, tr, s)
		p := TransformPoint(out, 1, 0, 0)
		if !approxEqual(p[0], 3) {
			t.Errorf("p.x = %v, want 3", p[0])
		}
	})
}

func TestPerspective(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, float32(math.Pi/2), 1.0, 0.1, 100.0)

	t.Run("near plane maps to zero depth", func(t *testing.T) {
		p := TransformPoint(m, 0, 0, -0.1)
		if !approxEqual(p[2], 0) {
			t.Errorf("depth at near = %v, want 0", p[2])
		}
	})

	t.Run("far plane maps to unit depth", func(t *testing.T) {
		p := TransformPoint(m, 0, 0, -100.0)
		if !approxEqual(p[2], 1) {
			t.Errorf("depth at far = %v, want 1", p[2])
		}
	})
}

func TestOrtho(t *testing.T) {
	m := make([]float32, 16)
	Ortho(m, -10, 10, -10, 10, 0, 20)

	tests := []struct {
		name    string
		x, y, z float32
		want    [3]float32
	}{
		{"center near", 0, 0, 0, [3]float32{0, 0, 0}},
		{"center far", 0, 0, -20, [3]float32{0, 0, 1}},
		{"right edge", 10, 0, -10, [3]float32{1, 0, 0.5}},
		{"bottom edge", 0, -10, -10, [3]float32{0, -1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformPoint(m, tt.x, tt.y, tt.z)
			for i := 0; i < 3; i++ {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("component %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLookAt(t *testing.T) {
	t.Run("eye maps to origin", func(t *testing.T) {
		m := make([]float32, 16)
		LookAt(m, 3, 4, 5, 0, 0, 0, 0, 1, 0)
		p := TransformPoint(m, 3, 4, 5)
		for i, v := range p {
			if !approxEqual(v, 0) {
				t.Errorf("component %d = %v, want 0", i, v)
			}
		}
	})

	t.Run("target lies on negative view axis", func(t *testing.T) {
		m := make([]float32, 16)
		LookAt(m, 0, 0, 10, 0, 0, 0, 0, 1, 0)
		p := TransformPoint(m, 0, 0, 0)
		if !approxEqual(p[0], 0) || !approxEqual(p[1], 0) || !approxEqual(p[2], -10) {
			t.Errorf("target in view space = %v, want (0, 0, -10)", p)
		}
	})
}

func TestInvert4(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m := make([]float32, 16)
		inv := make([]float32, 16)
		out := make([]float32, 16)
		LookAt(m, 2, 3, 4, 0, 1, 0, 0, 1, 0)
		if !Invert4(inv, m) {
			t.Fatal("view matrix reported singular")
		}
		Mul4(out, m, inv)
		for i, v := range out {
			want := float32(0)
			if i == 0 || i == 5 || i == 10 || i == 15 {
				want = 1
			}
			if !approxEqual(v, want) {
				t.Errorf("out[%d] = %v, want %v", i, v, want)
			}
		}
	})

	t.Run("singular matrix", func(t *testing.T) {
		m := make([]float32, 16) // all zero
		out := make([]float32, 16)
		if Invert4(out, m) {
			t.Error("expected false for singular matrix")
		}
	})
}

func TestNormalize3(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		want    [3]float32
	}{
		{"unit x", 1, 0, 0, [3]float32{1, 0, 0}},
		{"scaled y", 0, 5, 0, [3]float32{0, 1, 0}},
		{"diagonal", 3, 0, 4, [3]float32{0.6, 0, 0.8}},
		{"zero", 0, 0, 0, [3]float32{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize3(tt.x, tt.y, tt.z)
			for i := 0; i < 3; i++ {
				if !approxEqual(got[i], tt.want[i]) {
					t.Errorf("component %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("expected nil for empty slice")
	}
}
