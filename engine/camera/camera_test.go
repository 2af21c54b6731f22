package camera

import (
	"math"
	"testing"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithClipPlanes(1, 50),
	)
	if c.Near() != 1 || c.Far() != 50 {
		t.Errorf("clip planes = (%v, %v), want (1, 50)", c.Near(), c.Far())
	}
	if !c.ConsumeMoved() {
		t.Error("fresh camera must report moved once")
	}
	if c.ConsumeMoved() {
		t.Error("moved flag must clear after consumption")
	}
}

func TestCameraMoved(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Camera)
		moved  bool
	}{
		{"new position", func(c Camera) { c.SetPosition(1, 2, 3) }, true},
		{"same position", func(c Camera) { c.SetPosition(0, 0, 10) }, false},
		{"new target", func(c Camera) { c.SetTarget(5, 0, 0) }, true},
		{"same target", func(c Camera) { c.SetTarget(0, 0, 0) }, false},
		{"new clip planes", func(c Camera) { c.SetClipPlanes(0.5, 200) }, true},
		{"same clip planes", func(c Camera) { c.SetClipPlanes(1, 50) }, false},
		{"new aspect", func(c Camera) { c.SetAspect(2.0) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(
				WithPosition(0, 0, 10),
				WithTarget(0, 0, 0),
				WithAspect(1.0),
				WithClipPlanes(1, 50),
			)
			c.ConsumeMoved() // clear the initial flag
			tt.mutate(c)
			if got := c.ConsumeMoved(); got != tt.moved {
				t.Errorf("moved = %v, want %v", got, tt.moved)
			}
		})
	}
}

func TestCameraMatrices(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithFOV(float32(math.Pi/2)),
		WithAspect(1.0),
		WithClipPlanes(1, 100),
	)

	t.Run("view maps eye to origin", func(t *testing.T) {
		v := c.ViewMatrix()
		// Eye position transformed by the view matrix: translation column.
		if v[12] != 0 || v[13] != 0 || math.Abs(float64(v[14]+10)) > 1e-5 {
			t.Errorf("view translation = (%v, %v, %v), want (0, 0, -10)", v[12], v[13], v[14])
		}
	})

	t.Run("inverse view projection round trips", func(t *testing.T) {
		vp := c.ViewProjectionMatrix()
		inv := c.InverseViewProjectionMatrix()
		var out [16]float32
		mul4(&out, &vp, &inv)
		for i, v := range out {
			want := float32(0)
			if i == 0 || i == 5 || i == 10 || i == 15 {
				want = 1
			}
			if math.Abs(float64(v-want)) > 1e-4 {
				t.Errorf("out[%d] = %v, want %v", i, v, want)
			}
		}
	})

	t.Run("matrices update on move", func(t *testing.T) {
		before := c.ViewProjectionMatrix()
		c.SetPosition(3, 0, 10)
		after := c.ViewProjectionMatrix()
		if before == after {
			t.Error("view projection unchanged after moving the camera")
		}
	})
}

func mul4(out, a, b *[16]float32) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
}
