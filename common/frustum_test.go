package common

import (
	"math"
	"testing"
)

// buildInvViewProj assembles the inverse view-projection for a camera at the
// origin looking down -Z with a 90 degree vertical FOV.
func buildInvViewProj(t *testing.T, near, far float32) []float32 {
	t.Helper()
	view := make([]float32, 16)
	proj := make([]float32, 16)
	vp := make([]float32, 16)
	inv := make([]float32, 16)
	LookAt(view, 0, 0, 0, 0, 0, -1, 0, 1, 0)
	Perspective(proj, float32(math.Pi/2), 1.0, near, far)
	Mul4(vp, proj, view)
	if !Invert4(inv, vp) {
		t.Fatal("view-projection reported singular")
	}
	return inv
}

func TestFrustumCorners(t *testing.T) {
	inv := buildInvViewProj(t, 1.0, 100.0)
	var corners [8][3]float32
	FrustumCorners(&corners, inv)

	t.Run("near plane depth", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			if !approxEqual(corners[i][2], -1.0) {
				t.Errorf("corner %d z = %v, want -1", i, corners[i][2])
			}
		}
	})

	t.Run("far plane depth", func(t *testing.T) {
		for i := 4; i < 8; i++ {
			// float32 precision near the far plane is coarse
			if math.Abs(float64(corners[i][2]+100.0)) > 0.01 {
				t.Errorf("corner %d z = %v, want -100", i, corners[i][2])
			}
		}
	})

	t.Run("near extent matches fov", func(t *testing.T) {
		// 90 degree FOV at distance 1: half-height is 1.
		for i := 0; i < 4; i++ {
			if !approxEqual(absF32(corners[i][0]), 1.0) || !approxEqual(absF32(corners[i][1]), 1.0) {
				t.Errorf("corner %d = %v, want |x| = |y| = 1", i, corners[i])
			}
		}
	})
}

func TestSliceFrustumCorners(t *testing.T) {
	inv := buildInvViewProj(t, 1.0, 100.0)
	var full, sliced [8][3]float32
	FrustumCorners(&full, inv)
	SliceFrustumCorners(&sliced, &full, 0.25, 0.75)

	for i := 0; i < 4; i++ {
		for k := 0; k < 3; k++ {
			edge := full[i+4][k] - full[i][k]
			wantNear := full[i][k] + 0.25*edge
			wantFar := full[i][k] + 0.75*edge
			if !approxEqual(sliced[i][k], wantNear) {
				t.Errorf("near corner %d component %d = %v, want %v", i, k, sliced[i][k], wantNear)
			}
			if !approxEqual(sliced[i+4][k], wantFar) {
				t.Errorf("far corner %d component %d = %v, want %v", i, k, sliced[i+4][k], wantFar)
			}
		}
	}
}

func TestCornerCentroid(t *testing.T) {
	corners := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	c := CornerCentroid(&corners)
	for i, v := range c {
		if !approxEqual(v, 0) {
			t.Errorf("component %d = %v, want 0", i, v)
		}
	}
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
