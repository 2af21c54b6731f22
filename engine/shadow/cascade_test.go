package shadow

import (
	"errors"
	"math"
	"testing"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/camera"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/light"
)

func fixtureCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(0, 2, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithFOV(float32(math.Pi/3)),
		camera.WithAspect(16.0/9.0),
		camera.WithClipPlanes(0.1, 100),
	)
}

func fixtureLight() light.DirectionalLight {
	return light.NewDirectionalLight(light.WithDirection(-0.5, -1, -0.3))
}

func TestFitterUpdateTriggers(t *testing.T) {
	t.Run("first frame fits", func(t *testing.T) {
		f := NewFitter()
		set, refit, err := f.Update(fixtureCamera(), fixtureLight())
		if err != nil {
			t.Fatal(err)
		}
		if !refit {
			t.Error("first update must refit")
		}
		if set == nil || set.Count() != CascadeCount {
			t.Fatalf("set count = %v, want %d", set, CascadeCount)
		}
	})

	t.Run("static frame reuses", func(t *testing.T) {
		f := NewFitter()
		cam := fixtureCamera()
		lgt := fixtureLight()
		first, _, err := f.Update(cam, lgt)
		if err != nil {
			t.Fatal(err)
		}
		second, refit, err := f.Update(cam, lgt)
		if err != nil {
			t.Fatal(err)
		}
		if refit {
			t.Error("unchanged inputs must not refit")
		}
		if first != second {
			t.Error("reused set must be the identical snapshot")
		}
	})

	t.Run("camera move refits", func(t *testing.T) {
		f := NewFitter()
		cam := fixtureCamera()
		lgt := fixtureLight()
		if _, _, err := f.Update(cam, lgt); err != nil {
			t.Fatal(err)
		}
		cam.SetPosition(1, 2, 10)
		_, refit, err := f.Update(cam, lgt)
		if err != nil {
			t.Fatal(err)
		}
		if !refit {
			t.Error("camera move must refit")
		}
	})

	t.Run("light change refits", func(t *testing.T) {
		f := NewFitter()
		cam := fixtureCamera()
		lgt := fixtureLight()
		if _, _, err := f.Update(cam, lgt); err != nil {
			t.Fatal(err)
		}
		lgt.SetDirection(-1, -1, 0)
		_, refit, err := f.Update(cam, lgt)
		if err != nil {
			t.Fatal(err)
		}
		if !refit {
			t.Error("light change must refit")
		}
	})

	t.Run("zero light direction errors", func(t *testing.T) {
		f := NewFitter()
		lgt := light.NewDirectionalLight(light.WithDirection(0, 0, 0))
		set, refit, err := f.Update(fixtureCamera(), lgt)
		if err != ErrZeroLightDirection {
			t.Errorf("err = %v, want %v", err, ErrZeroLightDirection)
		}
		if refit || set != nil {
			t.Errorf("set = %v refit = %v, want nil and false", set, refit)
		}
	})
}

func TestFitterFarDistances(t *testing.T) {
	f := NewFitter()
	cam := fixtureCamera()
	set, _, err := f.Update(cam, fixtureLight())
	if err != nil {
		t.Fatal(err)
	}

	dists := set.FarDistances()
	prev := float32(0)
	for i, d := range dists {
		if d >= 0 {
			t.Errorf("far distance %d = %v, want negative", i, d)
		}
		if d >= prev {
			t.Errorf("far distance %d = %v, not more negative than %v", i, d, prev)
		}
		prev = d
	}
	if last := dists[len(dists)-1]; math.Abs(float64(last+cam.Far())) > 1e-4 {
		t.Errorf("last far distance = %v, want %v", last, -cam.Far())
	}
}

// TestFitterCoverage projects each cascade's frustum slice corners through
// that cascade's light matrix and checks they land inside the clip volume.
func TestFitterCoverage(t *testing.T) {
	cam := fixtureCamera()
	lgt := fixtureLight()
	f := NewFitter()
	set, _, err := f.Update(cam, lgt)
	if err != nil {
		t.Fatal(err)
	}

	fractions, err := SplitFractions(cam.Near(), cam.Far(), CascadeCount, DefaultSplitLambda)
	if err != nil {
		t.Fatal(err)
	}
	invVP := cam.InverseViewProjectionMatrix()
	var full [8][3]float32
	common.FrustumCorners(&full, invVP[:])

	const eps = 1e-3
	prev := float32(0)
	for i := 0; i < set.Count(); i++ {
		var sub [8][3]float32
		common.SliceFrustumCorners(&sub, &full, prev, fractions[i])
		sp := set.Split(i)
		for c, corner := range sub {
			p := common.TransformPoint(sp.ViewProjection[:], corner[0], corner[1], corner[2])
			if p[0] < -1-eps || p[0] > 1+eps || p[1] < -1-eps || p[1] > 1+eps {
				t.Errorf("cascade %d corner %d projects to (%v, %v), outside [-1, 1]", i, c, p[0], p[1])
			}
			if p[2] < -eps || p[2] > 1+eps {
				t.Errorf("cascade %d corner %d depth = %v, outside [0, 1]", i, c, p[2])
			}
		}
		prev = fractions[i]
	}
}

func TestFitterVerticalLight(t *testing.T) {
	// A straight-down light exercises the up vector fallback.
	f := NewFitter()
	lgt := light.NewDirectionalLight(light.WithDirection(0, -1, 0))
	set, _, err := f.Update(fixtureCamera(), lgt)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < set.Count(); i++ {
		vp := set.Split(i).ViewProjection
		for j, v := range vp {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("cascade %d element %d = %v", i, j, v)
			}
		}
	}
}

func TestFitterOptions(t *testing.T) {
	f := NewFitter(WithCascadeCount(5), WithSplitLambda(0.5))
	set, _, err := f.Update(fixtureCamera(), fixtureLight())
	if err != nil {
		t.Fatal(err)
	}
	if set.Count() != 5 {
		t.Errorf("count = %d, want 5", set.Count())
	}

	// Contract-violating option values surface as errors on Update, never
	// as silently substituted defaults.
	invalid := []struct {
		name string
		opt  FitterOption
		want error
	}{
		{"zero cascade count", WithCascadeCount(0), ErrInvalidCascadeCount},
		{"negative cascade count", WithCascadeCount(-2), ErrInvalidCascadeCount},
		{"lambda above one", WithSplitLambda(2.5), ErrInvalidLambda},
		{"negative lambda", WithSplitLambda(-0.1), ErrInvalidLambda},
		{"negative granularity", WithRadiusGranularity(-1), ErrInvalidRadiusGranularity},
		{"zero granularity", WithRadiusGranularity(0), ErrInvalidRadiusGranularity},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			g := NewFitter(tc.opt)
			set, refit, err := g.Update(fixtureCamera(), fixtureLight())
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if refit || set != nil {
				t.Errorf("set = %v refit = %v, want nil and false", set, refit)
			}
		})
	}
}

func TestFitterErrorPersistsAcrossUpdates(t *testing.T) {
	// Update consumes the camera and light trigger flags before fitting. A
	// failed fit over a previously cached set must keep the trigger armed
	// so the error returns again on the next call, instead of the stale set
	// with a nil error.
	f := NewFitter()
	cam := fixtureCamera()
	lgt := fixtureLight()
	cached, _, err := f.Update(cam, lgt)
	if err != nil {
		t.Fatal(err)
	}

	lgt.SetDirection(0, 0, 0)
	if _, _, err := f.Update(cam, lgt); !errors.Is(err, ErrZeroLightDirection) {
		t.Fatalf("first err = %v, want %v", err, ErrZeroLightDirection)
	}

	// The change flag was consumed above; the failure alone must re-arm.
	set, refit, err := f.Update(cam, lgt)
	if !errors.Is(err, ErrZeroLightDirection) {
		t.Errorf("second err = %v, want %v", err, ErrZeroLightDirection)
	}
	if refit {
		t.Error("failed fit must not report a refit")
	}
	if set != cached {
		t.Errorf("set = %v, want the previously cached set kept", set)
	}

	lgt.SetDirection(-0.5, -1, -0.3)
	if _, refit, err := f.Update(cam, lgt); err != nil || !refit {
		t.Errorf("recovery: refit = %v err = %v, want true and nil", refit, err)
	}
}
