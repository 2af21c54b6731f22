package shadow

import (
	"fmt"
	"math"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/camera"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/light"
)

// CascadeSplit is one fitted cascade: the light-space view-projection matrix
// used to render and sample its atlas layer, and the view-space depth of its
// far boundary. FarDistance is negative (the camera looks down -Z) and grows
// more negative with each cascade.
type CascadeSplit struct {
	ViewProjection [16]float32
	FarDistance    float32
}

// CascadeSet is an immutable snapshot of all fitted cascades for one frame.
type CascadeSet struct {
	splits []CascadeSplit
}

// Count returns the number of cascades in the set.
func (s *CascadeSet) Count() int {
	return len(s.splits)
}

// Split returns a copy of cascade i. Index 0 is the cascade nearest the
// camera.
func (s *CascadeSet) Split(i int) CascadeSplit {
	return s.splits[i]
}

// FarDistances returns the view-space far depths of all cascades, nearest
// first. The returned slice is a copy.
func (s *CascadeSet) FarDistances() []float32 {
	out := make([]float32, len(s.splits))
	for i, sp := range s.splits {
		out[i] = sp.FarDistance
	}
	return out
}

// Fitter computes cascade sets from a camera and a directional light. It
// caches the last result and only refits when the camera moved, the light
// changed, or no set exists yet.
type Fitter interface {
	// Update returns the cascade set for the current frame. The second
	// return reports whether the set was recomputed this call. On error the
	// previously cached set (if any) is kept.
	Update(cam camera.Camera, lgt light.DirectionalLight) (*CascadeSet, bool, error)

	// Current returns the last computed set, or nil before the first
	// successful Update.
	Current() *CascadeSet
}

type fitterImpl struct {
	count       int
	lambda      float32
	granularity float32

	cached *CascadeSet
	// retry stays set after a failed fit so the next Update attempts the
	// fit again instead of serving the stale cached set, even though the
	// camera and light trigger flags were already consumed.
	retry bool
}

var _ Fitter = &fitterImpl{}

func (f *fitterImpl) Update(cam camera.Camera, lgt light.DirectionalLight) (*CascadeSet, bool, error) {
	moved := cam.ConsumeMoved()
	changed := lgt.ConsumeChanged()
	if f.cached != nil && !moved && !changed && !f.retry {
		return f.cached, false, nil
	}

	set, err := f.fit(cam, lgt)
	if err != nil {
		f.retry = true
		return f.cached, false, err
	}
	f.retry = false
	f.cached = set
	common.Logger().Debug("cascades refit",
		"cameraMoved", moved,
		"lightChanged", changed,
		"count", f.count)
	return set, true, nil
}

func (f *fitterImpl) Current() *CascadeSet {
	return f.cached
}

// fit slices the camera frustum, wraps each slice in a stabilized bounding
// sphere, and builds an orthographic light view-projection per cascade.
func (f *fitterImpl) fit(cam camera.Camera, lgt light.DirectionalLight) (*CascadeSet, error) {
	dir := lgt.Direction()
	if dir == [3]float32{} {
		return nil, ErrZeroLightDirection
	}
	if f.granularity <= 0 {
		return nil, ErrInvalidRadiusGranularity
	}

	near := cam.Near()
	far := cam.Far()
	fractions, err := SplitFractions(near, far, f.count, f.lambda)
	if err != nil {
		return nil, fmt.Errorf("computing split fractions: %w", err)
	}

	invVP := cam.InverseViewProjectionMatrix()
	var full [8][3]float32
	common.FrustumCorners(&full, invVP[:])

	splits := make([]CascadeSplit, f.count)
	prev := float32(0)
	view := make([]float32, 16)
	proj := make([]float32, 16)
	for i, frac := range fractions {
		var sub [8][3]float32
		common.SliceFrustumCorners(&sub, &full, prev, frac)
		center := common.CornerCentroid(&sub)

		radius := float32(0)
		for _, p := range sub {
			dx := p[0] - center[0]
			dy := p[1] - center[1]
			dz := p[2] - center[2]
			d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
			if d > radius {
				radius = d
			}
		}
		// Round the radius up to a fixed step so the ortho extents do not
		// jitter with sub-texel camera motion.
		radius = float32(math.Ceil(float64(radius/f.granularity))) * f.granularity

		eye := [3]float32{
			center[0] - dir[0]*radius,
			center[1] - dir[1]*radius,
			center[2] - dir[2]*radius,
		}
		upX, upY, upZ := float32(0), float32(1), float32(0)
		if absF32(dir[1]) > 0.99 {
			// Near-vertical light: the world up vector degenerates.
			upX, upY, upZ = 1, 0, 0
		}
		common.LookAt(view,
			eye[0], eye[1], eye[2],
			center[0], center[1], center[2],
			upX, upY, upZ)
		common.Ortho(proj, -radius, radius, -radius, radius, 0, 2*radius)
		common.Mul4(splits[i].ViewProjection[:], proj, view)

		splits[i].FarDistance = -(near + frac*(far-near))
		prev = frac
	}

	return &CascadeSet{splits: splits}, nil
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
