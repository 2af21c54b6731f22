package camera

import "math"

// CameraOption configures a Camera during construction.
type CameraOption func(*cameraImpl)

// NewCamera creates a perspective camera. Defaults: position (0, 0, 5)
// looking at the origin, 60 degree vertical FOV, aspect 16:9, clip planes
// 0.1 to 100. A freshly built camera reports moved once so the first frame
// always fits cascades.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Camera: the configured camera
func NewCamera(opts ...CameraOption) Camera {
	c := &cameraImpl{
		position: [3]float32{0, 0, 5},
		target:   [3]float32{0, 0, 0},
		up:       [3]float32{0, 1, 0},
		fovY:     float32(60.0 * math.Pi / 180.0),
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      100.0,
		moved:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateMatrices()
	return c
}

// WithPosition sets the initial camera position.
func WithPosition(x, y, z float32) CameraOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the initial look-at target.
func WithTarget(x, y, z float32) CameraOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp sets the up vector (default 0, 1, 0).
func WithUp(x, y, z float32) CameraOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFOV sets the vertical field of view in radians.
func WithFOV(fovY float32) CameraOption {
	return func(c *cameraImpl) {
		c.fovY = fovY
	}
}

// WithAspect sets the projection aspect ratio.
func WithAspect(aspect float32) CameraOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
func WithClipPlanes(near, far float32) CameraOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
