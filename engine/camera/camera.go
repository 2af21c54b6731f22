package camera

import (
	"sync"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
)

// Camera is a perspective camera with cached view and projection matrices.
// It tracks whether its pose changed since the last time the moved flag was
// consumed, which the shadow system uses to decide when cascades must be
// refit.
type Camera interface {
	// Position returns the camera position in world space.
	Position() [3]float32

	// SetPosition moves the camera. Moving marks the camera as moved.
	SetPosition(x, y, z float32)

	// Target returns the point the camera looks at.
	Target() [3]float32

	// SetTarget re-aims the camera. Re-aiming marks the camera as moved.
	SetTarget(x, y, z float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetClipPlanes updates the near and far clipping plane distances.
	// Updating marks the camera as moved.
	SetClipPlanes(near, far float32)

	// SetAspect updates the projection aspect ratio, typically after a
	// window resize. Updating marks the camera as moved.
	SetAspect(aspect float32)

	// ViewMatrix returns the current world-to-view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current view-to-clip matrix
	// (column-major, WebGPU Z in [0, 1]).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() [16]float32

	// InverseViewProjectionMatrix returns the inverse of projection * view,
	// used to unproject frustum corners.
	InverseViewProjectionMatrix() [16]float32

	// ConsumeMoved reports whether the camera pose or projection changed
	// since the last call and clears the flag.
	ConsumeMoved() bool
}

type cameraImpl struct {
	mu sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32
	fovY     float32
	aspect   float32
	near     float32
	far      float32

	view        [16]float32
	projection  [16]float32
	viewProj    [16]float32
	invViewProj [16]float32

	moved bool
}

var _ Camera = &cameraImpl{}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := [3]float32{x, y, z}
	if p == c.position {
		return
	}
	c.position = p
	c.moved = true
	c.updateMatrices()
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := [3]float32{x, y, z}
	if p == c.target {
		return
	}
	c.target = p
	c.moved = true
	c.updateMatrices()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetClipPlanes(near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if near == c.near && far == c.far {
		return
	}
	c.near = near
	c.far = far
	c.moved = true
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.moved = true
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProj
}

func (c *cameraImpl) InverseViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invViewProj
}

func (c *cameraImpl) ConsumeMoved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.moved
	c.moved = false
	return m
}

// updateMatrices recomputes the cached matrices. Callers must hold mu.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.view[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2])
	common.Perspective(c.projection[:], c.fovY, c.aspect, c.near, c.far)
	common.Mul4(c.viewProj[:], c.projection[:], c.view[:])
	if !common.Invert4(c.invViewProj[:], c.viewProj[:]) {
		common.Identity(c.invViewProj[:])
	}
}
