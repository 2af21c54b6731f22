package renderer

import (
	"errors"
	"fmt"

	"github.com/lwjglgamedev/vulkanbook-sub001/engine/camera"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/light"
	bgp "github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/bind_group_provider"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/shadow"
)

// CascadeRenderer owns the GPU side of cascaded shadow mapping: the shadow
// atlas, the comparison sampler, the dynamic-offset uniform holding one
// light matrix per cascade, and the cascade data uniform sampled by the
// lighting pass. Prepare refits the cascades when the camera or light moved
// and uploads the refreshed uniforms; when nothing changed, no GPU writes
// are issued.
type CascadeRenderer struct {
	renderer Renderer
	fitter   shadow.Fitter

	atlas *ShadowAtlas

	// matrixProvider backs bind group 0 of the shadow pass. Its buffer holds
	// one cascade matrix per CascadeUniformStride, selected by dynamic offset.
	matrixProvider bgp.BindGroupProvider

	// resolveProvider backs bind group 1 of the lighting pass: cascade data
	// uniform, atlas array view, and comparison sampler.
	resolveProvider bgp.BindGroupProvider

	resolution  uint32
	count       int
	bias        float32
	shadowFloor float32
	filterMode  shadow.FilterMode
	debugTint   bool

	uploaded bool
}

// CascadeRendererOption is a functional option applied during NewCascadeRenderer.
type CascadeRendererOption func(*CascadeRenderer)

// WithAtlasResolution overrides the default atlas layer resolution. A zero
// resolution makes NewCascadeRenderer return an error.
//
// Parameters:
//   - resolution: layer width and height in texels
//
// Returns:
//   - CascadeRendererOption: a function that applies the resolution option
func WithAtlasResolution(resolution uint32) CascadeRendererOption {
	return func(c *CascadeRenderer) {
		c.resolution = resolution
	}
}

// WithShadowBias overrides the default light-space depth bias.
//
// Parameters:
//   - bias: depth subtracted before comparison
//
// Returns:
//   - CascadeRendererOption: a function that applies the bias option
func WithShadowBias(bias float32) CascadeRendererOption {
	return func(c *CascadeRenderer) {
		c.bias = bias
	}
}

// WithShadowFloor overrides the default minimum shadow factor.
//
// Parameters:
//   - floor: the factor applied to fully occluded fragments
//
// Returns:
//   - CascadeRendererOption: a function that applies the floor option
func WithShadowFloor(floor float32) CascadeRendererOption {
	return func(c *CascadeRenderer) {
		c.shadowFloor = floor
	}
}

// WithFilterMode selects point or 3x3 PCF atlas sampling.
//
// Parameters:
//   - mode: the filter mode
//
// Returns:
//   - CascadeRendererOption: a function that applies the filter option
func WithFilterMode(mode shadow.FilterMode) CascadeRendererOption {
	return func(c *CascadeRenderer) {
		c.filterMode = mode
	}
}

// WithDebugTint tints each fragment by its selected cascade so split
// boundaries are visible while tuning.
//
// Parameters:
//   - enabled: true to tint
//
// Returns:
//   - CascadeRendererOption: a function that applies the debug tint option
func WithDebugTint(enabled bool) CascadeRendererOption {
	return func(c *CascadeRenderer) {
		c.debugTint = enabled
	}
}

// NewCascadeRenderer creates the shadow atlas, comparison sampler, and
// uniform bind groups for cascaded shadow mapping.
//
// Parameters:
//   - r: the renderer used to create GPU resources
//   - opts: optional configuration functions
//
// Returns:
//   - *CascadeRenderer: the initialized cascade renderer
//   - error: an error if any GPU resource could not be created
func NewCascadeRenderer(r Renderer, opts ...CascadeRendererOption) (*CascadeRenderer, error) {
	c := &CascadeRenderer{
		renderer:    r,
		fitter:      shadow.NewFitter(),
		resolution:  shadow.ShadowMapResolution,
		count:       shadow.CascadeCount,
		bias:        shadow.DefaultDepthBias,
		shadowFloor: shadow.DefaultShadowFloor,
		filterMode:  shadow.FilterPCF3x3,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolution == 0 {
		return nil, errors.New("atlas resolution must be positive")
	}

	atlas, err := r.CreateShadowAtlas(c.resolution, uint32(c.count))
	if err != nil {
		return nil, fmt.Errorf("creating shadow atlas: %w", err)
	}
	c.atlas = atlas

	sampler, err := r.CreateComparisonSampler()
	if err != nil {
		atlas.Release()
		return nil, fmt.Errorf("creating comparison sampler: %w", err)
	}

	c.matrixProvider = bgp.NewBindGroupProvider("cascade_matrices")
	if err := r.InitBindGroup(c.matrixProvider, *CascadeMatrixLayout(), nil, map[int]uint64{
		0: uint64(c.count) * shadow.CascadeUniformStride,
	}); err != nil {
		atlas.Release()
		return nil, fmt.Errorf("initializing cascade matrix bind group: %w", err)
	}

	c.resolveProvider = bgp.NewBindGroupProvider("cascade_resolve")
	c.resolveProvider.SetTextureView(1, atlas.ArrayView())
	c.resolveProvider.SetSampler(2, sampler)
	if err := r.InitBindGroup(c.resolveProvider, *CascadeResolveLayout(), nil, nil); err != nil {
		c.matrixProvider.Release()
		atlas.Release()
		return nil, fmt.Errorf("initializing cascade resolve bind group: %w", err)
	}

	return c, nil
}

// Prepare refits the cascades for the current camera and light and uploads
// the cascade uniforms when a refit happened. Call once per frame before
// encoding passes.
//
// Parameters:
//   - cam: the scene camera
//   - lgt: the shadow-casting directional light
//
// Returns:
//   - bool: true if the cascades were refit and re-uploaded
//   - error: an error if fitting fails; previous uniforms stay valid
func (c *CascadeRenderer) Prepare(cam camera.Camera, lgt light.DirectionalLight) (bool, error) {
	set, refit, err := c.fitter.Update(cam, lgt)
	if err != nil {
		return false, err
	}
	if !refit && c.uploaded {
		return false, nil
	}

	var data shadow.GPUCascadeData
	data.FromCascadeSet(set, c.bias, c.shadowFloor, c.filterMode)
	texel := c.atlas.TexelSize()
	data.TexelSize = [2]float32{texel, texel}
	if c.debugTint {
		data.DebugTint = 1
	}

	c.renderer.WriteBuffers([]bgp.BufferWrite{
		bgp.NewBufferWrite(c.matrixProvider, 0, shadow.MarshalCascadeMatrices(set)),
		bgp.NewBufferWrite(c.resolveProvider, 0, data.Marshal()),
	})
	c.uploaded = true

	return true, nil
}

// Atlas returns the shadow atlas.
func (c *CascadeRenderer) Atlas() *ShadowAtlas {
	return c.atlas
}

// CascadeCount returns the number of cascades.
func (c *CascadeRenderer) CascadeCount() int {
	return c.count
}

// MatrixProvider returns the provider backing bind group 0 of the shadow
// pass. Pair it with DynamicOffset when encoding a cascade's draws.
func (c *CascadeRenderer) MatrixProvider() bgp.BindGroupProvider {
	return c.matrixProvider
}

// ResolveProvider returns the provider backing bind group 1 of the lighting
// pass.
func (c *CascadeRenderer) ResolveProvider() bgp.BindGroupProvider {
	return c.resolveProvider
}

// DynamicOffset returns the dynamic uniform offset selecting the given
// cascade's matrix.
//
// Parameters:
//   - cascade: the cascade index
//
// Returns:
//   - uint32: the byte offset into the matrix buffer
func (c *CascadeRenderer) DynamicOffset(cascade int) uint32 {
	return uint32(cascade) * shadow.CascadeUniformStride
}

// Release frees all GPU resources held by the cascade renderer.
func (c *CascadeRenderer) Release() {
	if c.matrixProvider != nil {
		c.matrixProvider.Release()
		c.matrixProvider = nil
	}
	if c.resolveProvider != nil {
		// The resolve provider owns the atlas array view and the comparison
		// sampler, so clear the atlas's reference before releasing it.
		c.resolveProvider.Release()
		c.resolveProvider = nil
		if c.atlas != nil {
			c.atlas.arrayView = nil
		}
	}
	if c.atlas != nil {
		c.atlas.Release()
		c.atlas = nil
	}
}
