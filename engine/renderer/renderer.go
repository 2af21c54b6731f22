package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
	bgp "github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/bind_group_provider"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/pipeline"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines, allowing for easy retrieval and management of these resources.
// The Renderer also implements a backend which allows for multiple backend API implementations to exist.
//
// A frame is encoded as three pass groups against a single command encoder:
// a geometry pass into the offscreen scene targets, one depth-only shadow
// pass per cascade layer, and a fullscreen lighting pass that composites the
// lit image onto the surface. Encoding a whole frame into one submission
// orders the shadow atlas writes before the lighting pass reads them.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// SetPipeline adds or updates a Pipeline in the cache with the given key.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to add or update in the cache
	//   - p: the Pipeline to add or update in the cache
	SetPipeline(key string, p pipeline.Pipeline)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	// The offscreen scene targets are recreated, so bind groups holding the scene color or
	// depth views must be rebuilt afterward. The shadow atlas is unaffected.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SceneColorView returns the offscreen color target sampled by the lighting pass.
	//
	// Returns:
	//   - *wgpu.TextureView: the scene color texture view
	SceneColorView() *wgpu.TextureView

	// SceneDepthView returns the offscreen depth target sampled by the lighting pass.
	//
	// Returns:
	//   - *wgpu.TextureView: the scene depth texture view
	SceneDepthView() *wgpu.TextureView

	// SurfaceSize returns the current surface dimensions in pixels.
	//
	// Returns:
	//   - uint32: the surface width
	//   - uint32: the surface height
	SurfaceSize() (uint32, uint32)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bgp.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Textures and samplers must be initialized via InitTextureView
	// and InitSampler (or stored directly with SetTextureView and SetSampler) before calling this
	// method. Buffer usage and size can be overridden per binding.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags to OR into the derived usage, keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bgp.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView creates a GPU texture from staging data and stores the resulting texture view
	// on the given BindGroupProvider at the specified binding index. Must be called before InitBindGroup
	// for any texture bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions for the texture
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bgp.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staging data and stores it on the given
	// BindGroupProvider at the specified binding index. Must be called before InitBindGroup
	// for any sampler bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bgp.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bgp.BufferWrite)

	// CreateShadowAtlas creates the layered depth texture used for cascaded shadow mapping.
	//
	// Parameters:
	//   - resolution: the width and height of each layer in texels
	//   - layers: the number of cascade layers
	//
	// Returns:
	//   - *ShadowAtlas: the created atlas
	//   - error: an error if creation fails
	CreateShadowAtlas(resolution, layers uint32) (*ShadowAtlas, error)

	// CreateComparisonSampler creates a comparison sampler for sampling the shadow atlas
	// with hardware depth comparison.
	//
	// Returns:
	//   - *wgpu.Sampler: the comparison sampler
	//   - error: an error if creation fails
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// BeginFrame acquires the next swapchain texture and creates the frame's command encoder.
	// Only one frame may be in flight at a time.
	//
	// Returns:
	//   - error: an error if a frame is already in flight or acquisition fails
	BeginFrame() error

	// BeginGeometryPass starts the render pass targeting the offscreen scene targets.
	//
	// Returns:
	//   - error: an error if no frame is in flight
	BeginGeometryPass() error

	// BeginShadowPass starts a depth-only render pass targeting one shadow atlas layer.
	//
	// Parameters:
	//   - layerView: the atlas layer view to render into
	//
	// Returns:
	//   - error: an error if no frame is in flight
	BeginShadowPass(layerView *wgpu.TextureView) error

	// BeginLightingPass starts the render pass targeting the swapchain view.
	//
	// Returns:
	//   - error: an error if no frame is in flight
	BeginLightingPass() error

	// EndPass ends the currently open render pass.
	EndPass()

	// Draw encodes a single instanced indexed draw command within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: the key of the cached pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: providers whose bind groups are set on the pass, in group order
	//   - group0DynamicOffsets: dynamic byte offsets applied to bind group 0, or nil
	//
	// Returns:
	//   - error: an error if the pipeline key is not registered
	Draw(pipelineKey string, meshProvider bgp.BindGroupProvider, instanceCount uint32, bindGroups []bgp.BindGroupProvider, group0DynamicOffsets []uint32) error

	// DrawFullscreen encodes a three-vertex fullscreen-triangle draw with no vertex buffers.
	//
	// Parameters:
	//   - pipelineKey: the key of the cached pipeline to use
	//   - bindGroups: providers whose bind groups are set on the pass, in group order
	//
	// Returns:
	//   - error: an error if the pipeline key is not registered
	DrawFullscreen(pipelineKey string, bindGroups []bgp.BindGroupProvider) error

	// EndFrame finishes the frame's command encoder and submits it to the GPU queue.
	//
	// Returns:
	//   - error: an error if the encoder could not be finished
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// AbandonFrame drops the in-flight frame without submitting, releasing all
	// frame resources so the next BeginFrame starts clean.
	AbandonFrame()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and window.
// The window provides the platform-specific surface descriptor for surface creation.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SceneColorView() *wgpu.TextureView {
	return r.backend.SceneColorView()
}

func (r *renderer) SceneDepthView() *wgpu.TextureView {
	return r.backend.SceneDepthView()
}

func (r *renderer) SurfaceSize() (uint32, uint32) {
	return r.backend.SurfaceSize()
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) SetPipeline(key string, p pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelineCache[key] = p
}

func (r *renderer) InitMeshBuffers(provider bgp.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bgp.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bgp.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bgp.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bgp.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateShadowAtlas(resolution, layers uint32) (*ShadowAtlas, error) {
	return r.backend.CreateShadowAtlas(resolution, layers)
}

func (r *renderer) CreateComparisonSampler() (*wgpu.Sampler, error) {
	return r.backend.CreateComparisonSampler()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginGeometryPass() error {
	return r.backend.BeginGeometryPass()
}

func (r *renderer) BeginShadowPass(layerView *wgpu.TextureView) error {
	return r.backend.BeginShadowPass(layerView)
}

func (r *renderer) BeginLightingPass() error {
	return r.backend.BeginLightingPass()
}

func (r *renderer) EndPass() {
	r.backend.EndPass()
}

func (r *renderer) Draw(pipelineKey string, meshProvider bgp.BindGroupProvider, instanceCount uint32, bindGroups []bgp.BindGroupProvider, group0DynamicOffsets []uint32) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()
	if !exists {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	r.backend.Draw(p, meshProvider, instanceCount, bindGroups, group0DynamicOffsets)
	return nil
}

func (r *renderer) DrawFullscreen(pipelineKey string, bindGroups []bgp.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()
	if !exists {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	r.backend.DrawFullscreen(p, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) AbandonFrame() {
	r.backend.AbandonFrame()
}
