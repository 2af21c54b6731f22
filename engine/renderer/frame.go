package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/model"
	bgp "github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/bind_group_provider"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/shadow"
)

// ErrFrameState is returned when a frame operation is called out of order.
var ErrFrameState = errors.New("frame operation out of order")

// frameState tracks where the synchronizer is in the per-frame pass
// sequence.
type frameState int

const (
	// frameIdle means no frame is in flight.
	frameIdle frameState = iota

	// frameRecording means the geometry pass is open and draw calls are
	// being encoded and collected for shadow replay.
	frameRecording

	// frameShadowed means every cascade's shadow pass has been encoded.
	frameShadowed

	// frameLit means the lighting pass has been encoded and the frame is
	// ready for submission.
	frameLit
)

// FrameEncoder is the subset of the Renderer the synchronizer drives. It is
// an interface so frame ordering logic can be tested without a GPU.
type FrameEncoder interface {
	BeginFrame() error
	BeginGeometryPass() error
	BeginShadowPass(layerView *wgpu.TextureView) error
	BeginLightingPass() error
	EndPass()
	Draw(pipelineKey string, meshProvider bgp.BindGroupProvider, instanceCount uint32, bindGroups []bgp.BindGroupProvider, group0DynamicOffsets []uint32) error
	DrawFullscreen(pipelineKey string, bindGroups []bgp.BindGroupProvider) error
	EndFrame() error
	Present()
	AbandonFrame()
}

var _ FrameEncoder = (Renderer)(nil)

// AtlasTarget exposes the shadow atlas layers the synchronizer renders into.
type AtlasTarget interface {
	LayerCount() int
	LayerView(layer int) *wgpu.TextureView
}

var _ AtlasTarget = &ShadowAtlas{}

// FrameSynchronizer sequences the passes of one frame: geometry recording,
// one depth-only shadow pass per cascade, the fullscreen lighting resolve,
// and submission. Draw calls are encoded into the geometry pass as they
// arrive and collected so the same recording is replayed into every shadow
// pass with the matching cascade matrix selected by dynamic offset.
//
// Operations must follow Begin, Draw..., EncodeShadowPasses,
// EncodeLightingPass, End. Calls out of order return ErrFrameState. Any
// encoder failure abandons the frame: the error is logged, GPU frame state
// is released without submitting, and the synchronizer resets to idle so the
// next Begin starts clean.
type FrameSynchronizer struct {
	mu sync.Mutex

	encoder FrameEncoder
	state   frameState

	geometryKey string
	shadowKey   string
	lightingKey string

	// sceneProvider backs bind group 0 of the geometry pass.
	sceneProvider bgp.BindGroupProvider

	// recorded holds this frame's draw calls for shadow replay.
	recorded []model.DrawCall
}

// FrameSynchronizerOption is a functional option applied during NewFrameSynchronizer.
type FrameSynchronizerOption func(*FrameSynchronizer)

// WithGeometryPipeline overrides the default geometry pipeline key.
//
// Parameters:
//   - key: the registered pipeline key
//
// Returns:
//   - FrameSynchronizerOption: a function that applies the key
func WithGeometryPipeline(key string) FrameSynchronizerOption {
	return func(f *FrameSynchronizer) {
		f.geometryKey = key
	}
}

// WithShadowPipeline overrides the default shadow pipeline key.
//
// Parameters:
//   - key: the registered pipeline key
//
// Returns:
//   - FrameSynchronizerOption: a function that applies the key
func WithShadowPipeline(key string) FrameSynchronizerOption {
	return func(f *FrameSynchronizer) {
		f.shadowKey = key
	}
}

// WithLightingPipeline overrides the default lighting pipeline key.
//
// Parameters:
//   - key: the registered pipeline key
//
// Returns:
//   - FrameSynchronizerOption: a function that applies the key
func WithLightingPipeline(key string) FrameSynchronizerOption {
	return func(f *FrameSynchronizer) {
		f.lightingKey = key
	}
}

// NewFrameSynchronizer creates a synchronizer driving the given encoder.
//
// Parameters:
//   - encoder: the renderer or a test double
//   - sceneProvider: the provider backing bind group 0 of the geometry pass
//   - opts: optional configuration functions
//
// Returns:
//   - *FrameSynchronizer: the idle synchronizer
func NewFrameSynchronizer(encoder FrameEncoder, sceneProvider bgp.BindGroupProvider, opts ...FrameSynchronizerOption) *FrameSynchronizer {
	f := &FrameSynchronizer{
		encoder:       encoder,
		sceneProvider: sceneProvider,
		geometryKey:   "geometry",
		shadowKey:     "shadow_depth",
		lightingKey:   "lighting",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Begin starts a new frame and opens the geometry pass.
//
// Returns:
//   - error: ErrFrameState if a frame is already in flight, or the encoder error
func (f *FrameSynchronizer) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != frameIdle {
		return fmt.Errorf("%w: Begin while frame in flight", ErrFrameState)
	}
	if err := f.encoder.BeginFrame(); err != nil {
		return fmt.Errorf("beginning frame: %w", err)
	}
	if err := f.encoder.BeginGeometryPass(); err != nil {
		return f.abandon(err)
	}
	f.recorded = f.recorded[:0]
	f.state = frameRecording
	return nil
}

// Draw encodes a draw call into the geometry pass and records it for shadow
// replay.
//
// Parameters:
//   - dc: the draw call
//
// Returns:
//   - error: ErrFrameState if the geometry pass is not open, or the encoder error
func (f *FrameSynchronizer) Draw(dc model.DrawCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != frameRecording {
		return fmt.Errorf("%w: Draw outside geometry recording", ErrFrameState)
	}

	groups := []bgp.BindGroupProvider{f.sceneProvider, dc.Transform, dc.Material}
	if err := f.encoder.Draw(f.geometryKey, dc.Mesh, dc.InstanceCount, groups, nil); err != nil {
		return f.abandon(err)
	}
	f.recorded = append(f.recorded, dc)
	return nil
}

// EncodeShadowPasses closes the geometry pass and replays the recorded
// shadow-casting draws into one depth-only pass per atlas layer, selecting
// each cascade's light matrix with a dynamic uniform offset.
//
// Parameters:
//   - atlas: the shadow atlas layers to render into
//   - matrices: the provider backing the cascade matrix uniform
//
// Returns:
//   - error: ErrFrameState if called out of order, or the encoder error
func (f *FrameSynchronizer) EncodeShadowPasses(atlas AtlasTarget, matrices bgp.BindGroupProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != frameRecording {
		return fmt.Errorf("%w: EncodeShadowPasses outside geometry recording", ErrFrameState)
	}
	f.encoder.EndPass()

	for layer := 0; layer < atlas.LayerCount(); layer++ {
		if err := f.encoder.BeginShadowPass(atlas.LayerView(layer)); err != nil {
			return f.abandon(err)
		}
		offset := []uint32{uint32(layer) * shadow.CascadeUniformStride}
		for _, dc := range f.recorded {
			if !dc.CastsShadows {
				continue
			}
			groups := []bgp.BindGroupProvider{matrices, dc.Transform, dc.Material}
			if err := f.encoder.Draw(f.shadowKey, dc.Mesh, dc.InstanceCount, groups, offset); err != nil {
				return f.abandon(err)
			}
		}
		f.encoder.EndPass()
	}

	f.state = frameShadowed
	return nil
}

// EncodeLightingPass encodes the fullscreen resolve that composites the lit,
// shadowed image onto the surface.
//
// Parameters:
//   - bindGroups: providers for the lighting pass, in group order
//
// Returns:
//   - error: ErrFrameState if called before EncodeShadowPasses, or the encoder error
func (f *FrameSynchronizer) EncodeLightingPass(bindGroups []bgp.BindGroupProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != frameShadowed {
		return fmt.Errorf("%w: EncodeLightingPass before shadow passes", ErrFrameState)
	}
	if err := f.encoder.BeginLightingPass(); err != nil {
		return f.abandon(err)
	}
	if err := f.encoder.DrawFullscreen(f.lightingKey, bindGroups); err != nil {
		return f.abandon(err)
	}
	f.encoder.EndPass()
	f.state = frameLit
	return nil
}

// End submits the frame and presents it.
//
// Returns:
//   - error: ErrFrameState if the lighting pass was not encoded, or the encoder error
func (f *FrameSynchronizer) End() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != frameLit {
		return fmt.Errorf("%w: End before lighting pass", ErrFrameState)
	}
	if err := f.encoder.EndFrame(); err != nil {
		return f.abandon(err)
	}
	f.encoder.Present()
	f.recorded = f.recorded[:0]
	f.state = frameIdle
	return nil
}

// DrawCount returns the number of draw calls recorded this frame.
func (f *FrameSynchronizer) DrawCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recorded)
}

// abandon drops the in-flight frame after an encoder failure and resets to
// idle. The caller holds the mutex.
func (f *FrameSynchronizer) abandon(err error) error {
	common.Logger().Error("abandoning frame", "error", err)
	f.encoder.AbandonFrame()
	f.recorded = f.recorded[:0]
	f.state = frameIdle
	return fmt.Errorf("frame abandoned: %w", err)
}
