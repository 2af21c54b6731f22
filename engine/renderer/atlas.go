package renderer

import "github.com/cogentcore/webgpu/wgpu"

// ShadowAtlas is a layered Depth32Float texture holding one shadow map per
// cascade. Shadow passes render into individual layer views while the
// lighting pass samples the whole atlas through the array view with a
// comparison sampler. The atlas is created once at startup and is not
// recreated on window resize.
type ShadowAtlas struct {
	texture    *wgpu.Texture
	arrayView  *wgpu.TextureView
	layerViews []*wgpu.TextureView
	resolution uint32
}

// ArrayView returns the 2D-array view covering every layer, used as the
// sampled binding in the lighting pass.
func (a *ShadowAtlas) ArrayView() *wgpu.TextureView {
	return a.arrayView
}

// LayerView returns the render-attachment view for a single layer, or nil if
// the index is out of range.
//
// Parameters:
//   - layer: the cascade layer index
//
// Returns:
//   - *wgpu.TextureView: the layer view, or nil
func (a *ShadowAtlas) LayerView(layer int) *wgpu.TextureView {
	if layer < 0 || layer >= len(a.layerViews) {
		return nil
	}
	return a.layerViews[layer]
}

// LayerCount returns the number of cascade layers.
func (a *ShadowAtlas) LayerCount() int {
	return len(a.layerViews)
}

// Resolution returns the width and height of each layer in texels.
func (a *ShadowAtlas) Resolution() uint32 {
	return a.resolution
}

// TexelSize returns the size of one texel in normalized UV units, used for
// PCF kernel offsets.
func (a *ShadowAtlas) TexelSize() float32 {
	if a.resolution == 0 {
		return 0
	}
	return 1.0 / float32(a.resolution)
}

// Release frees the atlas texture and all views.
func (a *ShadowAtlas) Release() {
	for i, lv := range a.layerViews {
		if lv != nil {
			lv.Release()
			a.layerViews[i] = nil
		}
	}
	if a.arrayView != nil {
		a.arrayView.Release()
		a.arrayView = nil
	}
	if a.texture != nil {
		a.texture.Release()
		a.texture = nil
	}
}
