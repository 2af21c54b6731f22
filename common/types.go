package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData carries pixel data and dimensions for creating a
// sampled 2D texture (RGBA8, sRGB). Pixels must hold Width*Height*4 bytes.
type TextureStagingData struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// SamplerStagingData describes a sampler to be created by the renderer
// backend. Compare is set only for comparison samplers used with depth
// textures.
type SamplerStagingData struct {
	AddressModeU wgpu.AddressMode
	AddressModeV wgpu.AddressMode
	AddressModeW wgpu.AddressMode
	MagFilter    wgpu.FilterMode
	MinFilter    wgpu.FilterMode
	MipmapFilter wgpu.MipmapFilterMode
	Compare      wgpu.CompareFunction
}

// SolidTexture builds staging data for a single-color texture, useful for
// untextured materials and tests.
//
// Parameters:
//   - r, g, b, a: the color bytes
//
// Returns:
//   - TextureStagingData: a 1x1 texture of the given color
func SolidTexture(r, g, b, a byte) TextureStagingData {
	return TextureStagingData{
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}
