package shadow

import (
	"encoding/binary"
	"math"
)

// GPUCascadeData is the std140-compatible GPU layout consumed by the
// lighting pass to resolve shadow factors.
//
// WGSL equivalent:
//
//	struct CascadeData {
//	    light_view_proj: array<mat4x4<f32>, 3>,
//	    far_depths: vec4<f32>,
//	    texel_size: vec2<f32>,
//	    bias: f32,
//	    shadow_floor: f32,
//	    filter_mode: u32,
//	    debug_tint: u32,
//	}
type GPUCascadeData struct {
	LightViewProj [CascadeCount][16]float32 // offset 0
	FarDepths     [4]float32                // offset 192, CascadeCount used
	TexelSize     [2]float32                // offset 208
	Bias          float32                   // offset 216
	ShadowFloor   float32                   // offset 220
	FilterMode    uint32                    // offset 224
	DebugTint     uint32                    // offset 228
	_             [8]byte                   // pad to 240
}

// GPUCascadeDataSize is the byte size of GPUCascadeData.
const GPUCascadeDataSize = 240

// CascadeUniformStride is the aligned stride between per-cascade matrices in
// the shadow pass uniform buffer. Dynamic uniform offsets must be multiples
// of the device's alignment requirement, 256 on all current backends.
const CascadeUniformStride = 256

// Marshal serializes the cascade data into little-endian bytes for buffer
// upload.
//
// Returns:
//   - []byte: exactly GPUCascadeDataSize bytes
func (d *GPUCascadeData) Marshal() []byte {
	buf := make([]byte, GPUCascadeDataSize)
	off := 0
	for c := range d.LightViewProj {
		for _, v := range d.LightViewProj[c] {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	for _, v := range d.FarDepths {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[208:], math.Float32bits(d.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[212:], math.Float32bits(d.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[216:], math.Float32bits(d.Bias))
	binary.LittleEndian.PutUint32(buf[220:], math.Float32bits(d.ShadowFloor))
	binary.LittleEndian.PutUint32(buf[224:], d.FilterMode)
	binary.LittleEndian.PutUint32(buf[228:], d.DebugTint)
	return buf
}

// FromCascadeSet populates the GPU struct from a fitted cascade set and
// resolution parameters. Unused FarDepths entries are filled with the last
// cascade's depth so out-of-range comparisons stay monotonic.
//
// Parameters:
//   - set: the fitted cascades (must hold CascadeCount splits)
//   - bias: light-space depth bias
//   - shadowFloor: minimum shadow factor
//   - mode: atlas sampling filter
func (d *GPUCascadeData) FromCascadeSet(set *CascadeSet, bias, shadowFloor float32, mode FilterMode) {
	for i := 0; i < CascadeCount && i < set.Count(); i++ {
		sp := set.Split(i)
		d.LightViewProj[i] = sp.ViewProjection
		d.FarDepths[i] = sp.FarDistance
	}
	last := d.FarDepths[minInt(CascadeCount, set.Count())-1]
	for i := set.Count(); i < 4; i++ {
		d.FarDepths[i] = last
	}
	d.TexelSize = [2]float32{1.0 / ShadowMapResolution, 1.0 / ShadowMapResolution}
	d.Bias = bias
	d.ShadowFloor = shadowFloor
	d.FilterMode = uint32(mode)
}

// MarshalCascadeMatrices packs each cascade's view-projection matrix at
// CascadeUniformStride intervals so shadow passes can select a cascade with
// a dynamic uniform offset.
//
// Parameters:
//   - set: the fitted cascades
//
// Returns:
//   - []byte: set.Count() * CascadeUniformStride bytes
func MarshalCascadeMatrices(set *CascadeSet) []byte {
	buf := make([]byte, set.Count()*CascadeUniformStride)
	for i := 0; i < set.Count(); i++ {
		sp := set.Split(i)
		off := i * CascadeUniformStride
		for _, v := range sp.ViewProjection {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	return buf
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
