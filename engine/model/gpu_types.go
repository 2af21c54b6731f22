package model

import (
	"encoding/binary"
	"math"
)

// GPUModelTransform is the per-object uniform consumed by the geometry and
// shadow vertex stages.
//
// WGSL equivalent:
//
//	struct ModelTransform {
//	    model: mat4x4<f32>,
//	}
type GPUModelTransform struct {
	Model [16]float32
}

// GPUModelTransformSize is the byte size of GPUModelTransform.
const GPUModelTransformSize = 64

// Marshal serializes the transform into little-endian bytes for buffer upload.
//
// Returns:
//   - []byte: exactly GPUModelTransformSize bytes
func (t *GPUModelTransform) Marshal() []byte {
	buf := make([]byte, GPUModelTransformSize)
	for i, v := range t.Model {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// GPUMaterialData is the per-material uniform consumed by the fragment
// stages. The shadow pass reads AlphaThreshold so cut-out casters discard
// transparent texels before writing depth.
//
// WGSL equivalent:
//
//	struct Material {
//	    base_color: vec4<f32>,
//	    alpha_threshold: f32,
//	    has_texture: u32,
//	}
type GPUMaterialData struct {
	BaseColor      [4]float32 // offset 0
	AlphaThreshold float32    // offset 16
	HasTexture     uint32     // offset 20
	_              [8]byte    // pad to 32
}

// GPUMaterialDataSize is the byte size of GPUMaterialData.
const GPUMaterialDataSize = 32

// Marshal serializes the material into little-endian bytes for buffer upload.
//
// Returns:
//   - []byte: exactly GPUMaterialDataSize bytes
func (m *GPUMaterialData) Marshal() []byte {
	buf := make([]byte, GPUMaterialDataSize)
	for i, v := range m.BaseColor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(m.AlphaThreshold))
	binary.LittleEndian.PutUint32(buf[20:], m.HasTexture)
	return buf
}
