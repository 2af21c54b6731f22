package renderer

import (
	"encoding/binary"
	"math"

	"github.com/lwjglgamedev/vulkanbook-sub001/engine/camera"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/light"
)

// GPUSceneData is the per-frame uniform consumed by the geometry pass.
//
// WGSL equivalent:
//
//	struct SceneData {
//	    view_proj: mat4x4<f32>,
//	    view: mat4x4<f32>,
//	    light_direction: vec4<f32>,
//	    light_color: vec4<f32>,
//	}
type GPUSceneData struct {
	ViewProj       [16]float32 // offset 0
	View           [16]float32 // offset 64
	LightDirection [4]float32  // offset 128, w unused
	LightColor     [4]float32  // offset 144, w holds intensity
}

// GPUSceneDataSize is the byte size of GPUSceneData.
const GPUSceneDataSize = 160

// Marshal serializes the scene data into little-endian bytes for buffer upload.
//
// Returns:
//   - []byte: exactly GPUSceneDataSize bytes
func (s *GPUSceneData) Marshal() []byte {
	buf := make([]byte, GPUSceneDataSize)
	off := 0
	for _, v := range s.ViewProj {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range s.View {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range s.LightDirection {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range s.LightColor {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return buf
}

// SceneDataFrom builds the scene uniform from the current camera and light
// state.
//
// Parameters:
//   - cam: the scene camera
//   - lgt: the directional light
//
// Returns:
//   - GPUSceneData: the populated uniform
func SceneDataFrom(cam camera.Camera, lgt light.DirectionalLight) GPUSceneData {
	var s GPUSceneData
	s.ViewProj = cam.ViewProjectionMatrix()
	s.View = cam.ViewMatrix()
	dir := lgt.Direction()
	s.LightDirection = [4]float32{dir[0], dir[1], dir[2], 0}
	col := lgt.Color()
	s.LightColor = [4]float32{col[0], col[1], col[2], lgt.Intensity()}
	return s
}

// GPUResolveData is the per-frame uniform consumed by the lighting pass to
// reconstruct world positions from scene depth and finish shading. The
// light color carries intensity in w so the resolve can scale the direct
// term the shadow factor applies to.
//
// WGSL equivalent:
//
//	struct ResolveData {
//	    inv_view_proj: mat4x4<f32>,
//	    view: mat4x4<f32>,
//	    light_color: vec4<f32>,
//	}
type GPUResolveData struct {
	InvViewProj [16]float32 // offset 0
	View        [16]float32 // offset 64
	LightColor  [4]float32  // offset 128, w holds intensity
}

// GPUResolveDataSize is the byte size of GPUResolveData.
const GPUResolveDataSize = 144

// Marshal serializes the resolve data into little-endian bytes for buffer upload.
//
// Returns:
//   - []byte: exactly GPUResolveDataSize bytes
func (r *GPUResolveData) Marshal() []byte {
	buf := make([]byte, GPUResolveDataSize)
	off := 0
	for _, v := range r.InvViewProj {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range r.View {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range r.LightColor {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return buf
}

// ResolveDataFrom builds the resolve uniform from the current camera and
// light state.
//
// Parameters:
//   - cam: the scene camera
//   - lgt: the directional light completing the shading
//
// Returns:
//   - GPUResolveData: the populated uniform
func ResolveDataFrom(cam camera.Camera, lgt light.DirectionalLight) GPUResolveData {
	var r GPUResolveData
	r.InvViewProj = cam.InverseViewProjectionMatrix()
	r.View = cam.ViewMatrix()
	col := lgt.Color()
	r.LightColor = [4]float32{col[0], col[1], col[2], lgt.Intensity()}
	return r
}
