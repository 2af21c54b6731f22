package model

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
	bgp "github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/bind_group_provider"
)

// Vertex is the interleaved vertex format shared by the geometry and shadow
// passes: position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the byte stride of one Vertex.
const VertexSize = 32

// VertexBufferLayout returns the wgpu vertex layout matching Vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: layout with position, normal, and uv attributes
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// MeshData stages vertex and index data before GPU upload.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// VertexBytes returns the vertex data as bytes for buffer upload.
func (m *MeshData) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data as bytes for buffer upload.
func (m *MeshData) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// DrawCall records one mesh draw for the current frame. The same recording
// feeds both the geometry pass and every shadow cascade pass, so a caller
// submits its geometry once per frame regardless of cascade count.
type DrawCall struct {
	// Mesh holds the vertex and index buffers.
	Mesh bgp.BindGroupProvider

	// Transform holds the per-object model matrix uniform.
	Transform bgp.BindGroupProvider

	// Material holds the base color texture, sampler, and material uniform.
	// Shadow passes sample it for alpha-tested casters.
	Material bgp.BindGroupProvider

	// InstanceCount is the number of instances to draw, minimum 1.
	InstanceCount uint32

	// CastsShadows excludes the draw from shadow passes when false.
	CastsShadows bool
}

// NewDrawCall builds a single-instance shadow-casting draw call.
//
// Parameters:
//   - mesh: provider holding vertex and index buffers
//   - transform: provider holding the model matrix uniform
//   - material: provider holding material bindings
//
// Returns:
//   - DrawCall: the recorded draw
func NewDrawCall(mesh, transform, material bgp.BindGroupProvider) DrawCall {
	return DrawCall{
		Mesh:          mesh,
		Transform:     transform,
		Material:      material,
		InstanceCount: 1,
		CastsShadows:  true,
	}
}
