package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderOption is a functional option used to configure a Shader during construction.
type ShaderOption func(*shaderImpl)

// WithEntryPoint overrides the default entry function name.
//
// Parameters:
//   - name: the entry function name in the WGSL source
//
// Returns:
//   - ShaderOption: a function that sets the entry point for this shader
func WithEntryPoint(name string) ShaderOption {
	return func(s *shaderImpl) {
		s.entryPoint = name
	}
}

// WithBindGroupLayout appends a bind group layout descriptor. Call once per
// bind group, in group index order.
//
// Parameters:
//   - desc: the layout descriptor for the next bind group
//
// Returns:
//   - ShaderOption: a function that appends the layout descriptor
func WithBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) ShaderOption {
	return func(s *shaderImpl) {
		s.bindGroupLayouts = append(s.bindGroupLayouts, desc)
	}
}

// WithVertexLayout appends a vertex buffer layout. Only meaningful for
// vertex shaders.
//
// Parameters:
//   - layout: the vertex buffer layout to append
//
// Returns:
//   - ShaderOption: a function that appends the vertex layout
func WithVertexLayout(layout wgpu.VertexBufferLayout) ShaderOption {
	return func(s *shaderImpl) {
		s.vertexLayouts = append(s.vertexLayouts, layout)
	}
}
