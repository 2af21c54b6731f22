package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderType identifies the pipeline stage a shader serves.
type ShaderType int

const (
	// ShaderTypeVertex is a vertex stage shader.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a fragment stage shader.
	ShaderTypeFragment
)

// shaderImpl is the unexported implementation of Shader.
type shaderImpl struct {
	key        string
	shaderType ShaderType
	source     string
	entryPoint string

	// bindGroupLayouts describe the bind groups this shader expects, in
	// group index order. The backend creates wgpu layouts from these.
	bindGroupLayouts []*wgpu.BindGroupLayoutDescriptor

	// vertexLayouts describe the vertex buffers this shader consumes.
	// Only meaningful for vertex shaders.
	vertexLayouts []wgpu.VertexBufferLayout

	// module is the compiled shader module, populated by the backend.
	module *wgpu.ShaderModule
}

// Shader describes one WGSL shader stage together with the bind group and
// vertex buffer layouts its pipelines need. Layouts are declared
// programmatically at construction rather than parsed from the source.
type Shader interface {
	// Key returns the unique identifier for this shader.
	Key() string

	// Type returns the pipeline stage this shader serves.
	Type() ShaderType

	// Source returns the WGSL source text.
	Source() string

	// EntryPoint returns the entry function name.
	EntryPoint() string

	// BindGroupLayouts returns the bind group layout descriptors in group
	// index order.
	BindGroupLayouts() []*wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns the vertex buffer layouts consumed by a vertex
	// shader. Empty for fragment shaders and fullscreen passes.
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the compiled shader module, or nil before backend
	// registration.
	Module() *wgpu.ShaderModule

	// SetModule stores the compiled module after backend registration.
	SetModule(m *wgpu.ShaderModule)

	// Release frees the compiled module.
	Release()
}

var _ Shader = &shaderImpl{}

// NewShader creates a shader from WGSL source.
// Defaults: entry point "vs_main" for vertex shaders, "fs_main" for fragment
// shaders, no bind group or vertex layouts.
//
// Parameters:
//   - key: unique identifier for caching and lookups
//   - shaderType: the pipeline stage this shader serves
//   - source: the WGSL source text
//   - opts: optional configuration functions
//
// Returns:
//   - Shader: the configured shader
func NewShader(key string, shaderType ShaderType, source string, opts ...ShaderOption) Shader {
	s := &shaderImpl{
		key:        key,
		shaderType: shaderType,
		source:     source,
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Type() ShaderType {
	return s.shaderType
}

func (s *shaderImpl) Source() string {
	return s.source
}

func (s *shaderImpl) EntryPoint() string {
	return s.entryPoint
}

func (s *shaderImpl) BindGroupLayouts() []*wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayouts
}

func (s *shaderImpl) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shaderImpl) Module() *wgpu.ShaderModule {
	return s.module
}

func (s *shaderImpl) SetModule(m *wgpu.ShaderModule) {
	s.module = m
}

func (s *shaderImpl) Release() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}
