package renderer

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/lwjglgamedev/vulkanbook-sub001/engine/model"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/shader"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/shadow"
)

//go:embed assets/geometry.wgsl
var geometryWGSL string

//go:embed assets/shadow_depth.wgsl
var shadowDepthWGSL string

//go:embed assets/lighting.wgsl
var lightingWGSL string

// Bind group layout descriptors shared between pipeline registration and
// bind group initialization. The descriptor passed to InitBindGroup must be
// group-equivalent to the one the pipeline layout was built from, so both
// sides use these functions.

// SceneDataLayout describes bind group 0 of the geometry pass: the per-frame
// scene uniform holding the camera matrices and directional light.
func SceneDataLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Data Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GPUSceneDataSize,
				},
			},
		},
	}
}

// ModelTransformLayout describes bind group 1 of the geometry and shadow
// passes: the per-object model matrix uniform.
func ModelTransformLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Model Transform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: model.GPUModelTransformSize,
				},
			},
		},
	}
}

// MaterialLayout describes bind group 2 of the geometry and shadow passes:
// the material uniform, base color texture, and sampler. The shadow pass
// samples the texture's alpha channel for cut-out casters.
func MaterialLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: model.GPUMaterialDataSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// CascadeMatrixLayout describes bind group 0 of the shadow pass: a single
// cascade light matrix selected with a dynamic offset. The backing buffer
// holds one matrix per cascade at shadow.CascadeUniformStride intervals, so
// the whole cascade set is uploaded once and each shadow pass picks its
// matrix by offset.
func CascadeMatrixLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Cascade Matrix Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   64,
				},
			},
		},
	}
}

// ResolveDataLayout describes bind group 0 of the lighting pass: the resolve
// uniform plus the offscreen scene color and depth targets.
func ResolveDataLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Resolve Data Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GPUResolveDataSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// CascadeResolveLayout describes bind group 1 of the lighting pass: the
// cascade data uniform, the shadow atlas array view, and the comparison
// sampler.
func CascadeResolveLayout() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "Cascade Resolve Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: shadow.GPUCascadeDataSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	}
}

// GeometryShaders returns the vertex and fragment shaders for the geometry
// pass. Both stages declare the full bind group layouts so the merged
// pipeline layout matches the descriptors used for bind group creation.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func GeometryShaders() (shader.Shader, shader.Shader) {
	vs := shader.NewShader("geometry_vs", shader.ShaderTypeVertex, geometryWGSL,
		shader.WithBindGroupLayout(SceneDataLayout()),
		shader.WithBindGroupLayout(ModelTransformLayout()),
		shader.WithBindGroupLayout(MaterialLayout()),
		shader.WithVertexLayout(model.VertexBufferLayout()),
	)
	fs := shader.NewShader("geometry_fs", shader.ShaderTypeFragment, geometryWGSL,
		shader.WithBindGroupLayout(SceneDataLayout()),
		shader.WithBindGroupLayout(ModelTransformLayout()),
		shader.WithBindGroupLayout(MaterialLayout()),
	)
	return vs, fs
}

// ShadowShaders returns the vertex and fragment shaders for the shadow
// depth pass. The fragment stage writes no color; it only discards
// alpha-tested texels.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func ShadowShaders() (shader.Shader, shader.Shader) {
	vs := shader.NewShader("shadow_depth_vs", shader.ShaderTypeVertex, shadowDepthWGSL,
		shader.WithBindGroupLayout(CascadeMatrixLayout()),
		shader.WithBindGroupLayout(ModelTransformLayout()),
		shader.WithBindGroupLayout(MaterialLayout()),
		shader.WithVertexLayout(model.VertexBufferLayout()),
	)
	fs := shader.NewShader("shadow_depth_fs", shader.ShaderTypeFragment, shadowDepthWGSL,
		shader.WithBindGroupLayout(CascadeMatrixLayout()),
		shader.WithBindGroupLayout(ModelTransformLayout()),
		shader.WithBindGroupLayout(MaterialLayout()),
	)
	return vs, fs
}

// LightingShaders returns the vertex and fragment shaders for the fullscreen
// lighting resolve pass. The pass draws a fullscreen triangle generated from
// the vertex index, so no vertex layouts are declared.
//
// Returns:
//   - shader.Shader: the vertex stage
//   - shader.Shader: the fragment stage
func LightingShaders() (shader.Shader, shader.Shader) {
	vs := shader.NewShader("lighting_vs", shader.ShaderTypeVertex, lightingWGSL,
		shader.WithBindGroupLayout(ResolveDataLayout()),
		shader.WithBindGroupLayout(CascadeResolveLayout()),
	)
	fs := shader.NewShader("lighting_fs", shader.ShaderTypeFragment, lightingWGSL,
		shader.WithBindGroupLayout(ResolveDataLayout()),
		shader.WithBindGroupLayout(CascadeResolveLayout()),
	)
	return vs, fs
}
