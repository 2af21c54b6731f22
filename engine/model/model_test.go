package model

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestVertexLayout(t *testing.T) {
	if size := unsafe.Sizeof(Vertex{}); size != VertexSize {
		t.Fatalf("vertex size = %d, want %d", size, VertexSize)
	}
	layout := VertexBufferLayout()
	if layout.ArrayStride != VertexSize {
		t.Errorf("stride = %d, want %d", layout.ArrayStride, VertexSize)
	}
	if len(layout.Attributes) != 3 {
		t.Fatalf("attribute count = %d, want 3", len(layout.Attributes))
	}
}

func TestNewCubeMesh(t *testing.T) {
	mesh := NewCubeMesh(2)
	if len(mesh.Vertices) != 24 {
		t.Errorf("vertex count = %d, want 24", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 36 {
		t.Errorf("index count = %d, want 36", len(mesh.Indices))
	}
	for i, v := range mesh.Vertices {
		for k := 0; k < 3; k++ {
			if v.Position[k] < -1 || v.Position[k] > 1 {
				t.Errorf("vertex %d position %v outside half extent", i, v.Position)
				break
			}
		}
	}
	for i, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Errorf("index %d = %d out of range", i, idx)
		}
	}
	if got := len(mesh.VertexBytes()); got != 24*VertexSize {
		t.Errorf("vertex bytes = %d, want %d", got, 24*VertexSize)
	}
}

func TestNewPlaneMesh(t *testing.T) {
	mesh := NewPlaneMesh(10)
	if len(mesh.Vertices) != 4 || len(mesh.Indices) != 6 {
		t.Fatalf("got %d vertices %d indices, want 4 and 6", len(mesh.Vertices), len(mesh.Indices))
	}
	for i, v := range mesh.Vertices {
		if v.Position[1] != 0 {
			t.Errorf("vertex %d y = %v, want 0", i, v.Position[1])
		}
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want up", i, v.Normal)
		}
	}
}

func TestNewDrawCall(t *testing.T) {
	dc := NewDrawCall(nil, nil, nil)
	if dc.InstanceCount != 1 {
		t.Errorf("instance count = %d, want 1", dc.InstanceCount)
	}
	if !dc.CastsShadows {
		t.Error("draw calls must cast shadows by default")
	}
}

func TestGPUTypeSizes(t *testing.T) {
	if size := unsafe.Sizeof(GPUMaterialData{}); size != GPUMaterialDataSize {
		t.Errorf("material size = %d, want %d", size, GPUMaterialDataSize)
	}
	var m GPUMaterialData
	if got := len(m.Marshal()); got != GPUMaterialDataSize {
		t.Errorf("material marshal length = %d, want %d", got, GPUMaterialDataSize)
	}
	var tr GPUModelTransform
	if got := len(tr.Marshal()); got != GPUModelTransformSize {
		t.Errorf("transform marshal length = %d, want %d", got, GPUModelTransformSize)
	}
}

// TestMaterialAlphaThresholdUpload pins the uniform offset the shadow and
// geometry shaders read the opacity threshold from, so a low-alpha caster is
// discarded by both passes.
func TestMaterialAlphaThresholdUpload(t *testing.T) {
	m := GPUMaterialData{
		BaseColor:      [4]float32{1, 1, 1, 0.2},
		AlphaThreshold: 0.5,
		HasTexture:     1,
	}
	buf := m.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])); got != 0.5 {
		t.Errorf("alpha threshold at offset 16 = %v, want 0.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])); got != 0.2 {
		t.Errorf("base color alpha at offset 12 = %v, want 0.2", got)
	}
}
