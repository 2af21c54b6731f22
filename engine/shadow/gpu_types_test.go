package shadow

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestGPUCascadeDataLayout(t *testing.T) {
	if size := unsafe.Sizeof(GPUCascadeData{}); size != GPUCascadeDataSize {
		t.Fatalf("struct size = %d, want %d", size, GPUCascadeDataSize)
	}
	var d GPUCascadeData
	if got := len(d.Marshal()); got != GPUCascadeDataSize {
		t.Fatalf("marshal length = %d, want %d", got, GPUCascadeDataSize)
	}
}

func TestGPUCascadeDataFromCascadeSet(t *testing.T) {
	set := &CascadeSet{splits: []CascadeSplit{
		{FarDistance: -10},
		{FarDistance: -30},
		{FarDistance: -100},
	}}
	var d GPUCascadeData
	d.FromCascadeSet(set, DefaultDepthBias, DefaultShadowFloor, FilterPCF3x3)

	if d.FarDepths != [4]float32{-10, -30, -100, -100} {
		t.Errorf("far depths = %v, want last entry padded with -100", d.FarDepths)
	}
	if d.FilterMode != uint32(FilterPCF3x3) {
		t.Errorf("filter mode = %d, want %d", d.FilterMode, FilterPCF3x3)
	}
	want := float32(1.0 / ShadowMapResolution)
	if d.TexelSize != [2]float32{want, want} {
		t.Errorf("texel size = %v, want %v", d.TexelSize, want)
	}

	// Spot-check the serialized far depth offset.
	buf := d.Marshal()
	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[192:]))
	if got != -10 {
		t.Errorf("far depth at offset 192 = %v, want -10", got)
	}
}

func TestMarshalCascadeMatrices(t *testing.T) {
	set := &CascadeSet{splits: make([]CascadeSplit, CascadeCount)}
	for i := range set.splits {
		set.splits[i].ViewProjection[0] = float32(i + 1)
	}
	buf := MarshalCascadeMatrices(set)
	if len(buf) != CascadeCount*CascadeUniformStride {
		t.Fatalf("length = %d, want %d", len(buf), CascadeCount*CascadeUniformStride)
	}
	for i := 0; i < CascadeCount; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*CascadeUniformStride:]))
		if got != float32(i+1) {
			t.Errorf("matrix %d first element = %v, want %d", i, got, i+1)
		}
	}
}
