package renderer

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/lwjglgamedev/vulkanbook-sub001/engine/camera"
	"github.com/lwjglgamedev/vulkanbook-sub001/engine/light"
)

func TestGPUSceneDataLayout(t *testing.T) {
	if size := unsafe.Sizeof(GPUSceneData{}); size != GPUSceneDataSize {
		t.Fatalf("struct size = %d, want %d", size, GPUSceneDataSize)
	}
	var s GPUSceneData
	if got := len(s.Marshal()); got != GPUSceneDataSize {
		t.Fatalf("marshal length = %d, want %d", got, GPUSceneDataSize)
	}
}

func TestGPUResolveDataLayout(t *testing.T) {
	if size := unsafe.Sizeof(GPUResolveData{}); size != GPUResolveDataSize {
		t.Fatalf("struct size = %d, want %d", size, GPUResolveDataSize)
	}
	var r GPUResolveData
	if got := len(r.Marshal()); got != GPUResolveDataSize {
		t.Fatalf("marshal length = %d, want %d", got, GPUResolveDataSize)
	}
}

// TestResolveDataCarriesLightColor pins the light color and intensity in the
// resolve uniform. The geometry pass writes unlit albedo plus the diffuse
// fraction, so the resolve is the only place the light color enters the
// image and the only place the shadow factor can scale the direct term
// without darkening the ambient term.
func TestResolveDataCarriesLightColor(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithPosition(0, 2, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithAspect(16.0/9.0),
	)
	lgt := light.NewDirectionalLight(
		light.WithColor(1.0, 0.5, 0.25),
		light.WithIntensity(2),
	)

	r := ResolveDataFrom(cam, lgt)
	if r.LightColor != [4]float32{1.0, 0.5, 0.25, 2} {
		t.Fatalf("light color = %v, want rgb with intensity in w", r.LightColor)
	}

	buf := r.Marshal()
	offsets := map[int]float32{128: 1.0, 132: 0.5, 136: 0.25, 140: 2}
	for off, want := range offsets {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])); got != want {
			t.Errorf("value at offset %d = %v, want %v", off, got, want)
		}
	}
}
