package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/lwjglgamedev/vulkanbook-sub001/engine/model"
	bgp "github.com/lwjglgamedev/vulkanbook-sub001/engine/renderer/bind_group_provider"
)

// recordingEncoder logs every encoder call so tests can assert on the exact
// pass sequence. Setting failOn makes the matching call return an error.
type recordingEncoder struct {
	ops       []string
	failOn    string
	abandoned int
}

func (e *recordingEncoder) call(op string) error {
	e.ops = append(e.ops, op)
	if e.failOn != "" && strings.HasPrefix(op, e.failOn) {
		return fmt.Errorf("injected failure on %s", op)
	}
	return nil
}

func (e *recordingEncoder) BeginFrame() error        { return e.call("BeginFrame") }
func (e *recordingEncoder) BeginGeometryPass() error { return e.call("BeginGeometryPass") }
func (e *recordingEncoder) BeginShadowPass(_ *wgpu.TextureView) error {
	return e.call("BeginShadowPass")
}
func (e *recordingEncoder) BeginLightingPass() error { return e.call("BeginLightingPass") }
func (e *recordingEncoder) EndPass()                 { _ = e.call("EndPass") }

func (e *recordingEncoder) Draw(pipelineKey string, _ bgp.BindGroupProvider, _ uint32, _ []bgp.BindGroupProvider, group0DynamicOffsets []uint32) error {
	op := "Draw:" + pipelineKey
	if len(group0DynamicOffsets) > 0 {
		op = fmt.Sprintf("%s@%d", op, group0DynamicOffsets[0])
	}
	return e.call(op)
}

func (e *recordingEncoder) DrawFullscreen(pipelineKey string, _ []bgp.BindGroupProvider) error {
	return e.call("DrawFullscreen:" + pipelineKey)
}

func (e *recordingEncoder) EndFrame() error { return e.call("EndFrame") }
func (e *recordingEncoder) Present()        { _ = e.call("Present") }
func (e *recordingEncoder) AbandonFrame() {
	e.abandoned++
	_ = e.call("AbandonFrame")
}

type fakeAtlas struct {
	layers int
}

func (a fakeAtlas) LayerCount() int                 { return a.layers }
func (a fakeAtlas) LayerView(int) *wgpu.TextureView { return nil }

func testDrawCall(name string, castsShadows bool) model.DrawCall {
	dc := model.NewDrawCall(
		bgp.NewBindGroupProvider(name+"_mesh"),
		bgp.NewBindGroupProvider(name+"_transform"),
		bgp.NewBindGroupProvider(name+"_material"),
	)
	dc.CastsShadows = castsShadows
	return dc
}

func TestFrameSynchronizerPassSequence(t *testing.T) {
	enc := &recordingEncoder{}
	sync := NewFrameSynchronizer(enc, bgp.NewBindGroupProvider("scene"))
	matrices := bgp.NewBindGroupProvider("cascade_matrices")

	if err := sync.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := sync.Draw(testDrawCall("cube", true)); err != nil {
		t.Fatalf("Draw cube: %v", err)
	}
	if err := sync.Draw(testDrawCall("decal", false)); err != nil {
		t.Fatalf("Draw decal: %v", err)
	}
	if err := sync.EncodeShadowPasses(fakeAtlas{layers: 3}, matrices); err != nil {
		t.Fatalf("EncodeShadowPasses: %v", err)
	}
	if err := sync.EncodeLightingPass(nil); err != nil {
		t.Fatalf("EncodeLightingPass: %v", err)
	}
	if err := sync.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	want := []string{
		"BeginFrame",
		"BeginGeometryPass",
		"Draw:geometry",
		"Draw:geometry",
		"EndPass",
		// Three cascade passes; only the shadow-casting draw is replayed,
		// each selecting its cascade matrix by dynamic offset.
		"BeginShadowPass", "Draw:shadow_depth@0", "EndPass",
		"BeginShadowPass", "Draw:shadow_depth@256", "EndPass",
		"BeginShadowPass", "Draw:shadow_depth@512", "EndPass",
		"BeginLightingPass",
		"DrawFullscreen:lighting",
		"EndPass",
		"EndFrame",
		"Present",
	}
	if len(enc.ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %v", len(enc.ops), len(want), enc.ops)
	}
	for i, op := range want {
		if enc.ops[i] != op {
			t.Errorf("op %d: got %q, want %q", i, enc.ops[i], op)
		}
	}
}

func TestFrameSynchronizerOrdering(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *FrameSynchronizer) error
	}{
		{
			name: "draw before begin",
			run: func(s *FrameSynchronizer) error {
				return s.Draw(testDrawCall("cube", true))
			},
		},
		{
			name: "shadow passes before begin",
			run: func(s *FrameSynchronizer) error {
				return s.EncodeShadowPasses(fakeAtlas{layers: 3}, bgp.NewBindGroupProvider("m"))
			},
		},
		{
			name: "lighting before shadow passes",
			run: func(s *FrameSynchronizer) error {
				if err := s.Begin(); err != nil {
					return err
				}
				return s.EncodeLightingPass(nil)
			},
		},
		{
			name: "end before lighting",
			run: func(s *FrameSynchronizer) error {
				if err := s.Begin(); err != nil {
					return err
				}
				if err := s.EncodeShadowPasses(fakeAtlas{layers: 3}, bgp.NewBindGroupProvider("m")); err != nil {
					return err
				}
				return s.End()
			},
		},
		{
			name: "begin while in flight",
			run: func(s *FrameSynchronizer) error {
				if err := s.Begin(); err != nil {
					return err
				}
				return s.Begin()
			},
		},
		{
			name: "draw after shadow passes",
			run: func(s *FrameSynchronizer) error {
				if err := s.Begin(); err != nil {
					return err
				}
				if err := s.EncodeShadowPasses(fakeAtlas{layers: 3}, bgp.NewBindGroupProvider("m")); err != nil {
					return err
				}
				return s.Draw(testDrawCall("late", true))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync := NewFrameSynchronizer(&recordingEncoder{}, bgp.NewBindGroupProvider("scene"))
			err := tt.run(sync)
			if !errors.Is(err, ErrFrameState) {
				t.Fatalf("got %v, want ErrFrameState", err)
			}
		})
	}
}

func TestFrameSynchronizerAbandonsOnFailure(t *testing.T) {
	enc := &recordingEncoder{failOn: "Draw:shadow_depth"}
	sync := NewFrameSynchronizer(enc, bgp.NewBindGroupProvider("scene"))
	matrices := bgp.NewBindGroupProvider("cascade_matrices")

	if err := sync.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := sync.Draw(testDrawCall("cube", true)); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	err := sync.EncodeShadowPasses(fakeAtlas{layers: 3}, matrices)
	if err == nil {
		t.Fatal("expected encode failure")
	}
	if enc.abandoned != 1 {
		t.Fatalf("got %d AbandonFrame calls, want 1", enc.abandoned)
	}
	if sync.DrawCount() != 0 {
		t.Fatalf("recorded draws not cleared, got %d", sync.DrawCount())
	}

	// The dropped frame must not wedge the synchronizer.
	enc.failOn = ""
	if err := sync.Begin(); err != nil {
		t.Fatalf("Begin after abandon: %v", err)
	}
}

func TestFrameSynchronizerCustomPipelineKeys(t *testing.T) {
	enc := &recordingEncoder{}
	sync := NewFrameSynchronizer(enc, bgp.NewBindGroupProvider("scene"),
		WithGeometryPipeline("gbuf"),
		WithShadowPipeline("csm"),
		WithLightingPipeline("resolve"),
	)

	if err := sync.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := sync.Draw(testDrawCall("cube", true)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := sync.EncodeShadowPasses(fakeAtlas{layers: 1}, bgp.NewBindGroupProvider("m")); err != nil {
		t.Fatalf("EncodeShadowPasses: %v", err)
	}
	if err := sync.EncodeLightingPass(nil); err != nil {
		t.Fatalf("EncodeLightingPass: %v", err)
	}
	if err := sync.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	joined := strings.Join(enc.ops, " ")
	for _, want := range []string{"Draw:gbuf", "Draw:csm@0", "DrawFullscreen:resolve"} {
		if !strings.Contains(joined, want) {
			t.Errorf("ops missing %q: %v", want, enc.ops)
		}
	}
}
