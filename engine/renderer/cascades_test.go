package renderer

import "testing"

func TestNewCascadeRendererInvalidResolution(t *testing.T) {
	// Validation runs before any GPU resource is touched, so no backend is
	// needed to exercise it.
	if _, err := NewCascadeRenderer(nil, WithAtlasResolution(0)); err == nil {
		t.Fatal("zero atlas resolution must be rejected")
	}
}
