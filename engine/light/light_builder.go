package light

import "github.com/lwjglgamedev/vulkanbook-sub001/common"

// DirectionalLightOption configures a DirectionalLight during construction.
type DirectionalLightOption func(*directionalLightImpl)

// NewDirectionalLight creates a directional light. Defaults: direction
// straight down, white color, intensity 1, shadows enabled. A freshly built
// light reports changed once so the first frame always fits cascades.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - DirectionalLight: the configured light
func NewDirectionalLight(opts ...DirectionalLightOption) DirectionalLight {
	l := &directionalLightImpl{
		direction:    [3]float32{0, -1, 0},
		color:        [3]float32{1, 1, 1},
		intensity:    1,
		castsShadows: true,
		changed:      true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithDirection sets the initial light direction. The vector is normalized.
func WithDirection(x, y, z float32) DirectionalLightOption {
	return func(l *directionalLightImpl) {
		l.direction = common.Normalize3(x, y, z)
	}
}

// WithColor sets the initial linear RGB color.
func WithColor(r, g, b float32) DirectionalLightOption {
	return func(l *directionalLightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the initial intensity multiplier.
func WithIntensity(v float32) DirectionalLightOption {
	return func(l *directionalLightImpl) {
		l.intensity = v
	}
}

// WithCastsShadows sets whether the light participates in shadow rendering.
func WithCastsShadows(v bool) DirectionalLightOption {
	return func(l *directionalLightImpl) {
		l.castsShadows = v
	}
}
