package light

import (
	"sync"

	"github.com/lwjglgamedev/vulkanbook-sub001/common"
)

// DirectionalLight represents an infinitely distant light source defined by
// direction alone. It tracks whether its direction changed since the last
// time the change flag was consumed, which downstream shadow passes use to
// decide when cascades must be refit.
type DirectionalLight interface {
	// Direction returns the current normalized light direction, pointing
	// from the light toward the scene.
	Direction() [3]float32

	// SetDirection updates the light direction. The input is normalized
	// before storing. Setting the same direction does not mark the light
	// as changed.
	SetDirection(x, y, z float32)

	// Color returns the light color as linear RGB.
	Color() [3]float32

	// SetColor updates the light color.
	SetColor(r, g, b float32)

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// SetIntensity updates the scalar intensity multiplier.
	SetIntensity(v float32)

	// CastsShadows reports whether this light participates in shadow
	// rendering.
	CastsShadows() bool

	// SetCastsShadows toggles shadow participation. Toggling marks the
	// light as changed so cascades refit on the next frame.
	SetCastsShadows(v bool)

	// ConsumeChanged reports whether the light changed since the last call
	// and clears the flag.
	ConsumeChanged() bool
}

type directionalLightImpl struct {
	mu           sync.Mutex
	direction    [3]float32
	color        [3]float32
	intensity    float32
	castsShadows bool
	changed      bool
}

var _ DirectionalLight = &directionalLightImpl{}

func (l *directionalLightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *directionalLightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := common.Normalize3(x, y, z)
	if n == l.direction {
		return
	}
	l.direction = n
	l.changed = true
}

func (l *directionalLightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *directionalLightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *directionalLightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *directionalLightImpl) SetIntensity(v float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = v
}

func (l *directionalLightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castsShadows
}

func (l *directionalLightImpl) SetCastsShadows(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.castsShadows == v {
		return
	}
	l.castsShadows = v
	l.changed = true
}

func (l *directionalLightImpl) ConsumeChanged() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := l.changed
	l.changed = false
	return c
}
