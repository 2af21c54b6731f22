// Package shadow implements cascaded shadow mapping for a single directional
// light: view frustum splitting, per-cascade light matrix fitting, a layered
// depth atlas rendered once per frame, and CPU-side shadow factor resolution
// mirroring the GPU sampling path.
package shadow

import "errors"

const (
	// CascadeCount is the number of cascades the view frustum is split into.
	CascadeCount = 3

	// ShadowMapResolution is the width and height in texels of each layer of
	// the shadow depth atlas.
	ShadowMapResolution = 2048

	// DefaultSplitLambda blends the logarithmic and uniform split schemes.
	// 1 is fully logarithmic, 0 fully uniform.
	DefaultSplitLambda = 0.95

	// DefaultDepthBias is subtracted from the fragment's light-space depth
	// before comparison to suppress shadow acne.
	DefaultDepthBias = 0.0005

	// DefaultShadowFloor is the minimum shadow factor. Fully occluded
	// fragments keep this much of their lit color.
	DefaultShadowFloor = 0.25

	// DefaultAlphaThreshold discards shadow caster fragments whose sampled
	// alpha falls below it, so cut-out geometry casts correct shadows.
	DefaultAlphaThreshold = 0.5

	// DefaultRadiusGranularity quantizes the fitted bounding sphere radius.
	// Rounding the radius up to this step keeps the shadow texel grid stable
	// while the camera moves.
	DefaultRadiusGranularity = 1.0 / 16.0
)

// FilterMode selects how the shadow atlas is sampled when resolving the
// shadow factor.
type FilterMode uint32

const (
	// FilterPoint samples the atlas once per fragment.
	FilterPoint FilterMode = iota

	// FilterPCF3x3 averages a 3x3 neighborhood of comparisons for soft
	// shadow edges.
	FilterPCF3x3
)

var (
	// ErrInvalidClipPlanes is returned when near and far do not satisfy
	// 0 < near < far.
	ErrInvalidClipPlanes = errors.New("shadow: clip planes must satisfy 0 < near < far")

	// ErrInvalidCascadeCount is returned when a split count is not positive.
	ErrInvalidCascadeCount = errors.New("shadow: cascade count must be positive")

	// ErrInvalidLambda is returned when a split lambda falls outside [0, 1].
	ErrInvalidLambda = errors.New("shadow: split lambda must be in [0, 1]")

	// ErrInvalidRadiusGranularity is returned when a bounding sphere rounding
	// step is not positive.
	ErrInvalidRadiusGranularity = errors.New("shadow: radius granularity must be positive")

	// ErrInvalidTexelSize is returned when a PCF texel size is not positive.
	ErrInvalidTexelSize = errors.New("shadow: texel size must be positive")

	// ErrZeroLightDirection is returned when fitting cascades for a light
	// with a zero direction vector.
	ErrZeroLightDirection = errors.New("shadow: light direction must be non-zero")
)
