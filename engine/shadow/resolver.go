package shadow

import "github.com/lwjglgamedev/vulkanbook-sub001/common"

// DepthSampler reads stored depths from a shadow atlas layer. Coordinates
// are normalized texture coordinates with (0, 0) at the top-left texel.
// Implementations clamp out-of-range coordinates to the edge.
type DepthSampler interface {
	Sample(u, v float32, layer int) float32
}

// Resolver computes per-fragment shadow factors the same way the lighting
// shader does, for debugging and verification on the CPU.
type Resolver interface {
	// SelectCascade picks the cascade covering a view-space depth. Depths
	// beyond the last cascade select the last cascade.
	SelectCascade(viewZ float32) int

	// Factor resolves the shadow factor for a world-space position at the
	// given view-space depth. Returns a value in [floor, 1] where 1 is
	// fully lit.
	Factor(world [3]float32, viewZ float32) float32
}

type resolverImpl struct {
	set       *CascadeSet
	sampler   DepthSampler
	bias      float32
	floor     float32
	mode      FilterMode
	texelSize float32
}

var _ Resolver = &resolverImpl{}

// ResolverOption configures a Resolver during construction.
type ResolverOption func(*resolverImpl)

// NewResolver creates a shadow factor resolver over a fitted cascade set and
// an atlas sampler. Defaults: point filtering, the package default bias and
// shadow floor, and the texel size implied by ShadowMapResolution.
//
// Parameters:
//   - set: the fitted cascades to resolve against
//   - sampler: depth reads from the shadow atlas
//   - opts: optional configuration functions
//
// Returns:
//   - Resolver: the configured resolver
//   - error: a contract violation in the options, if any
func NewResolver(set *CascadeSet, sampler DepthSampler, opts ...ResolverOption) (Resolver, error) {
	r := &resolverImpl{
		set:       set,
		sampler:   sampler,
		bias:      DefaultDepthBias,
		floor:     DefaultShadowFloor,
		mode:      FilterPoint,
		texelSize: 1.0 / ShadowMapResolution,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.texelSize <= 0 {
		return nil, ErrInvalidTexelSize
	}
	return r, nil
}

// WithDepthBias overrides the light-space depth bias.
func WithDepthBias(bias float32) ResolverOption {
	return func(r *resolverImpl) {
		r.bias = bias
	}
}

// WithShadowFloor overrides the minimum shadow factor.
func WithShadowFloor(floor float32) ResolverOption {
	return func(r *resolverImpl) {
		r.floor = floor
	}
}

// WithFilterMode selects point or 3x3 PCF sampling.
func WithFilterMode(mode FilterMode) ResolverOption {
	return func(r *resolverImpl) {
		r.mode = mode
	}
}

// WithTexelSize overrides the normalized texel size used for PCF offsets.
// Values at or below zero make NewResolver return ErrInvalidTexelSize.
func WithTexelSize(t float32) ResolverOption {
	return func(r *resolverImpl) {
		r.texelSize = t
	}
}

func (r *resolverImpl) SelectCascade(viewZ float32) int {
	// Far distances are negative and strictly decreasing. The first cascade
	// whose far boundary lies beyond the fragment covers it.
	for i := 0; i < r.set.Count()-1; i++ {
		if viewZ > r.set.Split(i).FarDistance {
			return i
		}
	}
	return r.set.Count() - 1
}

func (r *resolverImpl) Factor(world [3]float32, viewZ float32) float32 {
	idx := r.SelectCascade(viewZ)
	sp := r.set.Split(idx)
	p := common.TransformPoint(sp.ViewProjection[:], world[0], world[1], world[2])

	// Fragments outside the light volume's depth range receive no shadow.
	if p[2] < 0 || p[2] > 1 {
		return 1.0
	}

	u := p[0]*0.5 + 0.5
	v := 1.0 - (p[1]*0.5 + 0.5) // texture V grows downward
	depth := p[2] - r.bias

	if r.mode == FilterPCF3x3 {
		lit := float32(0)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				su := u + float32(dx)*r.texelSize
				sv := v + float32(dy)*r.texelSize
				if depth <= r.sampler.Sample(su, sv, idx) {
					lit++
				}
			}
		}
		return r.floor + (1.0-r.floor)*(lit/9.0)
	}

	if depth <= r.sampler.Sample(u, v, idx) {
		return 1.0
	}
	return r.floor
}
