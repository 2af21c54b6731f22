package shadow

// FitterOption configures a Fitter during construction.
type FitterOption func(*fitterImpl)

// NewFitter creates a cascade fitter with the default cascade count, split
// lambda, and radius granularity.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Fitter: the configured fitter
func NewFitter(opts ...FitterOption) Fitter {
	f := &fitterImpl{
		count:       CascadeCount,
		lambda:      DefaultSplitLambda,
		granularity: DefaultRadiusGranularity,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithCascadeCount overrides the number of cascades. Values below 1 make
// Update return ErrInvalidCascadeCount.
func WithCascadeCount(n int) FitterOption {
	return func(f *fitterImpl) {
		f.count = n
	}
}

// WithSplitLambda overrides the log/uniform blend factor. Values outside
// [0, 1] make Update return ErrInvalidLambda.
func WithSplitLambda(lambda float32) FitterOption {
	return func(f *fitterImpl) {
		f.lambda = lambda
	}
}

// WithRadiusGranularity overrides the bounding sphere rounding step. Values
// at or below zero make Update return ErrInvalidRadiusGranularity.
func WithRadiusGranularity(g float32) FitterOption {
	return func(f *fitterImpl) {
		f.granularity = g
	}
}
