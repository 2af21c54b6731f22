package shadow

import "math"

// SplitFractions computes normalized split depths for dividing a view
// frustum into cascades. Each returned fraction is the far boundary of one
// cascade, expressed as a position in [0, 1] between the near and far clip
// planes. The scheme blends a logarithmic and a uniform distribution:
//
//	d_log(i)     = near * (far/near)^(i/count)
//	d_uniform(i) = near + (far - near) * (i/count)
//	d(i)         = lambda*d_log(i) + (1-lambda)*d_uniform(i)
//
// Fractions are strictly increasing and the last is exactly 1.
//
// Parameters:
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//   - count: number of cascades (must be > 0)
//   - lambda: log/uniform blend factor in [0, 1]
//
// Returns:
//   - []float32: count split fractions in (0, 1]
//   - error: contract violation, if any
func SplitFractions(near, far float32, count int, lambda float32) ([]float32, error) {
	if near <= 0 || far <= near {
		return nil, ErrInvalidClipPlanes
	}
	if count <= 0 {
		return nil, ErrInvalidCascadeCount
	}
	if lambda < 0 || lambda > 1 {
		return nil, ErrInvalidLambda
	}

	n := float64(near)
	f := float64(far)
	l := float64(lambda)
	ratio := f / n
	span := f - n

	out := make([]float32, count)
	for i := 1; i <= count; i++ {
		p := float64(i) / float64(count)
		dLog := n * math.Pow(ratio, p)
		dUni := n + span*p
		d := l*dLog + (1-l)*dUni
		out[i-1] = float32((d - n) / span)
	}
	out[count-1] = 1.0
	return out, nil
}
