package common

// Frustum corner reconstruction for shadow volume fitting. Corners are
// recovered by unprojecting the eight NDC cube corners through the inverse
// of a view-projection matrix (WebGPU clip conventions, Z in [0, 1]).

// ndcCorners enumerates the eight corners of the WebGPU NDC cube. The order
// groups the near plane (Z=0) first, then the far plane (Z=1), matching
// counter-clockwise winding starting at the lower-left corner.
var ndcCorners = [8][3]float32{
	{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// FrustumCorners unprojects the eight corners of a view frustum into world
// space given the inverse of its view-projection matrix.
//
// Parameters:
//   - out: destination array for the eight corners (near plane first)
//   - invViewProj: inverse view-projection matrix (16 elements, column-major)
func FrustumCorners(out *[8][3]float32, invViewProj []float32) {
	for i, c := range ndcCorners {
		out[i] = TransformPoint(invViewProj, c[0], c[1], c[2])
	}
}

// SliceFrustumCorners interpolates a sub-frustum between two normalized depth
// fractions along each near-to-far corner edge. The input corners must be
// ordered near plane first as produced by FrustumCorners. Fractions are in
// [0, 1] where 0 is the near plane and 1 the far plane.
//
// Parameters:
//   - out: destination array for the eight sliced corners (near plane first)
//   - full: full-frustum corners to slice
//   - nearFrac: normalized depth of the slice's near plane
//   - farFrac: normalized depth of the slice's far plane
func SliceFrustumCorners(out *[8][3]float32, full *[8][3]float32, nearFrac, farFrac float32) {
	for i := 0; i < 4; i++ {
		n := full[i]
		f := full[i+4]
		for k := 0; k < 3; k++ {
			edge := f[k] - n[k]
			out[i][k] = n[k] + edge*nearFrac
			out[i+4][k] = n[k] + edge*farFrac
		}
	}
}

// CornerCentroid computes the arithmetic mean of a set of frustum corners.
//
// Parameters:
//   - corners: the eight corners to average
//
// Returns:
//   - [3]float32: the centroid
func CornerCentroid(corners *[8][3]float32) [3]float32 {
	var c [3]float32
	for _, p := range corners {
		c[0] += p[0]
		c[1] += p[1]
		c[2] += p[2]
	}
	c[0] /= 8
	c[1] /= 8
	c[2] /= 8
	return c
}
