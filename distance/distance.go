package distance

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm calculates the L2 norm (magnitude) of a vector.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// Cosine calculates the cosine similarity of two vectors:
// dot(a,b) / (|a|*|b|).
//
// If either vector has zero magnitude the similarity is 0. This guards
// the division and treats unseeded or untrained vectors as a degenerate,
// non-error case.
func Cosine(a, b []float64) float64 {
	na := Norm(a)
	nb := Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// AddScaled adds scale*src to dst in place.
// Assumes vectors are the same length (caller's responsibility).
func AddScaled(dst, src []float64, scale float64) {
	for i := range dst {
		dst[i] += scale * src[i]
	}
}
