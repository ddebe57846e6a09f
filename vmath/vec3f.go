package vmath

// Vec3F is a float64 3-vector, used for color channel triples
type Vec3F struct {
	X, Y, Z float64
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// V3FLerp blends per component, t=0 returns a
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// V3FMap applies f to each component
func V3FMap(v Vec3F, f func(float64) float64) Vec3F {
	return Vec3F{f(v.X), f(v.Y), f(v.Z)}
}
