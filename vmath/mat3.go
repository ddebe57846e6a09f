package vmath

import (
	"errors"
	"math"
)

// ErrSingular is returned when a matrix has no inverse
var ErrSingular = errors.New("singular matrix")

// Mat3 is a row-major 3x3 matrix
type Mat3 [3][3]float64

// M3Identity returns the identity matrix
func M3Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// M3MulVec returns m * v with v as a column vector
func M3MulVec(m Mat3, v Vec3F) Vec3F {
	return Vec3F{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// M3Lerp blends element-wise: (1-t)a + tb
func M3Lerp(a, b Mat3, t float64) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = Lerp(a[i][j], b[i][j], t)
		}
	}
	return r
}

// M3Det returns the determinant
func M3Det(m Mat3) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// M3Inverse returns the inverse by cofactor expansion
func M3Inverse(m Mat3) (Mat3, error) {
	det := M3Det(m)
	if math.Abs(det) < 1e-12 {
		return Mat3{}, ErrSingular
	}
	inv := 1.0 / det

	var r Mat3
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv
	return r, nil
}

// MustInverse panics on a singular matrix, for package-level constant tables
func MustInverse(m Mat3) Mat3 {
	r, err := M3Inverse(m)
	if err != nil {
		panic(err)
	}
	return r
}
