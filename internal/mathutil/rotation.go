package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// AngleToRad converts a Ninja device angle (65536 units per revolution)
// to radians.
func AngleToRad(a int32) float64 {
	return float64(a) * (2 * math.Pi / 65536)
}

// EulerNinja composes a rotation from three device angles. Default order
// applies X, then Y, then Z; zxy applies Z, then X, then Y, selected by a
// bone flag.
func EulerNinja(rx, ry, rz int32, zxy bool) Mat3 {
	x := RotX(AngleToRad(rx))
	y := RotY(AngleToRad(ry))
	z := RotZ(AngleToRad(rz))
	if zxy {
		return Mat3Mul(Mat3Mul(y, x), z)
	}
	return Mat3Mul(Mat3Mul(z, y), x)
}
