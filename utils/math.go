package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// floorMod returns x mod m with the sign of m.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// NormalizeDegrees maps an angle into (-180, 180].
func NormalizeDegrees(a float32) float32 {
	return float32(floorMod(float64(a)-180, -360) + 180)
}

// NormalizeRadians maps an angle into (-pi, pi].
func NormalizeRadians(a float32) float32 {
	return float32(floorMod(float64(a)-math.Pi, -2*math.Pi) + math.Pi)
}

func DegreesToRadiansV3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2])}
}

// TransformPoint applies a full affine matrix to a position.
func TransformPoint(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// TransformDirection applies only the linear part of m.
func TransformDirection(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mat3().Mul3x1(v)
}

// QuatFromStorage converts a compressed W,X,Y,Z int16 quaternion.
func QuatFromStorage(c [4]int16) mgl32.Quat {
	const scale = 1.0 / 32767.0
	return mgl32.Quat{
		W: float32(c[0]) * scale,
		V: mgl32.Vec3{float32(c[1]) * scale, float32(c[2]) * scale, float32(c[3]) * scale},
	}
}

// QuatToStorage quantises q; every int16 value is kept, -32768 included.
func QuatToStorage(q mgl32.Quat) [4]int16 {
	pack := func(f float32) int16 {
		v := math.Round(float64(f) * 32767.0)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		return int16(v)
	}
	return [4]int16{pack(q.W), pack(q.V[0]), pack(q.V[1]), pack(q.V[2])}
}
