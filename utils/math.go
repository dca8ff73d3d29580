package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// EulerZXYToQuat composes intrinsic rotations in ZXY application order
// (the order the game engine applies motion rotation channels).
// Input in radians.
func EulerZXYToQuat(v mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(v[0], mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(v[1], mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(v[2], mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}
