package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Floor returns the given vector with every axis floored toward negative
// infinity, matching block-grid semantics rather than truncation toward zero.
func Floor(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Floor(v.X()), math32.Floor(v.Y()), math32.Floor(v.Z())}
}

// BlockCenter returns the horizontal block-center point of the given position.
// The X and Z axes are snapped to the center of the block column the position
// is in, while the Y axis is left untouched so that vertical jitter does not
// affect horizontal distance measurements.
func BlockCenter(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Floor(v.X()) + 0.5, v.Y(), math32.Floor(v.Z()) + 0.5}
}

// HzDist returns the horizontal (XZ-plane) euclidean distance between the two
// given positions.
func HzDist(a, b mgl32.Vec3) float32 {
	return math32.Hypot(b.X()-a.X(), b.Z()-a.Z())
}

// Yaw returns the yaw in degrees an entity must face to look along the given
// direction vector. The result is offset by -90 degrees so that a direction
// of {0, 0, -1} (north) maps to -180, the yaw entities use when visually
// facing north.
func Yaw(dir mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Atan2(dir.Z(), dir.X())) - 90
}
