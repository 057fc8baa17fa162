package collider

import "github.com/go-gl/mathgl/mgl32"

// up is the world up axis of the host's coordinate system.
var up = mgl32.Vec3{0, 1, 0}

// RotationMatrix builds the XYZ Euler rotation Rx * Ry * Rz.
func RotationMatrix(rotation mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Rotate3DX(rotation.X()).
		Mul3(mgl32.Rotate3DY(rotation.Y())).
		Mul3(mgl32.Rotate3DZ(rotation.Z()))
}

// LocalUp returns the unit up vector of a body with the given rotation.
func LocalUp(rotation mgl32.Vec3) mgl32.Vec3 {
	return RotationMatrix(rotation).Mul3x1(up)
}

// TrackedPoint offsets a player position by its local up vector so triggers
// follow a point above the feet. Trigger placement and the per-tick check
// both go through here.
func TrackedPoint(position, rotation mgl32.Vec3) mgl32.Vec3 {
	return position.Add(LocalUp(rotation))
}
