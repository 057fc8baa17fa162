// Package collider implements oriented box triggers and the point they are tested against.
package collider

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoxCollider is a box of half-extents Size, positioned at Position and
// rotated by the XYZ Euler angles in Rotation (radians).
type BoxCollider struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Size     mgl32.Vec3

	// basis maps world offsets into the box's local frame. Always the
	// transpose of RotationMatrix(Rotation).
	basis mgl32.Mat3
}

// Snapshot is the persisted pose of a collider.
type Snapshot struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Size     mgl32.Vec3
}

// New creates a collider and derives its basis from rotation.
func New(position, rotation, size mgl32.Vec3) *BoxCollider {
	return &BoxCollider{
		Position: position,
		Rotation: rotation,
		Size:     size,
		basis:    RotationMatrix(rotation).Transpose(),
	}
}

// FromSnapshot rebuilds a collider from its persisted pose.
func FromSnapshot(s Snapshot) *BoxCollider {
	return New(s.Position, s.Rotation, s.Size)
}

// Snapshot returns the persisted pose of the collider.
func (c *BoxCollider) Snapshot() Snapshot {
	return Snapshot{Position: c.Position, Rotation: c.Rotation, Size: c.Size}
}

// SetRotation replaces the rotation and recomputes the basis.
func (c *BoxCollider) SetRotation(rotation mgl32.Vec3) {
	c.Rotation = rotation
	c.basis = RotationMatrix(rotation).Transpose()
}

// Basis returns the world-to-local rotation of the box.
func (c *BoxCollider) Basis() mgl32.Mat3 {
	return c.basis
}

// Local returns point expressed in the box's local frame.
func (c *BoxCollider) Local(point mgl32.Vec3) mgl32.Vec3 {
	return c.basis.Mul3x1(point.Sub(c.Position))
}

// CheckPointCollision reports whether point lies inside the box, faces included.
func (c *BoxCollider) CheckPointCollision(point mgl32.Vec3) bool {
	local := c.Local(point)
	for i := 0; i < 3; i++ {
		if mgl32.Abs(local[i]) > c.Size[i] {
			return false
		}
	}
	return true
}
