package collider

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCheckPointCollision_AxisAligned(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})

	tests := []struct {
		name  string
		point mgl32.Vec3
		want  bool
	}{
		{"center", mgl32.Vec3{0, 0, 0}, true},
		{"on face", mgl32.Vec3{1, 0, 0}, true},
		{"corner", mgl32.Vec3{-1, 1, -1}, true},
		{"outside x", mgl32.Vec3{1.01, 0, 0}, false},
		{"outside y", mgl32.Vec3{0, -2, 0}, false},
		{"outside z", mgl32.Vec3{0, 0, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CheckPointCollision(tt.point))
		})
	}
}

func TestCheckPointCollision_Rotated(t *testing.T) {
	// long thin box along x, turned 90 degrees around y so it lies along z
	c := New(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{0, math.Pi / 2, 0}, mgl32.Vec3{4, 1, 0.5})

	assert.True(t, c.CheckPointCollision(mgl32.Vec3{10, 0, 3.5}))
	assert.False(t, c.CheckPointCollision(mgl32.Vec3{13, 0, 0}))
}

func TestBasisIsTransposeOfRotation(t *testing.T) {
	rot := mgl32.Vec3{0.3, -1.1, 2.0}
	c := New(mgl32.Vec3{}, rot, mgl32.Vec3{1, 1, 1})

	assert.True(t, c.Basis().ApproxEqual(RotationMatrix(rot).Transpose()))
	// orthonormal: basis * rotation == identity
	assert.True(t, c.Basis().Mul3(RotationMatrix(rot)).ApproxEqualThreshold(mgl32.Ident3(), 1e-5))
}

func TestSetRotation_RecomputesBasis(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	assert.True(t, c.Basis().ApproxEqual(mgl32.Ident3()))

	c.SetRotation(mgl32.Vec3{0, 0, math.Pi / 4})

	assert.Equal(t, mgl32.Vec3{0, 0, math.Pi / 4}, c.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, c.Size)
	assert.True(t, c.Basis().ApproxEqual(RotationMatrix(c.Rotation).Transpose()))
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.1, 0.2, 0.3}, mgl32.Vec3{4, 5, 6})
	r := FromSnapshot(c.Snapshot())

	assert.Equal(t, c.Snapshot(), r.Snapshot())
	assert.True(t, c.Basis().ApproxEqual(r.Basis()))
}

func TestTrackedPoint(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{5, 1, 0}, TrackedPoint(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{}))

	// lying on the side: up rotates into -x
	p := TrackedPoint(mgl32.Vec3{}, mgl32.Vec3{0, 0, math.Pi / 2})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5))
}
