// Package host defines what the recorder needs from the game it runs in:
// the player's pose each tick and a way to move the player.
package host

import "github.com/go-gl/mathgl/mgl32"

// Pose is the player position and Euler rotation in radians.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// MovementSource reports the current player pose.
type MovementSource interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Vec3
}

// Sample reads one pose from src.
func Sample(src MovementSource) Pose {
	return Pose{Position: src.Position(), Rotation: src.Rotation()}
}

// Actuator moves the player. It is only driven by teleport events.
type Actuator interface {
	Teleport(position, rotation mgl32.Vec3)
	SetCameraRotation(camera mgl32.Vec2)
}

// Move records a teleport issued to a RecordingActuator.
type Move struct {
	Pose   Pose
	Camera mgl32.Vec2
}

// RecordingActuator remembers every teleport instead of moving anything.
// The replay command and tests use it.
type RecordingActuator struct {
	Moves []Move
	camera mgl32.Vec2
}

func (a *RecordingActuator) Teleport(position, rotation mgl32.Vec3) {
	a.Moves = append(a.Moves, Move{Pose: Pose{Position: position, Rotation: rotation}, Camera: a.camera})
}

func (a *RecordingActuator) SetCameraRotation(camera mgl32.Vec2) {
	a.camera = camera
	if n := len(a.Moves); n > 0 {
		a.Moves[n-1].Camera = camera
	}
}
