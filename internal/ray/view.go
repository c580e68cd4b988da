package ray

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps view rays off the vertical, where yaw is meaningless.
const MaxPitch = 89

// FromAngles builds a view ray from a yaw (around +y, 0 looking along +x)
// and a pitch (up positive), both in degrees.
func FromAngles(origin mgl32.Vec3, yaw, pitch float32) Ray {
	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	if pitch < -MaxPitch {
		pitch = -MaxPitch
	}
	y, p := float64(mgl32.DegToRad(yaw)), float64(mgl32.DegToRad(pitch))
	front := mgl32.Vec3{
		float32(math.Cos(p) * math.Cos(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Sin(y)),
	}
	return Ray{Origin: origin, Direction: front.Normalize()}
}
