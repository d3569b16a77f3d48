// Package gamestate holds the player pose and integrates movement input over
// elapsed time.
package gamestate

import (
	"math"
)

// TicksPerSecond is the resolution of the elapsed time passed to Move.
const TicksPerSecond = 256

const (
	positionScale = 256  // world units per tile
	angleScale    = 1024 // angle units per turn
)

// Pose is the player pose in canonical units: position in 1/256 tile and
// angle in 1/1024 turn, with angle 0 facing +Y and angles growing towards +X.
type Pose struct {
	X     uint16
	Y     uint16
	Angle int16
}

// Speeds controls how fast the player moves and turns.
type Speeds struct {
	Move float64 // tiles per second
	Turn float64 // turns per second
}

// State is the single source of the player pose. Sub-unit motion is kept in
// float64 so slow movement at high frame rates is not lost to rounding.
type State struct {
	x, y   float64 // world units
	angle  float64 // angle units
	maxX   float64
	maxY   float64
	speeds Speeds
}

// New creates a state starting at spawn. width and height are the map size
// in tiles; the player is kept inside it.
func New(spawn Pose, width, height int, speeds Speeds) *State {
	s := &State{
		x:      float64(spawn.X),
		y:      float64(spawn.Y),
		angle:  wrapAngle(float64(spawn.Angle)),
		maxX:   math.Min(float64(width*positionScale-1), math.MaxUint16),
		maxY:   math.Min(float64(height*positionScale-1), math.MaxUint16),
		speeds: speeds,
	}
	s.clamp()
	return s
}

// Pose returns the current pose in canonical units.
func (s *State) Pose() Pose {
	return Pose{
		X:     uint16(s.x),
		Y:     uint16(s.y),
		Angle: int16(s.angle),
	}
}

// Move advances the pose. move is +1 forward, -1 backward or 0; rotate is
// +1 clockwise (towards +X from +Y), -1 counter-clockwise or 0. ticks is the
// elapsed time in 1/TicksPerSecond seconds.
func (s *State) Move(move, rotate int, ticks uint16) {
	dt := float64(ticks) / TicksPerSecond

	s.angle = wrapAngle(s.angle + float64(rotate)*s.speeds.Turn*angleScale*dt)

	rad := s.angle / angleScale * 2 * math.Pi
	dist := float64(move) * s.speeds.Move * positionScale * dt
	s.x += math.Sin(rad) * dist
	s.y += math.Cos(rad) * dist
	s.clamp()
}

func (s *State) clamp() {
	s.x = math.Max(0, math.Min(s.x, s.maxX))
	s.y = math.Max(0, math.Min(s.y, s.maxY))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, angleScale)
	if a < 0 {
		a += angleScale
	}
	return a
}
