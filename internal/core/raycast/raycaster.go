// Package raycast computes per-column wall hits for a tile map. Two
// interchangeable tracers are provided: FloatCaster works in float64 world
// coordinates with runtime trigonometry, FixedCaster works in 8.8 fixed point
// with precomputed lookup tables.
//
// All tracers take the same canonical pose units: positions in 1/256 of a
// tile and angles in 1/1024 of a full turn. Angle 0 faces +Y and angles grow
// towards +X, so sin(angle) drives X and cos(angle) drives Y.
package raycast

import (
	"errors"
	"fmt"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// Screen geometry shared by every tracer.
const (
	ScreenWidth   = 320
	ScreenHeight  = 256
	HorizonHeight = ScreenHeight / 2
)

// Canonical pose units.
const (
	PositionScale = 256  // world units per tile
	AngleScale    = 1024 // angle units per full turn
)

const (
	// InvFactor is the projection constant: the wall half-height in pixels
	// for a wall one tile away.
	InvFactor = float64(ScreenWidth) * 95 / 320

	// maxDepth bounds the number of grid lines a single walk may cross.
	maxDepth = 100
)

// ErrAllocationFailure is returned when a tracer cannot acquire the state it
// needs. No partially constructed tracer is ever returned alongside it.
var ErrAllocationFailure = errors.New("raycast: allocation failure")

// Column is the result of tracing one screen column.
type Column struct {
	// ScreenY is the half-height of the wall span in pixels, at most
	// HorizonHeight. Zero means no wall is drawn.
	ScreenY int
	// TextureNo selects the texture: 0 for a horizontal grid-line hit,
	// 1 for a vertical grid-line hit.
	TextureNo uint8
	// TextureX is the hit offset along the wall face, 0-255.
	TextureX uint8
	// TextureY is the starting vertical texture offset, where 65536 is the
	// full texture height. Non-zero only for clipped walls.
	TextureY uint32
	// TextureStep is the vertical texture increment per screen row, in the
	// same unit as TextureY.
	TextureStep uint32
}

// RayCaster traces rays from a player pose through screen columns.
type RayCaster interface {
	// Start resets the pose from canonical units.
	Start(x, y uint16, angle int16)
	// Trace returns the wall slice for a screen column. It does not mutate
	// the pose and always terminates.
	Trace(screenX int) Column
	// Destruct releases the tracer's resources. Calling it twice is safe.
	Destruct()
}

// Kind names a tracer implementation.
type Kind string

const (
	KindFloat Kind = "float"
	KindFixed Kind = "fixed"
)

// Kinds lists every available tracer kind.
func Kinds() []Kind {
	return []Kind{KindFixed, KindFloat}
}

// New constructs a tracer of the given kind over m.
func New(kind Kind, m *maploader.Map) (RayCaster, error) {
	switch kind {
	case KindFloat:
		c, err := NewFloat(m)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindFixed:
		c, err := NewFixed(m)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("raycast: unknown tracer kind %q", kind)
	}
}
