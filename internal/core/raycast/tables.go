package raycast

import (
	"math"
	"sync"
)

const (
	fracBits = 8
	tileOne  = 1 << fracBits

	// quarter is the number of angle units in a quarter turn.
	quarter = AngleScale / 4

	// textureUnit is the full texture height in TextureY/TextureStep units.
	textureUnit = 1 << 16

	// invFactorFixed is InvFactor with the distance expressed in world units.
	invFactorFixed = int32(InvFactor * PositionScale)

	// minDist is the distance at which a wall exactly fills the screen
	// height. Closer walls are clipped through the overflow tables.
	minDist = invFactorFixed / HorizonHeight

	nearShift = 2 // near table resolution: 4 world units per entry
	farShift  = 5 // far table resolution: 32 world units per entry
)

var (
	tablesOnce sync.Once

	// tanTable and cotTable hold 256*tan and 256*cot for one quarter turn.
	// cotTable[0] is unused since axis-aligned rays never read a slope.
	tanTable [quarter]int32
	cotTable [quarter]int32

	// sinTable holds 256*sin for one quarter turn, both ends inclusive.
	sinTable [quarter + 1]int32

	// deltaAngleTable holds the per-column deflection in angle units,
	// normalized into [0, AngleScale).
	deltaAngleTable [ScreenWidth]int32

	nearHeight [256]int32
	nearStep   [256]uint32
	farHeight  [256]int32
	farStep    [256]uint32

	// Overflow tables are indexed by the distance itself, for distances
	// below minDist.
	overflowOffset [minDist]uint32
	overflowStep   [minDist]uint32
)

// buildTables fills every lookup table. It is the only place the fixed-point
// tracer touches floating point.
func buildTables() {
	for i := 0; i < quarter; i++ {
		a := float64(i) * math.Pi / 2 / quarter
		tanTable[i] = int32(tileOne * math.Tan(a))
		if i > 0 {
			cotTable[i] = int32(tileOne / math.Tan(a))
		}
	}
	for i := 0; i <= quarter; i++ {
		sinTable[i] = int32(math.Round(tileOne * math.Sin(float64(i)*math.Pi/2/quarter)))
	}

	for i := 0; i < ScreenWidth; i++ {
		da := int32(math.Round(deflection(i) / (math.Pi / 2) * quarter))
		for da < 0 {
			da += AngleScale
		}
		deltaAngleTable[i] = da
	}

	for i := 0; i < 256; i++ {
		nearHeight[i], nearStep[i] = projectFloat(minDist + int32(i)<<nearShift)
		farHeight[i], farStep[i] = projectFloat(minDist + int32(i)<<farShift)
	}

	for d := int32(1); d < minDist; d++ {
		txs := 2 * float64(invFactorFixed) / float64(d)
		step := textureUnit / txs
		overflowStep[d] = uint32(step)
		overflowOffset[d] = uint32((txs - ScreenHeight) / 2 * step)
	}

	Logger().Debug("raycast: fixed-point tables built",
		"minDist", minDist, "columns", ScreenWidth)
}

// projectFloat returns the wall half-height and texture step for an
// unclipped wall at distance d world units.
func projectFloat(d int32) (int32, uint32) {
	half := float64(invFactorFixed) / float64(d)
	return int32(half), uint32(textureUnit / (2 * half))
}
