package raycast

import (
	"fmt"
	"math"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// axisEpsilon is how close sin or cos must be to zero for a ray to count as
// running parallel to a grid axis.
const axisEpsilon = 0.001

// FloatCaster traces rays with float64 geometry.
//
//	         ^ +Y (angle 0)
//	sin-     |        sin+
//	cos+     |        cos+
//	---------+---------> +X (angle pi/2)
//	sin-     |        sin+
//	cos-     |        cos-
type FloatCaster struct {
	m       *maploader.Map
	playerX float64 // tiles
	playerY float64 // tiles
	playerA float64 // radians
}

// NewFloat creates a floating-point tracer over m.
func NewFloat(m *maploader.Map) (*FloatCaster, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: float tracer needs a map", ErrAllocationFailure)
	}
	Logger().Debug("raycast: float tracer constructed", "width", m.Width(), "height", m.Height())
	return &FloatCaster{m: m}, nil
}

// Start converts the canonical pose into tiles and radians.
func (c *FloatCaster) Start(x, y uint16, angle int16) {
	c.playerX = float64(x) / PositionScale
	c.playerY = float64(y) / PositionScale
	c.playerA = float64(angle) / AngleScale * 2 * math.Pi
}

// Trace projects the wall hit for screen column screenX.
func (c *FloatCaster) Trace(screenX int) Column {
	if c.m == nil || screenX < 0 || screenX >= ScreenWidth {
		return Column{}
	}

	deltaAngle := deflection(screenX)
	lineDistance, hitOffset, vertical := c.distance(c.playerA + deltaAngle)

	var col Column
	_, frac := math.Modf(hitOffset)
	if frac < 0 {
		frac++
	}
	col.TextureX = uint8(256 * frac)
	if vertical {
		col.TextureNo = 1
	}

	// Removes the fisheye effect of the flat projection plane.
	distance := lineDistance * math.Cos(deltaAngle)
	if distance <= 0 {
		return col
	}

	// A wall that was found is never thinner than one pixel.
	halfHeight := InvFactor / distance
	col.ScreenY = max(1, int(halfHeight))

	txs := halfHeight * 2
	step := 256 / txs * 256
	col.TextureStep = uint32(step)

	// Only the middle of an oversized wall is sampled so the horizon stays centred.
	if txs > ScreenHeight {
		overflow := (txs - ScreenHeight) / 2
		col.TextureY = uint32(overflow * step)
		col.ScreenY = HorizonHeight
	}
	return col
}

// Destruct drops the map reference.
func (c *FloatCaster) Destruct() {
	if c.m == nil {
		return
	}
	c.m = nil
	Logger().Debug("raycast: float tracer destructed")
}

// distance walks both grid-line families along rayA and returns the distance
// to the nearest wall, the hit coordinate along the wall face and whether the
// hit was on a vertical grid line.
func (c *FloatCaster) distance(rayA float64) (dist, hitOffset float64, vertical bool) {
	for rayA < 0 {
		rayA += 2 * math.Pi
	}
	for rayA >= 2*math.Pi {
		rayA -= 2 * math.Pi
	}

	px, py := c.playerX, c.playerY
	sin, cos := math.Sin(rayA), math.Cos(rayA)
	tanA := math.Tan(rayA)
	cotA := 1 / tanA

	// Vertical grid lines: X advances one tile per step.
	var rayX, rayY, xOffset, yOffset float64
	depth := 0
	switch {
	case sin > axisEpsilon:
		rayX = math.Floor(px) + 1
		rayY = (rayX-px)*cotA + py
		xOffset = 1
		yOffset = cotA
	case sin < -axisEpsilon:
		rayX = math.Floor(px) - axisEpsilon
		rayY = (rayX-px)*cotA + py
		xOffset = -1
		yOffset = -cotA
	default:
		depth = maxDepth
	}
	vertDist, _, vy := c.walk(px, py, rayX, rayY, xOffset, yOffset, depth)

	// Horizontal grid lines: Y advances one tile per step.
	depth = 0
	switch {
	case cos > axisEpsilon:
		rayY = math.Floor(py) + 1
		rayX = (rayY-py)*tanA + px
		yOffset = 1
		xOffset = tanA
	case cos < -axisEpsilon:
		rayY = math.Floor(py) - axisEpsilon
		rayX = (rayY-py)*tanA + px
		yOffset = -1
		xOffset = -tanA
	default:
		depth = maxDepth
	}
	horiDist, hx, _ := c.walk(px, py, rayX, rayY, xOffset, yOffset, depth)

	// An exhausted walk reports 0 and must not beat a real hit.
	if horiDist > 0 && (vertDist == 0 || horiDist < vertDist) {
		return horiDist, hx, false
	}
	return vertDist, vy, true
}

// walk steps from (rayX, rayY) by (xOffset, yOffset) until a wall is found or
// maxDepth is reached. It returns 0 when no wall was found.
func (c *FloatCaster) walk(px, py, rayX, rayY, xOffset, yOffset float64, depth int) (dist, hitX, hitY float64) {
	for ; depth < maxDepth; depth++ {
		if c.m.IsWall(int(math.Floor(rayX)), int(math.Floor(rayY))) {
			return math.Hypot(rayX-px, rayY-py), rayX, rayY
		}
		rayX += xOffset
		rayY += yOffset
	}
	return 0, rayX, rayY
}

// deflection returns the angle between the view direction and the ray
// through screenX on a flat projection plane spanning 90 degrees.
func deflection(screenX int) float64 {
	const half = ScreenWidth / 2.0
	return math.Atan((float64(screenX) - half) / half * math.Pi / 4)
}
