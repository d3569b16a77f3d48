package raycast

import (
	"fmt"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// FixedCaster traces rays in 8.8 fixed point: the high byte of a coordinate
// is the tile and the low byte the offset inside it. Angles are split into a
// quarter (angle >> 8) and an index inside the quarter (angle & 0xFF) so every
// trigonometric value comes from a quarter-wave table.
type FixedCaster struct {
	m       *maploader.Map
	playerX int32
	playerY int32
	playerA int32 // [0, AngleScale)
	viewSin int32 // 8.8
	viewCos int32 // 8.8
}

// NewFixed creates a fixed-point tracer over m, building the lookup tables on
// first use.
func NewFixed(m *maploader.Map) (*FixedCaster, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: fixed tracer needs a map", ErrAllocationFailure)
	}
	tablesOnce.Do(buildTables)
	Logger().Debug("raycast: fixed tracer constructed", "width", m.Width(), "height", m.Height())
	return &FixedCaster{m: m}, nil
}

// Start stores the canonical pose and caches the view direction.
func (c *FixedCaster) Start(x, y uint16, angle int16) {
	a := int32(angle) % AngleScale
	if a < 0 {
		a += AngleScale
	}
	c.playerX = int32(x)
	c.playerY = int32(y)
	c.playerA = a
	c.viewSin, c.viewCos = sinCos(a)
}

// Trace projects the wall hit for screen column screenX.
func (c *FixedCaster) Trace(screenX int) Column {
	if c.m == nil || screenX < 0 || screenX >= ScreenWidth {
		return Column{}
	}

	deltaX, deltaY, hitOffset, vertical := c.distance(c.rayAngle(screenX))

	var col Column
	col.TextureX = uint8(hitOffset & 0xFF)
	if vertical {
		col.TextureNo = 1
	}

	distance := c.project(deltaX, deltaY)
	if distance <= 0 {
		return col
	}

	switch {
	case distance < minDist:
		col.ScreenY = HorizonHeight
		col.TextureY = overflowOffset[distance]
		col.TextureStep = overflowStep[distance]
	case (distance-minDist)>>nearShift < 256:
		i := (distance - minDist) >> nearShift
		col.ScreenY = int(nearHeight[i])
		col.TextureStep = nearStep[i]
	default:
		i := min((distance-minDist)>>farShift, 255)
		col.ScreenY = int(farHeight[i])
		col.TextureStep = farStep[i]
	}
	return col
}

// rayAngle returns the ray direction through screenX in [0, AngleScale).
func (c *FixedCaster) rayAngle(screenX int) int32 {
	rayA := (c.playerA + deltaAngleTable[screenX]) % AngleScale

	// Angles one or two steps off an axis have slopes too steep for the
	// tables; snap them away from the edge.
	switch rayA & 0xFF {
	case 1, 254:
		rayA--
	case 2, 255:
		rayA++
	}
	return rayA % AngleScale
}

// project returns the length of the hit vector along the view direction,
// which is the fisheye-corrected distance in world units.
func (c *FixedCaster) project(deltaX, deltaY int32) int32 {
	return (deltaX*c.viewSin + deltaY*c.viewCos) >> fracBits
}

// Destruct drops the map reference.
func (c *FixedCaster) Destruct() {
	if c.m == nil {
		return
	}
	c.m = nil
	Logger().Debug("raycast: fixed tracer destructed")
}

// distance walks both grid-line families along rayA. It returns the vector
// from the player to the nearest hit, the hit coordinate along the wall face
// and whether the hit was on a vertical grid line. When neither walk finds a
// wall the vector is zero.
func (c *FixedCaster) distance(rayA int32) (deltaX, deltaY, hitOffset int32, vertical bool) {
	q, t := rayA>>8, rayA&0xFF
	px, py := c.playerX, c.playerY

	// Direction signs per quarter: sin is positive in quarters 0 and 1,
	// cos in quarters 0 and 3.
	signX, signY := int32(1), int32(1)
	if q >= 2 {
		signX = -1
	}
	if q == 1 || q == 2 {
		signY = -1
	}

	// |dx/dy| and |dy/dx|. In odd quarters the angle is measured from the
	// X axis, which swaps the two tables.
	var tanAbs, cotAbs int32
	if t != 0 {
		tanAbs, cotAbs = tanTable[t], cotTable[t]
		if q&1 == 1 {
			tanAbs, cotAbs = cotAbs, tanAbs
		}
	}

	var vx, vy, hx, hy int32
	var vHit, hHit bool

	// Vertical grid lines; skipped when the ray runs along Y.
	if t != 0 || q&1 == 1 {
		rayX := px&^0xFF + tileOne
		if signX < 0 {
			rayX = px&^0xFF - 1
		}
		rayY := py + signY*mulFixed(abs32(rayX-px), cotAbs)
		vx, vy, vHit = c.walk(rayX, rayY, signX*tileOne, signY*cotAbs)
	}

	// Horizontal grid lines; skipped when the ray runs along X.
	if t != 0 || q&1 == 0 {
		rayY := py&^0xFF + tileOne
		if signY < 0 {
			rayY = py&^0xFF - 1
		}
		rayX := px + signX*mulFixed(abs32(rayY-py), tanAbs)
		hx, hy, hHit = c.walk(rayX, rayY, signX*tanAbs, signY*tileOne)
	}

	vLen := lengthSq(vx-px, vy-py)
	hLen := lengthSq(hx-px, hy-py)
	switch {
	case hHit && (!vHit || hLen < vLen):
		return hx - px, hy - py, hx, false
	case vHit:
		return vx - px, vy - py, vy, true
	default:
		return 0, 0, 0, true
	}
}

// walk steps from (rayX, rayY) until a wall is found or maxDepth is reached.
func (c *FixedCaster) walk(rayX, rayY, stepX, stepY int32) (int32, int32, bool) {
	for depth := 0; depth < maxDepth; depth++ {
		if c.m.IsWall(int(rayX>>fracBits), int(rayY>>fracBits)) {
			return rayX, rayY, true
		}
		rayX += stepX
		rayY += stepY
	}
	return rayX, rayY, false
}

// sinCos returns 256*sin(a) and 256*cos(a) for a in [0, AngleScale).
func sinCos(a int32) (sin, cos int32) {
	t := a & 0xFF
	switch a >> 8 {
	case 0:
		return sinTable[t], sinTable[quarter-t]
	case 1:
		return sinTable[quarter-t], -sinTable[t]
	case 2:
		return -sinTable[t], -sinTable[quarter-t]
	default:
		return -sinTable[quarter-t], sinTable[t]
	}
}

// mulFixed multiplies an integer by an 8.8 factor.
func mulFixed(v, f int32) int32 {
	return v * f >> fracBits
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func lengthSq(dx, dy int32) int64 {
	return int64(dx)*int64(dx) + int64(dy)*int64(dy)
}
