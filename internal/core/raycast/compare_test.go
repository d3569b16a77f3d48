package raycast

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// The fixed-point tracer approximates the float one. Rounded deflection
// angles shift a hit sideways by about distance*pi/1024 tiles, more on walls
// seen at a grazing angle, and truncated 8.8 slopes add up to a texel per grid
// line crossed. Rays grazing a corner may land on the other face.
func TestFixedMatchesFloat(t *testing.T) {
	m := maploader.Default()

	fl, err := NewFloat(m)
	if err != nil {
		t.Fatalf("NewFloat failed: %v", err)
	}
	defer fl.Destruct()
	fx, err := NewFixed(m)
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}
	defer fx.Destruct()

	var total, sameFace, sameDist, sameTexel int
	for ty := 1; ty < m.Height()-1; ty += 3 {
		for tx := 1; tx < m.Width()-1; tx += 3 {
			if m.IsWall(tx, ty) {
				continue
			}
			x := uint16(tx*PositionScale + 77)
			y := uint16(ty*PositionScale + 181)
			for angle := int16(13); angle < AngleScale; angle += 97 {
				fl.Start(x, y, angle)
				fx.Start(x, y, angle)

				for col := 0; col < ScreenWidth; col += 4 {
					rayA := fl.playerA + deflection(col)
					lineDist, _, flVertical := fl.distance(rayA)
					flDist := lineDist * math.Cos(deflection(col))

					dx, dy, _, fxVertical := fx.distance(fx.rayAngle(col))
					fxDist := float64(fx.project(dx, dy)) / PositionScale

					total++
					if flVertical != fxVertical {
						continue
					}
					sameFace++

					if math.Abs(flDist-fxDist) <= 8.0/PositionScale+0.03*flDist {
						sameDist++
					}

					// Cosine between the ray and the wall normal.
					incidence := math.Abs(math.Cos(rayA))
					if flVertical {
						incidence = math.Abs(math.Sin(rayA))
					}
					incidence = max(incidence, 0.2)
					tolerance := 2*lineDist*math.Pi/AngleScale*PositionScale/incidence + lineDist + 4
					a, b := fl.Trace(col), fx.Trace(col)
					if float64(texelDistance(a.TextureX, b.TextureX)) <= tolerance {
						sameTexel++
					}
				}
			}
		}
	}

	if total == 0 {
		t.Fatal("No samples taken")
	}
	if sameFace*100 < total*98 {
		t.Errorf("Only %d/%d rays hit the same face", sameFace, total)
	}
	if sameDist*100 < sameFace*97 {
		t.Errorf("Only %d/%d same-face rays agree on corrected distance", sameDist, sameFace)
	}
	if sameTexel*100 < sameFace*97 {
		t.Errorf("Only %d/%d same-face rays agree on texture column", sameTexel, sameFace)
	}
}

// The centre column has no deflection in either tracer, so both must agree
// closely there.
func TestFixedMatchesFloatCentreColumn(t *testing.T) {
	m := testRoom(t)
	fl, _ := NewFloat(m)
	fx, _ := NewFixed(m)
	defer fl.Destruct()
	defer fx.Destruct()

	for angle := int16(0); angle < AngleScale; angle += 37 {
		fl.Start(centre, centre, angle)
		fx.Start(centre, centre, angle)
		a, b := fl.Trace(ScreenWidth/2), fx.Trace(ScreenWidth/2)
		if absInt(a.ScreenY-b.ScreenY) > 2 {
			t.Errorf("Angle %d: ScreenY %d (float) vs %d (fixed)", angle, a.ScreenY, b.ScreenY)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// texelDistance is the circular distance between two texture columns.
func texelDistance(a, b uint8) int {
	d := absInt(int(a) - int(b))
	return min(d, 256-d)
}
