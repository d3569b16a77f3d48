package raycast

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// testRoom is an 8x8 map whose open area spans tiles 1-4 on both axes, so
// walls face the player at x = 5 and y = 5.
func testRoom(t *testing.T) *maploader.Map {
	return mustMap(t, 8, 8, []string{
		"########",
		"#....###",
		"#....###",
		"#....###",
		"#....###",
		"########",
		"########",
		"########",
	})
}

func mustMap(t *testing.T, width, height int, rows []string) *maploader.Map {
	t.Helper()
	m, err := maploader.New(width, height, rows)
	if err != nil {
		t.Fatalf("Failed to build test map: %v", err)
	}
	return m
}

// Canonical coordinates of tile centre 2.5.
const centre = 2*PositionScale + PositionScale/2

// Axis angles in canonical units.
const (
	facingPosY int16 = 0
	facingPosX int16 = AngleScale / 4
	facingNegY int16 = AngleScale / 2
	facingNegX int16 = 3 * AngleScale / 4
)

func TestNewKinds(t *testing.T) {
	m := testRoom(t)
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		if c == nil {
			t.Fatalf("New(%s) returned nil", kind)
		}
		c.Destruct()
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("bogus", testRoom(t)); err == nil {
		t.Error("Expected an error for an unknown kind")
	}

	for _, kind := range Kinds() {
		c, err := New(kind, nil)
		if !errors.Is(err, ErrAllocationFailure) {
			t.Errorf("New(%s, nil): expected ErrAllocationFailure, got %v", kind, err)
		}
		if c != nil {
			t.Errorf("New(%s, nil) returned a tracer alongside the error", kind)
		}
	}
}

func TestDestructTwice(t *testing.T) {
	m := testRoom(t)
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		c.Start(centre, centre, facingPosX)
		c.Destruct()
		c.Destruct()
		if col := c.Trace(ScreenWidth / 2); col != (Column{}) {
			t.Errorf("%s: Trace after Destruct returned %+v", kind, col)
		}
	}
}

func TestTraceOutOfRangeColumn(t *testing.T) {
	m := testRoom(t)
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		c.Start(centre, centre, facingPosX)
		for _, x := range []int{-1, ScreenWidth, ScreenWidth * 4} {
			if col := c.Trace(x); col != (Column{}) {
				t.Errorf("%s: Trace(%d) returned %+v", kind, x, col)
			}
		}
		c.Destruct()
	}
}

func TestStartTraceIdempotent(t *testing.T) {
	m := maploader.Default()
	spawn := m.Spawn()
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}

		c.Start(spawn.X, spawn.Y, spawn.Angle)
		first := make([]Column, ScreenWidth)
		for x := range first {
			first[x] = c.Trace(x)
		}

		// A different pose in between must not leak into the repeat.
		c.Start(centre, centre, facingNegY)
		c.Trace(0)

		c.Start(spawn.X, spawn.Y, spawn.Angle)
		for x := range first {
			if got := c.Trace(x); got != first[x] {
				t.Fatalf("%s: column %d differs on repeat: %+v vs %+v", kind, x, got, first[x])
			}
		}
		c.Destruct()
	}
}

func TestSampledRowsStayInTexture(t *testing.T) {
	m := maploader.Default()
	spawn := m.Spawn()

	poses := []struct {
		x, y  uint16
		angle int16
	}{
		{spawn.X, spawn.Y, spawn.Angle},
		{centre, centre, 0},
		{5*PositionScale - 26, 3*PositionScale + 128, facingPosX},   // close to a wall
		{1*PositionScale + 3, 1*PositionScale + 3, facingNegX + 10}, // hugging a corner
		{18*PositionScale + 128, 18*PositionScale + 128, 333},
	}

	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		for _, p := range poses {
			c.Start(p.x, p.y, p.angle)
			for x := 0; x < ScreenWidth; x++ {
				col := c.Trace(x)
				if col.ScreenY < 0 || col.ScreenY > HorizonHeight {
					t.Fatalf("%s: pose %+v column %d: ScreenY %d out of range", kind, p, x, col.ScreenY)
				}
				if col.ScreenY == 0 {
					continue
				}
				end := uint64(col.TextureY) + uint64(2*col.ScreenY)*uint64(col.TextureStep)
				if end > 1<<16 {
					t.Fatalf("%s: pose %+v column %d: texture rows run to %d", kind, p, x, end)
				}
			}
		}
		c.Destruct()
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	c, err := NewFloat(testRoom(t))
	if err != nil {
		t.Fatalf("NewFloat failed: %v", err)
	}
	c.Destruct()

	out := buf.String()
	if !strings.Contains(out, "float tracer constructed") || !strings.Contains(out, "float tracer destructed") {
		t.Errorf("Expected construct and destruct records, got:\n%s", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Default logger should be disabled")
	}
}

// longCorridor is a 250x3 map with a single open row at y = 1.
func longCorridor(t *testing.T) *maploader.Map {
	wall := strings.Repeat("#", 250)
	return mustMap(t, 250, 3, []string{
		wall,
		"#" + strings.Repeat(".", 248) + "#",
		wall,
	})
}

func TestFarWallIsDrawn(t *testing.T) {
	m := longCorridor(t)
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}

		// The end wall at x = 249 is 98.5 tiles away, beyond InvFactor.
		c.Start(150*PositionScale+128, PositionScale+128, facingPosX)
		col := c.Trace(ScreenWidth / 2)
		if col.ScreenY < 1 || col.ScreenY > 2 {
			t.Errorf("%s: far wall half-height %d, expected 1 or 2", kind, col.ScreenY)
		}
		if col.TextureNo != 1 {
			t.Errorf("%s: expected a vertical hit, got texture %d", kind, col.TextureNo)
		}
		c.Destruct()
	}
}

func TestExhaustedWalksDrawNothing(t *testing.T) {
	m := longCorridor(t)
	for _, kind := range Kinds() {
		c, err := New(kind, m)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}

		// The end wall is 243.5 tiles away, past the walk limit, and the
		// centre ray runs parallel to the side walls.
		c.Start(5*PositionScale+128, PositionScale+128, facingPosX)
		if col := c.Trace(ScreenWidth / 2); col.ScreenY != 0 || col.TextureStep != 0 {
			t.Errorf("%s: expected no wall, got %+v", kind, col)
		}
		c.Destruct()
	}
}
