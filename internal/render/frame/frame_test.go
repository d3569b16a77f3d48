package frame

import (
	"image/color"
	"testing"

	"chosenoffset.com/raycaster/internal/core/gamestate"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/world/maploader"
	"chosenoffset.com/raycaster/internal/world/texture"
)

// stubCaster returns the same column everywhere and records the pose.
type stubCaster struct {
	col     raycast.Column
	started gamestate.Pose
	traced  int
}

func (s *stubCaster) Start(x, y uint16, angle int16) {
	s.started = gamestate.Pose{X: x, Y: y, Angle: angle}
}

func (s *stubCaster) Trace(int) raycast.Column {
	s.traced++
	return s.col
}

func (s *stubCaster) Destruct() {}

type fixedPose gamestate.Pose

func (p fixedPose) Pose() gamestate.Pose { return gamestate.Pose(p) }

// solidAtlas has a red texture 0 and a blue texture 1.
func solidAtlas(t *testing.T) *texture.Atlas {
	t.Helper()
	red, blue := &texture.Texture{}, &texture.Texture{}
	for i := range red.Pix {
		red.Pix[i] = texture.Pack(color.RGBA{R: 0xFF, A: 0xFF})
		blue.Pix[i] = texture.Pack(color.RGBA{B: 0xFF, A: 0xFF})
	}
	a, err := texture.NewAtlas(red, blue)
	if err != nil {
		t.Fatalf("NewAtlas failed: %v", err)
	}
	return a
}

func TestTraceFrameLayout(t *testing.T) {
	caster := &stubCaster{col: raycast.Column{ScreenY: 38, TextureNo: 1, TextureStep: 1 << 16 / 76}}
	r := NewRenderer(caster, solidAtlas(t))

	pose := fixedPose{X: 100, Y: 200, Angle: 300}
	var fb Buffer
	r.TraceFrame(pose, &fb)

	if caster.started != gamestate.Pose(pose) {
		t.Errorf("Caster started at %+v, expected %+v", caster.started, pose)
	}
	if caster.traced != Width {
		t.Errorf("Expected %d traced columns, got %d", Width, caster.traced)
	}

	const skyRows = raycast.HorizonHeight - 38
	blue := texture.Pack(color.RGBA{B: 0xFF, A: 0xFF})
	for _, x := range []int{0, Width / 2, Width - 1} {
		// Sky brightens away from the horizon.
		if got, want := fb.At(x, 0), texture.Gray(skyFloorBase+raycast.HorizonHeight-1); got != want {
			t.Errorf("Column %d top: got %08x, expected %08x", x, got, want)
		}
		if got, want := fb.At(x, skyRows-1), texture.Gray(skyFloorBase+38); got != want {
			t.Errorf("Column %d last sky row: got %08x, expected %08x", x, got, want)
		}
		for y := skyRows; y < skyRows+2*38; y++ {
			if got := fb.At(x, y); got != blue {
				t.Fatalf("Column %d row %d: expected wall texel, got %08x", x, y, got)
			}
		}
		if got, want := fb.At(x, skyRows+2*38), texture.Gray(skyFloorBase+38); got != want {
			t.Errorf("Column %d first floor row: got %08x, expected %08x", x, got, want)
		}
		if got, want := fb.At(x, Height-1), texture.Gray(skyFloorBase+raycast.HorizonHeight-1); got != want {
			t.Errorf("Column %d bottom: got %08x, expected %08x", x, got, want)
		}
	}
}

func TestTraceFrameNoWall(t *testing.T) {
	r := NewRenderer(&stubCaster{}, solidAtlas(t))

	var fb Buffer
	r.TraceFrame(fixedPose{}, &fb)
	for y := 0; y < Height; y++ {
		want := r.sky[raycast.HorizonHeight-1-y%raycast.HorizonHeight]
		if y >= raycast.HorizonHeight {
			want = r.sky[y-raycast.HorizonHeight]
		}
		if got := fb.At(Width/2, y); got != want {
			t.Fatalf("Row %d: got %08x, expected sky/floor %08x", y, got, want)
		}
	}
}

func TestTraceFrameSamplesTextureRows(t *testing.T) {
	// Each texture row has its own colour so the sampled row is visible.
	rows := &texture.Texture{}
	for y := 0; y < texture.Size; y++ {
		for x := 0; x < texture.Size; x++ {
			rows.Pix[y*texture.Size+x] = texture.Gray(uint8(y))
		}
	}
	atlas, err := texture.NewAtlas(rows)
	if err != nil {
		t.Fatalf("NewAtlas failed: %v", err)
	}

	// A clipped wall starting a quarter into the texture and covering half of it.
	col := raycast.Column{
		ScreenY:     raycast.HorizonHeight,
		TextureY:    1 << 14,
		TextureStep: 1 << 15 / raycast.ScreenHeight,
	}
	r := NewRenderer(&stubCaster{col: col}, atlas)
	var fb Buffer
	r.TraceFrame(fixedPose{}, &fb)

	if got, want := fb.At(0, 0), texture.Gray(16); got != want {
		t.Errorf("Top row should sample texture row 16, got %08x", got)
	}
	if got, want := fb.At(0, Height-1), texture.Gray(47); got != want {
		t.Errorf("Bottom row should sample texture row 47, got %08x", got)
	}
}

func TestTraceFrameWithRealCaster(t *testing.T) {
	m := maploader.Default()
	caster, err := raycast.New(raycast.KindFixed, m)
	if err != nil {
		t.Fatalf("raycast.New failed: %v", err)
	}
	defer caster.Destruct()

	r := NewRenderer(caster, solidAtlas(t))
	spawn := m.Spawn()
	var fb Buffer
	r.TraceFrame(fixedPose{X: spawn.X, Y: spawn.Y, Angle: spawn.Angle}, &fb)

	// The horizon row is always inside a wall span in a closed map.
	sky := r.sky[0]
	for x := 0; x < Width; x++ {
		if fb.At(x, raycast.HorizonHeight) == sky {
			t.Fatalf("Column %d has no wall at the horizon", x)
		}
	}
}

func TestBufferRGBA(t *testing.T) {
	var fb Buffer
	fb.Pix[0] = 0x11223344
	fb.Pix[len(fb.Pix)-1] = 0xAABBCCDD

	pix := fb.RGBA(nil)
	if len(pix) != Width*Height*4 {
		t.Fatalf("Expected %d bytes, got %d", Width*Height*4, len(pix))
	}
	if pix[0] != 0x11 || pix[1] != 0x22 || pix[2] != 0x33 || pix[3] != 0x44 {
		t.Errorf("First pixel unpacked as %v", pix[:4])
	}
	if n := len(pix); pix[n-4] != 0xAA || pix[n-1] != 0xDD {
		t.Errorf("Last pixel unpacked as %v", pix[n-4:])
	}

	again := fb.RGBA(pix)
	if &again[0] != &pix[0] {
		t.Error("RGBA should reuse a large enough buffer")
	}
}
