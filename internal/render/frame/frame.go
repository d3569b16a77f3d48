// Package frame turns per-column ray hits into a full frame of pixels.
package frame

import (
	"chosenoffset.com/raycaster/internal/core/gamestate"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/world/texture"
)

// Screen size of every frame.
const (
	Width  = raycast.ScreenWidth
	Height = raycast.ScreenHeight
)

// skyFloorBase is the gray level at the horizon; the sky and floor brighten
// linearly away from it.
const skyFloorBase = 96

// PoseSource supplies the pose for a frame.
type PoseSource interface {
	Pose() gamestate.Pose
}

// Buffer is a row-major frame of packed 0xRRGGBBAA pixels.
type Buffer struct {
	Pix [Width * Height]uint32
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) uint32 {
	return b.Pix[y*Width+x]
}

// RGBA expands the buffer into 8-bit RGBA bytes, reusing dst when it is
// large enough.
func (b *Buffer) RGBA(dst []byte) []byte {
	if cap(dst) < len(b.Pix)*4 {
		dst = make([]byte, len(b.Pix)*4)
	}
	dst = dst[:len(b.Pix)*4]
	for i, p := range b.Pix {
		dst[i*4] = byte(p >> 24)
		dst[i*4+1] = byte(p >> 16)
		dst[i*4+2] = byte(p >> 8)
		dst[i*4+3] = byte(p)
	}
	return dst
}

// Renderer paints frames from one ray caster.
type Renderer struct {
	caster raycast.RayCaster
	atlas  *texture.Atlas
	sky    [raycast.HorizonHeight]uint32
}

// NewRenderer creates a renderer drawing caster's view with atlas.
func NewRenderer(caster raycast.RayCaster, atlas *texture.Atlas) *Renderer {
	r := &Renderer{caster: caster, atlas: atlas}
	for d := range r.sky {
		r.sky[d] = texture.Gray(uint8(skyFloorBase + d))
	}
	return r
}

// Caster returns the ray caster the renderer drives.
func (r *Renderer) Caster() raycast.RayCaster {
	return r.caster
}

// TraceFrame starts the caster at the current pose and overwrites fb with
// one traced column per screen column.
func (r *Renderer) TraceFrame(state PoseSource, fb *Buffer) {
	pose := state.Pose()
	r.caster.Start(pose.X, pose.Y, pose.Angle)

	for x := 0; x < Width; x++ {
		r.drawColumn(fb, x, r.caster.Trace(x))
	}
}

// drawColumn paints sky, wall and floor for one column.
func (r *Renderer) drawColumn(fb *Buffer, x int, col raycast.Column) {
	half := min(col.ScreenY, raycast.HorizonHeight)
	sky := raycast.HorizonHeight - half

	y := 0
	for ; y < sky; y++ {
		fb.Pix[y*Width+x] = r.sky[raycast.HorizonHeight-1-y]
	}

	tex := r.atlas.Texture(int(col.TextureNo))
	tx := int(col.TextureX) >> 2
	to := col.TextureY
	for end := sky + 2*half; y < end; y++ {
		// TextureY/TextureStep use 1<<16 per texture height; a texture is
		// 64 texels tall.
		ty := min(int(to>>10), texture.Size-1)
		fb.Pix[y*Width+x] = tex.At(tx, ty)
		to += col.TextureStep
	}

	for ; y < Height; y++ {
		fb.Pix[y*Width+x] = r.sky[y-raycast.HorizonHeight]
	}
}
