// Package texture provides the wall texture atlas sampled by the frame
// renderer. Textures are square bitmaps of packed RGBA pixels.
package texture

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Size is the width and height of every texture in texels.
const Size = 64

// Texture is a Size x Size bitmap stored row-major. Each texel is packed as
// 0xRRGGBBAA.
type Texture struct {
	Pix [Size * Size]uint32
}

// At returns the packed texel at (x, y). Coordinates wrap.
func (t *Texture) At(x, y int) uint32 {
	return t.Pix[(y&(Size-1))*Size+x&(Size-1)]
}

// Image converts the texture to an *image.RGBA.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			img.SetRGBA(x, y, Unpack(t.At(x, y)))
		}
	}
	return img
}

// FromImage resamples img to Size x Size with nearest-neighbour sampling.
func FromImage(img image.Image) *Texture {
	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	t := &Texture{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			t.Pix[y*Size+x] = Pack(dst.RGBAAt(x, y))
		}
	}
	return t
}

// Shaded returns a copy of t with every colour channel scaled by num/den.
func (t *Texture) Shaded(num, den uint32) *Texture {
	out := &Texture{}
	for i, p := range t.Pix {
		c := Unpack(p)
		c.R = uint8(uint32(c.R) * num / den)
		c.G = uint8(uint32(c.G) * num / den)
		c.B = uint8(uint32(c.B) * num / den)
		out.Pix[i] = Pack(c)
	}
	return out
}

// Atlas is an ordered set of textures indexed by texture number.
type Atlas struct {
	textures []*Texture
}

// NewAtlas builds an atlas from the given textures.
func NewAtlas(textures ...*Texture) (*Atlas, error) {
	if len(textures) == 0 {
		return nil, fmt.Errorf("atlas needs at least one texture")
	}
	for i, t := range textures {
		if t == nil {
			return nil, fmt.Errorf("texture %d is nil", i)
		}
	}
	return &Atlas{textures: textures}, nil
}

// Texture returns texture no. Out-of-range numbers fall back to the last
// texture.
func (a *Atlas) Texture(no int) *Texture {
	if no < 0 || no >= len(a.textures) {
		return a.textures[len(a.textures)-1]
	}
	return a.textures[no]
}

// Len returns the number of textures.
func (a *Atlas) Len() int {
	return len(a.textures)
}

// Pack packs c as 0xRRGGBBAA.
func Pack(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Unpack is the inverse of Pack.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 24), G: uint8(p >> 16), B: uint8(p >> 8), A: uint8(p)}
}

// Gray packs an opaque gray level.
func Gray(v uint8) uint32 {
	return Pack(color.RGBA{R: v, G: v, B: v, A: 0xFF})
}
