package texture

// Brick layout of the generated wall texture, in texels.
const (
	brickWidth  = 16
	brickHeight = 8
	mortar      = 1
)

// Gray levels of the generated texture.
const (
	mortarShade = 40
	brickShade  = 200
	edgeShade   = 150
)

// Default returns the built-in atlas: texture 0 is a brick wall used for
// horizontal grid-line hits and texture 1 is the same wall at half brightness
// for vertical grid-line hits, which gives corners visible contrast.
func Default() *Atlas {
	bricks := Bricks()
	a, _ := NewAtlas(bricks, bricks.Shaded(1, 2))
	return a
}

// Bricks generates a running-bond brick texture in shades of gray.
func Bricks() *Texture {
	t := &Texture{}
	for y := 0; y < Size; y++ {
		row := y / brickHeight
		inRowY := y % brickHeight
		// Every other course is offset by half a brick.
		shift := 0
		if row%2 == 1 {
			shift = brickWidth / 2
		}
		for x := 0; x < Size; x++ {
			inBrickX := (x + shift) % brickWidth

			var v uint8
			switch {
			case inRowY < mortar || inBrickX < mortar:
				v = mortarShade
			case inRowY == brickHeight-1 || inBrickX == brickWidth-1:
				v = edgeShade
			default:
				v = brickShade - uint8(noise(x, y)%24)
			}
			t.Pix[y*Size+x] = Gray(v)
		}
	}
	return t
}

// noise is a small deterministic hash used to roughen brick faces.
func noise(x, y int) uint32 {
	h := uint32(x)*0x9E3779B1 ^ uint32(y)*0x85EBCA77
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	return h
}
