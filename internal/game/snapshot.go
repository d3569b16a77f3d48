package game

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/raycaster/internal/render/frame"
	"chosenoffset.com/raycaster/internal/world/texture"
)

// Snapshot traces both views at the current pose and returns them side by
// side at scale 1, separated like the window.
func (g *Game) Snapshot() *image.RGBA {
	sep := g.Config.Window.Separator
	img := image.NewRGBA(image.Rect(0, 0, 2*frame.Width+sep, frame.Height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(separatorColor), image.Point{}, xdraw.Src)

	for i, v := range g.Views {
		v.Renderer.TraceFrame(g.State, &v.Buffer)
		x0 := i * (frame.Width + sep)
		for y := 0; y < frame.Height; y++ {
			for x := 0; x < frame.Width; x++ {
				img.SetRGBA(x0+x, y, texture.Unpack(v.Buffer.At(x, y)))
			}
		}
	}
	return img
}

// WriteSnapshot renders a snapshot and writes it as PNG or BMP depending on
// the file extension.
func (g *Game) WriteSnapshot(path string) error {
	return texture.WriteImage(path, g.Snapshot())
}

// separatorColor is the color between the two frames.
var separatorColor = color.RGBA{0, 0, 0, 0xFF}
