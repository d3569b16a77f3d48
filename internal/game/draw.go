package game

import (
	"fmt"

	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/frame"
)

// Draw renders both frames side by side to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(separatorColor)

	scale := float64(g.Config.Window.Scale)
	for i, v := range g.Views {
		g.traceView(v)

		x := float64(i * (frame.Width + g.Config.Window.Separator))
		geoM := render.NewGeoM()
		geoM.Translate(x, 0)
		geoM.Scale(scale, scale)
		screen.DrawImage(v.Image, &render.DrawImageOptions{GeoM: geoM})
	}

	g.drawUI(screen)
}

// traceView renders a view into its buffer and uploads it.
func (g *Game) traceView(v *View) {
	if v.Image == nil {
		v.Image = g.Renderer.NewImage(frame.Width, frame.Height)
	}
	v.Renderer.TraceFrame(g.State, &v.Buffer)
	g.pix = v.Buffer.RGBA(g.pix)
	v.Image.WritePixels(g.pix)
}

func (g *Game) drawUI(screen render.Image) {
	scale := g.Config.Window.Scale
	for i, v := range g.Views {
		x := i * (frame.Width + g.Config.Window.Separator) * scale
		g.Renderer.DrawText(screen, string(v.Kind), x+4, 4)
	}

	if g.ShowFPS && g.Engine != nil {
		g.Renderer.DrawText(screen, fmt.Sprintf("FPS: %0.1f", g.Engine.ActualFPS()), 4, 20)
	}

	// Draw on-screen messages
	y := 36
	for _, msg := range g.Messages {
		g.Renderer.DrawText(screen, msg.Text, 4, y)
		y += 16
	}
}
