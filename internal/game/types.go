package game

import (
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/frame"
)

// View is one half of the window: a caster, its frame buffer and the image
// the buffer is uploaded to.
type View struct {
	Kind     raycast.Kind
	Renderer *frame.Renderer
	Buffer   frame.Buffer
	Image    render.Image // created on first Draw
}

// Message represents an on-screen message that expires after a while.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
}
