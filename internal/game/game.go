package game

import (
	"fmt"
	"log"
	"math"
	"time"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/gamestate"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/frame"
	"chosenoffset.com/raycaster/internal/world/maploader"
	"chosenoffset.com/raycaster/internal/world/texture"
)

// tickDuration is the length of one movement tick.
const tickDuration = time.Second / gamestate.TicksPerSecond

// messageDuration is how long an on-screen message stays, in seconds.
const messageDuration = 3.0

// Game holds all game state and logic.
type Game struct {
	Config *config.Config
	Map    *maploader.Map
	State  *gamestate.State
	Views  [2]*View // left, right

	// Host services, set by the caller before Update/Draw
	Renderer render.Renderer
	InputMgr render.InputManager
	Engine   render.Engine

	// UI state
	ShowFPS  bool
	Messages []Message

	now        func() time.Time
	lastUpdate time.Time
	pix        []byte
}

// New creates a game on m with one caster per side as configured.
func New(cfg *config.Config, m *maploader.Map, atlas *texture.Atlas) (*Game, error) {
	if m == nil {
		return nil, fmt.Errorf("new game: %w", raycast.ErrAllocationFailure)
	}

	spawn := m.Spawn()
	g := &Game{
		Config: cfg,
		Map:    m,
		State: gamestate.New(
			gamestate.Pose{X: spawn.X, Y: spawn.Y, Angle: spawn.Angle},
			m.Width(), m.Height(),
			gamestate.Speeds{Move: cfg.Movement.MoveSpeed, Turn: cfg.Movement.TurnSpeed},
		),
		ShowFPS: cfg.Window.ShowFPS,
		now:     time.Now,
	}

	for i, kind := range []raycast.Kind{cfg.Casters.Left, cfg.Casters.Right} {
		caster, err := raycast.New(kind, m)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to create %s caster: %w", kind, err)
		}
		g.Views[i] = &View{Kind: kind, Renderer: frame.NewRenderer(caster, atlas)}
	}
	return g, nil
}

// Close releases the casters and images.
func (g *Game) Close() {
	for _, v := range g.Views {
		if v == nil {
			continue
		}
		v.Renderer.Caster().Destruct()
		if v.Image != nil {
			v.Image.Dispose()
			v.Image = nil
		}
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyF) {
		g.ShowFPS = !g.ShowFPS
		if g.ShowFPS {
			g.ShowMessage("FPS overlay on")
		} else {
			g.ShowMessage("FPS overlay off")
		}
	}

	ticks := g.elapsedTicks()
	g.State.Move(g.moveDirection(), g.rotateDirection(), ticks)
	g.updateMessages(float64(ticks) / gamestate.TicksPerSecond)
	return nil
}

// elapsedTicks converts the wall time since the previous update to movement
// ticks. The sub-tick remainder carries over to the next update.
func (g *Game) elapsedTicks() uint16 {
	now := g.now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
		return 0
	}

	n := now.Sub(g.lastUpdate) / tickDuration
	if n <= 0 {
		return 0
	}
	g.lastUpdate = g.lastUpdate.Add(n * tickDuration)
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(n)
}

func (g *Game) moveDirection() int {
	dir := 0
	if g.InputMgr.IsKeyPressed(render.KeyUp) || g.InputMgr.IsKeyPressed(render.KeyW) {
		dir++
	}
	if g.InputMgr.IsKeyPressed(render.KeyDown) || g.InputMgr.IsKeyPressed(render.KeyS) {
		dir--
	}
	return dir
}

func (g *Game) rotateDirection() int {
	dir := 0
	if g.InputMgr.IsKeyPressed(render.KeyRight) || g.InputMgr.IsKeyPressed(render.KeyD) {
		dir++
	}
	if g.InputMgr.IsKeyPressed(render.KeyLeft) || g.InputMgr.IsKeyPressed(render.KeyA) {
		dir--
	}
	return dir
}

// Layout returns the game's logical screen size: both frames and the
// separator, upscaled.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

// ScreenSize returns the window size in pixels.
func (g *Game) ScreenSize() (int, int) {
	scale := g.Config.Window.Scale
	return scale * (2*frame.Width + g.Config.Window.Separator), scale * frame.Height
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
	})

	log.Printf("Message: %s", text)
}
