package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/game"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
	"chosenoffset.com/raycaster/internal/world/maploader"
	"chosenoffset.com/raycaster/internal/world/texture"
)

func main() {
	configPath := flag.String("config", "config.json", "Config file (defaults are used when missing)")
	mapPath := flag.String("map", "", "Level file to load, overrides level.map")
	snapshotPath := flag.String("snapshot", "", "Render one frame of both casters to a .png or .bmp file and exit")
	verbose := flag.Bool("verbose", false, "Log ray caster internals")
	listDir := flag.String("list", "", "List the levels in a directory (e.g. data/maps) and exit")
	flag.Parse()

	if *listDir != "" {
		listLevels(*listDir)
		return
	}

	if *verbose {
		raycast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mapPath != "" {
		cfg.Level.MapPath = *mapPath
	}

	gameMap := maploader.Default()
	if cfg.Level.MapPath != "" {
		gameMap, err = maploader.LoadMap(cfg.Level.MapPath)
		if err != nil {
			log.Fatalf("Failed to load map: %v", err)
		}
	}
	log.Printf("Loaded map %q (%dx%d)", gameMap.Name(), gameMap.Width(), gameMap.Height())

	atlas := texture.Default()
	if len(cfg.Level.Textures) > 0 {
		atlas, err = texture.Load(context.Background(), cfg.Level.Textures)
		if err != nil {
			log.Fatalf("Failed to load textures: %v", err)
		}
	}
	log.Printf("Loaded %d textures", atlas.Len())

	g, err := game.New(cfg, gameMap, atlas)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	defer g.Close()

	if *snapshotPath != "" {
		if err := g.WriteSnapshot(*snapshotPath); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("Wrote snapshot to %s", *snapshotPath)
		return
	}

	// Initialize the renderer backend (ebiten)
	g.Renderer = ebitenrender.NewRenderer()
	g.InputMgr = ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()
	g.Engine = engine

	// Set up the window
	engine.SetWindowSize(g.ScreenSize())
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(false)
	engine.SetTPS(cfg.Window.TPS)

	log.Printf("Starting %s vs. %s...", cfg.Casters.Left, cfg.Casters.Right)
	if err := engine.RunGame(g); err != nil {
		g.Close()
		log.Fatal(err)
	}
}

func listLevels(dir string) {
	log.Println("Scanning for levels...")
	levels, skipped, err := maploader.ScanLevels(dir)
	if err != nil {
		log.Fatalf("Failed to scan levels: %v", err)
	}
	for path, err := range skipped {
		log.Printf("Warning: skipping %s: %v", path, err)
	}
	for _, level := range levels {
		fmt.Printf("%-16s %3dx%-3d %s\n", level.Name, level.Width, level.Height, level.Path)
	}
}
