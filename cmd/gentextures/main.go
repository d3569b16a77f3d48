package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/raycaster/internal/world/texture"
)

func main() {
	outDir := flag.String("out", "data/textures", "Directory to write the textures to")
	format := flag.String("format", "bmp", "Image format: bmp or png")
	flag.Parse()

	fmt.Println("RayCaster Texture Generator")
	fmt.Println("===========================")
	fmt.Println()

	if err := generate(*outDir, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Point level.textures in config.json at these files.")
}

func generate(outDir, format string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	atlas := texture.Default()
	for i := 0; i < atlas.Len(); i++ {
		path := filepath.Join(outDir, fmt.Sprintf("wall%d.%s", i, format))
		if err := texture.Save(path, atlas.Texture(i)); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", path)
	}
	return nil
}
