package main

import (
	"log"
	"path/filepath"
	"sort"

	"undermarch/internal/config"
	"undermarch/internal/game"
	"undermarch/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load tile definitions
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.Assets.TilesFile); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}

	mapPaths, err := filepath.Glob(filepath.Join(cfg.Assets.MapsDir, "*.map"))
	if err != nil {
		log.Fatalf("Failed to list maps: %v", err)
	}
	sort.Strings(mapPaths)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g, err := game.New(cfg, tiles, mapPaths)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
