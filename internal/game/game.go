package game

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"undermarch/internal/agent"
	"undermarch/internal/config"
	"undermarch/internal/pathfinding"
	"undermarch/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const hudHeight = 48

var (
	colorBackground = color.RGBA{18, 16, 20, 255}
	colorUnknown    = color.RGBA{60, 30, 30, 255}
	colorRawPath    = color.RGBA{220, 140, 40, 255}
	colorSmoothPath = color.RGBA{80, 220, 120, 255}
	colorWalker     = color.RGBA{240, 240, 240, 255}
	colorTarget     = color.RGBA{220, 70, 70, 255}
)

// Game is the interactive room viewer: it renders the current room,
// walks an actor to mouse clicks via the pathfinder, and reloads assets
// when they change on disk.
type Game struct {
	cfg      *config.Config
	tiles    *world.TileManager
	mapPaths []string
	mapIndex int

	room   *world.Room
	finder *pathfinding.Finder
	walker *agent.Walker

	// rawPath is the unsmoothed route of the last click, kept for the
	// comparison overlay.
	rawPath pathfinding.Path
	showRaw bool

	watcher *Watcher
	status  string

	scale   float64
	offsetX float64
	offsetY float64
}

// New creates the viewer over the given map files and loads the first
// one.
func New(cfg *config.Config, tiles *world.TileManager, mapPaths []string) (*Game, error) {
	if len(mapPaths) == 0 {
		return nil, fmt.Errorf("no map files found")
	}

	g := &Game{
		cfg:      cfg,
		tiles:    tiles,
		mapPaths: mapPaths,
	}
	if err := g.loadRoom(0); err != nil {
		return nil, err
	}

	watcher, err := NewWatcher(filepath.Dir(cfg.Assets.TilesFile), cfg.Assets.MapsDir)
	if err != nil {
		log.Printf("Warning: asset watching disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) loadRoom(index int) error {
	loader := world.NewMapLoader(g.tiles, g.cfg.GetTileSize())
	room, err := loader.LoadRoom(g.mapPaths[index])
	if err != nil {
		return err
	}

	finder := pathfinding.NewFinder(room, g.cfg.GetTileSize(), g.cfg.Pathfinding.FootprintWidth)
	finder.MaxExpansions = g.cfg.Pathfinding.MaxExpansions

	startX, startY := room.StartPosition()

	g.mapIndex = index
	g.room = room
	g.finder = finder
	g.walker = agent.NewWalker(room, finder, startX, startY, g.cfg.GetMoveSpeed())
	g.rawPath = nil
	g.computeViewport()
	g.status = fmt.Sprintf("%s  %dx%d tiles", room.Name, room.Width, room.Height)
	return nil
}

// reloadAssets re-reads the tile config and the current map after an
// on-disk edit. A broken edit keeps the previous room.
func (g *Game) reloadAssets() {
	if err := g.tiles.LoadTileConfig(g.cfg.Assets.TilesFile); err != nil {
		log.Printf("Warning: tile reload failed: %v", err)
		return
	}
	if err := g.loadRoom(g.mapIndex); err != nil {
		log.Printf("Warning: map reload failed: %v", err)
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := (g.mapIndex + 1) % len(g.mapPaths)
		if err := g.loadRoom(next); err != nil {
			log.Printf("Warning: failed to load %s: %v", g.mapPaths[next], err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.showRaw = !g.showRaw
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		sx, sy := ebiten.CursorPosition()
		if x, y, ok := g.screenToLocal(sx, sy); ok {
			g.rawPath = g.finder.BuildPathLocal(g.walker.X, g.walker.Y, x, y)
			g.walker.SetTarget(x, y)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		sx, sy := ebiten.CursorPosition()
		if x, y, ok := g.screenToLocal(sx, sy); ok {
			cell := g.room.LocalToGridPoint(x, y)
			if g.room.Walkable(cell.Row, cell.Col) {
				g.room.SetCost(cell.Row, cell.Col, 0)
			} else {
				g.room.SetCost(cell.Row, cell.Col, 1)
			}
			g.walker.Replan()
		}
	}

	g.walker.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case <-g.watcher.Reload:
		g.reloadAssets()
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	tilePx := float32(g.room.TileSize * g.scale)
	for row := 0; row < g.room.Height; row++ {
		for col := 0; col < g.room.Width; col++ {
			sx, sy := g.localToScreen(float64(col)*g.room.TileSize, float64(row)*g.room.TileSize)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), tilePx-1, tilePx-1, g.tileColor(row, col), false)
		}
	}

	if g.showRaw {
		g.drawPath(screen, g.rawPath, colorRawPath, false)
	}
	g.drawPath(screen, g.walker.Path(), colorSmoothPath, true)

	if tx, ty, ok := g.walker.Target(); ok {
		sx, sy := g.localToScreen(tx, ty)
		vector.StrokeCircle(screen, float32(sx), float32(sy), tilePx/4, 2, colorTarget, false)
	}

	wx, wy := g.localToScreen(g.walker.X, g.walker.Y)
	radius := tilePx * float32(g.cfg.Pathfinding.FootprintWidth) / 2
	vector.DrawFilledCircle(screen, float32(wx), float32(wy), radius, colorWalker, false)

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	baseY := g.cfg.GetScreenHeight() - hudHeight
	ebitext.Draw(screen, g.status, basicfont.Face7x13, 8, baseY+18, color.White)

	detail := fmt.Sprintf("raw %d -> smoothed %d waypoints", len(g.rawPath), len(g.walker.Path()))
	if !g.walker.HasTarget() {
		detail = "idle"
	}
	ebitenutil.DebugPrintAt(screen, detail, 8, baseY+24)
	ebitenutil.DebugPrintAt(screen, "click: walk   right-click: toggle wall   tab: next map   r: raw path overlay", 240, baseY+24)
}

// drawPath renders a route as a polyline between tile centers, with
// optional waypoint dots.
func (g *Game) drawPath(screen *ebiten.Image, path pathfinding.Path, clr color.RGBA, dots bool) {
	for i := 1; i < len(path); i++ {
		x1, y1 := g.room.TileCenter(path[i-1])
		x2, y2 := g.room.TileCenter(path[i])
		sx1, sy1 := g.localToScreen(x1, y1)
		sx2, sy2 := g.localToScreen(x2, y2)
		vector.StrokeLine(screen, float32(sx1), float32(sy1), float32(sx2), float32(sy2), 2, clr, false)
	}
	if !dots {
		return
	}
	for _, p := range path {
		x, y := g.room.TileCenter(p)
		sx, sy := g.localToScreen(x, y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 3, clr, false)
	}
}

func (g *Game) tileColor(row, col int) color.RGBA {
	if letter := g.room.Letter(row, col); letter != 0 {
		if tile, ok := g.tiles.ByLetter(letter); ok {
			if clr, err := parseHexColor(tile.Color); err == nil {
				return clr
			}
		}
	}
	cost := g.room.Cost(row, col)
	if cost == 0 {
		return colorUnknown
	}
	// Fallback shading: more expensive terrain renders darker.
	shade := uint8(170 - 20*min(int(cost), 5))
	return color.RGBA{shade, shade, shade, 255}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

// computeViewport fits the current room into the screen area above the
// HUD and centers it.
func (g *Game) computeViewport() {
	roomW := float64(g.room.Width) * g.room.TileSize
	roomH := float64(g.room.Height) * g.room.TileSize
	availW := float64(g.cfg.GetScreenWidth())
	availH := float64(g.cfg.GetScreenHeight() - hudHeight)

	g.scale = availW / roomW
	if s := availH / roomH; s < g.scale {
		g.scale = s
	}
	g.offsetX = (availW - roomW*g.scale) / 2
	g.offsetY = (availH - roomH*g.scale) / 2
}

func (g *Game) localToScreen(x, y float64) (float64, float64) {
	return g.offsetX + x*g.scale, g.offsetY + y*g.scale
}

func (g *Game) screenToLocal(sx, sy int) (x, y float64, ok bool) {
	x = (float64(sx) - g.offsetX) / g.scale
	y = (float64(sy) - g.offsetY) / g.scale
	row, col := int(y/g.room.TileSize), int(x/g.room.TileSize)
	if !g.room.InBounds(row, col) {
		return 0, 0, false
	}
	return x, y, true
}

// parseHexColor parses "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{r, g, b, 255}, nil
}
