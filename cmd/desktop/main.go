// Command desktop opens a window showing the compiler report for one
// program and recompiles it whenever the file changes.
package main

import (
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/reusee/dscope"
	"golang.org/x/image/font/basicfont"

	"tsmini/pkg/compiler"
	"tsmini/pkg/configs"
	"tsmini/pkg/grid"
	"tsmini/pkg/logs"
	"tsmini/pkg/utils"
)

const (
	cols       = 80
	rows       = 40
	charWidth  = 7
	charHeight = 13
	tabWidth   = 4
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}

type Game struct {
	path    string // empty when showing the built-in sample
	opts    []compiler.Option
	logger  logs.Logger
	face    text.Face
	cells   []rune
	scroll  int // first visible row
	reloads <-chan struct{}
}

// load recompiles the source and lays out the report.
func (g *Game) load() {
	src := compiler.SampleSource
	if g.path != "" {
		data, err := os.ReadFile(g.path)
		if err != nil {
			g.logger.Error("read source", "path", g.path, "error", err)
			g.cells = layoutCells("read error: "+err.Error(), cols)
			return
		}
		src = string(data)
	}
	g.cells = layoutCells(compiler.Report(src, g.opts...), cols)
	g.scroll = clampScroll(g.scroll, grid.Rows(len(g.cells), cols))
	g.logger.Info("report updated", "path", g.path, "cells", len(g.cells))
}

func (g *Game) Update() error {
	select {
	case <-g.reloads:
		g.load()
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.load()
	}

	total := grid.Rows(len(g.cells), cols)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.scroll = clampScroll(g.scroll+1, total)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.scroll = clampScroll(g.scroll-1, total)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.scroll = clampScroll(g.scroll+rows, total)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.scroll = clampScroll(g.scroll-rows, total)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	first := g.scroll * cols
	for i, r := range g.cells[min(first, len(g.cells)):] {
		if i >= rows*cols {
			break
		}
		if r == ' ' {
			continue
		}
		bounds := grid.CellBounds(i, cols, charWidth, charHeight)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, string(r), g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cols * charWidth, rows * charHeight
}

// layoutCells places s on a grid cols wide, one cell per rune. Newlines
// start a new row, tabs advance to the next tab stop and long lines wrap.
func layoutCells(s string, cols int) []rune {
	var cells []rune
	for _, line := range strings.Split(s, "\n") {
		var row []rune
		for _, r := range line {
			if r == '\t' {
				row = append(row, []rune(strings.Repeat(" ", tabWidth-len(row)%tabWidth))...)
				continue
			}
			row = append(row, r)
		}
		n := grid.Rows(len(row), cols)
		if n == 0 {
			n = 1
		}
		padded := make([]rune, n*cols)
		for i := range padded {
			padded[i] = ' '
		}
		copy(padded, row)
		cells = append(cells, padded...)
	}
	return cells
}

// clampScroll keeps the first visible row inside the text.
func clampScroll(scroll, totalRows int) int {
	return max(0, min(scroll, totalRows-rows))
}

// startReloader signals on the returned channel whenever the modification
// time of path changes, checking every interval until stop is closed.
func startReloader(path string, interval time.Duration, stop <-chan struct{}) <-chan struct{} {
	changed := make(chan struct{}, 1)
	var last time.Time
	if info, err := os.Stat(path); err == nil {
		last = info.ModTime()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil || info.ModTime().Equal(last) {
					continue
				}
				last = info.ModTime()
				select {
				case changed <- struct{}{}:
				default:
				}
			case <-stop:
				return
			}
		}
	}()
	return changed
}

func main() {
	var path string
	if len(os.Args) > 1 {
		fullPath, _, err := utils.GetPathInfo(os.Args[1])
		if err != nil {
			log.Fatalf("Invalid source path: %v", err)
		}
		path = fullPath
	}

	var configFiles []string
	if len(os.Args) > 2 {
		configFiles = append(configFiles, os.Args[2])
	}
	loader := configs.NewLoader(configFiles, configs.Schema)
	if err := loader.Err(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cols*charWidth, rows*charHeight)
	ebiten.SetWindowTitle("tsmini")

	stop := make(chan struct{})
	defer close(stop)

	dscope.New(
		new(Module),
		dscope.Provide(loader),
	).Fork(
		logs.ConfiguredLevel,
	).Call(func(
		logger logs.Logger,
		opts compiler.EmitOptions,
	) {
		game := &Game{
			path:   path,
			opts:   []compiler.Option{compiler.WithEmitOptions(opts)},
			logger: logger,
			face:   text.NewGoXFace(basicfont.Face7x13),
		}
		if path != "" {
			game.reloads = startReloader(path, time.Second, stop)
		}
		game.load()

		if err := ebiten.RunGame(game); err != nil {
			log.Fatal(err)
		}
	})
}
