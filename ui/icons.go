package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/redwarp/common"
)

// TrayState selects the tray icon.
type TrayState int

const (
	StateIdle TrayState = iota
	StateBusy
	StateDone
	StateFailed
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	SymbolColor color.RGBA
	State       TrayState
}

var white = color.RGBA{255, 255, 255, 255}

// IconConfigFor returns the colors used for a tray state.
func IconConfigFor(state TrayState) IconConfig {
	cfg := IconConfig{Size: common.TrayIconSize, SymbolColor: white, State: state}
	switch state {
	case StateBusy:
		cfg.FillColor = color.RGBA{229, 165, 10, 255}
		cfg.BorderColor = color.RGBA{200, 136, 0, 255}
	case StateDone:
		cfg.FillColor = color.RGBA{46, 194, 126, 255}
		cfg.BorderColor = color.RGBA{38, 162, 105, 255}
	case StateFailed:
		cfg.FillColor = color.RGBA{119, 118, 123, 255}
		cfg.BorderColor = color.RGBA{94, 92, 100, 255}
		cfg.SymbolColor = color.RGBA{255, 190, 111, 255}
	default:
		cfg.FillColor = color.RGBA{192, 28, 40, 255}
		cfg.BorderColor = color.RGBA{165, 29, 45, 255}
	}
	return cfg
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawDisc(img)

	switch g.config.State {
	case StateBusy:
		g.drawDots(img)
	case StateDone:
		g.drawCheckmark(img)
	case StateFailed:
		g.drawCross(img)
	default:
		g.drawBolt(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		common.LogWarn("Tray icon encoding failed: %v", err)
	}
	return buf.Bytes()
}

// drawDisc draws the round badge with a one pixel border.
func (g *IconGenerator) drawDisc(img *image.RGBA) {
	size := float64(g.config.Size)
	c := size / 2
	r := c - 1
	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			d := dx*dx + dy*dy
			switch {
			case d > r*r:
			case d > (r-1.5)*(r-1.5):
				img.Set(x, y, g.config.BorderColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// plot sets the points scaled from a 22 pixel grid.
func (g *IconGenerator) plot(img *image.RGBA, points [][2]int) {
	scale := float64(g.config.Size) / 22
	for _, p := range points {
		x, y := int(float64(p[0])*scale), int(float64(p[1])*scale)
		if x >= 0 && x < g.config.Size && y >= 0 && y < g.config.Size {
			img.Set(x, y, g.config.SymbolColor)
		}
	}
}

// drawBolt draws a lightning bolt.
func (g *IconGenerator) drawBolt(img *image.RGBA) {
	g.plot(img, [][2]int{
		{12, 4}, {11, 5}, {11, 6}, {10, 7}, {10, 8}, {9, 9}, {9, 10},
		{8, 11}, {9, 11}, {10, 11}, {11, 11}, {12, 11}, {13, 11},
		{12, 12}, {12, 13}, {11, 14}, {11, 15}, {10, 16}, {10, 17},
		{10, 10}, {11, 10}, {12, 10}, {13, 10},
	})
}

// drawDots draws three dots for a running generation.
func (g *IconGenerator) drawDots(img *image.RGBA) {
	var points [][2]int
	for _, cx := range []int{6, 11, 16} {
		points = append(points, [2]int{cx, 10}, [2]int{cx + 1, 10}, [2]int{cx, 11}, [2]int{cx + 1, 11})
	}
	g.plot(img, points)
}

// drawCheckmark draws a checkmark symbol.
func (g *IconGenerator) drawCheckmark(img *image.RGBA) {
	g.plot(img, [][2]int{
		{6, 11}, {7, 11}, {7, 12}, {8, 12}, {8, 13}, {9, 13},
		{9, 14}, {10, 13}, {10, 12}, {11, 12}, {11, 11}, {12, 11},
		{12, 10}, {13, 10}, {13, 9}, {14, 9}, {14, 8}, {15, 8},
		{15, 7}, {16, 7},
	})
}

// drawCross draws an X.
func (g *IconGenerator) drawCross(img *image.RGBA) {
	var points [][2]int
	for i := 6; i <= 15; i++ {
		points = append(points, [2]int{i, i}, [2]int{21 - i, i})
	}
	g.plot(img, points)
}

// GenerateIcon generates the icon for a tray state.
func GenerateIcon(state TrayState) []byte {
	return NewIconGenerator(IconConfigFor(state)).Generate()
}
