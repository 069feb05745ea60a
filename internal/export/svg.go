// Package export writes engine grids and telemetry series as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/engine"
)

// GridToSVG draws e the way the raster surface does: each cell is CellSize
// pixels square with a one pixel gutter, so the image matches the grid's
// surface size.
func GridToSVG(e engine.Engine, alive, background string) string {
	w, h, cs := e.Width(), e.Height(), e.CellSize()
	pitch := cs + 1
	width, height := pitch*w+1, pitch*h+1

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, alive))

	cells := e.Cells()
	for row := 0; row < h; row++ {
		// one rect per horizontal run of live cells
		for col := 0; col < w; {
			if cells[row*w+col] != engine.Alive {
				col++
				continue
			}
			start := col
			for col < w && cells[row*w+col] == engine.Alive {
				col++
			}
			run := col - start
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>
`, start*pitch+1, row*pitch+1, run*pitch-1, cs))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots values as a polyline scaled to width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
