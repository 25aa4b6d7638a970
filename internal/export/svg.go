// Package export renders stored runs as standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/sparks/internal/sim"
	"github.com/san-kum/sparks/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	dw, dh := canvas.Dots()
	var sb strings.Builder
	header(&sb, float64(dw)*scale, float64(dh)*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)

	dotRadius := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type svgSprite struct {
	x, y, r, alpha, depth float64
}

// FrameToSVG draws the sprites of one sampled frame as circles seen through
// cam. Radius follows sprite scale and fill opacity follows alpha.
func FrameToSVG(frame sim.Frame, cam *viz.Camera, width, height int, color string) string {
	if cam == nil || width <= 0 || height <= 0 {
		return ""
	}

	ppu := cam.PixelsPerUnit(width, height)
	sprites := make([]svgSprite, 0, len(frame.Sprites))
	for _, s := range frame.Sprites {
		if s.Alpha <= 0 {
			continue
		}
		x, y, depth, ok := cam.Project(s.Position, width, height)
		if !ok {
			continue
		}
		r := math.Max(0.5, s.Scale*ppu/2)
		sprites = append(sprites, svgSprite{float64(x), float64(y), r, math.Min(1, s.Alpha), depth})
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth < sprites[j].depth })

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)
	for _, s := range sprites {
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill-opacity=\"%.2f\"/>\n", s.x, s.y, s.r, s.alpha)
	}
	fmt.Fprintf(&sb, "</g>\n<text x=\"4\" y=\"14\" fill=\"#888888\" font-size=\"12\">t=%.2fs</text>\n</svg>", frame.Time)
	return sb.String()
}

// SeriesToSVG plots a sampled metric against time as a single polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := times[0], times[n-1]
	minY, maxY := values[0], values[0]
	for _, v := range values[:n] {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i := 0; i < n; i++ {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
