// Package export renders recorded profiles to formats other tools can
// consume.
package export

import (
	"fmt"
	"strings"
)

// ProfileSVG renders one water-surface profile h(x) as an SVG path,
// auto-scaled to the data with 10% padding on each side.
func ProfileSVG(x, h []float64, width, height int, strokeColor string) string {
	if len(x) < 2 || len(x) != len(h) {
		return ""
	}

	minX, maxX := x[0], x[0]
	minH, maxH := h[0], h[0]
	for i := range x {
		if x[i] < minX {
			minX = x[i]
		}
		if x[i] > maxX {
			maxX = x[i]
		}
		if h[i] < minH {
			minH = h[i]
		}
		if h[i] > maxH {
			maxH = h[i]
		}
	}

	rangeX := maxX - minX
	rangeH := maxH - minH
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeH == 0 {
		rangeH = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minH -= rangeH * 0.1
	maxH += rangeH * 0.1
	rangeX = maxX - minX
	rangeH = maxH - minH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range x {
		px := (x[i] - minX) / rangeX * float64(width)
		py := float64(height) - (h[i]-minH)/rangeH*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
