package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tilt-carousel/engine"
	"github.com/lixenwraith/tilt-carousel/status"
)

// Terminal cells are roughly twice as tall as wide
const aspectRatio = 2.1

// layout maps engine pixels onto terminal cells
type layout struct {
	colsPerSlot float64 // horizontal distance between card centres
	cardCols    float64
	cardRows    float64
	itemWidth   float64 // pixels per slot
	perspective float64
}

func (l layout) pxPerCol() float64 { return l.itemWidth / l.colsPerSlot }
func (l layout) pxPerRow() float64 { return l.pxPerCol() * aspectRatio }

type point struct{ x, y float64 }

// projectCard returns the four corners (TL, TR, BR, BL) of a card in cell coordinates
// slot is the card's distance from the scroll position in slots; cx, cy the screen centre
func projectCard(t engine.CardTransform, slot, cx, cy float64, l layout) [4]point {
	m := t.Matrix(l.perspective)
	halfW := l.cardCols / 2 * l.pxPerCol()
	halfH := l.cardRows / 2 * l.pxPerRow()

	corners := [4]mgl64.Vec4{
		{-halfW, -halfH, 0, 1},
		{halfW, -halfH, 0, 1},
		{halfW, halfH, 0, 1},
		{-halfW, halfH, 0, 1},
	}

	var out [4]point
	originX := cx + slot*l.colsPerSlot
	for i, c := range corners {
		v := m.Mul4x1(c)
		w := v[3]
		if w < 0.01 {
			w = 0.01
		}
		out[i] = point{
			x: originX + v[0]/w/l.pxPerCol(),
			y: cy + v[1]/w/l.pxPerRow(),
		}
	}
	return out
}

// insideQuad reports whether p lies within the convex quad q
func insideQuad(q [4]point, p point) bool {
	var pos, neg bool
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		cross := (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// cardColor shades a card by slot hue and scale
func cardColor(index int, scale float64) tcell.Color {
	hues := [...][3]float64{
		{90, 140, 220},
		{220, 120, 90},
		{110, 200, 140},
		{200, 170, 80},
		{170, 110, 210},
	}
	h := hues[((index%len(hues))+len(hues))%len(hues)]
	k := math.Max(0.25, math.Min(1, (scale-0.6)/0.4))
	return tcell.NewRGBColor(int32(h[0]*k), int32(h[1]*k), int32(h[2]*k))
}

// drawFrame renders all cards of f back to front
func drawFrame(screen tcell.Screen, f engine.Frame, l layout) {
	w, h := screen.Size()
	cx, cy := float64(w)/2, float64(h)/2

	indices := make([]int, 0, len(f.Transforms))
	for i := range f.Transforms {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(a, b int) bool {
		ta, tb := f.Transforms[indices[a]], f.Transforms[indices[b]]
		if ta.ZIndex != tb.ZIndex {
			return ta.ZIndex < tb.ZIndex
		}
		return indices[a] < indices[b]
	})

	for _, idx := range indices {
		t := f.Transforms[idx]
		slot := float64(idx) - f.Inputs.ScrollPosition
		q := projectCard(t, slot, cx, cy, l)
		fillQuad(screen, q, w, h, tcell.StyleDefault.Background(cardColor(idx, t.Scale)))

		label := fmt.Sprintf(" %d ", idx)
		centre := point{(q[0].x + q[2].x) / 2, (q[0].y + q[2].y) / 2}
		drawText(screen, int(centre.x)-len(label)/2, int(centre.y), label,
			tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true))
	}
}

func fillQuad(screen tcell.Screen, q [4]point, w, h int, style tcell.Style) {
	minX, maxX := q[0].x, q[0].x
	minY, maxY := q[0].y, q[0].y
	for _, p := range q[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	x0, x1 := max(0, int(math.Floor(minX))), min(w-1, int(math.Ceil(maxX)))
	y0, y1 := max(0, int(math.Floor(minY))), min(h-1, int(math.Ceil(maxY)))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insideQuad(q, point{float64(x) + 0.5, float64(y) + 0.5}) {
				screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawHUD prints the status header and the metric registry
func drawHUD(screen tcell.Screen, header []string, reg *status.Registry) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	row := 0
	for _, line := range header {
		drawText(screen, 1, row, line, style)
		row++
	}
	row++
	for _, l := range reg.Snapshot() {
		drawText(screen, 1, row, fmt.Sprintf("%-20s %s", l.Key, l.Value), style.Dim(true))
		row++
	}
}
