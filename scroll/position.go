// Package scroll converts horizontal scroll offsets into a continuous card index
package scroll

import (
	"math"
	"sync/atomic"
)

// Position holds the current index coordinate (offset / itemWidth)
// Written from the input goroutine, read once per frame by the evaluator
type Position struct {
	bits atomic.Uint64
}

// Update stores and returns offsetPixels / itemWidthPixels
// itemWidthPixels must be positive; the value is not checked
func (p *Position) Update(offsetPixels, itemWidthPixels float64) float64 {
	idx := offsetPixels / itemWidthPixels
	p.bits.Store(math.Float64bits(idx))
	return idx
}

// Index returns the current index coordinate
func (p *Position) Index() float64 {
	return math.Float64frombits(p.bits.Load())
}

// SnapTo sets the coordinate to an exact card slot
func (p *Position) SnapTo(index int) {
	p.bits.Store(math.Float64bits(float64(index)))
}

// Nearest returns the slot closest to the current coordinate
func (p *Position) Nearest() int {
	return int(math.Round(p.Index()))
}

// Offset converts the current coordinate back to pixels
func (p *Position) Offset(itemWidthPixels float64) float64 {
	return p.Index() * itemWidthPixels
}
