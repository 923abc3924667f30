package scroll

import (
	"math"
	"sync"
	"testing"
)

func TestUpdateComputesIndex(t *testing.T) {
	var p Position
	tests := []struct {
		offset, width, want float64
	}{
		{0, 300, 0},
		{600, 300, 2},
		{690, 300, 2.3},
		{-150, 300, -0.5},
	}
	for _, tt := range tests {
		got := p.Update(tt.offset, tt.width)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Update(%v, %v) = %v, want %v", tt.offset, tt.width, got, tt.want)
		}
		if p.Index() != got {
			t.Errorf("Index() = %v, want stored %v", p.Index(), got)
		}
	}
}

func TestSnapAndNearest(t *testing.T) {
	var p Position
	p.Update(690, 300)
	if got := p.Nearest(); got != 2 {
		t.Errorf("Nearest() = %d, want 2", got)
	}
	p.Update(780, 300)
	if got := p.Nearest(); got != 3 {
		t.Errorf("Nearest() = %d, want 3", got)
	}
	p.SnapTo(5)
	if p.Index() != 5 {
		t.Errorf("Expected exact snap to 5, got %v", p.Index())
	}
	if got := p.Offset(300); got != 1500 {
		t.Errorf("Offset = %v, want 1500", got)
	}
}

// TestConcurrentUpdateAndRead verifies readers never observe torn values
func TestConcurrentUpdateAndRead(t *testing.T) {
	var p Position
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			p.Update(float64(i%2)*300, 300)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if v := p.Index(); v != 0 && v != 1 {
				t.Errorf("Torn read: %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
