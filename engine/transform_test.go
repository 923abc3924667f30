package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// vecNear compares component-wise with an absolute tolerance
// mgl64's ApproxEqual switches to a relative test that rejects tiny residues against zero
func vecNear(a, b mgl64.Vec4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMatrixIdentityAtRest(t *testing.T) {
	m := CardTransform{Scale: 1}.Matrix(0)
	if !m.ApproxEqual(mgl64.Ident4()) {
		t.Errorf("Expected identity, got %v", m)
	}
}

func TestMatrixTranslationAndScale(t *testing.T) {
	ct := CardTransform{TranslateX: 12, TranslateY: -4, Scale: 0.5}
	p := ct.Matrix(0).Mul4x1(mgl64.Vec4{2, 2, 0, 1})
	want := mgl64.Vec4{13, -3, 0, 1}
	if !vecNear(p, want, 1e-12) {
		t.Errorf("Got %v, want %v", p, want)
	}
}

func TestMatrixRotateY(t *testing.T) {
	ct := CardTransform{RotateY: math.Pi / 2, Scale: 1}
	p := ct.Matrix(0).Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	want := mgl64.Vec4{0, 0, -1, 1}
	if !vecNear(p, want, 1e-9) {
		t.Errorf("Got %v, want %v", p, want)
	}
}

// TestMatrixRotateX verifies a quarter pitch turn carries +y onto +z
func TestMatrixRotateX(t *testing.T) {
	ct := CardTransform{RotateX: math.Pi / 2, Scale: 1}
	p := ct.Matrix(0).Mul4x1(mgl64.Vec4{0, 1, 0, 1})
	want := mgl64.Vec4{0, 0, 1, 1}
	if !vecNear(p, want, 1e-9) {
		t.Errorf("Got %v, want %v", p, want)
	}
}

// TestMatrixPerspective verifies far points shrink toward the origin after division
func TestMatrixPerspective(t *testing.T) {
	ct := CardTransform{RotateY: math.Pi / 4, Scale: 1}
	m := ct.Matrix(1000)

	// Right edge rotates away from the viewer (negative z) and is foreshortened
	p := m.Mul4x1(mgl64.Vec4{100, 0, 0, 1})
	if p[3] <= 1 {
		t.Fatalf("Expected w > 1 for receding point, got %v", p[3])
	}
	x := p[0] / p[3]
	if x >= 100*math.Cos(math.Pi/4) {
		t.Errorf("Expected foreshortened x, got %v", x)
	}
}
