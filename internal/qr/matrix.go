package qr

import (
	"image"
	"image/color"
)

// QuietZone is the light margin, in modules, added around a rendered symbol.
const QuietZone = 4

// Matrix is a square grid of dark/light modules without quiet zone.
type Matrix struct {
	size int
	dark []bool
}

// NewMatrix allocates an all-light size×size matrix.
func NewMatrix(size int) *Matrix {
	return &Matrix{size: size, dark: make([]bool, size*size)}
}

// Size is the number of modules per side.
func (m *Matrix) Size() int { return m.size }

// Dark reports whether the module at (x, y) is dark. Out-of-range is light.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.dark[y*m.size+x]
}

func (m *Matrix) set(x, y int, dark bool) {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return
	}
	m.dark[y*m.size+x] = dark
}

// RasterSize is the side of the image Image(minSize) produces.
func (m *Matrix) RasterSize(minSize int) int {
	full := m.size + 2*QuietZone
	if minSize > full {
		return minSize
	}
	return full
}

// Image renders the matrix black on white, at least minSize pixels per side.
// Modules are scaled by the largest whole factor that fits, and the symbol is
// centered, so leftover pixels become extra margin.
func (m *Matrix) Image(minSize int) *image.Gray {
	out := m.RasterSize(minSize)
	img := image.NewGray(image.Rect(0, 0, out, out))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if m.size == 0 {
		return img
	}

	scale := out / (m.size + 2*QuietZone)
	pad := (out - m.size*scale) / 2
	for my := 0; my < m.size; my++ {
		for mx := 0; mx < m.size; mx++ {
			if !m.Dark(mx, my) {
				continue
			}
			x0, y0 := pad+mx*scale, pad+my*scale
			for y := y0; y < y0+scale; y++ {
				for x := x0; x < x0+scale; x++ {
					img.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
	}
	return img
}
