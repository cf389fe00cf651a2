// Package display holds the CHIP-8 framebuffer and the sprite drawing algorithm.
package display

import "strings"

const (
	Width  = 64
	Height = 32
)

// Framebuffer is the 64x32 monochrome pixel grid, row-major.
type Framebuffer [Height][Width]bool

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates outside
// the screen read as off.
func (fb *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return fb[y][x]
}

// Draw XORs the sprite rows onto the framebuffer with the top left corner at
// (x0, y0). Each sprite byte is one row, most significant bit leftmost.
// Pixels past the right or bottom edge are clipped, or wrapped to the
// opposite edge when clip is false. It returns true if any pixel was
// turned off.
func (fb *Framebuffer) Draw(x0, y0 int, sprite []byte, clip bool) bool {
	collision := false
	for r, row := range sprite {
		y := y0 + r
		if y >= Height {
			if clip {
				break
			}
			y %= Height
		}

		for c := 0; c < 8; c++ {
			if row&(0x80>>c) == 0 {
				continue
			}
			x := x0 + c
			if x >= Width {
				if clip {
					break
				}
				x %= Width
			}

			if fb[y][x] {
				collision = true
			}
			fb[y][x] = !fb[y][x]
		}
	}
	return collision
}

// Lit returns the number of pixels that are on.
func (fb *Framebuffer) Lit() int {
	n := 0
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the framebuffer as text, one line per row, '#' for lit
// pixels and '.' for dark ones.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
