// Package screen implements the emulator host on a pixelgl window: it
// rasterizes the framebuffer and maps the host keyboard onto the keypad.
package screen

import (
	"fmt"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/display"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

// Player plays the tone while the sound timer runs.
type Player interface {
	SetActive(active bool)
}

type Window struct {
	*pixelgl.Window
	KeyMap [cpu.KeyCount]pixelgl.Button
	player Player
	scale  float64
	imd    *imdraw.IMDraw
}

// New opens a window sized for the 64x32 display at the given scale.
// player may be nil for a silent host.
func New(scale int, player Player) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "Chyp8",
		Bounds: pixel.R(0, 0, float64(display.Width*scale), float64(display.Height*scale)),
		VSync:  true,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	return &Window{
		Window: win,
		KeyMap: DefaultKeyMap,
		player: player,
		scale:  float64(scale),
		imd:    imdraw.New(nil),
	}, nil
}

// Closed reports whether the window was closed or escape was pressed.
func (w *Window) Closed() bool {
	if w.JustPressed(pixelgl.KeyEscape) {
		w.SetClosed(true)
	}
	return w.Window.Closed()
}

// Keys returns the keypad snapshot for the current frame.
func (w *Window) Keys() cpu.Keypad {
	return Snapshot(w.KeyMap, w.Pressed)
}

// Render rebuilds the pixel geometry from the framebuffer. pixelgl has the
// origin at the bottom left, so rows are flipped.
func (w *Window) Render(fb *display.Framebuffer) {
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if !fb[y][x] {
				continue
			}
			minX := float64(x) * w.scale
			minY := float64(display.Height-1-y) * w.scale
			w.imd.Push(pixel.V(minX, minY), pixel.V(minX+w.scale, minY+w.scale))
			w.imd.Rectangle(0)
		}
	}
}

// Update presents the last rendered frame and polls input events.
func (w *Window) Update() {
	w.Clear(colornames.Black)
	w.imd.Draw(w.Window)
	w.Window.Update()
}

func (w *Window) Sound(active bool) {
	if w.player != nil {
		w.player.SetActive(active)
	}
}
