// Package sound plays the buzzer tone while the sound timer is running.
package sound

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneFreq   = 440
)

// Player switches a looping tone on and off.
type Player struct {
	ctrl   *beep.Ctrl
	active bool
}

// New initializes the speaker and starts a paused tone. If file is not
// empty the tone is the looped mp3 file, otherwise a square wave. volume is
// relative to the source, 0 is unchanged and every -1 halves the amplitude.
func New(file string, volume float64) (*Player, error) {
	tone, err := loadTone(file)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	p := newPlayer(tone, volume)
	speaker.Play(p.ctrl)
	return p, nil
}

func newPlayer(tone beep.Streamer, volume float64) *Player {
	return &Player{
		ctrl: &beep.Ctrl{
			Streamer: &effects.Volume{
				Streamer: tone,
				Base:     2,
				Volume:   volume,
			},
			Paused: true,
		},
	}
}

// SetActive starts or pauses the tone.
func (p *Player) SetActive(active bool) {
	if active == p.active {
		return
	}
	p.active = active

	speaker.Lock()
	p.ctrl.Paused = !active
	speaker.Unlock()
}

func loadTone(file string) (beep.Streamer, error) {
	if file == "" {
		return SquareWave(sampleRate, toneFreq), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding sound file '%s': %w", file, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("reading sound file '%s': %w", file, err)
	}

	looped := beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	if format.SampleRate == sampleRate {
		return looped, nil
	}
	return beep.Resample(4, format.SampleRate, sampleRate, looped), nil
}

// SquareWave returns an endless square wave at freq Hz.
func SquareWave(sr beep.SampleRate, freq float64) beep.Streamer {
	period := float64(sr) / freq
	pos := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.25
			if math.Mod(pos, period) >= period/2 {
				v = -0.25
			}
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
