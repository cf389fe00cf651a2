package sound

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	// 4 samples per period: 2 high, 2 low
	s := SquareWave(beep.SampleRate(8), 2)
	samples := make([][2]float64, 8)

	n, ok := s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 8, n)

	expected := []float64{0.25, 0.25, -0.25, -0.25, 0.25, 0.25, -0.25, -0.25}
	for i, v := range expected {
		assert.Equal(t, v, samples[i][0])
		assert.Equal(t, v, samples[i][1])
	}
}

func TestPlayerSetActive(t *testing.T) {
	p := newPlayer(SquareWave(sampleRate, toneFreq), 0)
	assert.True(t, p.ctrl.Paused)

	p.SetActive(true)
	assert.False(t, p.ctrl.Paused)
	p.SetActive(true)
	assert.False(t, p.ctrl.Paused)

	p.SetActive(false)
	assert.True(t, p.ctrl.Paused)
}

func TestLoadTone(t *testing.T) {
	tone, err := loadTone("")
	assert.NoError(t, err)
	assert.True(t, tone != nil)

	_, err = loadTone(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
