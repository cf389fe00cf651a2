package cmd

import (
	"fmt"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/viper"
)

const (
	defaultCycles  = 10
	defaultRefresh = 60
	defaultScale   = 10
)

// quirkKeys maps the quirk flags to their configuration keys.
var quirkKeys = map[string]string{
	"legacy-shift":    "quirks.legacy_shift",
	"clip-sprites":    "quirks.clip_sprites",
	"reset-flag":      "quirks.reset_flag",
	"increment-index": "quirks.increment_index",
	"jump-with-vx":    "quirks.jump_with_vx",
}

type settings struct {
	Cycles  int        `mapstructure:"cycles"`
	Refresh int        `mapstructure:"refresh"`
	Scale   int        `mapstructure:"scale"`
	Seed    int64      `mapstructure:"seed"`
	Trace   bool       `mapstructure:"trace"`
	Debug   bool       `mapstructure:"debug"`
	Quiet   bool       `mapstructure:"quiet"`
	Mute    bool       `mapstructure:"mute"`
	Sound   string     `mapstructure:"sound"`
	Volume  float64    `mapstructure:"volume"`
	Quirks  cpu.Quirks `mapstructure:"quirks"`
}

func setDefaults(v *viper.Viper) {
	quirks := cpu.DefaultQuirks()
	v.SetDefault("cycles", defaultCycles)
	v.SetDefault("refresh", defaultRefresh)
	v.SetDefault("scale", defaultScale)
	v.SetDefault("quirks.legacy_shift", quirks.LegacyShift)
	v.SetDefault("quirks.clip_sprites", quirks.ClipSprites)
	v.SetDefault("quirks.reset_flag", quirks.ResetFlag)
	v.SetDefault("quirks.increment_index", quirks.IncrementIndex)
	v.SetDefault("quirks.jump_with_vx", quirks.JumpWithVX)
}

// loadSettings reads and validates the configuration.
func loadSettings(v *viper.Viper) (settings, error) {
	setDefaults(v)

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("reading configuration: %w", err)
	}

	switch {
	case s.Cycles < 1:
		return s, fmt.Errorf("invalid cycles %d, must be at least 1", s.Cycles)
	case s.Refresh < 1:
		return s, fmt.Errorf("invalid refresh rate %d, must be at least 1", s.Refresh)
	case s.Scale < 1:
		return s, fmt.Errorf("invalid scale %d, must be at least 1", s.Scale)
	}
	return s, nil
}

func (s settings) emuConfig() cpu.Config {
	return cpu.Config{
		CyclesPerFrame: s.Cycles,
		RefreshRate:    s.Refresh,
		Seed:           s.Seed,
		Trace:          s.Trace,
		Quirks:         s.Quirks,
	}
}
