package cpu

// Quirks selects between historical variants of ambiguous instructions.
// The zero value is not the default, use DefaultQuirks.
type Quirks struct {
	// LegacyShift makes 8XY6 and 8XYE shift VY into VX instead of shifting VX in place.
	LegacyShift bool `mapstructure:"legacy_shift"`
	// ClipSprites stops sprites at the screen edge. When false they wrap around.
	ClipSprites bool `mapstructure:"clip_sprites"`
	// ResetFlag makes 8XY1, 8XY2 and 8XY3 clear VF.
	ResetFlag bool `mapstructure:"reset_flag"`
	// IncrementIndex makes FX55 and FX65 leave I pointing past the last register.
	IncrementIndex bool `mapstructure:"increment_index"`
	// JumpWithVX makes BNNN jump to VX + NNN, X being the high nibble of NNN.
	JumpWithVX bool `mapstructure:"jump_with_vx"`
}

// DefaultQuirks returns the canonical behavior.
func DefaultQuirks() Quirks {
	return Quirks{
		ClipSprites: true,
	}
}
