package cpu

// Tick decrements the delay and sound timers. It is called once per frame,
// independent of the number of instructions executed in that frame.
func (m *Machine) Tick() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// IsSoundActive reports whether the tone should be playing.
func (m *Machine) IsSoundActive() bool {
	return m.soundTimer > 0
}
