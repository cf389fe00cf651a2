package cpu

import "github.com/beanboi7/chyp8/emu/display"

// RandomSource supplies the bytes for CXNN. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Executor applies single instructions to a machine.
type Executor struct {
	quirks Quirks
	random RandomSource
}

// NewExecutor returns an executor using the given quirks and random source.
func NewExecutor(quirks Quirks, random RandomSource) *Executor {
	return &Executor{
		quirks: quirks,
		random: random,
	}
}

// Execute performs one instruction. The caller has already advanced pc
// past it. Stack faults leave the machine untouched and are returned;
// unknown opcodes are skipped without error.
func (e *Executor) Execute(m *Machine, ins Instruction, keys Keypad) error {
	x, y, nn, nnn := ins.X, ins.Y, ins.NN, ins.NNN

	switch ins.Group {
	case 0x0:
		switch ins.Opcode {
		case 0x00E0:
			m.display.Clear()
			m.updateScreen = true
		case 0x00EE:
			addr, err := m.Pop()
			if err != nil {
				return err
			}
			m.pc = addr
		}

	case 0x1:
		m.pc = nnn

	case 0x2:
		if err := m.Push(m.pc); err != nil {
			return err
		}
		m.pc = nnn

	case 0x3:
		m.skipIf(m.V[x] == nn)

	case 0x4:
		m.skipIf(m.V[x] != nn)

	case 0x5:
		if ins.N == 0 {
			m.skipIf(m.V[x] == m.V[y])
		}

	case 0x6:
		m.V[x] = nn

	case 0x7:
		m.V[x] += nn

	case 0x8:
		e.executeALU(m, ins)

	case 0x9:
		if ins.N == 0 {
			m.skipIf(m.V[x] != m.V[y])
		}

	case 0xA:
		m.I = nnn

	case 0xB:
		if e.quirks.JumpWithVX {
			m.pc = uint16(m.V[x]) + nnn
		} else {
			m.pc = uint16(m.V[0]) + nnn
		}

	case 0xC:
		m.V[x] = e.randomByte() & nn

	case 0xD:
		e.draw(m, ins)

	case 0xE:
		switch nn {
		case 0x9E:
			m.skipIf(isPressed(keys, m.V[x]))
		case 0xA1:
			m.skipIf(!isPressed(keys, m.V[x]))
		}

	case 0xF:
		e.executeMisc(m, ins, keys)
	}
	return nil
}

// executeALU handles the 8XYN register arithmetic. VF is written after the
// result so the flag survives when X is F.
func (e *Executor) executeALU(m *Machine, ins Instruction) {
	x, y := ins.X, ins.Y
	vx, vy := m.V[x], m.V[y]

	switch ins.N {
	case 0x0:
		m.V[x] = vy
	case 0x1:
		m.V[x] = vx | vy
		e.resetFlag(m)
	case 0x2:
		m.V[x] = vx & vy
		e.resetFlag(m)
	case 0x3:
		m.V[x] = vx ^ vy
		e.resetFlag(m)
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.V[x] = uint8(sum)
		m.V[flag] = boolToByte(sum > 0xFF)
	case 0x5:
		m.V[x] = vx - vy
		m.V[flag] = boolToByte(vx >= vy)
	case 0x7:
		m.V[x] = vy - vx
		m.V[flag] = boolToByte(vy >= vx)
	case 0x6:
		src := vx
		if e.quirks.LegacyShift {
			src = vy
		}
		m.V[x] = src >> 1
		m.V[flag] = src & 0x01
	case 0xE:
		src := vx
		if e.quirks.LegacyShift {
			src = vy
		}
		m.V[x] = src << 1
		m.V[flag] = (src & 0x80) >> 7
	}
}

func (e *Executor) resetFlag(m *Machine) {
	if e.quirks.ResetFlag {
		m.V[flag] = 0
	}
}

// draw renders an N row sprite read from I at (VX, VY). The start position
// always wraps into the screen, the rest of the sprite is clipped or wrapped
// depending on the quirks.
func (e *Executor) draw(m *Machine, ins Instruction) {
	x0 := int(m.V[ins.X]) % display.Width
	y0 := int(m.V[ins.Y]) % display.Height

	sprite := make([]byte, ins.N)
	for r := range sprite {
		sprite[r] = m.read(m.I + uint16(r))
	}

	m.V[flag] = 0
	if m.display.Draw(x0, y0, sprite, e.quirks.ClipSprites) {
		m.V[flag] = 1
	}
	m.updateScreen = true
}

func (e *Executor) executeMisc(m *Machine, ins Instruction, keys Keypad) {
	x := ins.X

	switch ins.NN {
	case 0x07:
		m.V[x] = m.delayTimer
	case 0x0A:
		key, ok := lowestPressed(keys)
		if !ok {
			// fetch this instruction again on the next step
			m.awaitingKey = true
			m.keyRegister = x
			m.pc -= 2
			return
		}
		m.awaitingKey = false
		m.V[x] = key
	case 0x15:
		m.delayTimer = m.V[x]
	case 0x18:
		m.soundTimer = m.V[x]
	case 0x1E:
		m.I += uint16(m.V[x])
	case 0x29:
		m.I = glyphAddress(m.V[x])
	case 0x33:
		v := m.V[x]
		m.write(m.I, v/100)
		m.write(m.I+1, v/10%10)
		m.write(m.I+2, v%10)
	case 0x55:
		for i := uint8(0); i <= x; i++ {
			m.write(m.I+uint16(i), m.V[i])
		}
		e.incrementIndex(m, x)
	case 0x65:
		for i := uint8(0); i <= x; i++ {
			m.V[i] = m.read(m.I + uint16(i))
		}
		e.incrementIndex(m, x)
	}
}

func (e *Executor) incrementIndex(m *Machine, x uint8) {
	if e.quirks.IncrementIndex {
		m.I += uint16(x) + 1
	}
}

func (e *Executor) randomByte() uint8 {
	if e.random == nil {
		return 0
	}
	return uint8(e.random.Intn(256))
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.pc += 2
	}
}

func isPressed(keys Keypad, key uint8) bool {
	return keys != nil && keys.IsPressed(key)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
