package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMachineReset(t *testing.T) {
	m := NewMachine()
	m.V[3] = 9
	m.I = 0x123
	m.delayTimer = 4
	m.memory[0x300] = 0xAA
	assert.NoError(t, m.Push(0x400))
	m.display[1][2] = true

	m.Reset()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint8(0), m.Register(3))
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.memory[0x300])
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, 0, m.Framebuffer().Lit())

	for i, b := range FontSet {
		v, err := m.LoadByte(uint16(FontStart + i))
		assert.NoError(t, err)
		assert.Equal(t, b, v)
	}
}

func TestMachineLoadProgram(t *testing.T) {
	m := NewMachine()
	assert.NoError(t, m.LoadProgram([]byte{0x12, 0x34}))
	assert.Equal(t, uint8(0x12), m.memory[ProgramStart])
	assert.Equal(t, uint8(0x34), m.memory[ProgramStart+1])

	assert.NoError(t, m.LoadProgram(make([]byte, MaxProgramSize)))

	err := m.LoadProgram(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
}

func TestMachineMemoryBounds(t *testing.T) {
	m := NewMachine()
	assert.NoError(t, m.StoreByte(MemorySize-1, 0x42))
	v, err := m.LoadByte(MemorySize - 1)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)

	_, err = m.LoadByte(MemorySize)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = m.StoreByte(0xFFFF, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	// execution accesses wrap instead
	m.write(MemorySize+5, 0x77)
	assert.Equal(t, uint8(0x77), m.memory[5])
	assert.Equal(t, uint8(0x77), m.read(MemorySize+5))
}

func TestMachineStack(t *testing.T) {
	m := NewMachine()
	for i := 0; i < StackSize; i++ {
		assert.NoError(t, m.Push(uint16(0x200+2*i)))
	}
	assert.True(t, errors.Is(m.Push(0x300), ErrStackOverflow))
	assert.Equal(t, StackSize, m.StackDepth())

	for i := StackSize - 1; i >= 0; i-- {
		addr, err := m.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+2*i), addr)
	}
	_, err := m.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestMachineTick(t *testing.T) {
	m := NewMachine()
	m.delayTimer = 2
	m.soundTimer = 1
	assert.True(t, m.IsSoundActive())

	m.Tick()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.False(t, m.IsSoundActive())

	m.Tick()
	m.Tick()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestKeyState(t *testing.T) {
	var keys KeyState
	_, ok := lowestPressed(keys)
	assert.False(t, ok)

	keys[0xC] = true
	keys[0x4] = true
	key, ok := lowestPressed(keys)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x4), key)

	assert.True(t, keys.IsPressed(0xC))
	assert.False(t, keys.IsPressed(0x1C))

	_, ok = lowestPressed(nil)
	assert.False(t, ok)
}
