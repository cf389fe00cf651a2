package cpu

import (
	"errors"
	"fmt"

	"github.com/beanboi7/chyp8/emu/display"
)

const (
	MemorySize     = 4096
	RegisterCount  = 16
	StackSize      = 16
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	addressMask = MemorySize - 1
	flag        = 0xF
)

var (
	ErrProgramTooLarge = errors.New("program too large")
	ErrOutOfBounds     = errors.New("memory address out of bounds")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
)

// Machine is the complete CHIP-8 machine state. It has no behavior beyond
// bounds checked accessors; instructions are applied by the Executor.
type Machine struct {
	memory     [MemorySize]uint8
	V          [RegisterCount]uint8
	stack      [StackSize]uint16
	sp         uint8
	pc         uint16
	I          uint16 //address register
	delayTimer uint8
	soundTimer uint8
	display    display.Framebuffer

	awaitingKey bool
	keyRegister uint8 //destination of FX0A

	updateScreen bool //framebuffer changed since last render
}

// NewMachine returns a reset machine with the font installed.
func NewMachine() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset zeroes memory, registers, stack and timers, clears the screen,
// installs the font and points pc at the program start.
func (m *Machine) Reset() {
	*m = Machine{}
	m.loadFont()
	m.pc = ProgramStart
	m.updateScreen = true
}

// LoadProgram copies a program image into memory at ProgramStart.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// LoadByte returns the memory byte at addr.
func (m *Machine) LoadByte(addr uint16) (uint8, error) {
	if addr >= MemorySize {
		return 0, fmt.Errorf("%w: read 0x%04X", ErrOutOfBounds, addr)
	}
	return m.memory[addr], nil
}

// StoreByte writes v to memory at addr.
func (m *Machine) StoreByte(addr uint16, v uint8) error {
	if addr >= MemorySize {
		return fmt.Errorf("%w: write 0x%04X", ErrOutOfBounds, addr)
	}
	m.memory[addr] = v
	return nil
}

// Push stores a return address on the stack.
func (m *Machine) Push(addr uint16) error {
	if int(m.sp) >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = addr
	m.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (m *Machine) Pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}

// read and write wrap the address into memory. Instruction execution uses
// these and never fails on an out of range address.
func (m *Machine) read(addr uint16) uint8 {
	return m.memory[addr&addressMask]
}

func (m *Machine) write(addr uint16, v uint8) {
	m.memory[addr&addressMask] = v
}

func (m *Machine) PC() uint16 { return m.pc }

func (m *Machine) Index() uint16 { return m.I }

// Register returns V[x]. Only the low nibble of x is used.
func (m *Machine) Register(x uint8) uint8 { return m.V[x&0xF] }

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int { return int(m.sp) }

func (m *Machine) DelayTimer() uint8 { return m.delayTimer }

func (m *Machine) SoundTimer() uint8 { return m.soundTimer }

// AwaitingKey reports whether execution is suspended on FX0A and the
// register that will receive the key.
func (m *Machine) AwaitingKey() (bool, uint8) { return m.awaitingKey, m.keyRegister }

// Framebuffer returns the display state. Callers must treat it as read only.
func (m *Machine) Framebuffer() *display.Framebuffer { return &m.display }
