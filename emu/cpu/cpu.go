// Package cpu implements the CHIP-8 interpreter: machine state, decoding,
// execution, timers and the frame driven step loop.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/retroenv/retrogolib/log"
)

// Config controls the step driver.
type Config struct {
	CyclesPerFrame int // instructions executed per frame
	RefreshRate    int // frames per second
	Seed           int64
	Trace          bool // log every executed instruction
	Quirks         Quirks
}

// DefaultConfig returns 10 instructions per frame at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		CyclesPerFrame: 10,
		RefreshRate:    60,
		Quirks:         DefaultQuirks(),
	}
}

// Host is the collaborator that supplies input and presents output.
type Host interface {
	Closed() bool
	Keys() Keypad
	// Render is only called when the framebuffer changed.
	Render(fb *display.Framebuffer)
	// Update is called once per frame after Render.
	Update()
	Sound(active bool)
}

// Fault is a recoverable execution error. The instruction had no effect.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("opcode 0x%04X at 0x%04X: %v", f.Opcode, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// EMU drives a machine: fetch, decode and execute a fixed number of
// instructions per frame, then tick the timers.
type EMU struct {
	machine  *Machine
	executor *Executor
	logger   *log.Logger

	program        []byte
	cyclesPerFrame int
	frameDuration  time.Duration
	trace          bool
	faults         int
}

// NewEMU returns an emulator with a reset machine and no program loaded.
func NewEMU(cfg Config, logger *log.Logger) (*EMU, error) {
	if cfg.CyclesPerFrame < 1 {
		return nil, fmt.Errorf("invalid cycles per frame %d", cfg.CyclesPerFrame)
	}
	if cfg.RefreshRate < 1 {
		return nil, fmt.Errorf("invalid refresh rate %d", cfg.RefreshRate)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	emu := &EMU{
		machine:        NewMachine(),
		executor:       NewExecutor(cfg.Quirks, rand.New(rand.NewSource(seed))),
		logger:         logger,
		cyclesPerFrame: cfg.CyclesPerFrame,
		frameDuration:  time.Second / time.Duration(cfg.RefreshRate),
		trace:          cfg.Trace,
	}
	return emu, nil
}

// LoadROM reads a program image from disk and loads it.
func (emu *EMU) LoadROM(filename string) error {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}
	if err := emu.LoadProgram(rom); err != nil {
		return fmt.Errorf("loading ROM '%s': %w", filename, err)
	}

	emu.logger.Info("ROM loaded",
		log.String("file", filename),
		log.Int("size", len(rom)))
	return nil
}

// LoadProgram resets the machine and loads the program image.
func (emu *EMU) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	emu.program = append([]byte(nil), program...)
	return emu.Reset()
}

// Reset restarts the loaded program from a clean machine.
func (emu *EMU) Reset() error {
	emu.machine.Reset()
	return emu.machine.LoadProgram(emu.program)
}

// Machine exposes the machine state for inspection.
func (emu *EMU) Machine() *Machine {
	return emu.machine
}

// Faults returns the number of faults raised since creation.
func (emu *EMU) Faults() int {
	return emu.faults
}

// Step executes the instruction at pc.
func (emu *EMU) Step(keys Keypad) error {
	m := emu.machine
	pc := m.pc
	opcode := uint16(m.read(pc))<<8 | uint16(m.read(pc+1))
	m.pc += 2

	ins := Decode(opcode)
	if emu.trace {
		emu.logger.Debug("Executing",
			log.String("pc", fmt.Sprintf("0x%04X", pc)),
			log.String("instruction", ins.String()))
	}

	if err := emu.executor.Execute(m, ins, keys); err != nil {
		emu.faults++
		return &Fault{PC: pc, Opcode: opcode, Err: err}
	}
	return nil
}

// Frame executes one frame worth of instructions and ticks the timers.
// Execution stops early while the machine waits for a key. Faults are
// logged and joined into the returned error; none of them stop the frame.
func (emu *EMU) Frame(keys Keypad) error {
	var faults []error
	for i := 0; i < emu.cyclesPerFrame; i++ {
		if err := emu.Step(keys); err != nil {
			emu.logger.Warn("Instruction failed", log.Err(err))
			faults = append(faults, err)
		}
		if emu.machine.awaitingKey {
			break
		}
	}

	emu.machine.Tick()
	return errors.Join(faults...)
}

// Run drives the host at the configured refresh rate until the host closes
// or the context is cancelled.
func (emu *EMU) Run(ctx context.Context, host Host) error {
	ticker := time.NewTicker(emu.frameDuration)
	defer ticker.Stop()

	for !host.Closed() {
		// faults are logged and counted in Frame
		emu.Frame(host.Keys())

		if emu.machine.updateScreen {
			if emu.trace {
				emu.logger.Debug("Display updated", log.String("framebuffer", emu.machine.display.String()))
			}
			host.Render(&emu.machine.display)
			emu.machine.updateScreen = false
		}
		host.Update()
		host.Sound(emu.machine.IsSoundActive())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
