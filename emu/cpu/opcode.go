package cpu

import "fmt"

// Instruction is a 16 bit opcode split into its fields.
type Instruction struct {
	Opcode uint16
	Group  uint8  // bits 15-12
	X      uint8  // bits 11-8
	Y      uint8  // bits 7-4
	N      uint8  // bits 3-0
	NN     uint8  // bits 7-0
	NNN    uint16 // bits 11-0
}

// Decode splits an opcode into its fields. Every value decodes.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Group:  uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

// String returns the assembler mnemonic of the instruction.
func (ins Instruction) String() string {
	x, y, nn, nnn := ins.X, ins.Y, ins.NN, ins.NNN

	switch ins.Group {
	case 0x0:
		switch ins.Opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%03X", nnn)
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", nnn)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", nnn)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", x, nn)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, nn)
	case 0x5:
		if ins.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", x, nn)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, nn)
	case 0x8:
		if name, ok := aluMnemonics[ins.N]; ok {
			return fmt.Sprintf("%s V%X, V%X", name, x, y)
		}
	case 0x9:
		if ins.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", nnn)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", nnn)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", x, nn)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, ins.N)
	case 0xE:
		switch nn {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if format, ok := miscMnemonics[nn]; ok {
			return fmt.Sprintf(format, x)
		}
	}
	return fmt.Sprintf("DW 0x%04X", ins.Opcode)
}

var aluMnemonics = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscMnemonics = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}
