package cpu

// KeyCount is the number of keys on the hex keypad:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
const KeyCount = 16

// Keypad is the input capability queried during execution. A fresh snapshot
// is handed to every Step call; the core keeps no key state of its own.
type Keypad interface {
	IsPressed(key uint8) bool
}

// KeyState is a keypad snapshot indexed by key value.
type KeyState [KeyCount]bool

func (k KeyState) IsPressed(key uint8) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k[key]
}

// lowestPressed returns the lowest pressed key.
func lowestPressed(keys Keypad) (uint8, bool) {
	if keys == nil {
		return 0, false
	}
	for key := uint8(0); key < KeyCount; key++ {
		if keys.IsPressed(key) {
			return key, true
		}
	}
	return 0, false
}
