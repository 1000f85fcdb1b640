package chip8

import (
	"github.com/dustinbowers/chip8vm/internal/chiperr"
	"github.com/dustinbowers/chip8vm/internal/display"
)

// Step fetches one 16-bit big-endian opcode at PC, advances PC by two, then
// dispatches and executes it. It performs no blocking I/O and no
// allocation — the cycle driver relies on that contract to bound each call
// to the per-instruction time budget.
func (m *Machine) Step() error {
	if int(m.PC) > MemSize-2 {
		return chiperr.New(chiperr.UnsupportedOpcode, "pc 0x%04X out of range", m.PC)
	}

	opcode := uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1])
	m.PC += 2

	nnn := opcode & 0x0FFF
	kk := byte(opcode & 0x00FF)
	n := byte(opcode & 0x000F)
	x := byte((opcode >> 8) & 0x0F)
	y := byte((opcode >> 4) & 0x0F)

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			for i := range m.Display {
				m.Display[i] = 0
			}
		case 0x00EE:
			if m.SP == 0 {
				return chiperr.New(chiperr.StackUnderflow, "RET with empty stack")
			}
			m.SP--
			m.PC = m.Stack[m.SP]
		default:
			// 0NNN: legacy machine-code call, ignored per the classic
			// interpreter's treatment of RCA 1802 routines.
		}

	case 0x1000:
		m.PC = nnn

	case 0x2000:
		if m.SP >= NumStackSlots {
			return chiperr.New(chiperr.StackOverflow, "CALL with full stack (depth %d)", NumStackSlots)
		}
		m.Stack[m.SP] = m.PC
		m.SP++
		m.PC = nnn

	case 0x3000:
		if m.V[x] == kk {
			m.PC += 2
		}

	case 0x4000:
		if m.V[x] != kk {
			m.PC += 2
		}

	case 0x5000:
		if n == 0 && m.V[x] == m.V[y] {
			m.PC += 2
		}

	case 0x6000:
		m.V[x] = kk

	case 0x7000:
		m.V[x] += kk // wraps mod 256, VF untouched

	case 0x8000:
		switch n {
		case 0x0:
			m.V[x] = m.V[y]
		case 0x1:
			m.V[x] = m.V[x] | m.V[y]
		case 0x2:
			m.V[x] = m.V[x] & m.V[y]
		case 0x3:
			m.V[x] = m.V[x] ^ m.V[y]
		case 0x4:
			s := uint16(m.V[x]) + uint16(m.V[y])
			flag := byte(0)
			if s > 255 {
				flag = 1
			}
			m.V[0xF] = flag
			m.V[x] = byte(s) // written last: overwrites VF when x == 0xF
		case 0x5:
			flag := byte(0)
			if m.V[x] > m.V[y] {
				flag = 1
			}
			diff := m.V[x] - m.V[y]
			m.V[0xF] = flag
			m.V[x] = diff
		case 0x6:
			flag := m.V[x] & 0x1
			shifted := m.V[x] >> 1
			m.V[0xF] = flag
			m.V[x] = shifted
		case 0x7:
			flag := byte(0)
			if m.V[y] > m.V[x] {
				flag = 1
			}
			diff := m.V[y] - m.V[x]
			m.V[0xF] = flag
			m.V[x] = diff
		case 0xE:
			flag := (m.V[x] >> 7) & 0x1
			shifted := m.V[x] << 1
			m.V[0xF] = flag
			m.V[x] = shifted
		default:
			return chiperr.New(chiperr.UnsupportedOpcode, "opcode 0x%04X", opcode)
		}

	case 0x9000:
		if n == 0 && m.V[x] != m.V[y] {
			m.PC += 2
		}

	case 0xA000:
		m.I = nnn

	case 0xB000:
		m.PC = nnn + uint16(m.V[0]) // classic semantics

	case 0xC000:
		m.V[x] = m.rand.Byte() & kk

	case 0xD000:
		m.drawSprite(x, y, n)

	case 0xE000:
		switch kk {
		case 0x9E:
			if m.keypad.IsPressed(m.V[x] & 0x0F) {
				m.PC += 2
			}
		case 0xA1:
			if m.keypad.IsNotPressed(m.V[x] & 0x0F) {
				m.PC += 2
			}
		default:
			return chiperr.New(chiperr.UnsupportedOpcode, "opcode 0x%04X", opcode)
		}

	case 0xF000:
		switch kk {
		case 0x07:
			m.V[x] = m.Timers.DelayTimer
		case 0x0A:
			if key, ok := m.keypad.ConsumeNewlyPressed(); ok {
				m.V[x] = key
			} else {
				m.PC -= 2 // retry the same instruction next cycle
			}
		case 0x15:
			m.Timers.DelayTimer = m.V[x]
		case 0x18:
			m.Timers.SoundTimer = m.V[x]
		case 0x1E:
			m.I += uint16(m.V[x])
		case 0x29:
			m.I = FontBase + 5*uint16(m.V[x]&0x0F)
		case 0x33:
			v := m.V[x]
			m.Memory[m.I] = v / 100
			m.Memory[m.I+1] = (v / 10) % 10
			m.Memory[m.I+2] = v % 10
		case 0x55:
			for r := uint16(0); r <= uint16(x); r++ {
				m.Memory[m.I+r] = m.V[r]
			}
		case 0x65:
			for r := uint16(0); r <= uint16(x); r++ {
				m.V[r] = m.Memory[m.I+r]
			}
		default:
			return chiperr.New(chiperr.UnsupportedOpcode, "opcode 0x%04X", opcode)
		}

	default:
		return chiperr.New(chiperr.UnsupportedOpcode, "opcode 0x%04X", opcode)
	}

	return nil
}

// drawSprite implements Dxyn: an n-byte sprite from memory[I..I+n) is XORed
// onto the framebuffer at (V[x] mod 64, V[y] mod 32), wrapping both axes per
// row. VF is set once, after every row has been drawn, to 1 iff any XOR
// flipped a previously-set pixel to clear.
func (m *Machine) drawSprite(x, y, n byte) {
	x0 := int(m.V[x]) % display.Width
	y0 := int(m.V[y]) % display.Height
	collision := false

	for row := 0; row < int(n); row++ {
		spriteByte := m.Memory[int(m.I)+row]
		yy := (y0 + row) % display.Height
		for bit := 0; bit < 8; bit++ {
			if spriteByte&(0x80>>uint(bit)) == 0 {
				continue
			}
			xx := (x0 + bit) % display.Width
			if m.getPixel(xx, yy) {
				collision = true
			}
			m.togglePixel(xx, yy)
		}
	}

	if collision {
		m.V[0xF] = 1
	} else {
		m.V[0xF] = 0
	}
}

func (m *Machine) getPixel(x, y int) bool {
	idx := y*display.BytesPerRow + x/8
	bitPos := uint(7 - x%8)
	return m.Display[idx]&(1<<bitPos) != 0
}

func (m *Machine) togglePixel(x, y int) {
	idx := y*display.BytesPerRow + x/8
	bitPos := uint(7 - x%8)
	m.Display[idx] ^= 1 << bitPos
}
