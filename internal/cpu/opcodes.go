package cpu

// execute dispatches a fetched opcode and returns its cost in T-states.
// The LD r,r' block (0x40-0x7F) and the ALU block (0x80-0xBF) are decoded
// from their register fields; everything else is an explicit case.
func (c *CPU) execute(opcode uint8) int {
	// LD r,r' block, with HALT at 0x76
	if opcode >= 0x40 && opcode <= 0x7F {
		if opcode == 0x76 {
			c.State.Halted = true
			return 4
		}
		dst := (opcode >> 3) & 0x07
		src := opcode & 0x07
		c.writeReg(dst, c.readReg(src))
		if src == 6 || dst == 6 {
			return 8
		}
		return 4
	}

	// ALU A,r block: ADD ADC SUB SBC AND XOR OR CP
	if opcode >= 0x80 && opcode <= 0xBF {
		src := opcode & 0x07
		value := c.readReg(src)
		switch (opcode >> 3) & 0x07 {
		case 0:
			c.add8(value)
		case 1:
			c.adc8(value)
		case 2:
			c.sub8(value)
		case 3:
			c.sbc8(value)
		case 4:
			c.and8(value)
		case 5:
			c.xor8(value)
		case 6:
			c.or8(value)
		case 7:
			c.cp8(value)
		}
		if src == 6 {
			return 8
		}
		return 4
	}

	switch opcode {
	// --- 0x00-0x3F ---
	case 0x00: // NOP
		return 4
	case 0x01: // LD BC,nn
		c.SetBC(c.Fetch16())
		return 12
	case 0x02: // LD (BC),A
		c.Mem.Write8(c.BC(), c.State.A)
		return 8
	case 0x03: // INC BC
		c.SetBC(c.BC() + 1)
		return 8
	case 0x04: // INC B
		c.State.B = c.inc8(c.State.B)
		return 4
	case 0x05: // DEC B
		c.State.B = c.dec8(c.State.B)
		return 4
	case 0x06: // LD B,n
		c.State.B = c.Fetch8()
		return 8
	case 0x07: // RLCA
		c.State.A = c.rlc(c.State.A)
		c.SetFlag(FlagZ, false)
		return 4
	case 0x08: // LD (nn),SP
		c.Mem.Write16(c.Fetch16(), c.State.SP)
		return 20
	case 0x09: // ADD HL,BC
		c.addHL(c.BC())
		return 8
	case 0x0A: // LD A,(BC)
		c.State.A = c.Mem.Read8(c.BC())
		return 8
	case 0x0B: // DEC BC
		c.SetBC(c.BC() - 1)
		return 8
	case 0x0C: // INC C
		c.State.C = c.inc8(c.State.C)
		return 4
	case 0x0D: // DEC C
		c.State.C = c.dec8(c.State.C)
		return 4
	case 0x0E: // LD C,n
		c.State.C = c.Fetch8()
		return 8
	case 0x0F: // RRCA
		c.State.A = c.rrc(c.State.A)
		c.SetFlag(FlagZ, false)
		return 4

	case 0x10: // STOP
		c.Fetch8() // padding byte
		c.State.Stopped = true
		return 4
	case 0x11: // LD DE,nn
		c.SetDE(c.Fetch16())
		return 12
	case 0x12: // LD (DE),A
		c.Mem.Write8(c.DE(), c.State.A)
		return 8
	case 0x13: // INC DE
		c.SetDE(c.DE() + 1)
		return 8
	case 0x14: // INC D
		c.State.D = c.inc8(c.State.D)
		return 4
	case 0x15: // DEC D
		c.State.D = c.dec8(c.State.D)
		return 4
	case 0x16: // LD D,n
		c.State.D = c.Fetch8()
		return 8
	case 0x17: // RLA
		c.State.A = c.rl(c.State.A)
		c.SetFlag(FlagZ, false)
		return 4
	case 0x18: // JR e
		return c.jr(true)
	case 0x19: // ADD HL,DE
		c.addHL(c.DE())
		return 8
	case 0x1A: // LD A,(DE)
		c.State.A = c.Mem.Read8(c.DE())
		return 8
	case 0x1B: // DEC DE
		c.SetDE(c.DE() - 1)
		return 8
	case 0x1C: // INC E
		c.State.E = c.inc8(c.State.E)
		return 4
	case 0x1D: // DEC E
		c.State.E = c.dec8(c.State.E)
		return 4
	case 0x1E: // LD E,n
		c.State.E = c.Fetch8()
		return 8
	case 0x1F: // RRA
		c.State.A = c.rr(c.State.A)
		c.SetFlag(FlagZ, false)
		return 4

	case 0x20: // JR NZ,e
		return c.jr(!c.GetFlag(FlagZ))
	case 0x21: // LD HL,nn
		c.SetHL(c.Fetch16())
		return 12
	case 0x22: // LD (HL+),A
		c.Mem.Write8(c.HL(), c.State.A)
		c.SetHL(c.HL() + 1)
		return 8
	case 0x23: // INC HL
		c.SetHL(c.HL() + 1)
		return 8
	case 0x24: // INC H
		c.State.H = c.inc8(c.State.H)
		return 4
	case 0x25: // DEC H
		c.State.H = c.dec8(c.State.H)
		return 4
	case 0x26: // LD H,n
		c.State.H = c.Fetch8()
		return 8
	case 0x27: // DAA
		c.daa()
		return 4
	case 0x28: // JR Z,e
		return c.jr(c.GetFlag(FlagZ))
	case 0x29: // ADD HL,HL
		c.addHL(c.HL())
		return 8
	case 0x2A: // LD A,(HL+)
		c.State.A = c.Mem.Read8(c.HL())
		c.SetHL(c.HL() + 1)
		return 8
	case 0x2B: // DEC HL
		c.SetHL(c.HL() - 1)
		return 8
	case 0x2C: // INC L
		c.State.L = c.inc8(c.State.L)
		return 4
	case 0x2D: // DEC L
		c.State.L = c.dec8(c.State.L)
		return 4
	case 0x2E: // LD L,n
		c.State.L = c.Fetch8()
		return 8
	case 0x2F: // CPL
		c.State.A = ^c.State.A
		c.SetFlag(FlagN, true)
		c.SetFlag(FlagH, true)
		return 4

	case 0x30: // JR NC,e
		return c.jr(!c.GetFlag(FlagC))
	case 0x31: // LD SP,nn
		c.State.SP = c.Fetch16()
		return 12
	case 0x32: // LD (HL-),A
		c.Mem.Write8(c.HL(), c.State.A)
		c.SetHL(c.HL() - 1)
		return 8
	case 0x33: // INC SP
		c.State.SP++
		return 8
	case 0x34: // INC (HL)
		c.Mem.Write8(c.HL(), c.inc8(c.Mem.Read8(c.HL())))
		return 12
	case 0x35: // DEC (HL)
		c.Mem.Write8(c.HL(), c.dec8(c.Mem.Read8(c.HL())))
		return 12
	case 0x36: // LD (HL),n
		c.Mem.Write8(c.HL(), c.Fetch8())
		return 12
	case 0x37: // SCF
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, true)
		return 4
	case 0x38: // JR C,e
		return c.jr(c.GetFlag(FlagC))
	case 0x39: // ADD HL,SP
		c.addHL(c.State.SP)
		return 8
	case 0x3A: // LD A,(HL-)
		c.State.A = c.Mem.Read8(c.HL())
		c.SetHL(c.HL() - 1)
		return 8
	case 0x3B: // DEC SP
		c.State.SP--
		return 8
	case 0x3C: // INC A
		c.State.A = c.inc8(c.State.A)
		return 4
	case 0x3D: // DEC A
		c.State.A = c.dec8(c.State.A)
		return 4
	case 0x3E: // LD A,n
		c.State.A = c.Fetch8()
		return 8
	case 0x3F: // CCF
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, false)
		c.SetFlag(FlagC, !c.GetFlag(FlagC))
		return 4

	// --- 0xC0-0xFF ---
	case 0xC0: // RET NZ
		return c.ret(!c.GetFlag(FlagZ))
	case 0xC1: // POP BC
		c.SetBC(c.pop16())
		return 12
	case 0xC2: // JP NZ,nn
		return c.jp(!c.GetFlag(FlagZ))
	case 0xC3: // JP nn
		return c.jp(true)
	case 0xC4: // CALL NZ,nn
		return c.call(!c.GetFlag(FlagZ))
	case 0xC5: // PUSH BC
		c.push16(c.BC())
		return 16
	case 0xC6: // ADD A,n
		c.add8(c.Fetch8())
		return 8
	case 0xC7: // RST 00
		return c.rst(0x00)
	case 0xC8: // RET Z
		return c.ret(c.GetFlag(FlagZ))
	case 0xC9: // RET
		c.State.PC = c.pop16()
		return 16
	case 0xCA: // JP Z,nn
		return c.jp(c.GetFlag(FlagZ))
	case 0xCB: // CB prefix
		return c.executeCB()
	case 0xCC: // CALL Z,nn
		return c.call(c.GetFlag(FlagZ))
	case 0xCD: // CALL nn
		return c.call(true)
	case 0xCE: // ADC A,n
		c.adc8(c.Fetch8())
		return 8
	case 0xCF: // RST 08
		return c.rst(0x08)

	case 0xD0: // RET NC
		return c.ret(!c.GetFlag(FlagC))
	case 0xD1: // POP DE
		c.SetDE(c.pop16())
		return 12
	case 0xD2: // JP NC,nn
		return c.jp(!c.GetFlag(FlagC))
	case 0xD4: // CALL NC,nn
		return c.call(!c.GetFlag(FlagC))
	case 0xD5: // PUSH DE
		c.push16(c.DE())
		return 16
	case 0xD6: // SUB n
		c.sub8(c.Fetch8())
		return 8
	case 0xD7: // RST 10
		return c.rst(0x10)
	case 0xD8: // RET C
		return c.ret(c.GetFlag(FlagC))
	case 0xD9: // RETI
		c.State.PC = c.pop16()
		c.State.IME = true
		return 16
	case 0xDA: // JP C,nn
		return c.jp(c.GetFlag(FlagC))
	case 0xDC: // CALL C,nn
		return c.call(c.GetFlag(FlagC))
	case 0xDE: // SBC A,n
		c.sbc8(c.Fetch8())
		return 8
	case 0xDF: // RST 18
		return c.rst(0x18)

	case 0xE0: // LDH (n),A
		c.Mem.Write8(0xFF00+uint16(c.Fetch8()), c.State.A)
		return 12
	case 0xE1: // POP HL
		c.SetHL(c.pop16())
		return 12
	case 0xE2: // LD (0xFF00+C),A
		c.Mem.Write8(0xFF00+uint16(c.State.C), c.State.A)
		return 8
	case 0xE5: // PUSH HL
		c.push16(c.HL())
		return 16
	case 0xE6: // AND n
		c.and8(c.Fetch8())
		return 8
	case 0xE7: // RST 20
		return c.rst(0x20)
	case 0xE8: // ADD SP,e8
		c.State.SP = c.addSP(c.State.SP)
		return 16
	case 0xE9: // JP (HL)
		c.State.PC = c.HL()
		return 4
	case 0xEA: // LD (nn),A
		c.Mem.Write8(c.Fetch16(), c.State.A)
		return 16
	case 0xEE: // XOR n
		c.xor8(c.Fetch8())
		return 8
	case 0xEF: // RST 28
		return c.rst(0x28)

	case 0xF0: // LDH A,(n)
		c.State.A = c.Mem.Read8(0xFF00 + uint16(c.Fetch8()))
		return 12
	case 0xF1: // POP AF
		c.SetAF(c.pop16())
		return 12
	case 0xF2: // LD A,(0xFF00+C)
		c.State.A = c.Mem.Read8(0xFF00 + uint16(c.State.C))
		return 8
	case 0xF3: // DI
		c.State.IME = false
		c.imePending = false
		return 4
	case 0xF5: // PUSH AF
		c.push16(c.AF())
		return 16
	case 0xF6: // OR n
		c.or8(c.Fetch8())
		return 8
	case 0xF7: // RST 30
		return c.rst(0x30)
	case 0xF8: // LD HL,SP+e8
		c.SetHL(c.addSP(c.State.SP))
		return 12
	case 0xF9: // LD SP,HL
		c.State.SP = c.HL()
		return 8
	case 0xFA: // LD A,(nn)
		c.State.A = c.Mem.Read8(c.Fetch16())
		return 16
	case 0xFB: // EI
		c.imePending = true
		return 4
	case 0xFE: // CP n
		c.cp8(c.Fetch8())
		return 8
	case 0xFF: // RST 38
		return c.rst(0x38)

	default:
		// Illegal opcodes (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC,
		// 0xED, 0xF4, 0xFC, 0xFD) behave as NOP
		if c.Log != nil {
			c.Log.LogUnknownOpcode(opcode, c.State.PC-1)
		}
		return 4
	}
}

// --- 8-bit ALU ---

func (c *CPU) add8(value uint8) {
	a := c.State.A
	result := a + value
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (a&0x0F)+(value&0x0F) > 0x0F)
	c.SetFlag(FlagC, uint16(a)+uint16(value) > 0xFF)
	c.State.A = result
}

func (c *CPU) adc8(value uint8) {
	carry := uint8(0)
	if c.GetFlag(FlagC) {
		carry = 1
	}
	a := c.State.A
	result := a + value + carry
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (a&0x0F)+(value&0x0F)+carry > 0x0F)
	c.SetFlag(FlagC, uint16(a)+uint16(value)+uint16(carry) > 0xFF)
	c.State.A = result
}

func (c *CPU) sub8(value uint8) {
	a := c.State.A
	result := a - value
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, (a&0x0F) < (value&0x0F))
	c.SetFlag(FlagC, a < value)
	c.State.A = result
}

func (c *CPU) sbc8(value uint8) {
	carry := uint8(0)
	if c.GetFlag(FlagC) {
		carry = 1
	}
	a := c.State.A
	result := a - value - carry
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, (a&0x0F) < (value&0x0F)+carry)
	c.SetFlag(FlagC, uint16(a) < uint16(value)+uint16(carry))
	c.State.A = result
}

func (c *CPU) and8(value uint8) {
	c.State.A &= value
	c.SetFlag(FlagZ, c.State.A == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, true)
	c.SetFlag(FlagC, false)
}

func (c *CPU) or8(value uint8) {
	c.State.A |= value
	c.SetFlag(FlagZ, c.State.A == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, false)
}

func (c *CPU) xor8(value uint8) {
	c.State.A ^= value
	c.SetFlag(FlagZ, c.State.A == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, false)
}

// cp8 compares A against the operand without storing the result
func (c *CPU) cp8(value uint8) {
	a := c.State.A
	c.SetFlag(FlagZ, a == value)
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, (a&0x0F) < (value&0x0F))
	c.SetFlag(FlagC, a < value)
}

// inc8 increments a value; C is preserved
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (value&0x0F) == 0x0F)
	return result
}

// dec8 decrements a value; C is preserved
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.SetFlag(FlagZ, result == 0)
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, (value&0x0F) == 0)
	return result
}

// addHL adds a 16-bit value into HL; Z is preserved, H is the bit-11
// carry and C the bit-15 carry
func (c *CPU) addHL(value uint16) {
	hl := c.HL()
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.SetFlag(FlagC, uint32(hl)+uint32(value) > 0xFFFF)
	c.SetHL(hl + value)
}

// addSP computes sp + signed immediate for ADD SP,e8 and LD HL,SP+e8.
// H and C come from the unsigned low-byte add; Z and N are cleared.
func (c *CPU) addSP(sp uint16) uint16 {
	e := c.Fetch8()
	c.SetFlag(FlagZ, false)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, (sp&0x0F)+uint16(e&0x0F) > 0x0F)
	c.SetFlag(FlagC, (sp&0xFF)+uint16(e) > 0xFF)
	return sp + uint16(int8(e))
}

// daa applies BCD correction to A after an add or subtract
func (c *CPU) daa() {
	a := c.State.A
	if !c.GetFlag(FlagN) {
		if c.GetFlag(FlagC) || a > 0x99 {
			a += 0x60
			c.SetFlag(FlagC, true)
		}
		if c.GetFlag(FlagH) || (a&0x0F) > 0x09 {
			a += 0x06
		}
	} else {
		if c.GetFlag(FlagC) {
			a -= 0x60
		}
		if c.GetFlag(FlagH) {
			a -= 0x06
		}
	}
	c.SetFlag(FlagZ, a == 0)
	c.SetFlag(FlagH, false)
	c.State.A = a
}

// --- control flow ---

// jr fetches the signed displacement, then adds it to PC if the
// condition holds
func (c *CPU) jr(condition bool) int {
	e := int8(c.Fetch8())
	if !condition {
		return 8
	}
	c.State.PC = uint16(int32(c.State.PC) + int32(e))
	return 12
}

func (c *CPU) jp(condition bool) int {
	addr := c.Fetch16()
	if !condition {
		return 12
	}
	c.State.PC = addr
	return 16
}

func (c *CPU) call(condition bool) int {
	addr := c.Fetch16()
	if !condition {
		return 12
	}
	c.push16(c.State.PC)
	c.State.PC = addr
	return 24
}

func (c *CPU) ret(condition bool) int {
	if !condition {
		return 8
	}
	c.State.PC = c.pop16()
	return 20
}

func (c *CPU) rst(vector uint16) int {
	c.push16(c.State.PC)
	c.State.PC = vector
	return 16
}

// --- stack ---

// push16 predecrements SP by 2, storing the high byte at SP+1 and the
// low byte at SP
func (c *CPU) push16(value uint16) {
	c.State.SP--
	c.Mem.Write8(c.State.SP, uint8(value>>8))
	c.State.SP--
	c.Mem.Write8(c.State.SP, uint8(value))
}

// pop16 loads the low byte at SP and the high byte at SP+1, then
// postincrements SP by 2
func (c *CPU) pop16() uint16 {
	low := c.Mem.Read8(c.State.SP)
	c.State.SP++
	high := c.Mem.Read8(c.State.SP)
	c.State.SP++
	return (uint16(high) << 8) | uint16(low)
}
