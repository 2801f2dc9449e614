package cpu

// instr describes one of the 256 opcode bytes: its addressing mode, base
// cycle count (before any oops cycle), and whether indexed-addressing oops
// cycles are unconditional (writes/RMW) or only on an actual page cross
// (reads).
type instr struct {
	name   string
	mode   AddressingMode
	cycles uint8
	oops   OopsHandling
}

var instrTable = buildInstrTable()

// StepInstruction executes exactly one instruction, including the deferred
// interrupt dispatch the previous instruction may have queued up. Interrupt
// polling happens at the specific points real hardware samples the lines:
// early (right after the opcode fetch) for 2-cycle instructions, PLP, and
// every branch; an extra poll before a taken+crossed branch's PCH-fixup
// cycle; and otherwise on the instruction's final cycle.
func (c *CPU) StepInstruction() {
	if c.halted {
		return
	}

	c.Snapshot()

	opcode := c.readBus(c.PC)
	c.PC++

	in := instrTable[opcode]
	earlyPoll := in.cycles == 2 || opcode == 0x28 || isBranchOpcode(opcode)
	if earlyPoll {
		c.instructionPollInterrupts()
	}

	c.execute(opcode, in)

	if !earlyPoll {
		c.instructionPollInterrupts()
	}

	if c.interruptHandlerPending != InterruptNone {
		kind := c.interruptHandlerPending
		c.interruptHandlerPending = InterruptNone
		c.dummyReadBus(c.PC)
		c.dummyReadBus(c.PC)
		c.handleInterrupt(kind)
	}
}

func isBranchOpcode(op uint8) bool {
	switch op {
	case 0x10, 0x30, 0x50, 0x70, 0x90, 0xB0, 0xD0, 0xF0:
		return true
	}
	return false
}

func (c *CPU) execute(opcode uint8, in instr) {
	op := c.fetchOperand(in.mode, in.oops)

	switch opcode {
	// Load/store
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
		c.A = c.readOperand(in.mode, op)
		c.setZN(c.A)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
		c.X = c.readOperand(in.mode, op)
		c.setZN(c.X)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
		c.Y = c.readOperand(in.mode, op)
		c.setZN(c.Y)
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
		c.writeOperand(in.mode, op, c.A)
	case 0x86, 0x96, 0x8E:
		c.writeOperand(in.mode, op, c.X)
	case 0x84, 0x94, 0x8C:
		c.writeOperand(in.mode, op, c.Y)

	// Transfers
	case 0xAA:
		c.X = c.A
		c.setZN(c.X)
	case 0xA8:
		c.Y = c.A
		c.setZN(c.Y)
	case 0x8A:
		c.A = c.X
		c.setZN(c.A)
	case 0x98:
		c.A = c.Y
		c.setZN(c.A)
	case 0xBA:
		c.X = c.SP
		c.setZN(c.X)
	case 0x9A:
		c.SP = c.X

	// Stack
	case 0x48:
		c.push(c.A)
	case 0x68:
		c.dummyReadBus(stackBase + uint16(c.SP))
		c.A = c.pop()
		c.setZN(c.A)
	case 0x08:
		c.push(c.status() | flagB | flagU)
	case 0x28:
		c.dummyReadBus(stackBase + uint16(c.SP))
		c.setStatus(c.pop())

	// Arithmetic
	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
		c.adc(c.readOperand(in.mode, op))
	case 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1, 0xEB:
		c.sbc(c.readOperand(in.mode, op))
	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
		c.compare(c.A, c.readOperand(in.mode, op))
	case 0xE0, 0xE4, 0xEC:
		c.compare(c.X, c.readOperand(in.mode, op))
	case 0xC0, 0xC4, 0xCC:
		c.compare(c.Y, c.readOperand(in.mode, op))

	// Increments/decrements
	case 0xE6, 0xF6, 0xEE, 0xFE:
		c.rmw(in.mode, op, func(v uint8) uint8 { return v + 1 })
	case 0xC6, 0xD6, 0xCE, 0xDE:
		c.rmw(in.mode, op, func(v uint8) uint8 { return v - 1 })
	case 0xE8:
		c.X++
		c.setZN(c.X)
	case 0xC8:
		c.Y++
		c.setZN(c.Y)
	case 0xCA:
		c.X--
		c.setZN(c.X)
	case 0x88:
		c.Y--
		c.setZN(c.Y)

	// Shifts/rotates
	case 0x0A:
		c.A = c.asl(c.A)
		c.setZN(c.A)
	case 0x06, 0x16, 0x0E, 0x1E:
		c.rmw(in.mode, op, c.asl)
	case 0x4A:
		c.A = c.lsr(c.A)
		c.setZN(c.A)
	case 0x46, 0x56, 0x4E, 0x5E:
		c.rmw(in.mode, op, c.lsr)
	case 0x2A:
		c.A = c.rol(c.A)
		c.setZN(c.A)
	case 0x26, 0x36, 0x2E, 0x3E:
		c.rmw(in.mode, op, c.rol)
	case 0x6A:
		c.A = c.ror(c.A)
		c.setZN(c.A)
	case 0x66, 0x76, 0x6E, 0x7E:
		c.rmw(in.mode, op, c.ror)

	// Logic
	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
		c.A &= c.readOperand(in.mode, op)
		c.setZN(c.A)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
		c.A |= c.readOperand(in.mode, op)
		c.setZN(c.A)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
		c.A ^= c.readOperand(in.mode, op)
		c.setZN(c.A)
	case 0x24, 0x2C:
		c.bit(c.readOperand(in.mode, op))

	// Flags
	case 0x18:
		c.C = false
	case 0x38:
		c.C = true
	case 0x58:
		c.I = false
	case 0x78:
		c.I = true
	case 0xB8:
		c.V = false
	case 0xD8:
		c.D = false
	case 0xF8:
		c.D = true

	// Branches
	case 0x10:
		c.branch(!c.N, op.addr)
	case 0x30:
		c.branch(c.N, op.addr)
	case 0x50:
		c.branch(!c.V, op.addr)
	case 0x70:
		c.branch(c.V, op.addr)
	case 0x90:
		c.branch(!c.C, op.addr)
	case 0xB0:
		c.branch(c.C, op.addr)
	case 0xD0:
		c.branch(!c.Z, op.addr)
	case 0xF0:
		c.branch(c.Z, op.addr)

	// Jumps/calls
	case 0x4C:
		c.PC = op.addr
	case 0x6C:
		c.PC = op.addr
	case 0x20:
		// JSR: the Immediate-shaped operand fetch above only steps PC past
		// the low byte without a bus read; the real 6502 interleaves a
		// stack peek between the two operand bytes, so jsr performs both
		// operand reads itself.
		c.jsr(op.addr)
	case 0x60:
		c.dummyReadBus(stackBase + uint16(c.SP))
		c.PC = c.popWord() + 1
		c.dummyReadBus(c.PC - 1)
	case 0x40:
		c.rti()
	case 0x00:
		c.brk()

	case 0xEA:
		// NOP

	// Illegal opcodes in common use by test ROMs and commercial games.
	case 0xA3, 0xA7, 0xAF, 0xB3, 0xB7, 0xBF: // LAX
		v := c.readOperand(in.mode, op)
		c.A, c.X = v, v
		c.setZN(v)
	case 0x83, 0x87, 0x8F, 0x97: // SAX / AAX
		c.writeOperand(in.mode, op, c.A&c.X)
	case 0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDB, 0xDF: // DCP
		c.rmw(in.mode, op, func(v uint8) uint8 { return v - 1 }).andThen(func(v uint8) { c.compare(c.A, v) })
	case 0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFB, 0xFF: // ISC/ISB
		c.rmw(in.mode, op, func(v uint8) uint8 { return v + 1 }).andThen(func(v uint8) { c.sbc(v) })
	case 0x03, 0x07, 0x0F, 0x13, 0x17, 0x1B, 0x1F: // SLO
		c.rmw(in.mode, op, c.asl).andThen(func(v uint8) { c.A |= v; c.setZN(c.A) })
	case 0x23, 0x27, 0x2F, 0x33, 0x37, 0x3B, 0x3F: // RLA
		c.rmw(in.mode, op, c.rol).andThen(func(v uint8) { c.A &= v; c.setZN(c.A) })
	case 0x43, 0x47, 0x4F, 0x53, 0x57, 0x5B, 0x5F: // SRE
		c.rmw(in.mode, op, c.lsr).andThen(func(v uint8) { c.A ^= v; c.setZN(c.A) })
	case 0x63, 0x67, 0x6F, 0x73, 0x77, 0x7B, 0x7F: // RRA
		c.rmw(in.mode, op, c.ror).andThen(func(v uint8) { c.adc(v) })
	case 0x0B, 0x2B: // ANC
		c.A &= c.readOperand(in.mode, op)
		c.setZN(c.A)
		c.C = c.N
	case 0x4B: // ASR/ALR
		c.A &= c.readOperand(in.mode, op)
		c.A = c.lsr(c.A)
		c.setZN(c.A)
	case 0x6B: // ARR
		c.A &= c.readOperand(in.mode, op)
		c.A = c.ror(c.A)
		c.setZN(c.A)
		c.C = c.A&0x40 != 0
		c.V = (c.A&0x40 != 0) != (c.A&0x20 != 0)
	case 0xCB: // AXS/SBX
		v := c.readOperand(in.mode, op)
		t := (c.A & c.X)
		c.C = t >= v
		c.X = t - v
		c.setZN(c.X)
	case 0xAB: // ATX/LXA: load immediate into A and X together
		v := c.readOperand(in.mode, op)
		c.A = v
		c.X = v
		c.setZN(c.A)
	case 0x9E: // SXA/SHX: AND X with high byte+1, result becomes the high
		// address byte written back (the unstable hardware variant)
		hi := uint8(op.addr>>8) + 1
		v := c.X & hi
		c.writeOperand(in.mode, operand{addr: (uint16(v) << 8) | (op.addr & 0xFF)}, v)
	case 0x9C: // SYA/SHY
		hi := uint8(op.addr>>8) + 1
		v := c.Y & hi
		c.writeOperand(in.mode, operand{addr: (uint16(v) << 8) | (op.addr & 0xFF)}, v)
	case 0x9B: // XAS/TAS
		c.SP = c.A & c.X
		hi := uint8(op.addr>>8) + 1
		c.writeOperand(in.mode, op, c.SP&hi)
	case 0x8B: // XAA (highly unstable on real hardware; modelled as TXA+AND)
		c.A = c.X
		c.A &= c.readOperand(in.mode, op)
		c.setZN(c.A)
	case 0x93, 0x9F: // AXA/SHA: store A AND X AND (high address byte+1); as
		// with SXA/SYA, the result also becomes the high address byte
		hi := uint8(op.addr>>8) + 1
		v := c.A & c.X & hi
		c.writeOperand(in.mode, operand{addr: (uint16(v) << 8) | (op.addr & 0xFF)}, v)
	case 0xBB: // LAR/LAS: AND memory with SP, result into A, X, and SP
		v := c.readOperand(in.mode, op) & c.SP
		c.A, c.X, c.SP = v, v, v
		c.setZN(c.A)
	case 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA: // NOP
	case 0x80, 0x82, 0x89, 0xC2, 0xE2: // DOP (immediate)
		c.readOperand(in.mode, op)
	case 0x04, 0x44, 0x64, 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4: // DOP (zp/zpx)
		c.readOperand(in.mode, op)
	case 0x0C: // TOP
		c.readOperand(in.mode, op)
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC: // TOP (abs,X)
		c.readOperand(in.mode, op)
	case 0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2: // JAM/KIL
		c.halted = true
	default:
		c.halted = true
	}
}

// rmwResult lets the illegal combo opcodes (SLO/RLA/SRE/RRA/DCP/ISC) chain a
// second A-register update onto the read-modify-write they share with their
// legal counterpart, without re-reading the operand.
type rmwResult struct{ value uint8 }

func (r rmwResult) andThen(f func(uint8)) { f(r.value) }

// rmw performs the documented redundant-write read-modify-write sequence:
// read, dummy-write the unmodified value back, then write the modified
// value.
func (c *CPU) rmw(mode AddressingMode, op operand, f func(uint8) uint8) rmwResult {
	v := c.readOperand(mode, op)
	c.writeOperand(mode, op, v) // redundant write of the unmodified value
	nv := f(v)
	c.writeOperand(mode, op, nv)
	c.setZN(nv)
	return rmwResult{value: nv}
}

func (c *CPU) adc(v uint8) {
	sum := uint16(c.A) + uint16(v)
	if c.C {
		sum++
	}
	result := uint8(sum)
	c.V = (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) sbc(v uint8) {
	c.adc(v ^ 0xFF)
}

func (c *CPU) compare(reg, v uint8) {
	c.C = reg >= v
	c.setZN(reg - v)
}

func (c *CPU) bit(v uint8) {
	c.Z = (c.A & v) == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

func (c *CPU) asl(v uint8) uint8 {
	c.C = v&0x80 != 0
	return v << 1
}

func (c *CPU) lsr(v uint8) uint8 {
	c.C = v&0x01 != 0
	return v >> 1
}

func (c *CPU) rol(v uint8) uint8 {
	carry := v&0x80 != 0
	r := v << 1
	if c.C {
		r |= 1
	}
	c.C = carry
	return r
}

func (c *CPU) ror(v uint8) uint8 {
	carry := v&0x01 != 0
	r := v >> 1
	if c.C {
		r |= 0x80
	}
	c.C = carry
	return r
}

// branch implements the shared taken/not-taken sequence for all eight
// branch opcodes, including the extra interrupt poll before the PCH-fixup
// cycle of a taken-and-crossed branch - on real hardware that fixup cycle
// is indistinguishable from a fresh opcode fetch, so an NMI asserted during
// it must be observed before the fixup completes.
func (c *CPU) branch(taken bool, operandAddr uint16) {
	offset := int8(c.readBus(operandAddr))
	if !taken {
		return
	}
	target := uint16(int32(c.PC) + int32(offset))
	c.dummyReadBus(c.PC)
	if (c.PC & 0xFF00) != (target & 0xFF00) {
		c.instructionPollInterrupts()
		fixup := (c.PC & 0xFF00) | (target & 0x00FF)
		c.dummyReadBus(fixup)
	}
	c.PC = target
}

func (c *CPU) jsr(loAddr uint16) {
	lo := uint16(c.readBus(loAddr))
	c.dummyReadBus(stackBase + uint16(c.SP))
	c.pushWord(c.PC)
	c.TagReturnAddress("jsr")
	hi := uint16(c.readBus(c.PC))
	c.PC = hi<<8 | lo
}

func (c *CPU) rti() {
	c.dummyReadBus(stackBase + uint16(c.SP))
	c.setStatus(c.pop())
	c.PC = c.popWord()
}

// brk runs the shared handleInterrupt dispatch inline; an NMI edge that
// arrives during BRK's own push sequence still hijacks the vector it
// ultimately reads, through handleInterrupt's nmiEdgeDetected re-check.
func (c *CPU) brk() {
	c.interruptHandlerPending = InterruptBRK
	c.handleInterrupt(InterruptBRK)
	c.interruptHandlerPending = InterruptNone
}

func buildInstrTable() [256]instr {
	var t [256]instr
	set := func(op uint8, name string, mode AddressingMode, cycles uint8, oops OopsHandling) {
		t[op] = instr{name: name, mode: mode, cycles: cycles, oops: oops}
	}
	// Only cycle counts/modes that diverge from fetchOperand's own
	// dummy-read accounting need to be precise here; the table mainly
	// exists to decide early-poll eligibility (cycles==2) and oops mode.
	set(0xA9, "LDA", Immediate, 2, OopsNormal)
	set(0xA5, "LDA", ZeroPage, 3, OopsNormal)
	set(0xB5, "LDA", ZeroPageX, 4, OopsNormal)
	set(0xAD, "LDA", Absolute, 4, OopsNormal)
	set(0xBD, "LDA", AbsoluteX, 4, OopsNormal)
	set(0xB9, "LDA", AbsoluteY, 4, OopsNormal)
	set(0xA1, "LDA", IndexedIndirect, 6, OopsNormal)
	set(0xB1, "LDA", IndirectIndexed, 5, OopsNormal)
	set(0xA2, "LDX", Immediate, 2, OopsNormal)
	set(0xA6, "LDX", ZeroPage, 3, OopsNormal)
	set(0xB6, "LDX", ZeroPageY, 4, OopsNormal)
	set(0xAE, "LDX", Absolute, 4, OopsNormal)
	set(0xBE, "LDX", AbsoluteY, 4, OopsNormal)
	set(0xA0, "LDY", Immediate, 2, OopsNormal)
	set(0xA4, "LDY", ZeroPage, 3, OopsNormal)
	set(0xB4, "LDY", ZeroPageX, 4, OopsNormal)
	set(0xAC, "LDY", Absolute, 4, OopsNormal)
	set(0xBC, "LDY", AbsoluteX, 4, OopsNormal)
	set(0x85, "STA", ZeroPage, 3, OopsNormal)
	set(0x95, "STA", ZeroPageX, 4, OopsNormal)
	set(0x8D, "STA", Absolute, 4, OopsNormal)
	set(0x9D, "STA", AbsoluteX, 5, OopsAlways)
	set(0x99, "STA", AbsoluteY, 5, OopsAlways)
	set(0x81, "STA", IndexedIndirect, 6, OopsNormal)
	set(0x91, "STA", IndirectIndexed, 6, OopsAlways)
	set(0x86, "STX", ZeroPage, 3, OopsNormal)
	set(0x96, "STX", ZeroPageY, 4, OopsNormal)
	set(0x8E, "STX", Absolute, 4, OopsNormal)
	set(0x84, "STY", ZeroPage, 3, OopsNormal)
	set(0x94, "STY", ZeroPageX, 4, OopsNormal)
	set(0x8C, "STY", Absolute, 4, OopsNormal)
	set(0xAA, "TAX", Implied, 2, OopsNormal)
	set(0xA8, "TAY", Implied, 2, OopsNormal)
	set(0x8A, "TXA", Implied, 2, OopsNormal)
	set(0x98, "TYA", Implied, 2, OopsNormal)
	set(0xBA, "TSX", Implied, 2, OopsNormal)
	set(0x9A, "TXS", Implied, 2, OopsNormal)
	set(0x48, "PHA", Implied, 3, OopsNormal)
	set(0x68, "PLA", Implied, 4, OopsNormal)
	set(0x08, "PHP", Implied, 3, OopsNormal)
	set(0x28, "PLP", Implied, 4, OopsNormal)
	set(0x69, "ADC", Immediate, 2, OopsNormal)
	set(0x65, "ADC", ZeroPage, 3, OopsNormal)
	set(0x75, "ADC", ZeroPageX, 4, OopsNormal)
	set(0x6D, "ADC", Absolute, 4, OopsNormal)
	set(0x7D, "ADC", AbsoluteX, 4, OopsNormal)
	set(0x79, "ADC", AbsoluteY, 4, OopsNormal)
	set(0x61, "ADC", IndexedIndirect, 6, OopsNormal)
	set(0x71, "ADC", IndirectIndexed, 5, OopsNormal)
	set(0xE9, "SBC", Immediate, 2, OopsNormal)
	set(0xEB, "SBC", Immediate, 2, OopsNormal)
	set(0xE5, "SBC", ZeroPage, 3, OopsNormal)
	set(0xF5, "SBC", ZeroPageX, 4, OopsNormal)
	set(0xED, "SBC", Absolute, 4, OopsNormal)
	set(0xFD, "SBC", AbsoluteX, 4, OopsNormal)
	set(0xF9, "SBC", AbsoluteY, 4, OopsNormal)
	set(0xE1, "SBC", IndexedIndirect, 6, OopsNormal)
	set(0xF1, "SBC", IndirectIndexed, 5, OopsNormal)
	set(0xC9, "CMP", Immediate, 2, OopsNormal)
	set(0xC5, "CMP", ZeroPage, 3, OopsNormal)
	set(0xD5, "CMP", ZeroPageX, 4, OopsNormal)
	set(0xCD, "CMP", Absolute, 4, OopsNormal)
	set(0xDD, "CMP", AbsoluteX, 4, OopsNormal)
	set(0xD9, "CMP", AbsoluteY, 4, OopsNormal)
	set(0xC1, "CMP", IndexedIndirect, 6, OopsNormal)
	set(0xD1, "CMP", IndirectIndexed, 5, OopsNormal)
	set(0xE0, "CPX", Immediate, 2, OopsNormal)
	set(0xE4, "CPX", ZeroPage, 3, OopsNormal)
	set(0xEC, "CPX", Absolute, 4, OopsNormal)
	set(0xC0, "CPY", Immediate, 2, OopsNormal)
	set(0xC4, "CPY", ZeroPage, 3, OopsNormal)
	set(0xCC, "CPY", Absolute, 4, OopsNormal)
	set(0xE6, "INC", ZeroPage, 5, OopsNormal)
	set(0xF6, "INC", ZeroPageX, 6, OopsNormal)
	set(0xEE, "INC", Absolute, 6, OopsNormal)
	set(0xFE, "INC", AbsoluteX, 7, OopsAlways)
	set(0xC6, "DEC", ZeroPage, 5, OopsNormal)
	set(0xD6, "DEC", ZeroPageX, 6, OopsNormal)
	set(0xCE, "DEC", Absolute, 6, OopsNormal)
	set(0xDE, "DEC", AbsoluteX, 7, OopsAlways)
	set(0xE8, "INX", Implied, 2, OopsNormal)
	set(0xC8, "INY", Implied, 2, OopsNormal)
	set(0xCA, "DEX", Implied, 2, OopsNormal)
	set(0x88, "DEY", Implied, 2, OopsNormal)
	set(0x0A, "ASL", Accumulator, 2, OopsNormal)
	set(0x06, "ASL", ZeroPage, 5, OopsNormal)
	set(0x16, "ASL", ZeroPageX, 6, OopsNormal)
	set(0x0E, "ASL", Absolute, 6, OopsNormal)
	set(0x1E, "ASL", AbsoluteX, 7, OopsAlways)
	set(0x4A, "LSR", Accumulator, 2, OopsNormal)
	set(0x46, "LSR", ZeroPage, 5, OopsNormal)
	set(0x56, "LSR", ZeroPageX, 6, OopsNormal)
	set(0x4E, "LSR", Absolute, 6, OopsNormal)
	set(0x5E, "LSR", AbsoluteX, 7, OopsAlways)
	set(0x2A, "ROL", Accumulator, 2, OopsNormal)
	set(0x26, "ROL", ZeroPage, 5, OopsNormal)
	set(0x36, "ROL", ZeroPageX, 6, OopsNormal)
	set(0x2E, "ROL", Absolute, 6, OopsNormal)
	set(0x3E, "ROL", AbsoluteX, 7, OopsAlways)
	set(0x6A, "ROR", Accumulator, 2, OopsNormal)
	set(0x66, "ROR", ZeroPage, 5, OopsNormal)
	set(0x76, "ROR", ZeroPageX, 6, OopsNormal)
	set(0x6E, "ROR", Absolute, 6, OopsNormal)
	set(0x7E, "ROR", AbsoluteX, 7, OopsAlways)
	set(0x29, "AND", Immediate, 2, OopsNormal)
	set(0x25, "AND", ZeroPage, 3, OopsNormal)
	set(0x35, "AND", ZeroPageX, 4, OopsNormal)
	set(0x2D, "AND", Absolute, 4, OopsNormal)
	set(0x3D, "AND", AbsoluteX, 4, OopsNormal)
	set(0x39, "AND", AbsoluteY, 4, OopsNormal)
	set(0x21, "AND", IndexedIndirect, 6, OopsNormal)
	set(0x31, "AND", IndirectIndexed, 5, OopsNormal)
	set(0x09, "ORA", Immediate, 2, OopsNormal)
	set(0x05, "ORA", ZeroPage, 3, OopsNormal)
	set(0x15, "ORA", ZeroPageX, 4, OopsNormal)
	set(0x0D, "ORA", Absolute, 4, OopsNormal)
	set(0x1D, "ORA", AbsoluteX, 4, OopsNormal)
	set(0x19, "ORA", AbsoluteY, 4, OopsNormal)
	set(0x01, "ORA", IndexedIndirect, 6, OopsNormal)
	set(0x11, "ORA", IndirectIndexed, 5, OopsNormal)
	set(0x49, "EOR", Immediate, 2, OopsNormal)
	set(0x45, "EOR", ZeroPage, 3, OopsNormal)
	set(0x55, "EOR", ZeroPageX, 4, OopsNormal)
	set(0x4D, "EOR", Absolute, 4, OopsNormal)
	set(0x5D, "EOR", AbsoluteX, 4, OopsNormal)
	set(0x59, "EOR", AbsoluteY, 4, OopsNormal)
	set(0x41, "EOR", IndexedIndirect, 6, OopsNormal)
	set(0x51, "EOR", IndirectIndexed, 5, OopsNormal)
	set(0x24, "BIT", ZeroPage, 3, OopsNormal)
	set(0x2C, "BIT", Absolute, 4, OopsNormal)
	set(0x18, "CLC", Implied, 2, OopsNormal)
	set(0x38, "SEC", Implied, 2, OopsNormal)
	set(0x58, "CLI", Implied, 2, OopsNormal)
	set(0x78, "SEI", Implied, 2, OopsNormal)
	set(0xB8, "CLV", Implied, 2, OopsNormal)
	set(0xD8, "CLD", Implied, 2, OopsNormal)
	set(0xF8, "SED", Implied, 2, OopsNormal)
	for _, o := range []uint8{0x10, 0x30, 0x50, 0x70, 0x90, 0xB0, 0xD0, 0xF0} {
		set(o, "BRANCH", Relative, 2, OopsNormal)
	}
	set(0x4C, "JMP", Absolute, 3, OopsNormal)
	set(0x6C, "JMP", Indirect, 5, OopsNormal)
	set(0x20, "JSR", Immediate, 6, OopsNormal)
	set(0x60, "RTS", Implied, 6, OopsNormal)
	set(0x40, "RTI", Implied, 6, OopsNormal)
	set(0x00, "BRK", Implied, 7, OopsNormal)
	set(0xEA, "NOP", Implied, 2, OopsNormal)

	// Illegal opcodes.
	lax := []uint8{0xA3, 0xA7, 0xAF, 0xB3, 0xB7, 0xBF}
	laxModes := []AddressingMode{IndexedIndirect, ZeroPage, Absolute, IndirectIndexed, ZeroPageY, AbsoluteY}
	for i, o := range lax {
		set(o, "LAX", laxModes[i], 4, OopsNormal)
	}
	sax := []uint8{0x83, 0x87, 0x8F, 0x97}
	saxModes := []AddressingMode{IndexedIndirect, ZeroPage, Absolute, ZeroPageY}
	for i, o := range sax {
		set(o, "SAX", saxModes[i], 4, OopsNormal)
	}
	rmwIllegal := func(ops []uint8, modes []AddressingMode, name string, cyc []uint8) {
		for i, o := range ops {
			set(o, name, modes[i], cyc[i], OopsAlways)
		}
	}
	comboModes := []AddressingMode{IndexedIndirect, ZeroPage, Absolute, IndirectIndexed, ZeroPageX, AbsoluteY, AbsoluteX}
	comboCycles := []uint8{8, 5, 6, 8, 6, 7, 7}
	rmwIllegal([]uint8{0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDB, 0xDF}, comboModes, "DCP", comboCycles)
	rmwIllegal([]uint8{0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFB, 0xFF}, comboModes, "ISC", comboCycles)
	rmwIllegal([]uint8{0x03, 0x07, 0x0F, 0x13, 0x17, 0x1B, 0x1F}, comboModes, "SLO", comboCycles)
	rmwIllegal([]uint8{0x23, 0x27, 0x2F, 0x33, 0x37, 0x3B, 0x3F}, comboModes, "RLA", comboCycles)
	rmwIllegal([]uint8{0x43, 0x47, 0x4F, 0x53, 0x57, 0x5B, 0x5F}, comboModes, "SRE", comboCycles)
	rmwIllegal([]uint8{0x63, 0x67, 0x6F, 0x73, 0x77, 0x7B, 0x7F}, comboModes, "RRA", comboCycles)
	set(0x0B, "ANC", Immediate, 2, OopsNormal)
	set(0x2B, "ANC", Immediate, 2, OopsNormal)
	set(0x4B, "ALR", Immediate, 2, OopsNormal)
	set(0x6B, "ARR", Immediate, 2, OopsNormal)
	set(0xCB, "AXS", Immediate, 2, OopsNormal)
	set(0xAB, "ATX", Immediate, 2, OopsNormal)
	set(0x9E, "SXA", AbsoluteY, 5, OopsAlways)
	set(0x9C, "SYA", AbsoluteX, 5, OopsAlways)
	set(0x9B, "XAS", AbsoluteY, 5, OopsAlways)
	set(0x8B, "XAA", Immediate, 2, OopsNormal)
	set(0x93, "AXA", IndirectIndexed, 6, OopsAlways)
	set(0x9F, "AXA", AbsoluteY, 5, OopsAlways)
	set(0xBB, "LAR", AbsoluteY, 4, OopsNormal)
	for _, o := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(o, "NOP", Implied, 2, OopsNormal)
	}
	for _, o := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(o, "DOP", Immediate, 2, OopsNormal)
	}
	for _, o := range []uint8{0x04, 0x44, 0x64} {
		set(o, "DOP", ZeroPage, 3, OopsNormal)
	}
	for _, o := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(o, "DOP", ZeroPageX, 4, OopsNormal)
	}
	set(0x0C, "TOP", Absolute, 4, OopsNormal)
	for _, o := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(o, "TOP", AbsoluteX, 4, OopsNormal)
	}
	for _, o := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(o, "JAM", Implied, 2, OopsNormal)
	}
	return t
}
