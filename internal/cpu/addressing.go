package cpu

// AddressingMode names the 6502's addressing modes; each has a fixed cycle
// shape in fetchOperand below.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// OopsHandling controls when an indexed addressing mode's extra "oops"
// cycle (the dummy read at the un-carried address) is taken: only when the
// index crosses a page (reads), or unconditionally (write/RMW instructions).
type OopsHandling int

const (
	OopsNormal OopsHandling = iota // extra cycle only when the page crosses
	OopsAlways                     // extra cycle unconditionally (writes, RMW)
	OopsIgnore                     // no extra cycle ever (this mode never applies here)
)

// operand is the resolved address/value pair an opcode body consumes.
// Accumulator-mode opcodes operate on c.A directly and ignore operand.
type operand struct {
	addr        uint16
	pageCrossed bool
}

// fetchOperand advances PC past the instruction's operand bytes, performing
// the bus reads (and any dummy reads) the addressing mode requires, and
// returns the effective address.
func (c *CPU) fetchOperand(mode AddressingMode, oops OopsHandling) operand {
	switch mode {
	case Implied, Accumulator:
		c.dummyReadBus(c.PC)
		return operand{}

	case Immediate:
		addr := c.PC
		c.PC++
		return operand{addr: addr}

	case ZeroPage:
		addr := uint16(c.readBus(c.PC))
		c.PC++
		return operand{addr: addr}

	case ZeroPageX:
		base := c.readBus(c.PC)
		c.PC++
		c.dummyReadBus(uint16(base))
		return operand{addr: uint16(base + c.X)}

	case ZeroPageY:
		base := c.readBus(c.PC)
		c.PC++
		c.dummyReadBus(uint16(base))
		return operand{addr: uint16(base + c.Y)}

	case Relative:
		addr := c.PC
		c.PC++
		return operand{addr: addr}

	case Absolute:
		lo := uint16(c.readBus(c.PC))
		c.PC++
		hi := uint16(c.readBus(c.PC))
		c.PC++
		return operand{addr: hi<<8 | lo}

	case AbsoluteX:
		return c.fetchIndexedAbsolute(c.X, oops)

	case AbsoluteY:
		return c.fetchIndexedAbsolute(c.Y, oops)

	case Indirect: // JMP (abs) only
		lo := uint16(c.readBus(c.PC))
		c.PC++
		hi := uint16(c.readBus(c.PC))
		c.PC++
		ptr := hi<<8 | lo
		// Hardware bug: if the pointer's low byte is 0xFF, the high byte of
		// the target is fetched from the start of the same page, not the
		// next page.
		hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
		rlo := uint16(c.readBus(ptr))
		rhi := uint16(c.readBus(hiAddr))
		return operand{addr: rhi<<8 | rlo}

	case IndexedIndirect:
		base := c.readBus(c.PC)
		c.PC++
		c.dummyReadBus(uint16(base))
		ptr := base + c.X
		lo := uint16(c.readBus(uint16(ptr)))
		hi := uint16(c.readBus(uint16(ptr + 1)))
		return operand{addr: hi<<8 | lo}

	case IndirectIndexed:
		zp := c.readBus(c.PC)
		c.PC++
		lo := uint16(c.readBus(uint16(zp)))
		hi := uint16(c.readBus(uint16(zp + 1)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		crossed := (base & 0xFF00) != (addr & 0xFF00)
		if crossed || oops == OopsAlways {
			badHi := (base & 0xFF00) | (addr & 0x00FF)
			c.dummyReadBus(badHi)
		}
		return operand{addr: addr, pageCrossed: crossed}
	}
	return operand{}
}

func (c *CPU) fetchIndexedAbsolute(index uint8, oops OopsHandling) operand {
	lo := uint16(c.readBus(c.PC))
	c.PC++
	hi := uint16(c.readBus(c.PC))
	c.PC++
	base := hi<<8 | lo
	addr := base + uint16(index)
	crossed := (base & 0xFF00) != (addr & 0xFF00)
	if crossed || oops == OopsAlways {
		badHi := (base & 0xFF00) | (addr & 0x00FF)
		c.dummyReadBus(badHi)
	}
	return operand{addr: addr, pageCrossed: crossed}
}

// readOperand reads the operand's value, routing Accumulator mode to A.
func (c *CPU) readOperand(mode AddressingMode, op operand) uint8 {
	if mode == Accumulator {
		return c.A
	}
	return c.readBus(op.addr)
}

func (c *CPU) writeOperand(mode AddressingMode, op operand, v uint8) {
	if mode == Accumulator {
		c.A = v
		return
	}
	c.writeBus(op.addr, v)
}
