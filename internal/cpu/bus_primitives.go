package cpu

// Every primitive below is exactly one CPU clock cycle: it performs the bus
// transaction, advances Clock, runs the combined OAM/DMC DMA unit's
// cycle-stealing logic, and samples the interrupt lines at the φ2 half of
// the cycle. This lets the system bus synchronize the PPU/APU after every
// single cycle instead of batching a whole instruction at a time.

// readBus and writeBus first let an active DMA steal whole cycles: each
// loop iteration is one complete bus cycle handed entirely to the DMA unit,
// with the CPU's own address lines idling (mirroring the real 6502, which
// keeps re-presenting its current address while suspended). Only once DMA
// releases the bus does the instruction's actual access get its own cycle.
func (c *CPU) readBus(addr uint16) uint8 {
	for c.dma.active() {
		c.runStolenCycle()
		c.endCycle()
	}
	v := c.bus.Read(addr)
	c.endCycle()
	return v
}

func (c *CPU) writeBus(addr uint16, value uint8) {
	for c.dma.active() {
		c.runStolenCycle()
		c.endCycle()
	}
	c.bus.Write(addr, value)
	c.endCycle()
}

func (c *CPU) dummyReadBus(addr uint16) {
	c.readBus(addr)
}

func (c *CPU) dummyWriteBus(addr uint16, value uint8) {
	c.writeBus(addr, value)
}

func (c *CPU) endCycle() {
	c.Clock++
	c.pollInterruptLines()
}

// pollInterruptLines samples NMI (edge) and IRQ (level) once per bus cycle.
// NMI latches on the line's rising edge (the PPU asserts /NMI high at the
// start of VBlank) and stays latched until the handler consumes it; IRQ is
// re-evaluated continuously since it is a level signal that can be masked
// by I at any point before dispatch.
func (c *CPU) pollInterruptLines() {
	line := c.bus.NMILine()
	if !c.nmiLineLast && line {
		c.nmiEdgeDetected = true
	}
	c.nmiLineLast = line
	c.irqLineLevel = c.bus.IRQLine()
}

// instructionPollInterrupts is called at the specific points in
// StepInstruction the 6502 actually samples interrupt state (see
// addressing.go/opcodes.go call sites): early for 2-cycle instructions and
// PLP/branches, a second time before the PCH-fixup cycle of a taken
// crossing branch, and once more on the final cycle of every other
// instruction. It records which handler (if any) should run once the
// current opcode body finishes.
func (c *CPU) instructionPollInterrupts() {
	if c.nmiEdgeDetected {
		c.interruptHandlerPending = InterruptNMI
		return
	}
	if c.irqLineLevel && !c.I {
		c.interruptHandlerPending = InterruptIRQ
	}
}

func (c *CPU) push(v uint8) {
	c.writeBus(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.readBus(stackBase + uint16(c.SP))
}

func (c *CPU) peekStack(offset uint8) uint8 {
	return c.bus.Peek(stackBase + uint16(c.SP+offset))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// handleInterrupt runs the 7-cycle dispatch sequence for the given
// interrupt kind. A BRK dispatch and a hardware IRQ/NMI dispatch share this
// body; only whether the pushed status has B set and which vector is read
// differ. Dispatch can itself be hijacked: if an NMI edge arrives during the
// two push cycles of an in-flight BRK/IRQ dispatch, the vector fetched at
// the end is NMI's instead - handled by re-checking nmiEdgeDetected right
// before the vector read.
func (c *CPU) handleInterrupt(kind Interrupt) {
	pushPC := c.PC
	if kind == InterruptBRK {
		pushPC++
	}
	c.push(uint8(pushPC >> 8))
	c.push(uint8(pushPC))

	status := c.status()
	if kind == InterruptBRK {
		status |= flagB
	} else {
		status &^= flagB
	}
	status |= flagU
	c.push(status)

	if kind != InterruptReset {
		kindName := "irq"
		switch kind {
		case InterruptNMI:
			kindName = "nmi"
		case InterruptBRK:
			kindName = "brk"
		}
		c.TagReturnAddress(kindName)
	}

	c.I = true

	// Hijack check: an NMI edge that landed during the pushes above takes
	// over the vector about to be fetched.
	vector := uint16(irqVector)
	switch kind {
	case InterruptNMI:
		vector = nmiVector
	case InterruptReset:
		vector = resetVector
	}
	if kind != InterruptNMI && c.nmiEdgeDetected {
		vector = nmiVector
	}
	c.nmiEdgeDetected = false

	lo := uint16(c.readBus(vector))
	hi := uint16(c.readBus(vector + 1))
	c.PC = hi<<8 | lo
}
