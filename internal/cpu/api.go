package cpu

// Status returns the packed processor status byte (bit 5 always set).
func (c *CPU) Status() uint8 { return c.status() }

// SetStatus unpacks v into the individual flag fields.
func (c *CPU) SetStatus(v uint8) { c.setStatus(v) }

// SetPC forces the program counter, used by conformance harnesses (e.g. the
// nestest automated-mode entry point at $C000) that bypass the reset vector.
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// Cycles reports the CPU's clock counter, which PowerCycle starts at 6.
func (c *CPU) Cycles() uint64 { return c.Clock }

// DMAActive reports whether an OAM or DMC DMA is currently stealing bus
// cycles from instruction execution.
func (c *CPU) DMAActive() bool { return c.dma.active() }
