package cpu

import "fmt"

// traceState snapshots the registers at the start of an instruction so
// Trace can render a Mesen-compatible line after the opcode has executed
// and mutated them.
type traceState struct {
	pc             uint16
	opcode         uint8
	a, x, y, sp, p uint8
	cycle          uint64
}

// Snapshot records the pre-execution register state for the next Trace
// call; StepInstruction calls this at its start, and it does nothing unless
// TraceEnabled is set.
func (c *CPU) Snapshot() {
	if !c.TraceEnabled {
		return
	}
	c.lastTrace = traceState{
		pc:     c.PC,
		opcode: c.bus.Peek(c.PC),
		a:      c.A,
		x:      c.X,
		y:      c.Y,
		sp:     c.SP,
		p:      c.status(),
		cycle:  c.Clock,
	}
}

// Trace renders the last Snapshot in the nestest/Mesen log format:
// "PC  OP A:.. X:.. Y:.. P:.. SP:.. CYC:...".
func (c *CPU) Trace() string {
	t := c.lastTrace
	name := instrTable[t.opcode].name
	return fmt.Sprintf("%04X  %02X  %-4s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		t.pc, t.opcode, name, t.a, t.x, t.y, t.p, t.sp, t.cycle)
}

// stackTag annotates a stack slot pushed by JSR/BRK/interrupt dispatch so
// Backtrace can reconstruct a call chain; tags are only recorded when
// DebugEnabled is set, to avoid the bookkeeping cost on the hot path.
type stackTag struct {
	returnPC uint16
	kind     string
}

// TagReturnAddress tags the stack slot just above SP (the last byte pushed:
// the return address low byte after JSR, the status byte after interrupt
// dispatch) with the current PC and the given reason ("jsr", "irq", "nmi",
// "brk").
func (c *CPU) TagReturnAddress(kind string) {
	if !c.DebugEnabled {
		return
	}
	c.stackTags[c.SP+1] = stackTag{returnPC: c.PC, kind: kind}
}

// Backtrace walks the tagged stack slots above the current SP, innermost
// frame first.
func (c *CPU) Backtrace() []string {
	if !c.DebugEnabled {
		return nil
	}
	var frames []string
	for sp := uint16(c.SP) + 1; sp <= 0xFF; sp++ {
		if tag, ok := c.stackTags[uint8(sp)]; ok {
			frames = append(frames, fmt.Sprintf("%s -> $%04X", tag.kind, tag.returnPC))
		}
	}
	return frames
}
