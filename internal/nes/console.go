// Package nes assembles the CPU, PPU, APU, system bus and controller ports
// into the single cooperatively-scheduled console the rest of this module's
// collaborators (a front-end, a test harness, a debugger) drive one
// Progress call at a time.
package nes

import (
	"time"

	"github.com/nescore/nescore/internal/apu"
	"github.com/nescore/nescore/internal/bus"
	"github.com/nescore/nescore/internal/cartridge"
	"github.com/nescore/nescore/internal/controller"
	"github.com/nescore/nescore/internal/framebuffer"
	"github.com/nescore/nescore/internal/ppu"
)

// StopReason reports why Progress returned, so a caller driving a 60Hz
// presentation loop and a caller stepping to a breakpoint can share one
// entry point.
type StopReason int

const (
	StopFrameComplete StopReason = iota
	StopCycleTarget
	StopBreakpoint
	StopHalted
)

// Console owns every core component and is the single point a front-end
// (or a conformance-test harness) calls into; nothing inside the core
// spawns goroutines or yields mid-instruction, so all calls must come from
// one logical thread per the cooperative scheduling model.
type Console struct {
	Bus *bus.Bus

	fb         *framebuffer.Framebuffer
	rental     *framebuffer.Rental
	frameSink  *consoleFrameSink
	cyclesHz   float64
}

// New wires a Console around cart for the given timing model. A 256x240
// framebuffer is allocated and rented to the PPU immediately, matching the
// rental pattern's steady state of "PPU always holds the buffer except in
// the instant a caller swaps it out".
func New(cart cartridge.Cartridge, model ppu.Model) *Console {
	b := bus.New(cart, model)
	c := &Console{
		Bus:      b,
		fb:       framebuffer.New(256, 240, framebuffer.RGBA8888),
		cyclesHz: NTSCCPUHz,
	}
	if model == ppu.PAL {
		c.cyclesHz = PALCPUHz
	}
	c.frameSink = &consoleFrameSink{console: c}
	b.SetFrameSink(c.frameSink)
	c.acquireRental()
	return c
}

// Timing constants (spec §6): NTSC CPU clock and the PAL variant, used by
// wall-clock-bounded Progress calls.
const (
	NTSCCPUHz = 1789773.0
	PALCPUHz  = 1662607.0
)

func (c *Console) acquireRental() {
	rental, err := c.fb.Rent()
	if err != nil {
		// The only other holder is a front-end mid-swap; it will return the
		// buffer on its own schedule and the next SwapFrame retries.
		return
	}
	c.rental = rental
}

// consoleFrameSink adapts ppu.FrameSink onto the rented framebuffer's RGBA
// bytes, looking up the NTSC palette table for each composed pixel.
type consoleFrameSink struct {
	console      *Console
	frameDone    bool
}

func (s *consoleFrameSink) SetPixel(x, y int, paletteIndex uint8) {
	if s.console.rental == nil {
		return
	}
	r, g, b := NTSCPalette[paletteIndex&0x3F].R, NTSCPalette[paletteIndex&0x3F].G, NTSCPalette[paletteIndex&0x3F].B
	off := (y*256 + x) * 4
	data := s.console.rental.Data
	if off+3 >= len(data) {
		return
	}
	data[off] = r
	data[off+1] = g
	data[off+2] = b
	data[off+3] = 0xFF
}

func (s *consoleFrameSink) FrameComplete() { s.frameDone = true }

// PowerCycle resets every subsystem to its documented power-on state and
// dispatches the synthetic RESET the real console's reset line pulses at
// power-on.
func (c *Console) PowerCycle() { c.Bus.PowerCycle() }

// Reset mirrors pressing the console's physical reset button.
func (c *Console) Reset() { c.Bus.Reset() }

// Controller1 and Controller2 expose the two standard controller ports for
// a front-end's input layer to drive.
func (c *Console) Controller1() *controller.Standard { return c.Bus.Controller1 }
func (c *Console) Controller2() *controller.Standard { return c.Bus.Controller2 }

// APU exposes the audio channel state for a front-end's audio sink to
// drain via DrainAudio.
func (c *Console) APU() *apu.APU { return c.Bus.APU }

// DrainAudio returns and clears whatever samples the APU has generated
// since the last call, for a front-end's audio sink to enqueue.
func (c *Console) DrainAudio() []float32 { return c.Bus.APU.GetSamples() }

// SwapFrame briefly takes the framebuffer back from the PPU, copies out its
// current RGBA8888 pixels, hands the buffer straight back for the PPU to
// keep writing into, and returns the copy. Call this once per
// Progress(StopFrameComplete) return; the copy means the caller can hold
// and present it at its own pace without contending with the PPU's next
// rental.
func (c *Console) SwapFrame() []uint8 {
	if c.rental != nil {
		c.rental.Return()
		c.rental = nil
	}
	rental, err := c.fb.Rent()
	if err != nil {
		c.acquireRental()
		return nil
	}
	out := make([]uint8, len(rental.Data))
	copy(out, rental.Data)
	rental.Return()
	c.acquireRental()
	return out
}

// Progress runs CPU instructions until one of: a full PPU frame completes,
// the CPU clock reaches targetCycle, a registered CPU breakpoint fires (PPU
// dot hooks do not stop it), or the CPU halts on a jam opcode. There are no suspension
// points inside the core; Progress is a single blocking call a front-end
// bounds by choosing a small target (typically one frame).
func (c *Console) Progress(targetCycle uint64) StopReason {
	c.frameSink.frameDone = false
	for {
		if c.Bus.CPU.Halted() {
			return StopHalted
		}
		c.Bus.CPU.StepInstruction()
		if c.Bus.CPU.PollBreakpoints() {
			return StopBreakpoint
		}
		if c.frameSink.frameDone {
			return StopFrameComplete
		}
		if c.Bus.CPU.Cycles() >= targetCycle {
			return StopCycleTarget
		}
	}
}

// ProgressDuration runs Progress with a cycle target derived from d at this
// console's nominal CPU clock, for a front-end pacing emulation off a
// wall-clock deadline instead of a fixed cycle count.
func (c *Console) ProgressDuration(d time.Duration) StopReason {
	cycles := uint64(d.Seconds() * c.cyclesHz)
	return c.Progress(c.Bus.CPU.Cycles() + cycles)
}
