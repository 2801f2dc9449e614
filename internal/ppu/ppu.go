// Package ppu implements a dot-by-dot 2C02 picture processing unit.
//
// Step renders exactly one of the 341x262 (NTSC) dots per call; there is no
// batching to scanline or frame granularity, so a caller driving the system
// bus one CPU cycle at a time naturally gets a pixel-accurate PPU for free.
package ppu

import "github.com/nescore/nescore/internal/cartridge"

// Model selects the timing grid: NTSC renders 262 scanlines of 341 dots and,
// on odd frames with rendering enabled, drops the pre-render line's last
// dot; PAL renders 312 scanlines and never drops a dot.
type Model int

const (
	NTSC Model = iota
	PAL
)

func (m Model) scanlinesPerFrame() int {
	if m == PAL {
		return 312
	}
	return 262
}

// FrameSink receives a fully rendered frame's pixels; internal/nes wires
// this to a framebuffer.Framebuffer rental.
type FrameSink interface {
	SetPixel(x, y int, paletteIndex uint8)
	FrameComplete()
}

// PPU is the 2C02 core.
type PPU struct {
	model Model

	ppuCtrl   uint8
	ppuMask   uint8
	ppuStatus uint8

	oamAddr uint8
	oam     [256]uint8
	secOAM  [32]uint8 // 8 sprites x 4 bytes

	// Loopy scroll registers.
	v, t uint16
	x    uint8 // fine X
	w    bool  // write toggle

	vram    [0x800]uint8 // 2KB nametable RAM
	palette [32]uint8

	ioLatch    uint8
	decayHigh  int // frames remaining before bits 7-5 decay
	decayLow   int // frames remaining before bits 4-0 decay
	readBuffer uint8

	scanline int
	dot      int
	clock    uint64
	oddFrame bool

	nmiOccurred bool
	nmiOutput   bool

	bgShiftPatternLo uint16
	bgShiftPatternHi uint16
	bgShiftAttrLo    uint16
	bgShiftAttrHi    uint16

	ntByte   uint8
	atByte   uint8
	bgLoByte uint8
	bgHiByte uint8

	sprPatternLo       [8]uint8
	sprPatternHi       [8]uint8
	sprAttr            [8]uint8
	sprX               [8]uint8
	sprCount           int
	sprZeroOnLine      bool
	sprZeroInSecondary bool

	secN, secM int
	secCount   int
	evalPhase  int

	sink FrameSink
	cart cartridge.Cartridge

	frameReady bool

	hooks          dotHooks
	nextHookHandle DotHookHandle
}

// New creates a PPU for the given timing model. SetCartridge and SetSink
// must be called before Step.
func New(model Model) *PPU {
	return &PPU{model: model}
}

func (p *PPU) SetCartridge(c cartridge.Cartridge) { p.cart = c }
func (p *PPU) SetSink(s FrameSink)                { p.sink = s }

// PowerCycle resets all PPU state to the documented power-on values.
func (p *PPU) PowerCycle() {
	*p = PPU{model: p.model, cart: p.cart, sink: p.sink, hooks: p.hooks, nextHookHandle: p.nextHookHandle}
	p.scanline = 261
	p.dot = 0
}

// Reset mirrors PowerCycle for the PPU (it has no separately documented
// reset-vs-power behaviour the way the CPU does).
func (p *PPU) Reset() { p.PowerCycle() }

// NMILine reports whether the PPU is currently asserting /NMI to the CPU.
func (p *PPU) NMILine() bool { return p.nmiOccurred && p.nmiOutput }

// ConsumeFrameReady reports and clears whether a frame completed since the
// last call.
func (p *PPU) ConsumeFrameReady() bool {
	v := p.frameReady
	p.frameReady = false
	return v
}

func (p *PPU) renderingEnabled() bool {
	return p.ppuMask&0x18 != 0
}

// Cycles returns the total number of dots stepped since power-on, for
// callers that need to verify PPU:CPU clock-ratio synchronization.
func (p *PPU) Cycles() uint64 { return p.clock }

// PeekOAM reads a byte of primary OAM without side effects, for debuggers
// and tests.
func (p *PPU) PeekOAM(addr uint8) uint8 { return p.oam[addr] }
