// Package bus implements the NES system bus: CPU address-space decoding,
// WRAM mirroring, controller ports, and the PPU/APU cycle-ratio
// synchronization every CPU bus access drives.
package bus

import (
	"github.com/nescore/nescore/internal/apu"
	"github.com/nescore/nescore/internal/cartridge"
	"github.com/nescore/nescore/internal/controller"
	"github.com/nescore/nescore/internal/cpu"
	"github.com/nescore/nescore/internal/ppu"
)

// Bus connects the CPU, PPU, APU, cartridge and controller ports. It
// implements cpu.Bus: every Read/Write call is exactly one CPU clock cycle,
// and ticks the PPU (three times on NTSC, 3.2 on average on PAL) and the APU
// once before returning, keeping the whole system synchronized down to the
// cycle. Peek advances nothing.
type Bus struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	cart cartridge.Cartridge

	wram [0x800]uint8

	Controller1 *controller.Standard
	Controller2 *controller.Standard

	openBus uint8

	oamDMAInFlight bool

	// dotAccumulator carries the fractional PPU-dots-per-CPU-cycle remainder
	// for models whose ratio isn't a whole number. NTSC is an exact 3:1
	// ratio; PAL is 3.2:1 (16 PPU dots per 5 CPU cycles), so every fifth CPU
	// cycle ticks the PPU a fourth extra time to keep the long-run average
	// exact instead of drifting.
	model          ppu.Model
	dotAccumulator int
}

// New wires a fully connected system bus for the given cartridge and PPU
// timing model.
func New(cart cartridge.Cartridge, model ppu.Model) *Bus {
	b := &Bus{
		cart:        cart,
		model:       model,
		PPU:         ppu.New(model),
		APU:         apu.New(),
		Controller1: controller.New(),
		Controller2: controller.New(),
	}
	b.PPU.SetCartridge(cart)
	b.CPU = cpu.New(b)
	b.APU.SetDMCFetcher(b.dmcFetch)
	b.CPU.SetDMCSampleSink(b.APU.CompleteDMCFetch)
	b.APU.SetModel(apu.Model(model))
	return b
}

// SetFrameSink installs the receiver of completed frames; internal/nes wires
// this to a framebuffer.Framebuffer rental.
func (b *Bus) SetFrameSink(sink ppu.FrameSink) { b.PPU.SetSink(sink) }

// PowerCycle resets every component to its documented power-on state.
func (b *Bus) PowerCycle() {
	b.wram = [0x800]uint8{}
	b.PPU.PowerCycle()
	b.APU.Reset()
	b.Controller1.Reset()
	b.Controller2.Reset()
	b.CPU.PowerCycle()
}

// Reset mirrors a console reset button press.
func (b *Bus) Reset() {
	b.PPU.Reset()
	b.APU.Reset()
	b.CPU.Reset()
}

// dmcFetch services the APU DMC channel's sample-buffer reload request: it
// only arms the CPU's DMA unit. The actual bus read happens a few cycles
// later, once the DMA unit's stolen cycles run (internal/cpu/dma.go), and
// the fetched byte reaches the APU asynchronously through CompleteDMCFetch
// via SetDMCSampleSink, not through this call's return path.
func (b *Bus) dmcFetch(addr uint16) {
	b.CPU.RequestDMCDMA(addr)
}

// Read implements cpu.Bus.
func (b *Bus) Read(addr uint16) uint8 {
	b.tick()
	v := b.cpuRead(addr)
	b.openBus = v
	return v
}

// Peek implements cpu.Bus: same address decoding as Read, without ticking
// the rest of the system or side effects like $2007's read-buffer advance.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.wram[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.PeekRegister(addr & 0x0007)
	case addr == 0x4015:
		return 0 // status has read side effects; not safely peekable
	case addr == 0x4016:
		return b.Controller1.Peek()
	case addr == 0x4017:
		return b.Controller2.Peek()
	case addr < 0x4018:
		return b.openBus
	default:
		v, mask := b.cart.CPUPeek(addr)
		return (v &^ mask) | (b.openBus & mask)
	}
}

func (b *Bus) cpuRead(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.wram[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(addr & 0x0007)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.Controller1.Read()&0x01 | b.openBus&0xFE
	case addr == 0x4017:
		return b.Controller2.Read()&0x01 | b.openBus&0xFE
	case addr < 0x4018:
		return b.openBus
	default:
		v, mask := b.cart.CPURead(addr)
		return (v &^ mask) | (b.openBus & mask)
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, value uint8) {
	b.tick()
	b.openBus = value

	switch {
	case addr < 0x2000:
		b.wram[addr&0x07FF] = value
	case addr < 0x4000:
		b.PPU.WriteRegister(addr&0x0007, value)
	case addr == 0x4014:
		b.CPU.StartOAMDMA(value)
	case addr == 0x4016:
		b.Controller1.Write(value&0x01 != 0)
		b.Controller2.Write(value&0x01 != 0)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, value)
	default:
		b.cart.CPUWrite(addr, value)
	}
}

// NMILine implements cpu.Bus.
func (b *Bus) NMILine() bool { return b.PPU.NMILine() }

// IRQLine implements cpu.Bus: the cartridge mapper (e.g. an MMC3 IRQ
// counter) and the APU frame sequencer/DMC both share the single /IRQ line.
func (b *Bus) IRQLine() bool {
	return b.APU.IRQLine() || (b.cart != nil && b.cart.IRQLine())
}

// tick advances the PPU and the APU for every CPU bus cycle, maintaining the
// PPU:CPU clock ratio for the configured model: NTSC's exact 3:1, or PAL's
// 3.2:1 via a carried fractional remainder (16 dots every 5 CPU cycles).
func (b *Bus) tick() {
	dots := 3
	if b.model == ppu.PAL {
		b.dotAccumulator++ // 3 + 1/5 per cycle = 3.2
		if b.dotAccumulator >= 5 {
			b.dotAccumulator -= 5
			dots = 4
		}
	}
	for i := 0; i < dots; i++ {
		b.PPU.Step()
	}
	b.cart.StepM2(b.PPU.Cycles())
	b.APU.Step()
}
