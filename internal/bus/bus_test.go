package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nescore/nescore/internal/cartridge"
	"github.com/nescore/nescore/internal/controller"
	"github.com/nescore/nescore/internal/ppu"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)
	cart, err := cartridge.NewMapper0(prg, chr, cartridge.MirrorVertical)
	require.NoError(t, err)

	b := New(cart, ppu.NTSC)
	b.PowerCycle()
	return b
}

func TestWRAMMirrorsAcrossFourBanks(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0x0800))
	require.Equal(t, uint8(0x42), b.Read(0x1800))
}

func TestPPURegisterWritePersistsAcrossTheEightByteMirror(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x2003, 0x10) // OAMADDR
	b.Write(0x200C, 0xAB) // OAMDATA through its $200C mirror

	require.Equal(t, uint8(0xAB), b.PPU.PeekOAM(0x10))
}

func TestControllerStrobeAndShiftOut(t *testing.T) {
	b := newTestBus(t)
	b.Controller1.SetButton(controller.ButtonA, true)

	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)

	require.Equal(t, uint8(1), b.Read(0x4016)&0x01)
}

func TestOAMDMACopies256BytesFromCPUPageIntoOAM(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	b.CPU.PowerCycle()

	b.CPU.StartOAMDMA(0x02)
	for b.CPU.DMAActive() {
		b.CPU.StepInstruction()
	}

	require.Equal(t, uint8(42), b.PPU.PeekOAM(42))
}

func TestEveryCPUCycleAdvancesPPUThreeDots(t *testing.T) {
	b := newTestBus(t)
	before := b.PPU.Cycles()
	b.Read(0x0000)
	require.Equal(t, before+3, b.PPU.Cycles())
}

// TestDMCDMARequestStealsCPUCyclesAndCompletesAsynchronously exercises the
// full async DMC DMA path end to end: the APU's sample timer expiring
// requests a reload, the CPU's DMA unit steals the bus cycles for it
// (rather than the byte arriving for free), and the byte that comes back
// through CompleteDMCFetch clears the channel's active-sample status bit.
func TestDMCDMARequestStealsCPUCyclesAndCompletesAsynchronously(t *testing.T) {
	prg := make([]uint8, 0x8000)
	for i := range prg {
		prg[i] = 0xEA // NOP, so StepInstruction can run freely without hitting BRK
	}
	chr := make([]uint8, 0x2000)
	cart, err := cartridge.NewMapper0(prg, chr, cartridge.MirrorVertical)
	require.NoError(t, err)

	b := New(cart, ppu.NTSC)
	b.PowerCycle()
	b.CPU.SetPC(0x8000)

	b.APU.WriteRegister(0x4010, 0x00) // rate index 0, no loop, no IRQ
	b.APU.WriteRegister(0x4012, 0x00) // sample address $C000
	b.APU.WriteRegister(0x4013, 0x00) // sample length 1 byte
	b.APU.WriteRegister(0x4015, 0x10) // enable DMC playback

	require.NotZero(t, b.APU.ReadStatus()&0x10, "DMC reports an active sample right after enable")
	require.False(t, b.CPU.DMAActive(), "the DMA unit must stay idle until the sample timer actually expires")

	armed := false
	for i := 0; i < 1000 && !armed; i++ {
		b.CPU.StepInstruction()
		armed = b.CPU.DMAActive()
	}
	require.True(t, armed, "the DMC rate timer must eventually arm a standalone DMA request")

	clockBeforeDrain := b.CPU.Clock
	for b.CPU.DMAActive() {
		b.CPU.StepInstruction()
	}
	require.Greater(t, b.CPU.Clock, clockBeforeDrain, "draining the DMA request must cost real stolen cycles")

	require.Zero(t, b.APU.ReadStatus()&0x10, "the one-byte sample completes once the stolen cycles deliver it")
}

func TestPALModelAverages16DotsPerFiveCPUCycles(t *testing.T) {
	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)
	cart, err := cartridge.NewMapper0(prg, chr, cartridge.MirrorVertical)
	require.NoError(t, err)

	b := New(cart, ppu.PAL)
	b.PowerCycle()

	before := b.PPU.Cycles()
	for i := 0; i < 5; i++ {
		b.Read(0x0000)
	}
	require.Equal(t, before+16, b.PPU.Cycles())
}
