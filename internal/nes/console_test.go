package nes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nescore/nescore/internal/cartridge"
	"github.com/nescore/nescore/internal/cpu"
	"github.com/nescore/nescore/internal/ppu"
)

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	prg := make([]uint8, 0x8000)
	// Fill with NOP ($EA) so the CPU runs forever without halting.
	for i := range prg {
		prg[i] = 0xEA
	}
	// Reset vector -> $8000.
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80
	chr := make([]uint8, 0x2000)
	cart, err := cartridge.NewMapper0(prg, chr, cartridge.MirrorVertical)
	require.NoError(t, err)

	c := New(cart, ppu.NTSC)
	c.PowerCycle()
	return c
}

func TestProgressStopsAtCycleTarget(t *testing.T) {
	c := newTestConsole(t)
	start := c.Bus.CPU.Cycles()
	reason := c.Progress(start + 100)
	require.Equal(t, StopCycleTarget, reason)
	require.GreaterOrEqual(t, c.Bus.CPU.Cycles(), start+100)
}

func TestProgressStopsAtFrameComplete(t *testing.T) {
	c := newTestConsole(t)
	reason := c.Progress(c.Bus.CPU.Cycles() + 1_000_000)
	require.Equal(t, StopFrameComplete, reason)
}

func TestProgressStopsAtBreakpoint(t *testing.T) {
	c := newTestConsole(t)
	target := c.Bus.CPU.PC + 4 // a PC the NOP stream will reach in a couple of instructions
	c.Bus.CPU.RegisterBreakpoint(target, func(cp *cpu.CPU) bool { return false })

	reason := c.Progress(c.Bus.CPU.Cycles() + 1_000_000)

	require.Equal(t, StopBreakpoint, reason)
	require.Equal(t, target, c.Bus.CPU.PC)
}

func TestSwapFrameReturnsFullSizedBuffer(t *testing.T) {
	c := newTestConsole(t)
	c.Progress(c.Bus.CPU.Cycles() + 1_000_000)
	pixels := c.SwapFrame()
	require.Len(t, pixels, 256*240*4)
}
