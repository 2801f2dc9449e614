package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nescore/nescore/internal/cartridge"
)

type recordingSink struct {
	pixels  map[[2]int]uint8
	frames  int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{pixels: make(map[[2]int]uint8)}
}

func (s *recordingSink) SetPixel(x, y int, paletteIndex uint8) { s.pixels[[2]int{x, y}] = paletteIndex }
func (s *recordingSink) FrameComplete()                        { s.frames++ }

func newTestPPU(t *testing.T) *PPU {
	t.Helper()
	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)
	cart, err := cartridge.NewMapper0(prg, chr, cartridge.MirrorVertical)
	require.NoError(t, err)

	p := New(NTSC)
	p.SetCartridge(cart)
	p.SetSink(newRecordingSink())
	p.PowerCycle()
	return p
}

func stepDots(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

func TestPPUStatusReadClearsVBlankAndResetsWriteToggle(t *testing.T) {
	p := newTestPPU(t)
	p.w = true
	p.ppuStatus |= statusVBlank

	v := p.ReadRegister(2)

	require.NotZero(t, v&statusVBlank)
	require.Zero(t, p.ppuStatus&statusVBlank)
	require.False(t, p.w)
}

func TestPPUDataReadIsBufferedExceptForPalette(t *testing.T) {
	p := newTestPPU(t)
	p.vram[0] = 0x42
	p.v = 0x2000

	first := p.ReadRegister(7)
	require.NotEqual(t, uint8(0x42), first) // stale buffer content, not the fresh byte

	second := p.ReadRegister(7)
	require.Equal(t, uint8(0x42), second)
}

func TestPaletteMirrorsBackgroundColorEntries(t *testing.T) {
	p := newTestPPU(t)
	p.writePalette(0x3F00, 0x20)
	require.Equal(t, uint8(0x20), p.readPalette(0x3F10))
}

func TestVerticalMirroringFoldsNametablesInPairs(t *testing.T) {
	p := newTestPPU(t)
	require.Equal(t, p.nametableIndex(0x2000), p.nametableIndex(0x2800))
	require.NotEqual(t, p.nametableIndex(0x2000), p.nametableIndex(0x2400))
}

func TestVBlankFlagAndNMISetAtScanline241Dot1(t *testing.T) {
	p := newTestPPU(t)
	p.nmiOutput = true

	dotsToTarget := 241*341 + 1 - (p.scanline*341 + p.dot)
	for dotsToTarget < 0 {
		dotsToTarget += p.model.scanlinesPerFrame() * 341
	}
	stepDots(p, dotsToTarget+1) // reach (241,1), then run that dot itself

	require.NotZero(t, p.ppuStatus&statusVBlank)
	require.True(t, p.NMILine())
}

func TestEnablingNMIOutputDuringVBlankRaisesImmediateNMI(t *testing.T) {
	p := newTestPPU(t)
	p.nmiOccurred = true
	require.False(t, p.NMILine(), "NMI line stays low while output is disabled")

	p.WriteRegister(0, ctrlNMIEnable)

	require.True(t, p.NMILine(), "enabling NMI output while VBlank is set raises the line")
}

func TestOddFrameSkipsLastPreRenderDotWhileRendering(t *testing.T) {
	p := newTestPPU(t)
	p.ppuMask = maskShowBG
	p.oddFrame = true
	p.scanline = p.model.scanlinesPerFrame() - 1
	p.dot = 339

	p.Step()

	require.Equal(t, 0, p.dot)
	require.Equal(t, 0, p.scanline)
}

func TestSpriteZeroHitSetsStatusFlag(t *testing.T) {
	p := newTestPPU(t)
	p.ppuMask = maskShowBG | maskShowSprites
	p.secCount = 1
	p.sprCount = 1
	p.sprZeroOnLine = true
	p.sprX[0] = 10
	p.sprPatternLo[0] = 0x80
	p.sprAttr[0] = 0

	p.bgShiftPatternLo = 0x8000
	p.dot = 11
	p.scanline = 5
	p.x = 0

	p.outputPixel()

	require.NotZero(t, p.ppuStatus&statusSprite0)
}

func TestSpriteOverflowFlagSetsWhenMoreThanEightSpritesOnLine(t *testing.T) {
	p := newTestPPU(t)
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 10
		p.oam[i*4+1] = 1
		p.oam[i*4+2] = 0
		p.oam[i*4+3] = uint8(i * 8)
	}
	p.scanline = 10

	p.evaluateSpritesForNextLine()

	require.NotZero(t, p.ppuStatus&statusOverflow)
	require.Equal(t, 8, p.secCount)
}

// TestSpriteOverflowBugMisalignsReadCursorAfterAMiss reproduces the
// documented overflow-search bug: once 8 sprites are found, a non-matching
// ninth OAM entry still advances the (n, m) read cursor diagonally, so the
// tenth candidate is evaluated against its own tile byte (m=1) rather than
// its Y - a sprite that would genuinely be in range
// can be missed as a result.
func TestSpriteOverflowBugMisalignsReadCursorAfterAMiss(t *testing.T) {
	p := newTestPPU(t)
	for i := 0; i < 8; i++ {
		p.oam[i*4] = 10 // in range for scanline 10
	}
	// Sprite 8 (the first overflow candidate) is not in range, so the bug's
	// (n, m) cursor drifts off m=0: sprite 9 is compared on its tile byte
	// (0) instead of its Y, so a genuinely in-range sprite 9 is missed. The
	// cursor is back on real Y bytes only from sprite 12 on, and those are
	// all 0, out of range.
	p.oam[8*4] = 200
	p.oam[9*4] = 10 // true Y: in range, but never read as Y by the buggy cursor

	p.scanline = 10
	p.evaluateSpritesForNextLine()

	require.Equal(t, 8, p.secCount)
	require.Zero(t, p.ppuStatus&statusOverflow, "misaligned cursor should miss sprite 9's real Y")
}
