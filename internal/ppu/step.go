package ppu

// Step advances the PPU by exactly one dot on the 341x262 (NTSC) timing
// grid. Background fetches, sprite evaluation, and the VBlank/NMI edge all
// happen at the specific dot the real 2C02 documents them at.
func (p *PPU) Step() {
	p.clock++
	p.runDotHooks()

	visible := p.scanline >= 0 && p.scanline <= 239
	preRender := p.scanline == p.model.scanlinesPerFrame()-1
	rendering := p.renderingEnabled()

	if visible || preRender {
		p.renderScanlineDot(preRender, rendering)
	}

	if p.scanline == 241 && p.dot == 1 {
		p.ppuStatus |= statusVBlank
		p.nmiOccurred = true
	}

	if preRender && p.dot == 1 {
		p.ppuStatus &^= statusVBlank | statusSprite0 | statusOverflow
		p.nmiOccurred = false
	}

	p.advanceDot(preRender, rendering)
}

func (p *PPU) advanceDot(preRender, rendering bool) {
	p.dot++

	// On NTSC the pre-render line's last dot is skipped on odd frames, but
	// only while rendering is enabled - the one-dot-shorter frame is what
	// keeps NTSC's fractional CPU:PPU clock ratio in sync over time.
	if p.model == NTSC && preRender && p.dot == 340 && p.oddFrame && rendering {
		p.dot = 0
		p.scanline = 0
		p.finishFrame()
		return
	}

	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > p.model.scanlinesPerFrame()-1 {
			p.scanline = 0
			p.finishFrame()
		}
	}
}

func (p *PPU) finishFrame() {
	p.oddFrame = !p.oddFrame
	p.frameReady = true
	p.decayOpenBus()
	if p.sink != nil {
		p.sink.FrameComplete()
	}
}

func (p *PPU) renderScanlineDot(preRender bool, rendering bool) {
	if p.dot == 0 {
		return
	}

	inFetchWindow := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)

	if !preRender && p.dot >= 1 && p.dot <= 256 {
		p.outputPixel()
	}

	if rendering {
		if inFetchWindow {
			p.backgroundFetchCycle()
			p.shiftBackgroundRegisters()
		}
		if p.dot == 256 {
			p.incrementFineY()
		}
		if p.dot == 257 {
			p.copyHorizontalBits()
			if !preRender {
				p.evaluateSpritesForNextLine()
			}
		}
		if preRender && p.dot >= 280 && p.dot <= 304 {
			p.copyVerticalBits()
		}
		if p.dot == 257 && !preRender {
			p.fetchSpritePatternsForNextLine()
		}
	}
}

func (p *PPU) incrementFineY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontalBits() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}
