package ppu

// backgroundFetchCycle performs the nametable/attribute/pattern-low/
// pattern-high fetch the real PPU spreads across each 8-dot tile period,
// reloading the shift registers with the newly fetched tile once the last
// byte lands.
func (p *PPU) backgroundFetchCycle() {
	switch p.dot % 8 {
	case 1:
		p.ntByte = p.readVRAM(0x2000 | (p.v & 0x0FFF))
	case 3:
		addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		at := p.readVRAM(addr)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.atByte = (at >> shift) & 0x03
	case 5:
		table := p.bgPatternTableAddr()
		fineY := (p.v >> 12) & 0x07
		p.bgLoByte = p.readVRAM(table + uint16(p.ntByte)*16 + fineY)
	case 7:
		table := p.bgPatternTableAddr()
		fineY := (p.v >> 12) & 0x07
		p.bgHiByte = p.readVRAM(table + uint16(p.ntByte)*16 + fineY + 8)
	case 0:
		p.reloadBackgroundShifters()
		if p.dot != 256 {
			p.v = incrementCoarseX(p.v)
		}
	}
}

// incrementCoarseX implements the documented coarse-X increment, including
// the nametable-wrap at the 32-tile boundary.
func incrementCoarseX(v uint16) uint16 {
	if v&0x001F == 31 {
		v &^= 0x001F
		v ^= 0x0400
	} else {
		v++
	}
	return v
}

func (p *PPU) bgPatternTableAddr() uint16 {
	if p.ppuCtrl&ctrlBGPatternTable != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) reloadBackgroundShifters() {
	p.bgShiftPatternLo = (p.bgShiftPatternLo &^ 0x00FF) | uint16(p.bgLoByte)
	p.bgShiftPatternHi = (p.bgShiftPatternHi &^ 0x00FF) | uint16(p.bgHiByte)
	var attrLo, attrHi uint16
	if p.atByte&0x01 != 0 {
		attrLo = 0xFF
	}
	if p.atByte&0x02 != 0 {
		attrHi = 0xFF
	}
	p.bgShiftAttrLo = (p.bgShiftAttrLo &^ 0x00FF) | attrLo
	p.bgShiftAttrHi = (p.bgShiftAttrHi &^ 0x00FF) | attrHi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgShiftPatternLo <<= 1
	p.bgShiftPatternHi <<= 1
	p.bgShiftAttrLo <<= 1
	p.bgShiftAttrHi <<= 1
}

// bgPixel returns the background color index (0 means transparent) visible
// at the current dot, selected by fine X through the 16-bit shift window.
func (p *PPU) bgPixel() uint8 {
	if p.ppuMask&maskShowBG == 0 {
		return 0
	}
	if p.dot <= 8 && p.ppuMask&maskBGLeftCol == 0 {
		return 0
	}
	sel := uint16(0x8000) >> p.x
	lo := uint8(0)
	hi := uint8(0)
	if p.bgShiftPatternLo&sel != 0 {
		lo = 1
	}
	if p.bgShiftPatternHi&sel != 0 {
		hi = 1
	}
	pattern := lo | hi<<1
	if pattern == 0 {
		return 0
	}
	al := uint8(0)
	ah := uint8(0)
	if p.bgShiftAttrLo&sel != 0 {
		al = 1
	}
	if p.bgShiftAttrHi&sel != 0 {
		ah = 1
	}
	palette := al | ah<<1
	return 0x10*0 | palette<<2 | pattern
}

// outputPixel resolves the background/sprite priority multiplexer for the
// current dot and writes the result to the frame sink.
func (p *PPU) outputPixel() {
	x := p.dot - 1
	y := p.scanline
	if p.sink == nil {
		return
	}

	bg := p.bgPixel()
	sprIdx, sprColor, sprBehind, isSpriteZero := p.spritePixel(x)

	var colorIndex uint8
	switch {
	case bg&0x03 == 0 && sprColor&0x03 == 0:
		colorIndex = p.readPalette(0x3F00)
	case bg&0x03 == 0:
		colorIndex = p.readPalette(0x3F00 + uint16(sprColor))
	case sprColor&0x03 == 0:
		colorIndex = p.readPalette(0x3F00 + uint16(bg))
	case sprBehind:
		colorIndex = p.readPalette(0x3F00 + uint16(bg))
	default:
		colorIndex = p.readPalette(0x3F00 + uint16(sprColor))
	}

	if isSpriteZero && bg&0x03 != 0 && sprColor&0x03 != 0 && x != 255 {
		p.ppuStatus |= statusSprite0
	}
	_ = sprIdx

	p.sink.SetPixel(x, y, colorIndex)
}
