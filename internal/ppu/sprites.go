package ppu

// evaluateSpritesForNextLine scans primary OAM for the up-to-eight sprites
// visible on the scanline that is about to start, reproducing the
// documented sprite-overflow hardware bug: once eight in-range sprites have
// been found, the evaluator keeps scanning primary OAM for a ninth with
// its (n, m) read cursor instead of cleanly stopping - and on hardware that
// cursor increments m alongside n even when the current entry turns out
// not to be in range, so after the first non-matching entry the "Y
// coordinate" it reads for the next is actually one of that sprite's
// tile/attribute/X bytes. This is what makes the overflow flag fire on
// sprite counts that were never really in range, and also why it can fail
// to fire when nine or more sprites really do overlap the line.
//
// The real PPU spreads this across dots 65-256 one OAM entry at a time;
// this implementation resolves the whole scanline in one shot at dot 257,
// which is observationally equivalent for every flag and pixel this core
// exposes.
func (p *PPU) evaluateSpritesForNextLine() {
	p.sprZeroInSecondary = false
	height := 8
	if p.ppuCtrl&ctrlSpriteHeight16 != 0 {
		height = 16
	}

	targetLine := p.scanline
	n, m := 0, 0
	count := 0

	for n < 64 {
		y := int(p.oam[n*4+m])
		inRange := targetLine >= y && targetLine < y+height

		if count < 8 {
			if inRange {
				copy(p.secOAM[count*4:count*4+4], p.oam[n*4:n*4+4])
				if n == 0 {
					p.sprZeroInSecondary = true
				}
				count++
			}
			n++
			continue
		}

		// Overflow search: the documented hardware bug. A genuine match sets
		// the flag and then still increments m (not just n), and a
		// non-match increments m too instead of resetting it - both paths
		// walk the (n, m) cursor diagonally through OAM from here on.
		if inRange {
			p.ppuStatus |= statusOverflow
		}
		n++
		m = (m + 1) & 0x03
	}

	p.secN, p.secM = n, m
	p.secCount = count
	for i := count; i < 8; i++ {
		p.secOAM[i*4] = 0xFF
		p.secOAM[i*4+1] = 0xFF
		p.secOAM[i*4+2] = 0xFF
		p.secOAM[i*4+3] = 0xFF
	}
}

// fetchSpritePatternsForNextLine reads pattern data for the sprites secondary
// OAM evaluation just selected, leaving the results in sprPatternLo/Hi,
// sprAttr and sprX for outputPixel to consult on the following scanline.
func (p *PPU) fetchSpritePatternsForNextLine() {
	height := 8
	if p.ppuCtrl&ctrlSpriteHeight16 != 0 {
		height = 16
	}
	targetLine := p.scanline

	p.sprCount = p.secCount
	p.sprZeroOnLine = p.sprZeroInSecondary

	for i := 0; i < 8; i++ {
		y := int(p.secOAM[i*4])
		tile := p.secOAM[i*4+1]
		attr := p.secOAM[i*4+2]
		x := p.secOAM[i*4+3]

		row := targetLine - y
		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var table uint16
		var index uint8
		if height == 16 {
			table = uint16(tile&0x01) * 0x1000
			index = tile &^ 0x01
			if row >= 8 {
				index++
				row -= 8
			}
		} else {
			table = 0
			if p.ppuCtrl&ctrlSprPatternTable != 0 {
				table = 0x1000
			}
			index = tile
		}

		var lo, hi uint8
		if i < p.secCount {
			lo = p.readVRAM(table + uint16(index)*16 + uint16(row))
			hi = p.readVRAM(table + uint16(index)*16 + uint16(row) + 8)
		}

		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprPatternLo[i] = lo
		p.sprPatternHi[i] = hi
		p.sprAttr[i] = attr
		p.sprX[i] = x
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixel resolves the sprite layer at screen column x, returning the
// winning sprite's slot index, its 4-bit palette-relative color (0 means
// transparent), whether it renders behind the background, and whether it is
// sprite slot 0 (for sprite-zero-hit detection).
func (p *PPU) spritePixel(x int) (idx int, color uint8, behind bool, isZero bool) {
	if p.ppuMask&maskShowSprites == 0 {
		return -1, 0, false, false
	}
	if x < 8 && p.ppuMask&maskSpritesLeftCol == 0 {
		return -1, 0, false, false
	}

	for i := 0; i < p.sprCount; i++ {
		offset := x - int(p.sprX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		sel := uint8(0x80) >> uint(offset)
		lo := uint8(0)
		hi := uint8(0)
		if p.sprPatternLo[i]&sel != 0 {
			lo = 1
		}
		if p.sprPatternHi[i]&sel != 0 {
			hi = 1
		}
		pattern := lo | hi<<1
		if pattern == 0 {
			continue
		}
		palette := p.sprAttr[i] & 0x03
		return i, palette<<2 | pattern, p.sprAttr[i]&0x20 != 0, i == 0 && p.sprZeroOnLine
	}
	return -1, 0, false, false
}
