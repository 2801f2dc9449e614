package ppu

import "github.com/nescore/nescore/internal/cartridge"

// readVRAM/writeVRAM service the PPU bus proper (as opposed to the
// CPU-facing $2007 port, which calls through these after address
// translation): pattern tables come from the cartridge, nametables from
// the PPU's 2KB internal VRAM with the cartridge's mirroring applied.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.PPURead(addr)
	case addr < 0x3F00:
		return p.vram[p.nametableIndex(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, value)
	case addr < 0x3F00:
		p.vram[p.nametableIndex(addr)] = value
	default:
		p.writePalette(addr, value)
	}
}

// nametableIndex folds a $2000-$2FFF (mirrored to $3EFF) address down to an
// index into the PPU's 2KB of physical nametable RAM, per the cartridge's
// mirroring mode.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	addr = (addr - 0x2000) & 0x0FFF
	table := addr / 0x400
	offset := addr % 0x400

	var mirror cartridge.MirrorMode
	if p.cart != nil {
		mirror = p.cart.MirrorMode()
	}

	switch mirror {
	case cartridge.MirrorVertical:
		return (table%2)*0x400 + offset
	case cartridge.MirrorSingleScreen0:
		return offset
	case cartridge.MirrorSingleScreen1:
		return 0x400 + offset
	case cartridge.MirrorFourScreen:
		return addr % uint16(len(p.vram))
	default: // MirrorHorizontal
		return (table/2)*0x400 + offset
	}
}
