// Package inesfile parses the iNES container format into the handful of
// already-separated PRG/CHR banks, mirroring mode, and mapper number the
// cartridge package's reference implementations need. Parsing the container
// format is a front-end concern per the core's Non-goals; the core only
// ever sees the resulting cartridge.Cartridge interface.
package inesfile

import (
	"os"

	"github.com/pkg/errors"

	"github.com/nescore/nescore/internal/cartridge"
)

// Load reads an iNES (.nes) file from path and builds the matching
// cartridge.Cartridge. Only mappers 0 (NROM) and 66 (GxROM) are supported,
// matching the two reference mappers this repo ships.
func Load(path string) (cartridge.Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read rom")
	}
	return Parse(data)
}

// Parse builds a cartridge.Cartridge from an in-memory iNES image, letting
// tests exercise the format against synthetic fixtures without touching disk.
func Parse(data []uint8) (cartridge.Cartridge, error) {
	if len(data) < 16 || string(data[0:4]) != "NES\x1a" {
		return nil, errors.New("not an iNES file")
	}

	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flags6 := data[6]
	flags7 := data[7]

	mirror := cartridge.MirrorHorizontal
	if flags6&0x01 != 0 {
		mirror = cartridge.MirrorVertical
	}
	if flags6&0x08 != 0 {
		mirror = cartridge.MirrorFourScreen
	}

	mapperNumber := (flags7 & 0xF0) | (flags6 >> 4)

	offset := 16
	if flags6&0x04 != 0 {
		offset += 512 // trainer
	}

	prgSize := prgBanks * 0x4000
	chrSize := chrBanks * 0x2000
	if offset+prgSize+chrSize > len(data) {
		return nil, errors.New("rom file truncated for declared bank counts")
	}

	prg := data[offset : offset+prgSize]
	var chr []uint8
	if chrSize > 0 {
		chr = data[offset+prgSize : offset+prgSize+chrSize]
	}

	switch mapperNumber {
	case 0:
		return cartridge.NewMapper0(prg, chr, mirror)
	case 66:
		return cartridge.NewMapper66(prg, chr, mirror)
	default:
		return nil, errors.Errorf("mapper %d is not one of this demo's reference implementations (0, 66)", mapperNumber)
	}
}
