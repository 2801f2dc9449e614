// Package cartridge defines the Cartridge collaborator contract and ships
// two reference implementations (NROM, GxROM) that exercise it end to end.
//
// Parsing iNES/NES 2.0 files is explicitly out of scope here: callers hand
// in already-separated PRG/CHR banks, a mirroring mode, and a mapper
// number, the way a front-end that owns ROM-loading would after parsing
// the container format itself.
package cartridge

import "github.com/pkg/errors"

// MirrorMode selects how the PPU's four logical nametables fold onto its
// two physical 1KB banks.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// Cartridge is the collaborator interface the system bus and PPU drive all
// cartridge-space accesses through.
type Cartridge interface {
	CPURead(addr uint16) (value uint8, openBusMask uint8)
	CPUWrite(addr uint16, value uint8)
	CPUPeek(addr uint16) (value uint8, openBusMask uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, value uint8)
	PPUPeek(addr uint16) uint8
	IRQLine() bool
	// StepM2 is ticked once per CPU cycle with the PPU's running dot clock,
	// for mappers (e.g. MMC3) whose IRQ counters clock from the PPU address
	// bus rather than from CPU reads/writes. NROM and GxROM ignore it.
	StepM2(ppuClock uint64)
	MirrorMode() MirrorMode
}

// LoadError wraps the handful of structural problems a bank layout can
// have (wrong size, too many/few banks for the mapper) that a constructor
// rejects before ever touching the bus.
type LoadError struct {
	mapper string
	reason string
}

func (e *LoadError) Error() string {
	return "cartridge: " + e.mapper + ": " + e.reason
}

func newLoadError(mapper, reason string) error {
	return errors.WithStack(&LoadError{mapper: mapper, reason: reason})
}

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
)
