package cartridge

// mapper180 implements the Crazy Climber board (mapper 180): the inverse of
// UxROM. $8000-$BFFF is fixed to the first 16 KiB bank and $C000-$FFFF is
// the switchable window, so the reset vector always lands in fixed code.
// CHR is always 8 KiB RAM.
type mapper180 struct {
	noIRQ
	chrMemory

	prgROM   []uint8
	prgBanks uint8
	prgBank  uint8
	mirror   MirrorMode
}

func newMapper180(cart *Cartridge, mirror MirrorMode) *mapper180 {
	return &mapper180{
		chrMemory: newCHRMemory(cart),
		prgROM:    cart.PRGROM,
		prgBanks:  uint8(len(cart.PRGROM) / 0x4000),
		mirror:    mirror,
	}
}

func (m *mapper180) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xC000:
		if int(addr-0x8000) < len(m.prgROM) {
			return m.prgROM[addr-0x8000]
		}
	case addr >= 0xC000:
		offset := uint32(m.prgBank)*0x4000 + uint32(addr-0xC000)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	}
	return 0
}

func (m *mapper180) WritePRG(addr uint16, value uint8) {
	if addr >= 0x8000 && m.prgBanks > 0 {
		m.prgBank = value & (m.prgBanks - 1)
	}
}

func (m *mapper180) Mirroring() MirrorMode { return m.mirror }
