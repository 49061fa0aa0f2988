package cartridge

// mapper71 implements Camerica/Codemasters boards (mapper 71): a UxROM
// variant with a switchable 16 KiB PRG bank at $8000-$BFFF, the last bank
// fixed at $C000-$FFFF, and CHR always 8 KiB RAM. Some Camerica boards use
// $8000-$9FFF for single-screen mirroring control instead of PRG select;
// this implementation follows the common Fire Hawk / Micro Machines wiring
// where $C000-$FFFF selects the PRG bank and mirroring is fixed by the
// header, matching the bulk of the mapper-71 library.
type mapper71 struct {
	noIRQ
	chrMemory

	prgROM   []uint8
	prgBanks uint8
	prgBank  uint8
	mirror   MirrorMode
}

func newMapper71(cart *Cartridge, mirror MirrorMode) *mapper71 {
	return &mapper71{
		chrMemory: newCHRMemory(cart),
		prgROM:    cart.PRGROM,
		prgBanks:  uint8(len(cart.PRGROM) / 0x4000),
		mirror:    mirror,
	}
}

func (m *mapper71) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xC000:
		offset := uint32(m.prgBank)*0x4000 + uint32(addr-0x8000)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	case addr >= 0xC000:
		bank := m.prgBanks - 1
		offset := uint32(bank)*0x4000 + uint32(addr-0xC000)
		if int(offset) < len(m.prgROM) {
			return m.prgROM[offset]
		}
	}
	return 0
}

func (m *mapper71) WritePRG(addr uint16, value uint8) {
	if addr >= 0xC000 && m.prgBanks > 0 {
		m.prgBank = value & (m.prgBanks - 1)
	}
}

func (m *mapper71) Mirroring() MirrorMode { return m.mirror }
