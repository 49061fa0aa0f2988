package cartridge

// mapper0 implements NROM (mapper 0): no bank switching, 16 or 32 KiB
// PRG-ROM (16 KiB mirrored across the full 32 KiB window), 8 KiB CHR-ROM
// or CHR-RAM, optional 8 KiB PRG-RAM at $6000-$7FFF.
type mapper0 struct {
	noIRQ
	chrMemory

	cart     *Cartridge
	prgBanks int
	mirror   MirrorMode
}

func newMapper0(cart *Cartridge, mirror MirrorMode) *mapper0 {
	return &mapper0{
		chrMemory: newCHRMemory(cart),
		cart:      cart,
		prgBanks:  len(cart.PRGROM) / 0x4000,
		mirror:    mirror,
	}
}

func (m *mapper0) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		offset := addr - 0x8000
		if m.prgBanks == 1 {
			offset &= 0x3FFF
		}
		if int(offset) < len(m.cart.PRGROM) {
			return m.cart.PRGROM[offset]
		}
	}
	return 0
}

func (m *mapper0) WritePRG(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.PRGRAM[addr-0x6000] = value
	}
}

func (m *mapper0) Mirroring() MirrorMode { return m.mirror }
