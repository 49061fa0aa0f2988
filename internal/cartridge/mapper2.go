package cartridge

// mapper2 implements UxROM (mapper 2): a single bank-select register
// switches the $8000-$BFFF window; $C000-$FFFF is fixed to the last bank.
// CHR is always 8 KiB RAM.
type mapper2 struct {
	noIRQ
	chrMemory

	prgROM   []uint8
	prgRAM   []uint8
	prgBanks uint8
	prgBank  uint8
	mirror   MirrorMode
}

func newMapper2(cart *Cartridge, mirror MirrorMode) *mapper2 {
	return &mapper2{
		chrMemory: newCHRMemory(cart),
		prgROM:    cart.PRGROM,
		prgRAM:    cart.PRGRAM,
		prgBanks:  uint8(len(cart.PRGROM) / 0x4000),
		mirror:    mirror,
	}
}

func (m *mapper2) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]

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

func (m *mapper2) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = value
	case addr >= 0x8000:
		if m.prgBanks > 0 {
			m.prgBank = value & (m.prgBanks - 1)
		}
	}
}

func (m *mapper2) Mirroring() MirrorMode { return m.mirror }
