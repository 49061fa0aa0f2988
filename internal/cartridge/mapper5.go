package cartridge

import "gones/internal/arena"

// mapper5 implements a working subset of MMC5 (mapper 5), as used by
// Castlevania III and Just Breed. PRG is always mapped as four 8 KiB
// windows ($5114-$5117) and CHR as eight 1 KiB banks ($5120-$5127); the
// PRG and CHR mode registers ($5100/$5101) are stored but not applied,
// $5128-$512B are stored but never read, and vertical split mode ($5200)
// is accepted and ignored. OnScanlineTick only drives the scanline IRQ.
type mapper5 struct {
	prgROM []uint8
	prgRAM []uint8
	chrROM []uint8

	prgMode uint8 // 0-3, MMC5 PRG bank mode
	chrMode uint8 // 0-3, MMC5 CHR bank mode

	prgBanks [5]uint8 // $5113-$5117, bank 4 always ROM at $E000-$FFFF
	chrBanks [12]uint16

	fillTile  uint8
	fillColor uint8

	mirror MirrorMode

	irqScanline uint8
	irqEnabled  bool
	irqPending  bool
	scanline    uint16

	// exRAM is MMC5's 1 KiB expansion RAM at $5C00-$5FFF, carved from the
	// cartridge's auxiliary arena rather than a plain make([]byte, ...) so
	// its lifetime is tied to the cart the way spec.md's bump-allocator
	// design note requires for mapper scratch state.
	exRAM []byte
}

func newMapper5(cart *Cartridge, mirror MirrorMode, aux *arena.Arena) *mapper5 {
	m := &mapper5{
		prgROM: cart.PRGROM,
		prgRAM: cart.PRGRAM,
		chrROM: cart.CHRROM,
		mirror: mirror,
	}
	last := uint8(len(cart.PRGROM)/0x2000) - 1
	for i := range m.prgBanks {
		m.prgBanks[i] = last
	}
	if aux != nil {
		if exRAM, ok := aux.TryAlloc(1024); ok {
			m.exRAM = exRAM
		}
	}
	return m
}

func (m *mapper5) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x5C00 && addr < 0x6000:
		if m.exRAM != nil {
			return m.exRAM[addr-0x5C00]
		}
		return 0

	case addr >= 0x5000 && addr < 0x5C00:
		return 0 // MMC5 audio/expansion registers, read-back not modeled

	case addr >= 0x6000 && addr < 0x8000:
		if int(addr-0x6000) < len(m.prgRAM) {
			return m.prgRAM[addr-0x6000]
		}

	case addr >= 0x8000:
		bank := m.prgBankFor(addr)
		idx := int(bank)*0x2000 + int(addr&0x1FFF)
		if idx < len(m.prgROM) {
			return m.prgROM[idx]
		}
	}
	return 0
}

// prgBankFor resolves one of the four 8 KiB PRG windows at $8000/$A000/
// $C000/$E000 to a bank index from $5114-$5117; prgMode is not consulted.
func (m *mapper5) prgBankFor(addr uint16) uint8 {
	switch (addr - 0x8000) / 0x2000 {
	case 0:
		return m.prgBanks[1]
	case 1:
		return m.prgBanks[2]
	case 2:
		return m.prgBanks[3]
	default:
		return m.prgBanks[4]
	}
}

func (m *mapper5) WritePRG(addr uint16, value uint8) {
	switch {
	case addr == 0x5100:
		m.prgMode = value & 0x03
	case addr == 0x5101:
		m.chrMode = value & 0x03
	case addr >= 0x5113 && addr <= 0x5117:
		m.prgBanks[addr-0x5113] = value & 0x7F
	case addr >= 0x5120 && addr <= 0x512B:
		m.chrBanks[addr-0x5120] = uint16(value)
	case addr == 0x5106:
		m.fillTile = value
	case addr == 0x5107:
		m.fillColor = value & 0x03
	case addr == 0x5200:
		// vertical split-screen control, not modeled beyond acceptance
	case addr == 0x5203:
		m.irqScanline = value
	case addr == 0x5204:
		m.irqEnabled = value&0x80 != 0
	case addr >= 0x5C00 && addr < 0x6000:
		if m.exRAM != nil {
			m.exRAM[addr-0x5C00] = value
		}
	case addr >= 0x6000 && addr < 0x8000:
		if int(addr-0x6000) < len(m.prgRAM) {
			m.prgRAM[addr-0x6000] = value
		}
	}
}

func (m *mapper5) ReadCHR(addr uint16) uint8 {
	bank := m.chrBanks[addr/0x400]
	idx := int(bank)*0x400 + int(addr%0x400)
	if idx < len(m.chrROM) {
		return m.chrROM[idx]
	}
	return 0
}

func (m *mapper5) WriteCHR(addr uint16, value uint8) {}

func (m *mapper5) ReadExpansion(addr uint16) (uint8, bool) {
	if addr == 0x5204 {
		status := uint8(0)
		if m.irqPending {
			status |= 0x80
		}
		return status, true
	}
	return 0, false
}

func (m *mapper5) OnPPUA12Rise(addr uint16) {}

// OnScanlineTick advances the split-screen IRQ's scanline counter; the
// irqScanline target is compared against the PPU's own count in the
// approximated per-scanline model rather than mid-scanline dot position.
func (m *mapper5) OnScanlineTick() {
	m.scanline++
	if m.scanline == uint16(m.irqScanline) && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mapper5) IRQPending() bool { return m.irqPending }

func (m *mapper5) ClearIRQ() { m.irqPending = false }

func (m *mapper5) Mirroring() MirrorMode { return m.mirror }
