package cartridge

// mapper4 implements MMC3 (mapper 4): two 8 KiB swappable PRG windows plus
// one fixed-to-second-last and one fixed-to-last, six CHR bank registers
// arranged as two 2 KiB + four 1 KiB windows (inverted by the CHR-mode bit),
// and an IRQ counter clocked by real PPU A12 rising edges via OnPPUA12Rise,
// as the hardware does.
type mapper4 struct {
	prgROM []uint8
	prgRAM []uint8
	chrMem []uint8
	chrIsRAM bool

	prgBanks uint8

	bankSelect uint8
	prgMode    uint8
	chrMode    uint8
	registers  [8]uint8

	mirror MirrorMode

	prgRAMEnabled      bool
	prgRAMWriteProtect bool

	irqLatch      uint8
	irqCounter    uint8
	irqEnabled    bool
	irqPending    bool
	irqReloadFlag bool
}

func newMapper4(cart *Cartridge, mirror MirrorMode) *mapper4 {
	m := &mapper4{
		prgROM:        cart.PRGROM,
		prgRAM:        cart.PRGRAM,
		prgBanks:      uint8(len(cart.PRGROM) / 0x2000),
		mirror:        mirror,
		prgRAMEnabled: true,
	}
	m.chrMem = make([]uint8, len(cart.CHRROM))
	copy(m.chrMem, cart.CHRROM)
	m.chrIsRAM = cart.HasCHRRAM
	return m
}

func (m *mapper4) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMEnabled {
			return m.prgRAM[addr-0x6000]
		}
		return 0

	case addr >= 0x8000 && addr < 0xA000:
		var bank uint8
		if m.prgMode == 0 {
			bank = m.registers[6]
		} else {
			bank = m.prgBanks - 2
		}
		return m.prgByte(bank, addr-0x8000)

	case addr >= 0xA000 && addr < 0xC000:
		return m.prgByte(m.registers[7], addr-0xA000)

	case addr >= 0xC000 && addr < 0xE000:
		var bank uint8
		if m.prgMode == 0 {
			bank = m.prgBanks - 2
		} else {
			bank = m.registers[6]
		}
		return m.prgByte(bank, addr-0xC000)

	default:
		return m.prgByte(m.prgBanks-1, addr-0xE000)
	}
}

func (m *mapper4) prgByte(bank uint8, offset uint16) uint8 {
	idx := uint32(bank)*0x2000 + uint32(offset)
	if int(idx) < len(m.prgROM) {
		return m.prgROM[idx]
	}
	return 0
}

func (m *mapper4) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMEnabled && !m.prgRAMWriteProtect {
			m.prgRAM[addr-0x6000] = value
		}

	case addr >= 0x8000 && addr < 0xA000:
		if addr&1 == 0 {
			m.bankSelect = value & 0x07
			m.prgMode = (value >> 6) & 0x01
			m.chrMode = (value >> 7) & 0x01
		} else {
			m.registers[m.bankSelect] = value
		}

	case addr >= 0xA000 && addr < 0xC000:
		if addr&1 == 0 {
			if value&1 == 0 {
				m.mirror = MirrorVertical
			} else {
				m.mirror = MirrorHorizontal
			}
		} else {
			m.prgRAMWriteProtect = value&0x40 != 0
			m.prgRAMEnabled = value&0x80 != 0
		}

	case addr >= 0xC000 && addr < 0xE000:
		if addr&1 == 0 {
			m.irqLatch = value
		} else {
			m.irqCounter = 0
			m.irqReloadFlag = true
		}

	default:
		if addr&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mapper4) chrOffset(addr uint16) uint32 {
	if m.chrMode == 0 {
		switch {
		case addr < 0x0800:
			return uint32(m.registers[0]&0xFE)*0x400 + uint32(addr)
		case addr < 0x1000:
			return uint32(m.registers[1]&0xFE)*0x400 + uint32(addr-0x0800)
		case addr < 0x1400:
			return uint32(m.registers[2])*0x400 + uint32(addr-0x1000)
		case addr < 0x1800:
			return uint32(m.registers[3])*0x400 + uint32(addr-0x1400)
		case addr < 0x1C00:
			return uint32(m.registers[4])*0x400 + uint32(addr-0x1800)
		default:
			return uint32(m.registers[5])*0x400 + uint32(addr-0x1C00)
		}
	}
	switch {
	case addr < 0x0400:
		return uint32(m.registers[2])*0x400 + uint32(addr)
	case addr < 0x0800:
		return uint32(m.registers[3])*0x400 + uint32(addr-0x0400)
	case addr < 0x0C00:
		return uint32(m.registers[4])*0x400 + uint32(addr-0x0800)
	case addr < 0x1000:
		return uint32(m.registers[5])*0x400 + uint32(addr-0x0C00)
	case addr < 0x1800:
		return uint32(m.registers[0]&0xFE)*0x400 + uint32(addr-0x1000)
	default:
		return uint32(m.registers[1]&0xFE)*0x400 + uint32(addr-0x1800)
	}
}

func (m *mapper4) ReadCHR(addr uint16) uint8 {
	offset := m.chrOffset(addr)
	if int(offset) < len(m.chrMem) {
		return m.chrMem[offset]
	}
	return 0
}

func (m *mapper4) WriteCHR(addr uint16, value uint8) {
	if !m.chrIsRAM {
		return
	}
	offset := m.chrOffset(addr)
	if int(offset) < len(m.chrMem) {
		m.chrMem[offset] = value
	}
}

// OnScanlineTick is unused: the IRQ counter is clocked directly off PPU
// A12 rising edges via OnPPUA12Rise, matching real MMC3 hardware, so the
// once-per-scanline hook the bus calls for every mapper has nothing to do
// here.
func (m *mapper4) OnScanlineTick() {}

// OnPPUA12Rise clocks the scanline counter on each PPU pattern-table fetch
// that raises address line A12, reloading it from irqLatch when it hits
// zero or a reload was requested (by writing $C001).
func (m *mapper4) OnPPUA12Rise(addr uint16) {
	if m.irqCounter == 0 || m.irqReloadFlag {
		m.irqCounter = m.irqLatch
		m.irqReloadFlag = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mapper4) ReadExpansion(addr uint16) (uint8, bool) { return 0, false }

func (m *mapper4) Mirroring() MirrorMode { return m.mirror }

func (m *mapper4) IRQPending() bool { return m.irqPending }

func (m *mapper4) ClearIRQ() { m.irqPending = false }
