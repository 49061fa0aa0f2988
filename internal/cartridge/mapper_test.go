package cartridge

import "testing"

func newTestCart(prgBanks, chrBanks int, hasCHRRAM bool) *Cartridge {
	cart := &Cartridge{
		PRGROM: make([]uint8, prgBanks*0x4000),
		CHRROM: make([]uint8, chrBanks*0x2000),
		PRGRAM: make([]uint8, 0x2000),
	}
	for i := range cart.PRGROM {
		cart.PRGROM[i] = uint8(i)
	}
	cart.HasCHRRAM = hasCHRRAM
	if hasCHRRAM && len(cart.CHRROM) == 0 {
		cart.CHRROM = make([]uint8, 0x2000)
	}
	return cart
}

func mmc1Write(m *mapper1, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.WritePRG(addr, (value>>uint(i))&1)
	}
}

func TestMapper1_ResetThenProgram_SelectsExpectedBanks(t *testing.T) {
	cart := newTestCart(4, 0, true)
	m := newMapper1(cart, MirrorHorizontal)

	// A reset write (bit 7 set) must clear the shift register and force
	// control into mode 3 regardless of partial shifts in progress.
	m.WritePRG(0x8000, 1)
	m.WritePRG(0x8000, 1)
	m.WritePRG(0x8000, 0x80)
	if m.shiftCount != 0 {
		t.Fatalf("expected shift register reset, shiftCount=%d", m.shiftCount)
	}

	// Program control register for PRG mode 3 (fix last bank at $C000),
	// 8KB CHR mode, vertical mirroring.
	mmc1Write(m, 0x8000, 0x0E)
	if m.prgMode() != 3 {
		t.Fatalf("expected prgMode 3, got %d", m.prgMode())
	}
	if m.Mirroring() != MirrorVertical {
		t.Fatalf("expected vertical mirroring, got %v", m.Mirroring())
	}

	// Select PRG bank 2 at $8000-$BFFF.
	mmc1Write(m, 0xE000, 2)
	if got := m.ReadPRG(0x8000); got != cart.PRGROM[2*0x4000] {
		t.Errorf("expected bank 2 byte %d, got %d", cart.PRGROM[2*0x4000], got)
	}
	// $C000-$FFFF stays fixed to the last bank under mode 3.
	if got := m.ReadPRG(0xC000); got != cart.PRGROM[3*0x4000] {
		t.Errorf("expected last bank byte %d, got %d", cart.PRGROM[3*0x4000], got)
	}
}

func TestMapper1_CHRRAMWritable(t *testing.T) {
	cart := newTestCart(2, 0, true)
	m := newMapper1(cart, MirrorHorizontal)
	m.WriteCHR(0x0010, 0x77)
	if got := m.ReadCHR(0x0010); got != 0x77 {
		t.Errorf("expected CHR RAM round-trip 0x77, got 0x%02X", got)
	}
}

func TestMapper2_BankSwitch_FixesLastBank(t *testing.T) {
	cart := newTestCart(4, 0, true)
	m := newMapper2(cart, MirrorVertical)

	m.WritePRG(0x8000, 1)
	if got := m.ReadPRG(0x8000); got != cart.PRGROM[1*0x4000] {
		t.Errorf("expected bank 1 byte, got %d want %d", got, cart.PRGROM[1*0x4000])
	}
	if got := m.ReadPRG(0xC000); got != cart.PRGROM[3*0x4000] {
		t.Errorf("expected fixed last bank at $C000, got %d want %d", got, cart.PRGROM[3*0x4000])
	}
}

func TestMapper4_A12EdgeIRQ_FiresAfterReload(t *testing.T) {
	cart := newTestCart(8, 8, false)
	m := newMapper4(cart, MirrorHorizontal)

	m.WritePRG(0xC000, 2) // irqLatch = 2
	m.WritePRG(0xC001, 0) // request reload
	m.WritePRG(0xE001, 0) // enable IRQ

	// OnScanlineTick is a no-op for MMC3; the counter clocks off PPU A12
	// rising edges (pattern-table fetches at $1000-$1FFF) instead.
	m.OnScanlineTick()
	if m.IRQPending() {
		t.Fatal("OnScanlineTick must not clock the MMC3 IRQ counter")
	}

	m.OnPPUA12Rise(0x1000) // reload to 2
	if m.IRQPending() {
		t.Fatal("IRQ should not be pending immediately after reload to nonzero")
	}
	m.OnPPUA12Rise(0x1000) // 2 -> 1
	m.OnPPUA12Rise(0x1000) // 1 -> 0, fires
	if !m.IRQPending() {
		t.Fatal("expected IRQ pending after counter reaches zero")
	}
	m.ClearIRQ()
	if m.IRQPending() {
		t.Fatal("expected IRQ cleared")
	}
}

func TestMapper7_Mirroring_FollowsBankSelectBit4(t *testing.T) {
	cart := newTestCart(8, 0, true)
	m := newMapper7(cart, MirrorHorizontal)

	m.WritePRG(0x8000, 0x10)
	if m.Mirroring() != MirrorSingleHigh {
		t.Errorf("expected single-high mirroring, got %v", m.Mirroring())
	}
	m.WritePRG(0x8000, 0x00)
	if m.Mirroring() != MirrorSingleLow {
		t.Errorf("expected single-low mirroring, got %v", m.Mirroring())
	}
}
