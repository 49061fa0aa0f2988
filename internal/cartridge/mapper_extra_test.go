package cartridge

import (
	"testing"

	"gones/internal/arena"
)

func TestMapper3_CHRBankSelect(t *testing.T) {
	cart := newTestCart(1, 4, false)
	for i := range cart.CHRROM {
		cart.CHRROM[i] = uint8(i / 0x2000)
	}
	m := newMapper3(cart, MirrorHorizontal)

	m.WritePRG(0x8000, 2)
	if got := m.ReadCHR(0x0000); got != 2 {
		t.Errorf("expected CHR bank 2 selected, got byte %d", got)
	}

	// Mirrored 16 KiB PRG repeats at $C000.
	if m.ReadPRG(0x8000) != m.ReadPRG(0xC000) {
		t.Errorf("expected single 16KB PRG bank to mirror at $C000")
	}
}

func TestMapper9_LatchSwapsCHRBank(t *testing.T) {
	cart := newTestCart(4, 16, false)
	// Tag each 4KB CHR-ROM region with its bank index for easy assertion.
	for bank := 0; bank < 16; bank++ {
		for i := 0; i < 0x1000; i++ {
			cart.CHRROM[bank*0x1000+i] = uint8(bank)
		}
	}
	m := newMapper9(cart, MirrorVertical)

	m.WritePRG(0xB000, 5)  // chrBank0FD = 5
	m.WritePRG(0xC000, 6)  // chrBank0FE = 6

	// Default latch0 is 0xFE -> bank 6.
	if got := m.ReadCHR(0x0000); got != 6 {
		t.Fatalf("expected default latch (FE) to select bank 6, got %d", got)
	}

	// Reading the $0FD8 latch address flips latch0 to FD for subsequent reads.
	m.ReadCHR(0x0FD8)
	if got := m.ReadCHR(0x0000); got != 5 {
		t.Errorf("expected latch flip to FD to select bank 5, got %d", got)
	}

	// Flipping back to FE restores bank 6.
	m.ReadCHR(0x0FE8)
	if got := m.ReadCHR(0x0000); got != 6 {
		t.Errorf("expected latch flip back to FE to select bank 6, got %d", got)
	}
}

func TestMapper9_MirroringControlBit(t *testing.T) {
	cart := newTestCart(4, 16, false)
	m := newMapper9(cart, MirrorVertical)

	m.WritePRG(0xF000, 1)
	if m.Mirroring() != MirrorHorizontal {
		t.Errorf("expected horizontal mirroring for bit=1, got %v", m.Mirroring())
	}
	m.WritePRG(0xF000, 0)
	if m.Mirroring() != MirrorVertical {
		t.Errorf("expected vertical mirroring for bit=0, got %v", m.Mirroring())
	}
}

func TestMapper69_CommandParameterPair_SelectsPRGBank(t *testing.T) {
	cart := newTestCart(8, 0, false) // 8 * 16KiB = 16 * 8KiB PRG banks
	m := newMapper69(cart, MirrorHorizontal)

	m.WritePRG(0x8000, 9)    // select command register 9 ($8000 PRG window)
	m.WritePRG(0xA000, 3)    // program bank index 3 into it

	if got := m.ReadPRG(0x8000); got != cart.PRGROM[3*0x2000] {
		t.Errorf("expected PRG bank 3 at $8000, got %d want %d", got, cart.PRGROM[3*0x2000])
	}
}

func TestMapper69_RegisterTwelveSelectsMirroring(t *testing.T) {
	cart := newTestCart(8, 0, false)
	m := newMapper69(cart, MirrorHorizontal)

	m.WritePRG(0x8000, 12)
	m.WritePRG(0xA000, 2) // one-screen low
	if m.Mirroring() != MirrorSingleLow {
		t.Errorf("expected single-low mirroring, got %v", m.Mirroring())
	}
}

func TestMapper69_IRQCounterFiresOnZero(t *testing.T) {
	cart := newTestCart(8, 0, false)
	m := newMapper69(cart, MirrorHorizontal)

	m.WritePRG(0x8000, 14) // counter low byte
	m.WritePRG(0xA000, 2)
	m.WritePRG(0x8000, 15) // counter high byte
	m.WritePRG(0xA000, 0)
	m.WritePRG(0x8000, 13) // control: enable IRQ + counting
	m.WritePRG(0xA000, 0x81)

	m.OnScanlineTick() // 2 -> 1
	if m.IRQPending() {
		t.Fatal("IRQ should not fire before counter reaches zero")
	}
	m.OnScanlineTick() // 1 -> 0
	if !m.IRQPending() {
		t.Fatal("expected IRQ pending once counter reaches zero")
	}
	m.ClearIRQ()
	if m.IRQPending() {
		t.Fatal("expected IRQ cleared")
	}
}

func TestMapper5_PRGBankWindowsAndRAM(t *testing.T) {
	cart := newTestCart(4, 0, false) // 4 * 16KiB = 8 * 8KiB PRG banks
	m := newMapper5(cart, MirrorHorizontal, arena.New(4096))

	m.WritePRG(0x5113, 0) // $6000 PRG-RAM bank select (unused by ReadPRG here)
	m.WritePRG(0x5114, 1) // $8000 window -> bank 1
	m.WritePRG(0x5115, 2) // $A000 window -> bank 2
	m.WritePRG(0x5116, 3) // $C000 window -> bank 3

	if got := m.ReadPRG(0x8000); got != cart.PRGROM[1*0x2000] {
		t.Errorf("expected bank 1 at $8000, got %d want %d", got, cart.PRGROM[1*0x2000])
	}
	if got := m.ReadPRG(0xA000); got != cart.PRGROM[2*0x2000] {
		t.Errorf("expected bank 2 at $A000, got %d want %d", got, cart.PRGROM[2*0x2000])
	}
	if got := m.ReadPRG(0xC000); got != cart.PRGROM[3*0x2000] {
		t.Errorf("expected bank 3 at $C000, got %d want %d", got, cart.PRGROM[3*0x2000])
	}

	// $E000-$FFFF defaults to the last bank regardless of writes above.
	lastBank := uint8(len(cart.PRGROM)/0x2000) - 1
	if got := m.ReadPRG(0xE000); got != cart.PRGROM[int(lastBank)*0x2000] {
		t.Errorf("expected last bank fixed at $E000, got %d want %d", got, cart.PRGROM[int(lastBank)*0x2000])
	}

	// PRG-RAM round-trips at $6000-$7FFF.
	m.WritePRG(0x6000, 0x42)
	if got := m.ReadPRG(0x6000); got != 0x42 {
		t.Errorf("expected PRG-RAM round-trip 0x42, got 0x%02X", got)
	}
}

func TestMapper5_ExpansionRAMCarvedFromArena(t *testing.T) {
	cart := newTestCart(4, 0, false)
	aux := arena.New(4096)
	m := newMapper5(cart, MirrorHorizontal, aux)

	if aux.Used() != 1024 {
		t.Fatalf("expected MMC5 construction to carve 1024 bytes from the arena, used=%d", aux.Used())
	}

	m.WritePRG(0x5C00, 0x99)
	if got := m.ReadPRG(0x5C00); got != 0x99 {
		t.Errorf("expected expansion RAM round-trip 0x99, got 0x%02X", got)
	}
	m.WritePRG(0x5FFF, 0x7A)
	if got := m.ReadPRG(0x5FFF); got != 0x7A {
		t.Errorf("expected expansion RAM round-trip at top of window, got 0x%02X", got)
	}

	// A cart-unload resets the arena; a freshly constructed mapper over the
	// same arena gets a zeroed window again.
	aux.Reset()
	m2 := newMapper5(cart, MirrorHorizontal, aux)
	if got := m2.ReadPRG(0x5C00); got != 0 {
		t.Errorf("expected zeroed expansion RAM after arena reset, got 0x%02X", got)
	}
}

func TestMapper5_ScanlineIRQ(t *testing.T) {
	cart := newTestCart(4, 0, false)
	m := newMapper5(cart, MirrorHorizontal, arena.New(4096))

	m.WritePRG(0x5203, 2) // target scanline
	m.WritePRG(0x5204, 0x80) // enable

	m.OnScanlineTick() // scanline 1
	if m.IRQPending() {
		t.Fatal("IRQ should not fire before target scanline")
	}
	m.OnScanlineTick() // scanline 2
	if !m.IRQPending() {
		t.Fatal("expected IRQ pending at target scanline")
	}
	status, ok := m.ReadExpansion(0x5204)
	if !ok || status&0x80 == 0 {
		t.Errorf("expected $5204 readback to report pending IRQ, got status=%02X ok=%v", status, ok)
	}
}

func TestMapper71_BankSwitchFixesLastBank(t *testing.T) {
	cart := newTestCart(4, 0, true)
	m := newMapper71(cart, MirrorHorizontal)

	m.WritePRG(0xC000, 1)
	if got := m.ReadPRG(0x8000); got != cart.PRGROM[1*0x4000] {
		t.Errorf("expected switchable bank 1 at $8000, got %d want %d", got, cart.PRGROM[1*0x4000])
	}
	if got := m.ReadPRG(0xC000); got != cart.PRGROM[3*0x4000] {
		t.Errorf("expected fixed last bank at $C000, got %d want %d", got, cart.PRGROM[3*0x4000])
	}
}

func TestMapper180_FixedFirstBank_SwitchableLast(t *testing.T) {
	cart := newTestCart(4, 0, true)
	m := newMapper180(cart, MirrorHorizontal)

	// $8000-$BFFF is always fixed to bank 0, regardless of writes.
	m.WritePRG(0xC000, 2)
	if got := m.ReadPRG(0x8000); got != cart.PRGROM[0] {
		t.Errorf("expected fixed first bank at $8000, got %d want %d", got, cart.PRGROM[0])
	}
	if got := m.ReadPRG(0xC000); got != cart.PRGROM[2*0x4000] {
		t.Errorf("expected switchable bank 2 at $C000, got %d want %d", got, cart.PRGROM[2*0x4000])
	}
}
