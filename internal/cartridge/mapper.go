// Package cartridge implements iNES/NES 2.0 ROM loading and the pluggable
// cartridge mapper framework.
package cartridge

// MirrorMode selects how the four logical 1 KiB nametable slots alias the
// physical nametable pages.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleLow
	MirrorSingleHigh
	MirrorFourScreen
)

// Mapper is the capability object every cartridge mapper implements. It
// never holds a reference back to the bus or PPU: bank updates are read by
// the bus/PPU memory map on demand rather than pushed through a callback.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)

	// OnScanlineTick is called by the bus once per visible scanline while
	// rendering is enabled (FME-7 and MMC5 scanline IRQ counters hook here;
	// MMC3 clocks off OnPPUA12Rise instead).
	OnScanlineTick()

	// OnPPUA12Rise is called by the PPU whenever a pattern-table fetch
	// causes PPU address line A12 to transition 0->1 (MMC3 IRQ clock,
	// MMC2/MMC9 latch updates).
	OnPPUA12Rise(addr uint16)

	// ReadExpansion services the cartridge expansion window
	// ($4020-$5FFF), returning ok=false when the mapper has nothing
	// mapped there.
	ReadExpansion(addr uint16) (value uint8, ok bool)

	Mirroring() MirrorMode
	IRQPending() bool
	ClearIRQ()
}

// noIRQ is embedded by mappers with no scanline IRQ or expansion window,
// so each concrete mapper only implements the capabilities it actually
// uses.
type noIRQ struct{}

func (noIRQ) OnScanlineTick()                           {}
func (noIRQ) OnPPUA12Rise(addr uint16)                  {}
func (noIRQ) ReadExpansion(addr uint16) (uint8, bool)   { return 0, false }
func (noIRQ) IRQPending() bool                          { return false }
func (noIRQ) ClearIRQ()                                 {}

// chrMemory is embedded by mappers whose CHR space is a single flat ROM or
// RAM region with no bank switching (CNROM's CHR *is* bank switched, so it
// does not use this; UxROM/AxROM/Camerica do).
type chrMemory struct {
	mem    []uint8
	isRAM  bool
}

func newCHRMemory(cart *Cartridge) chrMemory {
	m := make([]uint8, len(cart.CHRROM))
	copy(m, cart.CHRROM)
	return chrMemory{mem: m, isRAM: cart.HasCHRRAM}
}

func (c *chrMemory) ReadCHR(addr uint16) uint8 {
	if int(addr) < len(c.mem) {
		return c.mem[addr]
	}
	return 0
}

func (c *chrMemory) WriteCHR(addr uint16, value uint8) {
	if !c.isRAM {
		return
	}
	if int(addr) < len(c.mem) {
		c.mem[addr] = value
	}
}
