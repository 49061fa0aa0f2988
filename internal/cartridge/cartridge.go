package cartridge

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"gones/internal/arena"
)

// auxArenaCapacity sizes the bump allocator carved for mapper scratch state
// that does not belong in PRG/CHR ROM: MMC5's 1 KiB expansion RAM today,
// with headroom for other mappers that need small fixed-size scratch
// blocks with the cartridge's own lifetime.
const auxArenaCapacity = 4096

// Cartridge wraps the parsed iNES/NES 2.0 header and the selected mapper.
type Cartridge struct {
	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8

	MapperID   uint16
	HasBattery bool
	HasCHRRAM  bool

	mapper   Mapper
	auxArena *arena.Arena
}

// Unload returns the cartridge's auxiliary scratch arena to a freshly-reset
// state. It must be called before the next cart-load reuses this
// Cartridge's resources; the bump allocator has no per-object free.
func (c *Cartridge) Unload() {
	if c.auxArena != nil {
		c.auxArena.Reset()
	}
}

type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8
	CHRROMSize uint8
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	Flags9     uint8
	Flags10    uint8
	Padding    [5]uint8
}

// Load parses an iNES/NES 2.0 image and constructs the mapper it names.
// Format errors (bad magic, truncated data, zero PRG size) are reported as
// an error with no emulator-state mutation, per the cart-load error
// taxonomy; resource exhaustion while the mapper carves scratch memory from
// the arena is reported the same way by the caller.
func Load(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.New("cartridge: truncated header")
	}
	if string(header.Magic[:]) != "NES\x1a" {
		return nil, errors.New("cartridge: bad magic")
	}
	if header.PRGROMSize == 0 {
		return nil, errors.New("cartridge: zero PRG-ROM size")
	}

	cart := &Cartridge{
		MapperID:   uint16(header.Flags6>>4) | uint16(header.Flags7&0xF0),
		HasBattery: header.Flags6&0x02 != 0,
	}

	isNES2 := header.Flags7&0x0C == 0x08

	prgUnits := int(header.PRGROMSize)
	chrUnits := int(header.CHRROMSize)
	prgRAMSize := 8192
	if isNES2 {
		prgUnits |= int(header.Flags9&0x0F) << 8
		chrUnits |= int(header.Flags9&0xF0) << 4
		prgRAMSize = 64 << (header.Flags10 & 0x0F)
	}

	if header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, errors.New("cartridge: truncated trainer")
		}
	}

	cart.PRGROM = make([]uint8, prgUnits*16384)
	if _, err := io.ReadFull(r, cart.PRGROM); err != nil {
		return nil, errors.New("cartridge: truncated PRG-ROM")
	}

	if chrUnits > 0 {
		cart.CHRROM = make([]uint8, chrUnits*8192)
		if _, err := io.ReadFull(r, cart.CHRROM); err != nil {
			return nil, errors.New("cartridge: truncated CHR-ROM")
		}
	} else {
		cart.CHRROM = make([]uint8, 8192)
		cart.HasCHRRAM = true
	}
	cart.PRGRAM = make([]uint8, prgRAMSize)

	var mirror MirrorMode
	switch {
	case header.Flags6&0x08 != 0:
		mirror = MirrorFourScreen
	case header.Flags6&0x01 != 0:
		mirror = MirrorVertical
	default:
		mirror = MirrorHorizontal
	}

	cart.auxArena = arena.New(auxArenaCapacity)

	mapper, err := newMapper(cart, mirror)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper
	return cart, nil
}

// LoadFromFile opens path and parses it as an iNES/NES 2.0 image, per Load.
func LoadFromFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Mapper exposes the cartridge's selected mapper implementation.
func (c *Cartridge) Mapper() Mapper { return c.mapper }

// newMapper selects and constructs the mapper implementation named by the
// header's mapper ID. Mapper numbers outside the required roster fall back
// to NROM semantics on PRG/CHR read, matching the original's "unsupported
// mapper plays as best it can" behavior rather than failing cart-load.
func newMapper(cart *Cartridge, mirror MirrorMode) (Mapper, error) {
	switch cart.MapperID & 0xFF {
	case 0:
		return newMapper0(cart, mirror), nil
	case 1:
		return newMapper1(cart, mirror), nil
	case 2:
		return newMapper2(cart, mirror), nil
	case 3:
		return newMapper3(cart, mirror), nil
	case 4:
		return newMapper4(cart, mirror), nil
	case 5:
		return newMapper5(cart, mirror, cart.auxArena), nil
	case 7:
		return newMapper7(cart, mirror), nil
	case 9:
		return newMapper9(cart, mirror), nil
	case 69:
		return newMapper69(cart, mirror), nil
	case 71:
		return newMapper71(cart, mirror), nil
	case 180:
		return newMapper180(cart, mirror), nil
	default:
		return newMapper0(cart, mirror), nil
	}
}
