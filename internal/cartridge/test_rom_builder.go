package cartridge

import "bytes"

// TestROMBuilder assembles synthetic iNES images for tests that need a
// cartridge shaped a particular way (specific reset vector, inline
// instructions, mirroring mode) without hand-rolling the header bytes.
type TestROMBuilder struct {
	prgSize      uint8
	chrSize      uint8
	mirror       MirrorMode
	battery      bool
	resetVector  uint16
	nmiVector    uint16
	nmiVectorSet bool
	data         map[int][]uint8
}

// NewTestROMBuilder starts a builder with a single 16KB PRG bank, no CHR
// ROM (CHR-RAM), horizontal mirroring, and a reset vector of $8000.
func NewTestROMBuilder() *TestROMBuilder {
	return &TestROMBuilder{
		prgSize:     1,
		resetVector: 0x8000,
		data:        make(map[int][]uint8),
	}
}

func (b *TestROMBuilder) WithPRGSize(units uint8) *TestROMBuilder {
	b.prgSize = units
	return b
}

func (b *TestROMBuilder) WithCHRSize(units uint8) *TestROMBuilder {
	b.chrSize = units
	return b
}

func (b *TestROMBuilder) WithMirroring(m MirrorMode) *TestROMBuilder {
	b.mirror = m
	return b
}

func (b *TestROMBuilder) WithBattery() *TestROMBuilder {
	b.battery = true
	return b
}

func (b *TestROMBuilder) WithResetVector(addr uint16) *TestROMBuilder {
	b.resetVector = addr
	return b
}

func (b *TestROMBuilder) WithNMIVector(addr uint16) *TestROMBuilder {
	b.nmiVector = addr
	b.nmiVectorSet = true
	return b
}

// WithData places raw bytes into PRG-ROM at the given offset from the
// start of the ROM image (bank 0).
func (b *TestROMBuilder) WithData(offset int, data []uint8) *TestROMBuilder {
	cp := make([]uint8, len(data))
	copy(cp, data)
	b.data[offset] = cp
	return b
}

// WithInstructions is shorthand for WithData(0, instructions).
func (b *TestROMBuilder) WithInstructions(instructions []uint8) *TestROMBuilder {
	return b.WithData(0, instructions)
}

// WithDescription is a no-op label kept for readability at call sites.
func (b *TestROMBuilder) WithDescription(string) *TestROMBuilder {
	return b
}

// BuildCartridge assembles the configured iNES image and loads it through
// the normal cartridge.Load path, returning the resulting mapper.
func (b *TestROMBuilder) BuildCartridge() (Mapper, error) {
	prgSize := b.prgSize
	if prgSize == 0 {
		prgSize = 1
	}
	prgBytes := int(prgSize) * 16384
	prg := make([]uint8, prgBytes)
	for offset, chunk := range b.data {
		copy(prg[offset:], chunk)
	}

	lastBank := prgBytes - 16384
	prg[lastBank+0x3FFC] = uint8(b.resetVector)
	prg[lastBank+0x3FFD] = uint8(b.resetVector >> 8)
	if b.nmiVectorSet {
		prg[lastBank+0x3FFA] = uint8(b.nmiVector)
		prg[lastBank+0x3FFB] = uint8(b.nmiVector >> 8)
	}

	header := make([]byte, 16)
	copy(header[0:4], "NES\x1a")
	header[4] = prgSize
	header[5] = b.chrSize
	header[6] = 0
	if b.battery {
		header[6] |= 0x02
	}
	switch b.mirror {
	case MirrorVertical:
		header[6] |= 0x01
	case MirrorFourScreen:
		header[6] |= 0x08
	}

	var rom bytes.Buffer
	rom.Write(header)
	rom.Write(prg)
	if b.chrSize > 0 {
		rom.Write(make([]uint8, int(b.chrSize)*8192))
	}

	cart, err := Load(bytes.NewReader(rom.Bytes()))
	if err != nil {
		return nil, err
	}
	return cart.Mapper(), nil
}
