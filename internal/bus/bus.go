// Package bus implements the system bus connecting the CPU, PPU, APU,
// input, and cartridge into one NES system.
package bus

import (
	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// Bus wires the CPU, PPU, APU, input, and cartridge mapper together and
// drives the per-instruction CPU/PPU/APU cycle ratio.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	mapper    cartridge.Mapper
	ppuMemory *memory.PPUMemory
	mirroring cartridge.MirrorMode

	totalCycles uint64
	cpuCycles   uint64
	ppuCycles   uint64
	frameCount  uint64

	dmaSuspendCycles uint64
	dmaInProgress    bool
	nmiPending       bool

	cyclesPerFrame uint64

	executionLog   []BusExecutionEvent
	loggingEnabled bool
}

// New creates a new system bus with all components but no cartridge loaded.
func New() *Bus {
	bus := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),

		cyclesPerFrame: 89342,
	}

	bus.Memory = memory.New(bus.PPU, bus.APU, nil)
	bus.Memory.SetInputSystem(bus.Input)
	bus.CPU = cpu.New(bus.Memory)

	bus.PPU.SetNMICallback(bus.triggerNMI)
	bus.PPU.SetFrameCompleteCallback(bus.handleFrameComplete)
	bus.Memory.SetDMACallback(bus.TriggerOAMDMA)

	bus.Reset()
	return bus
}

// Reset resets all components to their initial state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.totalCycles = 0
	b.cpuCycles = 0
	b.ppuCycles = 0
	b.frameCount = 0
	b.dmaSuspendCycles = 0
	b.dmaInProgress = false
	b.nmiPending = false

	b.PPU.SetFrameCount(0)

	b.executionLog = nil
	b.loggingEnabled = false
}

func (b *Bus) triggerNMI() {
	b.nmiPending = true
}

func (b *Bus) handleFrameComplete() {
	b.frameCount = b.PPU.GetFrameCount()
}

// Step executes one CPU instruction (or one DMA stall cycle) and advances
// the PPU and APU by the matching number of cycles. The PPU always runs at
// exactly 3x CPU speed; the APU runs at CPU speed.
func (b *Bus) Step() {
	var cpuCycles uint64
	prePC := b.CPU.PC
	preFrame := b.frameCount
	var preOpcode uint8
	if b.loggingEnabled && b.Memory != nil {
		preOpcode = b.Memory.Read(prePC)
	}

	if b.dmaSuspendCycles > 0 {
		cpuCycles = 1
		b.dmaSuspendCycles--
		if b.dmaSuspendCycles == 0 {
			b.dmaInProgress = false
		}
	} else {
		if b.nmiPending {
			b.CPU.TriggerNMI()
			b.nmiPending = false
		}
		cpuCycles = b.CPU.Step()
	}

	if b.mapper != nil {
		for i := uint64(0); i < cpuCycles*3; i++ {
			b.PPU.Step()
			b.ppuCycles++
			if b.PPU.ScanlineBoundary() {
				b.mapper.OnScanlineTick()
				if b.mapper.IRQPending() {
					b.CPU.TriggerIRQ()
				}
			}
		}
		if mode := b.mapper.Mirroring(); mode != b.mirroring {
			b.mirroring = mode
			b.ppuMemory.SetMirroring(toMemoryMirrorMode(mode))
		}
	} else {
		for i := uint64(0); i < cpuCycles*3; i++ {
			b.PPU.Step()
			b.ppuCycles++
		}
	}

	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}

	b.cpuCycles += cpuCycles
	b.totalCycles += cpuCycles

	if b.loggingEnabled {
		b.executionLog = append(b.executionLog, BusExecutionEvent{
			StepNumber:   len(b.executionLog) + 1,
			CPUCycles:    b.cpuCycles,
			PPUCycles:    b.ppuCycles,
			FrameCount:   b.frameCount,
			DMAActive:    b.dmaInProgress,
			NMIProcessed: b.frameCount > preFrame,
			PCValue:      prePC,
			InstructionOp: preOpcode,
		})
	}
}

// EnableExecutionLogging turns on per-Step execution event recording, used
// by timing tests that need to inspect the CPU/PPU cycle relationship
// after the fact.
func (b *Bus) EnableExecutionLogging() {
	b.loggingEnabled = true
}

// DisableExecutionLogging turns off execution event recording.
func (b *Bus) DisableExecutionLogging() {
	b.loggingEnabled = false
}

// GetExecutionLog returns the recorded execution events.
func (b *Bus) GetExecutionLog() []BusExecutionEvent {
	return b.executionLog
}

// ClearExecutionLog discards recorded execution events.
func (b *Bus) ClearExecutionLog() {
	b.executionLog = nil
}

// BusExecutionEvent records one Step call's effect on cycle counters, for
// tests that verify the CPU/PPU 3:1 cycle ratio.
type BusExecutionEvent struct {
	StepNumber    int
	CPUCycles     uint64
	PPUCycles     uint64
	FrameCount    uint64
	DMAActive     bool
	NMIProcessed  bool
	PCValue       uint16
	InstructionOp uint8
}

// TriggerOAMDMA initiates an OAM DMA transfer, stalling the CPU for
// 513 cycles (514 if the transfer starts on an odd CPU cycle).
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	if b.dmaInProgress {
		return
	}

	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}

	b.dmaInProgress = true
	b.dmaSuspendCycles = dmaCycles

	sourceAddress := uint16(sourcePage) << 8
	for i := 0; i < 256; i++ {
		data := b.Memory.Read(sourceAddress + uint16(i))
		b.PPU.WriteOAM(uint8(i), data)
	}
}

// LoadCartridge wires a cartridge mapper into the system, rebuilding the
// CPU and PPU memory maps around it and resetting the CPU from the new
// reset vector. It takes the Mapper interface directly rather than a
// *cartridge.Cartridge so tests can drive the bus with a hand-built mapper.
func (b *Bus) LoadCartridge(mapper cartridge.Mapper) {
	b.mapper = mapper

	b.Memory = memory.New(b.PPU, b.APU, b.mapper)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	b.mirroring = b.mapper.Mirroring()
	b.ppuMemory = memory.NewPPUMemory(b.mapper, toMemoryMirrorMode(b.mirroring))
	b.PPU.SetMemory(b.ppuMemory)
	b.PPU.SetMapperIRQHook(b.mapper)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)

	b.CPU.Reset()
}

func toMemoryMirrorMode(m cartridge.MirrorMode) memory.MirrorMode {
	switch m {
	case cartridge.MirrorVertical:
		return memory.MirrorVertical
	case cartridge.MirrorSingleLow:
		return memory.MirrorSingleScreen0
	case cartridge.MirrorSingleHigh:
		return memory.MirrorSingleScreen1
	case cartridge.MirrorFourScreen:
		return memory.MirrorFourScreen
	default:
		return memory.MirrorHorizontal
	}
}

// Run runs the emulator for a specified number of frames.
func (b *Bus) Run(frames int) {
	targetFrames := b.frameCount + uint64(frames)
	for b.frameCount < targetFrames {
		b.Step()
	}
}

// RunCycles runs the emulator for a specified number of CPU cycles.
func (b *Bus) RunCycles(cycles uint64) {
	targetCycles := b.cpuCycles + cycles
	for b.cpuCycles < targetCycles {
		b.Step()
	}
}

// Frame executes one NTSC frame's worth of CPU cycles (29,781 cycles, the
// 89,342 PPU cycles per frame divided by three).
func (b *Bus) Frame() {
	targetCycles := b.cpuCycles + 29781
	for b.cpuCycles < targetCycles {
		b.Step()
	}
}

// GetFrameRate returns the NES's NTSC frame rate.
func (b *Bus) GetFrameRate() float64 {
	return 60.098803
}

// GetFrameBuffer returns the current PPU frame buffer.
func (b *Bus) GetFrameBuffer() []uint32 {
	frameBuffer := b.PPU.GetFrameBuffer()
	return frameBuffer[:]
}

// GetAudioSamples returns the current audio samples from the APU.
func (b *Bus) GetAudioSamples() []float32 {
	return b.APU.GetSamples()
}

// SetAudioSampleRate sets the target audio sample rate for the APU.
func (b *Bus) SetAudioSampleRate(rate int) {
	b.APU.SetSampleRate(rate)
}

// GetCycleCount returns the current CPU cycle count.
func (b *Bus) GetCycleCount() uint64 {
	return b.cpuCycles
}

// GetFrameCount returns the current frame count.
func (b *Bus) GetFrameCount() uint64 {
	return b.frameCount
}

// IsDMAInProgress returns whether DMA is currently in progress.
func (b *Bus) IsDMAInProgress() bool {
	return b.dmaInProgress
}

// isRenderingEnabled checks if PPU rendering is enabled via PPUMASK.
func (b *Bus) isRenderingEnabled() bool {
	mask := b.PPU.ReadRegister(0x2001)
	return (mask & 0x18) != 0
}

// SetControllerButton sets the state of a single controller button.
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 0, 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all eight button states for a controller at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 0, 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// GetInputState returns the input state for direct access.
func (b *Bus) GetInputState() *input.InputState {
	return b.Input
}

// GetCPUState returns the current CPU state snapshot, used by tests and
// the debug overlay.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		PC:     b.CPU.PC,
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		Cycles: b.cpuCycles,
		Flags: CPUFlags{
			N: b.CPU.N,
			V: b.CPU.V,
			B: b.CPU.B,
			D: b.CPU.D,
			I: b.CPU.I,
			Z: b.CPU.Z,
			C: b.CPU.C,
		},
	}
}

// CPUState represents a CPU state snapshot for testing and the debug overlay.
type CPUState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	Cycles  uint64
	Flags   CPUFlags
}

// CPUFlags represents the 6502 status flags.
type CPUFlags struct {
	N, V, B, D, I, Z, C bool
}

// GetPPUState returns a simplified PPU state snapshot for testing.
func (b *Bus) GetPPUState() PPUState {
	scanline := int((b.ppuCycles % b.cyclesPerFrame) / 341)
	cycle := int((b.ppuCycles % b.cyclesPerFrame) % 341)

	return PPUState{
		Scanline:    scanline,
		Cycle:       cycle,
		FrameCount:  b.frameCount,
		VBlankFlag:  (b.PPU.ReadRegister(0x2002) & 0x80) != 0,
		RenderingOn: b.isRenderingEnabled(),
	}
}

// PPUState represents a PPU state snapshot for testing.
type PPUState struct {
	Scanline    int
	Cycle       int
	FrameCount  uint64
	VBlankFlag  bool
	RenderingOn bool
}
