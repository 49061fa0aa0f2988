// Package audio provides an external-collaborator sample sink for the
// emulator core's APU register shadow. Sound mixing itself is out of the
// core's scope; this package is the external mixer, pulling samples from
// apu.APU.GenerateSample() at 44.1 kHz.
package audio

// SampleSource is the subset of apu.APU this package depends on, kept
// narrow so the audio package never needs to import the apu package's
// internal channel types.
type SampleSource interface {
	GenerateSample() (float32, bool)
}

// Sink streams samples pulled from a SampleSource to an output device.
type Sink interface {
	Start(source SampleSource) error
	Stop()
}

// SampleRate is the fixed output rate the APU generates samples at.
const SampleRate = 44100
