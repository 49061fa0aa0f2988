//go:build !portaudio

package audio

import "errors"

// PortAudioSink stub for builds without the `portaudio` tag (PortAudio
// needs a native library most headless/CI environments don't carry).
type PortAudioSink struct{}

// NewPortAudioSink returns a sink whose Start always fails; build with
// `-tags portaudio` to get real playback.
func NewPortAudioSink() *PortAudioSink {
	return &PortAudioSink{}
}

// Start reports that PortAudio support was not compiled in.
func (s *PortAudioSink) Start(source SampleSource) error {
	return errors.New("audio: built without the portaudio tag")
}

// Stop is a no-op on the stub sink.
func (s *PortAudioSink) Stop() {}
