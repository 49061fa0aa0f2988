//go:build portaudio

package audio

import (
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSink streams APU samples through the PortAudio default output
// device. Grounded on jyane-jnes's ui/audio.go: a buffered channel feeds a
// callback-driven stream, with silence substituted whenever the channel
// runs dry rather than blocking the audio callback.
type PortAudioSink struct {
	stream  *portaudio.Stream
	samples chan float32
	done    chan struct{}
}

// NewPortAudioSink creates a sink with a one-second sample buffer.
func NewPortAudioSink() *PortAudioSink {
	return &PortAudioSink{samples: make(chan float32, SampleRate)}
}

// Start opens the PortAudio stream and launches the pump goroutine that
// drains source.GenerateSample() into the playback channel.
func (s *PortAudioSink) Start(source SampleSource) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: portaudio init failed: %w", err)
	}

	callback := func(out []float32) {
		for i := range out {
			select {
			case x := <-s.samples:
				out[i] = x
			default:
				out[i] = 0
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(SampleRate), 0, callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: failed to open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: failed to start stream: %w", err)
	}
	s.stream = stream
	s.done = make(chan struct{})

	go s.pump(source)
	return nil
}

// pump polls the APU's sample generator and forwards whatever it
// produces, never reordering samples relative to how GenerateSample
// yields them.
func (s *PortAudioSink) pump(source SampleSource) {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		sample, ok := source.GenerateSample()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		select {
		case s.samples <- sample:
		case <-s.done:
			return
		}
	}
}

// Stop halts the pump goroutine and closes the PortAudio stream.
func (s *PortAudioSink) Stop() {
	if s.done != nil {
		close(s.done)
	}
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
	}
	portaudio.Terminate()
}
