package audio

import "testing"

type fakeSource struct {
	samples []float32
}

func (f *fakeSource) GenerateSample() (float32, bool) {
	if len(f.samples) == 0 {
		return 0, false
	}
	s := f.samples[0]
	f.samples = f.samples[1:]
	return s, true
}

func TestStubSinkReportsUnsupported(t *testing.T) {
	sink := NewPortAudioSink()
	if err := sink.Start(&fakeSource{}); err == nil {
		t.Fatal("expected stub sink to fail Start without the portaudio build tag")
	}
	sink.Stop()
}

func TestSampleRateConstant(t *testing.T) {
	if SampleRate != 44100 {
		t.Fatalf("unexpected sample rate: %d", SampleRate)
	}
}
