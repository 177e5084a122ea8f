package compositor

import (
	"testing"

	"github.com/cwbudde/audiograph/audiograph"
)

func stereoTestInput() audiograph.AudioBuffer {
	frames := 256
	samples := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		samples[i*2] = 0.2
		samples[i*2+1] = -0.2
	}
	return audiograph.AudioBuffer{Channels: 2, SampleRate: 48000, Samples: samples}
}

func TestReverbNodeProcessesWithoutError(t *testing.T) {
	t.Parallel()

	n := NewReverbNode("reverb")
	out, err := n.Process(stereoTestInput())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out.Samples) != 256*2 {
		t.Fatalf("len(Samples) = %d, want %d", len(out.Samples), 256*2)
	}
}

func TestReverbNodeParameterRoundtrip(t *testing.T) {
	t.Parallel()

	n := NewReverbNode("reverb")
	if err := n.SetParameter("rt60", 3.0); err != nil {
		t.Fatalf("SetParameter(rt60) error = %v", err)
	}
	if got, _ := n.GetParameter("rt60"); got != 3.0 {
		t.Fatalf("GetParameter(rt60) = %v, want 3.0", got)
	}
	if err := n.SetParameter("wet", 2.0); err != nil {
		t.Fatalf("SetParameter(wet) error = %v", err)
	}
	if got, _ := n.GetParameter("wet"); got != 1.0 {
		t.Fatalf("GetParameter(wet) = %v, want clamped 1.0", got)
	}
}

func TestReverbNodeUnknownParameter(t *testing.T) {
	t.Parallel()

	n := NewReverbNode("reverb")
	if err := n.SetParameter("bogus", 1); err == nil {
		t.Fatal("SetParameter(bogus) error = nil, want ErrParameterNotFound")
	}
	if _, ok := n.GetParameter("bogus"); ok {
		t.Fatal("GetParameter(bogus) ok = true, want false")
	}
}

func TestReverbNodeReset(t *testing.T) {
	t.Parallel()

	n := NewReverbNode("reverb")
	if _, err := n.Process(stereoTestInput()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	n.Reset()
}
