package compositor

import (
	"fmt"

	"github.com/cwbudde/audiograph/audiograph"
	"github.com/cwbudde/audiograph/dsp/effects/reverb"
)

const reverbSampleRate = 48000.0

// ReverbNode wraps a feedback delay network reverb, one instance per channel.
// Parameters follow FDNReverb's own surface (rt60/damp/wet/dry) rather than
// a roomSize/damping abstraction, since that is the knob set the underlying
// processor actually exposes.
type ReverbNode struct {
	audiograph.BaseNode

	id string
	fx *perChannelEffect

	rt60Seconds float32
	damp        float32
	wet         float32
	dry         float32
}

// NewReverbNode creates a reverb at 1.5 s RT60, moderate damping, 30% wet,
// unity dry.
func NewReverbNode(id string) *ReverbNode {
	n := &ReverbNode{id: id, rt60Seconds: 1.5, damp: 0.5, wet: 0.3, dry: 1.0}
	n.fx = newPerChannelEffect(n.newInstance)
	return n
}

func (n *ReverbNode) newInstance() monoProcessor {
	r, err := reverb.NewFDNReverb(reverbSampleRate)
	if err != nil {
		panic(fmt.Errorf("compositor: construct reverb: %w", err))
	}
	n.applyTo(r)
	return r
}

func (n *ReverbNode) applyTo(r *reverb.FDNReverb) {
	_ = r.SetRT60(float64(n.rt60Seconds))
	_ = r.SetDamp(float64(n.damp))
	_ = r.SetWet(float64(n.wet))
	_ = r.SetDry(float64(n.dry))
}

func (n *ReverbNode) ID() string { return n.id }

func (n *ReverbNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Reverb",
		Category:       audiograph.CategoryEffect,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters: []audiograph.ParameterDescriptor{
			audiograph.NewParameterDescriptor("rt60", 0.1, 10, 1.5, "s", "RT60"),
			audiograph.NewParameterDescriptor("damp", 0, 1, 0.5, "", "Damping"),
			audiograph.NewParameterDescriptor("wet", 0, 1, 0.3, "", "Wet"),
			audiograph.NewParameterDescriptor("dry", 0, 1, 1.0, "", "Dry"),
		},
		Plugin: "compositor",
	}
}

func (n *ReverbNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	out := input.Clone()
	n.fx.process(out.Samples, out.Channels)
	return out, nil
}

func (n *ReverbNode) SetParameter(name string, value float32) error {
	switch name {
	case "rt60":
		n.rt60Seconds = clamp32(value, 0.1, 10)
	case "damp":
		n.damp = clamp32(value, 0, 1)
	case "wet":
		n.wet = clamp32(value, 0, 1)
	case "dry":
		n.dry = clamp32(value, 0, 1)
	default:
		return audiograph.ErrParameterNotFound(n.id, name)
	}
	for _, inst := range n.fx.instances {
		n.applyTo(inst.(*reverb.FDNReverb))
	}
	return nil
}

func (n *ReverbNode) GetParameter(name string) (float32, bool) {
	switch name {
	case "rt60":
		return n.rt60Seconds, true
	case "damp":
		return n.damp, true
	case "wet":
		return n.wet, true
	case "dry":
		return n.dry, true
	default:
		return 0, false
	}
}

func (n *ReverbNode) Reset() {
	n.fx.reset()
}
