package orquestador

import (
	"math"

	"github.com/cwbudde/audiograph/audiograph"
)

// ChannelStripNode combines gain, equal-power pan, mute, and solo into one
// routing node, mirroring a physical mixing console channel strip.
//
// Solo is stored and reported but not enforced: the graph has no concept of
// a channel group to solo against, so the bookkeeping is left to the host
// that owns the console UI.
type ChannelStripNode struct {
	audiograph.BaseNode

	id string

	gainDB     float32
	gainLinear float32
	pan        float32
	mute       bool
	solo       bool
}

// NewChannelStripNode creates a channel strip at unity gain, centered pan,
// unmuted, unsoloed.
func NewChannelStripNode(id string) *ChannelStripNode {
	return &ChannelStripNode{id: id, gainDB: 0, gainLinear: 1, pan: 0}
}

func (n *ChannelStripNode) panGains() (left, right float32) {
	angle := float64(n.pan+1) * panQuarterPi
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}

func (n *ChannelStripNode) ID() string { return n.id }

func (n *ChannelStripNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Channel Strip",
		Category:       audiograph.CategoryRouting,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters: []audiograph.ParameterDescriptor{
			audiograph.NewParameterDescriptor("gain", -60, 24, 0, "dB", "Gain"),
			audiograph.NewParameterDescriptor("pan", -1, 1, 0, "", "Pan"),
			audiograph.NewParameterDescriptor("mute", 0, 1, 0, "", "Mute"),
			audiograph.NewParameterDescriptor("solo", 0, 1, 0, "", "Solo"),
		},
		Plugin: "orquestador",
	}
}

func (n *ChannelStripNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	if n.mute {
		return audiograph.Silence(input.Channels, input.SampleRate, input.NumFrames()), nil
	}

	out := input.Clone()
	left, right := n.panGains()
	samples := out.Samples
	for i := 0; i+1 < len(samples); i += 2 {
		samples[i] *= n.gainLinear * left
		samples[i+1] *= n.gainLinear * right
	}
	return out, nil
}

func (n *ChannelStripNode) SetParameter(name string, value float32) error {
	switch name {
	case "gain":
		n.gainDB = clampF32(value, -60, 24)
		n.gainLinear = float32(math.Pow(10, float64(n.gainDB)/20))
	case "pan":
		n.pan = clampF32(value, -1, 1)
	case "mute":
		n.mute = value > 0.5
	case "solo":
		n.solo = value > 0.5
	default:
		return audiograph.ErrParameterNotFound(n.id, name)
	}
	return nil
}

func (n *ChannelStripNode) GetParameter(name string) (float32, bool) {
	switch name {
	case "gain":
		return n.gainDB, true
	case "pan":
		return n.pan, true
	case "mute":
		return boolToF32(n.mute), true
	case "solo":
		return boolToF32(n.solo), true
	default:
		return 0, false
	}
}

func clampF32(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func boolToF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
