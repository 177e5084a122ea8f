package compositor

import (
	"math"

	"github.com/cwbudde/audiograph/audiograph"
)

const compressorDefaultSampleRate = 48000.0

// CompressorNode is a single-envelope feed-forward peak compressor: one
// envelope follower shared across channels, driven by the peak of all
// channels at each frame, applying the resulting gain reduction uniformly.
type CompressorNode struct {
	audiograph.BaseNode

	id string

	thresholdDB float32
	ratio       float32
	attackMS    float32
	releaseMS   float32
	makeupDB    float32

	sampleRate float64
	envelope   float64
}

// NewCompressorNode creates a compressor at the documented defaults:
// -20 dB threshold, 4:1 ratio, 10 ms attack, 100 ms release, 0 dB makeup.
func NewCompressorNode(id string) *CompressorNode {
	return &CompressorNode{
		id:          id,
		thresholdDB: -20,
		ratio:       4,
		attackMS:    10,
		releaseMS:   100,
		makeupDB:    0,
		sampleRate:  compressorDefaultSampleRate,
	}
}

func (n *CompressorNode) ID() string { return n.id }

func (n *CompressorNode) Metadata() audiograph.NodeMetadata {
	return audiograph.NodeMetadata{
		Name:           "Compressor",
		Category:       audiograph.CategoryEffect,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters: []audiograph.ParameterDescriptor{
			audiograph.NewParameterDescriptor("threshold", -60, 0, -20, "dB", "Threshold"),
			audiograph.NewParameterDescriptor("ratio", 1, 20, 4, "", "Ratio"),
			audiograph.NewParameterDescriptor("attack", 0.1, 100, 10, "ms", "Attack"),
			audiograph.NewParameterDescriptor("release", 10, 1000, 100, "ms", "Release"),
			audiograph.NewParameterDescriptor("makeup", 0, 24, 0, "dB", "Makeup"),
		},
		Plugin: "compositor",
	}
}

// Process runs the feed-forward peak compressor one frame at a time: the
// envelope follows the peak of all channels in the frame, gain reduction is
// derived from the envelope once it exceeds the threshold, and the result
// (plus makeup gain) is applied uniformly across channels.
func (n *CompressorNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	out := input.Clone()
	channels := out.Channels
	if channels <= 0 {
		return out, nil
	}

	thresholdLinear := math.Pow(10, float64(n.thresholdDB)/20)
	makeupLinear := math.Pow(10, float64(n.makeupDB)/20)
	attackCoeff := math.Exp(-1 / (float64(n.attackMS) * n.sampleRate / 1000))
	releaseCoeff := math.Exp(-1 / (float64(n.releaseMS) * n.sampleRate / 1000))

	frames := out.NumFrames()
	for f := 0; f < frames; f++ {
		base := f * channels

		peak := 0.0
		for ch := 0; ch < channels; ch++ {
			s := math.Abs(float64(out.Samples[base+ch]))
			if s > peak {
				peak = s
			}
		}

		if peak > n.envelope {
			n.envelope = attackCoeff*n.envelope + (1-attackCoeff)*peak
		} else {
			n.envelope = releaseCoeff*n.envelope + (1-releaseCoeff)*peak
		}

		gainReduction := 1.0
		if n.envelope > thresholdLinear && n.envelope > 0 {
			envelopeDB := 20 * math.Log10(n.envelope)
			overDB := envelopeDB - float64(n.thresholdDB)
			compressedDB := overDB / float64(n.ratio)
			reductionDB := overDB - compressedDB
			gainReduction = math.Pow(10, -reductionDB/20)
		}

		total := gainReduction * makeupLinear
		for ch := 0; ch < channels; ch++ {
			out.Samples[base+ch] = float32(float64(out.Samples[base+ch]) * total)
		}
	}

	return out, nil
}

func (n *CompressorNode) SetParameter(name string, value float32) error {
	switch name {
	case "threshold":
		n.thresholdDB = clamp32(value, -60, 0)
	case "ratio":
		n.ratio = clamp32(value, 1, 20)
	case "attack":
		n.attackMS = clamp32(value, 0.1, 100)
	case "release":
		n.releaseMS = clamp32(value, 10, 1000)
	case "makeup":
		n.makeupDB = clamp32(value, 0, 24)
	default:
		return audiograph.ErrParameterNotFound(n.id, name)
	}
	return nil
}

func (n *CompressorNode) GetParameter(name string) (float32, bool) {
	switch name {
	case "threshold":
		return n.thresholdDB, true
	case "ratio":
		return n.ratio, true
	case "attack":
		return n.attackMS, true
	case "release":
		return n.releaseMS, true
	case "makeup":
		return n.makeupDB, true
	default:
		return 0, false
	}
}

func (n *CompressorNode) Reset() {
	n.envelope = 0
}
