package compositor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/audiograph/audiograph"
)

const eqSampleRate = 48000.0

var eqDefaultFrequencies = []float32{60, 170, 310, 600, 1000, 3000, 6000, 12000, 14000, 16000}

func eqDefaultFrequency(band int) float32 {
	if band < len(eqDefaultFrequencies) {
		return eqDefaultFrequencies[band]
	}
	return 1000
}

type eqBand struct {
	freq, gainDB, q float32
	left, right     biquadDF1
}

func (b *eqBand) recompute() {
	b.left.setPeakingEQ(float64(b.freq), float64(b.gainDB), float64(b.q), eqSampleRate)
	b.right.setPeakingEQ(float64(b.freq), float64(b.gainDB), float64(b.q), eqSampleRate)
}

// EqualizerNode is an N-band parametric peaking EQ operating on interleaved
// stereo, implemented as a cascade of independent Direct Form I biquads per
// band per channel (one history pair per band, not a single shared
// section), following the RBJ Audio EQ Cookbook peaking formula.
type EqualizerNode struct {
	audiograph.BaseNode

	id    string
	bands []eqBand
}

// NewEqualizerNode creates an EQ with numBands bands, each initialized to
// its default centre frequency, 0 dB gain, and Q=1.0.
func NewEqualizerNode(id string, numBands int) *EqualizerNode {
	bands := make([]eqBand, numBands)
	for i := range bands {
		bands[i] = eqBand{freq: eqDefaultFrequency(i), gainDB: 0, q: 1.0}
		bands[i].recompute()
	}
	return &EqualizerNode{id: id, bands: bands}
}

func (n *EqualizerNode) ID() string { return n.id }

func (n *EqualizerNode) Metadata() audiograph.NodeMetadata {
	params := make([]audiograph.ParameterDescriptor, 0, len(n.bands)*3)
	for i, b := range n.bands {
		params = append(params,
			audiograph.NewParameterDescriptor(fmt.Sprintf("band_%d_gain", i), -24, 24, 0, "dB", fmt.Sprintf("Band %d Gain", i)),
			audiograph.NewParameterDescriptor(fmt.Sprintf("band_%d_freq", i), 20, 20000, b.freq, "Hz", fmt.Sprintf("Band %d Freq", i)),
			audiograph.NewParameterDescriptor(fmt.Sprintf("band_%d_q", i), 0.1, 10, 1.0, "", fmt.Sprintf("Band %d Q", i)),
		)
	}
	return audiograph.NodeMetadata{
		Name:           "Equalizer",
		Category:       audiograph.CategoryEffect,
		InputChannels:  2,
		OutputChannels: 2,
		Parameters:     params,
		Plugin:         "compositor",
	}
}

// Process applies every band in sequence to each interleaved stereo pair,
// skipping bands whose gain is close enough to flat to be inaudible.
func (n *EqualizerNode) Process(input audiograph.AudioBuffer) (audiograph.AudioBuffer, error) {
	out := input.Clone()
	samples := out.Samples

	for bi := range n.bands {
		band := &n.bands[bi]
		if abs32(band.gainDB) < 0.01 {
			continue
		}
		for i := 0; i+1 < len(samples); i += 2 {
			samples[i] = float32(band.left.process(float64(samples[i])))
			samples[i+1] = float32(band.right.process(float64(samples[i+1])))
		}
	}

	return out, nil
}

func (n *EqualizerNode) SetParameter(name string, value float32) error {
	band, field, err := parseEQParamName(n.id, name, len(n.bands))
	if err != nil {
		return err
	}

	b := &n.bands[band]
	switch field {
	case "gain":
		b.gainDB = clamp32(value, -24, 24)
	case "freq":
		b.freq = clamp32(value, 20, 20000)
	case "q":
		b.q = clamp32(value, 0.1, 10)
	}
	// Any change to one band re-derives every band's coefficients, matching
	// the reference's update_filters sweep.
	for i := range n.bands {
		n.bands[i].recompute()
	}
	return nil
}

func (n *EqualizerNode) GetParameter(name string) (float32, bool) {
	band, field, err := parseEQParamName(n.id, name, len(n.bands))
	if err != nil {
		return 0, false
	}
	b := n.bands[band]
	switch field {
	case "gain":
		return b.gainDB, true
	case "freq":
		return b.freq, true
	case "q":
		return b.q, true
	}
	return 0, false
}

func (n *EqualizerNode) Reset() {
	for i := range n.bands {
		n.bands[i].left.reset()
		n.bands[i].right.reset()
	}
}

func parseEQParamName(nodeID, name string, numBands int) (band int, field string, err error) {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) != 3 || parts[0] != "band" {
		return 0, "", audiograph.ErrParameterNotFound(nodeID, name)
	}
	idx, convErr := strconv.Atoi(parts[1])
	if convErr != nil || idx < 0 || idx >= numBands {
		return 0, "", audiograph.ErrParameterNotFound(nodeID, name)
	}
	switch parts[2] {
	case "gain", "freq", "q":
		return idx, parts[2], nil
	default:
		return 0, "", audiograph.ErrParameterNotFound(nodeID, name)
	}
}
