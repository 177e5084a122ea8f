package reverb

import (
	"fmt"
	"math"
)

const (
	networkSize = 8

	defaultWet         = 0.2
	defaultDry         = 1.0
	defaultRT60Seconds = 1.8
	defaultDamp        = 0.3
	defaultPreDelaySec = 0.01
	defaultModDepthSec = 0.002
	defaultModRateHz   = 0.1

	minDelayBufferSize = 4
	referenceSampleRate = 44100.0
)

// baseDelayLengths are mutually-prime-ish sample counts (at referenceSampleRate)
// for the eight recirculating lines; spacing them this way keeps early echoes
// from lining up into audible flutter.
var baseDelayLengths = [networkSize]float64{1537, 1753, 1999, 2251, 2473, 2689, 2851, 3067}

// mixingMatrix is an order-8 Hadamard matrix used as the FDN's lossless
// feedback mixer: every output is an equal-weighted +/- combination of every
// line, which spreads energy across all delay lines on each pass.
var mixingMatrix = [networkSize][networkSize]float64{
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, -1, 1, -1, 1, -1, 1, -1},
	{1, 1, -1, -1, 1, 1, -1, -1},
	{1, -1, -1, 1, 1, -1, -1, 1},
	{1, 1, 1, 1, -1, -1, -1, -1},
	{1, -1, 1, -1, -1, 1, -1, 1},
	{1, 1, -1, -1, -1, -1, 1, 1},
	{1, -1, -1, 1, -1, 1, 1, -1},
}

// FDNReverb is a mono feedback-delay-network reverb: eight modulated,
// cross-mixed delay lines with per-line damping, driven through a
// fixed pre-delay stage. Pre-delay, modulation depth and modulation rate
// are fixed at construction; only wet/dry/rt60/damp are runtime-adjustable,
// matching the knob set a host graph node exposes.
type FDNReverb struct {
	sampleRate  float64
	wet         float64
	dry         float64
	rt60Seconds float64
	damp        float64

	preDelaySeconds float64
	modDepthSeconds float64
	modRateHz       float64
	lfoPhase        float64

	baseDelaySamples [networkSize]float64
	delayScale       float64
	modDepthSamples  float64
	preDelaySamples  float64

	lines        [networkSize]delayLine
	filterState  [networkSize]float64
	feedbackGain [networkSize]float64
	preDelayLine delayLine

	inputGain   float64
	outputGain  float64
	matrixScale float64
}

// NewFDNReverb builds a reverb tuned for sampleRate with its default
// character (1.8s RT60, moderate damping, light pre-delay and modulation).
func NewFDNReverb(sampleRate float64) (*FDNReverb, error) {
	r := &FDNReverb{
		wet:             defaultWet,
		dry:             defaultDry,
		rt60Seconds:     defaultRT60Seconds,
		damp:            defaultDamp,
		preDelaySeconds: defaultPreDelaySec,
		modDepthSeconds: defaultModDepthSec,
		modRateHz:       defaultModRateHz,
		baseDelaySamples: baseDelayLengths,
	}

	scale := 1 / math.Sqrt(float64(networkSize))
	r.inputGain = scale
	r.outputGain = scale
	r.matrixScale = scale

	if err := r.configureSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FDNReverb) configureSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("reverb: sample rate must be > 0: %f", sampleRate)
	}

	r.sampleRate = sampleRate
	r.delayScale = sampleRate / referenceSampleRate
	r.modDepthSamples = r.modDepthSeconds * r.sampleRate
	r.preDelaySamples = r.preDelaySeconds * r.sampleRate

	return r.reconfigureDelays()
}

// SetWet sets the wet (reverberated) gain; must be non-negative.
func (r *FDNReverb) SetWet(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("reverb: wet must be >= 0: %f", v)
	}
	r.wet = v
	return nil
}

// SetDry sets the dry (unprocessed) gain; must be non-negative.
func (r *FDNReverb) SetDry(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("reverb: dry must be >= 0: %f", v)
	}
	r.dry = v
	return nil
}

// SetRT60 sets the time for the tail to decay 60 dB, in seconds.
func (r *FDNReverb) SetRT60(seconds float64) error {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("reverb: rt60 must be > 0: %f", seconds)
	}
	r.rt60Seconds = seconds
	r.updateFeedbackGains()
	return nil
}

// SetDamp sets high-frequency feedback damping in [0,1].
func (r *FDNReverb) SetDamp(v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("reverb: damp must be in [0,1]: %f", v)
	}
	r.damp = v
	return nil
}

// Reset clears all delay-line and filter state, as if newly constructed.
func (r *FDNReverb) Reset() {
	for i := range r.lines {
		r.lines[i].reset()
		r.filterState[i] = 0
	}
	r.preDelayLine.reset()
	r.lfoPhase = 0
}

// ProcessSample runs one input sample through pre-delay, the modulated
// delay bank, the Hadamard feedback mix, and the wet/dry blend.
func (r *FDNReverb) ProcessSample(input float64) float64 {
	in := input
	if r.preDelaySamples > 0 {
		r.preDelayLine.writeSample(input)
		in = r.preDelayLine.sampleFractionalDelay(r.preDelaySamples)
	}

	var tapped [networkSize]float64
	for i := range networkSize {
		phaseOffset := (2 * math.Pi * float64(i)) / float64(networkSize)
		mod := 0.5 * (1 + math.Sin(r.lfoPhase+phaseOffset))
		delay := r.baseDelaySamples[i]*r.delayScale + r.modDepthSamples*mod
		tapped[i] = r.lines[i].sampleFractionalDelay(delay)
	}

	r.lfoPhase += 2 * math.Pi * r.modRateHz / r.sampleRate
	if r.lfoPhase >= 2*math.Pi {
		r.lfoPhase -= 2 * math.Pi
	}

	for i := range networkSize {
		mixed := 0.0
		for j := range networkSize {
			mixed += mixingMatrix[i][j] * tapped[j]
		}
		mixed *= r.matrixScale

		filtered := mixed*(1-r.damp) + r.filterState[i]*r.damp
		r.filterState[i] = filtered

		r.lines[i].writeSample(in*r.inputGain + filtered*r.feedbackGain[i])
	}

	wetSum := 0.0
	for i := range networkSize {
		wetSum += tapped[i]
	}
	wetSum *= r.outputGain

	return input*r.dry + wetSum*r.wet
}

// ProcessInPlace runs every sample of buf through ProcessSample, in order.
func (r *FDNReverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

func (r *FDNReverb) reconfigureDelays() error {
	if r.sampleRate <= 0 {
		return fmt.Errorf("reverb: sample rate must be > 0: %f", r.sampleRate)
	}

	for i := range networkSize {
		maxDelay := max(int(math.Ceil(r.baseDelaySamples[i]*r.delayScale+r.modDepthSamples))+3, minDelayBufferSize)
		r.lines[i].resize(maxDelay)
		r.filterState[i] = 0
	}

	preDelayMax := max(int(math.Ceil(r.preDelaySamples))+3, minDelayBufferSize)
	r.preDelayLine.resize(preDelayMax)

	r.updateFeedbackGains()
	return nil
}

func (r *FDNReverb) updateFeedbackGains() {
	if r.sampleRate <= 0 || r.rt60Seconds <= 0 {
		return
	}
	for i := range networkSize {
		delaySeconds := (r.baseDelaySamples[i] * r.delayScale) / r.sampleRate
		r.feedbackGain[i] = math.Pow(10, -3*delaySeconds/r.rt60Seconds)
	}
}

// delayLine is a circular buffer supporting Hermite-interpolated fractional
// read delays, shared by the pre-delay stage and each of the network's lines.
type delayLine struct {
	buffer   []float64
	writePos int
	maxDelay int
}

func (d *delayLine) resize(maxDelay int) {
	if maxDelay < minDelayBufferSize {
		maxDelay = minDelayBufferSize
	}
	if maxDelay == len(d.buffer) {
		return
	}
	d.buffer = make([]float64, maxDelay)
	d.writePos = 0
	d.maxDelay = maxDelay - 3
}

func (d *delayLine) reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

func (d *delayLine) writeSample(x float64) {
	if len(d.buffer) == 0 {
		return
	}
	d.buffer[d.writePos] = x
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

func (d *delayLine) sampleFractionalDelay(delay float64) float64 {
	if len(d.buffer) == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	if maxDelay := float64(d.maxDelay); delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	xm1 := d.sampleDelayInt(maxInt(0, p-1))
	x0 := d.sampleDelayInt(p)
	x1 := d.sampleDelayInt(p + 1)
	x2 := d.sampleDelayInt(p + 2)

	return hermite4(t, xm1, x0, x1, x2)
}

func (d *delayLine) sampleDelayInt(delay int) float64 {
	if delay < 0 || delay >= len(d.buffer) {
		return 0
	}
	idx := d.writePos - 1 - delay
	if idx < 0 {
		idx += len(d.buffer)
	}
	return d.buffer[idx]
}
