package compositor

import "math"

// biquadDF1 is a single second-order IIR section run in Direct Form I,
// carrying independent input/output history so coefficients can change
// between blocks without discontinuities beyond what the recurrence itself
// introduces.
type biquadDF1 struct {
	a0, a1, a2 float64 // normalized feedforward taps
	b1, b2     float64 // normalized feedback taps

	x1, x2 float64
	y1, y2 float64
}

// setPeakingEQ derives RBJ-cookbook peaking-EQ coefficients for a centre
// frequency (Hz), gain (dB), and Q at the given sample rate, normalizing
// every tap by a0 so process need not divide per sample.
func (f *biquadDF1) setPeakingEQ(freqHz, gainDB, q, sampleRate float64) {
	omega := 2 * math.Pi * freqHz / sampleRate
	alpha := math.Sin(omega) / (2 * q)
	a := math.Pow(10, gainDB/40)
	cosOmega := math.Cos(omega)

	b0 := 1 + alpha*a
	b1 := -2 * cosOmega
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosOmega
	a2 := 1 - alpha/a

	f.a0 = b0 / a0
	f.a1 = b1 / a0
	f.a2 = b2 / a0
	f.b1 = a1 / a0
	f.b2 = a2 / a0
}

// process runs one sample through the Direct Form I recurrence.
func (f *biquadDF1) process(x float64) float64 {
	y := f.a0*x + f.a1*f.x1 + f.a2*f.x2 - f.b1*f.y1 - f.b2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// reset zeroes the filter's history, leaving coefficients untouched.
func (f *biquadDF1) reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}
