// sid_filter.go - MOS 6581/8580 two-integrator-loop filter

/*
 ██████  ██▓▓█████▄   ▄████  ██▀███   ▄▄▄       ██▓███   ██░ ██
▒██    ▒ ▓██▒▒██▀ ██▌ ██▒ ▀█▒▓██ ▒ ██▒▒████▄    ▓██░  ██▒▓██░ ██▒
░ ▓██▄   ▒██▒░██   █▌▒██░▄▄▄░▓██ ░▄█ ▒▒██  ▀█▄  ▓██░ ██▓▒▒██▀▀██░
  ▒   ██▒░██░░▓█▄   ▌░▓█  ██▓▒██▀▀█▄  ░██▄▄▄▄██ ▒██▄█▓▒ ▒░▓█ ░██
▒██████▒▒░██░░▒████▓ ░▒▓███▀▒░██▓ ▒██▒ ▓█   ▓██▒▒██▒ ░  ░░▓█▒░██▓
▒ ▒▓▒ ▒ ░░▓   ▒▒▓  ▒  ░▒   ▒ ░ ▒▓ ░▒▓░ ▒▒   ▓▒█░▒▓▒░ ░  ░ ▒ ░░▒░▒
░ ░▒  ░ ░ ▒ ░ ░ ▒  ▒   ░   ░   ░▒ ░ ▒░  ▒   ▒▒ ░░▒ ░      ▒ ░▒░ ░
░  ░  ░   ▒ ░ ░ ░  ░ ░ ░   ░   ░░   ░   ░   ░▒ ░░        ░  ░░ ░
      ░   ░     ░          ░    ░           ░  ░          ░  ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SIDGraph
License: GPLv3 or later
*/

/*
Voltage model of the SID's analog filter: a two-integrator loop where the
highpass node is recomputed every cycle from the bandpass and lowpass
states and the summed input,

	Vhp = Vbp/Q - Vlp - Vi
	dVbp = -w0*Vhp*dt
	dVlp = -w0*Vbp*dt

integrated in fixed point. The integration runs in sub-chunks of at most
8 cycles; the loop is not stable at larger steps under the worst-case
cutoff/resonance and the error is audible well before it diverges.

Extensions beyond the stock chip, each an explicit toggle: per-voice
volume scalars, deterministic input dither (on by default, matching the
reference), and a resonance boost that raises Q beyond the stock ceiling
of ~1.7 toward ~5, far enough for the loop to ring out on its own.
*/

package sidgraph

import "math"

// Maximum cycles per integration sub-chunk. Larger steps destabilize the
// loop at high cutoff and resonance.
const filterMaxStep = 8

// Filter owns the filter register state, the cached integration constants
// and the three voltage states.
type Filter struct {
	enabled bool

	cutoff      uint16 // 11-bit cutoff register
	res         uint8  // 4-bit resonance register
	resBoost    uint8  // 0-255 resonance extension
	routing     uint8  // ROUTE_* mask: filtered path membership
	mode        uint8  // FILTER_* mask: output mix
	volume      uint8  // 4-bit master volume
	voiceVolume [3]int32
	dither      bool
	ditherState uint32

	model   int
	mixerDC int32
	f0      *[2048]int16

	// Voltage state. There is no independent highpass storage on the chip;
	// Vhp is recomputed from the other two every cycle.
	Vhp int32
	Vbp int32
	Vlp int32
	Vnf int32 // unfiltered path sum

	// Cached derived constants, recomputed only on cutoff/resonance/
	// boost/model changes.
	w0CeilDt int32
	div1024Q int32
}

const ditherSeed = 0x13579b

// NewFilter creates a filter for the given chip model with unity voice
// volumes, dithering on and stock resonance.
func NewFilter(model int) *Filter {
	f := &Filter{
		enabled: true,
		dither:  true,
	}
	for i := range f.voiceVolume {
		f.voiceVolume[i] = VOICE_VOL_UNITY
	}
	f.SetModel(model)
	f.Reset()
	return f
}

// SetModel selects the cutoff calibration table and mixer DC offset for
// the given die revision.
func (f *Filter) SetModel(model int) {
	if model != SID_MODEL_8580 {
		model = SID_MODEL_6581
	}
	f.model = model
	if model == SID_MODEL_6581 {
		// The 6581 mixer sits ~1/18 of one voice's dynamic range below zero.
		f.mixerDC = -0xfff * 0xff / 18 >> 7
		f.f0 = &filterCutoff6581
	} else {
		f.mixerDC = 0
		f.f0 = &filterCutoff8580
	}
	f.updateCenterFrequency()
	f.updateResonance()
}

// Model returns the active chip model.
func (f *Filter) Model() int {
	return f.model
}

// SetCutoff programs the 11-bit cutoff register from a fraction in [0, 1].
func (f *Filter) SetCutoff(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	f.cutoff = uint16(math.Round(v * 2047))
	f.updateCenterFrequency()
}

// SetCutoffRegister writes the 11-bit cutoff register directly.
func (f *Filter) SetCutoffRegister(value uint16) {
	f.cutoff = value & 0x7ff
	f.updateCenterFrequency()
}

// SetResonance programs the 4-bit resonance register from a fraction in
// [0, 1]. Stock Q spans roughly [0.707, 1.7]; the stock filter never
// self-oscillates.
func (f *Filter) SetResonance(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	f.res = uint8(math.Round(v * 15))
	f.updateResonance()
}

// SetResonanceBoost extends Q beyond the stock range, up toward ~5 at
// full boost. This deliberately allows self-oscillation the hardware
// never produced; it defaults off.
func (f *Filter) SetResonanceBoost(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	f.resBoost = uint8(math.Round(v * 255))
	f.updateResonance()
}

// SetRouting selects which inputs take the filtered path (ROUTE_* mask).
// Inputs outside the mask bypass the filter.
func (f *Filter) SetRouting(mask uint8) {
	f.routing = mask & 0x0f
}

// SetMode selects which filter taps feed the output (FILTER_* mask).
func (f *Filter) SetMode(mask uint8) {
	f.mode = mask & 0x07
}

// SetVolume programs the 4-bit master volume.
func (f *Filter) SetVolume(vol int) {
	if vol < 0 {
		vol = 0
	} else if vol > 15 {
		vol = 15
	}
	f.volume = uint8(vol)
}

// SetVoiceVolume scales one voice input, 0-256 with 256 unity. An
// extension over the stock chip; defaults to unity.
func (f *Filter) SetVoiceVolume(voice, vol int) {
	if voice < 0 || voice > 2 {
		return
	}
	if vol < 0 {
		vol = 0
	} else if vol > VOICE_VOL_UNITY {
		vol = VOICE_VOL_UNITY
	}
	f.voiceVolume[voice] = int32(vol)
}

// SetDithering toggles deterministic dither on the 20-to-13-bit input
// scaling. On by default.
func (f *Filter) SetDithering(enabled bool) {
	f.dither = enabled
}

// SetEnabled bypasses the filter entirely when false: every input joins
// the unfiltered sum and the voltage states are held at zero.
func (f *Filter) SetEnabled(enabled bool) {
	f.enabled = enabled
}

func (f *Filter) updateCenterFrequency() {
	// The 1.048576 factor turns the 1e6 cycles-per-second division into a
	// 20-bit right shift downstream.
	w0 := int32(math.Round(2 * math.Pi * float64(f.f0[f.cutoff]) * 1.048576))

	// Cap the center frequency at 4 kHz equivalent to keep the multi-cycle
	// integration stable.
	w0MaxDt := int32(math.Round(2 * math.Pi * 4000 * 1.048576))
	if w0 <= w0MaxDt {
		f.w0CeilDt = w0
	} else {
		f.w0CeilDt = w0MaxDt
	}
}

func (f *Filter) updateResonance() {
	q := 0.707 + 1.0*float64(f.res)/15.0
	if f.resBoost > 0 {
		boost := float64(f.resBoost) / 255.0
		q += boost * boost * 3.3
	}
	// The 1024 coefficient is dispensed with by a 10-bit shift in the loop.
	f.div1024Q = int32(math.Round(1024.0 / q))
}

// ditherNext returns the next deterministic sub-LSB dither value in
// [0, 127], one step of a 32-bit xorshift.
func (f *Filter) ditherNext() int32 {
	x := f.ditherState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	f.ditherState = x
	return int32(x & 0x7f)
}

// scaleInput drops a 20-bit voice sample to the 13 bits the summing node
// works in, optionally dithering the truncation.
func (f *Filter) scaleInput(v int32) int32 {
	if f.dither {
		return (v + f.ditherNext()) >> 7
	}
	return v >> 7
}

// Clock advances the filter by delta chip cycles with the given 20-bit
// voice samples and external input.
func (f *Filter) Clock(delta int, voice1, voice2, voice3, extIn int32) {
	v1 := f.scaleInput(voice1) * f.voiceVolume[0] >> 8
	v2 := f.scaleInput(voice2) * f.voiceVolume[1] >> 8
	v3 := f.scaleInput(voice3) * f.voiceVolume[2] >> 8
	ext := f.scaleInput(extIn)

	if !f.enabled {
		f.Vnf = v1 + v2 + v3 + ext
		f.Vhp, f.Vbp, f.Vlp = 0, 0, 0
		return
	}

	// Route each input into the filtered sum or past it.
	var vi int32
	f.Vnf = 0
	if f.routing&ROUTE_VOICE1 != 0 {
		vi += v1
	} else {
		f.Vnf += v1
	}
	if f.routing&ROUTE_VOICE2 != 0 {
		vi += v2
	} else {
		f.Vnf += v2
	}
	if f.routing&ROUTE_VOICE3 != 0 {
		vi += v3
	} else {
		f.Vnf += v3
	}
	if f.routing&ROUTE_EXTIN != 0 {
		vi += ext
	} else {
		f.Vnf += ext
	}

	for delta > 0 {
		step := delta
		if step > filterMaxStep {
			step = filterMaxStep
		}

		// w0 is scaled by 1.048576 so the 1 MHz time base reduces to
		// shifts: >>6 here and >>14 in the integrators make up the >>20.
		w0dt := f.w0CeilDt * int32(step) >> 6

		dVbp := w0dt * f.Vhp >> 14
		dVlp := w0dt * f.Vbp >> 14
		f.Vbp -= dVbp
		f.Vlp -= dVlp
		f.Vhp = (f.Vbp * f.div1024Q >> 10) - f.Vlp - vi

		delta -= step
	}
}

// Output mixes the enabled filter taps with the unfiltered sum and the
// mixer DC offset, scaled by the master volume. The result is a raw
// chip-scale integer; hosts normalize with FILTER_OUTPUT_SCALE. Large
// inputs at full volume are allowed to exceed that range, which matches
// the hardware's clipping character.
func (f *Filter) Output() int32 {
	if !f.enabled {
		return (f.Vnf + f.mixerDC) * int32(f.volume)
	}

	var vf int32
	if f.mode&FILTER_LP != 0 {
		vf += f.Vlp
	}
	if f.mode&FILTER_BP != 0 {
		vf += f.Vbp
	}
	if f.mode&FILTER_HP != 0 {
		vf += f.Vhp
	}

	return (f.Vnf + vf + f.mixerDC) * int32(f.volume)
}
