// component_reset.go - Reset methods for every chip component and node

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
Reset restores a component's run-time state without touching its
configuration. Frequency, pulse width, waveform selection, ADSR rates,
filter registers and model choice all survive a reset; only phase,
counters, integrator state and the clock residue are cleared. This is
the chip's RES line behavior as hosts expect it: re-triggering a patch
after Reset sounds identical to the first trigger.
*/

package sidgraph

// Reset clears the phase accumulator and reseeds the noise shift
// register. Frequency, pulse width and waveform selection are kept.
func (w *WaveformGenerator) Reset() {
	w.accumulator = 0
	w.shiftReg = NOISE_LFSR_RESET
	w.test = false
}

// Reset returns the envelope to the held-at-zero idle state. The
// programmed ADSR rates are kept.
func (e *EnvelopeGenerator) Reset() {
	e.counter = 0
	e.rateCounter = 0
	e.expCounter = 0
	e.expPeriod = 1
	e.state = ENV_IDLE
	e.holdZero = true
	e.gate = false
	e.ratePeriod = envRatePeriod[e.release]
}

// Reset drains the integrators and reseeds the dither generator, then
// recomputes the coefficient caches from the kept register state.
func (f *Filter) Reset() {
	f.Vhp = 0
	f.Vbp = 0
	f.Vlp = 0
	f.Vnf = 0
	f.ditherState = ditherSeed
	f.updateCenterFrequency()
	f.updateResonance()
}

// Reset discards the fractional cycle residue.
func (c *ClockBridge) Reset() {
	c.residue = 0
}

// Reset resets both halves of the voice.
func (v *Voice) Reset() {
	v.Wave.Reset()
	v.Envelope.Reset()
}

func (n *OscillatorNode) Reset() {
	n.wave.Reset()
	n.clock.Reset()
}

func (n *EnvelopeNode) Reset() {
	n.env.Reset()
	n.clock.Reset()
}

func (n *VoiceNode) Reset() {
	n.voice.Reset()
	n.clock.Reset()
}

func (n *FilterNode) Reset() {
	n.filter.Reset()
	n.clock.Reset()
}
