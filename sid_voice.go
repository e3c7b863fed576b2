// sid_voice.go - Oscillator and envelope coupled into one voice

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

package sidgraph

// Voice couples one waveform generator with one envelope generator and
// produces the ~20-bit signed sample the filter's summing node expects:
// the waveform DAC output referenced to its midpoint, scaled by the 8-bit
// envelope.
type Voice struct {
	Wave     *WaveformGenerator
	Envelope *EnvelopeGenerator
}

func NewVoice(model int, clockRate float64) *Voice {
	return &Voice{
		Wave:     NewWaveformGenerator(model, clockRate),
		Envelope: NewEnvelopeGenerator(),
	}
}

// SetModel switches the chip model on the waveform side; the envelope is
// identical across die revisions.
func (v *Voice) SetModel(model int) {
	v.Wave.SetModel(model)
}

// Clock advances both generators by delta chip cycles.
func (v *Voice) Clock(delta int) {
	v.Envelope.Clock(delta)
	v.Wave.Clock(delta)
}

// Output returns the signed chip-scale voice sample,
// (wave - 0x800) * envelope, spanning about 20 bits.
func (v *Voice) Output() int32 {
	return (int32(v.Wave.Output()) - WAVE_ZERO) * int32(v.Envelope.Output())
}
