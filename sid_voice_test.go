// sid_voice_test.go - Unit tests for the oscillator/envelope voice coupling

package sidgraph

import (
	"testing"
)

// TestVoiceOutputIsWaveTimesEnvelope verifies the voice sample is the
// signed oscillator output scaled by the envelope counter.
func TestVoiceOutputIsWaveTimesEnvelope(t *testing.T) {
	v := NewVoice(SID_MODEL_6581, SID_CLOCK_PAL)
	v.Wave.SetWaveform(WAVE_SAWTOOTH)
	v.Wave.SetFrequencyRegister(0x012345)
	v.Envelope.SetADSR(0, 0, 15, 0)
	v.Envelope.SetGate(true)

	for i := 0; i < 300; i++ {
		v.Clock(17)
		want := (int32(v.Wave.Output()) - WAVE_ZERO) * int32(v.Envelope.Output())
		if got := v.Output(); got != want {
			t.Fatalf("step %d: voice output = %d, want %d", i, got, want)
		}
	}
}

// TestVoiceIsSilentBeforeFirstGate verifies the idle envelope mutes the
// oscillator completely.
func TestVoiceIsSilentBeforeFirstGate(t *testing.T) {
	v := NewVoice(SID_MODEL_6581, SID_CLOCK_PAL)
	v.Wave.SetWaveform(WAVE_SAWTOOTH)
	v.Wave.SetFrequencyHz(440)

	for i := 0; i < 1000; i++ {
		v.Clock(20)
		if got := v.Output(); got != 0 {
			t.Fatalf("ungated voice output = %d at step %d, want 0", got, i)
		}
	}
}

// TestVoiceOutputStaysWithinProductRange verifies the 20-bit product
// bound holds across waveform and envelope extremes.
func TestVoiceOutputStaysWithinProductRange(t *testing.T) {
	v := NewVoice(SID_MODEL_8580, SID_CLOCK_PAL)
	v.Wave.SetWaveform(WAVE_PULSE)
	v.Wave.SetPulseWidthRegister(0x400)
	v.Wave.SetFrequencyRegister(0x8000)
	v.Envelope.SetADSR(0, 0, 15, 0)
	v.Envelope.SetGate(true)

	const bound = 2047 * 255
	for i := 0; i < 5000; i++ {
		v.Clock(13)
		if got := v.Output(); got < -2048*255 || got > bound {
			t.Fatalf("voice output %d outside chip range at step %d", got, i)
		}
	}
}
