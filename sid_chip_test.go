// sid_chip_test.go - Unit tests for the full chip assembly and pull path

package sidgraph

import (
	"testing"
)

// TestChipConstructionRejectsBadSampleRate mirrors the node-level rule.
func TestChipConstructionRejectsBadSampleRate(t *testing.T) {
	if _, err := NewSIDChip(0, SID_MODEL_6581, SID_CLOCK_PAL); err == nil {
		t.Error("sample rate 0 did not error")
	}
	if _, err := NewSIDChip(48000, SID_MODEL_6581, SID_CLOCK_PAL); err != nil {
		t.Errorf("valid construction failed: %v", err)
	}
}

func configureTestPatch(chip *SIDChip) {
	chip.SetVolume(15)
	chip.SetDithering(false)
	chip.SetFilterRouting(ROUTE_VOICE1)
	chip.SetFilterMode(FILTER_LP)
	chip.SetFilterCutoff(0.5)
	chip.SetVoiceWaveform(0, WAVE_SAWTOOTH)
	chip.SetVoiceFrequency(0, 440)
	chip.SetVoiceADSR(0, 0, 0, 15, 0)
	chip.SetVoiceGate(0, true)
}

// TestReadSampleMatchesRenderBlock verifies the pull path and the block
// path produce the identical stream.
func TestReadSampleMatchesRenderBlock(t *testing.T) {
	pull, err := NewSIDChip(48000, SID_MODEL_8580, SID_CLOCK_PAL)
	if err != nil {
		t.Fatal(err)
	}
	block, err := NewSIDChip(48000, SID_MODEL_8580, SID_CLOCK_PAL)
	if err != nil {
		t.Fatal(err)
	}
	configureTestPatch(pull)
	configureTestPatch(block)

	const n = DEFAULT_BLOCK_SIZE + 500 // crosses a pull-path refill
	blocked := make([]float32, n)
	block.RenderBlock(blocked)
	for i := 0; i < n; i++ {
		if got := pull.ReadSample(); got != blocked[i] {
			t.Fatalf("pull path diverged at sample %d: %v vs %v", i, got, blocked[i])
		}
	}
}

// TestChipSilentAtZeroVolume verifies the master volume gates the whole
// mix on the 8580.
func TestChipSilentAtZeroVolume(t *testing.T) {
	chip, err := NewSIDChip(48000, SID_MODEL_8580, SID_CLOCK_PAL)
	if err != nil {
		t.Fatal(err)
	}
	configureTestPatch(chip)
	chip.SetVolume(0)

	out := make([]float32, 1000)
	chip.RenderBlock(out)
	for i, s := range out {
		if s != 0 {
			t.Fatalf("zero-volume chip output %v at sample %d", s, i)
		}
	}
}

// TestChipResetReplaysIdentically verifies Reset restores the stream
// while keeping the programmed patch.
func TestChipResetReplaysIdentically(t *testing.T) {
	chip, err := NewSIDChip(44100, SID_MODEL_6581, SID_CLOCK_PAL)
	if err != nil {
		t.Fatal(err)
	}
	configureTestPatch(chip)

	first := make([]float32, 2048)
	chip.RenderBlock(first)

	chip.Reset()
	chip.SetVoiceGate(0, true) // gate line itself is run-time state

	second := make([]float32, 2048)
	chip.RenderBlock(second)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("post-reset stream diverged at sample %d: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestVoiceAccessorClampsIndex verifies out-of-range voice indexes fall
// back to voice 0 instead of panicking.
func TestVoiceAccessorClampsIndex(t *testing.T) {
	chip, err := NewSIDChip(48000, SID_MODEL_6581, SID_CLOCK_PAL)
	if err != nil {
		t.Fatal(err)
	}
	if chip.Voice(-1) != chip.Voice(0) {
		t.Error("negative voice index did not clamp to voice 0")
	}
	if chip.Voice(99) != chip.Voice(0) {
		t.Error("out-of-range voice index did not clamp to voice 0")
	}
	if chip.Voice(2) == chip.Voice(0) {
		t.Error("distinct voices aliased")
	}
}
