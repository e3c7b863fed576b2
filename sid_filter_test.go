// sid_filter_test.go - Unit tests for the filter, routing and resonance boost

package sidgraph

import (
	"testing"
)

// TestDisabledFilterPassesScaledSum verifies the bypass path: every input
// joins the unfiltered sum at 13-bit scale and the state variables stay
// drained.
func TestDisabledFilterPassesScaledSum(t *testing.T) {
	f := NewFilter(SID_MODEL_8580)
	f.SetDithering(false)
	f.SetEnabled(false)
	f.SetVolume(15)

	in := int32(100000)
	f.Clock(8, in, -in, in/2, 0)
	want := ((in >> 7) + (-in >> 7) + (in / 2 >> 7)) * 15
	if got := f.Output(); got != want {
		t.Errorf("bypass output = %d, want %d", got, want)
	}
	if f.Vhp != 0 || f.Vbp != 0 || f.Vlp != 0 {
		t.Errorf("bypass left state variables charged: %d %d %d", f.Vhp, f.Vbp, f.Vlp)
	}
}

// TestUnroutedInputMatchesBypass verifies that with routing empty and no
// mode bits set, the enabled filter is sample-identical to the disabled
// one on the 8580, where there is no mixer DC offset.
func TestUnroutedInputMatchesBypass(t *testing.T) {
	enabled := NewFilter(SID_MODEL_8580)
	enabled.SetDithering(false)
	enabled.SetVolume(15)
	enabled.SetRouting(0)
	enabled.SetMode(0)

	bypassed := NewFilter(SID_MODEL_8580)
	bypassed.SetDithering(false)
	bypassed.SetVolume(15)
	bypassed.SetEnabled(false)

	inputs := []int32{0, 4096, -70000, 523776, -523776, 12345}
	for i, in := range inputs {
		enabled.Clock(11, in, in/3, -in, in/2)
		bypassed.Clock(11, in, in/3, -in, in/2)
		if got, want := enabled.Output(), bypassed.Output(); got != want {
			t.Errorf("sample %d: unrouted output %d != bypass output %d", i, got, want)
		}
	}
}

// TestRoutingSplitsFilteredAndDryPaths verifies a routed voice leaves the
// unfiltered sum entirely.
func TestRoutingSplitsFilteredAndDryPaths(t *testing.T) {
	f := NewFilter(SID_MODEL_8580)
	f.SetDithering(false)
	f.SetVolume(15)
	f.SetRouting(ROUTE_VOICE1)
	f.SetMode(0) // routed input reaches no output tap

	in := int32(200000)
	f.Clock(8, in, 0, 0, 0)
	if got := f.Output(); got != 0 {
		t.Errorf("routed voice leaked into the dry path, output = %d", got)
	}
	if f.Vbp == 0 && f.Vhp == 0 {
		t.Error("routed voice never charged the filter state")
	}
}

// TestVoiceVolumeScalesBeforeSumming verifies the per-voice level control
// attenuates a single voice without touching the others.
func TestVoiceVolumeScalesBeforeSumming(t *testing.T) {
	full := NewFilter(SID_MODEL_8580)
	full.SetDithering(false)
	full.SetVolume(15)
	full.SetEnabled(false)

	half := NewFilter(SID_MODEL_8580)
	half.SetDithering(false)
	half.SetVolume(15)
	half.SetEnabled(false)
	half.SetVoiceVolume(0, 128)

	in := int32(400000)
	full.Clock(8, in, 0, 0, 0)
	half.Clock(8, in, 0, 0, 0)
	if got, want := half.Output(), (in>>7)*128>>8*15; got != want {
		t.Errorf("half-volume output = %d, want %d", got, want)
	}
	if full.Output() <= half.Output() {
		t.Errorf("attenuated voice (%d) not below full (%d)", half.Output(), full.Output())
	}

	// Out-of-range values clamp to the register limits.
	half.SetVoiceVolume(0, 5000)
	half.Clock(8, in, 0, 0, 0)
	if got, want := half.Output(), full.Output(); got != want {
		t.Errorf("over-range voice volume output = %d, want unity %d", got, want)
	}
}

// TestMasterVolumeClampsToRegisterRange verifies volume 0 silences and
// out-of-range values clamp.
func TestMasterVolumeClampsToRegisterRange(t *testing.T) {
	f := NewFilter(SID_MODEL_8580)
	f.SetDithering(false)
	f.SetEnabled(false)

	f.SetVolume(-4)
	f.Clock(8, 300000, 0, 0, 0)
	if got := f.Output(); got != 0 {
		t.Errorf("volume clamp low: output = %d, want 0", got)
	}

	f.SetVolume(99)
	f.Clock(8, 300000, 0, 0, 0)
	if got, want := f.Output(), (int32(300000)>>7)*15; got != want {
		t.Errorf("volume clamp high: output = %d, want %d", got, want)
	}
}

// TestMixerDCOffsetPerModel verifies the 6581 idles below zero and the
// 8580 at zero.
func TestMixerDCOffsetPerModel(t *testing.T) {
	old := NewFilter(SID_MODEL_6581)
	old.SetDithering(false)
	old.SetVolume(15)
	old.Clock(8, 0, 0, 0, 0)
	if got := old.Output(); got >= 0 {
		t.Errorf("6581 idle output = %d, want below zero", got)
	}

	revised := NewFilter(SID_MODEL_8580)
	revised.SetDithering(false)
	revised.SetVolume(15)
	revised.Clock(8, 0, 0, 0, 0)
	if got := revised.Output(); got != 0 {
		t.Errorf("8580 idle output = %d, want 0", got)
	}
}

// ringProfile excites the filter with one impulse and returns the peak
// bandpass magnitude over the whole run and over the final quarter.
func ringProfile(f *Filter, cycles int) (peak, tail int32) {
	f.Clock(filterMaxStep, 500000, 0, 0, 0)
	steps := cycles / filterMaxStep
	for i := 0; i < steps; i++ {
		f.Clock(filterMaxStep, 0, 0, 0, 0)
		mag := f.Vbp
		if mag < 0 {
			mag = -mag
		}
		if mag > peak {
			peak = mag
		}
		if i >= steps*3/4 && mag > tail {
			tail = mag
		}
	}
	return peak, tail
}

// TestResonanceBoostEnablesSelfOscillation verifies the boost extension
// rings far longer than the stock resonance range: after an impulse the
// boosted filter still swings above a quarter of its peak in the final
// quarter of the window, while the stock filter at maximum resonance has
// decayed below a twentieth.
func TestResonanceBoostEnablesSelfOscillation(t *testing.T) {
	const window = 12000 // chip cycles, ~12ms at 220 Hz cutoff

	boosted := NewFilter(SID_MODEL_6581)
	boosted.SetDithering(false)
	boosted.SetCutoffRegister(0)
	boosted.SetResonance(1.0)
	boosted.SetResonanceBoost(1.0)
	boosted.SetRouting(ROUTE_VOICE1)
	peak, tail := ringProfile(boosted, window)
	if peak == 0 {
		t.Fatal("boosted filter never rang at all")
	}
	if tail < peak/4 {
		t.Errorf("boosted ring decayed too fast: peak %d, tail %d", peak, tail)
	}

	stock := NewFilter(SID_MODEL_6581)
	stock.SetDithering(false)
	stock.SetCutoffRegister(0)
	stock.SetResonance(1.0)
	stock.SetRouting(ROUTE_VOICE1)
	peak, tail = ringProfile(stock, window)
	if peak == 0 {
		t.Fatal("stock filter never rang at all")
	}
	if tail >= peak/20 {
		t.Errorf("stock resonance sustained too long: peak %d, tail %d", peak, tail)
	}
}

// TestCutoffTablesMatchCalibrationPoints spot-checks the plotted tables
// at measured control points, including both sides of the 6581's
// discontinuity at register 1024.
func TestCutoffTablesMatchCalibrationPoints(t *testing.T) {
	cases := []struct {
		table *[2048]int16
		reg   int
		want  int16
	}{
		{&filterCutoff6581, 0, 220},
		{&filterCutoff6581, 768, 1600},
		{&filterCutoff6581, 1023, 6000},
		{&filterCutoff6581, 1024, 4600},
		{&filterCutoff6581, 2047, 18000},
		{&filterCutoff8580, 0, 0},
		{&filterCutoff8580, 1024, 6500},
		{&filterCutoff8580, 2047, 12500},
	}
	for _, c := range cases {
		if got := c.table[c.reg]; got != c.want {
			t.Errorf("cutoff table[%d] = %d, want %d", c.reg, got, c.want)
		}
	}
}

// TestCutoffMappingRisesAcrossRegister verifies the spline preserves the
// rising trend of the calibration data between control points (the 6581
// checked separately on each side of its discontinuity).
func TestCutoffMappingRisesAcrossRegister(t *testing.T) {
	checkRising := func(name string, table *[2048]int16, lo, hi int) {
		prev := table[lo]
		for x := lo + 64; x <= hi; x += 64 {
			if table[x] < prev {
				t.Errorf("%s: cutoff fell from %d to %d approaching register %d", name, prev, table[x], x)
			}
			prev = table[x]
		}
	}
	checkRising("6581 lower", &filterCutoff6581, 0, 960)
	checkRising("6581 upper", &filterCutoff6581, 1024, 2047)
	checkRising("8580", &filterCutoff8580, 0, 2047)
}

// TestDitherIsDeterministic verifies two filters with identical settings
// and inputs produce identical dithered output streams.
func TestDitherIsDeterministic(t *testing.T) {
	mk := func() *Filter {
		f := NewFilter(SID_MODEL_6581)
		f.SetVolume(12)
		f.SetCutoff(0.3)
		f.SetResonance(0.5)
		f.SetRouting(ROUTE_VOICE1 | ROUTE_VOICE2)
		f.SetMode(FILTER_LP)
		return f
	}
	a, b := mk(), mk()
	for i := 0; i < 500; i++ {
		in := int32(i*977) % 400000
		a.Clock(9, in, -in, in, 0)
		b.Clock(9, in, -in, in, 0)
		if a.Output() != b.Output() {
			t.Fatalf("dither diverged at sample %d: %d vs %d", i, a.Output(), b.Output())
		}
	}
}

// TestResetDrainsStateKeepsRegisters verifies Reset zeroes the voltage
// state and restarts the dither sequence without losing register values.
func TestResetDrainsStateKeepsRegisters(t *testing.T) {
	f := NewFilter(SID_MODEL_6581)
	f.SetVolume(15)
	f.SetCutoff(0.7)
	f.SetResonance(0.9)
	f.SetRouting(ROUTE_VOICE1)
	f.SetMode(FILTER_BP)
	for i := 0; i < 100; i++ {
		f.Clock(8, 300000, 0, 0, 0)
	}

	f.Reset()
	if f.Vhp != 0 || f.Vbp != 0 || f.Vlp != 0 || f.Vnf != 0 {
		t.Fatal("reset left voltage state charged")
	}

	// A freshly configured twin now produces the identical stream.
	twin := NewFilter(SID_MODEL_6581)
	twin.SetVolume(15)
	twin.SetCutoff(0.7)
	twin.SetResonance(0.9)
	twin.SetRouting(ROUTE_VOICE1)
	twin.SetMode(FILTER_BP)
	for i := 0; i < 100; i++ {
		f.Clock(8, 250000, 0, 0, 0)
		twin.Clock(8, 250000, 0, 0, 0)
		if f.Output() != twin.Output() {
			t.Fatalf("post-reset stream diverged at step %d", i)
		}
	}
}

// integrationPatch builds a filter with a hot cutoff and full routing on
// voice one, dithering off so two instances stay bit-identical.
func integrationPatch() *Filter {
	f := NewFilter(SID_MODEL_6581)
	f.SetDithering(false)
	f.SetRouting(ROUTE_VOICE1)
	f.SetMode(FILTER_LP | FILTER_BP)
	f.SetVolume(15)
	f.SetCutoff(0.9)
	f.SetResonance(1.0)
	return f
}

// TestClockSubdividesLongDeltas verifies that a long Clock call is
// sample-identical to the caller splitting it at the sub-chunk boundary,
// because deltas above eight cycles are subdivided internally.
func TestClockSubdividesLongDeltas(t *testing.T) {
	whole := integrationPatch()
	split := integrationPatch()
	odd := integrationPatch()
	oddSplit := integrationPatch()

	in := int32(400000)
	for i := 0; i < 2000; i++ {
		if i%64 == 0 {
			in = -in
		}
		whole.Clock(16, in, 0, 0, 0)
		split.Clock(8, in, 0, 0, 0)
		split.Clock(8, in, 0, 0, 0)
		if whole.Output() != split.Output() {
			t.Fatalf("sample %d: Clock(16) = %d, Clock(8)x2 = %d",
				i, whole.Output(), split.Output())
		}

		odd.Clock(11, in, 0, 0, 0)
		oddSplit.Clock(8, in, 0, 0, 0)
		oddSplit.Clock(3, in, 0, 0, 0)
		if odd.Output() != oddSplit.Output() {
			t.Fatalf("sample %d: Clock(11) = %d, Clock(8)+Clock(3) = %d",
				i, odd.Output(), oddSplit.Output())
		}
	}
}

// TestLongDeltaNeverIntegratesInOneStep pins the sub-chunk size from the
// state side: starting drained, a single integration step cannot charge
// the band-pass integrator - only a second sub-step sees the nonzero
// high-pass value the first one produced. A monolithic 16-cycle step
// would leave Vbp at zero.
func TestLongDeltaNeverIntegratesInOneStep(t *testing.T) {
	f := NewFilter(SID_MODEL_6581)
	f.SetDithering(false)
	f.SetRouting(ROUTE_VOICE1)
	f.SetCutoffRegister(2047)

	in := int32(500000)
	f.Clock(16, in, 0, 0, 0)

	vi := in >> 7
	w0dt := f.w0CeilDt * 8 >> 6
	wantVbp := -(w0dt * -vi >> 14)
	if f.Vbp != wantVbp {
		t.Errorf("Vbp after Clock(16) = %d, want %d", f.Vbp, wantVbp)
	}
	if f.Vbp == 0 {
		t.Error("band-pass integrator untouched after 16 cycles of drive")
	}
}
