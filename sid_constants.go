// sid_constants.go - MOS 6581/8580 chip models, clocks and control constants

package sidgraph

// SID chip models. The 6581 is the original die with the non-linear filter
// curve and a small mixer DC offset; the 8580 revision responds more linearly
// and sits at zero DC.
const (
	SID_MODEL_6581 = 0
	SID_MODEL_8580 = 1
)

// SID master clock frequencies in Hz. PAL is the default for every node.
const (
	SID_CLOCK_PAL  = 985248.0
	SID_CLOCK_NTSC = 1022727.0
)

// Waveform selector bits. Two or more of triangle/sawtooth/pulse selected
// together switch the oscillator onto the combined-waveform tables.
const (
	WAVE_TRIANGLE = 0x1
	WAVE_SAWTOOTH = 0x2
	WAVE_PULSE    = 0x4
	WAVE_NOISE    = 0x8
)

// Filter output-mix bits.
const (
	FILTER_LP = 0x1
	FILTER_BP = 0x2
	FILTER_HP = 0x4
)

// Filter routing bits. Bits 0-2 select voice inputs 1-3, bit 3 the
// external input.
const (
	ROUTE_VOICE1 = 0x1
	ROUTE_VOICE2 = 0x2
	ROUTE_VOICE3 = 0x4
	ROUTE_EXTIN  = 0x8
)

const (
	// Noise shift register load value after reset or test-bit release.
	NOISE_LFSR_RESET = 0x7ffff8
	// 23-bit shift register mask.
	NOISE_LFSR_MASK = 0x7fffff
)

const (
	// Oscillator output is 12-bit unsigned centred on 0x800.
	WAVE_ZERO = 0x800
	// Envelope counter full scale.
	ENV_MAX = 0xff
)

// Frequency setter clamp range in Hz.
const (
	MIN_FREQ_HZ = 0.1
	MAX_FREQ_HZ = 20000.0
)

// Per-voice volume full scale (unity gain).
const VOICE_VOL_UNITY = 256

// FILTER_OUTPUT_SCALE is the fixed normalization a host applies to the
// filter's chip-scale output to reach [-1, 1].
const FILTER_OUTPUT_SCALE = 1.0 / 32768.0

// VOICE_OUTPUT_SCALE normalizes a raw voice sample (12-bit wave offset
// by the wave midpoint, scaled by the 8-bit envelope) to [-1, 1].
const VOICE_OUTPUT_SCALE = 1.0 / (2048.0 * 255.0)

// DEFAULT_BLOCK_SIZE is the block capacity nodes preallocate at
// construction. Larger host blocks grow the buffer once, outside the
// per-sample path.
const DEFAULT_BLOCK_SIZE = 4096
