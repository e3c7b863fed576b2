// sid_node.go - Host-facing node adapters for the three generators

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
Node adapters are the contract between the chip core and a host audio
graph. Each node owns one generator plus its own clock bridge, takes
parameter changes at control rate (at most once per block), and renders
one output buffer per ProcessBlock call. Gate and trigger events carry an
in-block sample offset and are applied exactly there - the envelope's
timing quirks are cycle-sensitive, so block-quantizing events would be
audible.

Everything here is single-threaded by contract: a node is owned by the
thread driving its audio callback, and Reset is only legal between block
invocations. The per-sample path never allocates; block buffers grow (if
ever) before the first sample of a block is rendered.
*/

package sidgraph

// GateEvent is a discrete line change at an exact sample offset within
// the current block. For the envelope the line is the gate; for the
// oscillator it is the test bit.
type GateEvent struct {
	Offset int
	Gate   bool
}

// applyEvents applies every event due at or before sample i, returning
// the index of the first event still pending. Events are expected in
// offset order; negative offsets count as zero.
func applyEvents(events []GateEvent, next, i int, apply func(bool)) int {
	for next < len(events) && events[next].Offset <= i {
		apply(events[next].Gate)
		next++
	}
	return next
}

func growBlock32(buf []float32, n int) []float32 {
	if n <= cap(buf) {
		return buf[:n]
	}
	return make([]float32, n)
}

func growBlockI32(buf []int32, n int) []int32 {
	if n <= cap(buf) {
		return buf[:n]
	}
	return make([]int32, n)
}

// OscillatorNode hosts one WaveformGenerator.
type OscillatorNode struct {
	wave  *WaveformGenerator
	clock *ClockBridge
	buf   []float32
}

// NewOscillatorNode constructs an oscillator node at the given host
// sample rate. A clockRate at or below zero selects the PAL chip clock.
func NewOscillatorNode(sampleRate, model int, clockRate float64) (*OscillatorNode, error) {
	bridge, err := NewClockBridge(sampleRate, clockRate)
	if err != nil {
		return nil, err
	}
	return &OscillatorNode{
		wave:  NewWaveformGenerator(model, bridge.ClockRate()),
		clock: bridge,
		buf:   make([]float32, DEFAULT_BLOCK_SIZE),
	}, nil
}

func (n *OscillatorNode) SetFrequencyHz(hz float64) { n.wave.SetFrequencyHz(hz) }
func (n *OscillatorNode) SetPulseWidth(duty float64) { n.wave.SetPulseWidth(duty) }
func (n *OscillatorNode) SetWaveform(selector uint8) { n.wave.SetWaveform(selector) }
func (n *OscillatorNode) SetModel(model int) { n.wave.SetModel(model) }

// Generator exposes the underlying waveform generator for register-level
// access (tests, OSC3-style readback).
func (n *OscillatorNode) Generator() *WaveformGenerator {
	return n.wave
}

// RawOutput returns the current 12-bit DAC value, the node-level
// equivalent of the chip's OSC3 readback register.
func (n *OscillatorNode) RawOutput() uint16 {
	return n.wave.Output()
}

// ProcessBlock renders numSamples of normalized output in [-1, 1].
// Events drive the oscillator's test bit at exact sample offsets. The
// returned buffer is owned by the node and valid until the next call.
func (n *OscillatorNode) ProcessBlock(numSamples int, events []GateEvent) []float32 {
	out := growBlock32(n.buf, numSamples)
	n.buf = out

	next := 0
	for i := 0; i < numSamples; i++ {
		next = applyEvents(events, next, i, n.wave.SetTestBit)
		n.wave.Clock(n.clock.PerSample())
		out[i] = float32(int32(n.wave.Output())-WAVE_ZERO) / 2048.0
	}
	return out
}

// EnvelopeNode hosts one EnvelopeGenerator.
type EnvelopeNode struct {
	env   *EnvelopeGenerator
	clock *ClockBridge
	buf   []float32
}

// NewEnvelopeNode constructs an envelope node at the given host sample
// rate. A clockRate at or below zero selects the PAL chip clock.
func NewEnvelopeNode(sampleRate int, clockRate float64) (*EnvelopeNode, error) {
	bridge, err := NewClockBridge(sampleRate, clockRate)
	if err != nil {
		return nil, err
	}
	return &EnvelopeNode{
		env:   NewEnvelopeGenerator(),
		clock: bridge,
		buf:   make([]float32, DEFAULT_BLOCK_SIZE),
	}, nil
}

func (n *EnvelopeNode) SetADSR(a, d, s, r int) { n.env.SetADSR(a, d, s, r) }
func (n *EnvelopeNode) SetGate(gate bool) { n.env.SetGate(gate) }

// Generator exposes the underlying envelope generator.
func (n *EnvelopeNode) Generator() *EnvelopeGenerator {
	return n.env
}

// Counter returns the raw 8-bit envelope counter, the node-level
// equivalent of the chip's ENV3 readback register.
func (n *EnvelopeNode) Counter() uint8 {
	return n.env.Output()
}

// ProcessBlock renders numSamples of normalized envelope output in
// [0, 1], applying gate events at their exact sample offsets.
func (n *EnvelopeNode) ProcessBlock(numSamples int, events []GateEvent) []float32 {
	out := growBlock32(n.buf, numSamples)
	n.buf = out

	next := 0
	for i := 0; i < numSamples; i++ {
		next = applyEvents(events, next, i, n.env.SetGate)
		n.env.Clock(n.clock.PerSample())
		out[i] = float32(n.env.Output()) / 255.0
	}
	return out
}

// VoiceNode hosts a coupled oscillator/envelope pair and renders the
// chip-scale voice samples a FilterNode consumes.
type VoiceNode struct {
	voice *Voice
	clock *ClockBridge
	buf   []int32
	fbuf  []float32
}

// NewVoiceNode constructs a voice node at the given host sample rate.
// A clockRate at or below zero selects the PAL chip clock.
func NewVoiceNode(sampleRate, model int, clockRate float64) (*VoiceNode, error) {
	bridge, err := NewClockBridge(sampleRate, clockRate)
	if err != nil {
		return nil, err
	}
	return &VoiceNode{
		voice: NewVoice(model, bridge.ClockRate()),
		clock: bridge,
		buf:   make([]int32, DEFAULT_BLOCK_SIZE),
		fbuf:  make([]float32, DEFAULT_BLOCK_SIZE),
	}, nil
}

func (n *VoiceNode) SetFrequencyHz(hz float64) { n.voice.Wave.SetFrequencyHz(hz) }
func (n *VoiceNode) SetPulseWidth(duty float64) { n.voice.Wave.SetPulseWidth(duty) }
func (n *VoiceNode) SetWaveform(selector uint8) { n.voice.Wave.SetWaveform(selector) }
func (n *VoiceNode) SetADSR(a, d, s, r int) { n.voice.Envelope.SetADSR(a, d, s, r) }
func (n *VoiceNode) SetModel(model int) { n.voice.SetModel(model) }

// Voice exposes the underlying generator pair.
func (n *VoiceNode) Voice() *Voice {
	return n.voice
}

// ProcessBlock renders numSamples of signed chip-scale voice output,
// applying gate events at their exact sample offsets. The buffer is
// suitable as a FilterNode input.
func (n *VoiceNode) ProcessBlock(numSamples int, events []GateEvent) []int32 {
	out := growBlockI32(n.buf, numSamples)
	n.buf = out

	next := 0
	for i := 0; i < numSamples; i++ {
		next = applyEvents(events, next, i, n.voice.Envelope.SetGate)
		n.voice.Clock(n.clock.PerSample())
		out[i] = n.voice.Output()
	}
	return out
}

// ProcessBlockFloat renders the same voice output normalized to roughly
// [-1, 1], for hosts that mix in float and bypass the filter stage.
func (n *VoiceNode) ProcessBlockFloat(numSamples int, events []GateEvent) []float32 {
	out := growBlock32(n.fbuf, numSamples)
	n.fbuf = out

	next := 0
	for i := 0; i < numSamples; i++ {
		next = applyEvents(events, next, i, n.voice.Envelope.SetGate)
		n.voice.Clock(n.clock.PerSample())
		out[i] = float32(n.voice.Output()) * VOICE_OUTPUT_SCALE
	}
	return out
}

// FilterNode hosts one Filter and accepts up to three voice buffers plus
// an external input per block.
type FilterNode struct {
	filter *Filter
	clock  *ClockBridge
	buf    []int32
}

// NewFilterNode constructs a filter node at the given host sample rate.
// A clockRate at or below zero selects the PAL chip clock.
func NewFilterNode(sampleRate, model int, clockRate float64) (*FilterNode, error) {
	bridge, err := NewClockBridge(sampleRate, clockRate)
	if err != nil {
		return nil, err
	}
	return &FilterNode{
		filter: NewFilter(model),
		clock:  bridge,
		buf:    make([]int32, DEFAULT_BLOCK_SIZE),
	}, nil
}

func (n *FilterNode) SetCutoff(v float64) { n.filter.SetCutoff(v) }
func (n *FilterNode) SetResonance(v float64) { n.filter.SetResonance(v) }
func (n *FilterNode) SetResonanceBoost(v float64) { n.filter.SetResonanceBoost(v) }
func (n *FilterNode) SetRouting(mask uint8) { n.filter.SetRouting(mask) }
func (n *FilterNode) SetMode(mask uint8) { n.filter.SetMode(mask) }
func (n *FilterNode) SetVolume(vol int) { n.filter.SetVolume(vol) }
func (n *FilterNode) SetVoiceVolume(voice, v int) { n.filter.SetVoiceVolume(voice, v) }
func (n *FilterNode) SetDithering(enabled bool) { n.filter.SetDithering(enabled) }
func (n *FilterNode) SetModel(model int) { n.filter.SetModel(model) }

// Filter exposes the underlying filter for register-level access.
func (n *FilterNode) Filter() *Filter {
	return n.filter
}

// ProcessBlock renders numSamples of raw chip-scale filter output from up
// to three voice buffers plus an external input. Nil inputs are silent;
// short inputs are treated as silent past their end. Hosts normalize the
// result with FILTER_OUTPUT_SCALE.
func (n *FilterNode) ProcessBlock(numSamples int, voice1, voice2, voice3, extIn []int32) []int32 {
	out := growBlockI32(n.buf, numSamples)
	n.buf = out

	for i := 0; i < numSamples; i++ {
		n.filter.Clock(n.clock.PerSample(),
			sampleAt(voice1, i), sampleAt(voice2, i), sampleAt(voice3, i), sampleAt(extIn, i))
		out[i] = n.filter.Output()
	}
	return out
}

func sampleAt(buf []int32, i int) int32 {
	if i < len(buf) {
		return buf[i]
	}
	return 0
}
