// sid_chip.go - Full chip assembly: three voices through one filter

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
SIDChip wires three voices and the filter to a single clock bridge so
every component sees the same chip-cycle stream. It implements
SampleSource, so an AudioOutput backend can pull from it directly; the
pull path renders in DEFAULT_BLOCK_SIZE chunks and serves samples out of
the chunk. Parameter setters take a mutex because the audio backend
pulls from its own goroutine.
*/

package sidgraph

import "sync"

const CHIP_VOICES = 3

type SIDChip struct {
	voices [CHIP_VOICES]*Voice
	filter *Filter
	clock  *ClockBridge

	block    []float32
	blockPos int
	mutex    sync.Mutex
}

// NewSIDChip constructs a full chip at the given host sample rate. A
// clockRate at or below zero selects the PAL chip clock.
func NewSIDChip(sampleRate, model int, clockRate float64) (*SIDChip, error) {
	bridge, err := NewClockBridge(sampleRate, clockRate)
	if err != nil {
		return nil, err
	}
	chip := &SIDChip{
		filter: NewFilter(model),
		clock:  bridge,
		block:  make([]float32, DEFAULT_BLOCK_SIZE),
	}
	for i := range chip.voices {
		chip.voices[i] = NewVoice(model, bridge.ClockRate())
	}
	chip.blockPos = len(chip.block)
	return chip, nil
}

func (chip *SIDChip) SampleRate() int {
	return chip.clock.SampleRate()
}

// Voice returns the requested voice, or voice 0 for an out-of-range
// index.
func (chip *SIDChip) Voice(voice int) *Voice {
	if voice < 0 || voice >= CHIP_VOICES {
		voice = 0
	}
	return chip.voices[voice]
}

func (chip *SIDChip) Filter() *Filter {
	return chip.filter
}

func (chip *SIDChip) SetModel(model int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	for _, v := range chip.voices {
		v.SetModel(model)
	}
	chip.filter.SetModel(model)
}

func (chip *SIDChip) SetVoiceFrequency(voice int, hz float64) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.Voice(voice).Wave.SetFrequencyHz(hz)
}

func (chip *SIDChip) SetVoicePulseWidth(voice int, duty float64) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.Voice(voice).Wave.SetPulseWidth(duty)
}

func (chip *SIDChip) SetVoiceWaveform(voice int, selector uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.Voice(voice).Wave.SetWaveform(selector)
}

func (chip *SIDChip) SetVoiceADSR(voice, a, d, s, r int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.Voice(voice).Envelope.SetADSR(a, d, s, r)
}

func (chip *SIDChip) SetVoiceGate(voice int, gate bool) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.Voice(voice).Envelope.SetGate(gate)
}

func (chip *SIDChip) SetVoiceVolume(voice, volume int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetVoiceVolume(voice, volume)
}

func (chip *SIDChip) SetFilterCutoff(v float64) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetCutoff(v)
}

func (chip *SIDChip) SetFilterResonance(v float64) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetResonance(v)
}

func (chip *SIDChip) SetFilterResonanceBoost(v float64) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetResonanceBoost(v)
}

func (chip *SIDChip) SetFilterRouting(mask uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetRouting(mask)
}

func (chip *SIDChip) SetFilterMode(mask uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetMode(mask)
}

func (chip *SIDChip) SetFilterEnabled(enabled bool) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetEnabled(enabled)
}

func (chip *SIDChip) SetVolume(vol int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetVolume(vol)
}

func (chip *SIDChip) SetDithering(enabled bool) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.filter.SetDithering(enabled)
}

// Clock advances the whole chip by delta cycles and returns the raw
// filter output for that step.
func (chip *SIDChip) Clock(delta int) int32 {
	for _, v := range chip.voices {
		v.Clock(delta)
	}
	chip.filter.Clock(delta,
		chip.voices[0].Output(), chip.voices[1].Output(), chip.voices[2].Output(), 0)
	return chip.filter.Output()
}

// RenderBlock fills out with normalized samples.
func (chip *SIDChip) RenderBlock(out []float32) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	for i := range out {
		out[i] = float32(chip.Clock(chip.clock.PerSample())) * FILTER_OUTPUT_SCALE
	}
}

// ReadSample serves the audio backend's pull path one sample at a time,
// rendering a fresh block whenever the current one runs out.
func (chip *SIDChip) ReadSample() float32 {
	if chip.blockPos >= len(chip.block) {
		chip.RenderBlock(chip.block)
		chip.blockPos = 0
	}
	s := chip.block[chip.blockPos]
	chip.blockPos++
	return s
}

// Reset restores run-time state on every component, keeping all
// programmed registers.
func (chip *SIDChip) Reset() {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	for _, v := range chip.voices {
		v.Reset()
	}
	chip.filter.Reset()
	chip.clock.Reset()
	chip.blockPos = len(chip.block)
}
