// sid_clock.go - Chip clock to host sample rate bridge

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

import "fmt"

// ClockBridge converts the fixed SID master clock into an integer number of
// chip cycles per host sample. The fractional cycle left over by each sample
// is carried in residue, so the cumulative cycle count handed out over N
// samples never drifts more than one cycle from the ideal
// (clockRate/sampleRate)*N.
type ClockBridge struct {
	clockRate  float64
	sampleRate float64
	ratio      float64
	residue    float64
}

// NewClockBridge creates a bridge from clockRate (Hz) down to sampleRate.
// A sample rate at or below zero is the one construction-time failure in the
// whole core; everything after construction is clamp-and-continue.
func NewClockBridge(sampleRate int, clockRate float64) (*ClockBridge, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("clock bridge: invalid sample rate %d", sampleRate)
	}
	if clockRate <= 0 {
		clockRate = SID_CLOCK_PAL
	}
	return &ClockBridge{
		clockRate:  clockRate,
		sampleRate: float64(sampleRate),
		ratio:      clockRate / float64(sampleRate),
	}, nil
}

// PerSample returns the number of whole chip cycles to run for the next
// host sample, carrying the fractional remainder forward.
func (c *ClockBridge) PerSample() int {
	c.residue += c.ratio
	whole := int(c.residue)
	c.residue -= float64(whole)
	return whole
}

// ClockRate returns the emulated chip clock in Hz.
func (c *ClockBridge) ClockRate() float64 {
	return c.clockRate
}

// SampleRate returns the host sample rate.
func (c *ClockBridge) SampleRate() int {
	return int(c.sampleRate)
}
