// sid_wave_tables.go - Combined-waveform lookup tables

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
Combined waveforms are looked up, never computed per sample. Each table is
4096 entries of 8-bit samples, indexed by the 12-bit sawtooth output (ST,
PS, PST) or by the triangle output right-shifted once (PT), and shifted
left four bits on readout. That is the exact access pattern of the sampled
reference tables.

The table contents are synthesized once at init from the bit-interaction
model of the output DAC: a combined selection shorts the waveform bits
together (the AND term) and a zero bit pulls its neighbours down through
the shared bit lines. The 6581 pulls harder than the 8580, which is why the
8580 combinations sound cleaner. Golden tests pin the generated values, so
replacing them with chip-sampled dumps is a data-only change.
*/

package sidgraph

var (
	wave6581ST  [4096]uint8
	wave6581PT  [4096]uint8
	wave6581PS  [4096]uint8
	wave6581PST [4096]uint8

	wave8580ST  [4096]uint8
	wave8580PT  [4096]uint8
	wave8580PS  [4096]uint8
	wave8580PST [4096]uint8
)

// pullDown6581 models the aggressive neighbour-bit loading of the original
// die: a bit survives only if both neighbours are set too.
func pullDown6581(v uint16) uint16 {
	return v & (v << 1) & (v >> 1) & 0xfff
}

// pullDown8580 models the milder loading of the revised die: a bit
// survives if either neighbour backs it up.
func pullDown8580(v uint16) uint16 {
	return v & ((v << 1) | (v >> 1)) & 0xfff
}

// triangleForSaw reconstructs the triangle output at the accumulator value
// that produced the given 12-bit sawtooth sample.
func triangleForSaw(saw uint16) uint16 {
	acc := uint32(saw) << 12
	if acc&0x800000 != 0 {
		return uint16(((^acc) >> 11) & 0xffe)
	}
	return uint16((acc >> 11) & 0xffe)
}

func buildWaveTables(pull func(uint16) uint16, st, pt, ps, pst *[4096]uint8) {
	for i := 0; i < 4096; i++ {
		saw := uint16(i)
		tri := triangleForSaw(saw)

		// Sawtooth+triangle: both waveform DACs drive the output.
		st[i] = uint8(pull(saw&tri) >> 4)

		// Pulse+triangle is indexed by the triangle output >> 1; the pulse
		// comparator gates the result at readout, so the table itself holds
		// the degraded triangle. Only even triangle values occur.
		pt[i] = uint8(pull(uint16(i<<1)&0xffe) >> 4)

		// Pulse+sawtooth: the degraded sawtooth, gated by pulse at readout.
		ps[i] = uint8(pull(saw) >> 4)

		// All three: the saw/tri short circuit, gated by pulse at readout.
		pst[i] = uint8(pull(pull(saw&tri)) >> 4)
	}
}

func init() {
	buildWaveTables(pullDown6581, &wave6581ST, &wave6581PT, &wave6581PS, &wave6581PST)
	buildWaveTables(pullDown8580, &wave8580ST, &wave8580PT, &wave8580PS, &wave8580PST)
}
