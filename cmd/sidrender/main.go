// main.go - Offline render of the SIDGraph chip to a WAV file

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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	sidgraph "github.com/intuitionamiga/SIDGraph"
)

func main() {
	var (
		modelName  string
		sampleRate int
		seconds    float64
		freq       float64
		waveName   string
		outPath    string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&modelName, "model", "6581", "Chip model: 6581 or 8580")
	flagSet.IntVar(&sampleRate, "rate", 48000, "Output sample rate in Hz")
	flagSet.Float64Var(&seconds, "seconds", 4, "Render duration")
	flagSet.Float64Var(&freq, "freq", 440, "Voice 1 frequency in Hz")
	flagSet.StringVar(&waveName, "wave", "saw", "Waveform: tri, saw, pulse or noise")
	flagSet.StringVar(&outPath, "o", "out.wav", "Output WAV path")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: sidrender [-model 6581|8580] [-rate 48000] [-freq 440] [-wave saw] [-seconds 4] -o out.wav")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := sidgraph.SID_MODEL_6581
	if modelName == "8580" {
		model = sidgraph.SID_MODEL_8580
	} else if modelName != "6581" {
		fmt.Printf("Error: unknown model %q\n", modelName)
		os.Exit(1)
	}

	waveforms := map[string]uint8{
		"tri":   sidgraph.WAVE_TRIANGLE,
		"saw":   sidgraph.WAVE_SAWTOOTH,
		"pulse": sidgraph.WAVE_PULSE,
		"noise": sidgraph.WAVE_NOISE,
	}
	selector, ok := waveforms[waveName]
	if !ok {
		fmt.Printf("Error: unknown waveform %q\n", waveName)
		os.Exit(1)
	}

	chip, err := sidgraph.NewSIDChip(sampleRate, model, sidgraph.SID_CLOCK_PAL)
	if err != nil {
		fmt.Printf("Failed to initialize chip: %v\n", err)
		os.Exit(1)
	}
	chip.SetVolume(15)
	chip.SetFilterRouting(0)
	chip.SetVoiceWaveform(0, selector)
	chip.SetVoiceFrequency(0, freq)
	chip.SetVoiceADSR(0, 0, 0, 15, 9)
	chip.SetVoicePulseWidth(0, 0.5)
	chip.SetVoiceGate(0, true)

	numSamples := int(seconds * float64(sampleRate))
	block := make([]float32, sidgraph.DEFAULT_BLOCK_SIZE)
	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 0, numSamples),
	}

	for rendered := 0; rendered < numSamples; {
		n := numSamples - rendered
		if n > len(block) {
			n = len(block)
		}
		// Close the gate near the end so the release tail lands inside
		// the file instead of being cut off.
		if rendered+n >= numSamples*7/8 {
			chip.SetVoiceGate(0, false)
		}
		chip.RenderBlock(block[:n])
		for _, s := range block[:n] {
			pcm.Data = append(pcm.Data, int(s*32767))
		}
		rendered += n
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("Failed to create %s: %v\n", outPath, err)
		os.Exit(1)
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	if err := enc.Write(pcm); err != nil {
		fmt.Printf("WAV write failed: %v\n", err)
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		fmt.Printf("WAV close failed: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Printf("Close failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d samples to %s\n", numSamples, outPath)
}
