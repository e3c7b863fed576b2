// main.go - Interactive and scripted playback through the SIDGraph chip

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
	"time"

	sidgraph "github.com/intuitionamiga/SIDGraph"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/term"
)

func boilerPlate() {
	fmt.Println("\nSIDGraph sidplay - three voices, one filter, no mercy.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/SIDGraph")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()

	var (
		modelName   string
		sampleRate  int
		seconds     float64
		scriptPath  string
		interactive bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&modelName, "model", "6581", "Chip model: 6581 or 8580")
	flagSet.IntVar(&sampleRate, "rate", 48000, "Output sample rate in Hz")
	flagSet.Float64Var(&seconds, "seconds", 8, "Demo pattern duration")
	flagSet.StringVar(&scriptPath, "script", "", "Lua pattern script to run")
	flagSet.BoolVar(&interactive, "interactive", false, "Play the chip from the keyboard")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: sidplay [-model 6581|8580] [-rate 48000] [-script pattern.lua | -interactive | -seconds 8]")
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

	chip, err := sidgraph.NewSIDChip(sampleRate, model, sidgraph.SID_CLOCK_PAL)
	if err != nil {
		fmt.Printf("Failed to initialize chip: %v\n", err)
		os.Exit(1)
	}

	output, err := sidgraph.NewAudioOutput(sidgraph.AUDIO_BACKEND_OTO, sampleRate)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	output.SetupPlayer(chip)
	output.Start()
	defer output.Close()

	switch {
	case scriptPath != "":
		if err := runScript(chip, scriptPath); err != nil {
			fmt.Printf("Script error: %v\n", err)
			os.Exit(1)
		}
	case interactive:
		runInteractive(chip)
	default:
		runDemo(chip, seconds)
	}

	// Let the release tails ring out before tearing the player down.
	time.Sleep(300 * time.Millisecond)
}

// runDemo plays a built-in three voice arpeggio pattern.
func runDemo(chip *sidgraph.SIDChip, seconds float64) {
	chip.SetVolume(15)
	chip.SetFilterCutoff(0.4)
	chip.SetFilterResonance(0.6)
	chip.SetFilterMode(sidgraph.FILTER_LP)
	chip.SetFilterRouting(sidgraph.ROUTE_VOICE1 | sidgraph.ROUTE_VOICE2 | sidgraph.ROUTE_VOICE3)

	chip.SetVoiceWaveform(0, sidgraph.WAVE_SAWTOOTH)
	chip.SetVoiceADSR(0, 0, 9, 10, 9)
	chip.SetVoiceWaveform(1, sidgraph.WAVE_PULSE)
	chip.SetVoicePulseWidth(1, 0.25)
	chip.SetVoiceADSR(1, 1, 8, 8, 8)
	chip.SetVoiceWaveform(2, sidgraph.WAVE_TRIANGLE)
	chip.SetVoiceADSR(2, 2, 6, 12, 10)

	// A minor arpeggio with a bass voice an octave down.
	notes := []float64{220.00, 261.63, 329.63, 440.00, 329.63, 261.63}
	step := 125 * time.Millisecond
	deadline := time.Now().Add(time.Duration(seconds * float64(time.Second)))

	for i := 0; time.Now().Before(deadline); i++ {
		hz := notes[i%len(notes)]
		chip.SetVoiceFrequency(0, hz)
		chip.SetVoiceFrequency(1, hz*2)
		chip.SetVoiceFrequency(2, hz/2)
		chip.SetVoiceGate(0, true)
		chip.SetVoiceGate(1, true)
		chip.SetVoiceGate(2, true)
		time.Sleep(step * 3 / 4)
		chip.SetVoiceGate(0, false)
		chip.SetVoiceGate(1, false)
		time.Sleep(step / 4)
	}
	for v := 0; v < 3; v++ {
		chip.SetVoiceGate(v, false)
	}
}

// runScript executes a Lua pattern script against the chip. The script
// sees a small register-level API; sleep() is the only way time passes,
// audio keeps pulling in the background throughout.
func runScript(chip *sidgraph.SIDChip, path string) error {
	L := lua.NewState()
	defer L.Close()

	arg := func(n int) int { return int(L.CheckNumber(n)) }

	L.SetGlobal("set_freq", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoiceFrequency(arg(1), float64(L.CheckNumber(2)))
		return 0
	}))
	L.SetGlobal("set_wave", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoiceWaveform(arg(1), uint8(arg(2)))
		return 0
	}))
	L.SetGlobal("set_pulse", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoicePulseWidth(arg(1), float64(L.CheckNumber(2)))
		return 0
	}))
	L.SetGlobal("set_adsr", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoiceADSR(arg(1), arg(2), arg(3), arg(4), arg(5))
		return 0
	}))
	L.SetGlobal("gate", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoiceGate(arg(1), L.CheckBool(2))
		return 0
	}))
	L.SetGlobal("set_cutoff", L.NewFunction(func(L *lua.LState) int {
		chip.SetFilterCutoff(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetGlobal("set_resonance", L.NewFunction(func(L *lua.LState) int {
		chip.SetFilterResonance(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetGlobal("set_boost", L.NewFunction(func(L *lua.LState) int {
		chip.SetFilterResonanceBoost(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetGlobal("set_filter_mode", L.NewFunction(func(L *lua.LState) int {
		chip.SetFilterMode(uint8(arg(1)))
		return 0
	}))
	L.SetGlobal("set_routing", L.NewFunction(func(L *lua.LState) int {
		chip.SetFilterRouting(uint8(arg(1)))
		return 0
	}))
	L.SetGlobal("set_volume", L.NewFunction(func(L *lua.LState) int {
		chip.SetVolume(arg(1))
		return 0
	}))
	L.SetGlobal("set_voice_volume", L.NewFunction(func(L *lua.LState) int {
		chip.SetVoiceVolume(arg(1), arg(2))
		return 0
	}))
	L.SetGlobal("sleep", L.NewFunction(func(L *lua.LState) int {
		time.Sleep(time.Duration(float64(L.CheckNumber(1))) * time.Millisecond)
		return 0
	}))

	return L.DoFile(path)
}

var keyNotes = map[byte]float64{
	'z': 130.81, 's': 138.59, 'x': 146.83, 'd': 155.56, 'c': 164.81,
	'v': 174.61, 'g': 185.00, 'b': 196.00, 'h': 207.65, 'n': 220.00,
	'j': 233.08, 'm': 246.94, ',': 261.63,
}

// runInteractive puts the terminal in raw mode and plays voice 0 from
// the bottom row of the keyboard. Space releases the gate, 1/2/3/4
// select the waveform, q quits.
func runInteractive(chip *sidgraph.SIDChip) {
	fmt.Println("Keys z..m play, space releases, 1/2/3/4 pick tri/saw/pulse/noise, q quits.")

	chip.SetVolume(15)
	chip.SetVoiceWaveform(0, sidgraph.WAVE_SAWTOOTH)
	chip.SetVoiceADSR(0, 1, 8, 10, 9)
	chip.SetVoicePulseWidth(0, 0.5)
	chip.SetFilterRouting(0)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Printf("Failed to set raw mode: %v\n", err)
		return
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		switch b := buf[0]; b {
		case 'q', 3: // q or ctrl-c
			chip.SetVoiceGate(0, false)
			return
		case ' ':
			chip.SetVoiceGate(0, false)
		case '1':
			chip.SetVoiceWaveform(0, sidgraph.WAVE_TRIANGLE)
		case '2':
			chip.SetVoiceWaveform(0, sidgraph.WAVE_SAWTOOTH)
		case '3':
			chip.SetVoiceWaveform(0, sidgraph.WAVE_PULSE)
		case '4':
			chip.SetVoiceWaveform(0, sidgraph.WAVE_NOISE)
		default:
			if hz, ok := keyNotes[b]; ok {
				// Retrigger so repeated presses restart the attack.
				chip.SetVoiceGate(0, false)
				chip.SetVoiceFrequency(0, hz)
				chip.SetVoiceGate(0, true)
			}
		}
	}
}
