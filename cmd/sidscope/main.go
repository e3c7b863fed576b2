// main.go - Ebiten oscilloscope view of the SIDGraph chip output

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
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	sidgraph "github.com/intuitionamiga/SIDGraph"
)

const (
	SCOPE_WIDTH  = 640
	SCOPE_HEIGHT = 480
)

// scopeTee sits between the chip and the audio backend, mirroring every
// sample it passes through into a ring the draw loop reads.
type scopeTee struct {
	chip  *sidgraph.SIDChip
	ring  []float32
	pos   int
	mutex sync.Mutex
}

func newScopeTee(chip *sidgraph.SIDChip) *scopeTee {
	return &scopeTee{
		chip: chip,
		ring: make([]float32, SCOPE_WIDTH*4),
	}
}

func (t *scopeTee) ReadSample() float32 {
	s := t.chip.ReadSample()
	t.mutex.Lock()
	t.ring[t.pos] = s
	t.pos = (t.pos + 1) % len(t.ring)
	t.mutex.Unlock()
	return s
}

// snapshot copies the most recent SCOPE_WIDTH samples into out.
func (t *scopeTee) snapshot(out []float32) {
	t.mutex.Lock()
	start := t.pos - len(out)
	if start < 0 {
		start += len(t.ring)
	}
	for i := range out {
		out[i] = t.ring[(start+i)%len(t.ring)]
	}
	t.mutex.Unlock()
}

type scopeGame struct {
	chip        *sidgraph.SIDChip
	tee         *scopeTee
	frameBuffer []byte
	window      *ebiten.Image
	trace       []float32
	cutoff      float64
}

func (g *scopeGame) Update() error {
	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.chip.SetVoiceWaveform(0, sidgraph.WAVE_TRIANGLE)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.chip.SetVoiceWaveform(0, sidgraph.WAVE_SAWTOOTH)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.chip.SetVoiceWaveform(0, sidgraph.WAVE_PULSE)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key4) {
		g.chip.SetVoiceWaveform(0, sidgraph.WAVE_NOISE)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) && g.cutoff < 1 {
		g.cutoff += 0.01
		g.chip.SetFilterCutoff(g.cutoff)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) && g.cutoff > 0 {
		g.cutoff -= 0.01
		g.chip.SetFilterCutoff(g.cutoff)
	}
	return nil
}

func (g *scopeGame) Draw(screen *ebiten.Image) {
	if g.window == nil {
		g.window = ebiten.NewImage(SCOPE_WIDTH, SCOPE_HEIGHT)
	}

	for i := range g.frameBuffer {
		g.frameBuffer[i] = 0
	}
	// Phosphor-green trace, one column per sample, joined vertically so
	// steep edges stay visible.
	g.tee.snapshot(g.trace)
	prevY := sampleToY(g.trace[0])
	for x := 0; x < SCOPE_WIDTH; x++ {
		y := sampleToY(g.trace[x])
		y0, y1 := prevY, y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for py := y0; py <= y1; py++ {
			off := (py*SCOPE_WIDTH + x) * 4
			g.frameBuffer[off] = 0x20
			g.frameBuffer[off+1] = 0xff
			g.frameBuffer[off+2] = 0x40
			g.frameBuffer[off+3] = 0xff
		}
		prevY = y
	}

	g.window.WritePixels(g.frameBuffer)
	screen.DrawImage(g.window, nil)
}

func (g *scopeGame) Layout(_, _ int) (int, int) {
	return SCOPE_WIDTH, SCOPE_HEIGHT
}

func sampleToY(s float32) int {
	y := int(float32(SCOPE_HEIGHT/2) - s*float32(SCOPE_HEIGHT/2-10))
	if y < 0 {
		y = 0
	}
	if y >= SCOPE_HEIGHT {
		y = SCOPE_HEIGHT - 1
	}
	return y
}

func main() {
	var (
		modelName  string
		sampleRate int
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&modelName, "model", "6581", "Chip model: 6581 or 8580")
	flagSet.IntVar(&sampleRate, "rate", 48000, "Output sample rate in Hz")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: sidscope [-model 6581|8580] [-rate 48000]")
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
	}

	chip, err := sidgraph.NewSIDChip(sampleRate, model, sidgraph.SID_CLOCK_PAL)
	if err != nil {
		fmt.Printf("Failed to initialize chip: %v\n", err)
		os.Exit(1)
	}
	chip.SetVolume(15)
	chip.SetFilterCutoff(0.5)
	chip.SetFilterResonance(0.4)
	chip.SetFilterMode(sidgraph.FILTER_LP)
	chip.SetFilterRouting(sidgraph.ROUTE_VOICE1)
	chip.SetVoiceWaveform(0, sidgraph.WAVE_SAWTOOTH)
	chip.SetVoiceADSR(0, 1, 8, 12, 9)
	chip.SetVoicePulseWidth(0, 0.5)

	tee := newScopeTee(chip)
	output, err := sidgraph.NewAudioOutput(sidgraph.AUDIO_BACKEND_OTO, sampleRate)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	output.SetupPlayer(tee)
	output.Start()
	defer output.Close()

	// Background pattern so the scope always has something to show.
	go func() {
		notes := []float64{220.00, 261.63, 329.63, 440.00}
		for i := 0; ; i++ {
			chip.SetVoiceFrequency(0, notes[i%len(notes)])
			chip.SetVoiceGate(0, true)
			time.Sleep(350 * time.Millisecond)
			chip.SetVoiceGate(0, false)
			time.Sleep(150 * time.Millisecond)
		}
	}()

	game := &scopeGame{
		chip:        chip,
		tee:         tee,
		frameBuffer: make([]byte, SCOPE_WIDTH*SCOPE_HEIGHT*4),
		trace:       make([]float32, SCOPE_WIDTH),
		cutoff:      0.5,
	}

	ebiten.SetWindowSize(SCOPE_WIDTH, SCOPE_HEIGHT)
	ebiten.SetWindowTitle("SIDGraph Scope (c) 2024 - 2026 Zayn Otley")
	ebiten.SetVsyncEnabled(true)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		fmt.Printf("Ebiten error: %v\n", err)
		os.Exit(1)
	}
}
