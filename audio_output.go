// audio_output.go - Audio backend abstraction and factory

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

const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_HEADLESS
)

// SampleSource is the pull side of the audio path. The backend's render
// goroutine calls ReadSample once per output frame; implementations must
// not block.
type SampleSource interface {
	ReadSample() float32
}

// AudioOutput is a mono float32 playback backend.
type AudioOutput interface {
	SetupPlayer(source SampleSource)
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// NewAudioOutput constructs the requested playback backend. Builds with
// the headless tag only provide AUDIO_BACKEND_HEADLESS.
func NewAudioOutput(backend, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return newOtoPlayer(sampleRate)
	case AUDIO_BACKEND_HEADLESS:
		return newHeadlessPlayer(sampleRate)
	default:
		return nil, fmt.Errorf("unknown audio backend %d", backend)
	}
}
