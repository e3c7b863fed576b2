//go:build headless

// audio_backend_stub.go - Headless builds map the oto backend to silence

package sidgraph

func newOtoPlayer(sampleRate int) (AudioOutput, error) {
	return newHeadlessPlayer(sampleRate)
}
