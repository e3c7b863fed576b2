// audio_backend_headless.go - Silent audio output for tests and CI

package sidgraph

// HeadlessPlayer satisfies AudioOutput without touching any audio
// device. Offline renders and CI runs use it.
type HeadlessPlayer struct {
	started bool
	source  SampleSource
}

func newHeadlessPlayer(sampleRate int) (AudioOutput, error) {
	return &HeadlessPlayer{}, nil
}

func (hp *HeadlessPlayer) SetupPlayer(source SampleSource) {
	hp.source = source
}

func (hp *HeadlessPlayer) Start() {
	hp.started = true
}

func (hp *HeadlessPlayer) Stop() {
	hp.started = false
}

func (hp *HeadlessPlayer) Close() {
	hp.started = false
}

func (hp *HeadlessPlayer) IsStarted() bool {
	return hp.started
}
