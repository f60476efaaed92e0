package audio

import "sync"

// Labels shown on the play/pause control.
const (
	LabelPlay       = "Play Audio"
	LabelPause      = "Pause"
	LabelGenerating = "Generating..."
)

// Toggle tracks the play/pause control. While audio is being generated the
// control is disabled.
type Toggle struct {
	mu         sync.Mutex
	generating bool
	playing    bool
}

func (t *Toggle) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.generating:
		return LabelGenerating
	case t.playing:
		return LabelPause
	default:
		return LabelPlay
	}
}

func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.generating
}

// Generating marks the start of synthesis.
func (t *Toggle) Generating() {
	t.mu.Lock()
	t.generating = true
	t.playing = false
	t.mu.Unlock()
}

// Ready ends synthesis, successful or not.
func (t *Toggle) Ready() {
	t.mu.Lock()
	t.generating = false
	t.mu.Unlock()
}

// Observe follows the player state.
func (t *Toggle) Observe(s PlayerState) {
	t.mu.Lock()
	t.playing = s == StatePlaying
	t.mu.Unlock()
}
