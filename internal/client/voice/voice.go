// Package voice captures a spoken article title through an external
// speech-to-text command. The command must print the recognized text on
// stdout and exit; the first non-empty line is taken as the transcript.
package voice

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

const (
	DefaultLocale = "en-US"

	// UnsupportedLabel explains why the voice control is disabled.
	UnsupportedLabel = "Speech recognition not supported on this system"

	// LocalePlaceholder in command arguments is replaced by the locale.
	LocalePlaceholder = "{locale}"

	StatusListening = "Listening…"
)

// errNoSpeech mirrors the recognizer error reported when nothing was heard.
var errNoSpeech = errors.New("no-speech")

var (
	lookPath   = exec.LookPath
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}
)

// Recognizer performs single-shot recognition.
type Recognizer interface {
	// Start begins listening. Calling it while already listening is a no-op.
	Start(ctx context.Context) error
	// Stop aborts an active capture without reporting an error.
	Stop()
	Listening() bool
}

// Handlers receive recognition events. Both may be called from a
// background goroutine.
type Handlers struct {
	// OnResult receives the trimmed transcript.
	OnResult func(transcript string)
	// OnStatus receives the status line and whether capture is active.
	// An empty text clears the status.
	OnStatus func(text string, active bool)
}

type Options struct {
	// Command is the program followed by its arguments.
	Command []string
	Locale  string
}

// New returns a recognizer when the configured command is available. The
// second result is false when speech capture is unsupported.
func New(opts Options, h Handlers) (Recognizer, bool) {
	if len(opts.Command) == 0 || opts.Command[0] == "" {
		return nil, false
	}
	path, err := lookPath(opts.Command[0])
	if err != nil {
		return nil, false
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}

	args := make([]string, 0, len(opts.Command)-1)
	for _, a := range opts.Command[1:] {
		args = append(args, strings.ReplaceAll(a, LocalePlaceholder, opts.Locale))
	}

	return &commandRecognizer{path: path, args: args, h: h}, true
}

type commandRecognizer struct {
	path string
	args []string
	h    Handlers

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
	stopped   bool
	wg        sync.WaitGroup
}

func (r *commandRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

func (r *commandRecognizer) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	r.listening = true
	r.stopped = false
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	r.status(StatusListening, true)

	go r.capture(ctx, cancel)
	return nil
}

func (r *commandRecognizer) capture(ctx context.Context, cancel context.CancelFunc) {
	defer r.wg.Done()
	defer cancel()

	out, err := runCommand(ctx, r.path, r.args...)

	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()

	switch {
	case stopped:
	case err != nil:
		r.status(fmt.Sprintf("Voice error: %v", err), false)
	default:
		transcript := firstLine(out)
		if transcript == "" {
			r.status(fmt.Sprintf("Voice error: %v", errNoSpeech), false)
			break
		}
		if r.h.OnResult != nil {
			r.h.OnResult(transcript)
		}
		r.status(fmt.Sprintf("Heard: %q", transcript), false)
	}

	r.mu.Lock()
	r.listening = false
	r.cancel = nil
	r.mu.Unlock()

	r.status("", false)
}

func (r *commandRecognizer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	if r.listening {
		r.stopped = true
	}
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// wait blocks until the running capture, if any, has finished.
func (r *commandRecognizer) wait() {
	r.wg.Wait()
}

func (r *commandRecognizer) status(text string, active bool) {
	if r.h.OnStatus != nil {
		r.h.OnStatus(text, active)
	}
}

func firstLine(out []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
