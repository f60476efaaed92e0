package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/google/uuid"
)

type PlayerState int

const (
	StateStopped PlayerState = iota
	StatePlaying
	StatePaused
)

func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

var (
	ErrNoAudio       = errors.New("no audio loaded")
	ErrNoPlayer      = errors.New("no player command configured")
	errPauseNotAvail = errors.New("pausing is not supported on this platform")
)

// DefaultCommand plays a file without a window and exits at the end.
var DefaultCommand = []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}

type process interface {
	Signal(sig os.Signal) error
	Kill() error
	Wait() error
}

type execProcess struct{ cmd *exec.Cmd }

func (p execProcess) Signal(sig os.Signal) error { return p.cmd.Process.Signal(sig) }
func (p execProcess) Kill() error                { return p.cmd.Process.Kill() }
func (p execProcess) Wait() error                { return p.cmd.Wait() }

var startProcess = func(name string, args ...string) (process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return execProcess{cmd: cmd}, nil
}

// Player plays one loaded clip at a time with an external command. The
// audio file is appended to the command arguments.
type Player struct {
	command  []string
	dir      string
	logger   logging.Logger
	onChange func(PlayerState)

	mu    sync.Mutex
	state PlayerState
	file  string
	proc  process
}

// NewPlayer creates a player. An empty command selects DefaultCommand.
// onChange, if set, is called after every state change.
func NewPlayer(command []string, logger logging.Logger, onChange func(PlayerState)) *Player {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Player{
		command:  command,
		dir:      os.TempDir(),
		logger:   logger,
		onChange: onChange,
	}
}

func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load replaces the current clip with data, stopping any playback.
func (p *Player) Load(ctx context.Context, data []byte) error {
	p.Stop()

	name := filepath.Join(p.dir, "twr-"+uuid.NewString()+".mp3")
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}

	p.mu.Lock()
	old := p.file
	p.file = name
	p.mu.Unlock()

	if old != "" {
		_ = os.Remove(old)
	}
	p.logger.Debug(ctx, "audio loaded", "file", name, "bytes", len(data))
	return nil
}

// Play starts the loaded clip or resumes it when paused.
func (p *Player) Play() error {
	p.mu.Lock()

	switch p.state {
	case StatePlaying:
		p.mu.Unlock()
		return nil
	case StatePaused:
		if err := p.proc.Signal(resumeSignal()); err != nil {
			p.mu.Unlock()
			return fmt.Errorf("resume: %w", err)
		}
		p.state = StatePlaying
		p.mu.Unlock()
		p.notify(StatePlaying)
		return nil
	}

	if p.file == "" {
		p.mu.Unlock()
		return ErrNoAudio
	}
	if len(p.command) == 0 || p.command[0] == "" {
		p.mu.Unlock()
		return ErrNoPlayer
	}

	args := append(append([]string{}, p.command[1:]...), p.file)
	proc, err := startProcess(p.command[0], args...)
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("start player: %w", err)
	}
	p.proc = proc
	p.state = StatePlaying
	p.mu.Unlock()

	p.notify(StatePlaying)
	go p.wait(proc)
	return nil
}

// wait resets the state once proc ends, unless another clip took over.
func (p *Player) wait(proc process) {
	err := proc.Wait()

	p.mu.Lock()
	if p.proc != proc {
		p.mu.Unlock()
		return
	}
	p.proc = nil
	p.state = StateStopped
	p.mu.Unlock()

	if err != nil {
		p.logger.Debug(context.Background(), "player exited", "error", err)
	}
	p.notify(StateStopped)
}

// Pause suspends playback.
func (p *Player) Pause() error {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return nil
	}
	sig := pauseSignal()
	if sig == nil {
		p.mu.Unlock()
		return errPauseNotAvail
	}
	if err := p.proc.Signal(sig); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("pause: %w", err)
	}
	p.state = StatePaused
	p.mu.Unlock()

	p.notify(StatePaused)
	return nil
}

// Toggle plays when not playing and pauses otherwise.
func (p *Player) Toggle() error {
	if p.State() == StatePlaying {
		return p.Pause()
	}
	return p.Play()
}

// Stop ends playback; the loaded clip stays available.
func (p *Player) Stop() {
	p.mu.Lock()
	proc := p.proc
	p.proc = nil
	wasActive := p.state != StateStopped
	p.state = StateStopped
	p.mu.Unlock()

	if proc != nil {
		_ = proc.Kill()
	}
	if wasActive {
		p.notify(StateStopped)
	}
}

// Close stops playback and removes the transient audio file.
func (p *Player) Close() error {
	p.Stop()

	p.mu.Lock()
	file := p.file
	p.file = ""
	p.mu.Unlock()

	if file == "" {
		return nil
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (p *Player) notify(s PlayerState) {
	if p.onChange != nil {
		p.onChange(s)
	}
}
