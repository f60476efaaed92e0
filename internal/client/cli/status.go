package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/services"
	"github.com/dmitrijs2005/wikireader/internal/client/voice"
)

// Voice starts a single speech capture; the transcript becomes the title.
func (a *App) Voice(ctx context.Context) error {
	if a.recognizer == nil {
		a.println(voice.UnsupportedLabel)
		return nil
	}
	return a.recognizer.Start(ctx)
}

// StopVoice aborts an active capture. It is a no-op otherwise.
func (a *App) StopVoice(_ context.Context) error {
	if a.recognizer != nil && a.recognizer.Listening() {
		a.recognizer.Stop()
	}
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session().User.DisplayName() + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Status prints the session, connectivity and control states.
func (a *App) Status(_ context.Context) error {
	if a.isLoggedIn() {
		line := "Logged in as " + a.session().User.DisplayName()
		if exp, ok := a.authService.ExpiresAt(); ok {
			line += ", session expires " + exp.Local().Format(time.RFC1123)
		}
		a.println(line)
	} else {
		a.println("Not logged in")
	}

	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	a.printf("Server:  %s (%s)\n", a.config.ServerURL, mode)
	a.println("Request: " + a.requestStatus())
	if a.pipeline.Current() != nil {
		a.printf("Audio:   [%s]\n", a.toggle.Label())
	}

	a.mu.Lock()
	vs := a.voiceStatus
	a.mu.Unlock()
	switch {
	case a.recognizer == nil:
		a.printf("Voice:   %s\n", voice.UnsupportedLabel)
	case vs != "":
		a.printf("Voice:   %s\n", vs)
	default:
		a.println("Voice:   ready")
	}
	return nil
}

// requestStatus describes the pipeline together with the trigger and
// loading indicator it drives.
func (a *App) requestStatus() string {
	a.mu.Lock()
	enabled, loading := a.triggerEnabled, a.loading
	a.mu.Unlock()

	line := a.pipeline.State().String()
	var flags []string
	if !enabled {
		flags = append(flags, "trigger disabled")
	}
	if loading {
		flags = append(flags, "loading")
	}
	if len(flags) > 0 {
		line += " (" + strings.Join(flags, ", ") + ")"
	}
	if o := a.pipeline.Outcome(); o != services.StateIdle {
		line += ", last run " + o.String()
	}
	return line
}
