package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
)

const noResultMessage = "Generate a summary first."

// failed reports err of an action. Login-related errors lead to the login
// prompt, everything else is shown with prefix as an alert or, when panel
// is set, in the error panel.
func (a *App) failed(ctx context.Context, err error, prefix string, panel bool) error {
	a.logger.Warn(ctx, "action failed", "action", strings.TrimSuffix(prefix, ": "), "error", err)

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		a.ensureLogin(ctx, err)
		return err
	case errors.Is(err, services.ErrNoResult):
		a.alert(noResultMessage)
		return err
	}

	msg := prefix + client.Message(err)
	if panel {
		a.ShowError(msg)
	} else {
		a.alert(msg)
	}
	a.ensureLogin(ctx, err)
	return err
}

// Submit runs the summarization pipeline for the form. Arguments replace
// the title.
func (a *App) Submit(ctx context.Context, args []string) error {
	if len(args) > 0 {
		a.setTitle(strings.Join(args, " "))
	}
	f := a.formSnapshot()
	if strings.TrimSpace(f.Title) == "" {
		a.println("Please enter an article title.")
		return errUsage
	}

	_, err := a.pipeline.Submit(ctx, a.session(), f)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrBusy):
		a.alert("A summary is already being generated.")
	case services.IsAuthError(err):
		a.ensureLogin(ctx, err)
	}
	return err
}

// Play generates speech for the current summary on first use and then
// toggles between playing and paused.
func (a *App) Play(ctx context.Context) error {
	current := a.pipeline.Current()
	if current == nil {
		a.alert(noResultMessage)
		return services.ErrNoResult
	}

	a.mu.Lock()
	loaded := a.audioFor == current
	a.mu.Unlock()

	if !loaded {
		if !a.toggle.Enabled() {
			return nil
		}
		a.toggle.Generating()
		a.printf("[%s]\n", a.toggle.Label())

		speech, err := a.pipeline.Synthesize(ctx, a.session(), current)
		if err != nil {
			a.toggle.Ready()
			return a.failed(ctx, err, "TTS Error: ", true)
		}
		err = a.player.Load(ctx, speech.Data)
		a.toggle.Ready()
		if err != nil {
			a.logger.Warn(ctx, "failed to load audio", "error", err)
			a.ShowError("TTS Error: " + err.Error())
			return err
		}

		a.mu.Lock()
		a.audioFor = current
		a.mu.Unlock()
	}

	if err := a.player.Toggle(); err != nil {
		a.ShowError("TTS Error: " + err.Error())
		return err
	}
	a.printf("[%s]\n", a.toggle.Label())
	return nil
}

// StopAudio ends playback; the next play starts from the beginning.
func (a *App) StopAudio(_ context.Context) error {
	a.player.Stop()
	a.printf("[%s]\n", a.toggle.Label())
	return nil
}

// Download stores the current summary's audio through the sink.
func (a *App) Download(ctx context.Context) error {
	location, err := a.pipeline.Download(ctx, a.session(), nil, a.sink)
	if err != nil {
		return a.failed(ctx, err, "Download failed: ", false)
	}
	a.alert("Audio saved to " + location)
	return nil
}

func (a *App) Bookmark(ctx context.Context) error {
	if err := a.pipeline.Bookmark(ctx, a.session(), nil); err != nil {
		return a.failed(ctx, err, "Bookmark failed: ", false)
	}
	a.alert("Article bookmarked successfully!")
	return nil
}

func (a *App) Bookmarks(ctx context.Context) error {
	items, err := a.pipeline.Bookmarks(ctx, a.session())
	if err != nil {
		return a.failed(ctx, err, "Could not load bookmarks: ", false)
	}
	a.printSaved(items, "No bookmarks yet.")
	return nil
}

// Unbookmark deletes the bookmark with the id shown by Bookmarks.
func (a *App) Unbookmark(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: unbookmark <id>")
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.println("Usage: unbookmark <id>")
		return errUsage
	}

	if err := a.pipeline.DeleteBookmark(ctx, a.session(), id); err != nil {
		return a.failed(ctx, err, "Could not remove bookmark: ", false)
	}
	a.println("Bookmark removed.")
	return nil
}

// RemoteHistory lists the summaries saved on the server.
func (a *App) RemoteHistory(ctx context.Context) error {
	items, err := a.pipeline.RemoteHistory(ctx, a.session())
	if err != nil {
		return a.failed(ctx, err, "Could not load history: ", false)
	}
	a.printSaved(items, "No saved summaries yet.")
	return nil
}

func (a *App) printSaved(items []models.SavedSummary, empty string) {
	if len(items) == 0 {
		a.println(empty)
		return
	}
	for _, it := range items {
		a.printf("[%d] %s (%s) – %s\n", it.ID, it.Title, it.Language, it.CreatedAt)
	}
}

// Voices lists the voice types and languages the synthesizer supports.
func (a *App) Voices(ctx context.Context) error {
	opts, err := a.pipeline.Voices(ctx)
	if err != nil {
		return a.failed(ctx, err, "Could not load voices: ", false)
	}

	a.println("Voices:")
	for _, v := range opts.VoiceTypes {
		if d := opts.VoiceDescriptions[v]; d != "" {
			a.printf("  %-10s %s\n", v, d)
		} else {
			a.printf("  %s\n", v)
		}
	}
	a.println("Languages: " + strings.Join(opts.SupportedLanguages, ", "))
	return nil
}
