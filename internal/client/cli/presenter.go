package cli

import (
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
)

var _ services.Presenter = (*App)(nil)

func (a *App) SetTriggerEnabled(enabled bool) {
	a.mu.Lock()
	a.triggerEnabled = enabled
	a.mu.Unlock()
}

func (a *App) SetLoading(loading bool) {
	a.mu.Lock()
	a.loading = loading
	a.mu.Unlock()
	if loading {
		a.println("Processing...")
	}
}

// ClearResult forgets the audio generated for the previous result.
func (a *App) ClearResult() {
	a.mu.Lock()
	a.audioFor = nil
	a.mu.Unlock()
	if a.player != nil {
		a.player.Stop()
	}
}

func (a *App) ShowSummary(r models.SummaryResult) {
	a.println()
	a.printf("=== %s (%s) ===\n", r.Title, r.Language)
	a.println(r.Summary)
	a.println()
	a.println("Next: play, download, bookmark")
}

// ShowError renders the error panel.
func (a *App) ShowError(message string) {
	a.println("Error: " + message)
}

func (a *App) RequireLogin(message string) {
	a.alert(message)
}
