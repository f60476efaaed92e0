package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
)

// renderHistory formats local history entries, numbered from 1.
func renderHistory(entries []models.HistoryEntry) []string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, strconv.Itoa(i+1)+". "+e.Title+" ("+e.Language+") – "+
			e.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return lines
}

// History prints the locally remembered queries.
func (a *App) History(ctx context.Context) error {
	entries := a.history.List(ctx)
	if len(entries) == 0 {
		a.println("No history yet.")
		return nil
	}
	for _, l := range renderHistory(entries) {
		a.println(l)
	}
	return nil
}

// Replay puts history entry n back into the form and submits it again.
func (a *App) Replay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: replay <n>")
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		a.println("Usage: replay <n>")
		return errUsage
	}

	e, err := a.history.Select(ctx, n-1)
	if errors.Is(err, services.ErrHistoryIndex) {
		a.println("No history entry " + args[0] + ".")
		return err
	}
	if err != nil {
		return err
	}

	a.updateForm(func(f *models.Form) {
		f.Title = e.Title
		f.Language = e.Language
	})
	return a.Submit(ctx, nil)
}

func (a *App) ClearHistory(ctx context.Context) error {
	a.history.Clear(ctx)
	a.println("History cleared.")
	return nil
}
