package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Settings shows the values that are stored as preferences.
func (a *App) Settings(_ context.Context) error {
	f := a.formSnapshot()
	a.printf("Default language: %s\n", f.Language)
	a.printf("Default voice:    %s\n", f.VoiceType)
	a.printf("Dark mode:        %s\n", onOff(f.DarkMode))
	a.println("Change with 'set language', 'set voice', 'dark on|off'; store with 'save'.")
	return nil
}

func (a *App) Dark(_ context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: dark on|off")
		return errUsage
	}
	var on bool
	switch strings.ToLower(args[0]) {
	case "on":
		on = true
	case "off":
	default:
		a.println("Usage: dark on|off")
		return errUsage
	}
	a.updateForm(func(f *models.Form) { f.DarkMode = on })
	return nil
}

// SaveSettings stores the current language, voice and dark mode on the
// server.
func (a *App) SaveSettings(ctx context.Context) error {
	err := a.prefs.Save(ctx, a.session(), a.formSnapshot())
	switch {
	case err == nil:
		a.alert("Settings saved!")
		return nil
	case errors.Is(err, services.ErrAuthRequired):
		a.alert(services.LoginRequiredMessage)
	default:
		a.alert("Failed to save settings: " + client.Message(err))
	}
	a.ensureLogin(ctx, err)
	return err
}
