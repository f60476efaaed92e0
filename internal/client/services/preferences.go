package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/logging"
)

// PreferencesService syncs per-user defaults with the backend. Both
// operations require a session.
type PreferencesService interface {
	Load(ctx context.Context, session models.Session) (models.Preferences, error)
	Save(ctx context.Context, session models.Session, form models.Form) error
}

type preferencesService struct {
	client client.Client
	logger logging.Logger
}

func NewPreferencesService(c client.Client, logger logging.Logger) PreferencesService {
	return &preferencesService{client: c, logger: logger}
}

// Load fetches and decodes the stored preferences. An absent or empty
// value yields zero Preferences.
func (s *preferencesService) Load(ctx context.Context, session models.Session) (models.Preferences, error) {
	if session.Token == "" {
		return models.Preferences{}, ErrAuthRequired
	}

	raw, err := s.client.GetPreferences(ctx, session.Token)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	prefs, err := models.ParsePreferences(raw)
	if err != nil {
		s.logger.Warn(ctx, "ignoring malformed preferences", "error", err)
		return models.Preferences{}, err
	}
	return prefs, nil
}

// Save stores the language, voice and dark mode of form. Failures are
// logged and returned.
func (s *preferencesService) Save(ctx context.Context, session models.Session, form models.Form) error {
	if session.Token == "" {
		return ErrAuthRequired
	}

	raw, err := models.PreferencesFromForm(form).Encode()
	if err != nil {
		return err
	}

	if err := s.client.PutPreferences(ctx, session.Token, raw); err != nil {
		s.logger.Error(ctx, "failed to save preferences", "error", err)
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
