package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Preferences are the per-user defaults kept by the backend as an opaque
// JSON string.
type Preferences struct {
	DefaultLanguage string `json:"defaultLanguage"`
	DefaultVoice    string `json:"defaultVoice"`
	DarkMode        bool   `json:"darkMode"`
}

// ParsePreferences decodes the stored preferences string. An empty string
// decodes to zero Preferences.
func ParsePreferences(raw string) (Preferences, error) {
	var p Preferences
	if strings.TrimSpace(raw) == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Preferences{}, fmt.Errorf("malformed preferences: %w", err)
	}
	return p, nil
}

// PreferencesFromForm captures the current form controls.
func PreferencesFromForm(f Form) Preferences {
	return Preferences{
		DefaultLanguage: f.Language,
		DefaultVoice:    f.VoiceType,
		DarkMode:        f.DarkMode,
	}
}

// Encode serializes the preferences into the string form stored remotely.
func (p Preferences) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ApplyTo copies the preferences into f. Empty fields leave f untouched
// and DarkMode can only switch dark mode on.
func (p Preferences) ApplyTo(f *Form) {
	if p.DefaultLanguage != "" {
		f.Language = p.DefaultLanguage
	}
	if p.DefaultVoice != "" {
		f.VoiceType = p.DefaultVoice
	}
	if p.DarkMode {
		f.DarkMode = true
	}
}
