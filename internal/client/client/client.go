package client

import (
	"context"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
)

// Client is the contract of the summarization backend. Protected calls
// take the session token explicitly; the client itself holds no session.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Login(ctx context.Context, username, password string) (models.Session, error)
	Register(ctx context.Context, username, email, password string) error

	GetPreferences(ctx context.Context, token string) (string, error)
	PutPreferences(ctx context.Context, token string, preferences string) error

	Scrape(ctx context.Context, token string, req ScrapeRequest) (*models.Article, error)
	Summarize(ctx context.Context, token string, req SummarizeRequest) (string, error)
	TTS(ctx context.Context, token string, req TTSRequest) (*models.Audio, error)
	Voices(ctx context.Context) (*models.VoiceOptions, error)

	SaveHistory(ctx context.Context, token string, item SavedItem) error
	ListHistory(ctx context.Context, token string) ([]models.SavedSummary, error)

	AddBookmark(ctx context.Context, token string, item SavedItem) error
	ListBookmarks(ctx context.Context, token string) ([]models.SavedSummary, error)
	DeleteBookmark(ctx context.Context, token string, id int64) error
}

type ScrapeRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	// Section limits the content to one article section; empty means all.
	Section string `json:"section,omitempty"`
	// MaxLength caps the content size; zero leaves the server default.
	MaxLength int `json:"max_length,omitempty"`
}

type SummarizeRequest struct {
	Content       string `json:"content"`
	Language      string `json:"language"`
	SummaryLength string `json:"summary_length"`
}

type TTSRequest struct {
	Text      string `json:"text"`
	Language  string `json:"language"`
	VoiceType string `json:"voice_type"`
	Download  bool   `json:"download,omitempty"`
}

// SavedItem is the payload of history and bookmark writes.
type SavedItem struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Summary  string `json:"summary"`
}
