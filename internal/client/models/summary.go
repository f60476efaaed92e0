package models

// SummaryResult is the outcome of a successful pipeline run. It lives only
// as long as the process and feeds the audio, download and bookmark actions.
type SummaryResult struct {
	Title     string
	Language  string
	VoiceType string
	Summary   string
}

// Article is the scraped page content.
type Article struct {
	Content  string            `json:"content"`
	Metadata ArticleMetadata   `json:"metadata"`
	Sections map[string]string `json:"sections"`
}

// ArticleMetadata describes the scraped page.
type ArticleMetadata struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Summary  string   `json:"summary"`
	Sections []string `json:"sections"`
	Language string   `json:"language"`
}

// Audio is synthesized speech as returned by the backend.
type Audio struct {
	Data        []byte
	ContentType string
}

// SavedSummary is a server-side history row or bookmark.
type SavedSummary struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"article_title"`
	Language  string `json:"language"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// VoiceOptions lists what the speech synthesizer supports.
type VoiceOptions struct {
	VoiceTypes         []string          `json:"voice_types"`
	SupportedLanguages []string          `json:"supported_languages"`
	VoiceDescriptions  map[string]string `json:"voice_descriptions"`
}
