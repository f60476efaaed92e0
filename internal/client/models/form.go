package models

// Summary lengths accepted by the summarization step.
const (
	SummaryShort  = "short"
	SummaryMedium = "medium"
	SummaryLong   = "long"
)

// DefaultVoice is sent when no voice type was chosen.
const DefaultVoice = "default"

// Form is the user input that drives the summarization workflow, the
// terminal counterpart of the article form and settings controls.
type Form struct {
	Title         string
	Language      string
	SummaryLength string
	VoiceType     string
	DarkMode      bool

	// Section and MaxLength narrow the scraped content; zero values leave
	// the server defaults.
	Section   string
	MaxLength int
}
