package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/filex"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"golang.org/x/sync/errgroup"
)

// State of the summarization pipeline.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// LoginRequiredMessage is shown when a gated action runs without a session.
const LoginRequiredMessage = "Please login to access this feature."

// Presenter renders pipeline progress. Calls arrive on the goroutine that
// invoked Submit.
type Presenter interface {
	SetTriggerEnabled(enabled bool)
	SetLoading(loading bool)
	ClearResult()
	ShowSummary(result models.SummaryResult)
	ShowError(message string)
	// RequireLogin tells the user message and asks for credentials.
	RequireLogin(message string)
}

// AudioSink stores downloaded audio under name and returns where it went.
type AudioSink interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}

// Pipeline runs the scrape → summarize workflow and the actions that
// operate on its result.
type Pipeline struct {
	client    client.Client
	history   *HistoryLog
	presenter Presenter
	logger    logging.Logger

	mu      sync.Mutex
	state   State
	outcome State
	current *models.SummaryResult

	background errgroup.Group
}

func NewPipeline(c client.Client, h *HistoryLog, p Presenter, logger logging.Logger) *Pipeline {
	return &Pipeline{client: c, history: h, presenter: p, logger: logger}
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the last successful result, or nil.
// Outcome is StateSuccess or StateFailed for the last finished run and
// StateIdle before the first one.
func (p *Pipeline) Outcome() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}

func (p *Pipeline) Current() *models.SummaryResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSubmitting {
		return ErrBusy
	}
	p.state = StateSubmitting
	return nil
}

// finish records the outcome of a run and returns the pipeline to idle.
func (p *Pipeline) finish(outcome State, result *models.SummaryResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateIdle
	p.outcome = outcome
	if result != nil {
		p.current = result
	}
}

// Submit scrapes form.Title and summarizes it. The first failing step
// aborts the run and its message is rendered in the error panel. The
// trigger is re-enabled and the loading indicator hidden on every exit,
// including a panic.
func (p *Pipeline) Submit(ctx context.Context, session models.Session, form models.Form) (result *models.SummaryResult, err error) {

	if session.Token == "" {
		p.presenter.RequireLogin(LoginRequiredMessage)
		return nil, ErrAuthRequired
	}

	if err := p.begin(); err != nil {
		return nil, err
	}

	p.presenter.SetTriggerEnabled(false)
	p.presenter.SetLoading(true)
	p.presenter.ClearResult()

	defer func() {
		r := recover()

		p.presenter.SetLoading(false)
		p.presenter.SetTriggerEnabled(true)

		switch {
		case r != nil:
			p.finish(StateFailed, nil)
			panic(r)
		case err != nil:
			p.presenter.ShowError(client.Message(err))
			p.finish(StateFailed, nil)
		default:
			p.presenter.ShowSummary(*result)
			p.finish(StateSuccess, result)
		}
	}()

	article, err := p.client.Scrape(ctx, session.Token, client.ScrapeRequest{
		Title:     form.Title,
		Language:  form.Language,
		Section:   form.Section,
		MaxLength: form.MaxLength,
	})
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}

	summary, err := p.client.Summarize(ctx, session.Token, client.SummarizeRequest{
		Content:       article.Content,
		Language:      form.Language,
		SummaryLength: form.SummaryLength,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	result = &models.SummaryResult{
		Title:     form.Title,
		Language:  form.Language,
		VoiceType: form.VoiceType,
		Summary:   summary,
	}

	p.history.Record(ctx, form.Title, form.Language)
	p.pushHistory(ctx, session.Token, *result)

	return result, nil
}

// pushHistory saves the result remotely without blocking the caller.
func (p *Pipeline) pushHistory(ctx context.Context, token string, r models.SummaryResult) {
	ctx = context.WithoutCancel(ctx)
	p.background.Go(func() error {
		item := client.SavedItem{Title: r.Title, Language: r.Language, Summary: r.Summary}
		if err := p.client.SaveHistory(ctx, token, item); err != nil {
			p.logger.Warn(ctx, "failed to save remote history", "title", r.Title, "error", err)
		}
		return nil
	})
}

// Wait blocks until background history pushes have finished.
func (p *Pipeline) Wait() {
	_ = p.background.Wait()
}

func (p *Pipeline) guard(session models.Session, message string) error {
	if session.Token == "" {
		p.presenter.RequireLogin(message)
		return ErrAuthRequired
	}
	return nil
}

func ttsRequest(r *models.SummaryResult, download bool) client.TTSRequest {
	voice := r.VoiceType
	if voice == "" {
		voice = models.DefaultVoice
	}
	return client.TTSRequest{Text: r.Summary, Language: r.Language, VoiceType: voice, Download: download}
}

// Synthesize turns result into speech. A nil result means the current one.
func (p *Pipeline) Synthesize(ctx context.Context, session models.Session, result *models.SummaryResult) (*models.Audio, error) {
	if err := p.guard(session, LoginRequiredMessage); err != nil {
		return nil, err
	}
	if result == nil {
		result = p.Current()
	}
	if result == nil {
		return nil, ErrNoResult
	}

	audio, err := p.client.TTS(ctx, session.Token, ttsRequest(result, false))
	if err != nil {
		return nil, fmt.Errorf("tts: %w", err)
	}
	return audio, nil
}

// DownloadName is the file name a result's audio is stored under.
func DownloadName(r models.SummaryResult) string {
	return filex.SafeFileName(r.Title) + "_summary.mp3"
}

// Download synthesizes result as an attachment and hands it to sink.
func (p *Pipeline) Download(ctx context.Context, session models.Session, result *models.SummaryResult, sink AudioSink) (string, error) {
	if err := p.guard(session, LoginRequiredMessage); err != nil {
		return "", err
	}
	if result == nil {
		result = p.Current()
	}
	if result == nil {
		return "", ErrNoResult
	}

	audio, err := p.client.TTS(ctx, session.Token, ttsRequest(result, true))
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	location, err := sink.Store(ctx, DownloadName(*result), audio.Data)
	if err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}
	return location, nil
}

// Bookmark saves result to the user's bookmarks.
func (p *Pipeline) Bookmark(ctx context.Context, session models.Session, result *models.SummaryResult) error {
	if err := p.guard(session, "Please login to bookmark articles"); err != nil {
		return err
	}
	if result == nil {
		result = p.Current()
	}
	if result == nil {
		return ErrNoResult
	}

	item := client.SavedItem{Title: result.Title, Language: result.Language, Summary: result.Summary}
	if err := p.client.AddBookmark(ctx, session.Token, item); err != nil {
		return fmt.Errorf("bookmark: %w", err)
	}
	return nil
}

// RemoteHistory lists the summaries saved on the server, newest first.
func (p *Pipeline) RemoteHistory(ctx context.Context, session models.Session) ([]models.SavedSummary, error) {
	if err := p.guard(session, LoginRequiredMessage); err != nil {
		return nil, err
	}
	return p.client.ListHistory(ctx, session.Token)
}

func (p *Pipeline) Bookmarks(ctx context.Context, session models.Session) ([]models.SavedSummary, error) {
	if err := p.guard(session, LoginRequiredMessage); err != nil {
		return nil, err
	}
	return p.client.ListBookmarks(ctx, session.Token)
}

func (p *Pipeline) DeleteBookmark(ctx context.Context, session models.Session, id int64) error {
	if err := p.guard(session, LoginRequiredMessage); err != nil {
		return err
	}
	return p.client.DeleteBookmark(ctx, session.Token, id)
}

// Voices needs no session.
func (p *Pipeline) Voices(ctx context.Context) (*models.VoiceOptions, error) {
	return p.client.Voices(ctx)
}

// IsAuthError reports whether err means the user has to log in (again).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired) || errors.Is(err, client.ErrUnauthorized)
}
