package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
)

// fakeClient implements client.Client for service unit tests. Results are
// preset through fields; arguments are recorded for assertions.
type fakeClient struct {
	mu sync.Mutex

	CloseErr error
	PingErr  error

	LoginRet models.Session
	LoginErr error

	RegisterErr error

	PrefsRet    string
	PrefsErr    error
	PutPrefsErr error

	ScrapeRet *models.Article
	ScrapeErr error
	// ScrapeHook runs inside Scrape, e.g. to panic or to block.
	ScrapeHook func()

	SummarizeRet string
	SummarizeErr error

	TTSRet *models.Audio
	TTSErr error

	VoicesRet *models.VoiceOptions
	VoicesErr error

	SaveHistoryErr error
	ListHistoryRet []models.SavedSummary
	ListHistoryErr error

	AddBookmarkErr    error
	ListBookmarksRet  []models.SavedSummary
	ListBookmarksErr  error
	DeleteBookmarkErr error

	// recorded
	Calls             []string
	LastToken         string
	LastLoginUser     string
	LastLoginPassword string
	LastRegisterEmail string
	LastPutPrefs      string
	LastScrape        client.ScrapeRequest
	LastSummarize     client.SummarizeRequest
	LastTTS           client.TTSRequest
	LastSaved         client.SavedItem
	LastBookmark      client.SavedItem
	LastDeletedID     int64
}

func (f *fakeClient) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
	if token != "" {
		f.LastToken = token
	}
}

func (f *fakeClient) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *fakeClient) Close() error { f.record("Close", ""); return f.CloseErr }

func (f *fakeClient) Ping(ctx context.Context) error { f.record("Ping", ""); return f.PingErr }

func (f *fakeClient) Login(ctx context.Context, username, password string) (models.Session, error) {
	f.record("Login", "")
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	f.record("Register", "")
	f.LastRegisterEmail = email
	return f.RegisterErr
}

func (f *fakeClient) GetPreferences(ctx context.Context, token string) (string, error) {
	f.record("GetPreferences", token)
	return f.PrefsRet, f.PrefsErr
}

func (f *fakeClient) PutPreferences(ctx context.Context, token string, preferences string) error {
	f.record("PutPreferences", token)
	f.LastPutPrefs = preferences
	return f.PutPrefsErr
}

func (f *fakeClient) Scrape(ctx context.Context, token string, req client.ScrapeRequest) (*models.Article, error) {
	f.record("Scrape", token)
	f.LastScrape = req
	if f.ScrapeHook != nil {
		f.ScrapeHook()
	}
	return f.ScrapeRet, f.ScrapeErr
}

func (f *fakeClient) Summarize(ctx context.Context, token string, req client.SummarizeRequest) (string, error) {
	f.record("Summarize", token)
	f.LastSummarize = req
	return f.SummarizeRet, f.SummarizeErr
}

func (f *fakeClient) TTS(ctx context.Context, token string, req client.TTSRequest) (*models.Audio, error) {
	f.record("TTS", token)
	f.LastTTS = req
	return f.TTSRet, f.TTSErr
}

func (f *fakeClient) Voices(ctx context.Context) (*models.VoiceOptions, error) {
	f.record("Voices", "")
	return f.VoicesRet, f.VoicesErr
}

func (f *fakeClient) SaveHistory(ctx context.Context, token string, item client.SavedItem) error {
	f.record("SaveHistory", token)
	f.mu.Lock()
	f.LastSaved = item
	f.mu.Unlock()
	return f.SaveHistoryErr
}

func (f *fakeClient) ListHistory(ctx context.Context, token string) ([]models.SavedSummary, error) {
	f.record("ListHistory", token)
	return f.ListHistoryRet, f.ListHistoryErr
}

func (f *fakeClient) AddBookmark(ctx context.Context, token string, item client.SavedItem) error {
	f.record("AddBookmark", token)
	f.LastBookmark = item
	return f.AddBookmarkErr
}

func (f *fakeClient) ListBookmarks(ctx context.Context, token string) ([]models.SavedSummary, error) {
	f.record("ListBookmarks", token)
	return f.ListBookmarksRet, f.ListBookmarksErr
}

func (f *fakeClient) DeleteBookmark(ctx context.Context, token string, id int64) error {
	f.record("DeleteBookmark", token)
	f.LastDeletedID = id
	return f.DeleteBookmarkErr
}

var _ client.Client = (*fakeClient)(nil)
