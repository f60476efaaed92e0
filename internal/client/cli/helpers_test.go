package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/audio"
	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/config"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/gorilla/mux"
)

/*************
 * Fakes
 *************/

type fakeAuth struct {
	mu        sync.Mutex
	session   models.Session
	loginErr  error
	regErr    error
	verifyOK  bool
	pingErr   error
	logins    []string
	registers []string
	logouts   int
}

func (f *fakeAuth) Login(_ context.Context, username string, _ []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, username)
	if f.loginErr != nil {
		return false, f.loginErr
	}
	f.session = models.Session{Token: "tok-" + username, User: &models.User{Username: username}}
	return true, nil
}

func (f *fakeAuth) Register(_ context.Context, username, email string, _ []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, username+"/"+email)
	if f.regErr != nil {
		return false, f.regErr
	}
	return true, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.session = models.Session{}
}

func (f *fakeAuth) Verify(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.verifyOK {
		f.session = models.Session{}
	}
	return f.verifyOK
}

func (f *fakeAuth) Current() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeAuth) Token() string                { return f.Current().Token }
func (f *fakeAuth) IsLoggedIn() bool             { return f.Current().Valid() }
func (f *fakeAuth) ExpiresAt() (time.Time, bool) { return time.Time{}, false }
func (f *fakeAuth) Ping(context.Context) error   { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error  { return nil }

var _ services.AuthService = (*fakeAuth)(nil)

type fakePlayer struct {
	mu       sync.Mutex
	loaded   [][]byte
	state    audio.PlayerState
	loadErr  error
	stops    int
	onChange func(audio.PlayerState)
}

func (p *fakePlayer) Load(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return p.loadErr
	}
	p.loaded = append(p.loaded, data)
	return nil
}

func (p *fakePlayer) Toggle() error {
	p.mu.Lock()
	if p.state == audio.StatePlaying {
		p.state = audio.StatePaused
	} else {
		p.state = audio.StatePlaying
	}
	s := p.state
	p.mu.Unlock()
	p.onChange(s)
	return nil
}

func (p *fakePlayer) Stop() {
	p.mu.Lock()
	p.stops++
	p.state = audio.StateStopped
	p.mu.Unlock()
	p.onChange(audio.StateStopped)
}

func (p *fakePlayer) State() audio.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *fakePlayer) Close() error { return nil }

type memHistory struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func (m *memHistory) Load(context.Context) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.HistoryEntry(nil), m.entries...), nil
}

func (m *memHistory) Save(_ context.Context, entries []models.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]models.HistoryEntry(nil), entries...)
	return nil
}

type fakeRecognizer struct {
	mu        sync.Mutex
	listening bool
	starts    int
	stops     int
}

func (r *fakeRecognizer) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	r.listening = true
	return nil
}

func (r *fakeRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	r.listening = false
}

func (r *fakeRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

/*************
 * Harness
 *************/

type hit struct {
	route string
	auth  string
	body  map[string]any
}

type harness struct {
	app    *App
	auth   *fakeAuth
	player *fakePlayer
	hist   *memHistory
	out    *bytes.Buffer
	dir    string

	mu   sync.Mutex
	hits []hit
}

func (h *harness) requests() []hit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]hit(nil), h.hits...)
}

func (h *harness) routes() []string {
	var out []string
	for _, r := range h.requests() {
		out = append(out, r.route)
	}
	return out
}

func (h *harness) find(route string) (hit, bool) {
	for _, r := range h.requests() {
		if r.route == route {
			return r, true
		}
	}
	return hit{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// summarizeRoutes answers scrape and summarize successfully and accepts
// history pushes.
func summarizeRoutes(r *mux.Router) {
	r.HandleFunc("/scrape", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"content": "Go is a language."})
	}).Methods(http.MethodPost)
	r.HandleFunc("/summarize", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"summary": "Go is small."})
	}).Methods(http.MethodPost)
	r.HandleFunc("/user/history", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"message": "saved"})
	}).Methods(http.MethodPost)
}

// newHarness builds an App against a fake backend. input feeds the
// interactive prompts.
func newHarness(t *testing.T, input string, register func(r *mux.Router)) *harness {
	t.Helper()

	h := &harness{
		auth: &fakeAuth{},
		hist: &memHistory{},
		out:  &bytes.Buffer{},
		dir:  t.TempDir(),
	}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := hit{route: req.Method + " " + req.URL.Path, auth: req.Header.Get("Authorization")}
			if b, _ := io.ReadAll(req.Body); len(b) > 0 {
				_ = json.Unmarshal(b, &rec.body)
			}
			h.mu.Lock()
			h.hits = append(h.hits, rec)
			h.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	if register != nil {
		register(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = srv.URL

	logger := logging.Nop()
	api := client.NewHTTPClient(srv.URL, logger)
	hl := services.NewHistoryLog(h.hist, logger)

	toggle := &audio.Toggle{}
	h.player = &fakePlayer{onChange: toggle.Observe}

	a := &App{
		config:         cfg,
		logger:         logger,
		out:            h.out,
		reader:         bufio.NewReader(strings.NewReader(input)),
		authService:    h.auth,
		prefs:          services.NewPreferencesService(api, logger),
		history:        hl,
		sink:           audio.NewFileSink(h.dir),
		player:         h.player,
		toggle:         toggle,
		form:           cfg.Form(),
		triggerEnabled: true,
	}
	a.pipeline = services.NewPipeline(api, hl, a, logger)
	h.app = a

	t.Cleanup(a.pipeline.Wait)
	return h
}

func (h *harness) login(name string) {
	h.auth.mu.Lock()
	h.auth.session = models.Session{Token: "tok-" + name, User: &models.User{Username: name}}
	h.auth.mu.Unlock()
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })

	var mu sync.Mutex
	getPassword = func(*bufio.Reader, string, io.Writer) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return nil, io.EOF
		}
		pw := answers[0]
		answers = answers[1:]
		return []byte(pw), nil
	}
}
