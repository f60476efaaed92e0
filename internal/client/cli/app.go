package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/wikireader/internal/client/audio"
	"github.com/dmitrijs2005/wikireader/internal/client/client"
	"github.com/dmitrijs2005/wikireader/internal/client/config"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/history"
	"github.com/dmitrijs2005/wikireader/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wikireader/internal/client/services"
	"github.com/dmitrijs2005/wikireader/internal/client/voice"
	"github.com/dmitrijs2005/wikireader/internal/cryptox"
	"github.com/dmitrijs2005/wikireader/internal/filex"
	"github.com/dmitrijs2005/wikireader/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// audioPlayer is the part of audio.Player the commands drive.
type audioPlayer interface {
	Load(ctx context.Context, data []byte) error
	Toggle() error
	Stop()
	State() audio.PlayerState
	Close() error
}

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader

	authService services.AuthService
	prefs       services.PreferencesService
	history     *services.HistoryLog
	pipeline    *services.Pipeline
	sink        services.AudioSink
	player      audioPlayer
	toggle      *audio.Toggle
	recognizer  voice.Recognizer

	mu             sync.Mutex
	form           models.Form
	audioFor       *models.SummaryResult
	voiceStatus    string
	triggerEnabled bool
	loading        bool

	modeMu sync.RWMutex
	mode   Mode

	db *sql.DB
}

// NewApp wires the device key, the local vault, the API client and the
// services behind the interactive commands.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	secret, err := cryptox.LoadOrCreateSecret(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("device key: %w", err)
	}
	sealer, err := cryptox.NewSealer(secret)
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureDir(filepath.Dir(cfg.DBPath)); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.DBPath, "error", err)
		return nil, err
	}

	sink, err := newSink(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(cfg.ServerURL, logger)
	hl := services.NewHistoryLog(history.NewMetadataRepository(metadata.NewSQLStore(db)), logger)

	a := &App{
		config:         cfg,
		logger:         logger,
		out:            os.Stdout,
		reader:         bufio.NewReader(os.Stdin),
		authService:    services.NewAuthService(api, db, sealer, logger),
		prefs:          services.NewPreferencesService(api, logger),
		history:        hl,
		sink:           sink,
		toggle:         &audio.Toggle{},
		form:           cfg.Form(),
		triggerEnabled: true,
		db:             db,
	}
	a.player = audio.NewPlayer(cfg.PlayerArgs(), logger, a.toggle.Observe)
	a.pipeline = services.NewPipeline(api, hl, a, logger)

	if r, ok := voice.New(voice.Options{Command: cfg.SpeechArgs(), Locale: cfg.SpeechLocale}, voice.Handlers{
		OnResult: a.setTitle,
		OnStatus: a.setVoiceStatus,
	}); ok {
		a.recognizer = r
	}

	return a, nil
}

// newSink stores downloads in S3 when a bucket is configured and in the
// download directory otherwise.
func newSink(ctx context.Context, cfg *config.Config) (services.AudioSink, error) {
	if cfg.S3Bucket == "" {
		return audio.NewFileSink(cfg.DownloadDir), nil
	}
	return audio.NewS3Sink(ctx, audio.S3Options{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		Prefix:       cfg.S3Prefix,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
}

// Close stops playback and background work and releases the vault.
func (a *App) Close(ctx context.Context) {
	if a.recognizer != nil {
		a.recognizer.Stop()
	}
	if a.pipeline != nil {
		a.pipeline.Wait()
	}
	if a.player != nil {
		if err := a.player.Close(); err != nil {
			a.logger.Warn(ctx, "failed to close player", "error", err)
		}
	}
	if a.authService != nil {
		_ = a.authService.Close(ctx)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "failed to close database", "error", err)
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// alert is the blocking notice of the browser client; here a marked line.
func (a *App) alert(msg string) {
	a.println("[!] " + msg)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsLoggedIn()
}

func (a *App) session() models.Session {
	return a.authService.Current()
}

func (a *App) formSnapshot() models.Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

func (a *App) updateForm(fn func(f *models.Form)) {
	a.mu.Lock()
	fn(&a.form)
	a.mu.Unlock()
}

func (a *App) setTitle(title string) {
	a.updateForm(func(f *models.Form) { f.Title = title })
}

func (a *App) setVoiceStatus(text string, _ bool) {
	a.mu.Lock()
	a.voiceStatus = text
	a.mu.Unlock()
	if text != "" {
		a.println(text)
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and keeps Mode current.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
