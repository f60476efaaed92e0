package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/common"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/dmitrijs2005/wikireader/internal/netx"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the backend at baseURL.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	newID      func() string
}

func NewHTTPClient(baseURL string, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
		newID:      uuid.NewString,
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type preferencesBody struct {
	Preferences string `json:"preferences"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.Session, error) {

	req := map[string]string{"username": username, "password": password}

	var resp loginResponse
	if err := c.call(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return models.Session{}, err
	}

	if resp.Token == "" {
		return models.Session{}, ErrBadResponse
	}

	user := resp.User
	if user == nil {
		user = &models.User{Username: username}
	}

	return models.Session{Token: resp.Token, User: user}, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	req := map[string]string{"username": username, "email": email, "password": password}
	return c.call(ctx, http.MethodPost, "/register", "", req, nil)
}

func (c *HTTPClient) GetPreferences(ctx context.Context, token string) (string, error) {
	var resp struct {
		Preferences *string `json:"preferences"`
	}
	if err := c.call(ctx, http.MethodGet, "/user/preferences", token, nil, &resp); err != nil {
		return "", err
	}
	if resp.Preferences == nil {
		return "", nil
	}
	return *resp.Preferences, nil
}

func (c *HTTPClient) PutPreferences(ctx context.Context, token string, preferences string) error {
	return c.call(ctx, http.MethodPut, "/user/preferences", token, preferencesBody{Preferences: preferences}, nil)
}

func (c *HTTPClient) Scrape(ctx context.Context, token string, req ScrapeRequest) (*models.Article, error) {
	var article models.Article
	if err := c.call(ctx, http.MethodPost, "/scrape", token, req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, token string, req SummarizeRequest) (string, error) {
	var resp summarizeResponse
	if err := c.call(ctx, http.MethodPost, "/summarize", token, req, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// TTS returns the raw audio bytes; the body is not JSON on success.
func (c *HTTPClient) TTS(ctx context.Context, token string, req TTSRequest) (*models.Audio, error) {

	httpResp, err := c.do(ctx, http.MethodPost, "/tts", token, req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &models.Audio{Data: data, ContentType: httpResp.Header.Get("Content-Type")}, nil
}

func (c *HTTPClient) Voices(ctx context.Context) (*models.VoiceOptions, error) {
	var opts models.VoiceOptions
	if err := c.call(ctx, http.MethodGet, "/tts/voices", "", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (c *HTTPClient) SaveHistory(ctx context.Context, token string, item SavedItem) error {
	return c.call(ctx, http.MethodPost, "/user/history", token, item, nil)
}

func (c *HTTPClient) ListHistory(ctx context.Context, token string) ([]models.SavedSummary, error) {
	var items []models.SavedSummary
	if err := c.call(ctx, http.MethodGet, "/user/history", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) AddBookmark(ctx context.Context, token string, item SavedItem) error {
	return c.call(ctx, http.MethodPost, "/user/bookmarks", token, item, nil)
}

func (c *HTTPClient) ListBookmarks(ctx context.Context, token string) ([]models.SavedSummary, error) {
	var items []models.SavedSummary
	if err := c.call(ctx, http.MethodGet, "/user/bookmarks", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) DeleteBookmark(ctx context.Context, token string, id int64) error {
	req := map[string]int64{"id": id}
	return c.call(ctx, http.MethodDelete, "/user/bookmarks", token, req, nil)
}

// call performs a request and decodes a JSON reply into out when out is
// non-nil.
func (c *HTTPClient) call(ctx context.Context, method, path, token string, in, out any) error {

	resp, err := c.do(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBadResponse, method, path, err)
	}

	return nil
}

// do sends the request and returns the response only for 2xx statuses.
// The caller owns the body.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in any) (*http.Response, error) {

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	requestID := c.newID()
	ctx = logging.WithRequestID(ctx, requestID)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := readAPIError(resp)
		c.logger.Warn(ctx, "api request failed",
			"method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return resp, nil
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if netx.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.logger.Error(ctx, "unexpected transport error", "error", err)
	return fmt.Errorf("request failed: %w", err)
}

// readAPIError extracts the server message from {"error": ...} or
// {"message": ...}, falling back to the status text.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

var _ Client = (*HTTPClient)(nil)
