// Package remote reads scenarios from another projector service over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/storage"
)

// ErrReadOnly is returned by Save: a remote store is only read.
var ErrReadOnly = errors.New("remote scenario store is read-only")

// Options configure a remote Repository.
type Options struct {
	BaseURL      string
	HTTPClient   *http.Client
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *slog.Logger
}

// Repository is a read-only storage.ScenarioRepository backed by the
// /scenarios endpoints of a projector service.
type Repository struct {
	baseURL string
	client  *retryablehttp.Client
	logger  *slog.Logger
}

var _ storage.ScenarioRepository = (*Repository)(nil)

// New creates a remote repository.
func New(opts Options) (*Repository, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid remote base URL %q", opts.BaseURL)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RetryWaitMin == 0 {
		opts.RetryWaitMin = 200 * time.Millisecond
	}
	if opts.RetryWaitMax == 0 {
		opts.RetryWaitMax = 2 * time.Second
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = opts.HTTPClient
	client.RetryMax = opts.MaxRetries
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.Logger = &retryLogger{logger: opts.Logger}

	return &Repository{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		logger:  opts.Logger,
	}, nil
}

func (r *Repository) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	var sc domain.Scenario
	if err := r.get(ctx, "/scenarios/"+url.PathEscape(id), &sc); err != nil {
		if errors.Is(err, storage.ErrScenarioNotFound) {
			return nil, errors.Wrapf(err, "id %s", id)
		}
		return nil, err
	}
	return &sc, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.ScenarioRef, error) {
	var refs []domain.ScenarioRef
	if err := r.get(ctx, "/scenarios", &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *Repository) Save(context.Context, *domain.Scenario) (string, error) {
	return "", ErrReadOnly
}

func (r *Repository) get(ctx context.Context, path string, result any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "remote request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	r.logger.Debug("remote scenario store response", "path", path, "status", resp.StatusCode, "duration", time.Since(start), "size", len(body))

	if resp.StatusCode != http.StatusOK {
		return handleHTTPError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}

// handleHTTPError maps status codes to errors
func handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &errResp)

	switch {
	case statusCode == http.StatusNotFound:
		return storage.ErrScenarioNotFound
	case errResp.Message != "":
		return fmt.Errorf("remote error %d: %s", statusCode, errResp.Message)
	default:
		return fmt.Errorf("remote error %d", statusCode)
	}
}

// retryLogger adapts slog to retryablehttp
type retryLogger struct {
	logger *slog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
