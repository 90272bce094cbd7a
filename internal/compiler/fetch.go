package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/golangsnmp/mibprofile"
)

// ErrNotFound is returned by Fetch when no source holds the module.
var ErrNotFound = errors.New("MIB source not found")

// DefaultRepository is the remote MIB repository URL template. @mib@ is
// replaced by the module name.
const DefaultRepository = "https://raw.githubusercontent.com/projx/snmp-mibs/master/@mib@"

const maxSourceSize = 16 << 20

// Fetcher retrieves MIB source text, first from a local source, then from a
// remote repository.
type Fetcher struct {
	local      mibprofile.Source
	repository string
	client     *retryablehttp.Client
	logger     *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLocal sets the local source searched before the repository.
func WithLocal(src mibprofile.Source) FetcherOption {
	return func(f *Fetcher) { f.local = src }
}

// WithRepository sets the repository URL template. An empty template
// disables remote fetching.
func WithRepository(template string) FetcherOption {
	return func(f *Fetcher) { f.repository = template }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.client.HTTPClient.Timeout = d }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) FetcherOption {
	return func(f *Fetcher) { f.client.RetryMax = n }
}

// WithFetchLogger sets the logger for fetch and retry output.
func WithFetchLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher returns a Fetcher using DefaultRepository unless configured
// otherwise.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	client.HTTPClient.Timeout = 30 * time.Second

	f := &Fetcher{repository: DefaultRepository, client: client}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger != nil {
		client.Logger = f.logger
	}
	return f
}

// Fetch returns the source text of module.
func (f *Fetcher) Fetch(ctx context.Context, module string) ([]byte, error) {
	if f.local != nil {
		r, path, err := f.local.Find(module)
		if err == nil {
			defer func() { _ = r.Close() }()
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			f.logFetched(ctx, module, path)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if f.repository == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, module)
	}
	return f.fetchRemote(ctx, module)
}

func (f *Fetcher) fetchRemote(ctx context.Context, module string) ([]byte, error) {
	target := strings.ReplaceAll(f.repository, "@mib@", url.PathEscape(module))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", module, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, module, target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", module, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", module, err)
	}
	f.logFetched(ctx, module, target)
	return data, nil
}

func (f *Fetcher) logFetched(ctx context.Context, module, from string) {
	if f.logger != nil && f.logger.Enabled(ctx, slog.LevelDebug) {
		f.logger.LogAttrs(ctx, slog.LevelDebug, "fetched MIB source",
			slog.String("module", module),
			slog.String("from", from))
	}
}
