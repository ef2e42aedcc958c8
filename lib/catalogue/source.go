// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"filippo.io/age"
)

// Fetcher retrieves raw catalogue document bytes. Implementations
// unwrap any compression or encryption, so Fetch returns JSON (or
// JSONC) ready for [Parse].
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)

	// Describe returns the provenance label shown in the status line
	// and written into prompt exports.
	Describe() string
}

// FileFetcher reads a catalogue from the local filesystem.
type FileFetcher struct {
	Path string

	// Identities decrypt ".age" files. Unused for plain files.
	Identities []age.Identity
}

// Fetch reads and unwraps the file. The context is checked before the
// read; local reads are not interruptible.
func (fetcher *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fetcher.Path)
	if err != nil {
		return nil, err
	}
	return Unwrap(fetcher.Path, data, fetcher.Identities)
}

func (fetcher *FileFetcher) Describe() string {
	return fetcher.Path
}

// maxRemoteCatalogueSize bounds how much of an HTTP response body is
// read.
const maxRemoteCatalogueSize = 16 << 20

// HTTPFetcher retrieves a catalogue with an HTTP GET. The URL path's
// extensions select unwrapping the same way file names do.
type HTTPFetcher struct {
	URL string

	// Client defaults to http.DefaultClient. Timeouts come from the
	// context passed to Fetch.
	Client *http.Client

	Identities []age.Identity
}

func (fetcher *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	parsed, err := url.Parse(fetcher.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing catalogue URL: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	client := fetcher.Client
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", fetcher.URL, response.Status)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxRemoteCatalogueSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fetcher.URL, err)
	}
	if len(data) > maxRemoteCatalogueSize {
		return nil, fmt.Errorf("GET %s: response exceeds %d bytes", fetcher.URL, maxRemoteCatalogueSize)
	}
	return Unwrap(parsed.Path, data, fetcher.Identities)
}

func (fetcher *HTTPFetcher) Describe() string {
	return fetcher.URL
}

// NewFetcher returns an HTTPFetcher for http and https URLs and a
// FileFetcher for anything else.
func NewFetcher(location string, identities []age.Identity) Fetcher {
	if parsed, err := url.Parse(location); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return &HTTPFetcher{URL: location, Identities: identities}
	}
	return &FileFetcher{Path: location, Identities: identities}
}

// Load fetches and parses a catalogue, returning it with the digest of
// the fetched bytes.
func Load(ctx context.Context, fetcher Fetcher) (*Catalogue, Digest, error) {
	data, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, Digest{}, fmt.Errorf("loading %s: %w", fetcher.Describe(), err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return nil, Digest{}, fmt.Errorf("loading %s: %w", fetcher.Describe(), err)
	}
	return parsed, DigestOf(data), nil
}

// LoadResult is the outcome of [LoadOrFallback].
type LoadResult struct {
	Catalogue *Catalogue

	// Source is the provenance label: the fetcher's description, or
	// [FallbackSource] when the fallback was substituted.
	Source string

	// Digest identifies the loaded bytes. For the fallback it is the
	// digest of the embedded document.
	Digest Digest

	// Notice is the load failure when the fallback was substituted, nil
	// otherwise. Callers show it to the user; it is not fatal.
	Notice error
}

// FellBack reports whether the fallback catalogue was substituted.
func (result LoadResult) FellBack() bool {
	return result.Notice != nil
}

// LoadOrFallback loads the catalogue from fetcher, substituting the
// built-in [Fallback] when fetching or validation fails. A nil fetcher
// selects the fallback without a notice. It never returns a nil
// catalogue.
func LoadOrFallback(ctx context.Context, fetcher Fetcher, logger *slog.Logger) LoadResult {
	if fetcher == nil {
		return LoadResult{
			Catalogue: Fallback(),
			Source:    FallbackSource,
			Digest:    DigestOf(fallbackDocument),
		}
	}

	loaded, digest, err := Load(ctx, fetcher)
	if err != nil {
		logger.Warn("catalogue load failed, using built-in catalogue",
			"source", fetcher.Describe(),
			"error", err,
		)
		return LoadResult{
			Catalogue: Fallback(),
			Source:    FallbackSource,
			Digest:    DigestOf(fallbackDocument),
			Notice:    err,
		}
	}

	logger.Info("catalogue loaded",
		"source", fetcher.Describe(),
		"categories", loaded.Len(),
		"tasks", loaded.TaskCount(),
		"digest", digest.Short(),
	)
	return LoadResult{
		Catalogue: loaded,
		Source:    fetcher.Describe(),
		Digest:    digest,
	}
}
