// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/url"

	"filippo.io/age"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/config"
	"github.com/bureau-foundation/playbook/lib/exporter"
)

// sourceParams are the flags every catalogue-reading command shares.
// They override the configuration file.
type sourceParams struct {
	Config    string `json:"config"    flag:"config"    desc:"configuration file (default: $PLAYBOOK_CONFIG, else built-in defaults)"`
	Catalogue string `json:"catalogue" flag:"catalogue" desc:"catalogue file or http(s) URL, overriding the configuration"`
	Identity  string `json:"identity"  flag:"identity"  desc:"age identity file for encrypted catalogues"`
}

// resolve loads the configuration and applies the flag overrides.
func (params *sourceParams) resolve() (*config.Config, error) {
	cfg, err := config.Resolve(params.Config)
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err).
			WithHint("Pass --config <file> or set " + config.EnvironmentVariable + " to a readable YAML file.")
	}

	if params.Catalogue != "" {
		if isRemote(params.Catalogue) {
			cfg.Catalogue.URL, cfg.Catalogue.Path = params.Catalogue, ""
		} else {
			cfg.Catalogue.Path, cfg.Catalogue.URL = params.Catalogue, ""
		}
	}
	if params.Identity != "" {
		cfg.Catalogue.IdentityFile = params.Identity
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

func isRemote(location string) bool {
	parsed, err := url.Parse(location)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

// fetcherFor returns the fetcher for the configured catalogue, or nil
// when none is configured and the built-in catalogue applies.
func fetcherFor(cfg *config.Config) (catalogue.Fetcher, error) {
	location := cfg.CatalogueLocation()
	if location == "" {
		return nil, nil
	}

	var identities []age.Identity
	if cfg.Catalogue.IdentityFile != "" {
		var err error
		identities, err = catalogue.ReadIdentities(cfg.Catalogue.IdentityFile)
		if err != nil {
			return nil, cli.Validation("%w", err).
				WithHint("Generate an identity with age-keygen, or point --identity at an existing one.")
		}
	}
	return catalogue.NewFetcher(location, identities), nil
}

// loadCatalogue loads the configured catalogue, failing on any error.
// Scripts should see a broken catalogue, so unlike the browser this
// never substitutes the built-in catalogue for a configured one.
func loadCatalogue(ctx context.Context, cfg *config.Config, logger *slog.Logger) (catalogue.LoadResult, error) {
	fetcher, err := fetcherFor(cfg)
	if err != nil {
		return catalogue.LoadResult{}, err
	}
	if fetcher == nil {
		return catalogue.LoadOrFallback(ctx, nil, logger), nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	defer cancel()

	loaded, digest, err := catalogue.Load(ctx, fetcher)
	if err != nil {
		return catalogue.LoadResult{}, classifyLoadError(err)
	}
	logger.Debug("catalogue loaded",
		"source", fetcher.Describe(),
		"categories", loaded.Len(),
		"tasks", loaded.TaskCount(),
		"digest", digest.Short(),
	)
	return catalogue.LoadResult{Catalogue: loaded, Source: fetcher.Describe(), Digest: digest}, nil
}

// classifyLoadError maps a load failure onto a ToolError category.
func classifyLoadError(err error) error {
	var validation *catalogue.ValidationError
	switch {
	case errors.As(err, &validation):
		return cli.Validation("%w", err).
			WithHint("Run 'playbook validate' to list every problem in the document.")
	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err).
			WithHint("Check catalogue.path in the configuration, or pass --catalogue.")
	case errors.Is(err, catalogue.ErrNoIdentity):
		return cli.Validation("%w", err).
			WithHint("Pass --identity <file> or set catalogue.identity_file.")
	case errors.Is(err, context.DeadlineExceeded):
		return cli.Internal("%w", err).
			WithHint("Raise catalogue.fetch_timeout if the server is slow.")
	default:
		return cli.Internal("%w", err)
	}
}

// envelopeFor builds the export envelope from a compression name and
// age recipient keys.
func envelopeFor(compression string, recipients []string) (exporter.Envelope, error) {
	parsed, err := catalogue.ParseCompression(compression)
	if err != nil {
		return exporter.Envelope{}, cli.Validation("%w", err)
	}
	keys, err := catalogue.ParseRecipients(recipients)
	if err != nil {
		return exporter.Envelope{}, cli.Validation("%w", err).
			WithHint("Recipients are age X25519 public keys starting with age1.")
	}
	return exporter.Envelope{Compression: parsed, Recipients: keys}, nil
}
