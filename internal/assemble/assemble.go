// Package assemble builds a validated datasource configuration from
// environment settings, auxiliary definition files, and fallback resolution
// of the optional fields. It is the single construction path for both the
// interactive and the silent setup flows.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/fallback"
	"github.com/donaldgifford/gleanctl/internal/icon"
)

// Default icon files picked up from the working directory when no explicit
// source is configured.
const (
	DefaultLightIconFile = "icon-lightmode.png"
	DefaultDarkIconFile  = "icon-darkmode.png"
)

// Opts configures an assembly run.
type Opts struct {
	// Settings is the raw environment view, usually from LoadSettings.
	Settings *Settings

	// Dir is the directory searched for conventional files (auxiliary
	// definitions, default icons) and the base for relative icon paths.
	// Empty means the current directory.
	Dir string

	// Fetcher downloads URL-sourced icons. Nil means a default fetcher.
	Fetcher *icon.Fetcher

	// Logger for debug output.
	Logger *slog.Logger
}

// Result is the assembled configuration plus the non-fatal findings a
// caller should surface to the user.
type Result struct {
	Config *datasource.Config

	// Warnings are non-fatal findings: dropped invalid test emails and
	// missing or unparsable auxiliary files.
	Warnings []string

	// IconLightSource and IconDarkSource name the candidate each icon
	// resolved from. A dark icon inherited from the light one reports
	// "light mode icon".
	IconLightSource string
	IconDarkSource  string
}

// Run assembles a datasource configuration. Identity fields are validated
// in one batch before any fallback chain is evaluated, so the user sees
// every field problem at once; the first failed chain aborts the run.
func Run(ctx context.Context, opts Opts) (*Result, error) {
	if opts.Settings == nil {
		return nil, errors.New("settings are required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = icon.NewFetcher(nil)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	s := opts.Settings
	res := &Result{}

	cfg := &datasource.Config{
		DisplayName:           s.DisplayName,
		ID:                    s.ID,
		HomeURL:               s.HomeURL,
		UserReferencedByEmail: s.UserReferencedByEmail,
		IsTestMode:            s.IsTestMode,
	}

	cfg.Category = datasource.CategoryKnowledgeHub
	if s.Category != "" {
		cfg.Category = datasource.Category(s.Category)
	}

	var warn string

	cfg.ObjectTypes, warn = loadObjectTypes(resolvePath(dir, ObjectTypesFileName))
	if warn != "" {
		res.Warnings = append(res.Warnings, warn)
	}

	cfg.QuickLinks, warn = loadQuickLinks(resolvePath(dir, QuickLinksFileName))
	if warn != "" {
		res.Warnings = append(res.Warnings, warn)
	}

	if err := datasource.Validate(cfg); err != nil {
		return nil, err
	}

	valid, invalid := datasource.FilterEmails(s.TestUserEmails)
	cfg.TestUserEmails = valid

	for _, addr := range invalid {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid email format: %s (skipped)", addr))
	}

	urlRegex, err := urlRegexChain(s.URLRegex, cfg.HomeURL).Resolve(ctx)
	if err != nil {
		return nil, err
	}

	cfg.URLRegex = urlRegex.Value
	logger.Debug("resolved url regex", "source", urlRegex.Candidate, "value", urlRegex.Value)

	suggestion, err := suggestionChain(s.SuggestionText, cfg.DisplayName).Resolve(ctx)
	if err != nil {
		return nil, err
	}

	cfg.SuggestionText = suggestion.Value
	logger.Debug("resolved suggestion text", "source", suggestion.Candidate)

	light, err := iconChain(iconSpec{
		field:       "light mode icon",
		fileEnv:     EnvIconFileLight,
		filePath:    s.IconFileLight,
		urlEnv:      EnvIconURLLight,
		iconURL:     s.IconURLLight,
		defaultFile: DefaultLightIconFile,
	}, dir, fetcher).Resolve(ctx)
	if err != nil {
		return nil, err
	}

	cfg.IconLightmode = light.Value
	res.IconLightSource = light.Candidate
	logger.Debug("resolved light mode icon", "source", light.Candidate)

	darkChain := iconChain(iconSpec{
		field:       "dark mode icon",
		fileEnv:     EnvIconFileDark,
		filePath:    s.IconFileDark,
		urlEnv:      EnvIconURLDark,
		iconURL:     s.IconURLDark,
		defaultFile: DefaultDarkIconFile,
	}, dir, fetcher)

	// The dark icon always resolves: its last candidate inherits the
	// already-resolved light icon.
	darkChain.Candidates = append(darkChain.Candidates, fallback.Candidate{
		Name:      "light mode icon",
		Specified: true,
		Resolve: func(context.Context) (string, error) {
			return light.Value, nil
		},
	})

	dark, err := darkChain.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	cfg.IconDarkmode = dark.Value
	res.IconDarkSource = dark.Candidate
	logger.Debug("resolved dark mode icon", "source", dark.Candidate)

	res.Config = cfg

	return res, nil
}

type iconSpec struct {
	field       string
	fileEnv     string
	filePath    string
	urlEnv      string
	iconURL     string
	defaultFile string
}

func iconChain(spec iconSpec, dir string, fetcher *icon.Fetcher) fallback.Chain {
	defaultPath := resolvePath(dir, spec.defaultFile)

	return fallback.Chain{
		Field: spec.field,
		Candidates: []fallback.Candidate{
			{
				Name:      spec.fileEnv,
				Specified: spec.filePath != "",
				Resolve: func(context.Context) (string, error) {
					return icon.FromFile(resolvePath(dir, spec.filePath))
				},
			},
			{
				Name:      spec.urlEnv,
				Specified: spec.iconURL != "",
				Resolve: func(ctx context.Context) (string, error) {
					return fetcher.Fetch(ctx, spec.iconURL)
				},
			},
			{
				Name:      spec.defaultFile,
				Specified: fileExists(defaultPath),
				Resolve: func(context.Context) (string, error) {
					return icon.FromFile(defaultPath)
				},
			},
		},
		ExhaustedHint: fmt.Sprintf(
			"provide one of the following:\n  1. place an %q file in the current directory\n  2. set %s to point to your icon file\n  3. set %s to an icon URL",
			spec.defaultFile, spec.fileEnv, spec.urlEnv,
		),
	}
}

func urlRegexChain(override, homeURL string) fallback.Chain {
	return fallback.Chain{
		Field: "url regex",
		Candidates: []fallback.Candidate{
			{
				Name:      EnvURLRegex,
				Specified: override != "",
				Resolve: func(context.Context) (string, error) {
					return override, nil
				},
			},
			{
				Name:      "derived from home URL",
				Specified: true,
				Resolve: func(context.Context) (string, error) {
					return deriveURLRegex(homeURL)
				},
			},
		},
	}
}

func suggestionChain(override, displayName string) fallback.Chain {
	return fallback.Chain{
		Field: "suggestion text",
		Candidates: []fallback.Candidate{
			{
				Name:      EnvSuggestionText,
				Specified: override != "",
				Resolve: func(context.Context) (string, error) {
					return override, nil
				},
			},
			{
				Name:      "derived from display name",
				Specified: true,
				Resolve: func(context.Context) (string, error) {
					return datasource.DefaultSuggestion(displayName), nil
				},
			},
		},
	}
}

// deriveURLRegex builds the default document pattern from the home URL's
// origin: everything under scheme://host matches.
func deriveURLRegex(homeURL string) (string, error) {
	u, err := url.Parse(homeURL)
	if err != nil {
		return "", fmt.Errorf("parsing home URL: %w", err)
	}

	return fmt.Sprintf("%s://%s/.*", u.Scheme, u.Host), nil
}
