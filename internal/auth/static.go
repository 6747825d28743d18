// Package auth resolves the bearer token used to authenticate remote
// calls. StaticTokenProvider implements the precedence chain of
// original_source/src/auth.rs (CLI flag -> env var -> session file).
// OAuthTokenProvider (oauth.go) is a refreshable alternative described in
// SPEC_FULL.md §12.6; the CLI does not construct it, and `brume auth
// login` stores a plain token that the CLI hands to StaticTokenProvider.
package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

const envToken = "BEARER_TOKEN"

// StaticTokenProvider resolves a token once from, in order: an explicit
// CLI-flag value, the BEARER_TOKEN environment variable, and the Granola
// desktop app's session file. It never refreshes; callers needing refresh
// use OAuthTokenProvider instead.
type StaticTokenProvider struct {
	CLIToken        string
	SessionFilePath string // overridable for tests; defaults to the platform Granola path
}

var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// GetToken resolves the token via the precedence chain, caching nothing:
// each call re-reads the environment and session file so an updated env
// var or session file takes effect immediately. It does not read the
// config file that `brume auth login` writes.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.CLIToken != "" {
		return p.CLIToken, nil
	}
	if v := os.Getenv(envToken); v != "" {
		return v, nil
	}
	token, err := p.sessionFileToken()
	if err != nil {
		return "", domain.Wrap(domain.KindAuth, "reading session file", err)
	}
	if token != "" {
		return token, nil
	}
	return "", domain.NewError(domain.KindAuth,
		"no bearer token found; provide --token, set BEARER_TOKEN, or run `brume auth login`", domain.ErrNoToken)
}

func (p *StaticTokenProvider) sessionFileToken() (string, error) {
	path := p.SessionFilePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		path = filepath.Join(home, "Library", "Application Support", "Granola", "supabase.json")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var session struct {
		WorkOSTokens string `json:"workos_tokens"`
	}
	if err := json.Unmarshal(raw, &session); err != nil {
		return "", err
	}
	if session.WorkOSTokens == "" {
		return "", nil
	}

	var workos struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(session.WorkOSTokens), &workos); err != nil {
		return "", err
	}
	return workos.AccessToken, nil
}
