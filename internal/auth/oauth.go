package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
)

// OAuthTokenProvider wraps an oauth2.TokenSource so refresh is handled by
// golang.org/x/oauth2 itself rather than the hand-rolled refresh call the
// teacher's CredentialsOAuthProvider makes; brume only persists the
// current access and refresh tokens back to its config store after every
// successful GetToken call, whether or not that call refreshed them.
type OAuthTokenProvider struct {
	source driven.ConfigStore
	ts     oauth2.TokenSource
}

var _ driven.TokenProvider = (*OAuthTokenProvider)(nil)

// NewOAuthTokenProvider builds a provider from a persisted refresh token.
// cfg supplies the token endpoint and client credentials; store, when not
// nil, receives the current tokens on every successful GetToken call.
func NewOAuthTokenProvider(cfg oauth2.Config, refreshToken string, store driven.ConfigStore) *OAuthTokenProvider {
	base := cfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refreshToken})
	return &OAuthTokenProvider{source: store, ts: oauth2.ReuseTokenSource(nil, base)}
}

// GetToken returns a valid access token, transparently refreshing via the
// wrapped oauth2.TokenSource when the cached token has expired.
func (p *OAuthTokenProvider) GetToken(_ context.Context) (string, error) {
	tok, err := p.ts.Token()
	if err != nil {
		return "", domain.Wrap(domain.KindAuth, "refreshing oauth token", err)
	}
	if p.source != nil {
		_ = p.source.Set("auth.access_token", tok.AccessToken)
		_ = p.source.Set("auth.refresh_token", tok.RefreshToken)
		_ = p.source.Save()
	}
	return tok.AccessToken, nil
}

// PromptForToken reads a bearer token from the terminal with input hidden,
// for `brume auth login` when the user pastes a token manually rather than
// completing a full OAuth authorization-code exchange.
func PromptForToken(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", domain.Wrap(domain.KindAuth, "reading token from terminal", err)
	}
	return string(raw), nil
}
