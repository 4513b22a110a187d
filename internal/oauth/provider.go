// Package oauth wraps the third party login providers. Every provider is the
// same authorization code flow and only differs in how the profile is read.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

var ErrEmailUnverified = errors.New("provider email is not verified")

// Identity is the part of a provider profile we care about
type Identity struct {
	Email string
	Name  string
}

type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Identity(ctx context.Context, code string) (*Identity, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// ProfileMapper turns a decoded profile response into an Identity
type ProfileMapper func(profile map[string]any) (*Identity, error)

type provider struct {
	name       string
	cfg        *oauth2.Config
	profileURL string
	mapper     ProfileMapper
}

// New creates a provider that exchanges codes using cfg and reads the
// profile from profileURL
func New(name string, cfg *oauth2.Config, profileURL string, m ProfileMapper) Provider {
	return &provider{
		name:       name,
		cfg:        cfg,
		profileURL: profileURL,
		mapper:     m,
	}
}

func (p *provider) Name() string {
	return p.name
}

func (p *provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *provider) Identity(ctx context.Context, code string) (*Identity, error) {
	if code == "" {
		return nil, errors.New("no authorization code provided")
	}

	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange %s code, %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.cfg.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile, %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s profile request returned status %d", p.name, resp.StatusCode)
	}

	var profile map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode %s profile, %w", p.name, err)
	}

	return p.mapper(profile)
}

func stringField(profile map[string]any, key string) string {
	v, _ := profile[key].(string)
	return v
}
