package oauth

import (
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"

	googleProfileURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

func NewGoogle(c Config) Provider {
	return New(ProviderGoogle, &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.CallbackURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}, googleProfileURL, GoogleProfile)
}

// GoogleProfile maps an OpenID userinfo response. Addresses Google hasn't
// verified are refused since they'd let anyone claim an existing account.
func GoogleProfile(profile map[string]any) (*Identity, error) {
	email := stringField(profile, "email")

	if email != "" {
		if verified, ok := profile["email_verified"].(bool); ok && !verified {
			return nil, ErrEmailUnverified
		}
	}

	name := stringField(profile, "name")
	if name == "" {
		name = strings.TrimSpace(stringField(profile, "given_name") + " " + stringField(profile, "family_name"))
	}

	return &Identity{
		Email: email,
		Name:  name,
	}, nil
}
