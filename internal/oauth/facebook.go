package oauth

import (
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const (
	ProviderFacebook = "facebook"

	facebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email,first_name,last_name"
)

func NewFacebook(c Config) Provider {
	return New(ProviderFacebook, &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.CallbackURL,
		Endpoint:     facebook.Endpoint,
		Scopes:       []string{"email", "public_profile"},
	}, facebookProfileURL, FacebookProfile)
}

// FacebookProfile maps a Graph API /me response. The email is missing when
// the user signed up with a phone number or declined the permission.
func FacebookProfile(profile map[string]any) (*Identity, error) {
	name := strings.TrimSpace(stringField(profile, "first_name") + " " + stringField(profile, "last_name"))
	if name == "" {
		name = stringField(profile, "name")
	}

	return &Identity{
		Email: stringField(profile, "email"),
		Name:  name,
	}, nil
}
