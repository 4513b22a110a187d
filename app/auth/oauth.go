package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/service"
	"bitwise74/auth-api/pkg/util"
	"crypto/subtle"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	stateCookie    = "oauth_state"
	stateCookieAge = 60 * 10
)

// OAuthStart sends the user to the provider's consent page
func OAuthStart(c *gin.Context, d *internal.Deps, name string) {
	p, ok := d.Providers[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "providerNotConfigured",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	state, err := util.GenerateToken(16)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieAge, "/auth/"+name, "", d.SecureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, p.AuthCodeURL(state))
}

// OAuthRedirect finishes the login the provider redirected back for and
// forwards the user to the frontend with an access token
func OAuthRedirect(c *gin.Context, d *internal.Deps, name string) {
	requestID := c.GetString("requestID")

	p, ok := d.Providers[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "providerNotConfigured",
			"requestID": requestID,
		})
		return
	}

	expected, err := c.Cookie(stateCookie)
	state := c.Query("state")

	// The state is single use either way
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, "", -1, "/auth/"+name, "", d.SecureCookies, true)

	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		respond.Forbidden(c, "invalidOAuthState")
		return
	}

	id, err := p.Identity(c.Request.Context(), c.Query("code"))
	if err != nil {
		zap.L().Warn("OAuth login failed", zap.Error(err), zap.String("provider", name), zap.String("requestID", requestID))
		respond.Forbidden(c, "oauthFailed")
		return
	}

	pair, err := d.OAuth.ValidateOAuthLogin(c.Request.Context(), service.OAuthIdentity{
		Email:    id.Email,
		Name:     id.Name,
		Provider: p.Name(),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	target, err := url.Parse(d.OAuthSuccessURL)
	if err != nil {
		respond.Error(c, err)
		return
	}

	q := target.Query()
	q.Set("token", pair.AccessToken)
	target.RawQuery = q.Encode()

	c.Redirect(http.StatusTemporaryRedirect, target.String())
}
