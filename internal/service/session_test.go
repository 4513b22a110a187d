package service

import (
	"bitwise74/auth-api/internal/model"
	"bitwise74/auth-api/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, s *Sessions, email, password string) *TokenPair {
	t.Helper()

	pair, err := s.Signup(context.Background(), SignupInput{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	require.NoError(t, err)

	return pair
}

func TestSignup_CreatesUserAndStoresRefreshToken(t *testing.T) {
	s, d := newTestSessions(t)

	pair := signup(t, s, "a@x.com", "secret1")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	u := getUser(t, d, "a@x.com")
	assert.Len(t, u.ID, 16)
	assert.Equal(t, model.DefaultRole, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	require.NotNil(t, u.RefreshToken)
	assert.Equal(t, pair.RefreshToken, *u.RefreshToken)

	claims, err := s.signer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestSignup_KeepsGivenRole(t *testing.T) {
	s, d := newTestSessions(t)

	_, err := s.Signup(context.Background(), SignupInput{
		Email:     "biz@x.com",
		Password:  "secret1",
		Role:      "vendor",
		IsCompany: true,
	})
	require.NoError(t, err)

	u := getUser(t, d, "biz@x.com")
	assert.Equal(t, "vendor", u.Role)
	assert.True(t, u.IsCompany)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s, d := newTestSessions(t)

	signup(t, s, "a@x.com", "secret1")

	_, err := s.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "other12"})
	assert.ErrorIs(t, err, ErrEmailExists)

	var count int64
	require.NoError(t, d.Model(&model.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignin(t *testing.T) {
	s, d := newTestSessions(t)
	signup(t, s, "a@x.com", "secret1")

	t.Run("correct password", func(t *testing.T) {
		pair, err := s.Signin(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)

		u := getUser(t, d, "a@x.com")
		require.NotNil(t, u.RefreshToken)
		assert.Equal(t, pair.RefreshToken, *u.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Signin(context.Background(), "a@x.com", "nope123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Signin(context.Background(), "b@x.com", "secret1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSignin_OAuthAccountWithoutPassword(t *testing.T) {
	s, d := newTestSessions(t)

	require.NoError(t, d.Create(&model.User{ID: "oauthuser", Email: "g@x.com"}).Error)

	_, err := s.Signin(context.Background(), "g@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignTokens_UnknownUser(t *testing.T) {
	s, _ := newTestSessions(t)

	_, err := s.SignTokens(context.Background(), "missing", "m@x.com")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSignTokens_EachCallRotates(t *testing.T) {
	s, d := newTestSessions(t)
	signup(t, s, "a@x.com", "secret1")
	u := getUser(t, d, "a@x.com")

	first, err := s.SignTokens(context.Background(), u.ID, u.Email)
	require.NoError(t, err)

	second, err := s.SignTokens(context.Background(), u.ID, u.Email)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, second.RefreshToken, *getUser(t, d, "a@x.com").RefreshToken)
}

func TestRefreshTokens_Rotation(t *testing.T) {
	s, d := newTestSessions(t)
	pair := signup(t, s, "a@x.com", "secret1")
	u := getUser(t, d, "a@x.com")

	rotated, err := s.RefreshTokens(context.Background(), u.ID, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, rotated.RefreshToken, *getUser(t, d, "a@x.com").RefreshToken)

	// The old token still verifies but is no longer the current one
	_, err = s.RefreshTokens(context.Background(), u.ID, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)

	// A mismatch doesn't revoke the current token
	assert.Equal(t, rotated.RefreshToken, *getUser(t, d, "a@x.com").RefreshToken)

	_, err = s.RefreshTokens(context.Background(), u.ID, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokens_InvalidTokenRevokes(t *testing.T) {
	s, d := newTestSessions(t)
	pair := signup(t, s, "a@x.com", "secret1")
	u := getUser(t, d, "a@x.com")

	forger, err := security.NewSigner(security.SignerConfig{
		AccessSecret:  "access-other",
		RefreshSecret: "refresh-other",
	})
	require.NoError(t, err)

	forged, err := forger.SignRefresh(security.Identity{ID: u.ID, Email: u.Email})
	require.NoError(t, err)

	_, err = s.RefreshTokens(context.Background(), u.ID, forged)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, getUser(t, d, "a@x.com").RefreshToken)

	// The previously valid token is gone with it
	_, err = s.RefreshTokens(context.Background(), u.ID, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestRefreshTokens_AccessTokenRejected(t *testing.T) {
	s, d := newTestSessions(t)
	pair := signup(t, s, "a@x.com", "secret1")
	u := getUser(t, d, "a@x.com")

	_, err := s.RefreshTokens(context.Background(), u.ID, pair.AccessToken)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRefreshTokens_UnknownUser(t *testing.T) {
	s, _ := newTestSessions(t)

	_, err := s.RefreshTokens(context.Background(), "missing", "whatever")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLogout(t *testing.T) {
	s, d := newTestSessions(t)
	pair := signup(t, s, "a@x.com", "secret1")
	u := getUser(t, d, "a@x.com")

	require.NoError(t, s.Logout(context.Background(), u.ID))
	assert.Nil(t, getUser(t, d, "a@x.com").RefreshToken)

	// Idempotent for existing users
	require.NoError(t, s.Logout(context.Background(), u.ID))

	_, err := s.RefreshTokens(context.Background(), u.ID, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)

	assert.ErrorIs(t, s.Logout(context.Background(), "missing"), ErrAccessDenied)
}

func TestSignin_InvalidatesPreviousRefreshToken(t *testing.T) {
	s, d := newTestSessions(t)
	t1 := signup(t, s, "a@x.com", "secret1")

	t2, err := s.Signin(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, t1.RefreshToken, t2.RefreshToken)

	u := getUser(t, d, "a@x.com")

	_, err = s.RefreshTokens(context.Background(), u.ID, t1.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)

	_, err = s.RefreshTokens(context.Background(), u.ID, t2.RefreshToken)
	assert.NoError(t, err)
}
