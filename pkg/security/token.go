package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = time.Hour * 24 * 7
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Identity is the payload carried by both token classes
type Identity struct {
	ID    string
	Email string
}

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

type SignerConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now overrides the clock, mostly useful in tests
	Now func() time.Time
}

// Signer creates and verifies the two independent token classes. Access and
// refresh tokens never share a secret.
type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewSigner(c SignerConfig) (*Signer, error) {
	if c.AccessSecret == "" {
		return nil, errors.New("no access token secret provided")
	}

	if c.RefreshSecret == "" {
		return nil, errors.New("no refresh token secret provided")
	}

	if c.AccessSecret == c.RefreshSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	if c.AccessTTL <= 0 {
		c.AccessTTL = DefaultAccessTTL
	}

	if c.RefreshTTL <= 0 {
		c.RefreshTTL = DefaultRefreshTTL
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	return &Signer{
		accessSecret:  []byte(c.AccessSecret),
		refreshSecret: []byte(c.RefreshSecret),
		accessTTL:     c.AccessTTL,
		refreshTTL:    c.RefreshTTL,
		now:           c.Now,
	}, nil
}

func (s *Signer) SignAccess(i Identity) (string, error) {
	return s.sign(i, TokenTypeAccess, s.accessSecret, s.accessTTL)
}

func (s *Signer) SignRefresh(i Identity) (string, error) {
	return s.sign(i, TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess checks an access token. No route here needs one, it exists for
// services that consume this API's access tokens to authenticate callers.
func (s *Signer) VerifyAccess(token string) (*Claims, error) {
	return s.verify(token, TokenTypeAccess, s.accessSecret)
}

func (s *Signer) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(token, TokenTypeRefresh, s.refreshSecret)
}

func (s *Signer) sign(i Identity, typ string, secret []byte, ttl time.Duration) (string, error) {
	if i.ID == "" {
		return "", errors.New("no user ID provided")
	}

	// jti makes every token unique even when two are signed within the same second
	jti, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID, %w", err)
	}

	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: i.ID,
		Email:  i.Email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return t.SignedString(secret)
}

func (s *Signer) verify(token, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w, %v", ErrTokenInvalid, err)
	}

	if claims.Type != typ || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
