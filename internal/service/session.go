package service

import (
	"bitwise74/auth-api/internal/model"
	"bitwise74/auth-api/pkg/security"
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SignupInput struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	Role      string
	IsCompany bool
}

// Sessions handles signup, signin and the lifecycle of refresh tokens. Every
// user has at most one valid refresh token, the one issued last.
type Sessions struct {
	db     *gorm.DB
	hasher *security.Hasher
	signer *security.Signer
}

func NewSessions(db *gorm.DB, h *security.Hasher, s *security.Signer) *Sessions {
	return &Sessions{
		db:     db,
		hasher: h,
		signer: s,
	}
}

func (s *Sessions) Signup(ctx context.Context, in SignupInput) (*TokenPair, error) {
	existing, err := findUserByEmail(ctx, s.db, in.Email)
	if err != nil {
		zap.L().Error("Failed to check if user is registered", zap.Error(err))
		return nil, ErrInternal
	}

	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.GenerateFromPassword(in.Password)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return nil, ErrInternal
	}

	userID, err := newUserID()
	if err != nil {
		zap.L().Error("Failed to generate user ID", zap.Error(err))
		return nil, ErrInternal
	}

	role := in.Role
	if role == "" {
		role = model.DefaultRole
	}

	err = s.db.WithContext(ctx).Create(&model.User{
		ID:           userID,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		IsCompany:    in.IsCompany,
	}).Error
	if err != nil {
		// Lost a race against another signup with the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}

		zap.L().Error("Failed to create user", zap.Error(err))
		return nil, ErrInternal
	}

	return s.SignTokens(ctx, userID, in.Email)
}

func (s *Sessions) Signin(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := findUserByEmail(ctx, s.db, email)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err))
		return nil, ErrInternal
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	ok, err := s.hasher.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("userID", user.ID))
		return nil, ErrInternal
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.SignTokens(ctx, user.ID, user.Email)
}

// SignTokens mints a new token pair and stores the refresh token on the user,
// which invalidates whatever refresh token was issued before.
func (s *Sessions) SignTokens(ctx context.Context, userID, email string) (*TokenPair, error) {
	id := security.Identity{ID: userID, Email: email}

	access, err := s.signer.SignAccess(id)
	if err != nil {
		zap.L().Error("Failed to sign access token", zap.Error(err), zap.String("userID", userID))
		return nil, ErrInternal
	}

	refresh, err := s.signer.SignRefresh(id)
	if err != nil {
		zap.L().Error("Failed to sign refresh token", zap.Error(err), zap.String("userID", userID))
		return nil, ErrInternal
	}

	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", refresh)
	if r.Error != nil {
		zap.L().Error("Failed to store refresh token", zap.Error(r.Error), zap.String("userID", userID))
		return nil, ErrInternal
	}

	if r.RowsAffected == 0 {
		return nil, ErrAccessDenied
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// RefreshTokens exchanges a refresh token for a new pair. A token that fails
// verification revokes the stored one. A token that verifies but is not the
// stored one (already rotated or logged out) is rejected without touching the
// stored token.
func (s *Sessions) RefreshTokens(ctx context.Context, userID, presented string) (*TokenPair, error) {
	user, err := findUserByID(ctx, s.db, userID)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("userID", userID))
		return nil, ErrInternal
	}

	if user == nil {
		return nil, ErrAccessDenied
	}

	if _, err := s.signer.VerifyRefresh(presented); err != nil {
		zap.L().Debug("Refresh token failed verification", zap.Error(err), zap.String("userID", userID))

		if err := s.clearRefreshToken(ctx, userID); err != nil {
			zap.L().Error("Failed to revoke refresh token", zap.Error(err), zap.String("userID", userID))
			return nil, ErrInternal
		}

		return nil, ErrAccessDenied
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(presented)) != 1 {
		return nil, ErrRefreshTokenMismatch
	}

	return s.SignTokens(ctx, user.ID, user.Email)
}

func (s *Sessions) Logout(ctx context.Context, userID string) error {
	r := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil)
	if r.Error != nil {
		zap.L().Error("Failed to revoke refresh token", zap.Error(r.Error), zap.String("userID", userID))
		return ErrInternal
	}

	if r.RowsAffected == 0 {
		return ErrAccessDenied
	}

	return nil
}

func (s *Sessions) clearRefreshToken(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil).
		Error
}
