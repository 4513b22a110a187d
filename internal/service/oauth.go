package service

import (
	"bitwise74/auth-api/internal/model"
	"bitwise74/auth-api/pkg/security"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OAuthIdentity is what a provider told us about the user
type OAuthIdentity struct {
	Email    string
	Name     string
	Provider string
	Password string // Optional, hashed when present
}

type OAuth struct {
	db       *gorm.DB
	hasher   *security.Hasher
	sessions *Sessions
}

func NewOAuth(db *gorm.DB, h *security.Hasher, s *Sessions) *OAuth {
	return &OAuth{
		db:       db,
		hasher:   h,
		sessions: s,
	}
}

// ValidateOAuthLogin logs in the user owning the identity's email, creating
// an account on first sight
func (o *OAuth) ValidateOAuthLogin(ctx context.Context, id OAuthIdentity) (*TokenPair, error) {
	if id.Email == "" {
		return nil, ErrOAuthEmailMissing
	}

	user, err := findUserByEmail(ctx, o.db, id.Email)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err))
		return nil, ErrInternal
	}

	if user == nil {
		user, err = o.createUser(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return o.sessions.SignTokens(ctx, user.ID, user.Email)
}

func (o *OAuth) createUser(ctx context.Context, id OAuthIdentity) (*model.User, error) {
	userID, err := newUserID()
	if err != nil {
		zap.L().Error("Failed to generate user ID", zap.Error(err))
		return nil, ErrInternal
	}

	user := &model.User{
		ID:    userID,
		Email: id.Email,
		Name:  id.Name,
		Role:  model.DefaultRole,
	}

	if id.Provider != "" {
		user.Provider = &id.Provider
	}

	if id.Password != "" {
		hash, err := o.hasher.GenerateFromPassword(id.Password)
		if err != nil {
			zap.L().Error("Failed to hash password", zap.Error(err))
			return nil, ErrInternal
		}

		user.PasswordHash = hash
	}

	err = o.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		zap.L().Error("Failed to create user", zap.Error(err), zap.String("provider", id.Provider))
		return nil, ErrInternal
	}

	// A concurrent login created the account first, use that one
	existing, err := findUserByEmail(ctx, o.db, id.Email)
	if err != nil || existing == nil {
		zap.L().Error("Failed to fetch user after duplicate insert", zap.Error(err))
		return nil, ErrInternal
	}

	return existing, nil
}
