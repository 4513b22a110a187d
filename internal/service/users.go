package service

import (
	"bitwise74/auth-api/internal/model"
	"context"
	"errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newUserID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}

// findUser returns the first user matching the query or nil if there is none
func findUser(ctx context.Context, db *gorm.DB, query string, args ...any) (*model.User, error) {
	var user model.User

	err := db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func findUserByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	return findUser(ctx, db, "email = ?", email)
}

func findUserByID(ctx context.Context, db *gorm.DB, id string) (*model.User, error) {
	return findUser(ctx, db, "id = ?", id)
}
