package service

import (
	"bitwise74/auth-api/internal/model"
	"bitwise74/auth-api/pkg/security"
	"context"
	"crypto/subtle"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultMaxResetAttempts is how many wrong codes are accepted before the
// pending code is thrown away
const DefaultMaxResetAttempts = 5

// Resets drives the password reset flow: send a code, validate it, then set
// a new password. Each step only succeeds from the state the previous one left.
type Resets struct {
	db          *gorm.DB
	hasher      *security.Hasher
	mailer      Mailer
	now         func() time.Time
	ttl         time.Duration
	maxAttempts int
}

type ResetsOpts struct {
	Now         func() time.Time
	TTL         time.Duration
	MaxAttempts int
}

func NewResets(db *gorm.DB, h *security.Hasher, m Mailer, o *ResetsOpts) *Resets {
	r := &Resets{
		db:          db,
		hasher:      h,
		mailer:      m,
		now:         time.Now,
		ttl:         security.ResetCodeTTL,
		maxAttempts: DefaultMaxResetAttempts,
	}

	if o != nil {
		if o.Now != nil {
			r.now = o.Now
		}

		if o.TTL > 0 {
			r.ttl = o.TTL
		}

		if o.MaxAttempts > 0 {
			r.maxAttempts = o.MaxAttempts
		}
	}

	return r
}

// SendResetCode issues a fresh code for the user, replacing any pending one,
// and mails it in the background. Mail failures are only logged.
func (r *Resets) SendResetCode(ctx context.Context, email string) error {
	user, err := findUserByEmail(ctx, r.db, email)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err))
		return ErrInternal
	}

	if user == nil {
		return ErrUserNotFound
	}

	code, err := security.MakeResetCode(&security.ResetCodeOpts{
		IssuedAt: r.now(),
		TTL:      r.ttl,
	})
	if err != nil {
		zap.L().Error("Failed to generate reset code", zap.Error(err), zap.String("userID", user.ID))
		return ErrInternal
	}

	err = r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"reset_code":        code.Code,
			"reset_code_expiry": code.ExpiresAt,
			"reset_attempts":    0,
			"otp_validated":     false,
		}).Error
	if err != nil {
		zap.L().Error("Failed to store reset code", zap.Error(err), zap.String("userID", user.ID))
		return ErrInternal
	}

	go func(to, c string) {
		if err := r.mailer.SendResetCode(context.Background(), to, c); err != nil {
			zap.L().Error("Failed to send reset code mail", zap.Error(err), zap.String("userID", user.ID))
		}
	}(user.Email, code.Code)

	return nil
}

// VerifyResetCode checks code against the pending one. Too many wrong guesses
// discard the pending code and the user has to request a new one.
func (r *Resets) VerifyResetCode(ctx context.Context, email, code string) error {
	user, err := findUserByEmail(ctx, r.db, email)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err))
		return ErrInternal
	}

	if user == nil || user.ResetCode == nil || user.ResetCodeExpiry == nil {
		return ErrInvalidRequest
	}

	if user.ResetAttempts >= r.maxAttempts {
		return ErrInvalidRequest
	}

	if subtle.ConstantTimeCompare([]byte(*user.ResetCode), []byte(code)) != 1 {
		if err := r.recordFailedAttempt(ctx, user); err != nil {
			zap.L().Error("Failed to record reset attempt", zap.Error(err), zap.String("userID", user.ID))
			return ErrInternal
		}

		return ErrInvalidCode
	}

	if user.ResetCodeExpiry.Before(r.now()) {
		return ErrCodeExpired
	}

	// The code may have been discarded by concurrent wrong guesses since it
	// was read, so it is matched again in the update
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND reset_code = ? AND reset_attempts < ?", user.ID, code, r.maxAttempts).
		Update("otp_validated", true)
	if res.Error != nil {
		zap.L().Error("Failed to mark reset code as validated", zap.Error(res.Error), zap.String("userID", user.ID))
		return ErrInternal
	}

	if res.RowsAffected == 0 {
		return ErrInvalidRequest
	}

	return nil
}

// ResetPassword sets a new password for a user that validated a reset code.
// The conditional update lets at most one call succeed per validated code.
func (r *Resets) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := findUserByEmail(ctx, r.db, email)
	if err != nil {
		zap.L().Error("Failed to fetch user", zap.Error(err))
		return ErrInternal
	}

	if user == nil || !user.OTPValidated {
		return ErrNotValidated
	}

	hash, err := r.hasher.GenerateFromPassword(newPassword)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("userID", user.ID))
		return ErrInternal
	}

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND otp_validated = ?", user.ID, true).
		Updates(map[string]any{
			"password_hash":     hash,
			"reset_code":        nil,
			"reset_code_expiry": nil,
			"reset_attempts":    0,
			"otp_validated":     false,
		})
	if res.Error != nil {
		zap.L().Error("Failed to reset password", zap.Error(res.Error), zap.String("userID", user.ID))
		return ErrInternal
	}

	if res.RowsAffected == 0 {
		return ErrNotValidated
	}

	return nil
}

func (r *Resets) recordFailedAttempt(ctx context.Context, user *model.User) error {
	// Both statements are conditional so concurrent guesses can never push
	// the counter past the limit or keep a code that reached it
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND reset_code IS NOT NULL AND reset_attempts < ?", user.ID, r.maxAttempts).
		Update("reset_attempts", gorm.Expr("reset_attempts + ?", 1)).Error
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND reset_code IS NOT NULL AND reset_attempts >= ?", user.ID, r.maxAttempts).
		Updates(map[string]any{
			"reset_code":        nil,
			"reset_code_expiry": nil,
			"reset_attempts":    0,
			"otp_validated":     false,
		})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		zap.L().Debug("Too many wrong reset codes, discarding pending code", zap.String("userID", user.ID))
	}

	return nil
}
