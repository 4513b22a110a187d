package validators

import "errors"

const (
	PasswordMinLength = 6

	// bcrypt ignores everything past 72 bytes
	PasswordMaxLength = 72
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordEmpty    = errors.New("no password provided")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < PasswordMinLength {
		return ErrPasswordTooShort
	}

	if len(p) > PasswordMaxLength {
		return ErrPasswordTooLong
	}

	return nil
}
