// Package security contains everything related to the security of user data
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for every stored password
const DefaultCost = 10

type Hasher struct {
	Cost int
}

func NewHasher() *Hasher {
	return &Hasher{
		Cost: DefaultCost,
	}
}

func (h *Hasher) GenerateFromPassword(p string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p), h.Cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPasswd compares a password p with the stored bcrypt hash e. An empty
// hash (accounts created through OAuth) never matches.
func (h *Hasher) VerifyPasswd(p, e string) (ok bool, err error) {
	if e == "" {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(e), []byte(p))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
