package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is the one-way salted credential hasher shared by login and
// the password-reset lifecycle.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash string, plain string) error
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: 12}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Compare(hash string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
