package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
)

// cost can be lowered by tests through SetCost
var cost = DefaultCost

// SetCost overrides the bcrypt cost and returns the previous value
func SetCost(c int) int {
	prev := cost
	if c < bcrypt.MinCost {
		c = bcrypt.MinCost
	}
	cost = c
	return prev
}

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
