package auth

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Passwords are salted with the decimal length of the email before hashing.
// Existing rows were written with this scheme, so it has to stay.
func saltedInput(password, email string) []byte {
	return []byte(password + strconv.Itoa(len(email)))
}

func HashPassword(password, email string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(saltedInput(password, email), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password, email string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), saltedInput(password, email)) == nil
}
