package service

import (
	"crypto/subtle"
	"fmt"
	"math"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/brianvoe/gofakeit/v7/source"
	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme decides how passwords are stored and compared.
type PasswordScheme interface {
	// Prepare turns a plaintext password into its stored form.
	Prepare(plain string) (string, error)
	// Matches reports whether given corresponds to the stored form.
	Matches(stored, given string) bool
}

// PlainPasswords stores passwords as given and compares them for equality.
type PlainPasswords struct{}

func (PlainPasswords) Prepare(plain string) (string, error) { return plain, nil }

func (PlainPasswords) Matches(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Prepare(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}

// PasswordSchemeByName maps a configuration value to a scheme.
func PasswordSchemeByName(name string) (PasswordScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	generatedPasswordLength = 8
)

// passwordFaker draws from the system CSPRNG.
var passwordFaker = gofakeit.NewFaker(source.NewCrypto(), true)

// GeneratePassword returns a random password of the given length made of
// 30% lowercase letters, 30% uppercase letters, 20% digits and 20% symbols,
// shuffled.
func GeneratePassword(length int) string {
	alpha := int(math.Round(float64(length) * 0.3))
	other := int(math.Round(float64(length) * 0.2))

	buf := make([]byte, 0, 2*alpha+2*other)
	buf = appendRandom(buf, lowerChars, alpha)
	buf = appendRandom(buf, upperChars, alpha)
	buf = appendRandom(buf, digitChars, other)
	buf = appendRandom(buf, symbolChars, other)

	passwordFaker.ShuffleAnySlice(buf)
	return string(buf)
}

func appendRandom(buf []byte, set string, n int) []byte {
	for i := 0; i < n; i++ {
		buf = append(buf, set[passwordFaker.IntN(len(set))])
	}
	return buf
}

// accountName derives the login name of an associated account.
func accountName(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + "." + strings.ToLower(strings.TrimSpace(lastName))
}
