package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/mentorquest/api/models"
	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername enforces the handle rules: 3-20 chars of [A-Za-z0-9_].
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// UsernameBase lowercases the display name and strips everything outside
// [a-z0-9]. The generated handle is base + a random 4-digit suffix.
func UsernameBase(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}

// GenerateUniqueUsername derives a handle from the display name and retries
// with a fresh suffix until no existing user holds it.
func GenerateUniqueUsername(tx *gorm.DB, name string) (string, error) {
	base := UsernameBase(name)
	if base == "" {
		base = "user"
	}
	if len(base) > 16 {
		base = base[:16]
	}

	for {
		suffix := 1000 + seededRand.Intn(9000)
		username := fmt.Sprintf("%s%d", base, suffix)

		var user models.User
		err := tx.Where("username = ?", username).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return username, nil
			}
			return "", err
		}
	}
}

// GenerateUniqueInviteCode draws 5-digit codes until one is unused.
func GenerateUniqueInviteCode(tx *gorm.DB) (string, error) {
	for {
		code := fmt.Sprintf("%05d", 10000+seededRand.Intn(90000))

		var user models.User
		err := tx.Where("invite_code = ?", code).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code, nil
			}
			return "", err
		}
	}
}
