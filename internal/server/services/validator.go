package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

var emailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes  = 72
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
	maxNameLength     = 255
	maxTitleLength    = 200
	maxDescriptionLen = 1000
)

// NormalizeEmail trims surrounding space and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if !emailRX.MatchString(email) {
		return common.WithDetail(common.ErrorValidation, "Invalid email format")
	}
	return nil
}

// passwordIssues lists every rule password breaks, in a fixed order.
func passwordIssues(password string) []string {
	var issues []string
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		issues = append(issues, "Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		issues = append(issues, "Password must be at most 72 bytes long")
	}
	if !upper {
		issues = append(issues, "Password must contain at least one uppercase letter")
	}
	if !lower {
		issues = append(issues, "Password must contain at least one lowercase letter")
	}
	if !digit {
		issues = append(issues, "Password must contain at least one digit")
	}
	if !special {
		issues = append(issues, "Password must contain at least one special character")
	}
	return issues
}

func validatePassword(password string) error {
	if issues := passwordIssues(password); len(issues) > 0 {
		return common.WithDetail(common.ErrorValidation,
			"Password does not meet requirements: "+strings.Join(issues, "; "))
	}
	return nil
}

func validateName(name *string) error {
	if name != nil && utf8.RuneCountInString(*name) > maxNameLength {
		return common.WithDetail(common.ErrorValidation, "Name must be at most 255 characters")
	}
	return nil
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > maxTitleLength {
		return common.WithDetail(common.ErrorValidation, "Title must be between 1 and 200 characters")
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLen {
		return common.WithDetail(common.ErrorValidation, "Description must be at most 1000 characters")
	}
	return nil
}
