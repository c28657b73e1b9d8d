package auth

import (
	"strings"
	"unicode"
)

// institutional email domains accepted for registration
var institutionalSuffixes = []string{".edu", ".edu.br"}

// IsInstitutionalEmail reports whether the email belongs to an accepted
// institutional domain.
func IsInstitutionalEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, suffix := range institutionalSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}

// IsStrongPassword reports whether the password contains at least one
// lowercase letter, one uppercase letter, one digit and one special
// character. Length is enforced separately via binding tags.
func IsStrongPassword(password string) bool {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}

// IsValidFullName reports whether the name consists of letters and spaces only
func IsValidFullName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
