package validator

import (
	"regexp"
	"strings"

	"learnhub/internal/entity"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const passwordSpecials = "@$!%*?&"

// ValidateRegistration checks a registration payload and returns the
// user-facing messages for every failed rule.
func ValidateRegistration(username, email, password, role string) []string {
	var messages []string

	switch {
	case username == "":
		messages = append(messages, "Username is required.")
	case !isAlphanumeric(username):
		messages = append(messages, "Name must contain only alphanumeric characters.")
	case len(username) < 3:
		messages = append(messages, "Name must be at least 3 characters long.")
	}

	switch {
	case email == "":
		messages = append(messages, "Email is required.")
	case !emailPattern.MatchString(email):
		messages = append(messages, "Please provide a valid email address.")
	}

	switch {
	case password == "":
		messages = append(messages, "Password is required.")
	case !isStrongPassword(password):
		messages = append(messages, "Password must contain at least one uppercase letter, one lowercase letter, one digit, one special character, and be at least 8 characters long.")
	}

	if role != "" && !entity.ValidRole(entity.UserRole(role)) {
		messages = append(messages, "Role must be either 'manager', 'admin' or 'student'.")
	}

	return messages
}

// ValidateProfileUpdate checks only the fields present in a partial
// self-service update.
func ValidateProfileUpdate(username, email, password *string) []string {
	var messages []string

	if username != nil {
		switch {
		case *username == "":
			messages = append(messages, "Username is required.")
		case !isAlphanumeric(*username):
			messages = append(messages, "Name must contain only alphanumeric characters.")
		case len(*username) < 3:
			messages = append(messages, "Name must be at least 3 characters long.")
		}
	}

	if email != nil {
		if *email == "" || !emailPattern.MatchString(*email) {
			messages = append(messages, "Please provide a valid email address.")
		}
	}

	if password != nil && !isStrongPassword(*password) {
		messages = append(messages, "Password must contain at least one uppercase letter, one lowercase letter, one digit, one special character, and be at least 8 characters long.")
	}

	return messages
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// Go's regexp has no lookahead, so the complexity rules are checked
// one character class at a time.
func isStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			// Character outside the allowed set
			return false
		}
	}

	return hasLower && hasUpper && hasDigit && hasSpecial
}
