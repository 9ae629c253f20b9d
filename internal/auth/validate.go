package auth

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidateName requires a non-blank name.
func ValidateName(value string) string {
	if isBlank(value) {
		return "Name is required."
	}
	return ""
}

// ValidatePassword requires a non-blank password.
func ValidatePassword(value string) string {
	if isBlank(value) {
		return "Please enter a Password."
	}
	return ""
}

// ValidateEmail requires a plausibly shaped email address.
func ValidateEmail(value string) string {
	if isBlank(value) {
		return "Email is required."
	}
	if !emailPattern.MatchString(value) {
		return "Email address is invalid."
	}
	return ""
}

// ValidateConfirmPassword requires the confirmation to match the password.
func ValidateConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "Please confirm your Password."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	return ""
}

// ValidatePhoneNumber requires a ten digit phone number.
func ValidatePhoneNumber(value string) string {
	if isBlank(value) {
		return "Phone number is required."
	}
	if !phonePattern.MatchString(value) {
		return "Phone number is invalid."
	}
	return ""
}

func isBlank(value string) bool {
	for _, r := range value {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
