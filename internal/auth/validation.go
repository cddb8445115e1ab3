package auth

import (
	"regexp"
)

var (
	emailRegex         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	contactNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= 50
}

// ValidateContactNumber accepts exactly ten digits
func ValidateContactNumber(contactNumber string) bool {
	return contactNumberRegex.MatchString(contactNumber)
}
