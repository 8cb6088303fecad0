package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	accountRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// Password validation regex patterns
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// SanitizeString trims input and strips HTML tags. Entities are decoded
// before tags are stripped.
func SanitizeString(input string) string {
	sanitized := htmlTagRegex.ReplaceAllString(html.UnescapeString(input), "")
	return strings.TrimSpace(sanitized)
}

// ValidateXSS checks for common XSS attack patterns
func ValidateXSS(input string) (bool, string) {
	xssPatterns := map[string]string{
		`(?i)(<script.*>)`:       "XSS detected: Script tag found",
		`(?i)(javascript:)`:      "XSS detected: JavaScript protocol found",
		`(?i)(onload=|onerror=)`: "XSS detected: event handler found",
		`(?i)(document\.cookie)`: "XSS detected: document.cookie access found",
	}

	for pattern, message := range xssPatterns {
		if matched, _ := regexp.MatchString(pattern, input); matched {
			return false, message
		}
	}
	return true, ""
}

// ValidateAccount checks if the login account meets the requirements
func ValidateAccount(account string) (bool, string) {
	if !accountRegex.MatchString(account) {
		return false, "Account must be 3-32 characters of letters, numbers, '_', '.' or '-'"
	}
	return true, ""
}

// ValidateEmail checks if the email is valid and safe
func ValidateEmail(email string) (bool, string) {
	if valid, msg := ValidateXSS(email); !valid {
		return false, "Email: " + msg
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return false, fmt.Sprintf("Password must not exceed %d characters", MaxPasswordLength)
	}
	if !hasLetter.MatchString(password) {
		return false, "Password must contain at least one letter"
	}
	if !hasNumber.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, ""
}

// FormatPhoneNumber strips separators and checks for a 10 digit number
func FormatPhoneNumber(phone string) (string, error) {
	// Remove all non-digit characters
	phone = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(phone) != 10 {
		return "", fmt.Errorf("phone number must be exactly 10 digits")
	}
	return phone, nil
}

// ValidatePhone checks the phone number and returns it formatted
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return true, "" // Phone is optional
	}

	formattedPhone, err := FormatPhoneNumber(phone)
	if err != nil {
		return false, err.Error()
	}
	return true, formattedPhone
}

// ValidateName checks if the name is valid and safe
func ValidateName(name string) (bool, string) {
	if valid, msg := ValidateXSS(name); !valid {
		return false, "Name: " + msg
	}
	if len(strings.TrimSpace(name)) < 2 {
		return false, "Name must be at least 2 characters long"
	}
	return true, ""
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}
