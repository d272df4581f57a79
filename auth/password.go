package auth

import (
	"regexp"
	"unicode/utf8"
)

var (
	upper   = regexp.MustCompile(`[A-Z]`)
	lower   = regexp.MustCompile(`[a-z]`)
	special = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordProblems lists every rule password breaks. An empty result means it is acceptable.
func PasswordProblems(password string) []string {
	var problems []string

	if utf8.RuneCountInString(password) < 6 {
		problems = append(problems, "Password must be at least 6 characters long")
	}
	if !upper.MatchString(password) {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !lower.MatchString(password) {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !special.MatchString(password) {
		problems = append(problems, "Password must contain at least one special character (!@#$%^&*)")
	}

	return problems
}
