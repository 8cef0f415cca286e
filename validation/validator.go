// Package validation gates submissions: it classifies raw input, debounces
// re-validation while the user is typing, and guards against double submits.
package validation

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"truthonly/models"
)

// Text length bounds, in characters.
const (
	MinTextLength = 10
	MaxTextLength = 5000
)

// Status is the outcome of validating one input.
type Status string

const (
	StatusEmpty    Status = ""
	StatusInvalid  Status = "invalid"
	StatusTooShort Status = "too-short"
	StatusTooLong  Status = "too-long"
	StatusValid    Status = "valid"
)

// Message is the inline hint shown next to the input.
func (s Status) Message() string {
	switch s {
	case StatusInvalid:
		return "Please enter a valid URL"
	case StatusTooShort:
		return "Text must be at least 10 characters"
	case StatusTooLong:
		return "Text must be less than 5000 characters"
	case StatusValid:
		return "Ready to verify!"
	default:
		return ""
	}
}

// Valid reports whether submission may proceed.
func (s Status) Valid() bool { return s == StatusValid }

// Validate classifies raw input of the given type. For images raw is the file reference.
func Validate(t models.InputType, raw string) Status {
	if t == models.InputImage {
		if raw == "" {
			return StatusEmpty
		}
		return StatusValid
	}
	if strings.TrimSpace(raw) == "" {
		return StatusEmpty
	}

	switch t {
	case models.InputURL:
		if IsAbsoluteURL(raw) {
			return StatusValid
		}
		return StatusInvalid
	case models.InputText:
		n := utf8.RuneCountInString(raw)
		switch {
		case n < MinTextLength:
			return StatusTooShort
		case n > MaxTextLength:
			return StatusTooLong
		default:
			return StatusValid
		}
	default:
		return StatusInvalid
	}
}

// ValidateRequest validates the part of a request the user actually typed or attached.
func ValidateRequest(req models.VerificationRequest) Status {
	return Validate(req.InputType, req.Subject())
}

// IsAbsoluteURL reports whether s parses as a URL with both a scheme and a host.
// An explicit port must lie in 0..65535.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 65535 {
			return false
		}
	}
	return true
}
