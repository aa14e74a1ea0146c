package endpoint

import (
	"net/url"
	"strings"

	apperrors "go-safety-poster/internal/errors"
)

// URLValidator checks absolute endpoint URLs
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a URL validator accepting http and https on any host
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom options
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// Validate returns a validation AppError when rawURL is not an absolute http(s) URL with a host
func (v *URLValidator) Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("Invalid URL format", err)
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if !v.isHostAllowed(parsedURL.Host) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}

	return nil
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isHostAllowed compares host:port case-insensitively; no restrictions when the list is empty
func (v *URLValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}
