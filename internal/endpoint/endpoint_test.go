package endpoint

import (
	"testing"

	apperrors "go-safety-poster/internal/errors"
)

func TestSelect(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		host string
		want string
	}{
		{host: "localhost", want: "http://localhost:8000/api/generate"},
		{host: "127.0.0.1", want: "http://localhost:8000/api/generate"},
		{host: "localhost:8080", want: "http://localhost:8000/api/generate"},
		{host: "127.0.0.1:3000", want: "http://localhost:8000/api/generate"},
		{host: "LOCALHOST", want: "http://localhost:8000/api/generate"},
		{host: "posters.example.com", want: "/api/generate"},
		{host: "10.0.0.5:8080", want: "/api/generate"},
		{host: "localhost.example.com", want: "/api/generate"},
		{host: "", want: "/api/generate"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := rules.Select(tt.host); got != tt.want {
				t.Errorf("Select(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		host  string
		want  string
	}{
		{
			name:  "loopback uses local URL",
			rules: DefaultRules(),
			host:  "127.0.0.1:8080",
			want:  "http://localhost:8000/api/generate",
		},
		{
			name:  "relative path on default base",
			rules: DefaultRules(),
			host:  "posters.example.com",
			want:  "http://localhost:8000/api/generate",
		},
		{
			name:  "relative path on configured base",
			rules: Rules{BaseURL: "https://backend.internal:9443"},
			host:  "posters.example.com",
			want:  "https://backend.internal:9443/api/generate",
		},
		{
			name:  "page host never becomes the target",
			rules: Rules{BaseURL: "https://backend.internal:9443"},
			host:  "10.0.0.7:6379",
			want:  "https://backend.internal:9443/api/generate",
		},
		{
			name:  "empty host falls back to base",
			rules: Rules{BaseURL: "https://backend.internal:9443"},
			host:  "",
			want:  "https://backend.internal:9443/api/generate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rules.Resolve(tt.host)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_RejectsHostOutsideConfiguredURLs(t *testing.T) {
	rules := Rules{Path: "//attacker.example.com/api/generate", BaseURL: "https://backend.internal"}

	got, err := rules.Resolve("posters.example.com")
	if err == nil {
		t.Fatalf("Expected error, got %q", got)
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error, got: %v", err)
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Errorf("Expected default rules to be valid, got: %v", err)
	}
	if err := (Rules{}).Validate(); err != nil {
		t.Errorf("Expected zero rules to fall back to defaults, got: %v", err)
	}

	invalid := []Rules{
		{LocalURL: "localhost:8000/api/generate"},
		{LocalURL: "ftp://localhost/api/generate"},
		{Path: "api/generate"},
		{Path: "//attacker.example.com/api/generate"},
		{BaseURL: "https://"},
		{BaseURL: "backend.internal:9443"},
	}
	for _, r := range invalid {
		if err := r.Validate(); err == nil {
			t.Errorf("Expected %+v to fail validation", r)
		}
	}
}

func TestURLValidator(t *testing.T) {
	v := NewURLValidator()

	valid := []string{
		"http://localhost:8000/api/generate",
		"https://posters.example.com",
		"HTTPS://posters.example.com/api",
	}
	for _, u := range valid {
		if err := v.Validate(u); err != nil {
			t.Errorf("Expected %s to pass validation, got error: %v", u, err)
		}
	}

	tests := []struct {
		url     string
		message string
	}{
		{url: "   ", message: "URL cannot be empty"},
		{url: "ftp://example.com", message: "URL scheme not allowed"},
		{url: "http:///path", message: "URL must have a valid host"},
	}
	for _, tt := range tests {
		err := v.Validate(tt.url)
		appErr, ok := err.(*apperrors.AppError)
		if !ok {
			t.Errorf("Expected AppError for %q, got: %T", tt.url, err)
			continue
		}
		if appErr.Message != tt.message {
			t.Errorf("Expected %q for %q, got: %s", tt.message, tt.url, appErr.Message)
		}
	}
}

func TestURLValidator_AllowedHosts(t *testing.T) {
	v := NewURLValidatorWithOptions([]string{"http", "https"}, []string{"backend.internal:9443"})

	if err := v.Validate("https://BACKEND.internal:9443/api/generate"); err != nil {
		t.Errorf("Expected allowed host to pass, got: %v", err)
	}

	for _, u := range []string{
		"https://backend.internal/api/generate",
		"http://169.254.169.254/latest/meta-data",
	} {
		err := v.Validate(u)
		appErr, ok := err.(*apperrors.AppError)
		if !ok {
			t.Errorf("Expected AppError for %q, got: %T", u, err)
			continue
		}
		if appErr.Message != "URL host not allowed" {
			t.Errorf("Expected host rejection for %q, got: %s", u, appErr.Message)
		}
	}
}
